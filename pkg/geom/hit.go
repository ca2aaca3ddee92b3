package geom

// Hit is a ray-surface intersection record: distance along the ray, whether
// the ray is entering the primitive's interior at this crossing, the world
// position and the unit normal oriented against the incoming ray.
type Hit struct {
	Distance float64
	Entering bool
	Position Vertex
	Normal   Vec3
}

// NewHit creates a new hit record.
func NewHit(distance float64, entering bool, position Vertex, normal Vec3) Hit {
	return Hit{Distance: distance, Entering: entering, Position: position, Normal: normal}
}

// FaceForward flips n so that it opposes the incoming ray direction d,
// matching the convention used by every primitive's intersection routine.
func FaceForward(n, d Vec3) Vec3 {
	if n.Dot(d) > 0 {
		return n.Negate()
	}
	return n
}
