package geom

// Ray is a position and direction. Direction is not required to be unit
// except where a specific operation says so; callers normalise deliberately.
type Ray struct {
	Position  Vertex
	Direction Vec3
}

// NewRay creates a new ray.
func NewRay(position Vertex, direction Vec3) Ray {
	return Ray{Position: position, Direction: direction}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vertex {
	return Vertex{
		X: r.Position.X + t*r.Direction.X,
		Y: r.Position.Y + t*r.Direction.Y,
		Z: r.Position.Z + t*r.Direction.Z,
		W: 1,
	}
}

// Offset returns a copy of the ray with its origin nudged by eps along dir,
// used to step shadow/secondary rays off the surface they originated from.
func (r Ray) Offset(dir Vec3, eps float64) Ray {
	return Ray{
		Position:  r.Position.Add(dir.Multiply(eps).AsVertex(0)),
		Direction: r.Direction,
	}
}
