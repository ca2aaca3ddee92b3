package geom

// Vertex is a homogeneous point: w=1 for positions, w=0 for directions when
// run through Transform.ApplyToVertex. Most geometric code works with Vec3 and only
// promotes to Vertex at the Transform boundary.
type Vertex struct {
	X, Y, Z, W float64
}

// NewVertex creates a new homogeneous point.
func NewVertex(x, y, z, w float64) Vertex {
	return Vertex{X: x, Y: y, Z: z, W: w}
}

// Vec3 drops the w component, returning the Euclidean part of the vertex.
func (v Vertex) Vec3() Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// Add returns the sum of two vertices (w components add too; callers adding a
// position and a direction get w=1 back, as required for ray stepping).
func (v Vertex) Add(other Vertex) Vertex {
	return Vertex{v.X + other.X, v.Y + other.Y, v.Z + other.Z, v.W + other.W}
}
