package geometry

import "github.com/ahartley/photontracer/pkg/geom"

// MaterialID indexes into a scene's material table. Geometry never looks up
// the material itself; it only carries the ID so the scene package (which
// owns the material table) can resolve it after a hit.
type MaterialID int

// Kind identifies which variant of the SceneObject tagged union is populated.
type Kind int

const (
	Sphere Kind = iota
	Plane
	Quadric
	PolyMesh
	CSG
)

// CSGMode selects the regularized boolean operation a CSG node performs on
// its two children.
type CSGMode int

const (
	Union CSGMode = iota
	Intersect
	Difference
)

// QuadricCoefficients are the ten coefficients of the general quadric
// surface ax² + 2bxy + 2cxz + 2dx + ey² + 2fyz + 2gy + hz² + 2iz + j = 0.
type QuadricCoefficients struct {
	A, B, C, D, E, F, G, H, I, J float64
}

// Triangle indexes three vertices and three vertex normals of a PolyMesh,
// plus a precomputed flat face normal.
type Triangle struct {
	VertexIndices       [3]int
	VertexNormalIndices [3]int
	FaceNormal          geom.Vec3
}

// SceneObject is a tagged union over every shape the ray-intersection
// kernel supports. Only the fields for the active Kind are meaningful.
type SceneObject struct {
	Kind       Kind
	MaterialID MaterialID

	// Sphere
	Center geom.Vertex
	Radius float64

	// Plane: ax + by + cz + d = 0
	A, B, C, D float64

	// Quadric
	Coeffs QuadricCoefficients

	// PolyMesh
	Smooth    bool
	Vertices  []geom.Vertex
	Normals   []geom.Vertex
	Triangles []Triangle

	// CSG
	Mode        CSGMode
	Left, Right *SceneObject
}

// NewSphere creates a sphere of the given center and radius.
func NewSphere(center geom.Vertex, radius float64, materialID MaterialID) *SceneObject {
	return &SceneObject{Kind: Sphere, Center: center, Radius: radius, MaterialID: materialID}
}

// NewPlane creates a plane from the equation ax + by + cz + d = 0.
func NewPlane(a, b, c, d float64, materialID MaterialID) *SceneObject {
	return &SceneObject{Kind: Plane, A: a, B: b, C: c, D: d, MaterialID: materialID}
}

// NewQuadric creates a general quadric surface.
func NewQuadric(coeffs QuadricCoefficients, materialID MaterialID) *SceneObject {
	return &SceneObject{Kind: Quadric, Coeffs: coeffs, MaterialID: materialID}
}

// NewPolyMesh creates a triangle mesh, smooth-shaded via interpolated
// vertex normals if smooth is set, otherwise flat-shaded per triangle.
func NewPolyMesh(vertices, normals []geom.Vertex, triangles []Triangle, smooth bool, materialID MaterialID) *SceneObject {
	return &SceneObject{
		Kind: PolyMesh, Smooth: smooth, Vertices: vertices, Normals: normals,
		Triangles: triangles, MaterialID: materialID,
	}
}

// NewCSG combines two child objects with a regularized boolean operation.
// The scene shades every hit on the combined solid with the CSG node's own
// MaterialID; the children's MaterialIDs are not consulted for those hits.
func NewCSG(mode CSGMode, left, right *SceneObject, materialID MaterialID) *SceneObject {
	return &SceneObject{Kind: CSG, Mode: mode, Left: left, Right: right, MaterialID: materialID}
}

// Intersect dispatches to the shape-specific intersection routine,
// accumulating entering/exiting hits into pool.
func (o *SceneObject) Intersect(ray geom.Ray, pool *HitPool) {
	switch o.Kind {
	case Sphere:
		o.intersectSphere(ray, pool)
	case Plane:
		o.intersectPlane(ray, pool)
	case Quadric:
		o.intersectQuadric(ray, pool)
	case PolyMesh:
		o.intersectPolyMesh(ray, pool)
	case CSG:
		o.intersectCSG(ray, pool)
	}
}

// GenerateHitPool runs Intersect into a fresh pool and returns it.
func (o *SceneObject) GenerateHitPool(ray geom.Ray) *HitPool {
	pool := &HitPool{}
	o.Intersect(ray, pool)
	return pool
}

// FirstHit returns the nearest hit with positive distance, or false if the
// ray misses the object entirely (within positive distance).
func (o *SceneObject) FirstHit(ray geom.Ray) (geom.Hit, bool) {
	return o.GenerateHitPool(ray).FirstPositive()
}

// ApplyTransform transforms the object in place by t. Quadrics are the
// exception: their coefficients become Tᵀ Q T, which moves the surface by
// the inverse of t.
func (o *SceneObject) ApplyTransform(t geom.Transform) {
	switch o.Kind {
	case Sphere:
		o.Center = t.ApplyToVertex(o.Center)
	case Plane:
		o.applyTransformPlane(t)
	case Quadric:
		o.applyTransformQuadric(t)
	case PolyMesh:
		o.applyTransformPolyMesh(t)
	case CSG:
		o.Left.ApplyTransform(t)
		o.Right.ApplyTransform(t)
	}
}

// BoundingSphere returns a conservative bounding sphere, if the shape has
// one. Planes, quadrics, and CSG nodes are unbounded (or not worth
// bounding) and report ok=false; photon Setup aims no caustic photons at
// such objects.
func (o *SceneObject) BoundingSphere() (center geom.Vertex, radius float64, ok bool) {
	switch o.Kind {
	case Sphere:
		return o.Center, o.Radius, true
	case PolyMesh:
		return o.boundingSpherePolyMesh()
	default:
		return geom.Vertex{}, 0, false
	}
}
