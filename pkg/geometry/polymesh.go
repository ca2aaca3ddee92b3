package geometry

import (
	"math"

	"github.com/ahartley/photontracer/pkg/geom"
)

const triangleEpsilon = 0.000001

type triangleIntersection struct {
	t, u, v  float64
	entering bool
}

func (o *SceneObject) intersectPolyMesh(ray geom.Ray, pool *HitPool) {
	for i := range o.Triangles {
		if hit, ok := o.intersectTriangle(ray, i); ok {
			o.addPolyMeshHit(pool, i, ray, hit)
		}
	}
}

// intersectTriangle implements the Moller-Trumbore ray/triangle test
// (non-culling: a ray can hit either face, with entering/exiting decided
// by the sign of the determinant).
func (o *SceneObject) intersectTriangle(ray geom.Ray, index int) (triangleIntersection, bool) {
	tri := o.Triangles[index]
	v0 := o.Vertices[tri.VertexIndices[0]].Vec3()
	v1 := o.Vertices[tri.VertexIndices[1]].Vec3()
	v2 := o.Vertices[tri.VertexIndices[2]].Vec3()

	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	pVec := ray.Direction.Cross(edge2)
	det := edge1.Dot(pVec)
	if det > -triangleEpsilon && det < triangleEpsilon {
		return triangleIntersection{}, false
	}
	invDet := 1 / det

	tVec := ray.Position.Vec3().Subtract(v0)
	u := tVec.Dot(pVec) * invDet
	if u < 0 || u > 1 {
		return triangleIntersection{}, false
	}

	qVec := tVec.Cross(edge1)
	v := ray.Direction.Dot(qVec) * invDet
	if v < 0 || u+v > 1 {
		return triangleIntersection{}, false
	}

	t := edge2.Dot(qVec) * invDet
	return triangleIntersection{t: t, u: u, v: v, entering: det < 0}, true
}

func (o *SceneObject) addPolyMeshHit(pool *HitPool, index int, ray geom.Ray, hit triangleIntersection) {
	position := ray.At(hit.t)

	var normal geom.Vec3
	if o.Smooth {
		tri := o.Triangles[index]
		n0 := o.Normals[tri.VertexNormalIndices[0]].Vec3()
		n1 := o.Normals[tri.VertexNormalIndices[1]].Vec3()
		n2 := o.Normals[tri.VertexNormalIndices[2]].Vec3()
		normal = n0.Multiply(1 - hit.u - hit.v).Add(n1.Multiply(hit.u)).Add(n2.Multiply(hit.v))
	} else {
		normal = o.Triangles[index].FaceNormal
	}
	normal = geom.FaceForward(normal.Normalize(), ray.Direction)

	pool.Insert(geom.NewHit(hit.t, hit.entering, position, normal))
}

func (o *SceneObject) applyTransformPolyMesh(t geom.Transform) {
	for i := range o.Vertices {
		o.Vertices[i] = t.ApplyToVertex(o.Vertices[i])
	}

	normalTransform := t.Inverse().Transpose()
	for i := range o.Normals {
		o.Normals[i] = normalTransform.ApplyToVertex(o.Normals[i])
	}
	for i := range o.Triangles {
		o.Triangles[i].FaceNormal = normalTransform.ApplyToVector(o.Triangles[i].FaceNormal)
	}
}

func (o *SceneObject) boundingSpherePolyMesh() (geom.Vertex, float64, bool) {
	if len(o.Vertices) == 0 {
		return geom.Vertex{}, 0, false
	}

	min := o.Vertices[0].Vec3()
	max := min
	for _, v := range o.Vertices[1:] {
		p := v.Vec3()
		min = geom.NewVec3(math.Min(min.X, p.X), math.Min(min.Y, p.Y), math.Min(min.Z, p.Z))
		max = geom.NewVec3(math.Max(max.X, p.X), math.Max(max.Y, p.Y), math.Max(max.Z, p.Z))
	}

	centerVec := min.Add(max).Multiply(0.5)
	center := centerVec.AsVertex(1)

	radius := 0.0
	for _, v := range o.Vertices {
		d := v.Vec3().Subtract(centerVec).Length()
		radius = math.Max(radius, d)
	}

	return center, radius, true
}
