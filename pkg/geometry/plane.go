package geometry

import "github.com/ahartley/photontracer/pkg/geom"

// intersectPlane follows the original plane geometry's convention of
// inserting two hits for a ray that crosses the plane: one at the true
// crossing and one sentinel at +/-infinity marking the half-space the ray
// starts in. A ray parallel to the plane gets two sentinels if it runs
// inside the half-space and no hits otherwise. That sentinel lets
// CSG treat a plane exactly like any bounded solid: "inside" the plane is
// simply the side its normal points away from.
func (o *SceneObject) intersectPlane(ray geom.Ray, pool *HitPool) {
	distanceToPlane := o.A*ray.Position.X + o.B*ray.Position.Y + o.C*ray.Position.Z + o.D
	directionDotNormal := o.A*ray.Direction.X + o.B*ray.Direction.Y + o.C*ray.Direction.Z

	if directionDotNormal == 0 {
		if distanceToPlane < 0 {
			pool.Insert(geom.NewHit(negInf, true, geom.Vertex{}, geom.Vec3{}))
			pool.Insert(geom.NewHit(posInf, false, geom.Vertex{}, geom.Vec3{}))
		}
		return
	}

	t := distanceToPlane / -directionDotNormal
	position := ray.At(t)
	normal := geom.FaceForward(geom.NewVec3(o.A, o.B, o.C), ray.Direction)

	if directionDotNormal > 0 {
		// Ray travels from inside the half-space out of it.
		pool.Insert(geom.NewHit(negInf, true, geom.Vertex{}, geom.Vec3{}))
		pool.Insert(geom.NewHit(t, false, position, normal))
	} else {
		pool.Insert(geom.NewHit(t, true, position, normal))
		pool.Insert(geom.NewHit(posInf, false, geom.Vertex{}, geom.Vec3{}))
	}
}

func (o *SceneObject) applyTransformPlane(t geom.Transform) {
	v := t.Inverse().Transpose().ApplyToVertex(geom.NewVertex(o.A, o.B, o.C, o.D))
	o.A, o.B, o.C, o.D = v.X, v.Y, v.Z, v.W
}
