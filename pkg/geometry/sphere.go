package geometry

import (
	"math"

	"github.com/ahartley/photontracer/pkg/geom"
)

func (o *SceneObject) intersectSphere(ray geom.Ray, pool *HitPool) {
	rayToSphere := ray.Position.Vec3().Subtract(o.Center.Vec3())

	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(rayToSphere)
	c := rayToSphere.Dot(rayToSphere) - o.Radius*o.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return
	}

	sqrtDisc := math.Sqrt(discriminant)
	t0 := (-b - sqrtDisc) / (2 * a)
	t1 := (-b + sqrtDisc) / (2 * a)

	o.addSphereHit(pool, ray, t0, true)
	o.addSphereHit(pool, ray, t1, false)
}

func (o *SceneObject) addSphereHit(pool *HitPool, ray geom.Ray, t float64, entering bool) {
	position := ray.At(t)
	normal := position.Vec3().Subtract(o.Center.Vec3()).Normalize()
	normal = geom.FaceForward(normal, ray.Direction)
	pool.Insert(geom.NewHit(t, entering, position, normal))
}
