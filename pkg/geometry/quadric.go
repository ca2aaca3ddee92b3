package geometry

import (
	"math"

	"github.com/ahartley/photontracer/pkg/geom"
)

func (o *SceneObject) intersectQuadric(ray geom.Ray, pool *HitPool) {
	c := o.Coeffs
	dx, dy, dz := ray.Direction.X, ray.Direction.Y, ray.Direction.Z
	px, py, pz := ray.Position.X, ray.Position.Y, ray.Position.Z

	a := c.A*dx*dx + 2*c.B*dx*dy + 2*c.C*dx*dz + c.E*dy*dy + 2*c.F*dy*dz + c.H*dz*dz
	b := 2 * (c.A*px*dx + c.B*(px*dy+dx*py) + c.C*(px*dz+dx*pz) + c.D*dx +
		c.E*py*dy + c.F*(py*dz+dy*pz) + c.G*dy + c.H*pz*dz + c.I*dz)
	cc := c.A*px*px + 2*c.B*px*py + 2*c.C*px*pz + 2*c.D*px +
		c.E*py*py + 2*c.F*py*pz + 2*c.G*py + c.H*pz*pz + 2*c.I*pz + c.J

	discriminant := b*b - 4*a*cc
	if discriminant < 0 || a == 0 {
		return
	}

	sqrtDisc := math.Sqrt(discriminant)
	t0 := (-b - sqrtDisc) / (2 * a)
	t1 := (-b + sqrtDisc) / (2 * a)
	if t0 < 0 && t1 < 0 {
		return
	}

	o.addQuadricHit(pool, ray, t0, true)
	o.addQuadricHit(pool, ray, t1, false)
}

func (o *SceneObject) addQuadricHit(pool *HitPool, ray geom.Ray, t float64, entering bool) {
	c := o.Coeffs
	position := ray.At(t)
	normal := geom.NewVec3(
		c.A*position.X+c.B*position.Y+c.C*position.Z+c.D,
		c.B*position.X+c.E*position.Y+c.F*position.Z+c.G,
		c.C*position.X+c.F*position.Y+c.H*position.Z+c.I,
	).Normalize()
	normal = geom.FaceForward(normal, ray.Direction)
	pool.Insert(geom.NewHit(t, entering, position, normal))
}

// applyTransformQuadric conjugates the quadric's symmetric coefficient
// matrix Q by the transform: Q' = Tᵀ Q T, so that evaluating the new
// coefficients at a point p matches evaluating the old ones at T·p. The
// surface therefore moves by the inverse of t.
func (o *SceneObject) applyTransformQuadric(t geom.Transform) {
	c := o.Coeffs
	q := geom.Transform{M: [4][4]float64{
		{c.A, c.B, c.C, c.D},
		{c.B, c.E, c.F, c.G},
		{c.C, c.F, c.H, c.I},
		{c.D, c.G, c.I, c.J},
	}}

	transformed := t.Transpose().Compose(q.Compose(t))

	o.Coeffs = QuadricCoefficients{
		A: transformed.M[0][0], B: transformed.M[0][1], C: transformed.M[0][2], D: transformed.M[0][3],
		E: transformed.M[1][1], F: transformed.M[1][2], G: transformed.M[1][3],
		H: transformed.M[2][2], I: transformed.M[2][3],
		J: transformed.M[3][3],
	}
}
