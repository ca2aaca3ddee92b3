package photon

import (
	"math"
	"math/rand"

	"github.com/ahartley/photontracer/pkg/geom"
	"github.com/ahartley/photontracer/pkg/geometry"
	"github.com/ahartley/photontracer/pkg/material"
	"github.com/ahartley/photontracer/pkg/sampler"
	"github.com/ahartley/photontracer/pkg/scene"
)

// rayEpsilon nudges a photon's continuation ray off the surface it bounced
// from, matching the convention used throughout the shading pipeline.
const rayEpsilon = 1e-4

// jensenAlpha and jensenBeta are the cone-filter constants from Jensen's
// photon mapping radiance estimate.
const (
	jensenAlpha = 0.918
	jensenBeta  = 1.953
)

// Scene is a superset of scene.Scene adding the two photon maps (global and
// caustic) and the configuration that drives emission, tracing and
// radiance estimation. Once Setup returns, both maps are frozen and safe to
// read concurrently from every rendering goroutine, same as the rest of the
// scene.
type Scene struct {
	*scene.Scene

	GlobalMap  *Map
	CausticMap *Map

	NumPhotons                  int
	PhotonRecurse               int
	PhotonSearchRadius          float64
	PhotonSearchCount           int
	RecurseApproximateThreshold int
	UseShadowEstimation         bool
}

// New creates an empty photon-mapped scene. maxRecurse is the
// reflection/refraction recursion budget shared with the embedded Scene.
func New(maxRecurse int) *Scene {
	return &Scene{Scene: scene.New(maxRecurse)}
}

// Setup runs pass 1: it emits global and caustic photons from every
// positioned light, traces each with Russian roulette, and builds the two
// kd-trees. It must be called exactly once, before any Trace/RayTrace call.
func (ps *Scene) Setup(rng *rand.Rand) {
	var global, caustic []Photon

	for _, l := range ps.Lights {
		position, hasPosition, _, _ := l.Sample(geom.Vertex{})
		if !hasPosition {
			continue
		}

		emitIntensity := l.Intensity.Divide(float64(ps.NumPhotons))
		for i := 0; i < ps.NumPhotons; i++ {
			dir := randomSphereDirection(rng)
			ray := geom.NewRay(position, dir)
			ps.photonTrace(&global, ray, DirectIllumination, emitIntensity, ps.PhotonRecurse, rng, false)
		}

		for _, obj := range ps.Objects {
			mat := ps.Materials[obj.MaterialID]
			if mat == nil || !mat.IsSpecular() {
				continue
			}
			center, radius, ok := obj.BoundingSphere()
			if !ok {
				continue
			}
			for i := 0; i < ps.NumPhotons; i++ {
				target := randomPointOnSphere(center, radius, rng)
				dir := target.Vec3().Subtract(position.Vec3()).Normalize()
				ray := geom.NewRay(position, dir)
				ps.photonTrace(&caustic, ray, DirectIllumination, emitIntensity, ps.PhotonRecurse, rng, false)
			}
		}
	}

	ps.GlobalMap = Build(global)
	ps.CausticMap = Build(caustic)
}

// randomSphereDirection draws an approximately uniform direction over the
// full sphere: a uniform hemisphere sample about the pole, flipped
// to the opposite hemisphere with equal probability.
func randomSphereDirection(rng *rand.Rand) geom.Vec3 {
	sample := geom.NewVec2(rng.Float64(), rng.Float64())
	dir := sampler.CosineHemisphere(sample, 0)
	if rng.Float64() < 0.5 {
		dir = dir.Negate()
	}
	return dir
}

// randomPointOnSphere draws a uniformly distributed point on the surface of
// the sphere centred at center with the given radius.
func randomPointOnSphere(center geom.Vertex, radius float64, rng *rand.Rand) geom.Vertex {
	z := 1 - 2*rng.Float64()
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * rng.Float64()
	offset := geom.NewVec3(r*math.Cos(phi), r*math.Sin(phi), z).Multiply(radius)
	return center.Add(offset.AsVertex(0))
}

// photonTrace recurses one bounce at a time: it finds the nearest hit whose
// arrival qualifies (entering the medium, or a Transmit continuation),
// records a photon there, and Russian-roulettes the next bounce by the
// hit material's reflect/transmit/absorb probabilities.
func (ps *Scene) photonTrace(photons *[]Photon, ray geom.Ray, kind Kind, intensity geom.Colour, recurse int, rng *rand.Rand, wasTransmit bool) {
	hit, obj, ok := ps.nearestQualifyingHit(ray, wasTransmit)
	if !ok {
		return
	}

	*photons = append(*photons, Photon{
		Position:  hit.Position,
		Direction: ray.Direction,
		Intensity: intensity,
		Kind:      kind,
	})

	if recurse <= 0 {
		return
	}

	mat := ps.Materials[obj.MaterialID]
	if mat == nil {
		return
	}

	pReflect, pTransmit := photonProbabilities(mat)
	roll := rng.Float64()

	switch {
	case roll < pReflect:
		reflectDir := ray.Direction.Reflect(hit.Normal)
		next := geom.NewRay(hit.Position, reflectDir).Offset(reflectDir, rayEpsilon)
		ps.photonTrace(photons, next, IndirectIllumination, intensity.Divide(pReflect), recurse-1, rng, false)

	case roll < pReflect+pTransmit:
		ior, hasIOR := mat.IndexOfRefraction()
		if !hasIOR {
			return
		}
		refractDir, ok := material.Refract(ray.Direction.Normalize(), hit.Normal, ior)
		if !ok {
			return
		}
		next := geom.NewRay(hit.Position, refractDir).Offset(refractDir, rayEpsilon)
		ps.photonTrace(photons, next, IndirectIllumination, intensity.Divide(pTransmit), recurse-1, rng, true)

	default:
		// Absorb: continue straight through the surface as a shadow photon.
		// This is a single continuation, not a fresh roulette step — passing
		// a budget of 0 into photonTrace lets it record one more hit (if any)
		// and then stop on its own recursion-budget check.
		next := geom.NewRay(hit.Position, ray.Direction).Offset(ray.Direction, rayEpsilon)
		ps.photonTrace(photons, next, ShadowPhoton, intensity, 0, rng, false)
	}
}

// photonProbabilities returns the Reflect/Transmit Russian-roulette
// probabilities for a material, keyed by predicate: transparent materials
// transmit most of the time, specular (non-transparent) ones mostly
// reflect, and diffuse materials mostly absorb.
func photonProbabilities(mat *material.Material) (pReflect, pTransmit float64) {
	switch {
	case mat.IsTransparent():
		return 0.05, 0.70
	case mat.IsSpecular():
		return 0.95, 0.00
	default:
		return 0.20, 0.00
	}
}

// nearestQualifyingHit scans every object for the nearest positive-distance
// hit that either enters the medium, or arrives via a Transmit bounce (so
// an exit hit only counts right after the ray passed through a surface).
func (ps *Scene) nearestQualifyingHit(ray geom.Ray, wasTransmit bool) (geom.Hit, *geometry.SceneObject, bool) {
	var nearest geom.Hit
	var nearestObject *geometry.SceneObject
	found := false

	for _, obj := range ps.Objects {
		for _, hit := range obj.GenerateHitPool(ray).Hits() {
			if hit.Distance <= 0 {
				continue
			}
			if !hit.Entering && !wasTransmit {
				continue
			}
			if !found || hit.Distance < nearest.Distance {
				nearest, nearestObject, found = hit, obj, true
			}
		}
	}

	return nearest, nearestObject, found
}

// Trace implements material.Tracer for the photon-mapped renderer.
func (ps *Scene) Trace(ray geom.Ray, depth int, rng *rand.Rand) geom.Colour {
	colour, _ := ps.RayTrace(ray, depth, rng)
	return colour
}

// RayTrace runs pass 2 for one ray: direct ambient/reflection/refraction,
// direct lighting with an optional photon-estimated shadow test, and
// (while within the approximation threshold) indirect and caustic
// radiance estimates gathered from the two photon maps.
func (ps *Scene) RayTrace(ray geom.Ray, depth int, rng *rand.Rand) (geom.Colour, float64) {
	hit, obj, ok := ps.FindNearestHit(ray)
	if !ok {
		return geom.Black, 0
	}

	mat := ps.Materials[obj.MaterialID]
	if mat == nil {
		return geom.Black, hit.Distance
	}

	colour := material.ShadeAmbient(ps, ps, ray, hit, mat, depth, ps.MaxRecurse, rng)
	colour = colour.Add(ps.computeLighting(hit, mat))

	if depth <= ps.RecurseApproximateThreshold {
		viewerDir := hit.Position.Vec3().Negate().Normalize()
		colour = colour.Add(ps.radianceEstimate(viewerDir, hit, mat, ps.GlobalMap, IndirectIllumination))
		colour = colour.Add(ps.radianceEstimate(viewerDir, hit, mat, ps.CausticMap))
	}

	return colour, hit.Distance
}

func (ps *Scene) computeLighting(hit geom.Hit, mat *material.Material) geom.Colour {
	colour := geom.Black

	for _, l := range ps.Lights {
		viewerDir := hit.Position.Vec3().Negate().Normalize()
		lightPos, hasPos, lightDir, isLit := l.Sample(hit.Position)

		if lightDir.Dot(hit.Normal) > 0 {
			continue
		}
		if !isLit {
			continue
		}
		if !ps.isInShadow(hit.Position, lightPos, hasPos, lightDir) {
			colour = colour.Add(l.Intensity.Multiply(material.ShadeLight(viewerDir, lightDir, hit, mat)))
		}
	}

	return colour
}

// isInShadow uses photon-count shadow estimation when enabled and
// confident, falling back to the exact ray-cast test from the embedded
// Scene otherwise.
func (ps *Scene) isInShadow(hitPosition, lightPosition geom.Vertex, hasPosition bool, lightDirection geom.Vec3) bool {
	if ps.UseShadowEstimation {
		if shadowed, confident := ps.estimateShadow(hitPosition); confident {
			return shadowed
		}
	}
	return ps.Scene.IsPointInShadow(hitPosition, lightPosition, hasPosition, lightDirection)
}

// estimateShadow counts direct and shadow photons within PhotonSearchRadius
// of hitPosition. It only returns a confident answer once the combined
// count reaches PhotonSearchCount and the shadow fraction is exactly 0 or 1;
// any mixed result defers to the ray-cast test.
func (ps *Scene) estimateShadow(hitPosition geom.Vertex) (shadowed, confident bool) {
	if ps.GlobalMap == nil {
		return false, false
	}

	nearby := ps.GlobalMap.Within(hitPosition, ps.PhotonSearchRadius)
	direct, shadow := 0, 0
	for _, p := range nearby {
		switch p.Kind {
		case DirectIllumination:
			direct++
		case ShadowPhoton:
			shadow++
		}
	}

	total := direct + shadow
	if total < ps.PhotonSearchCount {
		return false, false
	}

	fraction := float64(shadow) / float64(total)
	switch fraction {
	case 1.0:
		return true, true
	case 0.0:
		return false, true
	default:
		return false, false
	}
}

// radianceEstimate gathers photons within PhotonSearchRadius of hit.Position
// from m, weighting each by Jensen's cone filter and the material's BRDF
// toward the viewer. If kinds is non-empty, only photons whose kind matches
// one of them contribute; an empty kinds gathers the whole map.
func (ps *Scene) radianceEstimate(viewerDir geom.Vec3, hit geom.Hit, mat *material.Material, m *Map, kinds ...Kind) geom.Colour {
	if m == nil {
		return geom.Black
	}

	radius := ps.PhotonSearchRadius
	colour := geom.Black

	for _, p := range m.Within(hit.Position, radius) {
		if !kindMatches(p.Kind, kinds...) {
			continue
		}
		d := p.Position.Vec3().Subtract(hit.Position.Vec3()).Length()
		w := jensenWeight(d, radius)
		brdf := material.BRDF(viewerDir, p.Direction, hit, mat)
		colour = colour.Add(p.Intensity.Multiply(brdf).Scale(w))
	}

	return colour
}

func kindMatches(kind Kind, kinds ...Kind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}

// jensenWeight computes Jensen's cone-like filter weight for a photon at
// distance d from the gather point, within a search radius R.
func jensenWeight(d, radius float64) float64 {
	if radius <= 0 {
		return 0
	}
	num := 1 - math.Exp(-jensenBeta*d*d/(2*radius*radius))
	den := 1 - math.Exp(-jensenBeta)
	return jensenAlpha * (1 - num/den)
}
