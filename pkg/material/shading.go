package material

import (
	"math"
	"math/rand"

	"github.com/ahartley/photontracer/pkg/geom"
	"github.com/ahartley/photontracer/pkg/sampler"
)

// rayEpsilon nudges secondary/shadow ray origins off the surface they were
// spawned from, avoiding immediate self-intersection from float rounding.
const rayEpsilon = 1e-4

// ambientOcclusionShadowLimit caps how far an ambient-occlusion probe ray
// is allowed to travel before counting as unoccluded.
const ambientOcclusionShadowLimit = 10.0

// ShadeAmbient computes the view-dependent, light-independent contribution
// at a hit: emission/ambient terms plus any recursive reflection/refraction
// for Global materials. depth is the current recursion depth; tracer stops
// recursing once depth reaches maxRecurse.
func ShadeAmbient(tracer Tracer, occluder Occluder, viewer geom.Ray, hit geom.Hit, mat *Material, depth, maxRecurse int, rng *rand.Rand) geom.Colour {
	switch mat.Kind {
	case Phong:
		return mat.Ambient

	case Global:
		if depth >= maxRecurse {
			return geom.Black
		}
		return shadeGlobalAmbient(tracer, viewer, hit, mat, depth, rng)

	case AmbientOcclusion:
		return shadeAmbientOcclusion(occluder, hit, mat, rng)

	case Compound:
		sum := geom.Black
		for _, c := range mat.Components {
			sum = sum.Add(ShadeAmbient(tracer, occluder, viewer, hit, c, depth, maxRecurse, rng))
		}
		return sum

	default:
		return geom.Black
	}
}

func shadeGlobalAmbient(tracer Tracer, viewer geom.Ray, hit geom.Hit, mat *Material, depth int, rng *rand.Rand) geom.Colour {
	d := viewer.Direction.Normalize()
	n := hit.Normal

	reflectDir := d.Reflect(n)
	refractDir, ok := Refract(d, n, mat.IOR)

	var fr, ft float64
	if !ok {
		// Refraction direction is undefined, so all energy reflects.
		fr, ft = 1, 1
		refractDir = reflectDir
	} else {
		fr, ft = FresnelCoefficients(d, n, mat.IOR)
	}

	reflectRay := geom.NewRay(hit.Position, reflectDir).Offset(reflectDir, rayEpsilon)
	refractRay := geom.NewRay(hit.Position, refractDir).Offset(refractDir, rayEpsilon)

	colour := mat.ReflectWeight.Scale(fr).Multiply(tracer.Trace(reflectRay, depth+1, rng))
	colour = colour.Add(mat.RefractWeight.Scale(ft).Multiply(tracer.Trace(refractRay, depth+1, rng)))
	return colour
}

// Refract computes the Snell transmission direction for a unit incident
// direction d crossing a surface of the given index of refraction with
// face-forwarded normal n, using eta=1/ior. ok is false on total internal
// reflection, in which case the returned direction is meaningless.
func Refract(d, n geom.Vec3, ior float64) (dir geom.Vec3, ok bool) {
	cosI := math.Abs(n.Dot(d))
	eta := 1.0 / ior
	cosT2 := 1 - eta*eta*(1-cosI*cosI)
	if cosT2 < 0 {
		return geom.Vec3{}, false
	}
	cosT := math.Sqrt(cosT2)
	return d.Multiply(eta).Subtract(n.Multiply(cosT - eta*cosI)), true
}

// FresnelCoefficients returns the unpolarised Fresnel reflectance and
// transmittance (F_R, F_T = 1-F_R) for a unit incident direction d against
// a face-forwarded normal n and dielectric index of refraction ior. Callers
// must only use this when Refract reports ok (no total internal
// reflection); at grazing incidence floating-point drift can push F_R
// slightly outside [0,1], so it is clamped before returning.
func FresnelCoefficients(d, n geom.Vec3, ior float64) (fr, ft float64) {
	cosI := math.Abs(n.Dot(d))
	eta := 1.0 / ior
	cosT := math.Sqrt(math.Max(0, 1-eta*eta*(1-cosI*cosI)))

	rPar := (ior*cosI - cosT) / (ior*cosI + cosT)
	rPer := (cosI - ior*cosT) / (cosI + ior*cosT)
	fr = clamp01((rPar*rPar + rPer*rPer) / 2)
	return fr, 1 - fr
}

func shadeAmbientOcclusion(occluder Occluder, hit geom.Hit, mat *Material, rng *rand.Rand) geom.Colour {
	jittered := sampler.NewMultiJittered(mat.AONumSamples, 1, rng)

	lit := 0.0
	for i := 0; i < mat.AONumSamples; i++ {
		sample := sampler.CosineHemisphere(jittered.Sample(), 1)
		dir := hit.Normal.Add(sample).Normalize()

		probe := geom.NewRay(hit.Position, dir).Offset(hit.Normal, rayEpsilon)
		if occluder.IsOccluded(probe, ambientOcclusionShadowLimit) {
			lit += mat.AOMinAmount
		} else {
			lit += 1.0
		}
	}

	occlusion := lit / float64(mat.AONumSamples)
	return mat.Ambient.Scale(occlusion)
}

// ShadeLight evaluates the material's BRDF for one incoming light
// direction, scaled by the usual max(0, cosine) falloff terms. viewerDir
// points away from the hit point toward the eye; lightDir is the direction
// the light travels, from the light toward the hit point.
func ShadeLight(viewerDir, lightDir geom.Vec3, hit geom.Hit, mat *Material) geom.Colour {
	return BRDF(viewerDir, lightDir, hit, mat)
}

// BRDF returns the raw bidirectional reflectance evaluated for one
// outgoing (viewer) and one incoming (light/photon) direction, with no
// light-intensity term applied. Used both for direct lighting (via
// ShadeLight) and for photon-map radiance gathering, where it weights each
// nearby photon's contribution by the surface's reflectance toward the
// camera.
func BRDF(viewerDir, lightDir geom.Vec3, hit geom.Hit, mat *Material) geom.Colour {
	switch mat.Kind {
	case Phong:
		return phongBRDF(viewerDir, lightDir, hit, mat)
	case Compound:
		sum := geom.Black
		for _, c := range mat.Components {
			sum = sum.Add(BRDF(viewerDir, lightDir, hit, c))
		}
		return sum
	default:
		// Global and AmbientOcclusion contribute nothing to direct/photon
		// light sampling; they are handled entirely in ShadeAmbient.
		return geom.Black
	}
}

func phongBRDF(viewerDir, lightDir geom.Vec3, hit geom.Hit, mat *Material) geom.Colour {
	cosIncidence := math.Max(0, lightDir.Negate().Dot(hit.Normal))
	diffuse := mat.Diffuse.Scale(cosIncidence)

	reflected := lightDir.Negate().Reflect(hit.Normal)
	specularCosine := math.Max(0, reflected.Dot(viewerDir))

	var specularFalloff float64
	if specularCosine > 0 {
		specularFalloff = math.Pow(specularCosine, mat.Shininess)
	}
	specular := mat.Specular.Scale(specularFalloff)

	return diffuse.Add(specular)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
