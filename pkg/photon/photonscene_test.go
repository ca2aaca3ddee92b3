package photon

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ahartley/photontracer/pkg/geom"
	"github.com/ahartley/photontracer/pkg/geometry"
	"github.com/ahartley/photontracer/pkg/light"
	"github.com/ahartley/photontracer/pkg/material"
)

func TestPhotonProbabilitiesSumToOne(t *testing.T) {
	cases := []*material.Material{
		material.NewGlobal(geom.White, geom.White, 1.5),
		material.NewPhong(geom.Black, geom.White, geom.White, 200),
		material.NewPhong(geom.Black, geom.White, geom.Black, 1),
	}

	for _, mat := range cases {
		pReflect, pTransmit := photonProbabilities(mat)
		pAbsorb := 1 - pReflect - pTransmit
		if pAbsorb < 0 || pAbsorb > 1 {
			t.Errorf("material %+v: pAbsorb = %v out of range", mat, pAbsorb)
		}
	}
}

func TestPhotonProbabilitiesDiffuseMostlyAbsorbs(t *testing.T) {
	diffuse := material.NewPhong(geom.Black, geom.White, geom.Black, 1)
	pReflect, pTransmit := photonProbabilities(diffuse)
	if pReflect != 0.20 || pTransmit != 0 {
		t.Errorf("diffuse probabilities = (%v, %v), want (0.20, 0)", pReflect, pTransmit)
	}
}

func TestJensenWeightPeaksAtZeroDistanceAndStaysNonNegativeAtRadius(t *testing.T) {
	radius := 2.0
	center := jensenWeight(0, radius)
	edge := jensenWeight(radius, radius)

	if center <= edge {
		t.Errorf("weight at centre (%v) should exceed weight at the edge (%v)", center, edge)
	}
	if edge < -1e-9 {
		t.Errorf("weight at the edge went negative: %v", edge)
	}
}

func TestKindMatchesEmptyFilterMatchesEverything(t *testing.T) {
	if !kindMatches(ShadowPhoton) {
		t.Error("an empty kind filter should match every photon kind")
	}
	if !kindMatches(IndirectIllumination, IndirectIllumination) {
		t.Error("expected an exact kind match")
	}
	if kindMatches(DirectIllumination, IndirectIllumination) {
		t.Error("did not expect a kind mismatch to match")
	}
}

// diffuseFloorScene builds a single diffuse floor plane lit by one point
// light directly above it, the simplest scene a global photon map should
// converge to the direct-lighting answer for.
func diffuseFloorScene(numPhotons int) *Scene {
	ps := New(5)
	ps.NumPhotons = numPhotons
	ps.PhotonRecurse = 3
	ps.PhotonSearchRadius = 5.0
	ps.PhotonSearchCount = 100
	ps.RecurseApproximateThreshold = 2

	matID := ps.AddMaterial(material.NewPhong(
		geom.NewColour(0.05, 0.05, 0.05, 1),
		geom.NewColour(0.6, 0.6, 0.6, 1),
		geom.Black,
		1,
	))
	ps.AddObject(geometry.NewPlane(0, 1, 0, 0, matID))
	ps.AddLight(light.NewPoint(geom.NewVertex(0, 5, 0, 1), geom.NewColour(50, 50, 50, 1)))
	return ps
}

func TestSetupBuildsNonEmptyGlobalMapForDiffuseScene(t *testing.T) {
	ps := diffuseFloorScene(200)
	ps.Setup(rand.New(rand.NewSource(7)))

	if ps.GlobalMap == nil {
		t.Fatal("expected a global map after Setup")
	}
	if ps.GlobalMap.Count() == 0 {
		t.Error("expected at least some global photons to land on the floor")
	}
	if ps.CausticMap == nil {
		t.Fatal("expected a caustic map after Setup, even if empty")
	}
}

func TestRayTraceAfterSetupIsNonBlackForHitSurface(t *testing.T) {
	ps := diffuseFloorScene(200)
	ps.Setup(rand.New(rand.NewSource(11)))

	ray := geom.NewRay(geom.NewVertex(0, 10, 0, 1), geom.NewVec3(0, -1, 0))
	colour, depth := ps.RayTrace(ray, 0, rand.New(rand.NewSource(1)))

	if colour == geom.Black {
		t.Error("expected a lit floor directly under the point light")
	}
	if depth <= 0 {
		t.Errorf("depth = %v, want > 0", depth)
	}
}

func TestRayTraceMissIsBlack(t *testing.T) {
	ps := diffuseFloorScene(50)
	ps.Setup(rand.New(rand.NewSource(3)))

	ray := geom.NewRay(geom.NewVertex(0, 10, 0, 1), geom.NewVec3(0, 1, 0))
	colour, depth := ps.RayTrace(ray, 0, rand.New(rand.NewSource(1)))
	if colour != geom.Black || depth != 0 {
		t.Errorf("miss = (%v, %v), want (black, 0)", colour, depth)
	}
}

func TestEstimateShadowDefersWhenBelowSearchCount(t *testing.T) {
	ps := diffuseFloorScene(10)
	ps.PhotonSearchCount = 1_000_000 // unreachable, forcing low confidence
	ps.Setup(rand.New(rand.NewSource(5)))

	_, confident := ps.estimateShadow(geom.NewVertex(0, 0, 0, 1))
	if confident {
		t.Error("expected no confident shadow estimate with an unreachable search count")
	}
}

func TestSetupGlobalMapSizeStaysWithinBound(t *testing.T) {
	numPhotons := 300
	ps := diffuseFloorScene(numPhotons)
	ps.Setup(rand.New(rand.NewSource(9)))

	numLights := len(ps.Lights)
	bound := numPhotons * numLights * (ps.PhotonRecurse + 1)
	if ps.GlobalMap.Count() > bound {
		t.Errorf("global map holds %d photons, want at most %d (num_photons * num_lights * (photon_recurse+1))", ps.GlobalMap.Count(), bound)
	}
}

func TestSetupIsDeterministicGivenTheSameSeed(t *testing.T) {
	a := diffuseFloorScene(150)
	a.Setup(rand.New(rand.NewSource(123)))

	b := diffuseFloorScene(150)
	b.Setup(rand.New(rand.NewSource(123)))

	if a.GlobalMap.Count() != b.GlobalMap.Count() {
		t.Errorf("global map sizes differ across identically-seeded runs: %d vs %d", a.GlobalMap.Count(), b.GlobalMap.Count())
	}
	if a.CausticMap.Count() != b.CausticMap.Count() {
		t.Errorf("caustic map sizes differ across identically-seeded runs: %d vs %d", a.CausticMap.Count(), b.CausticMap.Count())
	}

	ray := geom.NewRay(geom.NewVertex(0, 10, 0, 1), geom.NewVec3(0, -1, 0))
	colourA, _ := a.RayTrace(ray, 0, rand.New(rand.NewSource(1)))
	colourB, _ := b.RayTrace(ray, 0, rand.New(rand.NewSource(1)))
	if colourA != colourB {
		t.Errorf("ray trace results differ across identically-seeded runs: %v vs %v", colourA, colourB)
	}
}

func TestMoreGlobalPhotonsNarrowsVarianceAcrossIndependentRuns(t *testing.T) {
	ray := geom.NewRay(geom.NewVertex(0, 10, 0, 1), geom.NewVec3(0, -1, 0))

	spread := func(numPhotons int, seeds []int64) float64 {
		var colours []geom.Colour
		for _, seed := range seeds {
			ps := diffuseFloorScene(numPhotons)
			ps.Setup(rand.New(rand.NewSource(seed)))
			c, _ := ps.RayTrace(ray, 0, rand.New(rand.NewSource(1)))
			colours = append(colours, c)
		}
		var mean geom.Colour
		for _, c := range colours {
			mean = mean.Add(c)
		}
		mean = mean.Divide(float64(len(colours)))
		var variance float64
		for _, c := range colours {
			d := c.R - mean.R
			variance += d * d
		}
		return variance / float64(len(colours))
	}

	seeds := []int64{1, 2, 3, 4, 5}
	lowCount := spread(40, seeds)
	highCount := spread(4000, seeds)

	if highCount > lowCount {
		t.Errorf("variance across independent runs with 4000 photons (%v) should not exceed that with 40 photons (%v)", highCount, lowCount)
	}
}

func TestRandomPointOnSphereStaysOnSurface(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	center := geom.NewVertex(1, 2, 3, 1)
	radius := 4.0

	for i := 0; i < 20; i++ {
		p := randomPointOnSphere(center, radius, rng)
		d := p.Vec3().Subtract(center.Vec3()).Length()
		if math.Abs(d-radius) > 1e-9 {
			t.Errorf("point %v is at distance %v from centre, want %v", p, d, radius)
		}
	}
}
