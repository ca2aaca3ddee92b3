// Package scene implements the direct-lighting renderer: a Scene holds the
// object list, light list and material table, and answers ray-trace and
// shadow-test queries for the camera and material kernel. Scene is built
// once and then read-shared across every rendering goroutine; nothing here
// mutates after setup.
package scene

import (
	"math"
	"math/rand"

	"github.com/ahartley/photontracer/pkg/geom"
	"github.com/ahartley/photontracer/pkg/geometry"
	"github.com/ahartley/photontracer/pkg/light"
	"github.com/ahartley/photontracer/pkg/material"
)

// shadowRayEpsilon nudges a shadow ray's origin toward the light so it
// doesn't immediately re-intersect the surface it was cast from.
const shadowRayEpsilon = 1e-4

// Scene owns every object, light and material in the world, plus the
// recursion depth budget for Global (reflective/refractive) materials.
type Scene struct {
	Objects    []*geometry.SceneObject
	Lights     []*light.Light
	Materials  map[geometry.MaterialID]*material.Material
	MaxRecurse int

	nextMaterialID geometry.MaterialID
}

// New creates an empty scene with the given reflection/refraction
// recursion budget.
func New(maxRecurse int) *Scene {
	return &Scene{Materials: make(map[geometry.MaterialID]*material.Material), MaxRecurse: maxRecurse}
}

// AddMaterial registers a material and returns the handle objects should
// reference it by.
func (s *Scene) AddMaterial(m *material.Material) geometry.MaterialID {
	id := s.nextMaterialID
	s.nextMaterialID++
	s.Materials[id] = m
	return id
}

// AddObject adds an object to the scene.
func (s *Scene) AddObject(o *geometry.SceneObject) {
	s.Objects = append(s.Objects, o)
}

// AddLight adds a light to the scene.
func (s *Scene) AddLight(l *light.Light) {
	s.Lights = append(s.Lights, l)
}

// FindNearestHit returns the closest positive-distance intersection across
// every object in the scene, and the object that produced it.
func (s *Scene) FindNearestHit(ray geom.Ray) (geom.Hit, *geometry.SceneObject, bool) {
	var nearest geom.Hit
	var nearestObject *geometry.SceneObject
	found := false

	for _, obj := range s.Objects {
		hit, ok := obj.FirstHit(ray)
		if !ok {
			continue
		}
		if !found || hit.Distance < nearest.Distance {
			nearest = hit
			nearestObject = obj
			found = true
		}
	}

	return nearest, nearestObject, found
}

// IsOccluded reports whether any object blocks ray before maxDistance.
// Implements material.Occluder.
func (s *Scene) IsOccluded(ray geom.Ray, maxDistance float64) bool {
	for _, obj := range s.Objects {
		hit, ok := obj.FirstHit(ray)
		if ok && hit.Distance > 0 && hit.Distance < maxDistance {
			return true
		}
	}
	return false
}

// IsPointInShadow casts a shadow ray from hitPosition toward the light
// (opposite lightDirection) and reports whether anything blocks it before
// reaching the light. Point lights limit the test to their distance;
// directional lights have no finite limit.
func (s *Scene) IsPointInShadow(hitPosition geom.Vertex, lightPosition geom.Vertex, hasPosition bool, lightDirection geom.Vec3) bool {
	toLight := lightDirection.Negate()
	shadowRay := geom.NewRay(hitPosition, toLight).Offset(toLight, shadowRayEpsilon)

	limit := math.Inf(1)
	if hasPosition {
		limit = lightPosition.Vec3().Subtract(shadowRay.Position.Vec3()).Length()
	}

	return s.IsOccluded(shadowRay, limit)
}

// Trace implements material.Tracer: it traces ray into the scene and
// returns only the resulting colour, discarding the hit distance. Used by
// Global materials recursing into reflection/refraction.
func (s *Scene) Trace(ray geom.Ray, depth int, rng *rand.Rand) geom.Colour {
	colour, _ := s.RayTrace(ray, depth, rng)
	return colour
}

// RayTrace traces ray into the scene and returns both the shaded colour
// and the hit distance (0 for a miss), as the camera needs both to
// populate the colour and depth framebuffers.
func (s *Scene) RayTrace(ray geom.Ray, depth int, rng *rand.Rand) (geom.Colour, float64) {
	hit, obj, ok := s.FindNearestHit(ray)
	if !ok {
		return geom.Black, 0
	}

	mat := s.Materials[obj.MaterialID]
	if mat == nil {
		return geom.Black, hit.Distance
	}

	colour := material.ShadeAmbient(s, s, ray, hit, mat, depth, s.MaxRecurse, rng)
	colour = colour.Add(s.computeLighting(hit, mat))
	return colour, hit.Distance
}

func (s *Scene) computeLighting(hit geom.Hit, mat *material.Material) geom.Colour {
	colour := geom.Black

	for _, l := range s.Lights {
		viewerDir := hit.Position.Vec3().Negate().Normalize()
		lightPos, hasPos, lightDir, isLit := l.Sample(hit.Position)

		if lightDir.Dot(hit.Normal) > 0 {
			continue
		}

		if isLit && !s.IsPointInShadow(hit.Position, lightPos, hasPos, lightDir) {
			colour = colour.Add(l.Intensity.Multiply(material.ShadeLight(viewerDir, lightDir, hit, mat)))
		}
	}

	return colour
}
