package material

import (
	"math/rand"

	"github.com/ahartley/photontracer/pkg/geom"
)

// Tracer is the recursion hook a Global material needs to follow its
// reflection and refraction rays back into the scene. Scene and PhotonScene
// both satisfy it; material never imports either, which keeps the
// geometry/material/scene dependency graph acyclic.
type Tracer interface {
	Trace(ray geom.Ray, depth int, rng *rand.Rand) geom.Colour
}

// Occluder answers a binary shadow-ray query, used by AmbientOcclusion to
// test each sampled hemisphere direction for a blocker within maxDistance.
type Occluder interface {
	IsOccluded(ray geom.Ray, maxDistance float64) bool
}
