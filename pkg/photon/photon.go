// Package photon implements the two-pass photon mapping pipeline: photon
// emission and Russian-roulette tracing, a kd-tree spatial index over the
// resulting photons, and density-estimation radiance gathering used to add
// indirect illumination and caustics on top of the direct-lighting renderer.
package photon

import "github.com/ahartley/photontracer/pkg/geom"

// Kind records why a photon was deposited, so radiance estimation and
// shadow estimation can filter the map to the subset they need.
type Kind int

const (
	// DirectIllumination marks a photon's first deposit straight from its
	// emitting light, before any bounce.
	DirectIllumination Kind = iota
	// ShadowPhoton marks a continuation cast straight through an absorbing
	// surface, used only to estimate occlusion.
	ShadowPhoton
	// IndirectIllumination marks a photon deposited after at least one
	// Reflect or Transmit bounce.
	IndirectIllumination
)

// Photon is one deposit from the emission pass: a 3D point used as the
// kd-tree key, the direction it was travelling, its carried intensity, and
// why it was recorded.
type Photon struct {
	Position  geom.Vertex
	Direction geom.Vec3
	Intensity geom.Colour
	Kind      Kind
}
