// Package material implements the shading kernel: a closed tagged union of
// material variants (Phong, Global, AmbientOcclusion, Compound) dispatched
// by exhaustive switch rather than a per-variant interface, so the hot
// shading path stays branch-predictable. Materials never import the scene
// package; recursive ray tracing and occlusion testing are injected through
// the small Tracer/Occluder interfaces defined here and satisfied by
// whatever scene type drives the render (plain Scene or PhotonScene).
package material

import "github.com/ahartley/photontracer/pkg/geom"

// Kind identifies which variant of the Material tagged union is populated.
type Kind int

const (
	Phong Kind = iota
	Global
	AmbientOcclusion
	Compound
)

// Material is a tagged union over the shading models the kernel supports.
// Only the fields for the active Kind are meaningful.
type Material struct {
	Kind Kind

	// Phong
	Ambient   geom.Colour
	Diffuse   geom.Colour
	Specular  geom.Colour
	Shininess float64

	// Global (Fresnel dielectric)
	ReflectWeight geom.Colour
	RefractWeight geom.Colour
	IOR           float64

	// AmbientOcclusion
	AONumSamples int
	AOMinAmount  float64

	// Compound
	Components []*Material
}

// NewPhong creates a Phong material. shininess must be >= 0.
func NewPhong(ambient, diffuse, specular geom.Colour, shininess float64) *Material {
	if shininess < 0 {
		panic("material: Phong shininess must be >= 0")
	}
	return &Material{Kind: Phong, Ambient: ambient, Diffuse: diffuse, Specular: specular, Shininess: shininess}
}

// NewGlobal creates a Fresnel-dielectric material. ior must be > 0.
func NewGlobal(reflectWeight, refractWeight geom.Colour, ior float64) *Material {
	if ior <= 0 {
		panic("material: Global ior must be > 0")
	}
	return &Material{Kind: Global, ReflectWeight: reflectWeight, RefractWeight: refractWeight, IOR: ior}
}

// NewAmbientOcclusion creates an ambient-occlusion material. numSamples must
// be a perfect square and minAmount must lie in [0,1].
func NewAmbientOcclusion(ambient geom.Colour, numSamples int, minAmount float64) *Material {
	root := 1
	for root*root < numSamples {
		root++
	}
	if root*root != numSamples {
		panic("material: AmbientOcclusion num_samples must be a perfect square")
	}
	if minAmount < 0 || minAmount > 1 {
		panic("material: AmbientOcclusion min_amount must be in [0,1]")
	}
	return &Material{Kind: AmbientOcclusion, Ambient: ambient, AONumSamples: numSamples, AOMinAmount: minAmount}
}

// NewCompound creates a material that sums the ambient and per-light
// contributions of its components, following the original
// CompoundMaterial's fold-sum composition.
func NewCompound(components ...*Material) *Material {
	return &Material{Kind: Compound, Components: components}
}

// IsSpecular reports whether the material is a perfect mirror/dielectric,
// as opposed to a diffuse (Phong/AO) surface. Used by photon Russian
// roulette and caustic emission (bounding-sphere aiming).
func (m *Material) IsSpecular() bool {
	switch m.Kind {
	case Global:
		return true
	case Compound:
		for _, c := range m.Components {
			if c.IsSpecular() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// IsTransparent reports whether the material refracts light (non-zero
// refraction weight on a Global material).
func (m *Material) IsTransparent() bool {
	switch m.Kind {
	case Global:
		return m.RefractWeight.R > 0 || m.RefractWeight.G > 0 || m.RefractWeight.B > 0
	case Compound:
		for _, c := range m.Components {
			if c.IsTransparent() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// IndexOfRefraction returns the material's IOR, and false if the material
// has no defined IOR (e.g. not a Global/Compound-with-Global material).
func (m *Material) IndexOfRefraction() (float64, bool) {
	switch m.Kind {
	case Global:
		return m.IOR, true
	case Compound:
		for _, c := range m.Components {
			if ior, ok := c.IndexOfRefraction(); ok {
				return ior, true
			}
		}
		return 0, false
	default:
		return 0, false
	}
}
