// Package light implements the scene's light sources: a tagged union over
// directional and point lights, each answering a (position, direction,
// is-lit) sampling query plus a constant intensity.
package light

import "github.com/ahartley/photontracer/pkg/geom"

// Kind identifies which variant of the Light tagged union is populated.
type Kind int

const (
	Directional Kind = iota
	Point
)

// Light is a tagged union over the supported light source types.
type Light struct {
	Kind      Kind
	Direction geom.Vec3 // Directional: direction the light travels, normalised
	Position  geom.Vertex
	Intensity geom.Colour
}

// NewDirectional creates a light with constant intensity shining in
// direction (normalised on construction). Directional lights have no
// position: they are treated as infinitely far away.
func NewDirectional(direction geom.Vec3, intensity geom.Colour) *Light {
	return &Light{Kind: Directional, Direction: direction.Normalize(), Intensity: intensity}
}

// NewPoint creates a light emitting uniformly from a fixed position.
func NewPoint(position geom.Vertex, intensity geom.Colour) *Light {
	return &Light{Kind: Point, Position: position, Intensity: intensity}
}

// Sample returns the direction from the light toward surface (the
// convention every shading and shadow-ray computation expects), the
// light's position if it has one, and whether the light illuminates at
// all (always true for these two variants; a future area or spot light
// could return false outside its cone).
func (l *Light) Sample(surface geom.Vertex) (position geom.Vertex, hasPosition bool, direction geom.Vec3, lit bool) {
	switch l.Kind {
	case Point:
		dir := surface.Vec3().Subtract(l.Position.Vec3()).Normalize()
		return l.Position, true, dir, true
	default: // Directional
		return geom.Vertex{}, false, l.Direction, true
	}
}
