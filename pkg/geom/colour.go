package geom

// Colour is linear RGBA. Alpha is carried through the pipeline but never
// used for blending; it exists so that framebuffer output can round-trip it.
type Colour struct {
	R, G, B, A float64
}

// NewColour creates a new Colour.
func NewColour(r, g, b, a float64) Colour {
	return Colour{R: r, G: g, B: b, A: a}
}

// Black is the zero-value colour, spelled out for readability at call sites.
var Black = Colour{}

// White is fully lit, opaque white.
var White = Colour{R: 1, G: 1, B: 1, A: 1}

// Add returns the componentwise sum of two colours.
func (c Colour) Add(other Colour) Colour {
	return Colour{c.R + other.R, c.G + other.G, c.B + other.B, c.A + other.A}
}

// Multiply returns the componentwise product of two colours (modulation).
func (c Colour) Multiply(other Colour) Colour {
	return Colour{c.R * other.R, c.G * other.G, c.B * other.B, c.A * other.A}
}

// Scale returns the colour scaled by a scalar.
func (c Colour) Scale(s float64) Colour {
	return Colour{c.R * s, c.G * s, c.B * s, c.A * s}
}

// Divide returns the colour divided by a scalar. Division by zero yields the
// zero colour rather than propagating Inf/NaN through the image.
func (c Colour) Divide(s float64) Colour {
	if s == 0 {
		return Colour{}
	}
	return c.Scale(1.0 / s)
}
