// Package framebuffer implements the renderer's output image: a dense grid
// of colour and depth samples written once by the camera, then normalised
// and encoded as two P6 PPM files.
package framebuffer

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/ahartley/photontracer/pkg/geom"
)

// DimensionError reports a framebuffer request that exceeds the
// configured maximum width or height.
type DimensionError struct {
	Width, Height       int
	MaxWidth, MaxHeight int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("framebuffer: requested %dx%d exceeds maximum %dx%d", e.Width, e.Height, e.MaxWidth, e.MaxHeight)
}

// PixelOutOfBounds reports an (X, Y) access outside the framebuffer's
// width/height.
type PixelOutOfBounds struct {
	X, Y, Width, Height int
}

func (e *PixelOutOfBounds) Error() string {
	return fmt.Sprintf("framebuffer: pixel (%d, %d) out of bounds for %dx%d image", e.X, e.Y, e.Width, e.Height)
}

// Framebuffer holds one colour and one depth sample per pixel. Rendering
// fills it row by row from possibly many goroutines; once filled it is
// normalised and written out as PPM images.
type Framebuffer struct {
	Width, Height int
	colour        []geom.Colour
	depth         []float64
}

// New creates a blank width x height framebuffer, rejecting dimensions
// beyond maxWidth/maxHeight.
func New(width, height, maxWidth, maxHeight int) (*Framebuffer, error) {
	if width > maxWidth || height > maxHeight {
		return nil, &DimensionError{Width: width, Height: height, MaxWidth: maxWidth, MaxHeight: maxHeight}
	}
	return &Framebuffer{
		Width:  width,
		Height: height,
		colour: make([]geom.Colour, width*height),
		depth:  make([]float64, width*height),
	}, nil
}

func (fb *Framebuffer) index(x, y int) (int, error) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 0, &PixelOutOfBounds{X: x, Y: y, Width: fb.Width, Height: fb.Height}
	}
	return y*fb.Width + x, nil
}

// PlotPixel writes the colour at (x, y).
func (fb *Framebuffer) PlotPixel(x, y int, c geom.Colour) error {
	i, err := fb.index(x, y)
	if err != nil {
		return err
	}
	fb.colour[i] = c
	return nil
}

// PlotDepth writes the depth sample at (x, y).
func (fb *Framebuffer) PlotDepth(x, y int, d float64) error {
	i, err := fb.index(x, y)
	if err != nil {
		return err
	}
	fb.depth[i] = d
	return nil
}

// GetPixel returns the colour at (x, y).
func (fb *Framebuffer) GetPixel(x, y int) (geom.Colour, error) {
	i, err := fb.index(x, y)
	if err != nil {
		return geom.Colour{}, err
	}
	return fb.colour[i], nil
}

// GetDepth returns the depth sample at (x, y).
func (fb *Framebuffer) GetDepth(x, y int) (float64, error) {
	i, err := fb.index(x, y)
	if err != nil {
		return 0, err
	}
	return fb.depth[i], nil
}

// WriteColourPPM normalises each colour channel independently over its
// observed min/max and writes a binary P6 PPM.
func (fb *Framebuffer) WriteColourPPM(w io.Writer) error {
	minR, maxR := channelBounds(fb.colour, func(c geom.Colour) float64 { return c.R })
	minG, maxG := channelBounds(fb.colour, func(c geom.Colour) float64 { return c.G })
	minB, maxB := channelBounds(fb.colour, func(c geom.Colour) float64 { return c.B })

	bw := bufio.NewWriter(w)
	if err := writePPMHeader(bw, fb.Width, fb.Height); err != nil {
		return err
	}
	for _, c := range fb.colour {
		if _, err := bw.Write([]byte{
			normaliseByte(c.R, minR, maxR),
			normaliseByte(c.G, minG, maxG),
			normaliseByte(c.B, minB, maxB),
		}); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteDepthPPM normalises the depth buffer over its observed min/max and
// writes it as a greyscale (equal R=G=B) P6 PPM.
func (fb *Framebuffer) WriteDepthPPM(w io.Writer) error {
	minD, maxD := math.Inf(1), math.Inf(-1)
	for _, d := range fb.depth {
		minD = math.Min(minD, d)
		maxD = math.Max(maxD, d)
	}

	bw := bufio.NewWriter(w)
	if err := writePPMHeader(bw, fb.Width, fb.Height); err != nil {
		return err
	}
	for _, d := range fb.depth {
		grey := normaliseByte(d, minD, maxD)
		if _, err := bw.Write([]byte{grey, grey, grey}); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writePPMHeader(w *bufio.Writer, width, height int) error {
	_, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", width, height)
	return err
}

func channelBounds(pixels []geom.Colour, channel func(geom.Colour) float64) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, c := range pixels {
		v := channel(c)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// normaliseByte maps v linearly from [min,max] to [0,255], clamping at
// both ends. A degenerate (min==max) range maps everything to 0.
func normaliseByte(v, min, max float64) byte {
	if max <= min {
		return 0
	}
	t := (v - min) / (max - min)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return byte(t * 255)
}
