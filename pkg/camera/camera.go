// Package camera implements the three camera variants that drive the
// framebuffer: a single-threaded teaching pinhole, a parallel full pinhole
// with an arbitrary placement, and a stratified-sampling variant of the
// latter for anti-aliasing.
package camera

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"github.com/ahartley/photontracer/pkg/framebuffer"
	"github.com/ahartley/photontracer/pkg/geom"
	"github.com/ahartley/photontracer/pkg/sampler"
)

// Kind identifies which variant of the Camera tagged union is populated.
type Kind int

const (
	Simple Kind = iota
	Full
	Sampling
)

// Renderer answers one ray-trace query, returning shaded colour and hit
// distance. Both scene.Scene and photon.Scene implement it.
type Renderer interface {
	RayTrace(ray geom.Ray, depth int, rng *rand.Rand) (geom.Colour, float64)
}

// Camera is a tagged union over the three supported camera variants.
type Camera struct {
	Kind   Kind
	Width  int
	Height int
	FOV    float64

	// Full, Sampling
	Position, LookAt geom.Vertex
	Up               geom.Vec3
	u, v, w          geom.Vec3

	// Sampling only
	NumSamples int
}

// NewSimpleCamera creates an axis-aligned pinhole camera at the origin,
// looking down +Z. Rendered single-threaded, for teaching only.
func NewSimpleCamera(width, height int, fov float64) *Camera {
	return &Camera{Kind: Simple, Width: width, Height: height, FOV: fov}
}

// NewFullCamera creates a pinhole camera placed by position/look-at/up,
// rendered in parallel by scanline.
func NewFullCamera(width, height int, fov float64, position, lookAt geom.Vertex, up geom.Vec3) *Camera {
	c := &Camera{Kind: Full, Width: width, Height: height, FOV: fov, Position: position, LookAt: lookAt, Up: up}
	c.deriveBasis()
	return c
}

// NewSamplingCamera creates a FullCamera that additionally jitters
// numSamples stratified sub-pixel offsets per pixel and averages the
// result, for anti-aliasing. numSamples must be a perfect square.
func NewSamplingCamera(width, height int, fov float64, position, lookAt geom.Vertex, up geom.Vec3, numSamples int) *Camera {
	if !sampler.IsPerfectSquare(numSamples) {
		panic("camera: NumSamples must be a perfect square")
	}
	c := &Camera{Kind: Sampling, Width: width, Height: height, FOV: fov, Position: position, LookAt: lookAt, Up: up, NumSamples: numSamples}
	c.deriveBasis()
	return c
}

func (c *Camera) deriveBasis() {
	c.w = c.Position.Vec3().Subtract(c.LookAt.Vec3()).Normalize()
	c.u = c.Up.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)
}

// rayFor builds the camera ray through pixel (x, y). rng supplies the
// sub-pixel jitter for Sampling; other variants ignore it.
func (c *Camera) rayFor(x, y int, rng *rand.Rand) geom.Ray {
	switch c.Kind {
	case Simple:
		fx := (float64(x) + 0.5) / float64(c.Width)
		fy := (float64(y) + 0.5) / float64(c.Height)
		dir := geom.NewVec3(fx-0.5, 0.5-fy, c.FOV).Normalize()
		return geom.NewRay(geom.NewVertex(0, 0, 0, 1), dir)
	default: // Full
		return c.rayThroughOffset(x, y, 0.5, 0.5)
	}
}

func (c *Camera) rayThroughOffset(x, y int, ox, oy float64) geom.Ray {
	xv := (float64(x)+ox)/float64(c.Width) - 0.5
	yv := 0.5 - (float64(y)+oy)/float64(c.Height)
	dir := c.u.Multiply(xv).Add(c.v.Multiply(yv)).Subtract(c.w.Multiply(c.FOV)).Normalize()
	return geom.NewRay(c.Position, dir)
}

// Render drives renderer over every pixel of fb, writing colour and depth.
// Every primary ray starts at recursion depth 0 — renderer carries its own
// recursion budget from construction and counts depth up as it bounces.
// Simple runs single-threaded; Full and Sampling hand scanlines to a pool
// of runtime.NumCPU() worker goroutines, and each row gets its own
// *rand.Rand seeded from seed and the row index so runs are reproducible
// whichever worker renders the row. progress, if
// non-nil, is called after each completed row with (rows done, total rows)
// — it may be called concurrently and is advisory only. ctx is checked
// between rows; on cancellation, already-written pixels are left in place
// and any unstarted rows are abandoned.
func (c *Camera) Render(ctx context.Context, renderer Renderer, fb *framebuffer.Framebuffer, seed int64, progress func(done, total int)) error {
	if c.Kind == Simple {
		return c.renderSequential(ctx, renderer, fb, rand.New(rand.NewSource(seed)), progress)
	}
	return c.renderParallel(ctx, renderer, fb, seed, progress)
}

func (c *Camera) renderSequential(ctx context.Context, renderer Renderer, fb *framebuffer.Framebuffer, rng *rand.Rand, progress func(done, total int)) error {
	for y := 0; y < c.Height; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.renderRow(renderer, fb, y, rng)
		if progress != nil {
			progress(y+1, c.Height)
		}
	}
	return nil
}

func (c *Camera) renderParallel(ctx context.Context, renderer Renderer, fb *framebuffer.Framebuffer, seed int64, progress func(done, total int)) error {
	rows := make(chan int, c.Height)
	for y := 0; y < c.Height; y++ {
		rows <- y
	}
	close(rows)

	numWorkers := runtime.NumCPU()
	if numWorkers > c.Height {
		numWorkers = c.Height
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	var wg sync.WaitGroup
	var progressMu sync.Mutex
	done := 0
	cancelled := ctx.Err() != nil

	for worker := 0; worker < numWorkers; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				if ctx.Err() != nil {
					progressMu.Lock()
					cancelled = true
					progressMu.Unlock()
					continue
				}
				rng := rand.New(rand.NewSource(seed + int64(y)))
				c.renderRow(renderer, fb, y, rng)

				progressMu.Lock()
				done++
				n := done
				progressMu.Unlock()
				if progress != nil {
					progress(n, c.Height)
				}
			}
		}()
	}
	wg.Wait()

	if cancelled {
		return ctx.Err()
	}
	return nil
}

func (c *Camera) renderRow(renderer Renderer, fb *framebuffer.Framebuffer, y int, rng *rand.Rand) {
	for x := 0; x < c.Width; x++ {
		colour, depth := c.samplePixel(renderer, x, y, rng)
		_ = fb.PlotPixel(x, y, colour)
		_ = fb.PlotDepth(x, y, depth)
	}
}

// samplePixel always starts renderer.RayTrace at depth 0 — the recursion
// budget lives on renderer itself, set when the scene was constructed.
func (c *Camera) samplePixel(renderer Renderer, x, y int, rng *rand.Rand) (geom.Colour, float64) {
	if c.Kind != Sampling {
		ray := c.rayFor(x, y, rng)
		return renderer.RayTrace(ray, 0, rng)
	}

	jittered := sampler.NewMultiJittered(c.NumSamples, 1, rng)
	colour, depth := geom.Black, 0.0
	for i := 0; i < c.NumSamples; i++ {
		offset := jittered.Sample()
		ray := c.rayThroughOffset(x, y, offset.X, offset.Y)
		sampleColour, sampleDepth := renderer.RayTrace(ray, 0, rng)
		colour = colour.Add(sampleColour)
		depth += sampleDepth
	}
	n := float64(c.NumSamples)
	return colour.Divide(n), depth / n
}

// ProgressLogger returns a progress callback that prints a percentage to
// stdout, overwriting the previous line as rows complete.
func ProgressLogger(label string) func(done, total int) {
	return func(done, total int) {
		pct := 100 * float64(done) / float64(total)
		fmt.Printf("\r%s: %5.1f%% (%d/%d rows)", label, pct, done, total)
		if done == total {
			fmt.Println()
		}
	}
}
