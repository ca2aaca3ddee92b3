// Package sampler generates low-discrepancy 2D sample sets for anti-aliasing
// and ambient-occlusion hemisphere sampling, following Chiu-Wang-Shirley
// multi-jittered sampling (Suffern, "Ray Tracing from the Ground Up").
package sampler

import (
	"math"
	"math/rand"

	"github.com/ahartley/photontracer/pkg/geom"
)

// MultiJittered produces num_sets independent N-rooks jittered sample sets
// in [0,1)^2, each with its own shuffled draw order, and draws from them
// deterministically per caller via (count, jump) state. A Sampler is meant
// to be owned by a single goroutine (one per framebuffer row); it is not
// safe for concurrent use.
type MultiJittered struct {
	n        int // samples per set, a perfect square
	root     int // sqrt(n)
	numSets  int
	samples  [][]geom.Vec2 // numSets x n
	shuffled [][]int       // numSets x n, permutation of [0,n)

	count int
	jump  int
	rng   *rand.Rand
}

// IsPerfectSquare reports whether n is a perfect square (n=0 counts as
// true, trivially satisfied by zero samples).
func IsPerfectSquare(n int) bool {
	if n < 0 {
		return false
	}
	root := int(math.Round(math.Sqrt(float64(n))))
	return root*root == n
}

// NewMultiJittered builds a sampler for n samples per set (n must be a
// perfect square) across numSets independent sample sets, drawn from rng.
func NewMultiJittered(n, numSets int, rng *rand.Rand) *MultiJittered {
	root := int(math.Round(math.Sqrt(float64(n))))
	if root*root != n {
		panic("sampler: num_samples must be a perfect square")
	}

	s := &MultiJittered{n: n, root: root, numSets: numSets, rng: rng}
	s.samples = make([][]geom.Vec2, numSets)
	s.shuffled = make([][]int, numSets)
	for set := 0; set < numSets; set++ {
		s.samples[set] = s.generateSet()
		s.shuffled[set] = s.shuffledIndices()
	}
	return s
}

// generateSet places one jittered sample per sub-cell of the root x root
// grid, then permutes x-columns within rows and y-rows within columns so
// that every row and every column of the fine n x n grid contains exactly
// one sample (the N-rooks property).
func (s *MultiJittered) generateSet() []geom.Vec2 {
	cell := 1.0 / float64(s.n)
	points := make([]geom.Vec2, s.n)

	for i := 0; i < s.root; i++ {
		for j := 0; j < s.root; j++ {
			idx := i*s.root + j
			x := (float64(i)*float64(s.root) + float64(j) + s.rng.Float64()) * cell
			y := (float64(j)*float64(s.root) + float64(i) + s.rng.Float64()) * cell
			points[idx] = geom.NewVec2(x, y)
		}
	}

	// Shuffle x-coordinates within each row, y-coordinates within each column.
	for i := 0; i < s.root; i++ {
		for j := 0; j < s.root; j++ {
			k := j + s.rng.Intn(s.root-j)
			idxJ := i*s.root + j
			idxK := i*s.root + k
			points[idxJ].X, points[idxK].X = points[idxK].X, points[idxJ].X
		}
	}
	for i := 0; i < s.root; i++ {
		for j := 0; j < s.root; j++ {
			k := j + s.rng.Intn(s.root-j)
			idxJ := j*s.root + i
			idxK := k*s.root + i
			points[idxJ].Y, points[idxK].Y = points[idxK].Y, points[idxJ].Y
		}
	}

	return points
}

func (s *MultiJittered) shuffledIndices() []int {
	idx := make([]int, s.n)
	for i := range idx {
		idx[i] = i
	}
	s.rng.Shuffle(s.n, func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })
	return idx
}

// Sample draws the next 2D sample in [0,1)^2, cycling through a freshly
// chosen set every n draws.
func (s *MultiJittered) Sample() geom.Vec2 {
	if s.count%s.n == 0 {
		s.jump = s.rng.Intn(s.numSets)
	}
	set := s.jump
	index := s.shuffled[set][s.count%s.n]
	s.count++
	return s.samples[set][index]
}

// N returns the number of samples per set.
func (s *MultiJittered) N() int { return s.n }

// CosineHemisphere maps a 2D sample to a direction about the pole (0,1,0)
// with density proportional to cos^e of the polar angle (e=0 is uniform
// over the hemisphere, e=1 is cosine-weighted; larger e narrows the lobe,
// used for Phong-exponent-style sampling).
func CosineHemisphere(sample geom.Vec2, e float64) geom.Vec3 {
	cosTheta := math.Pow(1-sample.Y, 1/(e+1))
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * sample.X
	return geom.NewVec3(sinTheta*math.Cos(phi), cosTheta, sinTheta*math.Sin(phi))
}

// AlignToNormal rotates a hemisphere direction generated about (0,1,0) onto
// the hemisphere around the given unit normal.
func AlignToNormal(dir, normal geom.Vec3) geom.Vec3 {
	up := geom.NewVec3(0, 1, 0)
	if math.Abs(normal.Dot(up)) > 0.999 {
		up = geom.NewVec3(1, 0, 0)
	}
	tangent := up.Cross(normal).Normalize()
	bitangent := normal.Cross(tangent)

	return tangent.Multiply(dir.X).
		Add(normal.Multiply(dir.Y)).
		Add(bitangent.Multiply(dir.Z))
}
