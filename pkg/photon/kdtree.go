package photon

import (
	"math"
	"sort"

	"github.com/ahartley/photontracer/pkg/geom"
)

// Map is a balanced kd-tree over photon positions, built once from an
// emission pass and queried many times during rendering. It never mutates
// after construction, so a single instance is shared by reference across
// every rendering goroutine.
type Map struct {
	root  *kdNode
	count int
}

type kdNode struct {
	photon Photon
	left   *kdNode
	right  *kdNode
}

// Build constructs a kd-tree from photons, splitting on the median at each
// level and cycling the split axis X, Y, Z with tree depth (there is no
// notion of a "longest axis" for a point cloud the way there is for an
// AABB, so the cycle takes its place).
func Build(photons []Photon) *Map {
	working := make([]Photon, len(photons))
	copy(working, photons)
	return &Map{root: buildNode(working, 0), count: len(photons)}
}

func buildNode(photons []Photon, depth int) *kdNode {
	if len(photons) == 0 {
		return nil
	}

	axis := depth % 3
	sort.Slice(photons, func(i, j int) bool {
		return axisValue(photons[i].Position, axis) < axisValue(photons[j].Position, axis)
	})

	mid := len(photons) / 2
	return &kdNode{
		photon: photons[mid],
		left:   buildNode(photons[:mid], depth+1),
		right:  buildNode(photons[mid+1:], depth+1),
	}
}

func axisValue(v geom.Vertex, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Count returns the number of photons stored in the map.
func (m *Map) Count() int {
	return m.count
}

// Within returns every photon within radius of point. The order is
// unspecified.
func (m *Map) Within(point geom.Vertex, radius float64) []Photon {
	var found []Photon
	m.visit(m.root, 0, point, radius, func(p Photon) {
		found = append(found, p)
	})
	return found
}

// CountWithin is equivalent to len(Within(point, radius)) but avoids
// allocating the result slice.
func (m *Map) CountWithin(point geom.Vertex, radius float64) int {
	count := 0
	m.visit(m.root, 0, point, radius, func(Photon) {
		count++
	})
	return count
}

func (m *Map) visit(n *kdNode, depth int, point geom.Vertex, radius float64, each func(Photon)) {
	if n == nil {
		return
	}

	d := n.photon.Position.Vec3().Subtract(point.Vec3()).Length()
	if d <= radius {
		each(n.photon)
	}

	axis := depth % 3
	diff := axisValue(point, axis) - axisValue(n.photon.Position, axis)
	near, far := n.left, n.right
	if diff > 0 {
		near, far = n.right, n.left
	}

	m.visit(near, depth+1, point, radius, each)
	if math.Abs(diff) <= radius {
		m.visit(far, depth+1, point, radius, each)
	}
}
