// Package geometry implements the ray-scene intersection kernel: a closed
// tagged union over primitive and composite shapes (sphere, plane, general
// quadric, triangle mesh, and CSG trees), dispatched by exhaustive switch
// rather than per-shape interfaces, following the tagged-union design the
// photon tracing and shading kernels also use.
package geometry

import (
	"sort"

	"github.com/ahartley/photontracer/pkg/geom"
)

// HitPool is the ordered list of entering/exiting intersections a ray
// accumulates against an object, kept sorted by distance. CSG merges two
// children's pools by walking both in lockstep (see csg.go); every other
// shape just inserts its own hits.
type HitPool struct {
	hits []geom.Hit
}

// Insert adds a hit, keeping the pool sorted by distance.
func (p *HitPool) Insert(h geom.Hit) {
	i := sort.Search(len(p.hits), func(i int) bool { return p.hits[i].Distance >= h.Distance })
	p.hits = append(p.hits, geom.Hit{})
	copy(p.hits[i+1:], p.hits[i:])
	p.hits[i] = h
}

// Hits returns the pool's hits in ascending distance order.
func (p *HitPool) Hits() []geom.Hit { return p.hits }

// Len reports the number of hits currently in the pool.
func (p *HitPool) Len() int { return len(p.hits) }

// FirstPositive returns the first hit with strictly positive distance,
// i.e. the nearest intersection the ray will actually reach.
func (p *HitPool) FirstPositive() (geom.Hit, bool) {
	for _, h := range p.hits {
		if h.Distance > 0 {
			return h, true
		}
	}
	return geom.Hit{}, false
}
