package geometry

import "github.com/ahartley/photontracer/pkg/geom"

// csgAction is one instruction from the regularized-boolean merge table: it
// says which of the two child hit lists to emit from (or drop) next, and
// whether an emitted hit counts as entering or exiting the combined solid.
type csgAction int

const (
	aEnter csgAction = iota
	aExit
	aDrop
	bEnter
	bExit
	bDrop
)

// csgActions[mode][state] is Roth's merge table for regularized boolean
// set operations on ray-tape hit lists. state packs three bits: whether the
// next A hit is an entry (4), whether the next B hit is an entry (2), and
// whether A's hit is farther along the ray than B's (1).
var csgActions = [3][8]csgAction{
	Union: {
		aDrop, bDrop, aExit, bDrop,
		aDrop, bExit, aEnter, bEnter,
	},
	Intersect: {
		aExit, bExit, aDrop, bEnter,
		aEnter, bDrop, aDrop, bDrop,
	},
	Difference: {
		aDrop, bEnter, aExit, bExit,
		aDrop, bDrop, aEnter, bDrop,
	},
}

func (o *SceneObject) intersectCSG(ray geom.Ray, pool *HitPool) {
	left := o.Left.GenerateHitPool(ray)
	right := o.Right.GenerateHitPool(ray)

	var result []geom.Hit

	li, ri := 0, 0
	for li < left.Len() && ri < right.Len() {
		state := 0
		if left.hits[li].Entering {
			state += 4
		}
		if right.hits[ri].Entering {
			state += 2
		}
		if left.hits[li].Distance > right.hits[ri].Distance {
			state += 1
		}

		switch csgActions[o.Mode][state] {
		case aEnter:
			h := left.hits[li]
			h.Entering = true
			result = append(result, h)
			li++
		case aExit:
			h := left.hits[li]
			h.Entering = false
			result = append(result, h)
			li++
		case aDrop:
			li++
		case bEnter:
			h := right.hits[ri]
			h.Entering = true
			result = append(result, h)
			ri++
		case bExit:
			h := right.hits[ri]
			h.Entering = false
			result = append(result, h)
			ri++
		case bDrop:
			ri++
		}
	}

	switch o.Mode {
	case Difference:
		if li < left.Len() {
			result = append(result, left.hits[li:]...)
		}
	case Union:
		if li >= left.Len() {
			result = append(result, right.hits[ri:]...)
		} else {
			result = append(result, left.hits[li:]...)
		}
	case Intersect:
		// Once either tape runs out there can be no more overlap.
	}

	for _, h := range result {
		pool.Insert(h)
	}
}
