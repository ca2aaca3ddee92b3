package geometry

import (
	"math"
	"testing"

	"github.com/ahartley/photontracer/pkg/geom"
)

// Two unit spheres centered at x=-0.5 and x=+0.5, overlapping between
// x=-0.5 and x=0.5 along the x axis.
func overlappingSpheres() (*SceneObject, *SceneObject) {
	left := NewSphere(geom.NewVertex(-0.5, 0, 0, 1), 1, 0)
	right := NewSphere(geom.NewVertex(0.5, 0, 0, 1), 1, 0)
	return left, right
}

func rayAlongX() geom.Ray {
	return geom.NewRay(geom.NewVertex(-5, 0, 0, 1), geom.NewVec3(1, 0, 0))
}

func TestCSGUnionSpansBothSpheres(t *testing.T) {
	left, right := overlappingSpheres()
	csg := NewCSG(Union, left, right, 0)

	hit, ok := csg.FirstHit(rayAlongX())
	if !ok {
		t.Fatal("expected union entry hit")
	}
	// Enters the union at the left sphere's near surface: x=-0.5-1=-1.5
	if math.Abs(hit.Distance-3.5) > 1e-9 {
		t.Errorf("union entry distance = %v, want 3.5", hit.Distance)
	}

	pool := csg.GenerateHitPool(rayAlongX())
	hits := pool.Hits()
	if len(hits) != 2 {
		t.Fatalf("union of two overlapping spheres should yield 2 hits (one span), got %d: %+v", len(hits), hits)
	}
	// Exits the union at the right sphere's far surface: x=0.5+1=1.5
	if math.Abs(hits[1].Distance-6.5) > 1e-9 {
		t.Errorf("union exit distance = %v, want 6.5", hits[1].Distance)
	}
}

func TestCSGIntersectionIsOnlyOverlap(t *testing.T) {
	left, right := overlappingSpheres()
	csg := NewCSG(Intersect, left, right, 0)

	pool := csg.GenerateHitPool(rayAlongX())
	hits := pool.Hits()
	if len(hits) != 2 {
		t.Fatalf("intersection should yield 2 hits (one span), got %d: %+v", len(hits), hits)
	}
	// Overlap region along x is [-0.5, 0.5].
	if math.Abs(hits[0].Distance-4.5) > 1e-9 {
		t.Errorf("intersection entry distance = %v, want 4.5", hits[0].Distance)
	}
	if math.Abs(hits[1].Distance-5.5) > 1e-9 {
		t.Errorf("intersection exit distance = %v, want 5.5", hits[1].Distance)
	}
}

func TestCSGDifferenceRemovesOverlap(t *testing.T) {
	left, right := overlappingSpheres()
	csg := NewCSG(Difference, left, right, 0)

	pool := csg.GenerateHitPool(rayAlongX())
	hits := pool.Hits()
	if len(hits) != 2 {
		t.Fatalf("left-minus-right should yield 2 hits (one span), got %d: %+v", len(hits), hits)
	}
	// left sphere spans [-1.5,0.5]; right covers [-0.5,1.5]; difference is [-1.5,-0.5].
	if math.Abs(hits[0].Distance-3.5) > 1e-9 {
		t.Errorf("difference entry distance = %v, want 3.5", hits[0].Distance)
	}
	if math.Abs(hits[1].Distance-4.5) > 1e-9 {
		t.Errorf("difference exit distance = %v, want 4.5", hits[1].Distance)
	}
}
