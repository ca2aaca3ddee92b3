package geometry

import (
	"math"
	"testing"

	"github.com/ahartley/photontracer/pkg/geom"
)

func triangleMesh(smooth bool) *SceneObject {
	vertices := []geom.Vertex{
		geom.NewVertex(0, 0, 0, 1),
		geom.NewVertex(1, 0, 0, 1),
		geom.NewVertex(0.5, 1, 0, 1),
	}
	normals := []geom.Vertex{
		geom.NewVertex(0, 0, 1, 1),
		geom.NewVertex(0, 0, 1, 1),
		geom.NewVertex(0, 0, 1, 1),
	}
	triangles := []Triangle{
		{VertexIndices: [3]int{0, 1, 2}, VertexNormalIndices: [3]int{0, 1, 2}, FaceNormal: geom.NewVec3(0, 0, 1)},
	}
	return NewPolyMesh(vertices, normals, triangles, smooth, 0)
}

func TestPolyMeshTriangleHit(t *testing.T) {
	mesh := triangleMesh(false)
	ray := geom.NewRay(geom.NewVertex(0.5, 0.3, -1, 1), geom.NewVec3(0, 0, 1))

	hit, ok := mesh.FirstHit(ray)
	if !ok {
		t.Fatal("expected hit inside the triangle")
	}
	if math.Abs(hit.Distance-1) > 1e-6 {
		t.Errorf("distance = %v, want 1", hit.Distance)
	}
}

func TestPolyMeshTriangleMiss(t *testing.T) {
	mesh := triangleMesh(false)
	ray := geom.NewRay(geom.NewVertex(5, 5, -1, 1), geom.NewVec3(0, 0, 1))

	if _, ok := mesh.FirstHit(ray); ok {
		t.Error("expected miss outside the triangle")
	}
}

func TestPolyMeshNormalFlipsTowardRay(t *testing.T) {
	mesh := triangleMesh(false)
	ray := geom.NewRay(geom.NewVertex(0.5, 0.3, 1, 1), geom.NewVec3(0, 0, -1))

	hit, ok := mesh.FirstHit(ray)
	if !ok {
		t.Fatal("expected hit from behind the triangle")
	}
	if hit.Normal.Dot(ray.Direction) > 0 {
		t.Errorf("normal %v should oppose ray direction %v", hit.Normal, ray.Direction)
	}
}

func TestPolyMeshBoundingSphereContainsAllVertices(t *testing.T) {
	mesh := triangleMesh(false)
	center, radius, ok := mesh.BoundingSphere()
	if !ok {
		t.Fatal("expected a bounding sphere")
	}
	for _, v := range mesh.Vertices {
		d := v.Vec3().Subtract(center.Vec3()).Length()
		if d > radius+1e-9 {
			t.Errorf("vertex %v lies outside bounding sphere (d=%v, r=%v)", v, d, radius)
		}
	}
}

func TestPolyMeshEmptyMeshHasNoBoundingSphere(t *testing.T) {
	mesh := NewPolyMesh(nil, nil, nil, false, 0)
	if _, _, ok := mesh.BoundingSphere(); ok {
		t.Error("empty mesh should report no bounding sphere")
	}
}
