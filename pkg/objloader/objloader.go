// Package objloader parses Wavefront OBJ files into the flat vertex/normal/
// triangle arrays geometry.NewPolyMesh expects.
package objloader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ahartley/photontracer/pkg/geom"
	"github.com/ahartley/photontracer/pkg/geometry"
)

// IoError wraps a failure to open or read the source file.
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("objloader: reading %q: %v", e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// ParseError reports a malformed line, with its 1-based line number.
type ParseError struct {
	Line   int
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("objloader: line %d: %s", e.Line, e.Detail)
}

// Mesh is the flattened result of parsing an OBJ file, ready to hand to
// geometry.NewPolyMesh.
type Mesh struct {
	Vertices  []geom.Vertex
	Normals   []geom.Vertex
	Triangles []geometry.Triangle
}

// Load reads the OBJ file at path and parses it.
func Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IoError{Path: path, Err: err}
	}
	defer f.Close()

	mesh, err := Parse(f)
	if err != nil {
		if _, ok := err.(*ParseError); ok {
			return nil, err
		}
		return nil, &IoError{Path: path, Err: err}
	}
	return mesh, nil
}

// Parse reads OBJ data from r. It accepts "v" (vertex), "vn" (vertex
// normal) and "f" (face) lines, ignoring everything else. Faces with more
// than three vertices are triangulated fan-style around their first
// vertex; each resulting triangle's face normal is the normalised cross
// product of its first two edges, used when the mesh is built flat-shaded.
func Parse(r io.Reader) (*Mesh, error) {
	mesh := &Mesh{}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseXYZW(fields[1:], lineNum)
			if err != nil {
				return nil, err
			}
			mesh.Vertices = append(mesh.Vertices, v)

		case "vn":
			n, err := parseXYZW(fields[1:], lineNum)
			if err != nil {
				return nil, err
			}
			mesh.Normals = append(mesh.Normals, n)

		case "f":
			tris, err := parseFace(fields[1:], mesh, lineNum)
			if err != nil {
				return nil, err
			}
			mesh.Triangles = append(mesh.Triangles, tris...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return mesh, nil
}

func parseXYZW(fields []string, lineNum int) (geom.Vertex, error) {
	if len(fields) < 3 {
		return geom.Vertex{}, &ParseError{Line: lineNum, Detail: "expected three floats"}
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return geom.Vertex{}, &ParseError{Line: lineNum, Detail: "invalid x: " + err.Error()}
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return geom.Vertex{}, &ParseError{Line: lineNum, Detail: "invalid y: " + err.Error()}
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return geom.Vertex{}, &ParseError{Line: lineNum, Detail: "invalid z: " + err.Error()}
	}
	return geom.NewVertex(x, y, z, 1), nil
}

// faceVertex is one 1-indexed "v/t/n" spec from a face line; the texture
// and normal slots are optional, per the OBJ format.
type faceVertex struct {
	vertexIndex int
	normalIndex int
	hasNormal   bool
}

func parseFaceVertex(spec string, lineNum int) (faceVertex, error) {
	parts := strings.Split(spec, "/")
	v, err := strconv.Atoi(parts[0])
	if err != nil {
		return faceVertex{}, &ParseError{Line: lineNum, Detail: "invalid vertex index: " + err.Error()}
	}

	fv := faceVertex{vertexIndex: v - 1}
	if len(parts) >= 3 && parts[2] != "" {
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			return faceVertex{}, &ParseError{Line: lineNum, Detail: "invalid normal index: " + err.Error()}
		}
		fv.normalIndex = n - 1
		fv.hasNormal = true
	}
	return fv, nil
}

// parseFace triangulates a face line fan-style: (v0,vi,vi+1) for i in
// [1, faceSize-2].
func parseFace(fields []string, mesh *Mesh, lineNum int) ([]geometry.Triangle, error) {
	if len(fields) < 3 {
		return nil, &ParseError{Line: lineNum, Detail: "face needs at least three vertices"}
	}

	verts := make([]faceVertex, len(fields))
	for i, spec := range fields {
		fv, err := parseFaceVertex(spec, lineNum)
		if err != nil {
			return nil, err
		}
		verts[i] = fv
	}

	var triangles []geometry.Triangle
	v0 := verts[0]
	for i := 1; i < len(verts)-1; i++ {
		v1, v2 := verts[i], verts[i+1]

		if v0.vertexIndex < 0 || v0.vertexIndex >= len(mesh.Vertices) ||
			v1.vertexIndex < 0 || v1.vertexIndex >= len(mesh.Vertices) ||
			v2.vertexIndex < 0 || v2.vertexIndex >= len(mesh.Vertices) {
			return nil, &ParseError{Line: lineNum, Detail: "face references an out-of-range vertex index"}
		}

		p0 := mesh.Vertices[v0.vertexIndex].Vec3()
		p1 := mesh.Vertices[v1.vertexIndex].Vec3()
		p2 := mesh.Vertices[v2.vertexIndex].Vec3()
		faceNormal := p1.Subtract(p0).Cross(p2.Subtract(p0)).Normalize()

		tri := geometry.Triangle{
			VertexIndices: [3]int{v0.vertexIndex, v1.vertexIndex, v2.vertexIndex},
			FaceNormal:    faceNormal,
		}
		if v0.hasNormal && v1.hasNormal && v2.hasNormal {
			tri.VertexNormalIndices = [3]int{v0.normalIndex, v1.normalIndex, v2.normalIndex}
		}
		triangles = append(triangles, tri)
	}

	return triangles, nil
}
