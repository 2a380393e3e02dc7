package kernel

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/frames/pkg/geom"
)

// --- Mesh helper method tests ---

func TestMeshVertexCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		want     int
	}{
		{"empty", nil, 0},
		{"one vertex", []float32{1, 2, 3}, 1},
		{"four vertices", []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices}
			if got := m.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshTriangleCount(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint32
		want    int
	}{
		{"empty", nil, 0},
		{"one triangle", []uint32{0, 1, 2}, 1},
		{"two triangles", []uint32{0, 1, 2, 2, 3, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Indices: tt.indices}
			if got := m.TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshIsEmpty(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		m := &Mesh{}
		if !m.IsEmpty() {
			t.Error("IsEmpty() = false for empty mesh, want true")
		}
	})
	t.Run("non-empty mesh", func(t *testing.T) {
		m := &Mesh{Vertices: []float32{1, 2, 3}}
		if m.IsEmpty() {
			t.Error("IsEmpty() = true for non-empty mesh, want false")
		}
	})
}

// --- Transform tests ---

// unitTriangle lies in the XY plane with its normal along +Z.
func unitTriangle() *Mesh {
	return &Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:  []uint32{0, 1, 2},
	}
}

func closeTo(a geom.Vec3, b geom.Vec3) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-6 {
			return false
		}
	}
	return true
}

func normalAt(m *Mesh, i int) geom.Vec3 {
	return geom.Vec3{float64(m.Normals[3*i]), float64(m.Normals[3*i+1]), float64(m.Normals[3*i+2])}
}

func TestMeshTransformTranslation(t *testing.T) {
	tr := geom.NewTranslation(1, 2, 3)
	tr.SetName("offset")
	out, err := unitTriangle().Transform(tr)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got := out.Vertex(1); got != (geom.Vec3{2, 2, 3}) {
		t.Errorf("vertex 1 = %v, want [2 2 3]", got)
	}
	if got := normalAt(out, 0); got != (geom.Vec3{0, 0, 1}) {
		t.Errorf("normal = %v, want [0 0 1]", got)
	}
	if out.Frame != "offset" {
		t.Errorf("Frame = %q, want offset", out.Frame)
	}
}

func TestMeshTransformRotation(t *testing.T) {
	// theta=90 turns +Z onto -Y.
	out, err := unitTriangle().Transform(geom.NewRotationEuler(0, 90, 0))
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if got := normalAt(out, 2); !closeTo(got, geom.Vec3{0, -1, 0}) {
		t.Errorf("normal = %v, want [0 -1 0]", got)
	}
	if got := out.Vertex(2); !closeTo(got, geom.Vec3{0, 0, 1}) {
		t.Errorf("vertex 2 = %v, want [0 0 1]", got)
	}
}

func TestMeshTransformScaleKeepsNormalsPerpendicular(t *testing.T) {
	// A slanted face through (1,0,0), (0,1,0), (0,0,1).
	m := &Mesh{
		Vertices: []float32{1, 0, 0, 0, 1, 0, 0, 0, 1},
		Normals:  []float32{1, 1, 1},
		Indices:  []uint32{0, 1, 2},
	}
	s, err := geom.NewScale(2, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	out, err := m.Transform(s)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	n := normalAt(out, 0)
	edge := out.Vertex(1).Sub(out.Vertex(0))
	if math.Abs(n.Dot(edge)) > 1e-6 {
		t.Errorf("normal %v not perpendicular to edge %v", n, edge)
	}
	if math.Abs(n.Length()-1) > 1e-6 {
		t.Errorf("normal %v not unit length", n)
	}
}

func TestMeshTransformReflectionFlipsWinding(t *testing.T) {
	s, err := geom.NewScale(1, 1, -1)
	if err != nil {
		t.Fatal(err)
	}
	out, err := unitTriangle().Transform(s)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	want := []uint32{0, 2, 1}
	for i := range want {
		if out.Indices[i] != want[i] {
			t.Fatalf("Indices = %v, want %v", out.Indices, want)
		}
	}
	if got := normalAt(out, 0); got != (geom.Vec3{0, 0, -1}) {
		t.Errorf("normal = %v, want [0 0 -1]", got)
	}
}

func TestMeshTransformSingular(t *testing.T) {
	h := geom.NewHMatrix()
	h.SetRotation(geom.Mat3{1, 0, 0, 0, 1, 0, 0, 0, 0})
	if _, err := unitTriangle().Transform(h); !errors.Is(err, geom.ErrSingular) {
		t.Errorf("Transform() error = %v, want singular", err)
	}
}
