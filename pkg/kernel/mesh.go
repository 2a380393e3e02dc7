// Package kernel holds geometry that frames transforms act on. The sdfx
// subpackage adapts transforms to SDF solids; Mesh covers triangle meshes
// produced by any tessellator.
package kernel

import "github.com/chazu/frames/pkg/geom"

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Frame    string    `json:"frame"`    // name of the frame the coordinates are in
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Vertex returns vertex i.
func (m *Mesh) Vertex(i int) geom.Vec3 {
	return geom.Vec3{float64(m.Vertices[3*i]), float64(m.Vertices[3*i+1]), float64(m.Vertices[3*i+2])}
}

// Transform returns a copy of m expressed in the master frame of t.
// Vertices go through LocalToMaster. Normals go through the inverse
// transpose of the linear block and are renormalized. When t reverses
// orientation the triangle winding is flipped so faces keep pointing out.
// A singular block has no normal mapping and is rejected.
func (m *Mesh) Transform(t geom.Matrix) (*Mesh, error) {
	lin := t.RotationMatrix().MulDiag(t.Scale())
	inv, ok := lin.Inverse()
	if !ok {
		return nil, geom.New(geom.CodeSingular, "Mesh.Transform", "linear block is singular")
	}
	normal := inv.Transpose()

	out := &Mesh{
		Vertices: make([]float32, len(m.Vertices)),
		Normals:  make([]float32, len(m.Normals)),
		Indices:  make([]uint32, len(m.Indices)),
		Frame:    t.Name(),
	}
	for i := 0; i < m.VertexCount(); i++ {
		putVec(out.Vertices, i, t.LocalToMaster(m.Vertex(i)))
	}
	for i := 0; i+2 < len(m.Normals); i += 3 {
		n := geom.Vec3{float64(m.Normals[i]), float64(m.Normals[i+1]), float64(m.Normals[i+2])}
		putVec(out.Normals, i/3, normal.MulVec(n).Normalized())
	}
	copy(out.Indices, m.Indices)
	if lin.Determinant() < 0 {
		for i := 0; i+2 < len(out.Indices); i += 3 {
			out.Indices[i+1], out.Indices[i+2] = out.Indices[i+2], out.Indices[i+1]
		}
	}
	return out, nil
}

func putVec(dst []float32, i int, v geom.Vec3) {
	dst[3*i] = float32(v[0])
	dst[3*i+1] = float32(v[1])
	dst[3*i+2] = float32(v[2])
}
