package spatialmath

import (
	"encoding/json"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Mesh is an indexed triangle mesh. Every three consecutive entries of Indices name the
// corners of one triangle in Positions. Normals holds one normal per position.
type Mesh struct {
	Positions []r3.Vector
	Normals   []r3.Vector
	Indices   []int
}

// NumTriangles returns the number of triangles in the mesh.
func (m *Mesh) NumTriangles() int {
	return len(m.Indices) / 3
}

// Triangles materializes the mesh faces.
func (m *Mesh) Triangles() []*Triangle {
	tris := make([]*Triangle, 0, m.NumTriangles())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tris = append(tris, NewTriangle(
			m.Positions[m.Indices[i]],
			m.Positions[m.Indices[i+1]],
			m.Positions[m.Indices[i+2]],
		))
	}
	return tris
}

// Translate moves every position by offset.
func (m *Mesh) Translate(offset r3.Vector) {
	for i := range m.Positions {
		m.Positions[i] = m.Positions[i].Add(offset)
	}
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Positions: append([]r3.Vector(nil), m.Positions...),
		Normals:   append([]r3.Vector(nil), m.Normals...),
		Indices:   append([]int(nil), m.Indices...),
	}
}

// ComputeVertexNormals replaces Normals with the area weighted average of the normals of
// the faces sharing each vertex.
func (m *Mesh) ComputeVertexNormals() {
	normals := make([]r3.Vector, len(m.Positions))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		n := faceNormal(m.Positions[a], m.Positions[b], m.Positions[c])
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}
	for i, n := range normals {
		normals[i] = n.Normalize()
	}
	m.Normals = normals
}

// CheckValid verifies that every index refers to a position and the index count describes whole triangles.
func (m *Mesh) CheckValid() error {
	if len(m.Indices)%3 != 0 {
		return errors.Errorf("mesh index count %d is not a multiple of 3", len(m.Indices))
	}
	if len(m.Normals) != 0 && len(m.Normals) != len(m.Positions) {
		return errors.Errorf("mesh has %d normals for %d positions", len(m.Normals), len(m.Positions))
	}
	for _, idx := range m.Indices {
		if idx < 0 || idx >= len(m.Positions) {
			return errors.Errorf("mesh index %d out of range [0, %d)", idx, len(m.Positions))
		}
	}
	return nil
}

type meshJSON struct {
	Positions []float64 `json:"positions"`
	Normals   []float64 `json:"normals"`
	Indices   []int     `json:"indices"`
}

// MarshalJSON encodes the mesh as flat xyz buffers.
func (m *Mesh) MarshalJSON() ([]byte, error) {
	return json.Marshal(meshJSON{
		Positions: flatten(m.Positions),
		Normals:   flatten(m.Normals),
		Indices:   m.Indices,
	})
}

func flatten(vs []r3.Vector) []float64 {
	out := make([]float64, 0, 3*len(vs))
	for _, v := range vs {
		out = append(out, v.X, v.Y, v.Z)
	}
	return out
}
