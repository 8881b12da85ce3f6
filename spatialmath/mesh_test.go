package spatialmath

import (
	"encoding/json"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"go.viam.com/test"
)

func TestMeshVertexNormals(t *testing.T) {
	m, err := NewSubdividedBox(r3.Vector{X: 2, Y: 2, Z: 2}, 2, 2, 2)
	test.That(t, err, test.ShouldBeNil)
	original := m.Clone()
	m.ComputeVertexNormals()
	// faces share no vertices, so recomputed normals are the face normals
	for i := range m.Normals {
		test.That(t, R3VectorAlmostEqual(m.Normals[i], original.Normals[i], 1e-12), test.ShouldBeTrue)
	}
}

func TestMeshTranslateAndClone(t *testing.T) {
	m, err := NewSubdividedBox(r3.Vector{X: 1, Y: 1, Z: 1}, 1, 1, 1)
	test.That(t, err, test.ShouldBeNil)
	clone := m.Clone()
	m.Translate(r3.Vector{X: 0.5, Y: 0.5})
	test.That(t, cmp.Diff(clone.Indices, m.Indices), test.ShouldBeEmpty)
	for i := range m.Positions {
		test.That(t, m.Positions[i].Sub(clone.Positions[i]), test.ShouldResemble, r3.Vector{X: 0.5, Y: 0.5})
	}
}

func TestMeshCheckValid(t *testing.T) {
	m := &Mesh{Positions: []r3.Vector{{}, {X: 1}, {Y: 1}}, Indices: []int{0, 1, 2}}
	test.That(t, m.CheckValid(), test.ShouldBeNil)
	m.Indices = []int{0, 1}
	test.That(t, m.CheckValid(), test.ShouldNotBeNil)
	m.Indices = []int{0, 1, 3}
	test.That(t, m.CheckValid(), test.ShouldNotBeNil)
	m.Indices = []int{0, 1, 2}
	m.Normals = []r3.Vector{{Z: 1}}
	test.That(t, m.CheckValid(), test.ShouldNotBeNil)
}

func TestMeshJSON(t *testing.T) {
	m := &Mesh{
		Positions: []r3.Vector{{}, {X: 1}, {Y: 1}},
		Indices:   []int{0, 1, 2},
	}
	m.ComputeVertexNormals()
	data, err := json.Marshal(m)
	test.That(t, err, test.ShouldBeNil)
	var decoded map[string][]float64
	test.That(t, json.Unmarshal(data, &decoded), test.ShouldBeNil)
	test.That(t, decoded["positions"], test.ShouldResemble, []float64{0, 0, 0, 1, 0, 0, 0, 1, 0})
	test.That(t, decoded["normals"], test.ShouldResemble, []float64{0, 0, 1, 0, 0, 1, 0, 0, 1})
	test.That(t, decoded["indices"], test.ShouldResemble, []float64{0, 1, 2})
}
