package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// DefaultSharpEdgeAngle is the crease angle above which an edge is drawn in a wireframe.
const DefaultSharpEdgeAngle = 35 * s1.Degree

// Number of decimal places kept when welding coincident vertices.
const edgeWeldPrecision = 1e4

// Segment is a line segment between two points.
type Segment struct {
	Start r3.Vector
	End   r3.Vector
}

type weldedPoint [3]int64

func weld(v r3.Vector) weldedPoint {
	return weldedPoint{
		int64(math.Round(v.X * edgeWeldPrecision)),
		int64(math.Round(v.Y * edgeWeldPrecision)),
		int64(math.Round(v.Z * edgeWeldPrecision)),
	}
}

type weldedEdge struct {
	from, to weldedPoint
}

type openEdge struct {
	start, end r3.Vector
	normal     r3.Vector
	closed     bool
}

// SharpEdges returns the mesh edges where adjacent faces meet at an angle of at least
// threshold, plus every boundary edge used by a single face. Vertices closer than the weld
// precision are treated as one, so meshes whose faces do not share indices still pair up.
// The output order is deterministic for a given mesh.
func SharpEdges(m *Mesh, threshold s1.Angle) []Segment {
	thresholdDot := math.Cos(threshold.Radians())

	var segments []Segment
	open := map[weldedEdge]int{}
	var pending []*openEdge

	for i := 0; i+2 < len(m.Indices); i += 3 {
		pts := [3]r3.Vector{
			m.Positions[m.Indices[i]],
			m.Positions[m.Indices[i+1]],
			m.Positions[m.Indices[i+2]],
		}
		keys := [3]weldedPoint{weld(pts[0]), weld(pts[1]), weld(pts[2])}
		if keys[0] == keys[1] || keys[1] == keys[2] || keys[2] == keys[0] {
			continue
		}
		normal := PlaneNormal(pts[0], pts[1], pts[2])

		for j := 0; j < 3; j++ {
			next := (j + 1) % 3
			edge := weldedEdge{keys[j], keys[next]}
			reverse := weldedEdge{keys[next], keys[j]}
			if idx, ok := open[reverse]; ok && !pending[idx].closed {
				if normal.Dot(pending[idx].normal) <= thresholdDot {
					segments = append(segments, Segment{pts[j], pts[next]})
				}
				pending[idx].closed = true
				continue
			}
			if _, ok := open[edge]; !ok {
				open[edge] = len(pending)
				pending = append(pending, &openEdge{start: pts[j], end: pts[next], normal: normal})
			}
		}
	}
	for _, e := range pending {
		if !e.closed {
			segments = append(segments, Segment{e.start, e.end})
		}
	}
	return segments
}
