package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

const maxTriangulationCond = 1e12

// TriangulateRays returns the point minimizing the summed squared perpendicular distance
// to every ray, and the residual distance from that point to each ray. At least two rays
// with non-parallel directions are required.
func TriangulateRays(rays []Ray) (r3.Vector, []float64, error) {
	if len(rays) < 2 {
		return r3.Vector{}, nil, errors.Errorf("need at least 2 rays to triangulate, got %d", len(rays))
	}
	// Each ray contributes (I - d d^T) to the normal equations.
	a := mat.NewSymDense(3, nil)
	b := mat.NewVecDense(3, nil)
	for _, r := range rays {
		if r.Direction.Norm() == 0 {
			return r3.Vector{}, nil, errors.New("cannot triangulate a ray with zero direction")
		}
		d := Normalize(r.Direction)
		dv := []float64{d.X, d.Y, d.Z}
		o := []float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
		for i := 0; i < 3; i++ {
			for j := i; j < 3; j++ {
				p := -dv[i] * dv[j]
				if i == j {
					p++
				}
				a.SetSym(i, j, a.At(i, j)+p)
				b.SetVec(i, b.AtVec(i)+p*o[j])
				if i != j {
					b.SetVec(j, b.AtVec(j)+p*o[i])
				}
			}
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(a); !ok || chol.Cond() > maxTriangulationCond {
		return r3.Vector{}, nil, errors.New("rays are parallel, no unique intersection")
	}
	var x mat.VecDense
	if err := chol.SolveVecTo(&x, b); err != nil {
		return r3.Vector{}, nil, errors.Wrap(err, "failed to solve ray intersection")
	}
	pt := r3.Vector{X: x.AtVec(0), Y: x.AtVec(1), Z: x.AtVec(2)}

	residuals := make([]float64, len(rays))
	for i, r := range rays {
		residuals[i] = r.DistanceToPoint(pt)
	}
	return pt, residuals, nil
}
