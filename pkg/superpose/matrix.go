package superpose

import (
	"fmt"

	"github.com/andrew-torda/ab_rmsd/pdb/cmmn"
	"gonum.org/v1/gonum/mat"
)

// FromMatrix turns an N x 3 matrix into a point set.
func FromMatrix(m mat.Matrix) (cmmn.XyzSl, error) {
	r, c := m.Dims()
	if c != 3 {
		return nil, fmt.Errorf("%w: matrix is %dx%d, wanted N x 3", ErrShape, r, c)
	}
	pts := make(cmmn.XyzSl, r)
	for i := range pts {
		pts[i] = cmmn.Xyz{X: m.At(i, 0), Y: m.At(i, 1), Z: m.At(i, 2)}
	}
	return pts, nil
}

// Matrix returns the points as an N x 3 matrix. An empty set gives
// an empty matrix, since gonum will not make one with zero rows.
func Matrix(pts cmmn.XyzSl) *mat.Dense {
	if len(pts) == 0 {
		return &mat.Dense{}
	}
	m := mat.NewDense(len(pts), 3, nil)
	for i, p := range pts {
		m.SetRow(i, []float64{p.X, p.Y, p.Z})
	}
	return m
}
