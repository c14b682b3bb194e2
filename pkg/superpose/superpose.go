// 19 Oct 2026

// Package superpose finds the rigid body rotation and translation that
// best puts one set of points onto another (Kabsch) and calculates
// root mean square deviations.
//
// Point sets are cmmn.XyzSl. Point i of one set corresponds to point i
// of the other, so sets that are compared or superposed must have the
// same length.
// The rotation comes from the singular value decomposition of the 3x3
// covariance matrix, A = U S V^T. With D = diag(1, 1, d), the rotation is
// R = U D V^T and the translation is t = c_target - R c_source.
// d is the sign of det(U) det(V), not the sign of det(A). When det(A) is
// not zero, the two are the same. When det(A) is exactly zero (all points
// in a plane or on a line), taking sign(0) as +1 can give a reflection,
// while det(U) det(V) is still +1 or -1 and picks the proper rotation. So
// d may be -1 when det(A) is 0, D is never singular and R always has
// determinant +1. For points on a line, any rotation about the line
// is equally good and we return the one the decomposition gives us.
package superpose

import (
	"fmt"
	"math"

	"github.com/andrew-torda/ab_rmsd/pdb/cmmn"
	"gonum.org/v1/gonum/mat"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrShape = Error("shape mismatch")
	ErrSVD   = Error("singular value decomposition failed")
)

// Transform is a proper rotation followed by a translation.
type Transform struct {
	Rot   *mat.Dense    // 3 x 3
	Trans *mat.VecDense // length 3
}

// Identity returns the transform that does nothing.
func Identity() Transform {
	return Transform{
		Rot:   mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}),
		Trans: mat.NewVecDense(3, nil),
	}
}

// Det returns the determinant of the rotation. It should be 1.
func (tr Transform) Det() float64 { return mat.Det(tr.Rot) }

// check makes sure the rotation is 3x3 and the translation has three
// elements.
func (tr Transform) check() error {
	if tr.Rot == nil || tr.Trans == nil {
		return fmt.Errorf("%w: transform has no rotation or translation", ErrShape)
	}
	if r, c := tr.Rot.Dims(); r != 3 || c != 3 {
		return fmt.Errorf("%w: rotation is %dx%d, wanted 3x3", ErrShape, r, c)
	}
	if n := tr.Trans.Len(); n != 3 {
		return fmt.Errorf("%w: translation has length %d, wanted 3", ErrShape, n)
	}
	return nil
}

// sameLen checks two point sets can be compared.
func sameLen(a, b cmmn.XyzSl) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: %d points versus %d", ErrShape, len(a), len(b))
	}
	if len(a) == 0 {
		return fmt.Errorf("%w: no points", ErrShape)
	}
	return nil
}

// centroid is the average position of a set of points.
func centroid(pts cmmn.XyzSl) cmmn.Xyz {
	var c cmmn.Xyz
	for _, p := range pts {
		c = c.Add(p)
	}
	n := float64(len(pts))
	return cmmn.Xyz{X: c.X / n, Y: c.Y / n, Z: c.Z / n}
}

// centered returns an N x 3 matrix of the points with c subtracted.
func centered(pts cmmn.XyzSl, c cmmn.Xyz) *mat.Dense {
	m := mat.NewDense(len(pts), 3, nil)
	for i, p := range pts {
		d := p.Sub(c)
		m.SetRow(i, []float64{d.X, d.Y, d.Z})
	}
	return m
}

func xyzVec(x cmmn.Xyz) *mat.VecDense { return mat.NewVecDense(3, []float64{x.X, x.Y, x.Z}) }

// EstimateTransform returns the rotation and translation which, applied
// to source, minimise the mean squared distance to target.
func EstimateTransform(target, source cmmn.XyzSl) (Transform, error) {
	if err := sameLen(target, source); err != nil {
		return Transform{}, err
	}
	ct, cs := centroid(target), centroid(source)

	var a mat.Dense // covariance, target^T source
	a.Mul(centered(target, ct).T(), centered(source, cs))

	var svd mat.SVD
	if ok := svd.Factorize(&a, mat.SVDFull); !ok {
		return Transform{}, ErrSVD
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	d := 1.0
	if mat.Det(&u)*mat.Det(&v) < 0 {
		d = -1
	}
	corr := mat.NewDiagDense(3, []float64{1, 1, d})
	var ud, rot mat.Dense
	ud.Mul(&u, corr)
	rot.Mul(&ud, v.T())

	var rcs, trans mat.VecDense
	rcs.MulVec(&rot, xyzVec(cs))
	trans.SubVec(xyzVec(ct), &rcs)
	return Transform{Rot: &rot, Trans: &trans}, nil
}

// ApplyTransform returns a new slice with the points rotated, then
// translated. Broken coordinates stay broken.
func ApplyTransform(tr Transform, pts cmmn.XyzSl) (cmmn.XyzSl, error) {
	if err := tr.check(); err != nil {
		return nil, err
	}
	var r [9]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i*3+j] = tr.Rot.At(i, j)
		}
	}
	t := cmmn.Xyz{X: tr.Trans.AtVec(0), Y: tr.Trans.AtVec(1), Z: tr.Trans.AtVec(2)}
	out := make(cmmn.XyzSl, len(pts))
	for i, p := range pts {
		if !p.Ok() {
			out[i] = p
			continue
		}
		out[i] = cmmn.Xyz{
			X: r[0]*p.X + r[1]*p.Y + r[2]*p.Z + t.X,
			Y: r[3]*p.X + r[4]*p.Y + r[5]*p.Z + t.Y,
			Z: r[6]*p.X + r[7]*p.Y + r[8]*p.Z + t.Z,
		}
	}
	return out, nil
}

// RMSD is the root mean square deviation of two point sets, as they are.
// There is no superposition.
func RMSD(a, b cmmn.XyzSl) (float64, error) {
	if err := sameLen(a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a {
		sum += a[i].Sub(b[i]).Len2()
	}
	return math.Sqrt(sum / float64(len(a))), nil
}

// KabschRMSD puts pred on ref if superimpose is set, then returns the
// RMSD. Without superimpose, it is just RMSD.
func KabschRMSD(pred, ref cmmn.XyzSl, superimpose bool) (float64, error) {
	if superimpose {
		tr, err := EstimateTransform(ref, pred)
		if err != nil {
			return 0, err
		}
		if pred, err = ApplyTransform(tr, pred); err != nil {
			return 0, err
		}
	}
	return RMSD(pred, ref)
}
