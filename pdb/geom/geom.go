// Calculate some geometries. For now, just the distances between alpha carbons.

package geom

import (
	"math"

	"github.com/andrew-torda/ab_rmsd/pdb/cmmn"
)

const (
	mindist  = 2.6
	mindist2 = mindist * mindist
	maxdist  = 4.2 // max dist for c_alpha to c_alpha
	maxdist2 = maxdist * maxdist
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrTooBig   = Error("too big")
	ErrTooSmall = Error("too small")
)

// XyzDist gets the distance between two alpha carbons. If it is
// bigger than maxdist or smaller than mindist, it returns
// an error, but the distance is still there.
func XyzDist(x1, x2 cmmn.Xyz) (float64, error) {
	r2 := x1.Sub(x2).Len2()
	r := math.Sqrt(r2)
	if r2 >= maxdist2 {
		return r, ErrTooBig
	}
	if r2 <= mindist2 {
		return r, ErrTooSmall
	}
	return r, nil
}
