// 19 Oct 2026

// Package abrmsd compares a predicted antibody structure with the native.
// The prediction is put on the native once, using the backbone of every
// chain both sides have. Then each region (the six CDRs and the heavy and
// light frameworks) gets its own RMSD, with no further superposition.
// This means a CDR that is in the wrong place relative to the framework
// is punished, which would not happen if each CDR were fitted separately.
package abrmsd

import (
	"fmt"
	"sort"

	"github.com/andrew-torda/ab_rmsd/pdb/cmmn"
	"github.com/andrew-torda/ab_rmsd/pkg/antibody"
	"github.com/andrew-torda/ab_rmsd/pkg/superpose"
)

// Scores holds an RMSD for each region that could be compared.
type Scores map[antibody.Region]float64

// Names gives the same scores, but keyed by the region names.
func (s Scores) Names() map[string]float64 {
	ret := make(map[string]float64, len(s))
	for r, v := range s {
		ret[r.String()] = v
	}
	return ret
}

// Regions returns the regions present, in reporting order.
func (s Scores) Regions() []antibody.Region {
	ret := make([]antibody.Region, 0, len(s))
	for r := range s {
		ret = append(ret, r)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

// Compare puts pred onto native and returns the RMSD of each region.
// Regions are those of the native. Only chains present in both
// structures are used. If there are none, the result is empty and there
// is no error. A nil antibody counts as one with no chains. If
// superimposePred is set, pred's coordinates are overwritten with the
// superimposed ones.
func Compare(pred, native *antibody.Antibody, superimposePred bool) (Scores, error) {
	aligned, scores, err := compare(pred, native)
	if err != nil {
		return nil, err
	}
	if superimposePred && aligned != nil {
		copyPos(pred, aligned)
	}
	return scores, nil
}

// Align is Compare, but pred is left alone and the superimposed
// prediction comes back as a new Antibody. If there was nothing to
// compare, the copy is not moved. It is nil only if pred is nil.
func Align(pred, native *antibody.Antibody) (*antibody.Antibody, Scores, error) {
	aligned, scores, err := compare(pred, native)
	if err != nil {
		return nil, nil, err
	}
	if aligned == nil && pred != nil {
		aligned = pred.Clone()
	}
	return aligned, scores, nil
}

// commonKinds returns the kinds of chain both structures have, heavy first.
func commonKinds(pred, native *antibody.Antibody) []antibody.Kind {
	if pred == nil || native == nil {
		return nil
	}
	var kinds []antibody.Kind
	for _, k := range []antibody.Kind{antibody.Heavy, antibody.Light} {
		if pred.Chain(k) != nil && native.Chain(k) != nil {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// compare does the work for Compare and Align. The aligned copy is nil
// when no chain could be compared.
func compare(pred, native *antibody.Antibody) (*antibody.Antibody, Scores, error) {
	scores := make(Scores)
	kinds := commonKinds(pred, native)
	if len(kinds) == 0 {
		return nil, scores, nil
	}

	var predBB, natBB cmmn.XyzSl
	for _, k := range kinds {
		p, n := pred.Chain(k).Backbone(nil), native.Chain(k).Backbone(nil)
		if len(p) != len(n) {
			return nil, nil, fmt.Errorf("%w: %s chain of %s has %d backbone atoms, %s has %d",
				superpose.ErrShape, k, pred.ID, len(p), native.ID, len(n))
		}
		predBB = append(predBB, p...)
		natBB = append(natBB, n...)
	}
	tr, err := superpose.EstimateTransform(natBB, predBB)
	if err != nil {
		return nil, nil, fmt.Errorf("superposing %s on %s: %w", pred.ID, native.ID, err)
	}

	aligned := pred.Clone()
	for _, k := range kinds {
		c := aligned.Chain(k)
		for i := range c.Residues {
			if c.Residues[i].Pos, err = superpose.ApplyTransform(tr, c.Residues[i].Pos); err != nil {
				return nil, nil, err
			}
		}
	}

	// Residue i of pred goes with residue i of native, so the native's
	// labels pick the residues on both sides.
	for _, k := range kinds {
		pc, nc := aligned.Chain(k), native.Chain(k)
		for _, r := range k.Regions() {
			mask := nc.Mask(r)
			p, n := pc.Backbone(mask), nc.Backbone(mask)
			if len(n) == 0 {
				continue
			}
			rmsd, err := superpose.RMSD(p, n)
			if err != nil {
				return nil, nil, fmt.Errorf("%s of %s: %w", r, pred.ID, err)
			}
			scores[r] = rmsd
		}
	}
	return aligned, scores, nil
}

// copyPos puts the coordinates of the aligned chains back into pred.
func copyPos(pred, aligned *antibody.Antibody) {
	for _, k := range []antibody.Kind{antibody.Heavy, antibody.Light} {
		dst, src := pred.Chain(k), aligned.Chain(k)
		if dst == nil || src == nil {
			continue
		}
		for i := range dst.Residues {
			copy(dst.Residues[i].Pos, src.Residues[i].Pos)
		}
	}
}
