// 19 Oct 2026

// Package antibody holds antibody structures as the rmsd code wants them.
// Each chain is Chothia numbered, cut at the end of the Fv and every
// residue is labelled with a region (one of the CDRs or framework).
package antibody

import (
	"github.com/andrew-torda/ab_rmsd/pdb/cmmn"
)

// NBackbone is the number of atoms at the start of every residue
// used for superposition. They are always N, CA and C, in that order.
const NBackbone = 3

var backboneNames = [NBackbone]string{"N", "CA", "C"}

// Residue is one amino acid. The first NBackbone atoms are N, CA, C.
// Further heavy atoms follow in the order they were read.
type Residue struct {
	ResName string // three letter name
	NumLbl  int    // Chothia number
	InsCode byte   // Insertion code, 0 for none
	AtNames []string
	Pos     cmmn.XyzSl
	Region  Region
}

// Chain is a heavy or light chain.
type Chain struct {
	Kind     Kind
	ChainID  string
	Residues []Residue
}

// Antibody has a heavy chain, a light chain or both.
type Antibody struct {
	ID    string
	Heavy *Chain
	Light *Chain
}

// Chain returns the heavy or light chain, which may be nil.
func (ab *Antibody) Chain(k Kind) *Chain {
	if k == Heavy {
		return ab.Heavy
	}
	return ab.Light
}

// Len is the number of residues.
func (c *Chain) Len() int { return len(c.Residues) }

// Mask returns, for each residue, whether it is in region r.
func (c *Chain) Mask(r Region) []bool {
	mask := make([]bool, len(c.Residues))
	for i := range c.Residues {
		mask[i] = c.Residues[i].Region == r
	}
	return mask
}

// Backbone returns the superposition atoms of the residues picked by
// mask, residue by residue. A nil mask picks everything.
func (c *Chain) Backbone(mask []bool) cmmn.XyzSl {
	ret := make(cmmn.XyzSl, 0, NBackbone*len(c.Residues))
	for i := range c.Residues {
		if mask != nil && !mask[i] {
			continue
		}
		ret = append(ret, c.Residues[i].Pos[:NBackbone]...)
	}
	return ret
}

// Seq returns the one letter sequence.
func (c *Chain) Seq() string {
	b := make([]byte, len(c.Residues))
	for i := range c.Residues {
		b[i] = oneLetter[c.Residues[i].ResName]
	}
	return string(b)
}

// CDRSeq returns the sequence of the residues in region r.
func (c *Chain) CDRSeq(r Region) string {
	var b []byte
	for i := range c.Residues {
		if c.Residues[i].Region == r {
			b = append(b, oneLetter[c.Residues[i].ResName])
		}
	}
	return string(b)
}

// Count says how many residues are in region r.
func (c *Chain) Count(r Region) (n int) {
	for i := range c.Residues {
		if c.Residues[i].Region == r {
			n++
		}
	}
	return n
}

// Clone makes a deep copy, so coordinates can be changed without
// touching the original.
func (c *Chain) Clone() *Chain {
	if c == nil {
		return nil
	}
	ret := &Chain{Kind: c.Kind, ChainID: c.ChainID, Residues: make([]Residue, len(c.Residues))}
	for i, r := range c.Residues {
		r.AtNames = append([]string(nil), r.AtNames...)
		r.Pos = append(cmmn.XyzSl(nil), r.Pos...)
		ret.Residues[i] = r
	}
	return ret
}

// Clone makes a deep copy of the whole antibody.
func (ab *Antibody) Clone() *Antibody {
	return &Antibody{ID: ab.ID, Heavy: ab.Heavy.Clone(), Light: ab.Light.Clone()}
}

// Model turns the antibody back into something that can be written
// as a pdb file. Missing atoms are left out.
func (ab *Antibody) Model() *cmmn.Model {
	m := &cmmn.Model{Name: ab.ID}
	for _, c := range []*Chain{ab.Heavy, ab.Light} {
		if c == nil {
			continue
		}
		ch := cmmn.Chain{ChainID: c.ChainID, Residues: make([]cmmn.Residue, 0, len(c.Residues))}
		for _, r := range c.Residues {
			res := cmmn.Residue{ResName: r.ResName, NumLbl: r.NumLbl, InsCode: r.InsCode}
			for j, x := range r.Pos {
				if x.Ok() {
					res.Atoms = append(res.Atoms, cmmn.Atom{Name: r.AtNames[j], Xyz: x})
				}
			}
			ch.Residues = append(ch.Residues, res)
		}
		m.Chains = append(m.Chains, ch)
	}
	return m
}
