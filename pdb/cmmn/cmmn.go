// Package pdb/cmmn has common definitions for coordinates and
// the structures we read from pdb and mmcif files.
package cmmn

import (
	"math"
)

// Does our data come from a file or http source ?
const (
	FileSrc byte = iota
	HTTPSrc
)

type Xyz struct{ X, Y, Z float64 }
type XyzSl []Xyz // xyz's are coordinates

// BrokenXyz marks a coordinate that was not present in the input.
var BrokenXyz = Xyz{math.MaxFloat64, 0, -math.MaxFloat64}

var BrokenResNum int = -9999

func (xyz *Xyz) Ok() bool {
	if *xyz != BrokenXyz {
		return true
	}
	return false
}

// Sub returns xyz - b
func (xyz Xyz) Sub(b Xyz) Xyz { return Xyz{xyz.X - b.X, xyz.Y - b.Y, xyz.Z - b.Z} }

// Add returns xyz + b
func (xyz Xyz) Add(b Xyz) Xyz { return Xyz{xyz.X + b.X, xyz.Y + b.Y, xyz.Z + b.Z} }

// Len2 is the squared length of a vector
func (xyz Xyz) Len2() float64 { return xyz.X*xyz.X + xyz.Y*xyz.Y + xyz.Z*xyz.Z }

// Atom is one atom name and its position.
type Atom struct {
	Name string // like "CA" or "OG1"
	Xyz
}

// Residue is one residue as it was read from a file.
type Residue struct {
	ResName string // three letter name, like "GLY"
	NumLbl  int    // residue number from file. Not a real index
	InsCode byte   // Insertion code, 0 if there was none
	Atoms   []Atom
}

// Atom returns the position of the named atom and whether it was found.
func (r *Residue) Atom(name string) (Xyz, bool) {
	for _, a := range r.Atoms {
		if a.Name == name {
			return a.Xyz, true
		}
	}
	return BrokenXyz, false
}

// A simple structure for one model, one chain and its residues
type Chain struct {
	ChainID  string // Name, like "A" or "H"
	Residues []Residue
}

// Model is the first model from a file, with the chains in file order.
type Model struct {
	Name   string
	Chains []Chain
}

// Chain returns the chain with the given identifier or nil.
func (m *Model) Chain(id string) *Chain {
	for i := range m.Chains {
		if m.Chains[i].ChainID == id {
			return &m.Chains[i]
		}
	}
	return nil
}

// AddAtom appends an atom to the model, starting a chain the first time
// a chain id is seen and a residue whenever the residue number or
// insertion code changes. A change of residue name alone does not start
// a residue, since two alternate residue types can share one position.
// The first name is kept. If the residue already has an atom with this
// name (an alternate location), nothing is added and it returns false.
func (m *Model) AddAtom(chainID, resName string, numLbl int, insCode byte, a Atom) bool {
	chn := m.Chain(chainID)
	if chn == nil {
		m.Chains = append(m.Chains, Chain{ChainID: chainID})
		chn = &m.Chains[len(m.Chains)-1]
	}
	nr := len(chn.Residues)
	if nr == 0 || chn.Residues[nr-1].NumLbl != numLbl || chn.Residues[nr-1].InsCode != insCode {
		chn.Residues = append(chn.Residues, Residue{ResName: resName, NumLbl: numLbl, InsCode: insCode})
	}
	res := &chn.Residues[len(chn.Residues)-1]
	if _, dup := res.Atom(a.Name); dup {
		return false
	}
	res.Atoms = append(res.Atoms, a)
	return true
}

// This is obviously just a slice of chains, but we have to define a type
// if we want to define a method on it
type ChnSl []Chain

// ChainNames returns a slice with the names of the chains.
func (chns ChnSl) ChainNames() (ret []string) {
	ret = make([]string, len(chns))
	for i, k := range chns {
		ret[i] = k.ChainID
	}
	return
}

// NAtom counts the atoms in all chains
func (chns ChnSl) NAtom() (n int) {
	for _, c := range chns {
		for _, r := range c.Residues {
			n += len(r.Atoms)
		}
	}
	return n
}
