// 19 Oct 2026

package antibody

import (
	"fmt"
)

// Region is a functional part of an antibody chain. Each residue has
// exactly one.
type Region uint8

const (
	NoRegion Region = iota // not labelled, not compared
	CdrH1
	CdrH2
	CdrH3
	FvH // heavy chain framework, everything that is not a CDR
	CdrL1
	CdrL2
	CdrL3
	FvL
	nRegion
)

var regionNames = [nRegion]string{
	NoRegion: "none",
	CdrH1:    "CDR-H1",
	CdrH2:    "CDR-H2",
	CdrH3:    "CDR-H3",
	FvH:      "fv-H",
	CdrL1:    "CDR-L1",
	CdrL2:    "CDR-L2",
	CdrL3:    "CDR-L3",
	FvL:      "fv-L",
}

func (r Region) String() string {
	if r >= nRegion {
		return fmt.Sprintf("Region(%d)", uint8(r))
	}
	return regionNames[r]
}

// AllRegions returns the labelled regions in the order we report them.
func AllRegions() []Region {
	return []Region{CdrH1, CdrH2, CdrH3, FvH, CdrL1, CdrL2, CdrL3, FvL}
}

// ParseRegion is the inverse of String.
func ParseRegion(s string) (Region, error) {
	for r := CdrH1; r < nRegion; r++ {
		if regionNames[r] == s {
			return r, nil
		}
	}
	return NoRegion, fmt.Errorf("unknown region %q", s)
}

// Kind says if a chain is heavy or light.
type Kind uint8

const (
	Heavy Kind = iota
	Light
)

func (k Kind) String() string {
	if k == Heavy {
		return "heavy"
	}
	return "light"
}

// Regions are the labels a chain of this kind can carry.
func (k Kind) Regions() []Region {
	if k == Heavy {
		return []Region{CdrH1, CdrH2, CdrH3, FvH}
	}
	return []Region{CdrL1, CdrL2, CdrL3, FvL}
}

// Kind says which chain a region belongs to.
func (r Region) Kind() Kind {
	if r >= CdrL1 {
		return Light
	}
	return Heavy
}

// Chothia definitions. Insertions (like 100A) carry the number of the
// residue before, so they fall in the same range.
const (
	HeavyMax = 113 // last residue of the heavy chain Fv
	LightMax = 106 // last residue of the light chain Fv
	MaxCDR3  = 30  // longer CDR3s are not believed
)

type cdrRange struct {
	region      Region
	first, last int // inclusive
}

var chothia = [...]cdrRange{
	{CdrH1, 26, 32},
	{CdrH2, 52, 56},
	{CdrH3, 95, 102},
	{CdrL1, 24, 34},
	{CdrL2, 50, 56},
	{CdrL3, 89, 97},
}

// Classify returns the region for a Chothia residue number. Residues
// past the end of the Fv get NoRegion.
func Classify(k Kind, numLbl int) Region {
	maxNum, fv := HeavyMax, FvH
	if k == Light {
		maxNum, fv = LightMax, FvL
	}
	if numLbl > maxNum {
		return NoRegion
	}
	for _, c := range chothia {
		if c.region.Kind() != k {
			continue
		}
		if numLbl >= c.first && numLbl <= c.last {
			return c.region
		}
	}
	return fv
}

// cdr3 is the third CDR for each kind of chain
func cdr3(k Kind) Region {
	if k == Heavy {
		return CdrH3
	}
	return CdrL3
}
