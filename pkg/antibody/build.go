package antibody

import (
	"fmt"
	"log"

	"github.com/andrew-torda/ab_rmsd/pdb/cmmn"
	"github.com/andrew-torda/ab_rmsd/pdb/geom"
	"github.com/andrew-torda/ab_rmsd/pkg/common"
)

type Error string

func (e Error) Error() string { return string(e) }

const ErrNoChain = Error("no usable heavy or light chain")

// FromModel picks the heavy chain hID and light chain lID out of a model
// which must already be Chothia numbered. Either id may be empty or
// missing from the model, but at least one chain has to survive.
// Other chains (antigen) are ignored.
func FromModel(m *cmmn.Model, hID, lID string, lg *log.Logger) (*Antibody, error) {
	lg = common.OrDiscard(lg)
	ab := &Antibody{ID: m.Name}
	if c := m.Chain(hID); hID != "" && c != nil {
		ab.Heavy = buildChain(c, Heavy, m.Name, lg)
	}
	if c := m.Chain(lID); lID != "" && c != nil {
		ab.Light = buildChain(c, Light, m.Name, lg)
	}
	if ab.Heavy == nil && ab.Light == nil {
		return nil, fmt.Errorf("%w in %s. Looked for heavy chain %q and light chain %q, found %v",
			ErrNoChain, m.Name, hID, lID, cmmn.ChnSl(m.Chains).ChainNames())
	}
	if n := len(m.Chains) - nonNil(ab.Heavy, ab.Light); n > 0 {
		lg.Printf("%s: ignoring %d other chain(s)", m.Name, n)
	}
	return ab, nil
}

func nonNil(cs ...*Chain) (n int) {
	for _, c := range cs {
		if c != nil {
			n++
		}
	}
	return n
}

// buildResidue puts the backbone first and drops hydrogens and repeated
// names. It returns false if the residue is not an amino acid or it has
// lost part of its backbone.
func buildResidue(in *cmmn.Residue, k Kind) (Residue, bool) {
	if _, ok := oneLetter[in.ResName]; !ok {
		return Residue{}, false
	}
	r := Residue{ResName: in.ResName, NumLbl: in.NumLbl, InsCode: in.InsCode}
	for _, name := range backboneNames {
		x, ok := in.Atom(name)
		if !ok {
			return Residue{}, false
		}
		r.AtNames = append(r.AtNames, name)
		r.Pos = append(r.Pos, x)
	}
	seen := map[string]bool{"N": true, "CA": true, "C": true}
	for _, a := range in.Atoms {
		if seen[a.Name] || isHydrogen(a.Name) {
			continue
		}
		seen[a.Name] = true
		r.AtNames = append(r.AtNames, a.Name)
		r.Pos = append(r.Pos, a.Xyz)
	}
	r.Region = Classify(k, in.NumLbl)
	return r, true
}

// buildChain returns nil if the chain cannot be used.
func buildChain(in *cmmn.Chain, k Kind, name string, lg *log.Logger) *Chain {
	c := &Chain{Kind: k, ChainID: in.ChainID}
	for i := range in.Residues {
		r, ok := buildResidue(&in.Residues[i], k)
		if !ok || r.Region == NoRegion {
			continue
		}
		c.Residues = append(c.Residues, r)
	}
	n3 := c.Count(cdr3(k))
	if n3 == 0 {
		lg.Printf("%s: no %s found in the %s chain %s. Chain dropped", name, cdr3(k), k, in.ChainID)
		return nil
	}
	if n3 > MaxCDR3 {
		lg.Printf("%s: %s too long (%d). Chain dropped", name, cdr3(k), n3)
		return nil
	}
	checkBackbone(c, name, lg)
	return c
}

// checkBackbone logs alpha carbons which are too far apart or too close.
// This is often a sign of missing residues. It does not stop anything.
func checkBackbone(c *Chain, name string, lg *log.Logger) {
	const ca = 1
	for i := 1; i < len(c.Residues); i++ {
		prev, cur := &c.Residues[i-1], &c.Residues[i]
		if d, err := geom.XyzDist(prev.Pos[ca], cur.Pos[ca]); err != nil {
			lg.Printf("%s chain %s: CA %d%s to %d%s distance %.2f (%v)", name, c.ChainID,
				prev.NumLbl, insStr(prev.InsCode), cur.NumLbl, insStr(cur.InsCode), d, err)
		}
	}
}

func insStr(b byte) string {
	if b == 0 || b == ' ' {
		return ""
	}
	return string(b)
}
