package cmmn_test

import (
	"testing"

	. "github.com/andrew-torda/ab_rmsd/pdb/cmmn"
)

func TestXyzOk(t *testing.T) {
	var xyz Xyz
	xyz = BrokenXyz
	if xyz.Ok() {
		t.Error("cannot even check if a value is OK")
	}
	xyz = Xyz{1, 1, 1}
	if !xyz.Ok() {
		t.Error("OK should be true")
	}
}

func TestModelChain(t *testing.T) {
	m := Model{Chains: []Chain{
		{ChainID: "H", Residues: []Residue{{ResName: "GLY", NumLbl: 1,
			Atoms: []Atom{{"N", Xyz{0, 0, 0}}, {"CA", Xyz{1, 0, 0}}}}}},
		{ChainID: "L"},
	}}
	if c := m.Chain("L"); c == nil || c.ChainID != "L" {
		t.Fatal("did not find chain L")
	}
	if c := m.Chain("A"); c != nil {
		t.Fatal("found chain A which is not there")
	}
	names := ChnSl(m.Chains).ChainNames()
	if len(names) != 2 || names[0] != "H" || names[1] != "L" {
		t.Fatal("chain names wrong", names)
	}
	if n := ChnSl(m.Chains).NAtom(); n != 2 {
		t.Fatal("wanted 2 atoms, got", n)
	}
	r := m.Chains[0].Residues[0]
	if x, ok := r.Atom("CA"); !ok || x != (Xyz{1, 0, 0}) {
		t.Fatal("CA lookup broken", x, ok)
	}
	if _, ok := r.Atom("CB"); ok {
		t.Fatal("glycine should have no CB")
	}
}

func TestAddAtom(t *testing.T) {
	var m Model
	adds := []struct {
		chain, res string
		num        int
		ins        byte
		name       string
		want       bool
	}{
		{"H", "GLY", 1, 0, "N", true},
		{"H", "GLY", 1, 0, "CA", true},
		{"H", "GLY", 1, 0, "CA", false}, // alternate location
		{"H", "ALA", 1, 0, "CB", true},  // second residue type, same place
		{"H", "ALA", 1, 0, "N", false},
		{"H", "SER", 1, 'A', "N", true},
		{"L", "ALA", 1, 0, "N", true},
		{"H", "THR", 2, 0, "N", true},
	}
	for _, a := range adds {
		if got := m.AddAtom(a.chain, a.res, a.num, a.ins, Atom{Name: a.name}); got != a.want {
			t.Errorf("adding %v gave %v", a, got)
		}
	}
	if len(m.Chains) != 2 {
		t.Fatal("wanted chains H and L, got", ChnSl(m.Chains).ChainNames())
	}
	if n := len(m.Chain("H").Residues); n != 3 {
		t.Fatal("wanted 3 residues in H, got", n)
	}
	if n := ChnSl(m.Chains).NAtom(); n != 6 {
		t.Fatal("wanted 6 atoms, got", n)
	}
	if r := m.Chain("H").Residues[0]; r.ResName != "GLY" || len(r.Atoms) != 3 {
		t.Fatalf("microheterogeneity should stay one residue, got %+v", r)
	}
}
