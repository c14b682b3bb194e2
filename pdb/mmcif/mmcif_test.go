package mmcif_test

import (
	"bytes"
	"compress/gzip"
	"strings"
	"testing"

	"github.com/andrew-torda/ab_rmsd/pdb/cmmn"
	. "github.com/andrew-torda/ab_rmsd/pdb/mmcif"
	"github.com/andrew-torda/ab_rmsd/pdb/zwrap"
	"github.com/google/go-cmp/cmp"
)

const atomHdr = `loop_
_atom_site.group_PDB
_atom_site.id
_atom_site.type_symbol
_atom_site.label_atom_id
_atom_site.label_alt_id
_atom_site.label_comp_id
_atom_site.label_asym_id
_atom_site.label_seq_id
_atom_site.pdbx_PDB_ins_code
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
_atom_site.occupancy
_atom_site.B_iso_or_equiv
_atom_site.auth_seq_id
_atom_site.auth_comp_id
_atom_site.auth_asym_id
_atom_site.auth_atom_id
_atom_site.pdbx_PDB_model_num
`

const smallCif = `data_1ABC
#
_entry.id 1ABC
_struct.title
;Some antibody
 over two lines
;
#
loop_
_struct_asym.id
_struct_asym.entity_id
A 1
B 2
#
` + atomHdr + `ATOM   1  N N     . GLY A 1 ? 1.000 2.000 3.000 1.00 10.0 1   GLY H N     1
ATOM   2  C CA    . GLY A 1 ? 2.000 2.000 3.000 1.00 10.0 1   GLY H CA    1
ATOM   3  C C     . GLY A 1 ? 3.000 2.000 3.000 1.00 10.0 1   GLY H C     1
ATOM   4  N N     A SER A 2 A 4.000 2.000 3.000 0.50 10.0 100 SER H N     1
ATOM   5  N N     B SER A 2 A 4.500 2.000 3.000 0.50 10.0 100 SER H N     1
ATOM   6  C CA    . SER A 2 A 5.000 2.000 3.000 1.00 10.0 100 SER H CA    1
ATOM   7  O "O5'" . SER A 2 A 6.000 2.000 3.000 1.00 10.0 100 SER H "O5'" 1
HETATM 8  O O     . HOH C . ? 0.000 0.000 0.000 1.00 10.0 201 HOH W O     1
ATOM   9  N N     . ALA B 1 ? 7.000 2.000 3.000 1.00 10.0 1   ALA L N     1
ATOM   10 N N     . GLY A 1 ? 9.000 9.000 9.000 1.00 10.0 1   GLY H N     2
#
loop_
_pdbx_poly_seq_scheme.asym_id
A
`

var wantSmall = &cmmn.Model{
	Name: "1ABC",
	Chains: []cmmn.Chain{
		{ChainID: "H", Residues: []cmmn.Residue{
			{ResName: "GLY", NumLbl: 1, Atoms: []cmmn.Atom{
				{Name: "N", Xyz: cmmn.Xyz{X: 1, Y: 2, Z: 3}},
				{Name: "CA", Xyz: cmmn.Xyz{X: 2, Y: 2, Z: 3}},
				{Name: "C", Xyz: cmmn.Xyz{X: 3, Y: 2, Z: 3}}}},
			{ResName: "SER", NumLbl: 100, InsCode: 'A', Atoms: []cmmn.Atom{
				{Name: "N", Xyz: cmmn.Xyz{X: 4, Y: 2, Z: 3}},
				{Name: "CA", Xyz: cmmn.Xyz{X: 5, Y: 2, Z: 3}},
				{Name: "O5'", Xyz: cmmn.Xyz{X: 6, Y: 2, Z: 3}}}},
		}},
		{ChainID: "L", Residues: []cmmn.Residue{
			{ResName: "ALA", NumLbl: 1, Atoms: []cmmn.Atom{
				{Name: "N", Xyz: cmmn.Xyz{X: 7, Y: 2, Z: 3}}}},
		}},
	},
}

func TestReadAtomSite(t *testing.T) {
	m, err := ReadAtomSite(strings.NewReader(smallCif))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(wantSmall, m); d != "" {
		t.Fatalf("(-want +got):\n%s", d)
	}
}

// TestGzipped goes through zwrap, the way the pdb package reads files.
func TestGzipped(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	zw.Write([]byte(smallCif))
	zw.Close()
	rdr, err := zwrap.WrapMaybe(nopCloser{bytes.NewReader(buf.Bytes())})
	if err != nil {
		t.Fatal(err)
	}
	defer rdr.Close()
	m, err := ReadAtomSite(rdr)
	if err != nil {
		t.Fatal(err)
	}
	if n := cmmn.ChnSl(m.Chains).NAtom(); n != 7 {
		t.Fatalf("wanted 7 atoms, got %d", n)
	}
}

type nopCloser struct{ *bytes.Reader }

func (nopCloser) Close() error { return nil }

// TestLabelOnly has no auth_ columns, so the label_ ones are used.
func TestLabelOnly(t *testing.T) {
	s := `data_x
loop_
_atom_site.group_PDB
_atom_site.label_atom_id
_atom_site.label_comp_id
_atom_site.label_asym_id
_atom_site.label_seq_id
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
ATOM CA GLY A 7 1.5 -2.5 0
`
	m, err := ReadAtomSite(strings.NewReader(s))
	if err != nil {
		t.Fatal(err)
	}
	c := m.Chain("A")
	if c == nil || c.Residues[0].NumLbl != 7 || c.Residues[0].Atoms[0].Xyz != (cmmn.Xyz{X: 1.5, Y: -2.5}) {
		t.Fatal("label columns not used", m)
	}
}

func TestErrors(t *testing.T) {
	row := "ATOM 1 N N . GLY A 1 ? 1.0 2.0 3.0 1.0 1.0 1 GLY H N 1\n"
	var files = []struct {
		name, in, emsg string
	}{
		{"rubbish", "data_x\nrubbish\n", "no atom_site"},
		{"empty", "", "no atom_site"},
		{"shortline", "data_x\n" + atomHdr + row + "ATOM 2 N N . GLY A 1\n", "Line: 23 Too few"},
		{"badx", "data_x\n" + atomHdr + strings.Replace(row, "1.0 2.0", "1.x 2.0", 1), "parsing coordinate"},
		{"badres", "data_x\n" + atomHdr + strings.Replace(row, " 1 GLY H", " one GLY H", 1), "parsing residue number"},
		{"inscode", "data_x\n" + atomHdr + strings.Replace(row, " ? ", " AB ", 1), "insertion code length"},
		{"quote", "data_x\n" + atomHdr + strings.Replace(row, " GLY H N ", " GLY H 'N ", 1), "unterminated"},
		{"nocolumn", "data_x\nloop_\n_atom_site.group_PDB\n_atom_site.Cartn_x\nATOM 1\n", "no atom_id column"},
	}
	for _, f := range files {
		_, err := ReadAtomSite(strings.NewReader(f.in))
		if err == nil {
			t.Errorf("%s: should have an error", f.name)
			continue
		}
		if !strings.Contains(err.Error(), f.emsg) {
			t.Errorf("%s: error %q does not contain %q", f.name, err, f.emsg)
		}
	}
}

func TestScanner(t *testing.T) {
	in := "a\n\n   b  \n;text\nmore text\n;\n# c\n"
	want := []string{"a", "b", "# c"}
	if d := cmp.Diff(want, ScanAll([]byte(in))); d != "" {
		t.Error(d)
	}
}

type sb []string

func TestSplitCifLine(t *testing.T) {
	var ss = []struct {
		in  string
		out sb
	}{
		{"", nil},
		{"a\"b\"", sb{"a\"b\""}},
		{`b"b"b"b`, sb{"b\"b\"b\"b"}},
		{"a b c ", sb{"a", "b", "c"}},
		{"c", sb{"c"}},
		{`aa'aa`, sb{"aa'aa"}},
		{`"word1"  	word2`, sb{"word1", "word2"}},
		{`'O5''  N`, sb{"O5'", "N"}},
		{`GLN 'L-peptide linking' y GLUTAMINE ? 'C5 H10 N2 O3'`,
			sb{"GLN", "L-peptide linking", "y", "GLUTAMINE", "?", "C5 H10 N2 O3"}},
	}
	scratch := make([][]byte, 3)
	for _, x := range ss {
		tt, err := SplitCifLine([]byte(x.in), scratch)
		if err != nil {
			t.Errorf("Splitting %s gave error %s", x.in, err)
			continue
		}
		var got sb
		for _, w := range tt {
			got = append(got, string(w))
		}
		if d := cmp.Diff(x.out, got); d != "" {
			t.Errorf("Splitting <%s> (-want +got):\n%s", x.in, d)
		}
	}
}

// TestBroken checks that we do get an error on silly strings.
func TestBroken(t *testing.T) {
	for _, s := range []string{`'word1'"word2"`, `word1 "word2`} {
		if _, err := SplitCifLine([]byte(s), nil); err == nil {
			t.Error("Expected an error on string", s)
		}
	}
}
