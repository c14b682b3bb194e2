package pdb_test

import (
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andrew-torda/ab_rmsd/brokenio"
	. "github.com/andrew-torda/ab_rmsd/pdb"
	"github.com/andrew-torda/ab_rmsd/pdb/cmmn"
	"github.com/google/go-cmp/cmp"
)

const smallPDB = `HEADER    IMMUNE SYSTEM                           19-OCT-26   1ABC              
REMARK   5 CHOTHIA NUMBERED
MODEL        1
ATOM      1  N   GLY H   1       1.000   2.000   3.000  1.00 20.00           N
ATOM      2  CA  GLY H   1       2.000   2.000   3.000  1.00 20.00           C
ATOM      3  C   GLY H   1       3.000   2.000   3.000  1.00 20.00           C
ATOM      4  N  ASER H 100A      4.000   2.000   3.000  1.00 20.00           N
ATOM      5  N  BSER H 100A      4.500   2.000   3.000  1.00 20.00           N
ATOM      6  CA  SER H 100A      5.000   2.000   3.000  1.00 20.00           C
ATOM      7  HB2 SER H 100A      5.000   3.000   3.000  1.00 20.00           H
TER       8      SER H 100A
HETATM    9  O   HOH W 201       0.000   0.000   0.000  1.00 20.00           O
ATOM     10  N   ALA L   1       7.000   2.000   3.000  1.00 20.00           N
ENDMDL
MODEL        2
ATOM     11  N   GLY H   1       9.000   9.000   9.000  1.00 20.00           N
ENDMDL
END
`

const smallCif = `data_2XYZ
loop_
_atom_site.group_PDB
_atom_site.auth_atom_id
_atom_site.auth_comp_id
_atom_site.auth_asym_id
_atom_site.auth_seq_id
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
ATOM N  GLY A 1 1.0 2.0 3.0
ATOM CA GLY A 1 2.0 2.0 3.0
#
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
				{Name: "HB2", Xyz: cmmn.Xyz{X: 5, Y: 3, Z: 3}}}},
		}},
		{ChainID: "L", Residues: []cmmn.Residue{
			{ResName: "ALA", NumLbl: 1, Atoms: []cmmn.Atom{
				{Name: "N", Xyz: cmmn.Xyz{X: 7, Y: 2, Z: 3}}}},
		}},
	},
}

func TestReadPDB(t *testing.T) {
	m, err := ReadPDB(strings.NewReader(smallPDB))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(wantSmall, m); d != "" {
		t.Fatalf("(-want +got):\n%s", d)
	}
}

// TestMicroHet has two residue types at one position. They stay one
// residue, named after the first.
func TestMicroHet(t *testing.T) {
	const in = `ATOM      1  N  ASER H  52       1.000   2.000   3.000  0.50 20.00           N
ATOM      2  N  BTHR H  52       1.100   2.000   3.000  0.50 20.00           N
ATOM      3  CA ASER H  52       2.000   2.000   3.000  0.50 20.00           C
ATOM      4  CA BTHR H  52       2.100   2.000   3.000  0.50 20.00           C
ATOM      5  OG1BTHR H  52       2.500   3.000   3.000  0.50 20.00           O
ATOM      6  N   GLY H  53       4.000   2.000   3.000  1.00 20.00           N
END
`
	m, err := ReadPDB(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	h := m.Chain("H")
	if h == nil || len(h.Residues) != 2 {
		t.Fatalf("wanted residues 52 and 53, got %+v", h)
	}
	var names []string
	for _, a := range h.Residues[0].Atoms {
		names = append(names, a.Name)
	}
	if h.Residues[0].ResName != "SER" || !cmp.Equal(names, []string{"N", "CA", "OG1"}) {
		t.Errorf("residue 52 is %s with %v", h.Residues[0].ResName, names)
	}
}

// TestWriteRead writes a model and reads it back.
func TestWriteRead(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, wantSmall); err != nil {
		t.Fatal(err)
	}
	m, err := ReadPDB(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(wantSmall.Chains, m.Chains); d != "" {
		t.Fatalf("round trip (-want +got):\n%s", d)
	}
	long := &cmmn.Model{Chains: []cmmn.Chain{{ChainID: "AB"}}}
	if err := Write(&buf, long); !errors.Is(err, ErrFormat) {
		t.Error("two letter chain should not go into a pdb file", err)
	}
}

func TestWriteColumns(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, wantSmall); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	want := "ATOM      1  N   GLY H   1       1.000   2.000   3.000  1.00  0.00           N"
	if lines[0] != want {
		t.Errorf("got\n%s\nwanted\n%s", lines[0], want)
	}
	if !strings.HasPrefix(lines[6], "TER") || lines[len(lines)-2] != "END" {
		t.Error("TER or END missing", buf.String())
	}
}

func TestLineErrors(t *testing.T) {
	tests := []struct{ name, in, emsg string }{
		{"short", "REMARK\nATOM      1  N   GLY H   1       1.000\n", "line 2: ATOM record too short"},
		{"coord", "ATOM      1  N   GLY H   1       1.0x0   2.000   3.000\n", "line 1: coordinate"},
		{"resnum", "ATOM      1  N   GLY H   x       1.000   2.000   3.000\n", "line 1: residue number"},
		{"noatoms", "REMARK nothing\nEND\n", "no ATOM records"},
	}
	for _, tt := range tests {
		_, err := ReadPDB(strings.NewReader(tt.in))
		if !errors.Is(err, ErrFormat) {
			t.Errorf("%s: wanted ErrFormat, got %v", tt.name, err)
			continue
		}
		if !strings.Contains(err.Error(), tt.emsg) {
			t.Errorf("%s: %q does not contain %q", tt.name, err, tt.emsg)
		}
	}
}

// TestBrokenReader has every read lose half its data.
func TestBrokenReader(t *testing.T) {
	rdr := brokenio.NewReader(nopCloser{strings.NewReader(smallPDB)}, 1)
	rdr.SetProbFail(1)
	if _, err := ReadPDB(rdr); err == nil {
		t.Fatal("reading trashed data should fail")
	}
}

type nopCloser struct{ *strings.Reader }

func (nopCloser) Close() error { return nil }

// wrt puts s in a file called name in dir, gzipped if the name says so.
func wrt(t *testing.T, dir, name, s string) string {
	path := filepath.Join(dir, name)
	b := []byte(s)
	if strings.HasSuffix(name, ".gz") {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		zw.Write(b)
		zw.Close()
		b = buf.Bytes()
	}
	if err := os.WriteFile(path, b, 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadCoord(t *testing.T) {
	dir := t.TempDir()
	files := []struct {
		name, content, id string
		chains          []string
	}{
		{"a.pdb", smallPDB, "1ABC", []string{"H", "L"}},
		{"a.pdb.gz", smallPDB, "1ABC", []string{"H", "L"}},
		{"peedeebee", smallPDB, "1ABC", []string{"H", "L"}},
		{"b.cif", smallCif, "2XYZ", []string{"A"}},
		{"b.cif.gz", smallCif, "2XYZ", []string{"A"}},
		{"ememcif", smallCif, "2XYZ", []string{"A"}},
		{"noheader.ent", smallPDB[strings.Index(smallPDB, "ATOM"):], "noheader", []string{"H", "L"}},
	}
	for _, f := range files {
		path := wrt(t, dir, f.name, f.content)
		m, err := ReadCoord(path, cmmn.FileSrc, nil)
		if err != nil {
			t.Errorf("%s: %v", f.name, err)
			continue
		}
		if m.Name != f.id {
			t.Errorf("%s: name %q wanted %q", f.name, m.Name, f.id)
		}
		if d := cmp.Diff(f.chains, cmmn.ChnSl(m.Chains).ChainNames()); d != "" {
			t.Errorf("%s: chains %s", f.name, d)
		}
	}
}

// TestBrokenFile checks if we get sensible error messages when we open
// something that is not a coordinate file.
func TestBrokenFile(t *testing.T) {
	dir := t.TempDir()
	testfiles := []string{
		dir,
		"/does/not/exist",
		"/dev/null",
		wrt(t, dir, "rubbish.dat", "nothing to see here\n"),
		wrt(t, dir, "empty.pdb", ""),
		wrt(t, dir, "wrongfmt.cif", smallPDB),
	}
	for _, s := range testfiles {
		m, err := ReadCoord(s, cmmn.FileSrc, nil)
		if m != nil {
			t.Error("model should be nil")
		}
		if err == nil {
			t.Error("Did not get expected error on", s)
		}
	}
	if _, err := ReadCoord("x.pdb", 99, nil); !errors.Is(err, ErrSrc) {
		t.Error("wanted ErrSrc, got", err)
	}
}

var fnameTypes = []struct {
	fname string
	ftype byte
}{
	{"boo.mmcif", MmcifFmt},
	{"boo.mmcif.gz", MmcifFmt},
	{"a/b/c.ent", OldFmt},
	{"a\\b.ent.gz", OldFmt},
	{"a.pdb", OldFmt},
	{"A.PDB.GZ", OldFmt},
	{"1abc.cif", MmcifFmt},
	{"testdata/ememcif1.gz", UnkFmt},
	{"peedeebee", UnkFmt},
}

func TestFmtFromName(t *testing.T) {
	for _, f := range fnameTypes {
		if r := FmtFromName(f.fname); r != f.ftype {
			t.Errorf("%s gave %d, wanted %d", f.fname, r, f.ftype)
		}
		if IsCoordName(f.fname) != (f.ftype != UnkFmt) {
			t.Errorf("IsCoordName wrong on %s", f.fname)
		}
	}
}

func TestSniff(t *testing.T) {
	tests := []struct {
		in   string
		want byte
	}{
		{smallPDB, OldFmt},
		{smallCif, MmcifFmt},
		{"\n\nATOM      1  N   GLY", OldFmt},
		{"# comment\nloop_\n", MmcifFmt},
		{"nothing\nhere", UnkFmt},
		{"", UnkFmt},
	}
	for _, tt := range tests {
		if got := Sniff([]byte(tt.in)); got != tt.want {
			t.Errorf("%.20q gave %d wanted %d", tt.in, got, tt.want)
		}
	}
}

func TestFileID(t *testing.T) {
	for in, want := range map[string]string{
		"a/b/1abc.pdb.gz": "1abc",
		"1abc":            "1abc",
		"x/.hidden":       ".hidden",
	} {
		if got := FileID(in); got != want {
			t.Errorf("FileID(%s) = %s, wanted %s", in, got, want)
		}
	}
}
