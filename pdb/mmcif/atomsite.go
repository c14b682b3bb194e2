package mmcif

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andrew-torda/ab_rmsd/pdb/cmmn"
)

const atomSitePrefix = "_atom_site."

// atomCols says which column holds what. -1 means missing.
type atomCols struct {
	group, atom, comp, asym, seq, ins, x, y, z, model int
}

// pick returns the index of the first of names found in hdr, or -1.
func pick(hdr map[string]int, names ...string) int {
	for _, n := range names {
		if i, ok := hdr[n]; ok {
			return i
		}
	}
	return -1
}

func newAtomCols(hdr []string) (atomCols, error) {
	idx := make(map[string]int, len(hdr))
	for i, h := range hdr {
		idx[strings.TrimPrefix(h, atomSitePrefix)] = i
	}
	c := atomCols{
		group: pick(idx, "group_PDB"),
		atom:  pick(idx, "auth_atom_id", "label_atom_id"),
		comp:  pick(idx, "auth_comp_id", "label_comp_id"),
		asym:  pick(idx, "auth_asym_id", "label_asym_id"),
		seq:   pick(idx, "auth_seq_id", "label_seq_id"),
		ins:   pick(idx, "pdbx_PDB_ins_code"),
		x:     pick(idx, "Cartn_x"),
		y:     pick(idx, "Cartn_y"),
		z:     pick(idx, "Cartn_z"),
		model: pick(idx, "pdbx_PDB_model_num"),
	}
	for _, need := range []struct {
		i    int
		name string
	}{{c.atom, "atom_id"}, {c.comp, "comp_id"}, {c.asym, "asym_id"},
		{c.seq, "seq_id"}, {c.x, "Cartn_x"}, {c.y, "Cartn_y"}, {c.z, "Cartn_z"}} {
		if need.i < 0 {
			return c, fmt.Errorf("atom_site table has no %s column", need.name)
		}
	}
	return c, nil
}

// missing is true for the mmcif placeholders for no value.
func missing(b []byte) bool { return len(b) == 1 && (b[0] == '?' || b[0] == '.') }

// ReadAtomSite reads the _atom_site table of the first data block and
// returns the ATOM records of the first model. If an atom appears more
// than once in a residue (alternate locations), the first one is kept.
// The model is named after the data block.
func ReadAtomSite(r io.Reader) (*cmmn.Model, error) {
	s := newCmmtScanner(r)
	m := &cmmn.Model{}
	found := false
	for !found && s.cscan() {
		ln := s.cbytes()
		switch {
		case hasPrefixFold(ln, "data_"):
			if m.Name != "" {
				return nil, s.fail("second data block before any atom_site table")
			}
			m.Name = string(ln[len("data_"):])
		case hasPrefixFold(ln, "loop_"):
			hdr := readHeaders(s)
			if len(hdr) == 0 || !strings.HasPrefix(hdr[0], atomSitePrefix) {
				continue
			}
			if err := readAtoms(s, hdr, m); err != nil {
				return nil, err
			}
			found = true
		}
	}
	if err := s.Err(); err != nil {
		return nil, readError{n: s.n, desc: err.Error()}
	}
	if !found {
		return nil, readError{desc: "no atom_site table found"}
	}
	return m, nil
}

func hasPrefixFold(b []byte, prefix string) bool {
	return len(b) >= len(prefix) && strings.EqualFold(string(b[:len(prefix)]), prefix)
}

// readHeaders collects the item names after loop_.
func readHeaders(s *cmmtScanner) []string {
	var hdr []string
	for s.cscan() {
		ln := s.cbytes()
		if ln[0] != '_' {
			s.back()
			break
		}
		if i := bytes.IndexFunc(ln, func(r rune) bool { return r == ' ' || r == '\t' }); i > 0 {
			ln = ln[:i]
		}
		hdr = append(hdr, string(ln))
	}
	return hdr
}

// endOfLoop is true for lines which cannot be table rows.
func endOfLoop(ln []byte) bool {
	return ln[0] == '_' || ln[0] == '#' || hasPrefixFold(ln, "loop_") || hasPrefixFold(ln, "data_")
}

// readAtoms reads the rows of the atom_site table into m.
func readAtoms(s *cmmtScanner, hdr []string, m *cmmn.Model) error {
	cols, err := newAtomCols(hdr)
	if err != nil {
		return s.fail(err.Error())
	}
	scrtch := make([][]byte, 0, len(hdr))
	var firstModel string
	for s.cscan() {
		ln := s.cbytes()
		if endOfLoop(ln) {
			s.back()
			break
		}
		f, err := splitCifLine(ln, scrtch)
		if err != nil {
			return s.fail(err.Error())
		}
		if len(f) != len(hdr) {
			return s.fail(fmt.Sprintf("Too few or too many fields. Expected %d, got %d", len(hdr), len(f)))
		}
		if cols.group >= 0 && string(f[cols.group]) != "ATOM" {
			continue
		}
		if cols.model >= 0 {
			mdl := string(f[cols.model])
			if firstModel == "" {
				firstModel = mdl
			}
			if mdl != firstModel {
				continue
			}
		}
		if err := addAtom(f, cols, m); err != nil {
			return s.fail(err.Error())
		}
	}
	return nil
}

// addAtom parses one row and puts it into the model.
func addAtom(f [][]byte, cols atomCols, m *cmmn.Model) error {
	var xyz [3]float64
	for i, c := range [3]int{cols.x, cols.y, cols.z} {
		var err error
		if xyz[i], err = strconv.ParseFloat(string(f[c]), 64); err != nil {
			return fmt.Errorf("parsing coordinate %q", f[c])
		}
	}
	numLbl, err := strconv.Atoi(string(f[cols.seq]))
	if err != nil {
		return fmt.Errorf("parsing residue number %q", f[cols.seq])
	}
	var insCode byte
	if cols.ins >= 0 && !missing(f[cols.ins]) {
		if len(f[cols.ins]) != 1 {
			return fmt.Errorf("insertion code length %d", len(f[cols.ins]))
		}
		insCode = f[cols.ins][0]
	}
	a := cmmn.Atom{Name: string(f[cols.atom]), Xyz: cmmn.Xyz{X: xyz[0], Y: xyz[1], Z: xyz[2]}}
	m.AddAtom(string(f[cols.asym]), string(f[cols.comp]), numLbl, insCode, a)
	return nil
}
