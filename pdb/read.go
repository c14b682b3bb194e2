package pdb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andrew-torda/ab_rmsd/pdb/cmmn"
)

const maxMsgLen = 70

// lineError says where in a pdb file we had trouble.
type lineError struct {
	n    int    // line number
	line string // The line that provoked the error
	desc string
}

func (e lineError) Error() string {
	l := e.line
	if len(l) > maxMsgLen {
		l = l[:maxMsgLen]
	}
	return fmt.Sprintf("line %d: %s\nLine starting with\n%s", e.n, e.desc, l)
}

func (e lineError) Unwrap() error { return ErrFormat }

// ReadPDB reads ATOM records from the first model of an old format
// pdb file. The first alternate location of an atom is kept and
// HETATM records are ignored. The model is named after the HEADER
// id code if there is one.
func ReadPDB(r io.Reader) (*cmmn.Model, error) {
	scn := bufio.NewScanner(r)
	m := &cmmn.Model{}
	n := 0
loop:
	for scn.Scan() {
		n++
		ln := scn.Text()
		switch {
		case strings.HasPrefix(ln, "HEADER") && len(ln) >= 66:
			m.Name = strings.TrimSpace(ln[62:66])
		case strings.HasPrefix(ln, "END"): // END or ENDMDL
			break loop
		case strings.HasPrefix(ln, "ATOM  "):
			if err := addAtom(ln, m); err != nil {
				return nil, lineError{n: n, line: ln, desc: err.Error()}
			}
		}
	}
	if err := scn.Err(); err != nil {
		return nil, fmt.Errorf("reading pdb after line %d: %w", n, err)
	}
	if len(m.Chains) == 0 {
		return nil, fmt.Errorf("%w: no ATOM records", ErrFormat)
	}
	return m, nil
}

// addAtom picks apart the columns of an ATOM record.
func addAtom(ln string, m *cmmn.Model) error {
	if len(ln) < 54 {
		return errors.New("ATOM record too short")
	}
	numLbl, err := strconv.Atoi(strings.TrimSpace(ln[22:26]))
	if err != nil {
		return fmt.Errorf("residue number %q", ln[22:26])
	}
	var insCode byte
	if c := ln[26]; c != ' ' {
		insCode = c
	}
	var xyz [3]float64
	for i := range xyz {
		s := strings.TrimSpace(ln[30+8*i : 38+8*i])
		if xyz[i], err = strconv.ParseFloat(s, 64); err != nil {
			return fmt.Errorf("coordinate %q", s)
		}
	}
	a := cmmn.Atom{Name: strings.TrimSpace(ln[12:16]), Xyz: cmmn.Xyz{X: xyz[0], Y: xyz[1], Z: xyz[2]}}
	m.AddAtom(strings.TrimSpace(ln[21:22]), strings.TrimSpace(ln[17:20]), numLbl, insCode, a)
	return nil
}
