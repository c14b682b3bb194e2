package pdb

import (
	"bufio"
	"fmt"
	"io"

	"github.com/andrew-torda/ab_rmsd/pdb/cmmn"
)

const atomFmt = "ATOM  %5d %-4s %3s %1s%4d%1s   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n"

// pdbAtName puts names of less than four characters in column 14,
// the way the pdb does for most atoms.
func pdbAtName(name string) string {
	if len(name) < 4 {
		return " " + name
	}
	return name
}

// element guesses the element from the first letter of the atom name
// that is not a digit.
func element(name string) string {
	for i := 0; i < len(name); i++ {
		if c := name[i]; c < '0' || c > '9' {
			return string(c)
		}
	}
	return ""
}

// Write writes a model as ATOM records, with a TER after each chain
// and END at the end. Occupancies are 1 and B-factors 0.
func Write(w io.Writer, m *cmmn.Model) error {
	bw := bufio.NewWriter(w)
	serial := 0
	for _, c := range m.Chains {
		if len(c.ChainID) > 1 {
			return fmt.Errorf("%w: chain id %q too long for pdb format", ErrFormat, c.ChainID)
		}
		cid := c.ChainID
		if cid == "" {
			cid = " "
		}
		var last *cmmn.Residue
		for i := range c.Residues {
			r := &c.Residues[i]
			ins := " "
			if r.InsCode != 0 {
				ins = string(r.InsCode)
			}
			for _, a := range r.Atoms {
				serial++
				fmt.Fprintf(bw, atomFmt, serial%100000, pdbAtName(a.Name), r.ResName, cid,
					r.NumLbl, ins, a.X, a.Y, a.Z, 1.0, 0.0, element(a.Name))
			}
			last = r
		}
		if last != nil {
			serial++
			fmt.Fprintf(bw, "TER   %5d      %3s %1s%4d\n", serial%100000, last.ResName, cid, last.NumLbl)
		}
	}
	fmt.Fprintln(bw, "END")
	return bw.Flush()
}
