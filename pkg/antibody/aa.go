package antibody

// oneLetter maps residue names to one letter codes. Anything not here is
// not an amino acid we keep.
var oneLetter = map[string]byte{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLN": 'Q', "GLU": 'E', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
}

// isHydrogen guesses from the name. Names like "H", "HB2" and "1HG1"
// are hydrogens. We do not have element symbols from every file.
func isHydrogen(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= '0' && c <= '9' {
			continue
		}
		return c == 'H'
	}
	return false
}
