package pdb

// Export some internal functions for testing

const (
	OldFmt   = oldFmt
	MmcifFmt = mmcifFmt
	UnkFmt   = unkFmt
)

var FmtFromName = fmtFromName
var Sniff = sniff

// UseSites replaces the download sites with ones serving old format pdb
// files at base + code + ".pdb". It returns a function to put the real
// ones back.
func UseSites(bases ...string) (restore func()) {
	old := sites
	sites = nil
	for _, b := range bases {
		sites = append(sites, site{base: b, suffix: ".pdb", format: oldFmt, chothia: true})
	}
	return func() { sites = old }
}
