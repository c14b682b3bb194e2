package mmcif

import "bytes"

// Export some internal functions for testing

var SplitCifLine = splitCifLine

// ScanAll returns every line the scanner gives back.
func ScanAll(b []byte) []string {
	s := newCmmtScanner(bytes.NewReader(b))
	var ret []string
	for s.cscan() {
		ret = append(ret, string(s.cbytes()))
	}
	return ret
}
