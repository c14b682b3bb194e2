package pdb

// Go to a structure website and download coordinates.
// The main point is to visit the web page and return a reader that
// can be used like the file readers.

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// site is one place to get structures from. The url is
// base + code + suffix.
type site struct {
	base, suffix string
	format       byte
	chothia      bool // are residues Chothia numbered ?
}

// sites are tried in order. Only SAbDab gives Chothia numbering, which
// is what the antibody regions need. The others are a fall back and
// only work if the deposited numbering happens to be Chothia.
var sites = []site{
	{"https://opig.stats.ox.ac.uk/webapps/sabdab-sabpred/sabdab/pdb/", "/?scheme=chothia", oldFmt, true},
	{"https://files.rcsb.org/download/", ".cif.gz", mmcifFmt, false},
	{"https://www.ebi.ac.uk/pdbe/entry-files/download/", ".cif", mmcifFmt, false},
}

var httpClient = &http.Client{Timeout: 60 * time.Second}

// getHTTP is given a four letter pdb code. It tries each site until one
// answers and returns the body and the format the site serves.
// Gzipped bodies are left for zwrap to notice.
func getHTTP(acqCode string, lg *log.Logger) (io.ReadCloser, byte, error) {
	if len(acqCode) != 4 {
		return nil, unkFmt, fmt.Errorf("acq code should be four char, not %q", acqCode)
	}
	var errs []error
	for _, s := range sites {
		url := s.base + acqCode + s.suffix
		resp, err := httpClient.Get(url)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			errs = append(errs, fmt.Errorf("wanted %s using %s, got %s", acqCode, url, resp.Status))
			continue
		}
		if !s.chothia {
			lg.Println(acqCode, "from", url, "may not be Chothia numbered")
		}
		return resp.Body, s.format, nil
	}
	return nil, unkFmt, errors.Join(errs...)
}
