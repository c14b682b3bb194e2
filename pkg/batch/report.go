package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/andrew-torda/ab_rmsd/pkg/abrmsd"
	"github.com/andrew-torda/ab_rmsd/pkg/antibody"
	"github.com/andrew-torda/matrix"
)

const errLogName = "errors.log"

// regions are the columns of every report, in this order.
var regions = antibody.AllRegions()

// row is one scored structure.
type row struct {
	id     string
	scores abrmsd.Scores
}

// table has one row per structure and one column per region. Regions
// which could not be compared are NaN, and empty in the output.
type table struct {
	ids  []string
	vals *matrix.FMatrix2d
}

func newTable(rows []row) *table {
	t := &table{ids: make([]string, len(rows)), vals: matrix.NewFMatrix2d(len(rows), len(regions))}
	for i, r := range rows {
		t.ids[i] = r.id
		for j, reg := range regions {
			v, ok := r.scores[reg]
			if !ok {
				v = math.NaN()
			}
			t.vals.Mat[i][j] = float32(v)
		}
	}
	return t
}

func isNaN32(f float32) bool { return f != f }

// mean of each column, ignoring NaNs. A column with nothing in it
// has a NaN mean.
func (t *table) mean() []float64 {
	ret := make([]float64, len(regions))
	for j := range regions {
		var sum float64
		n := 0
		for i := range t.ids {
			if v := t.vals.Mat[i][j]; !isNaN32(v) {
				sum += float64(v)
				n++
			}
		}
		ret[j] = math.NaN()
		if n > 0 {
			ret[j] = sum / float64(n)
		}
	}
	return ret
}

// fmtVal leaves regions that were not compared empty.
func fmtVal(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return fmt.Sprintf("%.3f", v)
}

func header() []string {
	hdr := []string{"id"}
	for _, r := range regions {
		hdr = append(hdr, r.String())
	}
	return hdr
}

// records are the lines of the report including the header and,
// if there are any rows, the mean.
func (t *table) records() [][]string {
	recs := [][]string{header()}
	for i, id := range t.ids {
		rec := []string{id}
		for j := range regions {
			rec = append(rec, fmtVal(float64(t.vals.Mat[i][j])))
		}
		recs = append(recs, rec)
	}
	if len(t.ids) > 0 {
		rec := []string{"mean"}
		for _, v := range t.mean() {
			rec = append(rec, fmtVal(v))
		}
		recs = append(recs, rec)
	}
	return recs
}

// writeCSV writes the report as csv.
func (t *table) writeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(t.records()); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// saveCSV writes the report to a file, replacing anything there.
func (t *table) saveCSV(fname string) error {
	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("output file %v: %w", fname, err)
	}
	if err := t.writeCSV(fp); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

// print writes the report in columns for people to read.
func (t *table) print(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	for _, rec := range t.records() {
		for _, s := range rec {
			fmt.Fprint(tw, s, "\t")
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// errLogPath puts errors.log next to the csv file.
func errLogPath(csvName string) string {
	return filepath.Join(filepath.Dir(csvName), errLogName)
}

// writeErrors lists the structures which could not be scored, one per
// line. The file is always written, so an empty one means no errors.
func writeErrors(fname string, failed []result) error {
	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("error log %v: %w", fname, err)
	}
	for _, r := range failed {
		fmt.Fprintf(fp, "%s: %v\n", r.id, r.err)
	}
	return fp.Close()
}
