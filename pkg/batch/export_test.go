package batch

import (
	"bytes"

	"github.com/andrew-torda/ab_rmsd/pkg/abrmsd"
)

var (
	Wanted = wanted
	Ready  = ready
)

type Table = table

func NewTable(ids []string, scores []abrmsd.Scores) *Table {
	rows := make([]row, len(ids))
	for i := range ids {
		rows[i] = row{id: ids[i], scores: scores[i]}
	}
	return newTable(rows)
}

func (t *table) Mean() []float64 { return t.mean() }

func (t *table) CSV() (string, error) {
	var b bytes.Buffer
	err := t.writeCSV(&b)
	return b.String(), err
}

func (t *table) Print() (string, error) {
	var b bytes.Buffer
	err := t.print(&b)
	return b.String(), err
}

var NewWatcher = newWatcher
