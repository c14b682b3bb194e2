// 19 Oct 2026

package batch

import (
	"context"
	"fmt"
	"io"
	"log"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/andrew-torda/ab_rmsd/pdb"
	"github.com/fsnotify/fsnotify"
)

const defaultSettle = 2 * time.Second

// wanted says if an event could be a new or rewritten structure.
func wanted(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}
	return pdb.IsCoordName(ev.Name)
}

// ready returns, sorted, the files which have not been touched for at
// least settle. A predictor may write a file in pieces, so we do not
// read it as soon as it appears.
func ready(pending map[string]time.Time, now time.Time, settle time.Duration) []string {
	var ret []string
	for name, last := range pending {
		if now.Sub(last) >= settle {
			ret = append(ret, name)
		}
	}
	sort.Strings(ret)
	return ret
}

// state is what we have scored so far in watch mode.
type state struct {
	flags  *CmdFlag
	rows   []row
	failed []result
	stdout io.Writer
	lg     *log.Logger
}

// add puts a new result in, replacing any older one with the same id,
// then rewrites the output files and prints the new line.
func (s *state) add(r result) error {
	byID := func(id string) bool { return id == r.id }
	s.rows = slices.DeleteFunc(s.rows, func(x row) bool { return byID(x.id) })
	s.failed = slices.DeleteFunc(s.failed, func(x result) bool { return byID(x.id) })
	if r.err != nil {
		s.lg.Println(r.id, r.err)
		s.failed = append(s.failed, r)
		fmt.Fprintf(s.stdout, "failed %s: %v\n", r.id, r.err)
	} else {
		s.rows = append(s.rows, row{id: r.id, scores: r.scores})
		line := newTable([]row{{id: r.id, scores: r.scores}}).records()[1]
		fmt.Fprintln(s.stdout, strings.Join(line, ", "))
	}
	t := newTable(s.rows)
	if s.flags.CSV != "" {
		if err := t.saveCSV(s.flags.CSV); err != nil {
			return err
		}
		if err := writeErrors(errLogPath(s.flags.CSV), s.failed); err != nil {
			return err
		}
	}
	if s.flags.Plot != "" && len(s.rows) > 0 {
		if err := savePlot(s.flags.Plot, t); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
	}
	return nil
}

// newWatcher starts watching dir. It is called before the directory is
// first listed, so a file that turns up during the first pass is not
// missed. It may be scored twice, which does no harm.
func newWatcher(dir string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %v: %w", dir, err)
	}
	return w, nil
}

// watch scores files as they appear in the prediction directory and
// hands each result to add. It returns when ctx is done.
func watch(ctx context.Context, w *fsnotify.Watcher, flags *CmdFlag, lg *log.Logger, add func(result) error) error {
	settle := flags.Settle
	if settle <= 0 {
		settle = defaultSettle
	}
	ticker := time.NewTicker(max(settle/4, 10*time.Millisecond))
	defer ticker.Stop()
	lg.Println("watching", flags.PredDir)

	pending := make(map[string]time.Time)
	ndx := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if wanted(ev) {
				pending[ev.Name] = time.Now()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			lg.Println("watcher:", err)
		case now := <-ticker.C:
			for _, name := range ready(pending, now, settle) {
				delete(pending, name)
				if !isFile(name) {
					continue
				}
				ndx++
				if err := add(scorePair(flags, newJob(flags, ndx, name), lg)); err != nil {
					return err
				}
			}
		}
	}
}
