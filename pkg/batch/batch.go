// 19 Oct 2026

// Package batch scores predicted antibody structures against natives.
// Every structure file in the prediction directory is paired with the
// file of the same name in the native directory. Pairs are scored in
// parallel, and the results go to a csv file and standard output.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/andrew-torda/ab_rmsd/pdb"
	"github.com/andrew-torda/ab_rmsd/pdb/cmmn"
	"github.com/andrew-torda/ab_rmsd/pkg/abrmsd"
	"github.com/andrew-torda/ab_rmsd/pkg/antibody"
	"github.com/andrew-torda/ab_rmsd/pkg/common"
	"github.com/andrew-torda/ab_rmsd/pkg/plot"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrNothingCompared = Error("no heavy or light chain in common")
	ErrUsage           = Error("usage")
)

type CmdFlag struct {
	NativeDir string        // native structures, or a single native file
	PredDir   string        // predictions, or a single predicted file
	CSV       string        // csv output file, errors.log goes next to it
	HeavyID   string        // heavy chain id in both structures
	LightID   string        // light chain id in both structures
	NWorker   int           // pairs scored at once
	SupDir    string        // if set, write superimposed predictions here
	Plot      string        // if set, png bar chart of the mean per region
	Watch     bool          // keep watching PredDir for new files
	LogFile   string        // "", "stdout", "stderr" or a file name
	Fetch     bool          // download natives by four letter code
	Settle    time.Duration // watch mode waits this long after the last write to a file
}

// job is one pair to be scored. native is a path or, if fetching,
// a four letter code.
type job struct {
	ndx          int
	id           string
	pred, native string
	nativeSrc    byte
}

type result struct {
	ndx    int
	id     string
	scores abrmsd.Scores
	err    error
}

// newJob builds the pair for a prediction file.
func newJob(flags *CmdFlag, ndx int, predPath string) job {
	j := job{ndx: ndx, id: pdb.FileID(predPath), pred: predPath, nativeSrc: cmmn.FileSrc}
	if flags.Fetch {
		j.native, j.nativeSrc = j.id, cmmn.HTTPSrc
	} else {
		j.native = filepath.Join(flags.NativeDir, filepath.Base(predPath))
	}
	return j
}

// listPreds returns the structure files in a directory, sorted.
func listPreds(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var ret []string
	for _, e := range entries {
		if e.Type().IsRegular() && pdb.IsCoordName(e.Name()) {
			ret = append(ret, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(ret)
	return ret, nil
}

// readAb reads a structure and turns it into an antibody.
func readAb(fname string, srcType byte, flags *CmdFlag, lg *log.Logger) (*antibody.Antibody, error) {
	m, err := pdb.ReadCoord(fname, srcType, lg)
	if err != nil {
		return nil, err
	}
	return antibody.FromModel(m, flags.HeavyID, flags.LightID, lg)
}

// scorePair reads both structures and compares them. If SupDir is set,
// the prediction is moved onto the native and written there.
func scorePair(flags *CmdFlag, j job, lg *log.Logger) result {
	res := result{ndx: j.ndx, id: j.id}
	pred, err := readAb(j.pred, cmmn.FileSrc, flags, lg)
	if err != nil {
		res.err = err
		return res
	}
	native, err := readAb(j.native, j.nativeSrc, flags, lg)
	if err != nil {
		res.err = err
		return res
	}
	if res.scores, res.err = abrmsd.Compare(pred, native, flags.SupDir != ""); res.err != nil {
		return res
	}
	if len(res.scores) == 0 {
		res.err = ErrNothingCompared
		return res
	}
	if flags.SupDir != "" {
		res.err = writeSup(filepath.Join(flags.SupDir, j.id+".pdb"), pred)
	}
	return res
}

// writeSup writes a superimposed structure.
func writeSup(fname string, ab *antibody.Antibody) error {
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := pdb.Write(fp, ab.Model()); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

// runPool scores all jobs, at most nWorker at a time. Results come back
// over a channel to one collector and are returned in job order.
// Failing pairs do not stop the others. Only cancelling ctx does that.
func runPool(ctx context.Context, flags *CmdFlag, jobs []job, lg *log.Logger) ([]result, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(flags.NWorker, 1))
	resCh := make(chan result)
	done := make(chan []result)
	go func() {
		var all []result
		for r := range resCh {
			all = append(all, r)
		}
		sort.Slice(all, func(i, k int) bool { return all[i].ndx < all[k].ndx })
		done <- all
	}()
	for _, j := range jobs {
		if gctx.Err() != nil {
			break
		}
		j := j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			resCh <- scorePair(flags, j, lg)
			return nil
		})
	}
	err := g.Wait()
	close(resCh)
	all := <-done
	if err == nil {
		err = ctx.Err()
	}
	return all, err
}

// split separates good rows from failures and logs the failures.
func split(results []result, lg *log.Logger) (rows []row, failed []result) {
	for _, r := range results {
		if r.err != nil {
			lg.Println(r.id, r.err)
			failed = append(failed, r)
			continue
		}
		rows = append(rows, row{id: r.id, scores: r.scores})
	}
	return rows, failed
}

// report writes the csv and errors.log if asked for, then prints.
func report(flags *CmdFlag, t *table, failed []result, stdout io.Writer) error {
	if flags.CSV != "" {
		if err := t.saveCSV(flags.CSV); err != nil {
			return err
		}
		if err := writeErrors(errLogPath(flags.CSV), failed); err != nil {
			return err
		}
	}
	if err := t.print(stdout); err != nil {
		return err
	}
	for _, r := range failed {
		fmt.Fprintf(stdout, "failed %s: %v\n", r.id, r.err)
	}
	return nil
}

// savePlot draws the mean of each region.
func savePlot(fname string, t *table) error {
	labels := make([]string, len(regions))
	for i, r := range regions {
		labels[i] = r.String()
	}
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := plot.BarPNG(fp, "mean RMSD per region", labels, t.mean()); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

func isFile(name string) bool {
	info, err := os.Stat(name)
	return err == nil && info.Mode().IsRegular()
}

// checkFlags makes sure we have somewhere to read from.
func checkFlags(flags *CmdFlag) error {
	if flags.PredDir == "" {
		return fmt.Errorf("%w: no prediction directory or file", ErrUsage)
	}
	if flags.NativeDir == "" && !flags.Fetch {
		return fmt.Errorf("%w: no native directory or file, and not fetching", ErrUsage)
	}
	if flags.HeavyID == "" && flags.LightID == "" {
		return fmt.Errorf("%w: need a heavy or light chain id", ErrUsage)
	}
	return nil
}

// singlePair scores one predicted file against one native.
func singlePair(flags *CmdFlag, lg *log.Logger, stdout io.Writer) error {
	j := job{id: pdb.FileID(flags.PredDir), pred: flags.PredDir, native: flags.NativeDir, nativeSrc: cmmn.FileSrc}
	switch {
	case flags.Fetch:
		j.native, j.nativeSrc = j.id, cmmn.HTTPSrc
	case !isFile(flags.NativeDir):
		j.native = filepath.Join(flags.NativeDir, filepath.Base(flags.PredDir))
	}
	pred, err := readAb(j.pred, cmmn.FileSrc, flags, lg)
	if err != nil {
		return err
	}
	native, err := readAb(j.native, j.nativeSrc, flags, lg)
	if err != nil {
		return err
	}
	aligned, scores, err := abrmsd.Align(pred, native)
	if err != nil {
		return err
	}
	if len(scores) == 0 {
		return fmt.Errorf("%s: %w", j.id, ErrNothingCompared)
	}
	if flags.SupDir != "" {
		if err := writeSup(filepath.Join(flags.SupDir, j.id+".pdb"), aligned); err != nil {
			return err
		}
	}
	return report(flags, newTable([]row{{id: j.id, scores: scores}}), nil, stdout)
}

// Mymain scores everything and writes the reports. If flags.Watch is
// set, it then carries on scoring new predictions until ctx is
// cancelled.
func Mymain(ctx context.Context, flags *CmdFlag, stdout io.Writer) error {
	if err := checkFlags(flags); err != nil {
		return err
	}
	lg, err := common.LogWhere(flags.LogFile)
	if err != nil {
		return err
	}
	if flags.SupDir != "" {
		if err := os.MkdirAll(flags.SupDir, 0755); err != nil {
			return err
		}
	}
	if isFile(flags.PredDir) {
		return singlePair(flags, lg, stdout)
	}

	var w *fsnotify.Watcher
	if flags.Watch {
		if w, err = newWatcher(flags.PredDir); err != nil {
			return err
		}
		defer w.Close()
	}
	preds, err := listPreds(flags.PredDir)
	if err != nil {
		return fmt.Errorf("prediction directory: %w", err)
	}
	jobs := make([]job, len(preds))
	for i, p := range preds {
		jobs[i] = newJob(flags, i, p)
	}
	lg.Println("scoring", len(jobs), "pairs with", flags.NWorker, "workers")
	results, err := runPool(ctx, flags, jobs, lg)
	if err != nil {
		return err
	}
	rows, failed := split(results, lg)
	t := newTable(rows)
	if err := report(flags, t, failed, stdout); err != nil {
		return err
	}
	if flags.Plot != "" && len(rows) > 0 {
		if err := savePlot(flags.Plot, t); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
	}
	if !flags.Watch {
		return nil
	}

	s := &state{flags: flags, rows: rows, failed: failed, stdout: stdout, lg: lg}
	err = watch(ctx, w, flags, lg, s.add)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
