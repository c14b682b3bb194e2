// 19 Oct 2026

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"
	"runtime"
	"syscall"

	. "github.com/andrew-torda/ab_rmsd/pkg/common"
	"github.com/andrew-torda/ab_rmsd/pkg/batch"
)

// usage
func usage() int {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "[opts] -n native_dir -p pred_dir")
	flag.PrintDefaults()
	return ExitUsageError
}

func main() {
	var flags batch.CmdFlag
	flag.StringVar(&flags.NativeDir, "n", "", "directory (or file) with native structures")
	flag.StringVar(&flags.PredDir, "p", "", "directory (or file) with predicted structures")
	flag.StringVar(&flags.CSV, "o", "", "csv output file. errors.log goes next to it")
	flag.StringVar(&flags.HeavyID, "H", "H", "heavy chain id")
	flag.StringVar(&flags.LightID, "L", "L", "light chain id")
	flag.IntVar(&flags.NWorker, "r", runtime.NumCPU(), "number of structures to score at once")
	flag.StringVar(&flags.SupDir, "s", "", "write superimposed predictions to this directory")
	flag.StringVar(&flags.Plot, "g", "", "png file for a bar chart of the mean per region")
	flag.BoolVar(&flags.Watch, "w", false, "keep watching the prediction directory")
	flag.DurationVar(&flags.Settle, "settle", 0, "in watch mode, wait this long after a file stops changing (default 2s)")
	flag.StringVar(&flags.LogFile, "l", "", "log to stdout, stderr or a file. Default is no logging")
	flag.BoolVar(&flags.Fetch, "f", false, "download natives by four letter code instead of reading -n")
	flag.Parse()

	if flag.NArg() != 0 {
		os.Exit(usage())
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := batch.Mymain(ctx, &flags, os.Stdout)
	stop()
	switch {
	case errors.Is(err, batch.ErrUsage):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(usage())
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
