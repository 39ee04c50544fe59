// Command elmbench evaluates Extreme Learning Machines with repeated
// stratified cross-validation over a set of hidden layer sizes.
//
// Usage:
//
//	elmbench -csv australian.csv -csv iris.csv:4 -hidden 10,20,30 -plot acc.png
//	elmbench -synthetic -seed 1 -jobs 4
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/goelm/benchmark"
	"github.com/YuminosukeSato/goelm/datasets"
	"github.com/YuminosukeSato/goelm/pkg/errors"
	"github.com/YuminosukeSato/goelm/pkg/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("elmbench failed", log.ErrAttr(err))
		if hint := errors.Hints(err); hint != "" {
			fmt.Fprintln(os.Stderr, "hint:", hint)
		}
		stop()
		os.Exit(1)
	}
}

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type options struct {
	cfg       benchmark.Config
	csv       stringList
	svmlight  stringList
	noHeader  bool
	synthetic bool
	plot      string
	text      bool
	logLevel  string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{cfg: benchmark.DefaultConfig()}
	fs := flag.NewFlagSet("elmbench", flag.ContinueOnError)
	fs.SetOutput(stderr)

	hidden := fs.String("hidden", "10,20,30", "comma separated hidden layer sizes")
	fs.IntVar(&opts.cfg.Repeats, "repeats", opts.cfg.Repeats, "cross-validation repetitions per hidden size")
	fs.IntVar(&opts.cfg.Folds, "folds", opts.cfg.Folds, "stratified folds")
	fs.Float64Var(&opts.cfg.A, "a", opts.cfg.A, "sigmoid steepness")
	fs.Int64Var(&opts.cfg.Seed, "seed", opts.cfg.Seed, "random seed, -1 for non-deterministic runs")
	fs.StringVar(&opts.cfg.Scaling, "scale", opts.cfg.Scaling, "feature scaling: standard, minmax or none")
	fs.IntVar(&opts.cfg.NJobs, "jobs", opts.cfg.NJobs, "folds evaluated in parallel, 0 for all CPUs")
	fs.BoolVar(&opts.cfg.Progress, "progress", false, "show a progress bar")
	fs.Var(&opts.csv, "csv", "CSV dataset as path[:labelcol] (repeatable, label defaults to the last column)")
	fs.Var(&opts.svmlight, "svmlight", "svmlight dataset path (repeatable)")
	fs.BoolVar(&opts.noHeader, "no-header", false, "CSV files have no header row")
	fs.BoolVar(&opts.synthetic, "synthetic", false, "add the synthetic blob datasets (default when no file is given)")
	fs.StringVar(&opts.plot, "plot", "", "save an accuracy plot to this file (.png, .svg, .pdf)")
	fs.BoolVar(&opts.text, "text", false, "print plain text instead of a table")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, errors.NewValidationError("args", "unexpected positional arguments", fs.Args())
	}

	sizes, err := parseHidden(*hidden)
	if err != nil {
		return nil, err
	}
	opts.cfg.HiddenSizes = sizes
	return opts, nil
}

func parseHidden(s string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.NewValidationError("hidden", "not an integer", part)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// splitCSVArg splits "path[:labelcol]". A suffix that is not an integer is
// part of the path.
func splitCSVArg(arg string) (string, int) {
	if i := strings.LastIndexByte(arg, ':'); i > 0 {
		if col, err := strconv.Atoi(arg[i+1:]); err == nil {
			return arg[:i], col
		}
	}
	return arg, -1
}

func loadDatasets(opts *options) ([]*datasets.Dataset, error) {
	var sets []*datasets.Dataset
	for _, arg := range opts.csv {
		path, col := splitCSVArg(arg)
		ds, err := datasets.LoadCSV(path, col, !opts.noHeader)
		if err != nil {
			return nil, err
		}
		sets = append(sets, ds)
	}
	for _, path := range opts.svmlight {
		ds, err := datasets.LoadSVMLight(path)
		if err != nil {
			return nil, err
		}
		sets = append(sets, ds)
	}

	if opts.synthetic || len(sets) == 0 {
		for _, cfg := range datasets.DefaultBlobs(opts.cfg.Seed) {
			ds, err := datasets.MakeBlobs(cfg)
			if err != nil {
				return nil, err
			}
			sets = append(sets, ds)
		}
	}
	return sets, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}
	if err := log.SetupLogger(opts.logLevel); err != nil {
		return err
	}
	logger := log.GetLoggerWithName("elmbench")

	runner, err := benchmark.NewRunner(opts.cfg, benchmark.WithLogger(logger))
	if err != nil {
		return err
	}

	sets, err := loadDatasets(opts)
	if err != nil {
		return err
	}
	for _, ds := range sets {
		logger.Info(ds.Summary(), log.DatasetKey, ds.Name)
	}

	results, err := runner.Run(ctx, sets)
	if err != nil {
		return err
	}

	if opts.text {
		if err := benchmark.WriteText(stdout, results); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(stdout, benchmark.RenderTable(results))
	}

	if opts.plot != "" {
		if err := benchmark.SavePlot(results, opts.plot); err != nil {
			return err
		}
		logger.Info("plot saved", "path", opts.plot)
	}
	return nil
}
