package benchmark

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/goelm/datasets"
	"github.com/YuminosukeSato/goelm/elm"
	"github.com/YuminosukeSato/goelm/model_selection"
	"github.com/YuminosukeSato/goelm/pkg/errors"
	"github.com/YuminosukeSato/goelm/pkg/log"
)

// Result is the outcome of one (dataset, hidden size) cell.
type Result struct {
	Dataset   string
	HiddenNum int
	// MeanAccuracy は各 repeat の fold 平均精度をさらに平均したもの
	MeanAccuracy float64
	// StdAccuracy は repeat 間の fold 平均精度の母標準偏差
	StdAccuracy float64
	Duration    time.Duration
}

// Runner evaluates datasets according to a Config.
type Runner struct {
	cfg      Config
	logger   log.Logger
	progress io.Writer
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger that receives one Info record per result.
func WithLogger(l log.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithProgressWriter sets where the progress bar is drawn (default: stderr).
func WithProgressWriter(w io.Writer) RunnerOption {
	return func(r *Runner) {
		r.progress = w
	}
}

// NewRunner validates cfg and returns a Runner.
func NewRunner(cfg Config, opts ...RunnerOption) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{
		cfg:      cfg,
		logger:   log.GetLoggerWithName("benchmark"),
		progress: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run evaluates every dataset at every hidden size and returns the results in
// dataset-major order. Cancellation of ctx is checked before every
// cross-validation run.
func (r *Runner) Run(ctx context.Context, sets []*datasets.Dataset) (_ []Result, err error) {
	defer errors.Recover(&err, "Runner.Run")

	if len(sets) == 0 {
		return nil, errors.NewModelError("Runner.Run", "no datasets", errors.ErrEmptyData)
	}

	var bar *progressbar.ProgressBar
	if r.cfg.Progress {
		bar = progressbar.NewOptions(len(sets)*len(r.cfg.HiddenSizes)*r.cfg.Repeats,
			progressbar.OptionSetWriter(r.progress),
			progressbar.OptionSetDescription("benchmark"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetItsString("cv"),
			progressbar.OptionShowIts(),
			progressbar.OptionSetTheme(progressbar.ThemeASCII),
			progressbar.OptionClearOnFinish(),
		)
		defer func() { _ = bar.Finish() }()
	}

	results := make([]Result, 0, len(sets)*len(r.cfg.HiddenSizes))
	for _, ds := range sets {
		logger := r.logger.With(log.DatasetKey, ds.Name, log.OperationKey, log.OperationBenchmark)
		samples, features := ds.Dims()
		logger.Debug("dataset loaded", log.SamplesKey, samples, log.FeaturesKey, features)

		X, err := r.cfg.scale(ds.X)
		if err != nil {
			return nil, errors.Wrapf(err, "scale %s", ds.Name)
		}

		for _, hid := range r.cfg.HiddenSizes {
			if bar != nil {
				bar.Describe(fmt.Sprintf("%s hid=%d", ds.Name, hid))
			}
			res, err := r.evaluate(ctx, ds.Name, X, ds.Y, hid, bar)
			if err != nil {
				return nil, err
			}
			logger.Info("benchmark result",
				log.HiddenNeuronsKey, hid,
				log.AccuracyKey, res.MeanAccuracy,
				log.AccuracyStdKey, res.StdAccuracy,
				log.DurationMsKey, res.Duration.Milliseconds(),
			)
			results = append(results, res)
		}
	}
	return results, nil
}

func (r *Runner) evaluate(ctx context.Context, name string, X, y mat.Matrix, hid int, bar *progressbar.ProgressBar) (Result, error) {
	start := time.Now()
	means := make([]float64, r.cfg.Repeats)
	for rep := 0; rep < r.cfg.Repeats; rep++ {
		if err := ctx.Err(); err != nil {
			return Result{}, errors.Wrapf(err, "%s hid=%d", name, hid)
		}

		e, err := elm.NewELM(hid, elm.WithA(r.cfg.A), elm.WithRandomState(r.cfg.seedFor(rep)))
		if err != nil {
			return Result{}, err
		}
		scores, err := model_selection.CrossValScore(e, X, y,
			model_selection.WithCV(model_selection.NewStratifiedKFold(r.cfg.Folds, false, -1)),
			model_selection.WithNJobs(r.cfg.NJobs),
			model_selection.WithLogger(r.logger),
		)
		if err != nil {
			return Result{}, errors.Wrapf(err, "%s hid=%d repeat %d", name, hid, rep)
		}
		means[rep] = stat.Mean(scores, nil)
		r.logger.Debug("repeat done",
			log.DatasetKey, name,
			log.HiddenNeuronsKey, hid,
			log.RepeatKey, rep,
			log.AccuracyKey, means[rep],
		)

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	mean, std := stat.PopMeanStdDev(means, nil)
	return Result{
		Dataset:      name,
		HiddenNum:    hid,
		MeanAccuracy: mean,
		StdAccuracy:  std,
		Duration:     time.Since(start),
	}, nil
}
