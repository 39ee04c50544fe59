package model_selection

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goelm/core/model"
	"github.com/YuminosukeSato/goelm/core/parallel"
	"github.com/YuminosukeSato/goelm/metrics"
	"github.com/YuminosukeSato/goelm/pkg/errors"
	"github.com/YuminosukeSato/goelm/pkg/log"
)

// ScoringFunc scores predictions against the true labels; higher is better.
type ScoringFunc func(yTrue, yPred mat.Matrix) (float64, error)

type cvConfig struct {
	cv      Splitter
	scoring ScoringFunc
	nJobs   int
	logger  log.Logger
}

// CVOption configures CrossValScore
type CVOption func(*cvConfig)

// WithCV sets the splitter (default: 5-fold StratifiedKFold without shuffling).
func WithCV(s Splitter) CVOption {
	return func(c *cvConfig) {
		c.cv = s
	}
}

// WithScoring sets the scoring function (default: accuracy).
func WithScoring(fn ScoringFunc) CVOption {
	return func(c *cvConfig) {
		c.scoring = fn
	}
}

// WithNJobs sets the number of folds evaluated concurrently.
// n <= 0 uses every CPU. Parallel evaluation needs an estimator that
// implements model.SKLearnCompatible; other estimators run sequentially.
func WithNJobs(n int) CVOption {
	return func(c *cvConfig) {
		c.nJobs = n
	}
}

// WithLogger sets the logger for per-fold records.
func WithLogger(l log.Logger) CVOption {
	return func(c *cvConfig) {
		c.logger = l
	}
}

// CrossValScore evaluates est by cross-validation and returns one score per
// fold, in fold order. The first failing fold aborts the evaluation.
//
// Sequential evaluation reuses est, so after it returns est holds the model
// fitted on the last fold's training set.
func CrossValScore(est model.Estimator, X, y mat.Matrix, opts ...CVOption) ([]float64, error) {
	cfg := &cvConfig{
		cv:      NewStratifiedKFold(5, false, -1),
		scoring: metrics.AccuracyMatrix,
		nJobs:   1,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.GetLoggerWithName("model_selection")
	}
	if cfg.cv == nil {
		return nil, errors.NewValidationError("cv", "splitter must not be nil", nil)
	}
	if cfg.scoring == nil {
		return nil, errors.NewValidationError("scoring", "scoring function must not be nil", nil)
	}

	r, _ := X.Dims()
	if ry, _ := y.Dims(); ry != r {
		return nil, errors.NewDimensionError("CrossValScore", r, ry, 0)
	}

	folds, err := cfg.cv.Split(X, y)
	if err != nil {
		return nil, err
	}

	logger := cfg.logger.With(log.OperationKey, log.OperationCrossValidate, log.PhaseKey, log.PhaseValidation)
	scores := make([]float64, len(folds))

	workers := cfg.nJobs
	if workers != 1 {
		if _, ok := model.CloneEstimator(est); !ok {
			workers = 1
		}
	}

	err = parallel.ForEach(len(folds), workers, func(i int) error {
		e := est
		if workers != 1 {
			e, _ = model.CloneEstimator(est)
		}
		score, err := evaluateFold(e, X, y, folds[i], cfg.scoring)
		if err != nil {
			logger.Error("fold failed", err, log.FoldKey, i)
			return errors.Wrapf(err, "fold %d", i)
		}
		scores[i] = score
		logger.Debug("fold evaluated",
			log.FoldKey, i,
			log.SamplesKey, len(folds[i].TestIndices),
			log.AccuracyKey, score,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return scores, nil
}

func evaluateFold(est model.Estimator, X, y mat.Matrix, fold Fold, scoring ScoringFunc) (float64, error) {
	xTrain, yTrain := Subset(X, y, fold.TrainIndices)
	xTest, yTest := Subset(X, y, fold.TestIndices)

	if err := est.Fit(xTrain, yTrain); err != nil {
		return 0, err
	}
	pred, err := est.Predict(xTest)
	if err != nil {
		return 0, err
	}
	return scoring(yTest, pred)
}
