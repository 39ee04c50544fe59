// Package benchmark runs repeated cross-validation of ELM classifiers over a
// grid of hidden layer sizes and reports the mean accuracies.
package benchmark

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goelm/core/model"
	"github.com/YuminosukeSato/goelm/pkg/errors"
	"github.com/YuminosukeSato/goelm/preprocessing"
)

// Scaling modes applied to X before evaluation.
const (
	ScalingStandard = "standard"
	ScalingMinMax   = "minmax"
	ScalingNone     = "none"
)

// Config controls a benchmark run.
type Config struct {
	// HiddenSizes は評価する隠れ層ニューロン数
	HiddenSizes []int
	// Repeats は交差検証を繰り返す回数
	Repeats int
	// Folds は交差検証の分割数
	Folds int
	// A はシグモイドの傾き
	A float64
	// Seed が0以上のとき repeat r の ELM は Seed+r で初期化される。-1 で非決定的。
	Seed int64
	// Scaling は "standard", "minmax", "none" のいずれか
	Scaling string
	// NJobs は並列に評価する fold 数 (<=0 で全CPU)
	NJobs int
	// Progress が true のときプログレスバーを表示する
	Progress bool
}

// DefaultConfig returns hidden sizes {10, 20, 30}, 10 repeats of 5-fold
// cross-validation on standardised features.
func DefaultConfig() Config {
	return Config{
		HiddenSizes: []int{10, 20, 30},
		Repeats:     10,
		Folds:       5,
		A:           1.0,
		Seed:        -1,
		Scaling:     ScalingStandard,
		NJobs:       1,
	}
}

// Validate checks every field and returns a ValidationError for the first
// invalid one.
func (c Config) Validate() error {
	if len(c.HiddenSizes) == 0 {
		return errors.NewValidationError("hidden", "at least one hidden size is required", c.HiddenSizes)
	}
	for _, h := range c.HiddenSizes {
		if h < 1 {
			return errors.NewValidationError("hidden", "hidden sizes must be positive", h)
		}
	}
	if c.Repeats < 1 {
		return errors.NewValidationError("repeats", "must be positive", c.Repeats)
	}
	if c.Folds < 2 {
		return errors.NewValidationError("folds", "must be at least 2", c.Folds)
	}
	if !(c.A > 0) {
		return errors.NewValidationError("a", "must be positive", c.A)
	}
	if c.Seed < -1 {
		return errors.NewValidationError("seed", "must be -1 or non-negative", c.Seed)
	}
	switch c.Scaling {
	case ScalingStandard, ScalingMinMax, ScalingNone:
	default:
		return errors.NewValidationError("scale", fmt.Sprintf("unknown scaling %q", c.Scaling), c.Scaling)
	}
	return nil
}

// scale returns X transformed according to c.Scaling.
func (c Config) scale(X mat.Matrix) (mat.Matrix, error) {
	var t model.Transformer
	switch c.Scaling {
	case ScalingStandard:
		t = preprocessing.NewStandardScalerDefault()
	case ScalingMinMax:
		t = preprocessing.NewMinMaxScalerDefault()
	default:
		return X, nil
	}
	return t.FitTransform(X)
}

func (c Config) seedFor(repeat int) int64 {
	if c.Seed < 0 {
		return -1
	}
	return c.Seed + int64(repeat)
}
