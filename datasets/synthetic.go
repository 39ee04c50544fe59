package datasets

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/goelm/pkg/errors"
)

// BlobsConfig describes isotropic Gaussian clusters.
type BlobsConfig struct {
	Name       string
	Samples    int     // total samples, spread evenly over the clusters
	Features   int     // dimensionality
	Centers    int     // number of clusters
	Std        float64 // per-coordinate standard deviation
	CenterBox  float64 // centres are drawn uniformly from [-CenterBox, CenterBox]
	Bipolar    bool    // label the two clusters -1/+1 instead of 1/2
	RandomSeed int64   // < 0 draws a seed from the process source
}

// DefaultBlobs returns the two synthetic datasets used when no file is given:
// "blobs-binary" with ±1 labels and "blobs-3class" with labels 1..3.
func DefaultBlobs(seed int64) []BlobsConfig {
	return []BlobsConfig{
		{Name: "blobs-binary", Samples: 200, Features: 4, Centers: 2, Std: 1.5, CenterBox: 5, Bipolar: true, RandomSeed: seed},
		{Name: "blobs-3class", Samples: 300, Features: 4, Centers: 3, Std: 1.5, CenterBox: 5, RandomSeed: seed},
	}
}

func (c BlobsConfig) validate() error {
	switch {
	case c.Samples < 1:
		return errors.NewValidationError("samples", "must be positive", c.Samples)
	case c.Features < 1:
		return errors.NewValidationError("features", "must be positive", c.Features)
	case c.Centers < 1 || c.Centers > c.Samples:
		return errors.NewValidationError("centers", "must be between 1 and the sample count", c.Centers)
	case c.Std <= 0:
		return errors.NewValidationError("std", "must be positive", c.Std)
	case c.CenterBox <= 0:
		return errors.NewValidationError("center_box", "must be positive", c.CenterBox)
	case c.Bipolar && c.Centers != 2:
		return errors.NewValidationError("bipolar", "requires exactly 2 centers", c.Centers)
	}
	return nil
}

// MakeBlobs generates cfg.Samples points around cfg.Centers random centres.
// Sample i belongs to cluster i % Centers.
func MakeBlobs(cfg BlobsConfig) (*Dataset, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	seed := uint64(cfg.RandomSeed)
	if cfg.RandomSeed < 0 {
		seed = rand.Uint64()
	}
	src := rand.NewPCG(seed, seed)

	box := distuv.Uniform{Min: -cfg.CenterBox, Max: cfg.CenterBox, Src: src}
	centers := mat.NewDense(cfg.Centers, cfg.Features, nil)
	for i := 0; i < cfg.Centers; i++ {
		for j := 0; j < cfg.Features; j++ {
			centers.Set(i, j, box.Rand())
		}
	}

	noise := distuv.Normal{Mu: 0, Sigma: cfg.Std, Src: src}
	X := mat.NewDense(cfg.Samples, cfg.Features, nil)
	y := mat.NewDense(cfg.Samples, 1, nil)
	for i := 0; i < cfg.Samples; i++ {
		c := i % cfg.Centers
		for j := 0; j < cfg.Features; j++ {
			X.Set(i, j, centers.At(c, j)+noise.Rand())
		}
		label := float64(c + 1)
		if cfg.Bipolar {
			label = float64(2*c - 1)
		}
		y.Set(i, 0, label)
	}

	name := cfg.Name
	if name == "" {
		name = "blobs"
	}
	return &Dataset{Name: name, X: X, Y: y}, nil
}
