// Package goelm provides an Extreme Learning Machine (ELM) classifier for Go,
// together with the preprocessing, cross-validation and benchmarking pieces
// needed to evaluate it.
//
// An ELM is a single hidden layer network whose hidden weights are drawn at
// random and never trained. Only the output weights are learned, in closed
// form, through the Moore-Penrose pseudo-inverse of the hidden activations.
// Training is therefore a single SVD instead of an iterative optimisation.
//
// # Installation
//
//	go get github.com/YuminosukeSato/goelm
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/goelm/elm"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    // Labels 1..K select multiclass mode
//	    X := mat.NewDense(4, 2, []float64{0, 0, 0, 1, 5, 5, 5, 6})
//	    y := mat.NewDense(4, 1, []float64{1, 1, 2, 2})
//
//	    model, err := elm.NewELM(10, elm.WithRandomState(42))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := model.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    pred, err := model.Predict(mat.NewDense(1, 2, []float64{5, 5.5}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("Prediction:", pred.At(0, 0)) // 2
//	}
//
// # Label conventions
//
// Fit inspects the maximum label. When it is exactly 1 the model runs in
// binary mode: y is used as a single regression target (typically ±1) and
// Predict returns the sign of the score. Otherwise labels must be integers
// 1..K; each is encoded as a length-K vector of -1 with +1 at position
// label-1, and Predict returns the index of the largest score plus one.
//
// # Packages
//
//   - elm: the ELM estimator, sigmoid activation, pseudo-inverse
//   - preprocessing: StandardScaler and MinMaxScaler
//   - metrics: accuracy, confusion matrix, weighted precision/recall/F1
//   - model_selection: KFold, StratifiedKFold, CrossValScore
//   - datasets: CSV and svmlight loaders, synthetic Gaussian blobs
//   - benchmark: repeated cross-validation over hidden sizes, tables and plots
//   - core/model: estimator interfaces and the fitted-state manager
//   - core/parallel: chunked parallel execution helpers
//   - pkg/errors, pkg/log: error types and structured logging
//
// # Benchmark
//
// The elmbench command runs the benchmark from the command line:
//
//	go run ./cmd/elmbench -csv australian.csv -csv iris.csv -hidden 10,20,30
//
// Without dataset flags it evaluates two synthetic blob datasets.
//
// # License
//
// goelm is released under the MIT License.
package goelm
