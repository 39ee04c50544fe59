package model

import (
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goelm/pkg/errors"
)

// EstimatorState はモデルの学習状態
type EstimatorState int

const (
	NotFitted EstimatorState = iota
	Fitted
)

func (s EstimatorState) String() string {
	switch s {
	case NotFitted:
		return "unfitted"
	case Fitted:
		return "fitted"
	}
	return "unknown"
}

// shape は Fit に渡されたデータの大きさ
type shape struct {
	features, samples int
}

// StateManager は学習済みかどうかと学習時の形をスレッドセーフに保持する。
// 推定器は埋め込みではなくフィールドとして持つ。
type StateManager struct {
	name string

	mu  sync.RWMutex
	fit *shape
}

// NewStateManager returns an unfitted manager; name labels its errors.
func NewStateManager(name string) *StateManager {
	return &StateManager{name: name}
}

func (s *StateManager) SetFitted(nFeatures, nSamples int) {
	s.mu.Lock()
	s.fit = &shape{features: nFeatures, samples: nSamples}
	s.mu.Unlock()
}

func (s *StateManager) Reset() {
	s.mu.Lock()
	s.fit = nil
	s.mu.Unlock()
}

func (s *StateManager) IsFitted() bool { return s.State() == Fitted }

func (s *StateManager) State() EstimatorState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fit == nil {
		return NotFitted
	}
	return Fitted
}

// NFeatures は学習時の特徴量数。未学習なら0。
func (s *StateManager) NFeatures() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fit == nil {
		return 0
	}
	return s.fit.features
}

// NSamples は学習時のサンプル数。未学習なら0。
func (s *StateManager) NSamples() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fit == nil {
		return 0
	}
	return s.fit.samples
}

// CheckInput は method を呼べる状態か確認する。未学習なら NotFittedError、
// X の列数が学習時と違えば DimensionError を返す。
func (s *StateManager) CheckInput(method string, X mat.Matrix) error {
	s.mu.RLock()
	fit := s.fit
	s.mu.RUnlock()

	if fit == nil {
		return errors.NewNotFittedError(s.name, method)
	}
	if _, c := X.Dims(); c != fit.features {
		return errors.NewDimensionError(s.name+"."+method, fit.features, c, 1)
	}
	return nil
}
