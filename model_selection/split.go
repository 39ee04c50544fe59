// Package model_selection は交差検証の分割器とスコアリングを提供する。
package model_selection

import (
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goelm/pkg/errors"
)

// Splitter は X (と y) の行を NSplits 個の train/test の組に分ける
type Splitter interface {
	Split(X, y mat.Matrix) ([]Fold, error)
	NSplits() int
}

// Fold は1回分の分割。どちらの添字も昇順。
type Fold struct {
	TrainIndices []int
	TestIndices  []int
}

// KFold は行を連続した k 個のブロックに分ける。先頭の n%k 個のブロックが1行多い。
type KFold struct {
	nSplits int
	Shuffle bool
	// Shuffle のときだけ使う。-1 はプロセスのエントロピーから初期化する。
	RandomState int64
}

func NewKFold(nSplits int, shuffle bool, randomState int64) *KFold {
	return &KFold{nSplits: nSplits, Shuffle: shuffle, RandomState: randomState}
}

func (kf *KFold) NSplits() int { return kf.nSplits }

func (kf *KFold) Split(X, _ mat.Matrix) ([]Fold, error) {
	n, _ := X.Dims()
	k := kf.nSplits
	if err := checkSplits("KFold", k, n); err != nil {
		return nil, err
	}

	order := permutation(n, kf.Shuffle, kf.RandomState)
	assign := make([]int, n)
	size, extra := n/k, n%k
	for f, pos := 0, 0; f < k; f++ {
		end := pos + size
		if f < extra {
			end++
		}
		for _, idx := range order[pos:end] {
			assign[idx] = f
		}
		pos = end
	}
	return foldsOf(assign, k), nil
}

// StratifiedKFold は各クラスをできるだけ均等に k 個の fold へ配る。
// どの fold でもクラスごとの件数の差は高々1。
type StratifiedKFold struct {
	nSplits     int
	Shuffle     bool
	RandomState int64
}

func NewStratifiedKFold(nSplits int, shuffle bool, randomState int64) *StratifiedKFold {
	return &StratifiedKFold{nSplits: nSplits, Shuffle: shuffle, RandomState: randomState}
}

func (skf *StratifiedKFold) NSplits() int { return skf.nSplits }

// Split はサンプルをラベル順 (同じラベル内は元の順、Shuffle なら乱順) に並べ、
// 先頭から fold 0, 1, ..., k-1, 0, ... と配る。n >= k なので空の fold はできない。
func (skf *StratifiedKFold) Split(X, y mat.Matrix) ([]Fold, error) {
	n, _ := X.Dims()
	k := skf.nSplits
	if err := checkSplits("StratifiedKFold", k, n); err != nil {
		return nil, err
	}
	if y == nil {
		return nil, errors.NewValueError("StratifiedKFold.Split", "y is required for stratification")
	}
	if ry, _ := y.Dims(); ry != n {
		return nil, errors.NewDimensionError("StratifiedKFold.Split", n, ry, 0)
	}

	order := permutation(n, skf.Shuffle, skf.RandomState)
	sort.SliceStable(order, func(a, b int) bool {
		return y.At(order[a], 0) < y.At(order[b], 0)
	})

	assign := make([]int, n)
	for pos, idx := range order {
		assign[idx] = pos % k
	}
	return foldsOf(assign, k), nil
}

func checkSplits(name string, k, n int) error {
	switch {
	case k < 2:
		return errors.NewValidationError("n_splits", name+" requires at least 2 splits", k)
	case k > n:
		return errors.NewValidationError("n_splits", "cannot be greater than the number of samples", k)
	}
	return nil
}

// permutation は 0..n-1 を返す。shuffle なら seed で並べ替える。
func permutation(n int, shuffle bool, seed int64) []int {
	if shuffle {
		return newRand(seed).Perm(n)
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

func newRand(seed int64) *rand.Rand {
	if seed < 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// foldsOf は assign[i] 番目の fold のテストにサンプル i を入れ、残りを学習側にする
func foldsOf(assign []int, k int) []Fold {
	folds := make([]Fold, k)
	for i, f := range assign {
		for g := range folds {
			if g == f {
				folds[g].TestIndices = append(folds[g].TestIndices, i)
			} else {
				folds[g].TrainIndices = append(folds[g].TrainIndices, i)
			}
		}
	}
	return folds
}

// Subset returns the rows of X and y listed in indices, in that order.
func Subset(X, y mat.Matrix, indices []int) (*mat.Dense, *mat.Dense) {
	return rows(X, indices), rows(y, indices)
}

func rows(m mat.Matrix, indices []int) *mat.Dense {
	_, c := m.Dims()
	out := mat.NewDense(len(indices), c, nil)
	buf := make([]float64, c)
	for i, idx := range indices {
		out.SetRow(i, mat.Row(buf, idx, m))
	}
	return out
}
