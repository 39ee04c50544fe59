// Package metrics provides classification metrics for evaluating estimators.
package metrics

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goelm/pkg/errors"
)

// Accuracy は正解率（予測が一致したサンプルの割合）を計算する
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	if yTrue == nil || yPred == nil || yTrue.Len() == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}
	n := yTrue.Len()
	if yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, yPred.Len(), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// AccuracyMatrix は行列形式の入力の先頭列について正解率を計算する
func AccuracyMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := columns("AccuracyMatrix", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return Accuracy(mat.NewVecDense(len(t), t), mat.NewVecDense(len(p), p))
}

// ConfusionMatrix は混同行列を計算する。
// 行が正解ラベル、列が予測ラベルで、順序は labels に従う。
// labels が nil の場合は yTrue と yPred に現れるラベルの昇順を使う。
// labels に含まれないラベルを持つサンプルは数えない。
func ConfusionMatrix(yTrue, yPred mat.Matrix, labels []float64) (*mat.Dense, error) {
	t, p, err := columns("ConfusionMatrix", yTrue, yPred)
	if err != nil {
		return nil, err
	}
	if labels == nil {
		labels = uniqueLabels(t, p)
	}
	if len(labels) == 0 {
		return nil, errors.NewValueError("ConfusionMatrix", "labels must not be empty")
	}

	index := make(map[float64]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}

	cm := mat.NewDense(len(labels), len(labels), nil)
	for i := range t {
		ti, okT := index[t[i]]
		pi, okP := index[p[i]]
		if okT && okP {
			cm.Set(ti, pi, cm.At(ti, pi)+1)
		}
	}
	return cm, nil
}

// PrecisionRecallF1 はサポート数で重み付けした適合率・再現率・F1 を計算する。
// 予測が一つもないクラスの適合率は定義されないため 0 とし、
// UndefinedMetricWarning を発生させる。
func PrecisionRecallF1(yTrue, yPred mat.Matrix) (precision, recall, f1 float64, err error) {
	t, p, err := columns("PrecisionRecallF1", yTrue, yPred)
	if err != nil {
		return 0, 0, 0, err
	}
	labels := uniqueLabels(t, p)
	cm, err := ConfusionMatrix(yTrue, yPred, labels)
	if err != nil {
		return 0, 0, 0, err
	}

	k := len(labels)
	var totalSupport float64
	undefined := false
	for j := 0; j < k; j++ {
		tp := cm.At(j, j)
		var support, predicted float64
		for i := 0; i < k; i++ {
			support += cm.At(j, i)
			predicted += cm.At(i, j)
		}
		if support == 0 {
			continue
		}

		var pj float64
		if predicted > 0 {
			pj = tp / predicted
		} else {
			undefined = true
		}
		rj := tp / support
		var fj float64
		if pj+rj > 0 {
			fj = 2 * pj * rj / (pj + rj)
		}

		precision += pj * support
		recall += rj * support
		f1 += fj * support
		totalSupport += support
	}

	precision /= totalSupport
	recall /= totalSupport
	f1 /= totalSupport

	if undefined {
		errors.Warn(errors.NewUndefinedMetricWarning("precision", "some labels have no predicted samples", 0))
	}
	return precision, recall, f1, nil
}

// columns は2つの行列の先頭列を取り出す
func columns(op string, yTrue, yPred mat.Matrix) ([]float64, []float64, error) {
	if yTrue == nil || yPred == nil {
		return nil, nil, errors.NewValueError(op, "empty matrix")
	}
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()
	if rTrue == 0 || cTrue == 0 || cPred == 0 {
		return nil, nil, errors.NewValueError(op, "empty matrix")
	}
	if rTrue != rPred {
		return nil, nil, errors.NewDimensionError(op, rTrue, rPred, 0)
	}

	t := make([]float64, rTrue)
	p := make([]float64, rTrue)
	for i := 0; i < rTrue; i++ {
		t[i] = yTrue.At(i, 0)
		p[i] = yPred.At(i, 0)
	}
	return t, p, nil
}

func uniqueLabels(ys ...[]float64) []float64 {
	seen := make(map[float64]struct{})
	var labels []float64
	for _, y := range ys {
		for _, v := range y {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				labels = append(labels, v)
			}
		}
	}
	sort.Float64s(labels)
	return labels
}
