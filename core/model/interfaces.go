// Package model は推定器と変換器のインターフェース、および学習状態の管理を提供する。
package model

import "gonum.org/v1/gonum/mat"

// Estimator は教師あり学習モデル。交差検証はこのインターフェースに対して書かれる。
// Fit を再度呼ぶと以前の学習結果は置き換えられる。
type Estimator interface {
	Fit(X, y mat.Matrix) error
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Classifier は生のスコアと正解率を出せる分類器
type Classifier interface {
	Estimator
	// Score は X に対する予測と y の一致率
	Score(X, y mat.Matrix) (float64, error)
	// DecisionFunction はラベルに変換する前の出力ごとのスコア
	DecisionFunction(X mat.Matrix) (mat.Matrix, error)
	// NOutputs は Fit 時に決まった出力列数
	NOutputs() int
}

// Transformer は X だけから学習する前処理
type Transformer interface {
	Fit(X mat.Matrix) error
	Transform(X mat.Matrix) (mat.Matrix, error)
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}

// InverseTransformer は変換を元に戻せる Transformer
type InverseTransformer interface {
	Transformer
	InverseTransform(X mat.Matrix) (mat.Matrix, error)
}

// SKLearnCompatible はハイパーパラメータの取得・設定と複製を提供する。
// SetParams は成功すると学習結果を捨てる。Clone は未学習の複製を返す。
type SKLearnCompatible interface {
	GetParams(deep bool) map[string]interface{}
	SetParams(params map[string]interface{}) error
	Clone() SKLearnCompatible
}

// CloneEstimator returns an unfitted copy of est, or false when est cannot be
// cloned into another Estimator.
func CloneEstimator(est Estimator) (Estimator, bool) {
	c, ok := est.(SKLearnCompatible)
	if !ok {
		return nil, false
	}
	clone, ok := c.Clone().(Estimator)
	return clone, ok
}
