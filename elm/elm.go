// Package elm implements a single-hidden-layer Extreme Learning Machine classifier.
//
// The hidden layer is a random projection followed by a sigmoid; only the
// output weights are learned, in closed form, through the Moore-Penrose
// pseudo-inverse of the hidden activations. Labels 1..K are encoded as
// one-hot-bipolar target vectors; when the largest label is exactly 1 the
// labels are regressed directly and Predict returns their sign.
//
// Example:
//
//	m, err := elm.NewELM(20, elm.WithRandomState(42))
//	if err != nil { ... }
//	if err := m.Fit(X, y); err != nil { ... }
//	labels, err := m.Predict(Xtest)
package elm

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goelm/core/model"
	"github.com/YuminosukeSato/goelm/metrics"
	"github.com/YuminosukeSato/goelm/pkg/errors"
	"github.com/YuminosukeSato/goelm/pkg/log"
)

const modelName = "ELM"

// ELM は Extreme Learning Machine 分類器
type ELM struct {
	state *model.StateManager

	hidNum      int     // 隠れ層のニューロン数
	a           float64 // シグモイドの傾き
	randomState int64   // -1 ならエントロピーから初期化

	// Fit で置き換わる。mu で保護する。
	w      *mat.Dense // hidNum×(D+1)
	beta   *mat.Dense // hidNum×outNum
	outNum int

	mu     sync.RWMutex
	rng    *rand.Rand
	logger log.Logger
}

var (
	_ model.Classifier        = (*ELM)(nil)
	_ model.SKLearnCompatible = (*ELM)(nil)
)

// NewELM は hidNum 個の隠れニューロンを持つ新しい ELM を作成する
func NewELM(hidNum int, opts ...Option) (*ELM, error) {
	e := &ELM{
		state:       model.NewStateManager(modelName),
		hidNum:      hidNum,
		a:           1.0,
		randomState: -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := validateParams(e.hidNum, e.a); err != nil {
		return nil, err
	}
	if e.logger == nil {
		e.logger = log.GetLoggerWithName("elm")
	}
	e.logger = e.logger.With(log.ModelNameKey, modelName)
	e.initRNG()
	return e, nil
}

func validateParams(hidNum int, a float64) error {
	if hidNum <= 0 {
		return errors.NewValidationError("hid_num", "must be positive", hidNum)
	}
	if math.IsNaN(a) || math.IsInf(a, 0) || a <= 0 {
		return errors.NewValidationError("a", "must be a positive finite number", a)
	}
	return nil
}

// initRNG seeds the instance generator. Seeded instances draw from a fresh
// generator at every Fit instead.
func (e *ELM) initRNG() {
	if e.randomState < 0 {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		return
	}
	e.rng = nil
}

func (e *ELM) fitRNG() *rand.Rand {
	if e.randomState >= 0 {
		seed := uint64(e.randomState)
		return rand.New(rand.NewPCG(seed, seed))
	}
	return e.rng
}

// Fit はモデルを訓練データで学習させる。
// X は N×D、y は N×1 のラベル列。max(y) == 1 のとき y をそのまま目的変数とし、
// それ以外は 1..max(y) のラベルを one-hot-bipolar ベクトルに変換する。
// 多クラスでは 0 以下や非整数のラベルを全 -1 の行に落とさず、ヒント付きのエラーにする。
// {1,2} のように max(y) != 1 の 2 クラスは多クラス側 (out_num=2) で扱う。
// 失敗した場合、以前の学習結果は変更されない。
func (e *ELM) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "ELM.Fit")

	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("ELM.Fit", "empty data", errors.ErrEmptyData)
	}
	ry, cy := y.Dims()
	if ry != r {
		return errors.NewDimensionError("ELM.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("ELM.Fit", "y must be a column vector")
	}
	if err := requireFinite("ELM.Fit", "X", X); err != nil {
		return err
	}
	if err := requireFinite("ELM.Fit", "y", y); err != nil {
		return err
	}

	t, outNum, err := encodeTargets(y)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	logger := e.logger.With(log.OperationKey, log.OperationFit, log.PhaseKey, log.PhaseTraining)
	logger.Debug("Fit started",
		log.SamplesKey, r,
		log.FeaturesKey, c,
		log.TargetsKey, outNum,
		log.HiddenNeuronsKey, e.hidNum,
		log.SigmoidSlopeKey, e.a,
		log.RandomSeedKey, e.randomState,
	)

	// 隠れ層の重み W を [-1, 1) の一様分布から生成
	rng := e.fitRNG()
	w := mat.NewDense(e.hidNum, c+1, nil)
	for i := 0; i < e.hidNum; i++ {
		for j := 0; j <= c; j++ {
			w.Set(i, j, 2*rng.Float64()-1)
		}
	}

	h := hidden(w, X, e.a)

	hPinv, err := PseudoInverse(h) // N×hidNum
	if err != nil {
		logger.Error("pseudo inverse failed", err)
		return err
	}

	// beta = pinv(H)^T * T
	beta := mat.NewDense(e.hidNum, outNum, nil)
	beta.Mul(hPinv.T(), t)
	if err := errors.CheckFinite("output_weights", beta); err != nil {
		logger.Error("output weights are not finite", err)
		return err
	}

	e.w = w
	e.beta = beta
	e.outNum = outNum
	e.state.SetFitted(c, r)

	logger.Debug("Fit completed", log.TargetsKey, outNum)
	return nil
}

const labelHint = "use labels 1..K for K classes, or a maximum label of 1 (e.g. -1/+1) for binary mode"

// encodeTargets は y から目的変数行列と出力数を作る
func encodeTargets(y mat.Matrix) (*mat.Dense, int, error) {
	n, _ := y.Dims()
	maxLabel := math.Inf(-1)
	for i := 0; i < n; i++ {
		maxLabel = math.Max(maxLabel, y.At(i, 0))
	}

	// 二値 (単一出力) モード
	if maxLabel == 1 {
		t := mat.NewDense(n, 1, nil)
		for i := 0; i < n; i++ {
			t.Set(i, 0, y.At(i, 0))
		}
		return t, 1, nil
	}

	if maxLabel < 1 || maxLabel != math.Trunc(maxLabel) {
		return nil, 0, errors.WithHint(errors.NewValueError("ELM.Fit",
			fmt.Sprintf("labels must be integers starting at 1 when max(y) != 1 (max(y) = %g)", maxLabel)),
			labelHint)
	}

	outNum := int(maxLabel)
	t := mat.NewDense(n, outNum, nil)
	for i := 0; i < n; i++ {
		label := y.At(i, 0)
		if label < 1 || label != math.Trunc(label) {
			return nil, 0, errors.WithHint(errors.NewValueError("ELM.Fit",
				fmt.Sprintf("label %g at row %d is not an integer in [1, %d]", label, i, outNum)),
				labelHint)
		}
		t.SetRow(i, LabelToVector(outNum, int(label)))
	}
	return t, outNum, nil
}

func requireFinite(op, name string, m mat.Matrix) error {
	if i, j, ok := errors.FirstNonFinite(m); ok {
		return errors.NewValueError(op,
			fmt.Sprintf("%s contains a non-finite value (%g) at (%d, %d)", name, m.At(i, j), i, j))
	}
	return nil
}

// DecisionFunction は各出力のスコア H^T * beta (N×outNum) を返す
func (e *ELM) DecisionFunction(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "ELM.DecisionFunction")

	e.mu.RLock()
	defer e.mu.RUnlock()

	s, err := e.scores(X, "DecisionFunction")
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (e *ELM) scores(X mat.Matrix, method string) (*mat.Dense, error) {
	if err := e.state.CheckInput(method, X); err != nil {
		return nil, err
	}

	h := hidden(e.w, X, e.a)
	var s mat.Dense
	s.Mul(h.T(), e.beta)
	return &s, nil
}

// Predict は入力データのラベルを予測する (N×1)。
// 単一出力モードではスコアの符号 {-1, 0, +1}、
// 多クラスモードでは最大スコアの列番号 + 1 を返す。
func (e *ELM) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "ELM.Predict")

	e.mu.RLock()
	defer e.mu.RUnlock()

	s, err := e.scores(X, "Predict")
	if err != nil {
		return nil, err
	}

	r, _ := s.Dims()
	pred := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		if e.outNum == 1 {
			pred.Set(i, 0, sign(s.At(i, 0)))
			continue
		}
		pred.Set(i, 0, float64(argmax(s.RawRowView(i))+1))
	}

	if e.logger.Enabled(context.Background(), log.LevelDebug) {
		e.logger.Debug("Predict completed",
			log.OperationKey, log.OperationPredict,
			log.PredsKey, r,
		)
	}
	return pred, nil
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// argmax は最初に現れた最大値の位置を返す
func argmax(row []float64) int {
	best := 0
	for j := 1; j < len(row); j++ {
		if row[j] > row[best] {
			best = j
		}
	}
	return best
}

// Score は予測の正解率を返す
func (e *ELM) Score(X, y mat.Matrix) (float64, error) {
	pred, err := e.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyMatrix(y, pred)
}

// HiddenWeights は隠れ層の重み W のコピーを返す。未学習の場合は nil。
func (e *ELM) HiddenWeights() mat.Matrix {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.w == nil {
		return nil
	}
	return mat.DenseCopyOf(e.w)
}

// OutputWeights は出力層の重み beta のコピーを返す。未学習の場合は nil。
func (e *ELM) OutputWeights() mat.Matrix {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.beta == nil {
		return nil
	}
	return mat.DenseCopyOf(e.beta)
}

// NOutputs returns the number of output columns detected by the last Fit
// (1 in single-output mode), or 0 before fitting.
func (e *ELM) NOutputs() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.outNum
}

// NFeatures returns the feature count seen by the last Fit.
func (e *ELM) NFeatures() int {
	return e.state.NFeatures()
}

// IsFitted returns whether the model has been fitted.
func (e *ELM) IsFitted() bool {
	return e.state.IsFitted()
}

// GetParams returns the hyperparameters of the estimator.
func (e *ELM) GetParams(deep bool) map[string]interface{} {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return map[string]interface{}{
		"hid_num":      e.hidNum,
		"a":            e.a,
		"random_state": e.randomState,
	}
}

// SetParams updates the hyperparameters and resets the estimator to the
// unfitted state. Nothing changes if any value is invalid.
func (e *ELM) SetParams(params map[string]interface{}) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	hidNum, a, randomState := e.hidNum, e.a, e.randomState
	for key, value := range params {
		var ok bool
		switch key {
		case "hid_num":
			var v int64
			v, ok = toInt(value)
			hidNum = int(v)
		case "a":
			a, ok = toFloat(value)
		case "random_state":
			randomState, ok = toInt(value)
		default:
			return errors.NewValidationError(key, "unknown parameter", value)
		}
		if !ok {
			return errors.NewValidationError(key, "unsupported value type", value)
		}
	}
	if err := validateParams(hidNum, a); err != nil {
		return err
	}

	e.hidNum, e.a, e.randomState = hidNum, a, randomState
	e.initRNG()
	e.w, e.beta, e.outNum = nil, nil, 0
	e.state.Reset()
	return nil
}

func toInt(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Clone returns a new unfitted ELM with the same hyperparameters and logger.
// Clones of an unseeded ELM get their own generator.
func (e *ELM) Clone() model.SKLearnCompatible {
	e.mu.RLock()
	defer e.mu.RUnlock()

	c := &ELM{
		state:       model.NewStateManager(modelName),
		hidNum:      e.hidNum,
		a:           e.a,
		randomState: e.randomState,
		logger:      e.logger,
	}
	c.initRNG()
	return c
}

// String returns a short description of the estimator.
func (e *ELM) String() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return fmt.Sprintf("ELM(hid_num=%d, a=%g)", e.hidNum, e.a)
}
