package log

// レコード共通のキー。階層は "." で区切る。
const (
	ModelNameKey = "model.name"   // "ELM", "StandardScaler"
	ComponentKey = "ml.component" // パッケージ名 (elm, model_selection, benchmark)
	OperationKey = "ml.operation" // Operation* の値
	PhaseKey     = "ml.phase"     // Phase* の値
	ErrorCodeKey = "error.code"   // errors.Code
)

// データの形
const (
	DatasetKey  = "data.name"
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"
	// 出力列数。二値モードでは1、多クラスではクラス数。
	TargetsKey = "data.targets"
	PredsKey   = "preds.count"
)

// 評価と性能
const (
	AccuracyKey    = "metrics.accuracy"
	AccuracyStdKey = "metrics.accuracy_std"
	DurationMsKey  = "perf.duration_ms"
	FoldKey        = "cv.fold"
	RepeatKey      = "cv.repeat"
)

// ELM のハイパーパラメータ
const (
	HiddenNeuronsKey = "hyperparams.hid_num"
	SigmoidSlopeKey  = "hyperparams.a"
	// -1 はエントロピーから初期化したことを示す
	RandomSeedKey = "config.random_seed"
)

const (
	OperationFit           = "fit"
	OperationPredict       = "predict"
	OperationCrossValidate = "cross_validate"
	OperationBenchmark     = "benchmark"

	PhaseTraining   = "training"
	PhaseValidation = "validation"
)
