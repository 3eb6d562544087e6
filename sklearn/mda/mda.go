package mda

import (
	"context"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/mda/core/model"
	"github.com/YuminosukeSato/mda/metrics"
	"github.com/YuminosukeSato/mda/pkg/errors"
	"github.com/YuminosukeSato/mda/pkg/log"
)

const (
	modelType = "MDA"
	version   = "1.0.0"
)

var (
	_ model.Transformer       = (*MDA)(nil)
	_ model.SKLearnCompatible = (*MDA)(nil)
	_ model.WeightExporter    = (*MDA)(nil)
)

// MDA は周辺化デノイジングオートエンコーダ（marginalized Denoising Autoencoder）
// 入力は特徴量×文書の行列で、重みは (出力次元)×(特徴量数+1) の行列
type MDA struct {
	state *model.StateManager

	// ハイパーパラメータ
	noise   []float64 // 特徴量ごとの破損確率 [0, 1)
	lambda  float64   // リッジ正則化の強さ（バイアスには適用しない）
	highDim bool      // 縮約表現を回帰ターゲットにするモード
	rcond   float64   // 最小二乗の特異値カットオフ（0なら eps·(D+1)）

	observer Observer
	logger   log.Logger

	// 学習済みパラメータ。未学習の間は nil
	weights *mat.Dense
	rank    int
}

// Option configures an MDA.
type Option func(*MDA)

// WithInitialWeights starts the model in the trained state with a copy of w,
// an output_dim×(D+1) matrix.
func WithInitialWeights(w mat.Matrix) Option {
	return func(m *MDA) {
		if w == nil {
			return
		}
		m.weights = mat.DenseCopyOf(w)
	}
}

// WithHighDimensional selects high-dimensional mode, where Fit regresses onto
// a caller-supplied reduced representation and Transform is linear.
func WithHighDimensional(highDim bool) Option {
	return func(m *MDA) {
		m.highDim = highDim
	}
}

// WithObserver sets the receiver of training checkpoints.
func WithObserver(o Observer) Option {
	return func(m *MDA) {
		m.observer = o
	}
}

// WithLogger sets the logger used for training summaries and, unless
// WithObserver is also given, for checkpoints.
func WithLogger(l log.Logger) Option {
	return func(m *MDA) {
		m.logger = l
	}
}

// WithRcond sets the relative singular value cutoff of the least-squares
// solve. Zero selects machine epsilon times the system size.
func WithRcond(rcond float64) Option {
	return func(m *MDA) {
		m.rcond = rcond
	}
}

// NewMDA は新しいMDAを作成する
// noise は特徴量ごとの破損確率（長さは入力の特徴量数）、lambda はリッジ係数
func NewMDA(noise []float64, lambda float64, opts ...Option) *MDA {
	m := &MDA{
		state:  model.NewStateManager(),
		noise:  append([]float64(nil), noise...),
		lambda: lambda,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = log.GetLoggerWithName("mda")
	}
	if m.observer == nil {
		m.observer = NewLogObserver(m.logger)
	}
	if m.weights != nil {
		r, c := m.weights.Dims()
		m.state.SetFitted(c-1, r)
	}
	return m
}

// UniformNoise returns a corruption vector of length d filled with p.
func UniformNoise(d int, p float64) []float64 {
	noise := make([]float64, d)
	for i := range noise {
		noise[i] = p
	}
	return noise
}

// Fit learns the weights from X (features×documents). It fails in
// high-dimensional mode, which needs FitReduced.
func (m *MDA) Fit(X mat.Matrix) error {
	_, err := m.Train(X, false, nil)
	return err
}

// FitReduced learns the weights from X with reduced as the regression target
// in high-dimensional mode. reduced is ignored otherwise.
func (m *MDA) FitReduced(X, reduced mat.Matrix) error {
	_, err := m.Train(X, false, reduced)
	return err
}

// FitTransform learns the weights and returns the hidden representation of X.
func (m *MDA) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	return m.Train(X, true, nil)
}

// FitTransformReduced is FitTransform for high-dimensional mode.
func (m *MDA) FitTransformReduced(X, reduced mat.Matrix) (mat.Matrix, error) {
	return m.Train(X, true, reduced)
}

// Train は重みを学習し、returnHidden が真なら学習データの隠れ表現も返す
// 隠れ表現は学習で使ったバイアス付き入力をそのまま再利用して計算する
// 前回の学習結果は、学習が成功した時点で丸ごと置き換えられる
func (m *MDA) Train(X mat.Matrix, returnHidden bool, reduced mat.Matrix) (hidden mat.Matrix, err error) {
	defer errors.Recover(&err, "MDA.Train")

	if err := m.validate(X, reduced); err != nil {
		return nil, err
	}
	if !m.highDim {
		reduced = nil
	}

	d, n := X.Dims()
	start := time.Now()
	op := log.OperationFit
	if returnHidden {
		op = log.OperationFitTransform
	}
	logger := m.logger.With(
		log.ModelNameKey, modelType,
		log.OperationKey, op,
		log.PhaseKey, log.PhaseTraining,
	)
	fields := []any{
		log.FeaturesKey, d,
		log.SamplesKey, n,
		log.NoiseMeanKey, stat.Mean(m.noise, nil),
		log.RegularizationKey, m.lambda,
		log.HighDimKey, m.highDim,
	}
	if s, ok := X.(interface{ NNZ() int }); ok {
		fields = append(fields, log.NonZeroKey, s.NNZ())
	}
	if reduced != nil {
		rd, _ := reduced.Dims()
		fields = append(fields, log.ReducedDimKey, rd)
	}
	logger.Debug("Fitting mDA", fields...)
	m.observer.Observe(TrainingStarted)

	xb := appendBias(X)
	m.observer.Observe(BiasAppended)

	s := scatter(xb)
	m.observer.Observe(ScatterComputed)

	c := survival(m.noise)
	q := expectedScatter(s, c)
	m.observer.Observe(CorruptionApplied)

	p := regressionTarget(s, xb, reduced, c)
	m.observer.Observe(TargetConstructed)

	q.Add(q, ridge(d+1, m.lambda))
	rcond := m.rcond
	if rcond <= 0 {
		rcond = defaultRcond(d + 1)
	}
	m.observer.Observe(SolvingWeights)

	wT, rank, err := solveLeastSquares(q, p.T(), rcond)
	if err != nil {
		return nil, errors.Wrap(err, "MDA.Train")
	}
	if rank < d+1 {
		errors.Warn(errors.NewRankWarning("MDA.Train", rank, d+1))
	}

	w := mat.DenseCopyOf(wT.T())
	outDim, _ := w.Dims()
	if err := errors.CheckMatrix("MDA.Train", w); err != nil {
		return nil, err
	}

	m.weights = w
	m.rank = rank
	m.state.SetFitted(d, outDim)
	m.observer.Observe(TrainingFinished)

	logger.Debug("mDA fitted",
		log.RankKey, rank,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	if !returnHidden {
		return nil, nil
	}
	return project(w, xb, m.highDim), nil
}

// validate checks every precondition before any numeric work starts.
func (m *MDA) validate(X, reduced mat.Matrix) error {
	if X == nil {
		return errors.NewValidationError("X", "input matrix is required", nil)
	}
	d, n := X.Dims()
	if d == 0 || n == 0 {
		return errors.Wrap(errors.ErrEmptyData, "MDA.Train")
	}

	if !finiteNonNegative(m.lambda) {
		return errors.NewValidationError("lambda", "must be a finite non-negative number", m.lambda)
	}
	if len(m.noise) != d {
		return errors.NewDimensionError("MDA.Train", len(m.noise), d, 0)
	}
	for i, p := range m.noise {
		if math.IsNaN(p) || p < 0 || p >= 1 {
			return errors.NewValidationError("noise",
				fmt.Sprintf("corruption probability of feature %d must be in [0, 1)", i), p)
		}
	}

	if !m.highDim {
		return nil
	}
	if reduced == nil {
		return errors.NewValidationError("reduced_representations",
			"required in high-dimensional mode", nil)
	}
	rr, rc := reduced.Dims()
	if rr == 0 {
		return errors.NewValidationError("reduced_representations",
			"must have at least one row", rr)
	}
	if rc != n {
		return errors.NewDimensionError("MDA.Train", n, rc, 1)
	}
	return nil
}

// Transform は学習済みの重みで X の隠れ表現を計算する
// 特徴量数が学習時と異なる場合、行列積の形状エラーが PanicError として返る
func (m *MDA) Transform(X mat.Matrix) (hidden mat.Matrix, err error) {
	defer errors.Recover(&err, "MDA.Transform")

	if err := m.state.RequireFitted(modelType, "Transform"); err != nil {
		return nil, err
	}
	if X == nil {
		return nil, errors.NewValidationError("X", "input matrix is required", nil)
	}
	if m.logger.Enabled(context.Background(), log.LevelDebug) {
		d, n := X.Dims()
		m.logger.Debug("Transforming with mDA",
			log.ModelNameKey, modelType,
			log.OperationKey, log.OperationTransform,
			log.PhaseKey, log.PhaseInference,
			log.FeaturesKey, d,
			log.SamplesKey, n,
		)
	}
	return project(m.weights, appendBias(X), m.highDim), nil
}

// ReconstructionError returns the mean squared error between X and its
// linear reconstruction W·[X; 1]. It is undefined in high-dimensional mode.
func (m *MDA) ReconstructionError(X mat.Matrix) (mse float64, err error) {
	defer errors.Recover(&err, "MDA.ReconstructionError")

	if err := m.state.RequireFitted(modelType, "ReconstructionError"); err != nil {
		return 0, err
	}
	if X == nil {
		return 0, errors.NewValidationError("X", "input matrix is required", nil)
	}
	if m.highDim {
		return 0, errors.NewValueError("MDA.ReconstructionError",
			"reconstruction error is undefined in high-dimensional mode")
	}
	mse, err = metrics.MSEMatrix(X, project(m.weights, appendBias(X), true))
	if err != nil {
		return 0, err
	}
	m.logger.Debug("Reconstruction error computed",
		log.ModelNameKey, modelType,
		log.PhaseKey, log.PhaseInference,
		log.LossKey, mse,
	)
	return mse, nil
}

// Weights returns a copy of the learned weight matrix, or nil if untrained.
func (m *MDA) Weights() *mat.Dense {
	if m.weights == nil {
		return nil
	}
	return mat.DenseCopyOf(m.weights)
}

// Rank returns the numerical rank of the regularized scatter system seen by
// the last Fit. It is zero for preset or imported weights.
func (m *MDA) Rank() int {
	return m.rank
}

// OutputDim returns the number of hidden units, or zero if untrained.
func (m *MDA) OutputDim() int {
	_, out := m.state.Dims()
	return out
}

// IsFitted reports whether the model holds weights.
func (m *MDA) IsFitted() bool {
	return m.state.IsFitted()
}

// HighDimensional reports whether the model runs in high-dimensional mode.
func (m *MDA) HighDimensional() bool {
	return m.highDim
}
