package linreg

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// ErrNotFitted is returned when a regressor is used before Fit.
var ErrNotFitted = errors.New("linreg: regressor is not fitted")

// Schedule selects how the SGD step size evolves.
type Schedule int

const (
	// InvScaling uses eta = eta0 / t^powerT.
	InvScaling Schedule = iota
	// Constant keeps eta = eta0.
	Constant
)

func (s Schedule) String() string {
	switch s {
	case InvScaling:
		return "invscaling"
	case Constant:
		return "constant"
	}
	return fmt.Sprintf("schedule(%d)", int(s))
}

// IterationLog contains training metrics for a single epoch.
type IterationLog struct {
	Iteration int
	Timestamp time.Time
	Loss      float64 // Mean squared loss over the epoch, halved
	Eta       float64 // Step size at the end of the epoch
}

// SGDConfig holds training parameters for the SGD regressor.
type SGDConfig struct {
	MaxIter       int      // Maximum number of epochs
	Eta0          float64  // Initial learning rate
	PowerT        float64  // Exponent of the inverse scaling schedule
	Alpha         float64  // L2 regularization strength
	Tol           float64  // Minimum loss improvement; negative disables early stopping
	NIterNoChange int      // Epochs without improvement before stopping
	Shuffle       bool     // Shuffle samples every epoch
	Seed          uint64   // Seed for the shuffling order
	Schedule      Schedule // Step size schedule
	Verbose       bool     // Enable training logs
	LogStep       int      // Logging frequency in epochs
}

// NewDefaultSGDConfig returns recommended default parameters.
func NewDefaultSGDConfig() *SGDConfig {
	return &SGDConfig{
		MaxIter:       1000,
		Eta0:          0.01,
		PowerT:        0.25,
		Alpha:         1e-4,
		Tol:           1e-3,
		NIterNoChange: 5,
		Shuffle:       true,
		Seed:          0,
		Schedule:      InvScaling,
		Verbose:       false,
		LogStep:       10,
	}
}

// SGDRegressor is a linear model fitted by stochastic gradient descent on
// the squared error.
type SGDRegressor struct {
	Weights   []float64      // Regression coefficients
	Intercept float64        // Bias term
	NIter     int            // Epochs actually run
	Converged bool           // Stopped before MaxIter
	History   []IterationLog // Training history

	cfg    SGDConfig
	fitted bool
}

// NewSGDRegressor creates an unfitted regressor. A nil config means defaults.
func NewSGDRegressor(cfg *SGDConfig) *SGDRegressor {
	if cfg == nil {
		cfg = NewDefaultSGDConfig()
	}
	return &SGDRegressor{cfg: *cfg}
}

// Config returns the training parameters.
func (m *SGDRegressor) Config() SGDConfig {
	return m.cfg
}

// Fit trains the regressor on X (samples x features, no bias column) and y.
// Previous state is discarded.
func (m *SGDRegressor) Fit(X mat.Matrix, y mat.Vector) error {
	startTime := time.Now()
	nSamples, nFeatures := X.Dims()
	if y.Len() != nSamples {
		return fmt.Errorf("%w: X has %d rows, y has %d", ErrDimensionMismatch, nSamples, y.Len())
	}
	cfg := m.cfg

	weights := make([]float64, nFeatures)
	intercept := 0.0
	history := []IterationLog{}

	rng := rand.New(rand.NewSource(cfg.Seed))
	order := make([]int, nSamples)
	for i := range order {
		order[i] = i
	}

	if cfg.Verbose {
		log.Debug().
			Int("max_iter", cfg.MaxIter).
			Float64("eta0", cfg.Eta0).
			Str("schedule", cfg.Schedule.String()).
			Int("samples", nSamples).
			Int("features", nFeatures).
			Msg("starting SGD training")
	}

	bestLoss := math.Inf(1)
	noImproveCount := 0
	converged := false
	t := 1.0
	eta := cfg.Eta0
	epoch := 0

	for ; epoch < cfg.MaxIter; epoch++ {
		if cfg.Shuffle {
			rng.Shuffle(len(order), func(i, j int) {
				order[i], order[j] = order[j], order[i]
			})
		}

		sumLoss := 0.0
		for _, i := range order {
			eta = m.step(t)

			p := intercept
			for j := 0; j < nFeatures; j++ {
				p += X.At(i, j) * weights[j]
			}
			dloss := p - y.AtVec(i)
			sumLoss += 0.5 * dloss * dloss

			// L2 shrinkage first, then the loss gradient step
			decay := 1 - eta*cfg.Alpha
			for j := 0; j < nFeatures; j++ {
				weights[j] = weights[j]*decay - eta*dloss*X.At(i, j)
			}
			intercept -= eta * dloss
			t++
		}
		loss := sumLoss / float64(nSamples)

		history = append(history, IterationLog{
			Iteration: epoch,
			Timestamp: time.Now(),
			Loss:      loss,
			Eta:       eta,
		})

		if cfg.Verbose && cfg.LogStep > 0 && (epoch%cfg.LogStep == 0 || epoch == cfg.MaxIter-1) {
			log.Debug().
				Int("epoch", epoch).
				Float64("loss", loss).
				Float64("eta", eta).
				Floats64("weights", weights).
				Float64("intercept", intercept).
				Msg("sgd progress")
		}

		if cfg.Tol >= 0 {
			if loss > bestLoss-cfg.Tol {
				noImproveCount++
			} else {
				noImproveCount = 0
			}
			if loss < bestLoss {
				bestLoss = loss
			}
			if noImproveCount >= cfg.NIterNoChange {
				converged = true
				epoch++
				break
			}
		}
	}

	if !converged {
		log.Warn().
			Int("max_iter", cfg.MaxIter).
			Msg("maximum number of epochs reached before convergence, consider increasing max_iter")
	}

	m.Weights = weights
	m.Intercept = intercept
	m.NIter = epoch
	m.Converged = converged
	m.History = history
	m.fitted = true

	if cfg.Verbose {
		log.Debug().
			Dur("duration", time.Since(startTime)).
			Int("epochs", epoch).
			Bool("converged", converged).
			Floats64("weights", weights).
			Float64("intercept", intercept).
			Msg("training completed")
	}
	return nil
}

// Predict returns predictions for input samples.
func (m *SGDRegressor) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	nSamples, nFeatures := X.Dims()
	if nFeatures != len(m.Weights) {
		return nil, fmt.Errorf("%w: X has %d features, model has %d", ErrDimensionMismatch, nFeatures, len(m.Weights))
	}

	predictions := mat.NewVecDense(nSamples, nil)
	for i := 0; i < nSamples; i++ {
		sum := m.Intercept
		for j := 0; j < nFeatures; j++ {
			sum += X.At(i, j) * m.Weights[j]
		}
		predictions.SetVec(i, sum)
	}
	return predictions, nil
}

// Score returns the R² score for given data.
func (m *SGDRegressor) Score(X mat.Matrix, y mat.Vector) (float64, error) {
	pred, err := m.Predict(X)
	if err != nil {
		return 0, err
	}
	return R2(y, pred)
}

// MSE returns the mean squared error for given data.
func (m *SGDRegressor) MSE(X mat.Matrix, y mat.Vector) (float64, error) {
	pred, err := m.Predict(X)
	if err != nil {
		return 0, err
	}
	return MSE(y, pred)
}

// MAE returns the mean absolute error for given data.
func (m *SGDRegressor) MAE(X mat.Matrix, y mat.Vector) (float64, error) {
	pred, err := m.Predict(X)
	if err != nil {
		return 0, err
	}
	return MAE(y, pred)
}

// step returns the learning rate for update t (1-based).
func (m *SGDRegressor) step(t float64) float64 {
	if m.cfg.Schedule == Constant {
		return m.cfg.Eta0
	}
	return m.cfg.Eta0 / math.Pow(t, m.cfg.PowerT)
}
