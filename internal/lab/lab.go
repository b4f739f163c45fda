// Package lab runs the three parts of the regression walkthrough: SGD on
// synthetic data, hand-written gradient descent, and SGD on a real CSV.
package lab

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/gonum/mat"

	"github.com/0x0redd/linreg"
	"github.com/0x0redd/linreg/dataset"
	"github.com/0x0redd/linreg/internal/config"
	"github.com/0x0redd/linreg/preprocessing"
	"github.com/0x0redd/linreg/report"
)

// SGDOutcome is the result of one SGD run on the synthetic data.
type SGDOutcome struct {
	Name  string
	Model *linreg.SGDRegressor
	R2    float64
}

// Synthetic fits the SGD regressor once per configured run on a generated
// single-feature dataset and reports the R² of each.
func Synthetic(cfg config.Config, w io.Writer) ([]SGDOutcome, error) {
	data, err := dataset.MakeRegression(dataset.RegressionConfig{
		Samples:  cfg.Synthetic.Samples,
		Features: 1,
		Noise:    cfg.Synthetic.Noise,
		Seed:     cfg.Synthetic.Seed,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Int("samples", cfg.Synthetic.Samples).Float64("noise", cfg.Synthetic.Noise).Msg("generated synthetic dataset")

	outcomes := make([]SGDOutcome, 0, len(cfg.SGDRuns))
	for _, run := range cfg.SGDRuns {
		sgdCfg := linreg.NewDefaultSGDConfig()
		sgdCfg.MaxIter = run.MaxIter
		sgdCfg.Eta0 = run.Eta0
		sgdCfg.Seed = run.Seed

		model := linreg.NewSGDRegressor(sgdCfg)
		if err := model.Fit(data.X, data.Y); err != nil {
			return nil, fmt.Errorf("sgd run %s: %w", run.Name, err)
		}
		r2, err := model.Score(data.X, data.Y)
		if err != nil {
			return nil, fmt.Errorf("sgd run %s: %w", run.Name, err)
		}
		log.Info().Str("run", run.Name).Float64("r2", r2).Int("epochs", model.NIter).Msg("sgd run finished")

		fmt.Fprintf(w, "\n--- SGD on synthetic data: %s (max_iter=%d, eta0=%g) ---\n", run.Name, run.MaxIter, run.Eta0)
		report.KV(w, [][2]string{
			{"r2", fmtFloat(r2)},
			{"coef", fmtFloat(model.Weights[0])},
			{"intercept", fmtFloat(model.Intercept)},
			{"epochs", strconv.Itoa(model.NIter)},
			{"converged", strconv.FormatBool(model.Converged)},
		})
		losses := make([]float64, len(model.History))
		for i, h := range model.History {
			losses[i] = h.Loss
		}
		if err := report.Curve(w, "SGD loss per epoch: "+run.Name, losses); err != nil {
			return nil, err
		}

		outcomes = append(outcomes, SGDOutcome{Name: run.Name, Model: model, R2: r2})
	}
	return outcomes, nil
}

// Manual runs the hand-written batch gradient descent on a shifted synthetic
// dataset from a seeded random starting point.
func Manual(cfg config.Manual, w io.Writer) (*linreg.Result, error) {
	data, err := dataset.MakeRegression(dataset.RegressionConfig{
		Samples:  cfg.Samples,
		Features: 1,
		Noise:    cfg.Noise,
		Seed:     cfg.DataSeed,
	})
	if err != nil {
		return nil, err
	}
	data = data.Shift(cfg.Offset)

	X := linreg.DesignMatrix(data.X)
	rows, cols := X.Dims()
	log.Info().Int("rows", rows).Int("cols", cols).Msg("built design matrix")

	thetaInit := randomTheta(cols, cfg.ThetaSeed)
	res, err := linreg.Fit(X, data.Y, thetaInit, cfg.LearningRate, cfg.Iterations)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "\n--- Manual gradient descent (learning_rate=%g, iterations=%d) ---\n", cfg.LearningRate, cfg.Iterations)
	report.KV(w, [][2]string{
		{"theta_init", fmtVec(thetaInit)},
		{"theta_final", fmtVec(res.Theta)},
	})
	if err := report.Curve(w, "J(theta) per iteration", res.Costs()); err != nil {
		return nil, err
	}
	report.Params(w, res.Costs(), res.Thetas(), max(1, cfg.Iterations/10))

	pred, err := linreg.Predict(X, res.Theta)
	if err != nil {
		return nil, err
	}
	r2, err := linreg.R2(data.Y, pred)
	if err != nil {
		return nil, err
	}
	log.Info().Float64("r2", r2).Int("iterations", len(res.History)).Msg("manual gradient descent finished")
	return res, nil
}

// RealOutcome is the result of the CSV part.
type RealOutcome struct {
	Table  *dataset.Table
	Split  *dataset.Split
	Scaler *preprocessing.StandardScaler
	Model  *linreg.SGDRegressor
	R2     float64 // On the test partition
}

// Real writes the salary CSV, loads it back, scales the features on the
// training partition and scores the SGD regressor on the test partition.
func Real(cfg config.Real, w io.Writer) (*RealOutcome, error) {
	if err := dataset.WriteSalaryCSV(cfg.CSVPath); err != nil {
		return nil, err
	}
	table, err := dataset.LoadCSV(cfg.CSVPath)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", cfg.CSVPath).Int("rows", table.Rows()).Msg("loaded dataset")

	header := append(append([]string{}, table.Features...), table.Target)
	fmt.Fprintf(w, "\n--- Real data: %s ---\n", cfg.CSVPath)
	report.Rows(w, header, table.Head(5))

	split, err := dataset.TrainTestSplit(table.X, table.Y, cfg.TestSize, cfg.SplitSeed)
	if err != nil {
		return nil, err
	}

	scaler := preprocessing.NewStandardScaler()
	xTrain, err := scaler.FitTransform(split.XTrain)
	if err != nil {
		return nil, err
	}
	xTest, err := scaler.Transform(split.XTest)
	if err != nil {
		return nil, err
	}

	sgdCfg := linreg.NewDefaultSGDConfig()
	sgdCfg.MaxIter = cfg.MaxIter
	sgdCfg.Eta0 = cfg.Eta0
	sgdCfg.Seed = cfg.Seed
	model := linreg.NewSGDRegressor(sgdCfg)
	if err := model.Fit(xTrain, split.YTrain); err != nil {
		return nil, err
	}

	r2, err := model.Score(xTest, split.YTest)
	if err != nil {
		return nil, err
	}
	log.Info().Float64("r2", r2).Int("train", len(split.TrainIdx)).Int("test", len(split.TestIdx)).Msg("scored on test set")

	kv := [][2]string{
		{"train/test", fmt.Sprintf("%d/%d", len(split.TrainIdx), len(split.TestIdx))},
		{"r2_test", fmtFloat(r2)},
		{"intercept", fmtFloat(model.Intercept)},
	}
	for j, name := range table.Features {
		kv = append(kv, [2]string{"coef_" + name, fmtFloat(model.Weights[j])})
	}
	report.KV(w, kv)

	if err := testPredictions(w, table.Features[0], split.XTest, split.YTest, scaler, model); err != nil {
		return nil, err
	}

	return &RealOutcome{
		Table:  table,
		Split:  split,
		Scaler: scaler,
		Model:  model,
		R2:     r2,
	}, nil
}

// testPredictions prints the test set sorted on the first feature next to
// the model's predictions, once on the scaled axis the model was fitted on
// and once mapped back to original units.
func testPredictions(w io.Writer, label string, X *mat.Dense, y *mat.VecDense, scaler *preprocessing.StandardScaler, model *linreg.SGDRegressor) error {
	scaled, err := scaler.Transform(X)
	if err != nil {
		return err
	}
	original, err := scaler.InverseTransform(scaled)
	if err != nil {
		return err
	}
	pred, err := model.Predict(scaled)
	if err != nil {
		return err
	}

	rows, _ := scaled.Dims()
	order := make([]int, rows)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return scaled.At(order[a], 0) < scaled.At(order[b], 0)
	})

	xScaled := make([]float64, rows)
	xOriginal := make([]float64, rows)
	actual := make([]float64, rows)
	predicted := make([]float64, rows)
	for i, r := range order {
		xScaled[i] = scaled.At(r, 0)
		xOriginal[i] = original.At(r, 0)
		actual[i] = y.AtVec(r)
		predicted[i] = pred.AtVec(r)
	}

	fmt.Fprintf(w, "\nTest set, %s scaled\n", label)
	report.Predictions(w, label+"_scaled", xScaled, actual, predicted)
	fmt.Fprintf(w, "\nTest set, %s in original units\n", label)
	report.Predictions(w, label, xOriginal, actual, predicted)
	return nil
}

func randomTheta(n int, seed uint64) *mat.VecDense {
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(seed)}
	theta := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		theta.SetVec(i, normal.Rand())
	}
	return theta
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func fmtVec(v mat.Vector) string {
	return fmt.Sprintf("%.4f", mat.Col(nil, 0, v))
}
