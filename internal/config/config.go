package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// DefaultPath is where the lab looks for its config when none is given.
const DefaultPath = "infra/config/linreg.json"

// Synthetic describes the generated dataset of the first part.
type Synthetic struct {
	Samples int     `json:"samples"`
	Noise   float64 `json:"noise"`
	Seed    uint64  `json:"seed"`
}

// SGDRun is one named set of hyperparameters for the SGD regressor.
type SGDRun struct {
	Name    string  `json:"name"`
	MaxIter int     `json:"max_iter"`
	Eta0    float64 `json:"eta0"`
	Seed    uint64  `json:"seed"`
}

// Manual configures the hand-written gradient descent part.
type Manual struct {
	Samples      int     `json:"samples"`
	Noise        float64 `json:"noise"`
	DataSeed     uint64  `json:"data_seed"`
	Offset       float64 `json:"offset"`
	ThetaSeed    uint64  `json:"theta_seed"`
	LearningRate float64 `json:"learning_rate"`
	Iterations   int     `json:"iterations"`
}

// Real configures the CSV part.
type Real struct {
	CSVPath   string  `json:"csv_path"`
	TestSize  float64 `json:"test_size"`
	SplitSeed uint64  `json:"split_seed"`
	MaxIter   int     `json:"max_iter"`
	Eta0      float64 `json:"eta0"`
	Seed      uint64  `json:"seed"`
}

// Config is the full lab configuration.
type Config struct {
	Synthetic Synthetic `json:"synthetic"`
	SGDRuns   []SGDRun  `json:"sgd_runs"`
	Manual    Manual    `json:"manual"`
	Real      Real      `json:"real"`
}

// Default returns the values the lab was written with.
func Default() Config {
	return Config{
		Synthetic: Synthetic{Samples: 100, Noise: 10, Seed: 0},
		SGDRuns: []SGDRun{
			{Name: "bad", MaxIter: 100, Eta0: 0.0001, Seed: 0},
			{Name: "good", MaxIter: 10000, Eta0: 0.0001, Seed: 0},
		},
		Manual: Manual{
			Samples:      100,
			Noise:        10,
			DataSeed:     4,
			Offset:       100,
			ThetaSeed:    0,
			LearningRate: 0.3,
			Iterations:   10,
		},
		Real: Real{
			CSVPath:   "Salary_Data.csv",
			TestSize:  0.2,
			SplitSeed: 42,
			MaxIter:   10000,
			Eta0:      0.001,
			Seed:      42,
		},
	}
}

// Load reads the JSON config at path on top of the defaults.
// Fields missing from the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not load config %s: %w", path, err)
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("could not unmarshal config %s: %w", path, err)
	}

	log.Info().Str("path", path).Int("sgd_runs", len(cfg.SGDRuns)).Msg("loaded config")
	return cfg, nil
}
