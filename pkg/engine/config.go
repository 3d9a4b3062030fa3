package engine

import (
	"runtime"
)

// Config holds all parameters for a checking run.
type Config struct {
	Pool      string  `json:"pool"`
	Functions int     `json:"functions"`
	Values    int     `json:"values"`
	MaxOps    int     `json:"max_ops"`
	Bound     float64 `json:"bound"`
	MaxTries  int     `json:"max_tries"`
	MaxErrors int     `json:"max_errors"`
	Tolerance float64 `json:"tolerance"`
	Seed      int64   `json:"seed"`
	Format    string  `json:"format"` // "auto", "text", "json" or "latex"
	Verbose   bool    `json:"verbose"`
	Workers   int     `json:"workers"`
	OutDir    string  `json:"-"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Pool:      "full",
		Functions: 5000,
		Values:    20,
		MaxOps:    10,
		Bound:     20,
		MaxTries:  20,
		MaxErrors: 3,
		Tolerance: 1e-5,
		Seed:      0, // 0 = random
		Format:    "auto",
		Verbose:   false,
		Workers:   runtime.NumCPU(),
	}
}
