// Package store persists the results of job runs.
package store

import "time"

// Result is the outcome of one task in a run. Re and Im hold the value for
// eval, integrate and derivative tasks; latex tasks only set Formula.
type Result struct {
	RunID   string    `json:"run_id"`
	Task    string    `json:"task"`
	Kind    string    `json:"kind"`
	Formula string    `json:"formula"`
	Re      float64   `json:"re"`
	Im      float64   `json:"im"`
	Err     string    `json:"error,omitempty"`
	Created time.Time `json:"created"`
}

// Value returns the result as a complex number.
func (r Result) Value() complex128 {
	return complex(r.Re, r.Im)
}

// Store is the interface for result persistence.
type Store interface {
	// Put appends a result.
	Put(r Result) error
	// Results returns the results of a run in insertion order.
	Results(runID string) ([]Result, error)
	// Close releases resources.
	Close() error
}
