// Package job reads YAML job files describing functions and the analyses to
// run on them, and executes them against a result store.
package job

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wildfunctions/libcalculus/pkg/calculus"
)

// Task kinds.
const (
	KindLatex      = "latex"
	KindEval       = "eval"
	KindIntegrate  = "integrate"
	KindDerivative = "derivative"
)

// Defaults applied to tasks that leave the field unset.
const (
	DefaultTol    = 1e-4
	DefaultRadius = 0.5
	DefaultVar    = "z"
)

// Job is the top level of a job file.
type Job struct {
	Name string `yaml:"name"`

	// Settings override calculus.DefaultSettings for every task.
	Settings Settings `yaml:"settings,omitempty"`

	Tasks []Task `yaml:"tasks"`
}

// Settings mirrors calculus.Settings. Zero fields keep the default.
type Settings struct {
	SubdivFactor    float64 `yaml:"subdiv_factor,omitempty"`
	MaxRounds       int     `yaml:"max_rounds,omitempty"`
	MaxSubdivisions int     `yaml:"max_subdivisions,omitempty"`
	Workers         int     `yaml:"workers,omitempty"`
}

// Task is one analysis of one function.
type Task struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Function Expr   `yaml:"function"`

	// Var names the variable when rendering LaTeX.
	Var string `yaml:"var,omitempty"`

	// At is the evaluation point [re, im] for eval and derivative tasks.
	At []float64 `yaml:"at,omitempty"`

	// Contour and the parameter range [Start, End] for integrate tasks.
	// Leaving both out selects the contour's natural range.
	Contour *Contour `yaml:"contour,omitempty"`
	Start   *float64 `yaml:"start,omitempty"`
	End     *float64 `yaml:"end,omitempty"`

	Tol float64 `yaml:"tol,omitempty"`

	// Radius of the Cauchy circle and the derivative order.
	Radius float64 `yaml:"radius,omitempty"`
	Order  int     `yaml:"order,omitempty"`
}

// Contour describes an integration path.
type Contour struct {
	// Kind is "circle" or "segment".
	Kind   string    `yaml:"kind"`
	Center []float64 `yaml:"center,omitempty"`
	Radius float64   `yaml:"radius,omitempty"`
	A      []float64 `yaml:"a,omitempty"`
	B      []float64 `yaml:"b,omitempty"`
}

// Load reads and parses a job file.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses job content from bytes.
// The path argument is used only for error messages.
func Parse(data []byte, path string) (*Job, error) {
	var j Job
	if err := yaml.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := j.validate(path); err != nil {
		return nil, err
	}
	j.setDefaults()
	return &j, nil
}

// validate checks the job for semantic errors.
func (j *Job) validate(path string) error {
	if len(j.Tasks) == 0 {
		return fmt.Errorf("%s: no tasks defined", path)
	}
	if j.Settings.SubdivFactor < 0 || j.Settings.MaxRounds < 0 || j.Settings.MaxSubdivisions < 0 || j.Settings.Workers < 0 {
		return fmt.Errorf("%s: settings must not be negative", path)
	}

	seen := make(map[string]bool)
	for i, t := range j.Tasks {
		if t.Name == "" {
			return fmt.Errorf("%s: tasks[%d]: name is required", path, i)
		}
		if seen[t.Name] {
			return fmt.Errorf("%s: tasks[%d]: duplicate task name %q", path, i, t.Name)
		}
		seen[t.Name] = true

		if err := t.validate(); err != nil {
			return fmt.Errorf("%s: task %q: %w", path, t.Name, err)
		}
	}
	return nil
}

func (t *Task) validate() error {
	switch t.Kind {
	case KindLatex, KindEval, KindDerivative:
		if t.Contour != nil {
			return fmt.Errorf("contour is only valid for %s tasks", KindIntegrate)
		}
	case KindIntegrate:
		if t.Contour == nil {
			return fmt.Errorf("contour is required")
		}
		if err := t.Contour.validate(); err != nil {
			return fmt.Errorf("contour: %w", err)
		}
		if (t.Start == nil) != (t.End == nil) {
			return fmt.Errorf("start and end must be given together")
		}
		if t.Start != nil && (!isFinite(*t.Start) || !isFinite(*t.End)) {
			return fmt.Errorf("start and end must be finite")
		}
	default:
		return fmt.Errorf("unknown kind %q (expected %s, %s, %s or %s)", t.Kind, KindLatex, KindEval, KindIntegrate, KindDerivative)
	}

	if _, err := t.Function.Build(); err != nil {
		return fmt.Errorf("function: %w", err)
	}
	if _, err := point(t.At); err != nil {
		return fmt.Errorf("at: %w", err)
	}
	if t.Tol < 0 || math.IsNaN(t.Tol) {
		return fmt.Errorf("tol must be positive")
	}
	if t.Radius < 0 || math.IsNaN(t.Radius) {
		return fmt.Errorf("radius must be positive")
	}
	if t.Order < 0 {
		return fmt.Errorf("order must not be negative")
	}
	return nil
}

func (c *Contour) validate() error {
	switch c.Kind {
	case "circle":
		if c.Radius < 0 || math.IsNaN(c.Radius) {
			return fmt.Errorf("radius must be positive")
		}
		_, err := point(c.Center)
		return err
	case "segment":
		if _, err := point(c.A); err != nil {
			return fmt.Errorf("a: %w", err)
		}
		if _, err := point(c.B); err != nil {
			return fmt.Errorf("b: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown kind %q (expected circle or segment)", c.Kind)
	}
}

func (j *Job) setDefaults() {
	for i := range j.Tasks {
		t := &j.Tasks[i]
		if t.Var == "" {
			t.Var = DefaultVar
		}
		if t.Tol == 0 {
			t.Tol = DefaultTol
		}
		if t.Radius == 0 {
			t.Radius = DefaultRadius
		}
		if t.Order == 0 {
			t.Order = 1
		}
		if t.Contour == nil {
			continue
		}
		if t.Contour.Kind == "circle" && t.Contour.Radius == 0 {
			t.Contour.Radius = 1
		}
		if t.Start == nil {
			start, end := t.Contour.parameterRange()
			t.Start, t.End = &start, &end
		}
	}
}

// parameterRange is the default parameter interval of the contour.
func (c *Contour) parameterRange() (float64, float64) {
	switch c.Kind {
	case "circle":
		return 0, 2 * math.Pi
	default:
		return 0, 1
	}
}

// toCalculus returns the integration settings for the job.
func (s Settings) toCalculus() calculus.Settings {
	cs := calculus.DefaultSettings()
	if s.SubdivFactor > 0 {
		cs.SubdivFactor = s.SubdivFactor
	}
	if s.MaxRounds > 0 {
		cs.MaxRounds = s.MaxRounds
	}
	if s.MaxSubdivisions > 0 {
		cs.MaxSubdivisions = s.MaxSubdivisions
	}
	if s.Workers > 0 {
		cs.Workers = s.Workers
	}
	return cs
}

// point converts [re, im], [re] or nothing into a complex number.
func point(p []float64) (complex128, error) {
	switch len(p) {
	case 0:
		return 0, nil
	case 1:
		return complex(p[0], 0), nil
	case 2:
		return complex(p[0], p[1]), nil
	}
	return 0, fmt.Errorf("expected [re, im], got %d numbers", len(p))
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
