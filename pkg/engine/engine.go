package engine

import (
	"fmt"
	"math/cmplx"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"gonum.org/v1/gonum/cmplxs/cscalar"

	"github.com/wildfunctions/libcalculus/pkg/pool"
)

// absTolerance is the absolute slack allowed next to Config.Tolerance.
const absTolerance = 1e-8

// maxRegenerations bounds how many times a function is redrawn after
// being found to have no finite sample points.
const maxRegenerations = 100

// Engine generates random functions and checks them against their
// reference evaluators.
type Engine struct {
	cfg  Config
	pool pool.Pool
}

// New creates a new engine from the given config.
func New(cfg Config) (*Engine, error) {
	p, err := pool.Get(cfg.Pool)
	if err != nil {
		return nil, err
	}
	if cfg.Functions <= 0 || cfg.Values <= 0 {
		return nil, fmt.Errorf("functions and values must be positive (got %d, %d)", cfg.Functions, cfg.Values)
	}
	if cfg.MaxOps <= 0 {
		return nil, fmt.Errorf("maxops must be positive (got %d)", cfg.MaxOps)
	}
	if !(cfg.Bound > 0) || !(cfg.Tolerance > 0) {
		return nil, fmt.Errorf("bound and tolerance must be positive (got %g, %g)", cfg.Bound, cfg.Tolerance)
	}
	if cfg.MaxErrors <= 0 {
		cfg.MaxErrors = 1
	}
	if cfg.Seed == 0 {
		cfg.Seed = rand.Int63()
	}
	return &Engine{cfg: cfg, pool: p}, nil
}

// Config returns the effective configuration, including the chosen seed.
func (e *Engine) Config() Config {
	return e.cfg
}

// Run checks every function and returns the final report.
func (e *Engine) Run() FinalReport {
	start := time.Now()
	fmt.Fprintf(os.Stderr, "Checking %d functions from pool %s, %d values each, up to %d ops, workers %d, seed %d\n",
		e.cfg.Functions, e.cfg.Pool, e.cfg.Values, e.cfg.MaxOps, e.cfg.Workers, e.cfg.Seed)

	results := e.checkAll()

	report := FinalReport{
		Config:    e.cfg,
		Timestamp: start.UTC(),
	}
	for _, r := range results {
		switch {
		case r.Skipped:
			report.Skipped++
		case r.Failed:
			report.Failed++
			report.Failures = append(report.Failures, r)
		default:
			report.Passed++
		}
		report.Samples += r.Checked
	}
	if e.cfg.Verbose {
		report.Results = results
	}
	report.Elapsed = time.Since(start).Round(time.Millisecond).String()

	fmt.Fprintf(os.Stderr, "Done in %s: %d passed, %d failed, %d skipped\n",
		report.Elapsed, report.Passed, report.Failed, report.Skipped)

	if e.cfg.OutDir != "" && report.Failed > 0 {
		e.writeLatexOutputs(report)
	}
	return report
}

// checkAll checks all functions in parallel. Results arrive in completion
// order and are stored by index so the report does not depend on
// scheduling.
func (e *Engine) checkAll() []FunctionResult {
	n := e.cfg.Functions
	results := make([]FunctionResult, n)

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	jobs := make(chan int, n)
	done := make(chan FunctionResult, workers)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				done <- e.checkFunction(idx)
			}
		}()
	}

	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	go func() {
		wg.Wait()
		close(done)
	}()

	step := n / 10
	if step == 0 {
		step = 1
	}
	count := 0
	for r := range done {
		results[r.Index] = r
		count++
		if r.Failed {
			fmt.Fprintf(os.Stderr, "[%d] FAILED %d/%d values | %s\n", r.Index, len(r.Mismatches), r.Checked, r.Formula)
		} else if e.cfg.Verbose {
			fmt.Fprintf(os.Stderr, "[%d] ok %d values, %d ops | %s\n", r.Index, r.Checked, r.Ops, r.Formula)
		}
		if count%step == 0 {
			fmt.Fprintf(os.Stderr, "[%d/%d] checked\n", count, n)
		}
	}
	return results
}

// checkFunction draws the idx-th function from a generator seeded by idx,
// redrawing it when it has no usable sample points.
func (e *Engine) checkFunction(idx int) FunctionResult {
	rng := rand.New(rand.NewSource(e.cfg.Seed + int64(idx)))

	var r FunctionResult
	for regen := 0; regen <= maxRegenerations; regen++ {
		pair := e.pool.RandomFunction(rng, rng.Intn(e.cfg.MaxOps))
		var degenerate bool
		r, degenerate = e.checkPair(rng, pair)
		r.Index = idx
		r.Regenerated = regen
		if !degenerate {
			return r
		}
	}
	r.Skipped = true
	return r
}

// checkPair evaluates pair at Values random points. A point whose value is
// not finite on either side is redrawn; more than MaxTries redraws marks
// the function as degenerate (for example 1 / (z - z)).
func (e *Engine) checkPair(rng *rand.Rand, pair pool.Pair) (FunctionResult, bool) {
	r := FunctionResult{
		Ops:     pair.Ops,
		Formula: pair.F.String(),
	}

	tries := 0
	for v := 0; v < e.cfg.Values; v++ {
		for {
			z := pool.RandomPoint(rng, e.cfg.Bound)
			got, want := pair.F.Call(z), pair.Ref(z)
			if finite(got) && finite(want) {
				r.Checked++
				if !cscalar.EqualWithinAbsOrRel(got, want, absTolerance, e.cfg.Tolerance) {
					r.Mismatches = append(r.Mismatches, Mismatch{At: point(z), Got: point(got), Want: point(want)})
				}
				break
			}
			tries++
			if tries > e.cfg.MaxTries {
				r.Tries = tries
				return r, true
			}
		}
		if len(r.Mismatches) >= e.cfg.MaxErrors {
			r.Failed = true
			break
		}
	}
	r.Tries = tries
	return r, false
}

func finite(z complex128) bool {
	return !cmplx.IsNaN(z) && !cmplx.IsInf(z)
}

// writeLatexOutputs writes the failure report to OutDir, compiling it to
// PDF when pdflatex is available.
func (e *Engine) writeLatexOutputs(report FinalReport) {
	base := fmt.Sprintf("check_%s_%d", e.cfg.Pool, e.cfg.Seed)
	tmpDir := os.TempDir()
	tmpTex := filepath.Join(tmpDir, base+".tex")

	f, err := os.Create(tmpTex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating %s: %v\n", tmpTex, err)
		return
	}
	WriteLatexReport(f, report)
	f.Close()

	if pdflatex, err := exec.LookPath("pdflatex"); err == nil {
		cmd := exec.Command(pdflatex, "-interaction=nonstopmode", base+".tex")
		cmd.Dir = tmpDir
		if out, err := cmd.CombinedOutput(); err != nil {
			fmt.Fprintf(os.Stderr, "pdflatex failed: %v\n%s\n", err, out)
		}
	}

	absOut, _ := filepath.Abs(e.cfg.OutDir)
	for _, ext := range []string{".tex", ".pdf"} {
		src := filepath.Join(tmpDir, base+ext)
		if _, err := os.Stat(src); err == nil {
			dst := filepath.Join(absOut, base+ext)
			if err := copyFile(src, dst); err != nil {
				fmt.Fprintf(os.Stderr, "error writing %s: %v\n", dst, err)
			} else {
				fmt.Fprintf(os.Stderr, "Wrote %s\n", dst)
			}
		}
	}
	for _, ext := range []string{".tex", ".aux", ".log", ".pdf"} {
		os.Remove(filepath.Join(tmpDir, base+ext))
	}
}

// copyFile copies src to dst, creating or overwriting dst.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
