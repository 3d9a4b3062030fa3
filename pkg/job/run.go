package job

import (
	"context"
	"errors"
	"fmt"
	"math/cmplx"
	"time"

	"github.com/google/uuid"

	"github.com/wildfunctions/libcalculus/pkg/calculus"
	"github.com/wildfunctions/libcalculus/pkg/store"
)

// Run executes every task of j under a fresh run ID and stores one result
// per task. Task failures are recorded in Result.Err; only store failures
// and cancellation stop the run.
func Run(ctx context.Context, j *Job, st store.Store) (string, error) {
	runID := uuid.NewString()
	settings := j.Settings.toCalculus()

	for _, t := range j.Tasks {
		if err := ctx.Err(); err != nil {
			return runID, err
		}
		r := runTask(t, &settings)
		r.RunID = runID
		r.Created = time.Now().UTC()
		if err := st.Put(r); err != nil {
			return runID, fmt.Errorf("storing task %q: %w", t.Name, err)
		}
	}
	return runID, nil
}

func runTask(t Task, s *calculus.Settings) store.Result {
	r := store.Result{Task: t.Name, Kind: t.Kind}

	f, err := t.Function.Build()
	if err != nil {
		r.Err = err.Error()
		return r
	}
	at, err := point(t.At)
	if err != nil {
		r.Err = err.Error()
		return r
	}

	var value complex128
	switch t.Kind {
	case KindLatex:
		r.Formula = f.LaTeX(t.Var)
		return r
	case KindEval:
		r.Formula = f.LaTeX(t.Var)
		value = f.Call(at)
	case KindIntegrate:
		contour, err := t.Contour.Build()
		if err != nil {
			r.Err = err.Error()
			return r
		}
		r.Formula = `\int_{` + contour.LaTeX("t") + `} ` + f.LaTeX(t.Var) + ` \, d` + t.Var
		value, err = calculus.Integrate(f, contour, *t.Start, *t.End, t.Tol, s)
		if err != nil {
			r.Err = err.Error()
			if !errors.Is(err, calculus.ErrNotConverged) {
				return r
			}
		}
	case KindDerivative:
		r.Formula = calculus.NthDerivative(f, t.Order, t.Tol, t.Radius, s).LaTeX(t.Var)
		value, err = calculus.DerivativeAt(f, t.Order, at, t.Tol, t.Radius, s)
		if err != nil {
			r.Err = err.Error()
		} else if cmplx.IsNaN(value) || cmplx.IsInf(value) {
			r.Err = "derivative is not finite"
		}
	default:
		r.Err = fmt.Sprintf("unknown kind %q", t.Kind)
		return r
	}

	r.Re, r.Im = real(value), imag(value)
	return r
}
