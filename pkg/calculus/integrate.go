// Package calculus integrates and differentiates expr functions numerically.
package calculus

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/wildfunctions/libcalculus/pkg/expr"
)

// ErrNotConverged is returned when successive approximations never settle
// within tolerance before the round or subdivision limit.
var ErrNotConverged = errors.New("calculus: integral did not converge")

// minChunk is the smallest per-worker share of a round worth a goroutine.
const minChunk = 4096

// Integrate approximates the path integral of f along contour for the
// parameter running from start to end.
//
// Each round sums f(z_k)·(z_k - z_{k-1}) over n equal parameter steps,
// doubling n between rounds, until two consecutive rounds differ by less
// than tol. The first check happens after the second round. Agreement
// between rounds is not an error bound: an integrand whose structure
// aliases with the sample grid can settle on a wrong value.
//
// On failure the latest approximation is returned together with an error
// wrapping ErrNotConverged.
func Integrate[T expr.Scalar](f expr.Function[T, T], contour expr.Function[float64, T], start, end, tol float64, s *Settings) (T, error) {
	var result T
	if !(tol > 0) {
		return result, fmt.Errorf("calculus: tolerance must be positive, got %g", tol)
	}
	cfg := s.orDefault()
	eval, path := f.Eval(), contour.Eval()

	initial := math.Ceil(cfg.SubdivFactor / tol)
	if 2*initial > float64(cfg.MaxSubdivisions) {
		return result, fmt.Errorf("%w: tolerance %g needs %g subdivisions, limit is %d",
			ErrNotConverged, tol, 2*initial, cfg.MaxSubdivisions)
	}

	n := int(initial)
	var prev T
	var change float64
	for round := 0; round < cfg.MaxRounds; round++ {
		n *= 2
		if n > cfg.MaxSubdivisions {
			return result, fmt.Errorf("%w: %d subdivisions exceed limit %d (last change %g)",
				ErrNotConverged, n, cfg.MaxSubdivisions, change)
		}
		prev, result = result, roundSum(eval, path, start, end, n, cfg.Workers)
		if round == 0 {
			continue
		}
		change = expr.Magnitude(result - prev)
		if change < tol {
			return result, nil
		}
	}
	return result, fmt.Errorf("%w after %d rounds (last change %g)", ErrNotConverged, cfg.MaxRounds, change)
}

// roundSum computes one Riemann sum over n steps, split into contiguous
// chunks when workers allow. Chunks are added in order.
func roundSum[T expr.Scalar](f func(T) T, path func(float64) T, start, end float64, n, workers int) T {
	if workers < 2 || n < 2*minChunk {
		return riemann(f, path, start, end, 1, n, n)
	}
	if maxWorkers := n / minChunk; workers > maxWorkers {
		workers = maxWorkers
	}

	parts := make([]T, workers)
	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		lo := w*chunk + 1
		hi := min(lo+chunk-1, n)
		if lo > hi {
			break
		}
		g.Go(func() error {
			parts[w] = riemann(f, path, start, end, lo, hi, n)
			return nil
		})
	}
	// Chunks cannot fail; non-finite sums surface through the round comparison.
	_ = g.Wait()

	var sum T
	for _, p := range parts {
		sum += p
	}
	return sum
}

// riemann sums steps lo..hi of an n-step right-endpoint walk.
func riemann[T expr.Scalar](f func(T) T, path func(float64) T, start, end float64, lo, hi, n int) T {
	span := end - start
	at := func(k int) T { return path(start + span*float64(k)/float64(n)) }

	var sum T
	prevZ := at(lo - 1)
	for k := lo; k <= hi; k++ {
		z := at(k)
		sum += f(z) * (z - prevZ)
		prevZ = z
	}
	return sum
}
