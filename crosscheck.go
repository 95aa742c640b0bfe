package simplex

import (
	"context"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// CrossCheck solves the standard form a second time with gonum's
// implementation of the simplex method, leaving the artificial columns out.
// It returns the optimal minimization-form objective and the values of the
// original variables.
//
// If basis names one non-artificial column per constraint row, as the basis
// of an optimal tableau does, gonum starts from that vertex. Otherwise it
// searches for a starting vertex itself.
//
// gonum fails on some problems that do have an optimum. It can return a
// wrong infeasible or unbounded verdict, and it can loop forever. So every
// error from gonum, and a ctx that ends first, is reported as
// ErrInconclusive. The lookup keeps running in the background after ctx
// ends; it only reads private copies of the problem data.
func CrossCheck(ctx context.Context, sf *StandardForm, basis []int) (z float64, x []float64, err error) {
	return crossCheck(ctx, sf, basis, DefaultOptimalityTol)
}

type crossCheckOutcome struct {
	z   float64
	x   []float64
	err error
}

func crossCheck(ctx context.Context, sf *StandardForm, basis []int, tol float64) (float64, []float64, error) {
	if err := sf.check(); err != nil {
		return 0, nil, err
	}
	if err := ctx.Err(); err != nil {
		return 0, nil, errors.Wrap(ErrInconclusive, err.Error())
	}

	keep := sf.NumVars + sf.NumSlack
	c := append([]float64(nil), sf.C[:keep]...)

	// no constraints: every variable sits at its lower bound unless its cost is negative
	if sf.A == nil {
		for _, v := range c {
			if v < 0 {
				return 0, nil, ErrUnbounded
			}
		}
		return 0, make([]float64, sf.NumVars), nil
	}

	m := sf.NumConstraints()
	if m > keep {
		return 0, nil, errors.Wrapf(ErrInconclusive, "gonum needs at least %d columns, have %d", m, keep)
	}
	A := mat.DenseCopyOf(sf.A.Slice(0, m, 0, keep))
	b := append([]float64(nil), sf.B...)
	initial := startingBasis(basis, m, keep)

	done := make(chan crossCheckOutcome, 1)
	go func() {
		var out crossCheckOutcome
		defer func() {
			if r := recover(); r != nil {
				out = crossCheckOutcome{err: errors.Errorf("%v", r)}
			}
			done <- out
		}()
		out.z, out.x, out.err = lp.Simplex(c, A, b, tol, initial)
	}()

	select {
	case <-ctx.Done():
		return 0, nil, errors.Wrap(ErrInconclusive, ctx.Err().Error())
	case out := <-done:
		if out.err != nil {
			return 0, nil, errors.Wrapf(ErrInconclusive, "gonum: %v", out.err)
		}
		x := out.x
		if len(x) > sf.NumVars {
			x = x[:sf.NumVars]
		}
		return out.z, x, nil
	}
}

// startingBasis returns a copy of basis if gonum can start from it: one
// column per row, none of them artificial. Otherwise nil.
func startingBasis(basis []int, rows, cols int) []int {
	if len(basis) != rows {
		return nil
	}
	for _, col := range basis {
		if col < 0 || col >= cols {
			return nil
		}
	}
	return append([]int(nil), basis...)
}
