package simplex

import (
	"context"
	"math"

	"github.com/pkg/errors"
)

// Status is the terminal outcome of a solve.
type Status string

const (
	StatusOptimal        Status = "optimal"
	StatusInfeasible     Status = "infeasible"
	StatusUnbounded      Status = "unbounded"
	StatusIterationLimit Status = "iteration limit"
)

// states of the two-phase method
type state int

const (
	needsPhase1 state = iota
	phase1Running
	phase1Infeasible
	phase1Done
	phase2Running
	optimal
	unbounded
	iterationLimit
)

func (s state) terminal() bool {
	switch s {
	case phase1Infeasible, optimal, unbounded, iterationLimit:
		return true
	}
	return false
}

// Result is the outcome of a solve. Tableau holds the final tableau for every
// terminal state except StatusIterationLimit, where it is nil.
type Result struct {
	Status Status

	Phase1Iterations int
	Phase2Iterations int

	Standard *StandardForm
	Tableau  *Tableau

	eps float64
}

// Err maps the status to one of the package's sentinel errors, nil when optimal.
func (r *Result) Err() error {
	switch r.Status {
	case StatusOptimal:
		return nil
	case StatusInfeasible:
		return ErrInfeasible
	case StatusUnbounded:
		return ErrUnbounded
	case StatusIterationLimit:
		return ErrIterationLimit
	}
	return errors.Errorf("simplex: unknown status %q", r.Status)
}

// IsOptimal reports whether the solve ended in an optimal tableau.
func (r *Result) IsOptimal() bool {
	return r.Status == StatusOptimal
}

// Solution reads the decision values from the optimal tableau and reports the
// objective in the sense of the original problem.
func (r *Result) Solution() (Solution, error) {
	if !r.IsOptimal() {
		return Solution{}, errors.Wrapf(ErrNotOptimal, "status is %s", r.Status)
	}

	sol := Interpret(r.Tableau, r.Standard.NumVars)
	if r.Standard.Sense == Maximize {
		sol.Objective = clean(-sol.Objective)
	}
	return sol, nil
}

// Sensitivity runs the post-optimal analysis on the optimal tableau. Ranges
// are attributed to the constraints of the original problem.
func (r *Result) Sensitivity() (Sensitivity, error) {
	if !r.IsOptimal() {
		return Sensitivity{}, errors.Wrapf(ErrNotOptimal, "status is %s", r.Status)
	}

	sf := r.Standard
	s := analyze(r.Tableau, sf.NumVars, sf.NumSlack, sf.SlackOwner)
	s.ConstraintRanges = constraintRanges(r.Tableau, sf, r.eps)
	return sf.post.postSolve(s), nil
}

// Verify solves the problem a second time with gonum's simplex implementation,
// starting from the optimal basis, and compares the optimal objective values.
// A different objective is reported as ErrMismatch. A cross-check that fails
// or outlives ctx is reported as ErrInconclusive.
func (r *Result) Verify(ctx context.Context, tol float64) error {
	if !r.IsOptimal() {
		return errors.Wrapf(ErrNotOptimal, "status is %s", r.Status)
	}

	sol := Interpret(r.Tableau, r.Standard.NumVars)
	z, _, err := crossCheck(ctx, r.Standard, r.Tableau.Basis(), r.eps)
	if err != nil {
		return errors.Wrap(err, "cross-check")
	}
	if !within(z, sol.Objective, tol*math.Max(1, math.Abs(z))) {
		return errors.Wrapf(ErrMismatch, "objective %v, tableau objective %v", z, sol.Objective)
	}
	return nil
}

// Solve converts p to standard form and runs the two-phase method on it.
//
// A malformed problem yields a *ValidationError and a nil result. Infeasible
// and unbounded problems are not errors: they are reported through the
// result's Status. Exhausting the iteration cap returns the result together
// with an error wrapping ErrIterationLimit.
func Solve(p Problem, opts ...Option) (*Result, error) {
	sf, err := Standardize(p)
	if err != nil {
		return nil, err
	}
	return SolveStandard(sf, opts...)
}

// SolveStandard runs the two-phase method on a problem already in standard form.
func SolveStandard(sf *StandardForm, opts ...Option) (*Result, error) {
	if err := sf.check(); err != nil {
		return nil, err
	}

	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &solver{
		sf:  sf,
		cfg: cfg,
	}
	if err := s.run(); err != nil {
		return nil, err
	}

	res := &Result{
		Phase1Iterations: s.iterations[Phase1],
		Phase2Iterations: s.iterations[Phase2],
		Standard:         sf,
		Tableau:          s.tableau,
		eps:              cfg.optimalityTol,
	}

	var err error
	switch s.state {
	case optimal:
		res.Status = StatusOptimal
	case unbounded:
		res.Status = StatusUnbounded
	case phase1Infeasible:
		res.Status = StatusInfeasible
	case iterationLimit:
		res.Status = StatusIterationLimit
		res.Tableau = nil
		err = errors.Wrapf(ErrIterationLimit, "%s stopped after %d iterations", s.phase, s.iterations[s.phase])
	}

	if ro, ok := cfg.observer.(ResultObserver); ok {
		ro.ObserveResult(res)
	}
	return res, err
}

type solver struct {
	sf  *StandardForm
	cfg settings

	state   state
	phase   Phase
	tableau *Tableau

	// pivots performed, indexed by phase
	iterations [3]int
}

// run steps the state machine until it reaches a terminal state.
func (s *solver) run() error {
	for !s.state.terminal() {
		var err error
		switch s.state {
		case needsPhase1:
			err = s.start()
		case phase1Running, phase2Running:
			err = s.step()
		case phase1Done:
			err = s.startPhase2()
		default:
			err = errors.Errorf("simplex: unexpected solver state %d", s.state)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// start builds the initial tableau. Without artificial columns the slack basis
// is already feasible and phase 1 is skipped.
func (s *solver) start() error {
	sf := s.sf

	if len(sf.ArtificialCols) == 0 {
		t, err := NewTableau(sf.A, sf.B, sf.C)
		if err != nil {
			return err
		}
		t.priceOut()
		s.enter(Phase2, phase2Running, t)
		return nil
	}

	// the auxiliary objective is the sum of the artificial variables
	aux := make([]float64, sf.NumCols())
	for _, col := range sf.ArtificialCols {
		aux[col] = 1
	}
	t, err := NewTableau(sf.A, sf.B, aux)
	if err != nil {
		return err
	}
	t.priceOut()
	s.enter(Phase1, phase1Running, t)
	return nil
}

func (s *solver) enter(p Phase, st state, t *Tableau) {
	s.phase = p
	s.state = st
	s.tableau = t
	s.cfg.observer.ObserveIteration(Iteration{
		Phase:    p,
		Number:   0,
		Entering: -1,
		Leaving:  -1,
		Tableau:  t,
	})
}

// step performs a single iteration of the running phase.
func (s *solver) step() error {
	t := s.tableau
	eps := s.cfg.optimalityTol

	col, ok := t.EnteringColumn(eps)
	if !ok {
		s.finishPhase()
		return nil
	}

	row, ok := t.LeavingRow(col, eps)
	if !ok {
		if s.phase == Phase1 {
			// the auxiliary objective is bounded below by zero
			return errors.Errorf("simplex: phase 1 column %d has no leaving row", col)
		}
		s.state = unbounded
		return nil
	}

	if s.iterations[s.phase] >= s.cfg.maxIterations {
		s.state = iterationLimit
		return nil
	}

	if err := t.Pivot(row, col); err != nil {
		return errors.Wrapf(err, "%s iteration %d", s.phase, s.iterations[s.phase]+1)
	}
	s.iterations[s.phase]++

	s.cfg.observer.ObserveIteration(Iteration{
		Phase:    s.phase,
		Number:   s.iterations[s.phase],
		Entering: col,
		Leaving:  row,
		Tableau:  t,
	})
	return nil
}

func (s *solver) finishPhase() {
	if s.phase == Phase2 {
		s.state = optimal
		return
	}
	if math.Abs(s.tableau.Value()) > s.cfg.feasibilityTol {
		s.state = phase1Infeasible
		return
	}
	s.state = phase1Done
}

// startPhase2 removes the artificial variables from a feasible phase 1
// tableau and re-derives the objective row for the original costs.
func (s *solver) startPhase2() error {
	sf := s.sf
	t := s.tableau
	keep := sf.NumVars + sf.NumSlack

	// artificial variables still basic sit at zero level; swap in any
	// non-artificial column with a usable entry in their row. Rows without
	// one are redundant and stay without a basic column.
	for i := 0; i < t.Rows(); i++ {
		if t.BasicColumn(i) < keep {
			continue
		}
		for j := 0; j < keep; j++ {
			if math.Abs(t.At(i, j)) > s.cfg.optimalityTol {
				if err := t.Pivot(i, j); err != nil {
					return errors.Wrap(err, "driving out artificial variable")
				}
				break
			}
		}
	}

	t = t.truncate(keep)
	t.setObjective(sf.C[:keep])
	s.enter(Phase2, phase2Running, t)
	return nil
}
