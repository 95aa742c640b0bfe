package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	simplex "github.com/jjhbw/GoSimplex"
)

// report is what `lpsolve solve` prints. Unbounded range limits are nil, as
// neither JSON nor YAML can carry infinities.
type report struct {
	Status           string    `json:"status"`
	Phase1Iterations int       `json:"phase1Iterations"`
	Phase2Iterations int       `json:"phase2Iterations"`
	X                []float64 `json:"x,omitempty"`
	Objective        *float64  `json:"objective,omitempty"`
	CrossCheck       string    `json:"crossCheck,omitempty"`

	Sensitivity *sensitivityReport `json:"sensitivity,omitempty"`
}

// outcomes of --verify
const (
	crossCheckAgrees       = "agrees"
	crossCheckDisagrees    = "DISAGREES"
	crossCheckInconclusive = "inconclusive"
)

type sensitivityReport struct {
	ShadowPrices     []shadowPrice `json:"shadowPrices"`
	ReducedCosts     []float64     `json:"reducedCosts"`
	RHSRanges        []rangeReport `json:"rhsRanges"`
	ConstraintRanges []rangeReport `json:"constraintRanges"`
}

type shadowPrice struct {
	Constraint int     `json:"constraint"`
	Sign       string  `json:"sign"`
	Price      float64 `json:"price"`
}

type rangeReport struct {
	Constraint int      `json:"constraint"`
	Sign       string   `json:"sign"`
	Increase   *float64 `json:"increase"`
	Decrease   *float64 `json:"decrease"`
	Lower      *float64 `json:"lower,omitempty"`
	Upper      *float64 `json:"upper,omitempty"`
}

// finite returns nil for infinite values.
func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

func newReport(p simplex.Problem, res *simplex.Result) (*report, error) {
	rep := &report{
		Status:           string(res.Status),
		Phase1Iterations: res.Phase1Iterations,
		Phase2Iterations: res.Phase2Iterations,
	}
	if !res.IsOptimal() {
		return rep, nil
	}

	sol, err := res.Solution()
	if err != nil {
		return nil, err
	}
	rep.X = sol.X
	rep.Objective = &sol.Objective

	s, err := res.Sensitivity()
	if err != nil {
		return nil, err
	}
	sf := res.Standard
	sens := &sensitivityReport{
		ReducedCosts: s.ReducedCosts,
	}
	for k, price := range s.ShadowPrices {
		owner := sf.SlackOwner[k]
		sens.ShadowPrices = append(sens.ShadowPrices, shadowPrice{
			Constraint: owner + 1,
			Sign:       p.Constraints[owner].Sign.String(),
			Price:      price,
		})
	}
	for _, r := range s.RHSRanges {
		rr := rangeReport{
			Constraint: r.Constraint + 1,
			Increase:   finite(r.Increase),
			Decrease:   finite(r.Decrease),
		}
		if r.Constraint >= 0 {
			rr.Sign = p.Constraints[r.Constraint].Sign.String()
		}
		sens.RHSRanges = append(sens.RHSRanges, rr)
	}
	for _, r := range s.ConstraintRanges {
		sens.ConstraintRanges = append(sens.ConstraintRanges, rangeReport{
			Constraint: r.Constraint + 1,
			Sign:       r.Sign.String(),
			Increase:   finite(r.Increase),
			Decrease:   finite(r.Decrease),
			Lower:      finite(r.Lower()),
			Upper:      finite(r.Upper()),
		})
	}
	rep.Sensitivity = sens

	return rep, nil
}

func printReport(w io.Writer, p simplex.Problem, rep *report) error {
	ew := &errWriter{w: w}

	ew.printf("Problem:\n")
	verb := "minimize"
	if p.Sense == simplex.Maximize {
		verb = "maximize"
	}
	ew.printf("  %s Z = %s\n", verb, linear(p.Objective))
	for i, con := range p.Constraints {
		ew.printf("  %d. %s %s %v\n", i+1, linear(con.Coefficients), con.Sign, con.RHS)
	}

	ew.printf("\nStatus: %s (phase 1: %d pivots, phase 2: %d pivots)\n", rep.Status, rep.Phase1Iterations, rep.Phase2Iterations)
	switch simplex.Status(rep.Status) {
	case simplex.StatusInfeasible:
		ew.printf("The problem has no feasible solution.\n")
		return ew.err
	case simplex.StatusUnbounded:
		ew.printf("The objective is unbounded.\n")
		return ew.err
	case simplex.StatusIterationLimit:
		ew.printf("No convergence within the iteration limit.\n")
		return ew.err
	}

	ew.printf("\nOptimal solution:\n")
	for j, x := range rep.X {
		ew.printf("  x%d = %.2f\n", j+1, x)
	}
	ew.printf("  Z = %.2f\n", *rep.Objective)
	if rep.CrossCheck != "" {
		ew.printf("  cross-check: %s\n", rep.CrossCheck)
	}

	if n := len(p.Objective); n >= 2 && n <= 3 {
		ew.printf("\n%d decision variables: the feasible region can be plotted around the optimum above.\n", n)
	} else {
		ew.printf("\nNo plot for %d decision variables.\n", n)
	}

	s := rep.Sensitivity
	ew.printf("\nSensitivity analysis\n")
	ew.printf("Shadow prices:\n")
	for _, sp := range s.ShadowPrices {
		ew.printf("  constraint %d (%s): %.2f\n", sp.Constraint, sp.Sign, sp.Price)
	}

	ew.printf("\nRight-hand-side ranges of basic slack variables:\n")
	for _, r := range s.RHSRanges {
		ew.printf("  constraint %d (%s):\n", r.Constraint, r.Sign)
		ew.printf("    - may increase %s\n", limit(r.Increase))
		ew.printf("    - may decrease %s\n", limit(r.Decrease))
	}

	ew.printf("\nRight-hand-side intervals keeping the basis:\n")
	for _, r := range s.ConstraintRanges {
		ew.printf("  constraint %d (%s): [%s, %s]\n", r.Constraint, r.Sign, bound(r.Lower, "-inf"), bound(r.Upper, "+inf"))
	}

	ew.printf("\nReduced costs of nonbasic variables:\n")
	for j, c := range s.ReducedCosts {
		if math.Abs(c) > 1e-6 {
			ew.printf("  x%d: %.2f\n", j+1, c)
		}
	}

	return ew.err
}

func linear(coefs []float64) string {
	terms := make([]string, len(coefs))
	for j, c := range coefs {
		terms[j] = fmt.Sprintf("%vx%d", c, j+1)
	}
	return strings.Join(terms, " + ")
}

func limit(v *float64) string {
	if v == nil {
		return "without limit"
	}
	return fmt.Sprintf("by up to %.2f", *v)
}

func bound(v *float64, inf string) string {
	if v == nil {
		return inf
	}
	return fmt.Sprintf("%.2f", *v)
}

// errWriter keeps the first write error and drops everything after it.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
