package simplex

import (
	"math"
	"strings"
)

// Sense is the optimization direction of the objective.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	switch s {
	case Minimize:
		return "min"
	case Maximize:
		return "max"
	}
	return "unknown"
}

// ParseSense accepts "min", "max", "minimize" and "maximize" in any case.
func ParseSense(token string) (Sense, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "min", "minimize":
		return Minimize, nil
	case "max", "maximize":
		return Maximize, nil
	}
	return 0, invalid("sense", -1, "unknown objective sense %q", token)
}

// Sign is the relation between the left- and right-hand side of a constraint.
type Sign int

const (
	LessEqual Sign = iota
	GreaterEqual
	Equal
)

func (s Sign) String() string {
	switch s {
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	case Equal:
		return "="
	}
	return "?"
}

func (s Sign) valid() bool {
	return s == LessEqual || s == GreaterEqual || s == Equal
}

// flip returns the sign obtained by multiplying both sides by -1.
func (s Sign) flip() Sign {
	switch s {
	case LessEqual:
		return GreaterEqual
	case GreaterEqual:
		return LessEqual
	}
	return s
}

// ParseSign accepts the tokens used by problem files: <=, >=, = (and ==, ≤, ≥).
func ParseSign(token string) (Sign, error) {
	switch strings.TrimSpace(token) {
	case "<=", "≤":
		return LessEqual, nil
	case ">=", "≥":
		return GreaterEqual, nil
	case "=", "==":
		return Equal, nil
	}
	return 0, invalid("sign", -1, "unknown relational sign %q", token)
}

// Constraint is one row of a raw problem: Coefficients · x Sign RHS.
type Constraint struct {
	Coefficients []float64
	Sign         Sign
	RHS          float64
}

// Problem is a linear program over non-negative decision variables.
type Problem struct {
	Sense     Sense
	Objective []float64

	Constraints []Constraint
}

// NumVars returns the number of decision variables.
func (p Problem) NumVars() int {
	return len(p.Objective)
}

// Validate checks the shape and the values of the problem.
func (p Problem) Validate() error {
	if p.Sense != Minimize && p.Sense != Maximize {
		return invalid("sense", -1, "unknown objective sense %d", int(p.Sense))
	}
	if len(p.Objective) == 0 {
		return invalid("objective", -1, "no decision variables")
	}
	for j, v := range p.Objective {
		if !finite(v) {
			return invalid("objective", j, "coefficient is %v", v)
		}
	}

	for i, con := range p.Constraints {
		if len(con.Coefficients) != len(p.Objective) {
			return invalid("constraint", i, "has %d coefficients, expected %d", len(con.Coefficients), len(p.Objective))
		}
		if !con.Sign.valid() {
			return invalid("constraint", i, "unknown relational sign %d", int(con.Sign))
		}
		for _, v := range con.Coefficients {
			if !finite(v) {
				return invalid("constraint", i, "coefficient is %v", v)
			}
		}
		if !finite(con.RHS) {
			return invalid("constraint", i, "right-hand side is %v", con.RHS)
		}
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
