package simplex

// Model builds a Problem from named variables and expressions, as an
// alternative to writing coefficient rows by hand.
type Model struct {
	Sense       Sense
	Variables   []*Variable
	Constraints []ModelConstraint
}

// Variable is a decision variable of a Model. Coefficient is its objective cost.
type Variable struct {
	Name        string
	Coefficient float64
}

// Expression is one term coef * variable on the left-hand side of a constraint.
type Expression struct {
	coef     float64
	variable *Variable
}

// Term returns the expression coef * v.
func Term(coef float64, v *Variable) Expression {
	return Expression{coef: coef, variable: v}
}

// ModelConstraint is sum(expressions) sign rhs.
type ModelConstraint struct {
	expressions []Expression
	sign        Sign
	rhs         float64
}

func NewModel(sense Sense) *Model {
	return &Model{Sense: sense}
}

// AddVariable declares a variable with objective cost coef. Its column in
// the Problem follows declaration order.
func (m *Model) AddVariable(name string, coef float64) *Variable {
	v := &Variable{Name: name, Coefficient: coef}
	m.Variables = append(m.Variables, v)
	return v
}

// AddConstraint adds sum(exprs) sign rhs. Terms on the same variable are summed.
func (m *Model) AddConstraint(exprs []Expression, sign Sign, rhs float64) error {
	idx := len(m.Constraints)
	if len(exprs) == 0 {
		return invalid("constraint", idx, "has no terms")
	}
	if !sign.valid() {
		return invalid("constraint", idx, "unknown relational sign %d", int(sign))
	}

	for j, e := range exprs {
		if m.index(e.variable) < 0 {
			return invalid("constraint", idx, "term %d uses a variable not declared on the model", j)
		}
	}

	m.Constraints = append(m.Constraints, ModelConstraint{
		expressions: exprs,
		sign:        sign,
		rhs:         rhs,
	})
	return nil
}

// index is the column of v, or -1 if v was not declared on m.
func (m *Model) index(v *Variable) int {
	for i, w := range m.Variables {
		if w == v {
			return i
		}
	}
	return -1
}

// Problem converts the model into its coefficient form and validates it.
func (m *Model) Problem() (Problem, error) {
	p := Problem{
		Sense:       m.Sense,
		Objective:   make([]float64, len(m.Variables)),
		Constraints: make([]Constraint, len(m.Constraints)),
	}
	for j, v := range m.Variables {
		p.Objective[j] = v.Coefficient
	}

	for i, con := range m.Constraints {
		row := make([]float64, len(m.Variables))
		for _, e := range con.expressions {
			row[m.index(e.variable)] += e.coef
		}
		p.Constraints[i] = Constraint{
			Coefficients: row,
			Sign:         con.sign,
			RHS:          con.rhs,
		}
	}

	if err := p.Validate(); err != nil {
		return Problem{}, err
	}
	return p, nil
}

// Solve converts the model and solves it.
func (m *Model) Solve(opts ...Option) (*Result, error) {
	p, err := m.Problem()
	if err != nil {
		return nil, err
	}
	return Solve(p, opts...)
}

// Values maps a solution back onto the model's variables by name.
func (m *Model) Values(sol Solution) map[string]float64 {
	out := make(map[string]float64, len(m.Variables))
	for j, v := range m.Variables {
		if j < len(sol.X) {
			out[v.Name] = sol.X[j]
		}
	}
	return out
}
