package simplex

import "math"

// RHSRange is the allowable movement of the right-hand side belonging to a
// basic slack or surplus column.
type RHSRange struct {
	// Row is the tableau row the slack column is basic in.
	Row    int
	Column int

	// Constraint owning the slack column, -1 when unknown.
	Constraint int

	Increase float64
	Decrease float64
}

// ConstraintRange is the interval a constraint's right-hand side may move in
// while the optimal basis stays primal feasible.
type ConstraintRange struct {
	Constraint int
	Sign       Sign
	RHS        float64

	Increase float64
	Decrease float64
}

// Lower returns the smallest right-hand side keeping the basis.
func (r ConstraintRange) Lower() float64 { return r.RHS - r.Decrease }

// Upper returns the largest right-hand side keeping the basis.
func (r ConstraintRange) Upper() float64 { return r.RHS + r.Increase }

// Sensitivity is the post-optimal report of an optimal tableau.
type Sensitivity struct {
	// objective row values at the slack and surplus columns, in column order
	ShadowPrices []float64

	// objective row values at the original columns; zero for basic variables
	ReducedCosts []float64

	RHSRanges []RHSRange

	// only filled by Result.Sensitivity
	ConstraintRanges []ConstraintRange
}

// Analyze computes shadow prices, reduced costs and RHS ranges from an optimal
// tableau whose first numVars columns are the original variables, followed by
// numSlack slack or surplus columns.
func Analyze(t *Tableau, numVars, numSlack int) Sensitivity {
	return analyze(t, numVars, numSlack, nil)
}

func analyze(t *Tableau, numVars, numSlack int, owners []int) Sensitivity {
	if numVars > t.Cols() {
		numVars = t.Cols()
	}
	if numVars+numSlack > t.Cols() {
		numSlack = t.Cols() - numVars
	}

	obj := t.ObjectiveRow()
	s := Sensitivity{
		ShadowPrices: make([]float64, numSlack),
		ReducedCosts: make([]float64, numVars),
	}
	for k := range s.ShadowPrices {
		s.ShadowPrices[k] = clean(obj[numVars+k])
	}
	for j := range s.ReducedCosts {
		s.ReducedCosts[j] = clean(obj[j])
	}

	basicRow := make(map[int]int, t.Rows())
	for i, col := range t.basis {
		if col >= 0 {
			basicRow[col] = i
		}
	}

	for k := 0; k < numSlack; k++ {
		col := numVars + k
		row, ok := basicRow[col]
		if !ok {
			continue
		}

		r := RHSRange{
			Row:        row,
			Column:     col,
			Constraint: -1,
			Increase:   math.Inf(1),
			Decrease:   math.Inf(1),
		}
		if k < len(owners) {
			r.Constraint = owners[k]
		}

		maxNeg := math.Inf(-1)
		for i := 0; i < t.Rows(); i++ {
			v := t.At(i, col)
			if v == 0 {
				continue
			}
			ratio := t.RHS(i) / v
			switch {
			case ratio > 0 && ratio < r.Increase:
				r.Increase = ratio
			case ratio < 0 && ratio > maxNeg:
				maxNeg = ratio
			}
		}
		if !math.IsInf(maxNeg, -1) {
			r.Decrease = -maxNeg
		}

		s.RHSRanges = append(s.RHSRanges, r)
	}

	return s
}

// constraintRanges performs classical right-hand-side ranging for every
// inequality constraint. Changing b_k by Δ moves the basic solution by
// Δ·B⁻¹e_k, which equals Δ times the slack column scaled by its sign. Equality
// constraints carry no slack column and are left out.
func constraintRanges(t *Tableau, sf *StandardForm, eps float64) []ConstraintRange {
	out := make([]ConstraintRange, 0, sf.NumSlack)
	for k := 0; k < sf.NumSlack; k++ {
		col := sf.NumVars + k
		owner := sf.SlackOwner[k]
		sign := sf.SlackSign[k]

		inc, dec := math.Inf(1), math.Inf(1)
		for i := 0; i < t.Rows(); i++ {
			if t.BasicColumn(i) < 0 {
				// redundant row, its right-hand side does not move
				continue
			}
			d := sign * t.At(i, col)
			rhs := math.Max(t.RHS(i), 0)
			switch {
			case d > eps:
				dec = math.Min(dec, rhs/d)
			case d < -eps:
				inc = math.Min(inc, rhs/-d)
			}
		}

		r := ConstraintRange{
			Constraint: owner,
			Sign:       LessEqual,
			RHS:        sf.B[owner],
			Increase:   inc,
			Decrease:   dec,
		}
		if sign < 0 {
			r.Sign = GreaterEqual
		}
		if sf.Flipped != nil && sf.Flipped[owner] {
			r.Sign = r.Sign.flip()
			r.RHS = -r.RHS
			r.Increase, r.Decrease = r.Decrease, r.Increase
		}

		out = append(out, r)
	}
	return out
}
