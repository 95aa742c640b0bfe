package simplex

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// StandardForm is a problem rewritten as
//
//	minimize	c^T x
//	s.t.		A * x = b
//				x >= 0, b >= 0
//
// The columns of A are laid out contiguously:
// [0, NumVars) original variables, [NumVars, NumVars+NumSlack) slack and
// surplus variables, [NumVars+NumSlack, n) artificial variables.
type StandardForm struct {
	// A is nil when the problem has no constraints.
	A *mat.Dense
	B []float64
	C []float64

	NumVars  int
	NumSlack int

	// column indices of the artificial variables, in constraint order.
	ArtificialCols []int

	// SlackOwner[k] is the constraint that owns slack/surplus column NumVars+k,
	// SlackSign[k] its coefficient (+1 for slack, -1 for surplus).
	SlackOwner []int
	SlackSign  []float64

	// Flipped[i] is set when constraint i was multiplied by -1 to make its
	// right-hand side non-negative.
	Flipped []bool

	// Sense of the problem this was derived from. C is always a minimization.
	Sense Sense

	post *preProcessor
}

// NumConstraints returns m, the number of constraint rows.
func (sf *StandardForm) NumConstraints() int {
	return len(sf.B)
}

// NumCols returns n, the total number of columns including artificial ones.
func (sf *StandardForm) NumCols() int {
	return len(sf.C)
}

// Standardize converts p into standard form. The problem is validated first;
// malformed input yields a *ValidationError and no conversion takes place.
func Standardize(p Problem) (*StandardForm, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	prepper := newPreprocessor()
	constraints, flipped := prepper.normalize(p.Constraints)

	// number of original variables
	nVar := len(p.Objective)

	// number of constraints
	nCons := len(constraints)

	// the column layout follows from the signs alone, so size everything up front
	nSlack, nArt := 0, 0
	for _, con := range constraints {
		switch con.Sign {
		case LessEqual:
			nSlack++
		case GreaterEqual:
			nSlack++
			nArt++
		case Equal:
			nArt++
		}
	}
	nCols := nVar + nSlack + nArt

	// internally every problem is a minimization
	c := make([]float64, nCols)
	copy(c, p.Objective)
	if p.Sense == Maximize {
		floats.Scale(-1, c[:nVar])
	}

	sf := &StandardForm{
		B:              make([]float64, nCons),
		C:              c,
		NumVars:        nVar,
		NumSlack:       nSlack,
		ArtificialCols: make([]int, 0, nArt),
		SlackOwner:     make([]int, 0, nSlack),
		SlackSign:      make([]float64, 0, nSlack),
		Flipped:        flipped,
		Sense:          p.Sense,
		post:           prepper,
	}
	if nCons == 0 {
		return sf, nil
	}

	sf.A = mat.NewDense(nCons, nCols, nil)
	slack := nVar
	artificial := nVar + nSlack
	for i, con := range constraints {
		row := sf.A.RawRowView(i)
		copy(row, con.Coefficients)
		sf.B[i] = con.RHS

		switch con.Sign {
		case LessEqual:
			row[slack] = 1
			sf.SlackOwner = append(sf.SlackOwner, i)
			sf.SlackSign = append(sf.SlackSign, 1)
			slack++

		case GreaterEqual:
			row[slack] = -1
			sf.SlackOwner = append(sf.SlackOwner, i)
			sf.SlackSign = append(sf.SlackSign, -1)
			slack++

			row[artificial] = 1
			sf.ArtificialCols = append(sf.ArtificialCols, artificial)
			artificial++

		case Equal:
			row[artificial] = 1
			sf.ArtificialCols = append(sf.ArtificialCols, artificial)
			artificial++
		}
	}

	return sf, nil
}

// check verifies the dimensions and the column bookkeeping of a standard form
// that may have been assembled by hand.
func (sf *StandardForm) check() error {
	if sf == nil {
		return errors.New("simplex: nil standard form")
	}
	if sf.NumVars <= 0 {
		return invalid("standard form", -1, "no original variables")
	}
	if sf.NumSlack < 0 || sf.NumVars+sf.NumSlack+len(sf.ArtificialCols) != len(sf.C) {
		return invalid("standard form", -1, "cost vector has %d entries, layout needs %d",
			len(sf.C), sf.NumVars+sf.NumSlack+len(sf.ArtificialCols))
	}

	if sf.A == nil {
		if len(sf.B) != 0 {
			return invalid("standard form", -1, "A matrix is nil while b vector is provided")
		}
		return nil
	}

	rA, cA := sf.A.Dims()
	if rA != len(sf.B) {
		return invalid("standard form", -1, "number of rows in A (%d) is not equal to length of b (%d)", rA, len(sf.B))
	}
	if cA != len(sf.C) {
		return invalid("standard form", -1, "number of columns in A (%d) is not equal to length of c (%d)", cA, len(sf.C))
	}
	for i, v := range sf.B {
		if v < 0 {
			return invalid("standard form", i, "right-hand side %v is negative", v)
		}
	}

	first := sf.NumVars + sf.NumSlack
	for k, col := range sf.ArtificialCols {
		if col != first+k {
			return invalid("standard form", k, "artificial column %d is out of place, expected %d", col, first+k)
		}
	}

	return nil
}
