package simplex

// The tableau method relies on non-negative right-hand sides: both the
// minimum-ratio test and the phase 1 objective assume them. Rows with a
// negative right-hand side are therefore multiplied by -1 before the column
// layout is decided, and every such rewrite registers an undoer that maps the
// post-optimal report back onto the constraint as it was written.

// undoer maps a result computed on the normalized problem back to the original problem.
type undoer func(Sensitivity) Sensitivity

type preProcessor struct {
	undoers []undoer
}

func newPreprocessor() *preProcessor {
	return &preProcessor{}
}

func (prepper *preProcessor) addUndoer(u undoer) {
	prepper.undoers = append(prepper.undoers, u)
}

// normalize returns a copy of the constraints in which every row has a
// non-negative right-hand side, together with the rows that had to be flipped.
// The caller's slices are never modified.
func (prepper *preProcessor) normalize(constraints []Constraint) ([]Constraint, []bool) {
	out := make([]Constraint, len(constraints))
	flipped := make([]bool, len(constraints))

	changed := false
	for i, con := range constraints {
		coefs := make([]float64, len(con.Coefficients))
		copy(coefs, con.Coefficients)
		out[i] = Constraint{
			Coefficients: coefs,
			Sign:         con.Sign,
			RHS:          con.RHS,
		}

		if con.RHS >= 0 {
			continue
		}

		for j, v := range coefs {
			// keep structural zeros positive so traces don't print -0
			if v != 0 {
				coefs[j] = -v
			}
		}
		out[i].RHS = -con.RHS
		out[i].Sign = con.Sign.flip()
		flipped[i] = true
		changed = true
	}

	if changed {
		// A unit increase of the normalized right-hand side is a unit decrease
		// of the original one, so the ranges of flipped rows swap direction.
		prepper.addUndoer(func(s Sensitivity) Sensitivity {
			for k, r := range s.RHSRanges {
				if r.Constraint >= 0 && r.Constraint < len(flipped) && flipped[r.Constraint] {
					s.RHSRanges[k].Increase, s.RHSRanges[k].Decrease = r.Decrease, r.Increase
				}
			}
			return s
		})
	}

	return out, flipped
}

// postSolve applies the registered undoers in reverse registration order.
func (prepper *preProcessor) postSolve(s Sensitivity) Sensitivity {
	if prepper == nil {
		return s
	}

	// walk the slice from the last to the first element (use it as a LIFO queue)
	for i := len(prepper.undoers) - 1; i >= 0; i-- {
		s = prepper.undoers[i](s)
	}
	return s
}
