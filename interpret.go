package simplex

// Solution holds the decision values and the objective value of an optimum.
type Solution struct {
	X         []float64
	Objective float64
}

// Interpret reads the first numVars variables from a tableau. A variable basic
// in some row takes that row's right-hand side, every other variable is zero.
// The objective is returned in minimization form; callers that maximized
// have to negate it (Result.Solution does so).
func Interpret(t *Tableau, numVars int) Solution {
	if numVars > t.Cols() {
		numVars = t.Cols()
	}

	x := make([]float64, numVars)
	for i, col := range t.basis {
		if col >= 0 && col < numVars {
			x[col] = clean(t.RHS(i))
		}
	}

	return Solution{
		X:         x,
		Objective: clean(-t.Value()),
	}
}

// clean turns negative zero into zero.
func clean(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
