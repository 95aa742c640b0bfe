package simplex

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpret(t *testing.T) {
	tab := wyndorTableau(t)

	// the initial tableau has every original variable nonbasic
	sol := Interpret(tab, 2)
	assert.Equal(t, []float64{0, 0}, sol.X)
	assert.Equal(t, 0.0, sol.Objective)
	assert.False(t, math.Signbit(sol.Objective))

	require.NoError(t, tab.Pivot(1, 1))
	sol = Interpret(tab, 2)
	assert.Equal(t, []float64{0, 6}, sol.X)
	assert.Equal(t, -30.0, sol.Objective)

	require.NoError(t, tab.Pivot(2, 0))
	sol = Interpret(tab, 2)
	assert.InDeltaSlice(t, []float64{2, 6}, sol.X, 1e-12)
	assert.InDelta(t, -36, sol.Objective, 1e-12)

	// asking for more variables than there are columns is clamped
	sol = Interpret(tab, 9)
	assert.Len(t, sol.X, 5)
}

func TestResult_SolutionSense(t *testing.T) {
	maxRes, err := Solve(wyndor())
	require.NoError(t, err)
	maxSol, err := maxRes.Solution()
	require.NoError(t, err)

	// the same problem as a minimization of the negated costs
	p := wyndor()
	p.Sense = Minimize
	p.Objective = []float64{-3, -5}
	minRes, err := Solve(p)
	require.NoError(t, err)
	minSol, err := minRes.Solution()
	require.NoError(t, err)

	assert.InDeltaSlice(t, maxSol.X, minSol.X, 1e-12)
	assert.InDelta(t, 36, maxSol.Objective, 1e-12)
	assert.InDelta(t, -36, minSol.Objective, 1e-12)
}
