package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wyndorText = `max
3,5
1,0,<=,4
0,2,<=,12
3,2,<=,18
`

func writeProblem(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path
}

func run(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSolveCommand(t *testing.T) {
	dir, err := ioutil.TempDir("", "lpsolve")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := writeProblem(t, dir, "wyndor.txt", wyndorText)

	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name: "text report",
			args: []string{"solve", path},
			contains: []string{
				"maximize Z = 3x1 + 5x2",
				"3. 3x1 + 2x2 <= 18",
				"Status: optimal (phase 1: 0 pivots, phase 2: 2 pivots)",
				"x1 = 2.00",
				"x2 = 6.00",
				"Z = 36.00",
				"constraint 2 (<=): 1.50",
				"may decrease without limit",
				"constraint 2 (<=): [6.00, 18.00]",
				"constraint 1 (<=): [2.00, +inf]",
				"2 decision variables",
			},
		},
		{
			name:     "verified",
			args:     []string{"solve", "--verify", path},
			contains: []string{"cross-check: agrees"},
		},
		{
			name:     "yaml report",
			args:     []string{"solve", "-o", "yaml", path},
			contains: []string{"status: optimal", "objective: 36", "shadowPrices:"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := run(tt.args...)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, stdout, want)
			}
		})
	}
}

func TestSolveCommand_verifyHardProblem(t *testing.T) {
	dir, err := ioutil.TempDir("", "lpsolve")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := writeProblem(t, dir, "hard.txt", "min\n-3,0\n-2,-1,<=,2\n3,-2,<=,8\n2,0,=,5\n-2,3,>=,-4\n")
	stdout, _, err := run("solve", "--verify", "--verify-timeout", "5s", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Z = -7.50")
	assert.Contains(t, stdout, "cross-check: agrees")

	stdout, _, err = run("solve", "--verify", "-o", "json", path)
	require.NoError(t, err)
	var rep report
	require.NoError(t, json.Unmarshal([]byte(stdout), &rep))
	assert.Equal(t, crossCheckAgrees, rep.CrossCheck)
}

func TestSolveCommand_json(t *testing.T) {
	dir, err := ioutil.TempDir("", "lpsolve")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := writeProblem(t, dir, "wyndor.txt", wyndorText)
	stdout, _, err := run("solve", "--output", "json", path)
	require.NoError(t, err)

	var rep report
	require.NoError(t, json.Unmarshal([]byte(stdout), &rep))
	assert.Equal(t, "optimal", rep.Status)
	require.NotNil(t, rep.Objective)
	assert.InDelta(t, 36, *rep.Objective, 1e-9)
	assert.InDeltaSlice(t, []float64{2, 6}, rep.X, 1e-9)

	require.NotNil(t, rep.Sensitivity)
	require.Len(t, rep.Sensitivity.ConstraintRanges, 3)
	assert.Nil(t, rep.Sensitivity.ConstraintRanges[0].Increase)
	require.NotNil(t, rep.Sensitivity.ConstraintRanges[0].Decrease)
	assert.InDelta(t, 2, *rep.Sensitivity.ConstraintRanges[0].Decrease, 1e-9)
}

func TestSolveCommand_outcomes(t *testing.T) {
	dir, err := ioutil.TempDir("", "lpsolve")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	infeasible := writeProblem(t, dir, "infeasible.txt", "min\n1\n1,=,2\n1,=,3\n")
	stdout, _, err := run("solve", infeasible)
	require.NoError(t, err)
	assert.Contains(t, stdout, "no feasible solution")

	unbounded := writeProblem(t, dir, "unbounded.yaml", "sense: max\nobjective: [1]\nconstraints:\n- {coefficients: [1], sign: '>=', rhs: 0}\n")
	stdout, _, err = run("solve", unbounded)
	require.NoError(t, err)
	assert.Contains(t, stdout, "unbounded")

	_, _, err = run("solve", filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)

	broken := writeProblem(t, dir, "broken.txt", "max\n1,2\n1,<=,4\n")
	_, _, err = run("solve", broken)
	assert.Error(t, err)

	_, _, err = run("solve", "--output", "xml", infeasible)
	assert.Error(t, err)

	_, _, err = run("solve")
	assert.Error(t, err)
}

func TestSolveCommand_iterationLimitFromEnvironment(t *testing.T) {
	dir, err := ioutil.TempDir("", "lpsolve")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := writeProblem(t, dir, "wyndor.txt", wyndorText)

	require.NoError(t, os.Setenv("LPSOLVE_MAX_ITERATIONS", "1"))
	defer os.Unsetenv("LPSOLVE_MAX_ITERATIONS")

	stdout, _, err := run("solve", path)
	assert.Error(t, err)
	assert.Contains(t, stdout, "iteration limit")

	// an explicit flag wins over the environment
	_, _, err = run("solve", "--max-iterations", "10", path)
	assert.NoError(t, err)
}

func TestSolveCommand_traceAndMetrics(t *testing.T) {
	dir, err := ioutil.TempDir("", "lpsolve")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := writeProblem(t, dir, "wyndor.txt", wyndorText)
	metrics := filepath.Join(dir, "metrics.prom")

	_, stderr, err := run("solve", "--trace", "--log-level", "info", "--metrics-file", metrics, path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "pivot")
	assert.Contains(t, stderr, "solve finished")

	data, err := ioutil.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), `lpsolve_pivots_total{phase="phase2"} 2`)
	assert.Contains(t, string(data), `lpsolve_solves_total{status="optimal"} 1`)

	_, _, err = run("solve", "--log-level", "loud", path)
	assert.Error(t, err)
}

func TestConvertCommand(t *testing.T) {
	dir, err := ioutil.TempDir("", "lpsolve")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := writeProblem(t, dir, "wyndor.txt", wyndorText)

	stdout, _, err := run("convert", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "sense: max")
	assert.Contains(t, stdout, "constraints:")

	stdout, _, err = run("convert", "--to", "json", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"sense": "max"`)

	yamlPath := writeProblem(t, dir, "wyndor.yaml", "sense: max\nobjective: [3, 5]\nconstraints:\n- {coefficients: [1, 0], sign: '<=', rhs: 4}\n- {coefficients: [0, 2], sign: '<=', rhs: 12}\n- {coefficients: [3, 2], sign: '<=', rhs: 18}\n")
	stdout, _, err = run("convert", "--to", "text", yamlPath)
	require.NoError(t, err)
	assert.Equal(t, wyndorText, stdout)

	_, _, err = run("convert", "--to", "toml", path)
	assert.Error(t, err)
}
