package problemfile

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	simplex "github.com/jjhbw/GoSimplex"
)

func wyndor() simplex.Problem {
	return simplex.Problem{
		Sense:     simplex.Maximize,
		Objective: []float64{3, 5},
		Constraints: []simplex.Constraint{
			{Coefficients: []float64{1, 0}, Sign: simplex.LessEqual, RHS: 4},
			{Coefficients: []float64{0, 2}, Sign: simplex.LessEqual, RHS: 12},
			{Coefficients: []float64{3, 2}, Sign: simplex.LessEqual, RHS: 18},
		},
	}
}

const wyndorText = `max
3,5
1,0,<=,4
0,2,<=,12
3,2,<=,18
`

const wyndorYAML = `sense: max
objective: [3, 5]
constraints:
- coefficients: [1, 0]
  sign: "<="
  rhs: 4
- coefficients: [0, 2]
  sign: "<="
  rhs: 12
- coefficients: [3, 2]
  sign: "<="
  rhs: 18
`

const wyndorJSON = `{
  "sense": "max",
  "objective": [3, 5],
  "constraints": [
    {"coefficients": [1, 0], "sign": "<=", "rhs": 4},
    {"coefficients": [0, 2], "sign": "<=", "rhs": 12},
    {"coefficients": [3, 2], "sign": "<=", "rhs": 18}
  ]
}`

func TestRead(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
		want   simplex.Problem
	}{
		{
			name:   "text",
			input:  wyndorText,
			format: FormatText,
			want:   wyndor(),
		},
		{
			name: "text with comments, blanks and spaces",
			input: `# wyndor glass
 max

3, 5
1, 0, <=, 4
# second plant
0,2,≤,12
3,2,<=,18`,
			format: FormatText,
			want:   wyndor(),
		},
		{
			name:   "yaml",
			input:  wyndorYAML,
			format: FormatYAML,
			want:   wyndor(),
		},
		{
			name:   "json",
			input:  wyndorJSON,
			format: FormatJSON,
			want:   wyndor(),
		},
		{
			name:   "text without constraints",
			input:  "min\n1,2\n",
			format: FormatText,
			want:   simplex.Problem{Sense: simplex.Minimize, Objective: []float64{1, 2}},
		},
		{
			name:   "text with mixed signs and negative values",
			input:  "min\n2,1\n-1,-1,<=,-2\n0,1,=,1.5\n1,0,>=,0\n",
			format: FormatText,
			want: simplex.Problem{
				Sense:     simplex.Minimize,
				Objective: []float64{2, 1},
				Constraints: []simplex.Constraint{
					{Coefficients: []float64{-1, -1}, Sign: simplex.LessEqual, RHS: -2},
					{Coefficients: []float64{0, 1}, Sign: simplex.Equal, RHS: 1.5},
					{Coefficients: []float64{1, 0}, Sign: simplex.GreaterEqual, RHS: 0},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input), tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRead_errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
		errMsg string
	}{
		{name: "empty", input: "", format: FormatText, errMsg: "missing objective sense"},
		{name: "no objective", input: "max\n", format: FormatText, errMsg: "missing objective coefficients"},
		{name: "bad sense", input: "maybe\n1,2\n", format: FormatText, errMsg: "line 1"},
		{name: "bad cost", input: "max\n1,x\n", format: FormatText, errMsg: "line 2: objective"},
		{name: "short row", input: "max\n1,2\n1,<=,4\n", format: FormatText, errMsg: "line 3: constraint 1"},
		{name: "bad sign", input: "max\n1,2\n1,1,<,4\n", format: FormatText, errMsg: "line 3"},
		{name: "bad rhs", input: "max\n1,2\n\n1,1,<=,four\n", format: FormatText, errMsg: "line 4"},
		{name: "yaml bad sign", input: "sense: max\nobjective: [1]\nconstraints:\n- {coefficients: [1], sign: '<>', rhs: 1}\n", format: FormatYAML, errMsg: "constraint 1"},
		{name: "yaml row length", input: "sense: min\nobjective: [1, 2]\nconstraints:\n- {coefficients: [1], sign: '<=', rhs: 1}\n", format: FormatYAML, errMsg: "invalid constraint 0"},
		{name: "yaml garbage", input: "sense: [", format: FormatYAML, errMsg: "decoding problem"},
		{name: "unknown format", input: wyndorText, format: Format("xml"), errMsg: "unknown problem format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestWrite_roundTrip(t *testing.T) {
	problems := []simplex.Problem{
		wyndor(),
		{
			Sense:     simplex.Minimize,
			Objective: []float64{0.5, -1e-3},
			Constraints: []simplex.Constraint{
				{Coefficients: []float64{1, 1}, Sign: simplex.GreaterEqual, RHS: 2.25},
				{Coefficients: []float64{1, -1}, Sign: simplex.Equal, RHS: 0},
			},
		},
	}
	for _, p := range problems {
		for _, f := range []Format{FormatText, FormatYAML, FormatJSON} {
			t.Run(string(f), func(t *testing.T) {
				var buf bytes.Buffer
				require.NoError(t, Write(&buf, p, f))

				got, err := Read(&buf, f)
				require.NoError(t, err)
				assert.Equal(t, p, got)
			})
		}
	}
}

func TestWrite_text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, wyndor(), FormatText))
	assert.Equal(t, wyndorText, buf.String())

	assert.Error(t, Write(&buf, wyndor(), Format("xml")))
}

func TestLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "problemfile")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	files := map[string]string{
		"wyndor.txt":  wyndorText,
		"wyndor.lp":   wyndorText,
		"wyndor.yaml": wyndorYAML,
		"wyndor.json": wyndorJSON,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))

		got, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, wyndor(), got, name)
	}

	_, err = Load(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestFormats(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFor("a/b.YML"))
	assert.Equal(t, FormatJSON, FormatFor("b.json"))
	assert.Equal(t, FormatText, FormatFor("b"))

	f, err := ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("toml")
	assert.Error(t, err)
}
