package problemfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	simplex "github.com/jjhbw/GoSimplex"
)

func readText(r io.Reader) (simplex.Problem, error) {
	var p simplex.Problem

	scanner := bufio.NewScanner(r)
	lineno := 0
	header := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch header {
		case 0:
			sense, err := simplex.ParseSense(line)
			if err != nil {
				return p, errors.Wrapf(err, "line %d", lineno)
			}
			p.Sense = sense
			header++

		case 1:
			costs, err := parseFloats(strings.Split(line, ","))
			if err != nil {
				return p, errors.Wrapf(err, "line %d: objective", lineno)
			}
			p.Objective = costs
			header++

		default:
			con, err := parseConstraint(line, len(p.Objective))
			if err != nil {
				return p, errors.Wrapf(err, "line %d: constraint %d", lineno, len(p.Constraints)+1)
			}
			p.Constraints = append(p.Constraints, con)
		}
	}
	if err := scanner.Err(); err != nil {
		return p, errors.Wrap(err, "reading problem")
	}

	switch header {
	case 0:
		return p, errors.New("missing objective sense")
	case 1:
		return p, errors.New("missing objective coefficients")
	}
	return p, nil
}

// parseConstraint reads "a1,...,an,sign,rhs".
func parseConstraint(line string, nVars int) (simplex.Constraint, error) {
	parts := strings.Split(line, ",")
	if len(parts) != nVars+2 {
		return simplex.Constraint{}, errors.Errorf("expected %d fields (%d coefficients, sign, rhs), got %d", nVars+2, nVars, len(parts))
	}

	coefs, err := parseFloats(parts[:nVars])
	if err != nil {
		return simplex.Constraint{}, err
	}
	sign, err := simplex.ParseSign(parts[nVars])
	if err != nil {
		return simplex.Constraint{}, err
	}
	rhs, err := parseFloat(parts[nVars+1])
	if err != nil {
		return simplex.Constraint{}, errors.Wrap(err, "right-hand side")
	}

	return simplex.Constraint{
		Coefficients: coefs,
		Sign:         sign,
		RHS:          rhs,
	}, nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := parseFloat(f)
		if err != nil {
			return nil, errors.Wrapf(err, "coefficient %d", i+1)
		}
		out[i] = v
	}
	return out, nil
}

func parseFloat(field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, errors.Errorf("%q is not a number", strings.TrimSpace(field))
	}
	return v, nil
}

func writeText(w io.Writer, p simplex.Problem) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, p.Sense.String())
	fmt.Fprintln(bw, joinFloats(p.Objective))
	for _, con := range p.Constraints {
		fmt.Fprintf(bw, "%s,%s,%s\n", joinFloats(con.Coefficients), con.Sign, formatFloat(con.RHS))
	}
	return bw.Flush()
}

func joinFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, ",")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
