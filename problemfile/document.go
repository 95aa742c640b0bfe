package problemfile

import (
	"bytes"
	"encoding/json"
	"io"
	"io/ioutil"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"

	simplex "github.com/jjhbw/GoSimplex"
)

// document is the structured encoding of a problem. JSON is a subset of YAML,
// so both formats decode through the same path.
type document struct {
	Sense       string               `json:"sense"`
	Objective   []float64            `json:"objective"`
	Constraints []constraintDocument `json:"constraints,omitempty"`
}

type constraintDocument struct {
	Coefficients []float64 `json:"coefficients"`
	Sign         string    `json:"sign"`
	RHS          float64   `json:"rhs"`
}

func readDocument(r io.Reader) (simplex.Problem, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return simplex.Problem{}, errors.Wrap(err, "reading problem")
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return simplex.Problem{}, errors.Wrap(err, "decoding problem")
	}
	return doc.problem()
}

func (doc document) problem() (simplex.Problem, error) {
	sense, err := simplex.ParseSense(doc.Sense)
	if err != nil {
		return simplex.Problem{}, err
	}

	p := simplex.Problem{
		Sense:     sense,
		Objective: doc.Objective,
	}
	for i, c := range doc.Constraints {
		sign, err := simplex.ParseSign(c.Sign)
		if err != nil {
			return simplex.Problem{}, errors.Wrapf(err, "constraint %d", i+1)
		}
		p.Constraints = append(p.Constraints, simplex.Constraint{
			Coefficients: c.Coefficients,
			Sign:         sign,
			RHS:          c.RHS,
		})
	}
	return p, nil
}

func newDocument(p simplex.Problem) document {
	doc := document{
		Sense:     p.Sense.String(),
		Objective: p.Objective,
	}
	for _, c := range p.Constraints {
		doc.Constraints = append(doc.Constraints, constraintDocument{
			Coefficients: c.Coefficients,
			Sign:         c.Sign.String(),
			RHS:          c.RHS,
		})
	}
	return doc
}

func writeYAML(w io.Writer, p simplex.Problem) error {
	out, err := yaml.Marshal(newDocument(p))
	if err != nil {
		return errors.Wrap(err, "encoding problem")
	}
	_, err = w.Write(out)
	return err
}

func writeJSON(w io.Writer, p simplex.Problem) error {
	out, err := json.Marshal(newDocument(p))
	if err != nil {
		return errors.Wrap(err, "encoding problem")
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, out, "", "  "); err != nil {
		return errors.Wrap(err, "encoding problem")
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}
