// Package problemfile reads and writes linear programs.
//
// Two encodings are supported. The text format is line oriented:
//
//	max
//	3,5
//	1,0,<=,4
//	0,2,<=,12
//	3,2,<=,18
//
// The first line holds the objective sense, the second the comma-separated
// objective coefficients and every further line one constraint: its
// coefficients, the relational sign and the right-hand side. Blank lines and
// lines starting with '#' are ignored.
//
// The structured format is a YAML (or JSON) document with the keys sense,
// objective and constraints.
package problemfile

import (
	"bytes"
	"io"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	simplex "github.com/jjhbw/GoSimplex"
)

// Format is an encoding of a problem.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts "text", "txt", "yaml", "yml" and "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt":
		return FormatText, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", errors.Errorf("unknown problem format %q", s)
}

// FormatFor picks the format from the file extension. Unknown extensions are
// read as text.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return FormatText
}

// Load reads the problem stored at path.
func Load(path string) (simplex.Problem, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return simplex.Problem{}, errors.Wrapf(err, "reading problem file %s", path)
	}

	p, err := Read(bytes.NewReader(data), FormatFor(path))
	if err != nil {
		return simplex.Problem{}, errors.Wrapf(err, "loading %s", path)
	}
	return p, nil
}

// Read decodes a problem in the given format and validates it.
func Read(r io.Reader, f Format) (simplex.Problem, error) {
	var (
		p   simplex.Problem
		err error
	)
	switch f {
	case FormatText:
		p, err = readText(r)
	case FormatYAML, FormatJSON:
		p, err = readDocument(r)
	default:
		return simplex.Problem{}, errors.Errorf("unknown problem format %q", f)
	}
	if err != nil {
		return simplex.Problem{}, err
	}

	if err := p.Validate(); err != nil {
		return simplex.Problem{}, err
	}
	return p, nil
}

// Write encodes p in the given format.
func Write(w io.Writer, p simplex.Problem, f Format) error {
	switch f {
	case FormatText:
		return writeText(w, p)
	case FormatYAML:
		return writeYAML(w, p)
	case FormatJSON:
		return writeJSON(w, p)
	}
	return errors.Errorf("unknown problem format %q", f)
}
