package simplex

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// Tableau is the dense (m+1) x (n+1) simplex tableau. Rows [0, m) are the
// constraint rows, row m is the objective row. Columns [0, n) hold the
// variable coefficients and column n the right-hand side. The terminal cell
// (m, n) holds the negated value of the (minimization form) objective.
//
// The basis is kept as a row -> column map and updated by every pivot.
// A row without a basic column maps to -1.
type Tableau struct {
	// constraint rows and variable columns, excluding the objective row and RHS column.
	m, n int

	data  *mat.Dense
	basis []int
}

// NewTableau lays out A, b and c as an initial tableau. A may be nil when there
// are no constraints, in which case b must be empty. The objective row holds c
// as given and the terminal cell is 0. The initial basis is found by scanning
// for exact unit columns, preferring the right-most one for each row.
func NewTableau(A *mat.Dense, b, c []float64) (*Tableau, error) {
	n := len(c)
	if n == 0 {
		return nil, errors.New("simplex: tableau needs at least one column")
	}

	m := 0
	if A != nil {
		var cols int
		m, cols = A.Dims()
		if cols != n {
			return nil, errors.Errorf("simplex: A has %d columns, cost vector has %d entries", cols, n)
		}
	}
	if len(b) != m {
		return nil, errors.Errorf("simplex: A has %d rows, b has %d entries", m, len(b))
	}

	data := mat.NewDense(m+1, n+1, nil)
	for i := 0; i < m; i++ {
		row := data.RawRowView(i)
		mat.Row(row[:n], i, A)
		row[n] = b[i]
	}
	copy(data.RawRowView(m), c)

	t := &Tableau{
		m:     m,
		n:     n,
		data:  data,
		basis: make([]int, m),
	}
	t.discoverBasis()

	return t, nil
}

func (t *Tableau) discoverBasis() {
	for i := range t.basis {
		t.basis[i] = -1
	}
	for col := t.n - 1; col >= 0; col-- {
		row, ok := t.IsUnitColumn(col, 0)
		if ok && t.basis[row] == -1 {
			t.basis[row] = col
		}
	}
}

// Rows returns the number of constraint rows.
func (t *Tableau) Rows() int { return t.m }

// Cols returns the number of variable columns.
func (t *Tableau) Cols() int { return t.n }

// At returns the element at row i, column j. Row Rows() is the objective row
// and column Cols() the right-hand side.
func (t *Tableau) At(i, j int) float64 { return t.data.At(i, j) }

// RHS returns the current right-hand side of constraint row i.
func (t *Tableau) RHS(i int) float64 { return t.data.At(i, t.n) }

// Value returns the terminal cell of the objective row.
func (t *Tableau) Value() float64 { return t.data.At(t.m, t.n) }

// ObjectiveRow returns a copy of the reduced costs.
func (t *Tableau) ObjectiveRow() []float64 {
	out := make([]float64, t.n)
	copy(out, t.data.RawRowView(t.m)[:t.n])
	return out
}

// Basis returns a copy of the row -> basic column map.
func (t *Tableau) Basis() []int {
	out := make([]int, len(t.basis))
	copy(out, t.basis)
	return out
}

// BasicColumn returns the column basic in row i, or -1.
func (t *Tableau) BasicColumn(i int) int {
	if i < 0 || i >= t.m {
		return -1
	}
	return t.basis[i]
}

// IsUnitColumn reports whether column col is a unit vector across the
// constraint rows (one entry equal to 1, all others 0, within eps) and
// returns the row holding the 1.
func (t *Tableau) IsUnitColumn(col int, eps float64) (int, bool) {
	if col < 0 || col >= t.n {
		return -1, false
	}
	row := -1
	for i := 0; i < t.m; i++ {
		v := t.data.At(i, col)
		switch {
		case within(v, 0, eps):
		case within(v, 1, eps) && row == -1:
			row = i
		default:
			return -1, false
		}
	}
	return row, row != -1
}

// EnteringColumn returns the column with the most negative reduced cost below
// -eps, lowest index first on ties. ok is false when the tableau is optimal.
func (t *Tableau) EnteringColumn(eps float64) (col int, ok bool) {
	obj := t.data.RawRowView(t.m)
	col = -1
	best := -eps
	for j := 0; j < t.n; j++ {
		if obj[j] < best {
			best = obj[j]
			col = j
		}
	}
	return col, col != -1
}

// LeavingRow applies the minimum-ratio test to column col. Only rows with an
// entry greater than eps take part; ties go to the lowest row. ok is false
// when no row qualifies, i.e. the column can grow without bound.
func (t *Tableau) LeavingRow(col int, eps float64) (row int, ok bool) {
	if col < 0 || col >= t.n {
		return -1, false
	}
	row = -1
	var best float64
	for i := 0; i < t.m; i++ {
		v := t.data.At(i, col)
		if v <= eps {
			continue
		}
		ratio := t.data.At(i, t.n) / v
		if row == -1 || ratio < best {
			best = ratio
			row = i
		}
	}
	return row, row != -1
}

// Pivot performs one Gauss-Jordan step on (row, col): the pivot row is divided
// by the pivot element and eliminated from every other row, the objective row
// included. Afterwards col is an exact unit vector and basic in row.
func (t *Tableau) Pivot(row, col int) error {
	if row < 0 || row >= t.m {
		return errors.Wrapf(ErrOutOfRange, "pivot row %d of %d", row, t.m)
	}
	if col < 0 || col >= t.n {
		return errors.Wrapf(ErrOutOfRange, "pivot column %d of %d", col, t.n)
	}

	p := t.data.At(row, col)
	if p == 0 {
		return errors.Wrapf(ErrZeroPivot, "at (%d, %d)", row, col)
	}

	pr := t.data.RawRowView(row)
	if p != 1 {
		floats.Scale(1/p, pr)
	}
	pr[col] = 1

	for i := 0; i <= t.m; i++ {
		if i == row {
			continue
		}
		r := t.data.RawRowView(i)
		f := r[col]
		if f == 0 {
			continue
		}
		floats.AddScaled(r, -f, pr)
		r[col] = 0
	}

	for i, b := range t.basis {
		if b == col && i != row {
			t.basis[i] = -1
		}
	}
	t.basis[row] = col

	return nil
}

// Clone returns a deep copy.
func (t *Tableau) Clone() *Tableau {
	return &Tableau{
		m:     t.m,
		n:     t.n,
		data:  mat.DenseCopyOf(t.data),
		basis: t.Basis(),
	}
}

func (t *Tableau) String() string {
	return fmt.Sprintf("%v", mat.Formatted(t.data, mat.Squeeze()))
}

// priceOut subtracts multiples of the basic rows from the objective row so
// that every basic column has a zero reduced cost.
func (t *Tableau) priceOut() {
	obj := t.data.RawRowView(t.m)
	for i, b := range t.basis {
		if b < 0 {
			continue
		}
		f := obj[b]
		if f == 0 {
			continue
		}
		floats.AddScaled(obj, -f, t.data.RawRowView(i))
		obj[b] = 0
	}
}

// setObjective replaces the objective row by costs (zero beyond len(costs)),
// clears the terminal cell and prices out the current basis.
func (t *Tableau) setObjective(costs []float64) {
	obj := t.data.RawRowView(t.m)
	for j := range obj {
		obj[j] = 0
	}
	copy(obj[:t.n], costs)
	t.priceOut()
}

// truncate returns a tableau holding only the first cols variable columns and
// the right-hand side. Rows whose basic column is dropped lose their basis entry.
func (t *Tableau) truncate(cols int) *Tableau {
	data := mat.NewDense(t.m+1, cols+1, nil)
	for i := 0; i <= t.m; i++ {
		src := t.data.RawRowView(i)
		dst := data.RawRowView(i)
		copy(dst[:cols], src[:cols])
		dst[cols] = src[t.n]
	}

	basis := t.Basis()
	for i, b := range basis {
		if b >= cols {
			basis[i] = -1
		}
	}

	return &Tableau{
		m:     t.m,
		n:     cols,
		data:  data,
		basis: basis,
	}
}

func within(v, target, eps float64) bool {
	return scalar.EqualWithinAbs(v, target, eps)
}
