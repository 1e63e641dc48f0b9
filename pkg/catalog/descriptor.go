package catalog

import (
	"errors"
	"fmt"
	"math"
)

// Descriptor describes one orthogonal array. The zero value is not usable;
// descriptors come from a Catalog.
type Descriptor struct {
	Name    string `json:"name" yaml:"name"`
	Runs    int    `json:"runs" yaml:"runs"`
	Columns int    `json:"columns" yaml:"columns"`
	Levels  int    `json:"levels" yaml:"levels"`
	// Origin records how the rows were produced, e.g. "table" or "GF(4)^2".
	Origin string `json:"origin" yaml:"origin"`

	// One byte per cell keeps the large power arrays compact.
	rows [][]uint8
	// constructed marks power arrays, which are balanced by construction.
	constructed bool
}

func newDescriptor(name, origin string, levels int, rows [][]uint8) (Descriptor, error) {
	if name == "" {
		return Descriptor{}, errors.New("catalog: descriptor name is required")
	}
	if len(rows) == 0 {
		return Descriptor{}, fmt.Errorf("catalog: %s has no rows", name)
	}
	if levels < 2 || levels > math.MaxUint8 {
		return Descriptor{}, fmt.Errorf("catalog: %s must support between 2 and %d levels", name, math.MaxUint8)
	}
	d := Descriptor{
		Name:    name,
		Runs:    len(rows),
		Columns: len(rows[0]),
		Levels:  levels,
		Origin:  origin,
		rows:    rows,
	}
	if err := d.Valid(); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// pack copies a level-index matrix into byte rows. Cells outside
// [0, levels) are rejected here since they cannot be narrowed.
func pack(name string, levels int, rows [][]int) ([][]uint8, error) {
	out := make([][]uint8, len(rows))
	for r, row := range rows {
		out[r] = make([]uint8, len(row))
		for c, cell := range row {
			if cell < 0 || cell >= levels || cell > math.MaxUint8 {
				return nil, fmt.Errorf("catalog: %s cell (%d,%d)=%d outside [0,%d)", name, r, c, cell, levels)
			}
			out[r][c] = uint8(cell)
		}
	}
	return out, nil
}

// Valid reports whether the descriptor's matrix agrees with its declared
// shape. Descriptors built by this package always pass; a literal
// Descriptor has no rows and fails.
func (d Descriptor) Valid() error {
	if len(d.rows) == 0 {
		return fmt.Errorf("catalog: %s has no rows", d.Name)
	}
	if len(d.rows) != d.Runs {
		return fmt.Errorf("catalog: %s has %d rows, declares %d runs", d.Name, len(d.rows), d.Runs)
	}
	if d.Levels < 2 {
		return fmt.Errorf("catalog: %s declares %d levels", d.Name, d.Levels)
	}
	for r, row := range d.rows {
		if len(row) != d.Columns {
			return fmt.Errorf("catalog: %s row %d has %d columns, declares %d", d.Name, r, len(row), d.Columns)
		}
		for c, cell := range row {
			if int(cell) >= d.Levels {
				return fmt.Errorf("catalog: %s cell (%d,%d)=%d outside [0,%d)", d.Name, r, c, cell, d.Levels)
			}
		}
	}
	return nil
}

// Cell returns the level index stored at row r, column c.
func (d Descriptor) Cell(r, c int) int {
	return int(d.rows[r][c])
}

// Row returns a copy of row r.
func (d Descriptor) Row(r int) []int {
	return widen(d.rows[r])
}

// Rows returns a deep copy of the level-index matrix.
func (d Descriptor) Rows() [][]int {
	out := make([][]int, len(d.rows))
	for i, row := range d.rows {
		out[i] = widen(row)
	}
	return out
}

func widen(row []uint8) []int {
	out := make([]int, len(row))
	for i, cell := range row {
		out[i] = int(cell)
	}
	return out
}

// Orthogonal checks the strength-2 balance property: for every pair of
// columns each of the Levels² ordered pairs occurs Runs/Levels² times.
func (d Descriptor) Orthogonal() error {
	pairs := d.Levels * d.Levels
	if d.Runs%pairs != 0 {
		return fmt.Errorf("catalog: %s has %d runs, not a multiple of %d", d.Name, d.Runs, pairs)
	}
	counts := make([]int, pairs)
	for a := 0; a < d.Columns; a++ {
		for b := a + 1; b < d.Columns; b++ {
			if err := d.balanced(a, b, counts); err != nil {
				return err
			}
		}
	}
	return nil
}

// PairBalanced checks the balance property for columns a and b only.
func (d Descriptor) PairBalanced(a, b int) error {
	if a < 0 || b < 0 || a >= d.Columns || b >= d.Columns || a == b {
		return fmt.Errorf("catalog: %s has no column pair %d/%d", d.Name, a, b)
	}
	pairs := d.Levels * d.Levels
	if d.Runs%pairs != 0 {
		return fmt.Errorf("catalog: %s has %d runs, not a multiple of %d", d.Name, d.Runs, pairs)
	}
	return d.balanced(a, b, make([]int, pairs))
}

func (d Descriptor) balanced(a, b int, counts []int) error {
	want := d.Runs / len(counts)
	clear(counts)
	for _, row := range d.rows {
		counts[int(row[a])*d.Levels+int(row[b])]++
	}
	for idx, n := range counts {
		if n != want {
			return fmt.Errorf("catalog: %s columns %d/%d: pair (%d,%d) appears %d times, want %d",
				d.Name, a, b, idx/d.Levels, idx%d.Levels, n, want)
		}
	}
	return nil
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s (%d runs, %d cols, %d levels)", d.Name, d.Runs, d.Columns, d.Levels)
}
