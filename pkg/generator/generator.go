// Package generator maps orthogonal array rows onto factor levels. Factor i
// binds to column i; a cell's level index is reduced modulo the factor's level
// count when the factor has fewer levels than the array's columns support.
// Generation is a pure function of its inputs.
package generator

import (
	"fmt"

	"github.com/goliatone/go-taguchi/pkg/catalog"
	"github.com/goliatone/go-taguchi/pkg/design"
)

// Generate produces one Run per array row, in row order, with IDs from 1.
// The definition is checked for emptiness before the array is touched.
func Generate(def design.Definition, array catalog.Descriptor) ([]design.Run, error) {
	if len(def.Factors) == 0 {
		return nil, &design.GenerationError{
			Kind:    design.ErrEmptyDefinition,
			Message: "definition has no factors",
		}
	}
	if err := array.Valid(); err != nil {
		return nil, &design.GenerationError{
			Kind:    design.ErrInvalidArray,
			Message: err.Error(),
		}
	}
	if array.Columns < len(def.Factors) {
		return nil, &design.GenerationError{
			Kind: design.ErrArrayTooSmall,
			Message: fmt.Sprintf("array %s has %d columns, but %d factors were provided",
				array.Name, array.Columns, len(def.Factors)),
		}
	}

	for _, factor := range def.Factors {
		if len(factor.Levels) == 0 {
			return nil, &design.GenerationError{
				Kind:    design.ErrInsufficientLevels,
				Message: fmt.Sprintf("factor %q has no levels", factor.Name),
			}
		}
	}

	names := def.FactorNames()
	runs := make([]design.Run, array.Runs)
	levels := make([]string, len(def.Factors))
	for r := 0; r < array.Runs; r++ {
		for i, factor := range def.Factors {
			levels[i] = factor.Levels[array.Cell(r, i)%len(factor.Levels)]
		}
		runs[r] = design.NewRun(r+1, names, levels)
	}
	return runs, nil
}

// Imbalanced names the factors whose level count does not divide the array's
// level count. For those factors the modulo reduction repeats some levels more
// often than others, so pairwise balance is only approximate.
func Imbalanced(def design.Definition, array catalog.Descriptor) []string {
	var out []string
	for _, factor := range def.Factors {
		n := len(factor.Levels)
		if n == 0 || array.Levels%n != 0 {
			out = append(out, factor.Name)
		}
	}
	return out
}
