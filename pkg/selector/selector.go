// Package selector picks the orthogonal array a definition runs on, either by
// explicit name or by searching the catalog for the cheapest array that fits.
package selector

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-taguchi/pkg/catalog"
	"github.com/goliatone/go-taguchi/pkg/design"
	"github.com/goliatone/go-taguchi/pkg/validation"
)

// Select resolves the array for a definition shape. A non-empty requested name
// is looked up verbatim and checked for capacity; an empty one triggers
// auto-selection.
func Select(cat *catalog.Catalog, shape design.Shape, requested string) (catalog.Descriptor, error) {
	if requested != "" {
		return explicit(cat, shape, requested)
	}
	return auto(cat, shape)
}

// ForDefinition selects using the definition's own array request.
func ForDefinition(cat *catalog.Catalog, def design.Definition) (catalog.Descriptor, error) {
	return Select(cat, def.Shape(), def.Array)
}

// Suggest returns the name of the array auto-selection would choose,
// ignoring any explicit request on the definition.
func Suggest(cat *catalog.Catalog, def design.Definition) (string, error) {
	d, err := auto(cat, def.Shape())
	if err != nil {
		return "", err
	}
	return d.Name, nil
}

// Candidates lists every array able to host the shape, best first.
func Candidates(cat *catalog.Catalog, shape design.Shape) []catalog.Descriptor {
	maxLevels := shape.MaxLevels()
	var out []catalog.Descriptor
	for _, d := range cat.All() {
		if d.Levels >= maxLevels && d.Columns >= shape.FactorCount {
			out = append(out, d)
		}
	}
	// All() is in declaration order, so a stable sort keeps it as the last
	// tie-break.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Runs != out[j].Runs {
			return out[i].Runs < out[j].Runs
		}
		return out[i].Columns < out[j].Columns
	})
	return out
}

func explicit(cat *catalog.Catalog, shape design.Shape, name string) (catalog.Descriptor, error) {
	d, ok := cat.Find(name)
	if !ok {
		return catalog.Descriptor{}, &design.SelectionError{
			Kind:    design.ErrUnknownArray,
			Array:   name,
			Message: fmt.Sprintf("unknown array type: %s", name),
		}
	}
	if d.Columns < shape.FactorCount {
		return catalog.Descriptor{}, &design.SelectionError{
			Kind:  design.ErrIncompatible,
			Array: name,
			Message: fmt.Sprintf("too few columns: array %s supports max %d factors, but %d were provided",
				name, d.Columns, shape.FactorCount),
		}
	}
	if maxLevels := shape.MaxLevels(); d.Levels < maxLevels {
		return catalog.Descriptor{}, &design.SelectionError{
			Kind:  design.ErrIncompatible,
			Array: name,
			Message: fmt.Sprintf("insufficient levels: array %s supports %d levels, but a factor needs %d",
				name, d.Levels, maxLevels),
		}
	}
	return d, nil
}

func auto(cat *catalog.Catalog, shape design.Shape) (catalog.Descriptor, error) {
	candidates := Candidates(cat, shape)
	if len(candidates) == 0 {
		return catalog.Descriptor{}, &design.SelectionError{
			Kind: design.ErrNoSuitableArray,
			Message: fmt.Sprintf("no suitable array found for %d factors (max %d levels each); try reducing factor count or level count per factor",
				shape.FactorCount, shape.MaxLevels()),
		}
	}
	return candidates[0], nil
}

// Resolve selects an array for def and re-checks capacity factor by factor,
// so incompatibility messages name the offending factor.
func Resolve(cat *catalog.Catalog, def design.Definition, override string) (catalog.Descriptor, error) {
	requested := def.Array
	if override != "" {
		requested = override
	}
	d, err := Select(cat, def.Shape(), requested)
	if err != nil {
		return catalog.Descriptor{}, err
	}
	if err := validation.Capacity(def, d); err != nil {
		return catalog.Descriptor{}, err
	}
	return d, nil
}
