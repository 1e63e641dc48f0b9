package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-taguchi/pkg/catalog"
	"github.com/goliatone/go-taguchi/pkg/design"
)

// Definition runs the structural checks: non-empty factor list, named and
// unique factors, at least two distinct levels each, and the size limits.
func Definition(def design.Definition) error {
	if len(def.Factors) == 0 {
		return &design.ValidationError{Kind: design.ErrEmptyDefinition, Message: "no factors defined in experiment"}
	}
	if len(def.Factors) > design.MaxFactors {
		return &design.ValidationError{
			Kind:    design.ErrLimits,
			Message: fmt.Sprintf("invalid factor count: %d (must be between 1 and %d)", len(def.Factors), design.MaxFactors),
		}
	}

	if err := design.CheckArrayName(def.Array); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(def.Factors))
	for i, factor := range def.Factors {
		if err := checkFactor(i, factor); err != nil {
			return err
		}
		if _, dup := seen[factor.Name]; dup {
			return &design.ValidationError{
				Kind:    design.ErrDuplicateFactor,
				Factor:  factor.Name,
				Message: fmt.Sprintf("duplicate factor %q", factor.Name),
			}
		}
		seen[factor.Name] = struct{}{}
	}
	return nil
}

func checkFactor(position int, factor design.Factor) error {
	if strings.TrimSpace(factor.Name) == "" {
		return &design.ValidationError{
			Kind:    design.ErrEmptyName,
			Message: fmt.Sprintf("factor at position %d has no name", position+1),
		}
	}
	if len(factor.Name) > design.MaxFactorNameLen {
		return &design.ValidationError{
			Kind:    design.ErrLimits,
			Factor:  factor.Name,
			Message: fmt.Sprintf("factor name %q too long (max %d)", factor.Name, design.MaxFactorNameLen),
		}
	}
	if len(factor.Levels) < 2 {
		return &design.ValidationError{
			Kind:    design.ErrInsufficientLevels,
			Factor:  factor.Name,
			Message: fmt.Sprintf("factor %q has %d level(s), need at least 2", factor.Name, len(factor.Levels)),
		}
	}
	if len(factor.Levels) > design.MaxLevels {
		return &design.ValidationError{
			Kind:    design.ErrLimits,
			Factor:  factor.Name,
			Message: fmt.Sprintf("factor %q has %d levels (max %d)", factor.Name, len(factor.Levels), design.MaxLevels),
		}
	}

	levels := make(map[string]struct{}, len(factor.Levels))
	for _, level := range factor.Levels {
		if strings.TrimSpace(level) == "" {
			return &design.ValidationError{
				Kind:    design.ErrEmptyName,
				Factor:  factor.Name,
				Message: fmt.Sprintf("factor %q has an empty level", factor.Name),
			}
		}
		if len(level) > design.MaxLevelLen {
			return &design.ValidationError{
				Kind:    design.ErrLimits,
				Factor:  factor.Name,
				Message: fmt.Sprintf("level %q too long (max %d)", level, design.MaxLevelLen),
			}
		}
		if _, dup := levels[level]; dup {
			return &design.ValidationError{
				Kind:    design.ErrDuplicateLevel,
				Factor:  factor.Name,
				Message: fmt.Sprintf("factor %q repeats level %q", factor.Name, level),
			}
		}
		levels[level] = struct{}{}
	}
	return nil
}

// Capacity checks that the chosen array can host the definition: enough
// columns first, then enough levels per column for the widest factor.
func Capacity(def design.Definition, array catalog.Descriptor) error {
	if array.Columns < len(def.Factors) {
		return &design.SelectionError{
			Kind:  design.ErrIncompatible,
			Array: array.Name,
			Message: fmt.Sprintf("too few columns: array %s supports max %d factors, but %d were provided",
				array.Name, array.Columns, len(def.Factors)),
		}
	}
	for _, factor := range def.Factors {
		if len(factor.Levels) > array.Levels {
			return &design.SelectionError{
				Kind:  design.ErrIncompatible,
				Array: array.Name,
				Message: fmt.Sprintf("insufficient levels: factor %q has %d levels, but array %s only supports %d",
					factor.Name, len(factor.Levels), array.Name, array.Levels),
			}
		}
	}
	return nil
}
