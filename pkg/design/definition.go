package design

import (
	"fmt"
	"strings"
)

// Size limits. Definitions beyond them are
// rejected by the validator and the builders in this package.
const (
	MaxFactors       = 256
	MaxLevels        = 27
	MaxFactorNameLen = 63
	MaxLevelLen      = 127
)

// Characters the text format uses as delimiters; names and levels holding
// them would not survive a Format/parse round trip.
const (
	nameReserved  = ":#\r\n"
	levelReserved = ",#\r\n"

	// ReservedArrayChars may not appear in an array request.
	ReservedArrayChars = ":#\r\n"
)

// Factor is a controllable variable with its candidate levels in declaration
// order. Order is significant for reproducible run assignment only.
type Factor struct {
	Name   string   `json:"name" yaml:"name"`
	Levels []string `json:"levels" yaml:"levels"`
}

// Definition is a parsed experiment: factors in declaration order plus the
// optional array request. An empty Array means auto-selection.
type Definition struct {
	Factors []Factor `json:"factors" yaml:"factors"`
	Array   string   `json:"array,omitempty" yaml:"array,omitempty"`
}

// Shape is the part of a Definition the selector cares about.
type Shape struct {
	FactorCount int
	Levels      []int
}

// MaxLevels returns the largest level count in the shape, zero when empty.
func (s Shape) MaxLevels() int {
	highest := 0
	for _, n := range s.Levels {
		if n > highest {
			highest = n
		}
	}
	return highest
}

// NewDefinition starts an empty definition, optionally requesting an array by
// name. Use AddFactor to populate it. The array name is checked when the
// definition is validated; SetArray checks it up front.
func NewDefinition(array string) *Definition {
	return &Definition{Array: strings.TrimSpace(array)}
}

// SetArray replaces the array request. An empty name restores auto-selection.
// The definition is left untouched on error.
func (d *Definition) SetArray(name string) error {
	if d == nil {
		return &ValidationError{Kind: ErrEmptyDefinition, Message: "definition is nil"}
	}
	name = strings.TrimSpace(name)
	if err := CheckArrayName(name); err != nil {
		return err
	}
	d.Array = name
	return nil
}

// CheckArrayName rejects array requests the text format cannot carry.
func CheckArrayName(name string) error {
	if strings.ContainsAny(name, ReservedArrayChars) {
		return &ValidationError{Kind: ErrSyntax, Message: fmt.Sprintf("array name %q contains a reserved character", name)}
	}
	return nil
}

// AddFactor appends a factor, applying the same checks the parser applies to
// a factor line. The definition is left untouched on error.
func (d *Definition) AddFactor(name string, levels ...string) error {
	if d == nil {
		return &ValidationError{Kind: ErrEmptyDefinition, Message: "definition is nil"}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Kind: ErrEmptyName, Message: "factor name is empty"}
	}
	if strings.ContainsAny(name, nameReserved) {
		return &ValidationError{Kind: ErrSyntax, Factor: name, Message: fmt.Sprintf("factor name %q contains a reserved character", name)}
	}
	if len(name) > MaxFactorNameLen {
		return &ValidationError{Kind: ErrLimits, Factor: name, Message: fmt.Sprintf("factor name %q too long (max %d)", name, MaxFactorNameLen)}
	}
	if len(d.Factors) >= MaxFactors {
		return &ValidationError{Kind: ErrLimits, Factor: name, Message: fmt.Sprintf("too many factors (max %d)", MaxFactors)}
	}
	if _, exists := d.Factor(name); exists {
		return &ValidationError{Kind: ErrDuplicateFactor, Factor: name, Message: fmt.Sprintf("duplicate factor %q", name)}
	}
	if len(levels) < 2 {
		return &ValidationError{Kind: ErrInsufficientLevels, Factor: name, Message: fmt.Sprintf("factor %q has %d level(s), need at least 2", name, len(levels))}
	}
	if len(levels) > MaxLevels {
		return &ValidationError{Kind: ErrLimits, Factor: name, Message: fmt.Sprintf("factor %q has %d levels (max %d)", name, len(levels), MaxLevels)}
	}

	cleaned := make([]string, 0, len(levels))
	seen := make(map[string]struct{}, len(levels))
	for _, level := range levels {
		level = strings.TrimSpace(level)
		if level == "" {
			return &ValidationError{Kind: ErrEmptyName, Factor: name, Message: fmt.Sprintf("factor %q has an empty level", name)}
		}
		if strings.ContainsAny(level, levelReserved) {
			return &ValidationError{Kind: ErrSyntax, Factor: name, Message: fmt.Sprintf("level %q contains a reserved character", level)}
		}
		if len(level) > MaxLevelLen {
			return &ValidationError{Kind: ErrLimits, Factor: name, Message: fmt.Sprintf("level %q too long (max %d)", level, MaxLevelLen)}
		}
		if _, dup := seen[level]; dup {
			return &ValidationError{Kind: ErrDuplicateLevel, Factor: name, Message: fmt.Sprintf("factor %q repeats level %q", name, level)}
		}
		seen[level] = struct{}{}
		cleaned = append(cleaned, level)
	}

	d.Factors = append(d.Factors, Factor{Name: name, Levels: cleaned})
	return nil
}

// Factor looks up a factor by its case-sensitive name.
func (d Definition) Factor(name string) (Factor, bool) {
	for _, f := range d.Factors {
		if f.Name == name {
			return f, true
		}
	}
	return Factor{}, false
}

// FactorNames returns factor names in declaration order.
func (d Definition) FactorNames() []string {
	names := make([]string, len(d.Factors))
	for i, f := range d.Factors {
		names[i] = f.Name
	}
	return names
}

// Shape summarises the definition for array selection.
func (d Definition) Shape() Shape {
	levels := make([]int, len(d.Factors))
	for i, f := range d.Factors {
		levels[i] = len(f.Levels)
	}
	return Shape{FactorCount: len(d.Factors), Levels: levels}
}

// MaxLevels is shorthand for Shape().MaxLevels().
func (d Definition) MaxLevels() int {
	return d.Shape().MaxLevels()
}

// Clone returns a deep copy that shares no slices with d.
func (d Definition) Clone() Definition {
	out := Definition{Array: d.Array}
	if d.Factors == nil {
		return out
	}
	out.Factors = make([]Factor, len(d.Factors))
	for i, f := range d.Factors {
		out.Factors[i] = Factor{Name: f.Name, Levels: append([]string(nil), f.Levels...)}
	}
	return out
}

// Release drops the definition's contents. Safe to call more than once.
func (d *Definition) Release() {
	if d == nil {
		return
	}
	d.Factors = nil
	d.Array = ""
}

// Format renders the canonical text form. For a definition that passes
// validation, parsing the result yields a Definition equal to d.
func (d Definition) Format() string {
	var b strings.Builder
	b.WriteString("factors:\n")
	for _, f := range d.Factors {
		b.WriteString("  ")
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(strings.Join(f.Levels, ", "))
		b.WriteByte('\n')
	}
	if d.Array != "" {
		b.WriteString("array: ")
		b.WriteString(d.Array)
		b.WriteByte('\n')
	}
	return b.String()
}

func (d Definition) String() string {
	return d.Format()
}
