// Package taguchi turns experiment definitions into balanced run plans on
// standard orthogonal arrays.
//
// The functions in this file are the flat programmatic boundary: parse,
// validate, list arrays, generate, suggest. Failures surface as typed errors
// from pkg/design; ErrorMessage renders them into a bounded message for
// callers that need a fixed-size channel.
package taguchi

import (
	"errors"
	"unicode/utf8"

	"github.com/goliatone/go-taguchi/internal/definition/parser"
	"github.com/goliatone/go-taguchi/pkg/catalog"
	"github.com/goliatone/go-taguchi/pkg/design"
	"github.com/goliatone/go-taguchi/pkg/generator"
	"github.com/goliatone/go-taguchi/pkg/selector"
	"github.com/goliatone/go-taguchi/pkg/validation"
)

// ErrorSize bounds messages produced by ErrorMessage, terminator included.
const ErrorSize = 256

type (
	Definition = design.Definition
	Factor     = design.Factor
	Run        = design.Run
	ErrorKind  = design.ErrorKind
)

var errNilDefinition = &design.ValidationError{Kind: design.ErrEmptyDefinition, Message: "definition is nil"}

// ParseDefinition parses the line format into a new Definition. It performs
// no array lookups; an unknown array name surfaces at generation.
func ParseDefinition(text string) (*Definition, error) {
	def, err := parser.ParseText(text)
	if err != nil {
		return nil, err
	}
	return &def, nil
}

// CreateDefinition starts an empty definition for programmatic construction
// with (*Definition).AddFactor.
func CreateDefinition(array string) *Definition {
	return design.NewDefinition(array)
}

// ValidateDefinition runs the structural checks and reports the first
// violation as a bounded message.
func ValidateDefinition(def *Definition) (bool, string) {
	if def == nil {
		return false, ErrorMessage(errNilDefinition)
	}
	if err := validation.Definition(*def); err != nil {
		return false, ErrorMessage(err)
	}
	return true, ""
}

// ListArrays returns catalog array names in declaration order.
func ListArrays() []string {
	return catalog.Default().Names()
}

// ArrayInfo reports the dimensions of a catalog array.
func ArrayInfo(name string) (runs, columns, levels int, ok bool) {
	d, found := catalog.Default().Find(name)
	if !found {
		return 0, 0, 0, false
	}
	return d.Runs, d.Columns, d.Levels, true
}

// GenerateRuns validates def, resolves its array (explicit or automatic) and
// returns one Run per array row.
func GenerateRuns(def *Definition) ([]Run, error) {
	if def == nil {
		return nil, &design.GenerationError{Kind: design.ErrEmptyDefinition, Message: "definition is nil"}
	}
	if len(def.Factors) == 0 {
		return generator.Generate(*def, catalog.Descriptor{})
	}
	if err := validation.Definition(*def); err != nil {
		return nil, err
	}
	array, err := selector.Resolve(catalog.Default(), *def, "")
	if err != nil {
		return nil, err
	}
	return generator.Generate(*def, array)
}

// ReleaseRuns clears a run sequence so retained references stop pinning the
// assignments. Safe on nil and on repeated calls.
func ReleaseRuns(runs []Run) {
	for i := range runs {
		runs[i] = Run{}
	}
}

// SuggestArray names the array auto-selection would pick, ignoring any array
// def requests.
func SuggestArray(def *Definition) (string, error) {
	if def == nil {
		return "", errNilDefinition
	}
	return selector.Suggest(catalog.Default(), *def)
}

// ErrorMessage renders err for a fixed-size channel: at most ErrorSize-1
// bytes, cut on a rune boundary. Wrapping prefixes are dropped when err
// carries a typed cause.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := design.Cause(err).Error()
	limit := ErrorSize - 1
	if len(msg) <= limit {
		return msg
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(msg[cut]) {
		cut--
	}
	return msg[:cut]
}

// KindOf reports the ErrorKind carried by err, or "" for foreign errors.
func KindOf(err error) ErrorKind {
	return design.KindOf(err)
}

// IsKind reports whether err carries kind.
func IsKind(err error, kind ErrorKind) bool {
	return errors.Is(err, kind)
}
