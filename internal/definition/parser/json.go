package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-taguchi/pkg/design"
)

// definitionSchema describes the JSON document shape. Level counts and
// duplicates are left to the collector so they report the usual kinds.
var definitionSchema = sync.OnceValue(func() *openapi3.Schema {
	closed := false

	level := openapi3.NewAnyOfSchema(
		openapi3.NewStringSchema(),
		openapi3.NewFloat64Schema(),
		openapi3.NewBoolSchema(),
	)

	factor := openapi3.NewObjectSchema().
		WithProperty("name", openapi3.NewStringSchema()).
		WithProperty("levels", openapi3.NewArraySchema().WithItems(level))
	factor.Required = []string{"name", "levels"}
	factor.AdditionalProperties = openapi3.AdditionalProperties{Has: &closed}

	root := openapi3.NewObjectSchema().
		WithProperty("factors", openapi3.NewArraySchema().WithItems(factor)).
		WithProperty("array", openapi3.NewStringSchema())
	root.AdditionalProperties = openapi3.AdditionalProperties{Has: &closed}
	return root
})

type jsonDocument struct {
	Factors []jsonFactor `json:"factors"`
	Array   *string      `json:"array"`
}

type jsonFactor struct {
	Name   string `json:"name"`
	Levels []any  `json:"levels"`
}

// parseJSON checks the payload against definitionSchema before decoding.
// JSON carries no line information past the decoder, so only syntax errors
// get a line number.
func parseJSON(raw []byte) (design.Definition, error) {
	c := newCollector()
	if len(bytes.TrimSpace(raw)) == 0 {
		return c.definition(), nil
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return design.Definition{}, jsonSyntaxError(raw, err)
	}
	if err := definitionSchema().VisitJSON(generic); err != nil {
		return design.Definition{}, schemaError(err)
	}

	var doc jsonDocument
	if err := decodeJSON(raw, &doc); err != nil {
		return design.Definition{}, jsonSyntaxError(raw, err)
	}

	for i, factor := range doc.Factors {
		levels := make([]string, len(factor.Levels))
		for j, level := range factor.Levels {
			levels[j] = jsonScalar(level)
		}
		at := locator{text: fmt.Sprintf("factors[%d]", i)}
		if err := c.factor(at, factor.Name, levels); err != nil {
			return design.Definition{}, err
		}
	}
	if doc.Array != nil {
		if err := c.array(locator{text: "array"}, *doc.Array); err != nil {
			return design.Definition{}, err
		}
	}
	return c.definition(), nil
}

func decodeJSON(raw []byte, target any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(target)
}

func jsonScalar(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func jsonSyntaxError(raw []byte, err error) error {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		offset    int64
	)
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	}
	return &design.ParseError{
		Kind:    design.ErrSyntax,
		Line:    lineAt(raw, offset),
		Message: err.Error(),
	}
}

func schemaError(err error) error {
	var schemaErr *openapi3.SchemaError
	if !errors.As(err, &schemaErr) {
		return &design.ParseError{Kind: design.ErrSyntax, Message: err.Error()}
	}
	pointer := "/" + strings.Join(schemaErr.JSONPointer(), "/")
	return &design.ParseError{
		Kind:    design.ErrSyntax,
		Text:    pointer,
		Message: fmt.Sprintf("invalid definition at %s: %s", pointer, schemaErr.Reason),
	}
}

// lineAt converts a byte offset into a 1-based line number, zero when the
// offset is unknown.
func lineAt(raw []byte, offset int64) int {
	if offset <= 0 {
		return 0
	}
	if offset > int64(len(raw)) {
		offset = int64(len(raw))
	}
	return bytes.Count(raw[:offset], []byte("\n")) + 1
}
