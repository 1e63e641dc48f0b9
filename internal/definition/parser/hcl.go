package parser

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/goliatone/go-taguchi/pkg/design"
)

// documentSchema is the top-level HCL layout:
//
//	array = "L9"
//	factor "cache_size" {
//	  levels = ["64M", "128M", "256M"]
//	}
var documentSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "array"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "factor", LabelNames: []string{"name"}},
	},
}

var factorSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "levels", Required: true},
	},
}

func parseHCL(raw []byte, filename string) (design.Definition, error) {
	c := newCollector()
	if filename == "" {
		filename = "definition.hcl"
	}

	file, diags := hclparse.NewParser().ParseHCL(raw, filename)
	if diags.HasErrors() {
		return design.Definition{}, diagError(diags)
	}

	content, diags := file.Body.Content(documentSchema)
	if diags.HasErrors() {
		return design.Definition{}, diagError(diags)
	}

	for _, block := range content.Blocks.OfType("factor") {
		at := locator{line: block.DefRange.Start.Line, text: block.Labels[0]}

		body, diags := block.Body.Content(factorSchema)
		if diags.HasErrors() {
			return design.Definition{}, diagError(diags)
		}
		levels, err := hclLevels(c, body.Attributes["levels"])
		if err != nil {
			return design.Definition{}, err
		}
		if err := c.factor(at, block.Labels[0], levels); err != nil {
			return design.Definition{}, err
		}
	}

	if attr, ok := content.Attributes["array"]; ok {
		var name string
		if diags := gohcl.DecodeExpression(attr.Expr, nil, &name); diags.HasErrors() {
			return design.Definition{}, diagError(diags)
		}
		if err := c.array(locator{line: attr.Range.Start.Line, text: name}, name); err != nil {
			return design.Definition{}, err
		}
	}

	return c.definition(), nil
}

// hclLevels accepts a list or tuple of primitives, or a comma separated
// string. Numbers and bools become their string form through cty/convert.
func hclLevels(c *collector, attr *hcl.Attribute) ([]string, error) {
	at := locator{line: attr.Range.Start.Line, text: "levels"}

	value, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, diagError(diags)
	}
	if value.IsNull() || !value.IsWhollyKnown() {
		return nil, c.fail(design.ErrSyntax, at, "levels must be a known value")
	}

	ty := value.Type()
	if ty == cty.String {
		return strings.Split(value.AsString(), ","), nil
	}
	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		return nil, c.fail(design.ErrSyntax, at, "levels must be a list, got %s", ty.FriendlyName())
	}

	out := make([]string, 0, value.LengthInt())
	for it := value.ElementIterator(); it.Next(); {
		_, element := it.Element()
		if element.IsNull() {
			out = append(out, "")
			continue
		}
		converted, err := convert.Convert(element, cty.String)
		if err != nil {
			return nil, c.fail(design.ErrSyntax, at, "level %d: %s", len(out)+1, err)
		}
		out = append(out, converted.AsString())
	}
	return out, nil
}

func diagError(diags hcl.Diagnostics) error {
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		err := &design.ParseError{Kind: design.ErrSyntax, Message: diag.Summary}
		if diag.Detail != "" {
			err.Message = diag.Summary + ": " + diag.Detail
		}
		if diag.Subject != nil {
			err.Line = diag.Subject.Start.Line
		}
		return err
	}
	return &design.ParseError{Kind: design.ErrSyntax, Message: diags.Error()}
}
