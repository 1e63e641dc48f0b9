package parser

import (
	"context"
	"fmt"
	"path"

	pkgdefinition "github.com/goliatone/go-taguchi/pkg/definition"
	"github.com/goliatone/go-taguchi/pkg/design"
)

// Parser implements pkgdefinition.Parser by dispatching on the document
// format.
type Parser struct {
	options pkgdefinition.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ pkgdefinition.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgdefinition.ParserOptions) pkgdefinition.Parser {
	if options.DefaultFormat == pkgdefinition.FormatUnknown {
		options.DefaultFormat = pkgdefinition.FormatText
	}
	return &Parser{options: options}
}

// Parse decodes doc into a Definition. Errors are *design.ParseError values
// returned unwrapped so callers see the kind and line directly.
func (p *Parser) Parse(ctx context.Context, doc pkgdefinition.Document) (design.Definition, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return design.Definition{}, err
	}

	format := doc.Format()
	if format == pkgdefinition.FormatUnknown {
		format = p.options.DefaultFormat
	}

	raw := doc.Raw()
	switch format {
	case pkgdefinition.FormatText:
		return ParseText(string(raw))
	case pkgdefinition.FormatYAML:
		return parseYAML(raw)
	case pkgdefinition.FormatJSON:
		return parseJSON(raw)
	case pkgdefinition.FormatHCL:
		return parseHCL(raw, path.Base(doc.Location()))
	default:
		return design.Definition{}, fmt.Errorf("definition parser: unsupported format %q", format)
	}
}
