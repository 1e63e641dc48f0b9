package render

import (
	"context"
	"io"

	"github.com/goliatone/go-taguchi/pkg/catalog"
	"github.com/goliatone/go-taguchi/pkg/design"
)

// Plan is a fully resolved experiment: the definition, the array it runs on
// and the generated runs in row order.
type Plan struct {
	Definition design.Definition
	Array      catalog.Descriptor
	Runs       []design.Run
	// Imbalanced lists factors whose level count does not divide the array's
	// level count; their levels appear with unequal frequency.
	Imbalanced []string
}

// Factors returns the factor names in declaration order.
func (p Plan) Factors() []string {
	return p.Definition.FactorNames()
}

// Renderer converts a Plan into a byte representation (text, JSON, CSV, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, plan Plan, options RenderOptions) ([]byte, error)
}

// WriteTo renders plan and copies the result to w.
func WriteTo(ctx context.Context, w io.Writer, renderer Renderer, plan Plan, options RenderOptions) error {
	out, err := renderer.Render(ctx, plan, options)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
