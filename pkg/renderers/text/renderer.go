// Package text renders a plan as the plain listing printed by the CLI:
//
//	Generated 4 experiment runs:
//	Run 1: temp=350F, pressure=10
package text

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goliatone/go-taguchi/pkg/render"
)

const name = "text"

// Renderer produces the human readable run listing.
type Renderer struct{}

var _ render.Renderer = (*Renderer)(nil)

// New returns a text renderer.
func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Name() string {
	return name
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render writes one line per run with factors in declaration order.
func (r *Renderer) Render(ctx context.Context, plan render.Plan, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if !options.OmitHeader {
		fmt.Fprintf(&buf, "Generated %d experiment runs:\n", len(plan.Runs))
	}
	for _, run := range plan.Runs {
		fmt.Fprintf(&buf, "Run %d: ", run.ID)
		for i := 0; i < run.FactorCount(); i++ {
			factor, _ := run.FactorAt(i)
			value, _ := run.Value(factor)
			if i > 0 {
				buf.WriteString(", ")
			}
			fmt.Fprintf(&buf, "%s=%s", factor, value)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
