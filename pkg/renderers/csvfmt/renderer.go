// Package csvfmt renders a plan as CSV with a run_id column followed by one
// column per factor.
package csvfmt

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"github.com/goliatone/go-taguchi/pkg/render"
)

const name = "csv"

// Renderer produces a CSV run sheet.
type Renderer struct {
	comma rune
}

var _ render.Renderer = (*Renderer)(nil)

// Option configures the CSV renderer.
type Option func(*Renderer)

// WithComma swaps the field delimiter, e.g. ';' for spreadsheet locales.
func WithComma(comma rune) Option {
	return func(r *Renderer) {
		r.comma = comma
	}
}

// New returns a CSV renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{comma: ','}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return name
}

func (r *Renderer) ContentType() string {
	return "text/csv; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, plan render.Plan, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = r.comma

	factors := plan.Factors()
	if !options.OmitHeader {
		if err := w.Write(append([]string{"run_id"}, factors...)); err != nil {
			return nil, err
		}
	}

	record := make([]string, len(factors)+1)
	for _, run := range plan.Runs {
		record[0] = strconv.Itoa(run.ID)
		for i, factor := range factors {
			record[i+1], _ = run.Value(factor)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
