// Package htmlsheet renders a plan as an HTML run sheet fragment: a heading,
// an array summary and one table row per run. Output goes through a
// bluemonday policy that keeps only table and heading markup.
package htmlsheet

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-taguchi/pkg/render"
	"github.com/goliatone/go-taguchi/pkg/render/template"
	"github.com/goliatone/go-taguchi/pkg/render/template/pongo"
)

const (
	name            = "html"
	defaultTemplate = "sheet.html"
	defaultTitle    = "Experiment run sheet"
)

// Option configures the renderer.
type Option func(*Renderer)

// WithTemplatesFS replaces the embedded templates. The FS must contain
// sheet.html.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(r *Renderer) {
		r.templates = files
	}
}

// WithTemplateRenderer injects a ready engine, bypassing WithTemplatesFS.
func WithTemplateRenderer(engine template.TemplateRenderer) Option {
	return func(r *Renderer) {
		r.engine = engine
	}
}

// Renderer produces sanitised HTML.
type Renderer struct {
	engine    template.TemplateRenderer
	templates fs.FS
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer, building a pongo2 engine over the embedded
// templates unless one is injected.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}

	if r.engine == nil {
		files := r.templates
		if files == nil {
			files = Templates()
		}
		engine, err := pongo.New(pongo.WithFS(files))
		if err != nil {
			return nil, fmt.Errorf("htmlsheet: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, plan render.Plan, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := r.engine.RenderTemplate(defaultTemplate, viewData(plan, options))
	if err != nil {
		return nil, fmt.Errorf("htmlsheet: %w", err)
	}
	return sheetSanitizer().SanitizeBytes([]byte(out)), nil
}

func viewData(plan render.Plan, options render.RenderOptions) map[string]any {
	title := options.Title
	if title == "" {
		title = defaultTitle
	}

	factors := plan.Factors()
	runs := make([]map[string]any, 0, len(plan.Runs))
	for _, run := range plan.Runs {
		values := make([]string, len(factors))
		for i, factor := range factors {
			values[i], _ = run.Value(factor)
		}
		runs = append(runs, map[string]any{"id": run.ID, "values": values})
	}

	return map[string]any{
		"title":   title,
		"factors": factors,
		"runs":    runs,
		"array": map[string]any{
			"name":    plan.Array.Name,
			"runs":    plan.Array.Runs,
			"columns": plan.Array.Columns,
			"levels":  plan.Array.Levels,
		},
		"imbalanced": plan.Imbalanced,
	}
}
