package taguchi

import (
	"context"

	pkgdefinition "github.com/goliatone/go-taguchi/pkg/definition"
	"github.com/goliatone/go-taguchi/pkg/orchestrator"
	"github.com/goliatone/go-taguchi/pkg/render"
)

// RenderOptions describes per-request presentation settings.
type RenderOptions = render.RenderOptions

// Plan is a resolved experiment: definition, chosen array and runs.
type Plan = render.Plan

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate loads the definition at source, generates its runs and renders them
// with the named renderer. An empty renderer name means "text".
func Generate(ctx context.Context, source pkgdefinition.Source, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		Renderer: rendererName,
	})
}

// GenerateFromDocument renders runs for a pre-loaded document, bypassing the
// loader stage.
func GenerateFromDocument(ctx context.Context, doc pkgdefinition.Document, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Renderer: rendererName,
	})
}
