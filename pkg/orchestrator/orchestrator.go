package orchestrator

import (
	"context"
	"errors"
	"fmt"

	internalLoader "github.com/goliatone/go-taguchi/internal/definition/loader"
	internalParser "github.com/goliatone/go-taguchi/internal/definition/parser"
	"github.com/goliatone/go-taguchi/pkg/catalog"
	pkgdefinition "github.com/goliatone/go-taguchi/pkg/definition"
	"github.com/goliatone/go-taguchi/pkg/design"
	"github.com/goliatone/go-taguchi/pkg/generator"
	"github.com/goliatone/go-taguchi/pkg/render"
	"github.com/goliatone/go-taguchi/pkg/renderers/csvfmt"
	"github.com/goliatone/go-taguchi/pkg/renderers/htmlsheet"
	"github.com/goliatone/go-taguchi/pkg/renderers/jsonfmt"
	"github.com/goliatone/go-taguchi/pkg/renderers/text"
	"github.com/goliatone/go-taguchi/pkg/renderers/yamlfmt"
	"github.com/goliatone/go-taguchi/pkg/selector"
	"github.com/goliatone/go-taguchi/pkg/validation"
)

const defaultRendererName = "text"

// Plan is the resolved experiment handed to renderers.
type Plan = render.Plan

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom definition loader.
func WithLoader(loader pkgdefinition.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom definition parser.
func WithParser(parser pkgdefinition.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithCatalog replaces the standard array catalog.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(o *Orchestrator) {
		o.catalog = cat
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that runs after parsing.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// Orchestrator coordinates the pipeline from definition document to rendered
// run sheet. Missing dependencies fall back to the built-in implementations.
type Orchestrator struct {
	loader          pkgdefinition.Loader
	parser          pkgdefinition.Parser
	catalog         *catalog.Catalog
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	initialiseErr   error
	defaultsApplied bool
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs of a pipeline run.
type Request struct {
	// Source identifies where the definition lives. Optional when Document is
	// supplied.
	Source pkgdefinition.Source

	// Document bypasses the loader when the payload is already in memory.
	Document *pkgdefinition.Document

	// Format forces the document syntax, overriding extension detection.
	Format pkgdefinition.Format

	// Array overrides the array named in the definition. Empty keeps the
	// definition's choice, which may itself be auto-selection.
	Array string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request presentation settings.
	RenderOptions render.RenderOptions
}

// Catalog exposes the array catalog in use.
func (o *Orchestrator) Catalog() *catalog.Catalog {
	return o.catalog
}

// Registry exposes the renderer registry in use.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Definition loads, parses, transforms and structurally validates the
// requested document.
func (o *Orchestrator) Definition(ctx context.Context, req Request) (design.Definition, error) {
	if err := o.ready(ctx); err != nil {
		return design.Definition{}, err
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return design.Definition{}, err
	}

	def, err := o.parser.Parse(ctx, doc.WithFormat(req.Format))
	if err != nil {
		return design.Definition{}, fmt.Errorf("orchestrator: parse definition: %w", err)
	}

	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &def); err != nil {
			return design.Definition{}, fmt.Errorf("orchestrator: transform definition: %w", err)
		}
	}

	if err := validation.Definition(def); err != nil {
		return design.Definition{}, fmt.Errorf("orchestrator: validate definition: %w", err)
	}
	return def, nil
}

// Plan runs the pipeline up to run generation. No partial plan is returned
// on failure.
func (o *Orchestrator) Plan(ctx context.Context, req Request) (Plan, error) {
	def, err := o.Definition(ctx, req)
	if err != nil {
		return Plan{}, err
	}
	return o.PlanDefinition(ctx, def, req.Array)
}

// PlanDefinition selects an array for an already parsed definition and
// generates its runs. A non-empty array overrides def.Array.
func (o *Orchestrator) PlanDefinition(ctx context.Context, def design.Definition, array string) (Plan, error) {
	if err := o.ready(ctx); err != nil {
		return Plan{}, err
	}

	desc, err := selector.Resolve(o.catalog, def, array)
	if err != nil {
		return Plan{}, fmt.Errorf("orchestrator: select array: %w", err)
	}

	runs, err := generator.Generate(def, desc)
	if err != nil {
		return Plan{}, fmt.Errorf("orchestrator: generate runs: %w", err)
	}

	return Plan{
		Definition: def,
		Array:      desc,
		Runs:       runs,
		Imbalanced: generator.Imbalanced(def, desc),
	}, nil
}

// Generate executes the full pipeline and returns the rendered bytes along
// with the renderer's content type.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	out, _, err := o.GenerateWithType(ctx, req)
	return out, err
}

// GenerateWithType is Generate plus the content type of the renderer used.
func (o *Orchestrator) GenerateWithType(ctx context.Context, req Request) ([]byte, string, error) {
	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, "", err
	}

	plan, err := o.Plan(ctx, req)
	if err != nil {
		return nil, "", err
	}

	output, err := renderer.Render(ctx, plan, req.RenderOptions)
	if err != nil {
		return nil, "", fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, renderer.ContentType(), nil
}

// Suggest returns the array auto-selection picks for the requested
// definition, ignoring any array the definition names.
func (o *Orchestrator) Suggest(ctx context.Context, req Request) (catalog.Descriptor, error) {
	candidates, err := o.Candidates(ctx, req)
	if err != nil {
		return catalog.Descriptor{}, err
	}
	return candidates[0], nil
}

// Candidates lists every array able to host the definition, best first. It
// fails with NoSuitableArray when the list would be empty.
func (o *Orchestrator) Candidates(ctx context.Context, req Request) ([]catalog.Descriptor, error) {
	def, err := o.Definition(ctx, req)
	if err != nil {
		return nil, err
	}
	if _, err := selector.Suggest(o.catalog, def); err != nil {
		return nil, fmt.Errorf("orchestrator: select array: %w", err)
	}
	return selector.Candidates(o.catalog, def.Shape()), nil
}

// Validate reports whether the requested definition parses and passes the
// structural checks. Only loader failures are returned as errors; definition
// problems are described by the Result.
func (o *Orchestrator) Validate(ctx context.Context, req Request) (validation.Result, error) {
	if err := o.ready(ctx); err != nil {
		return validation.Result{}, err
	}
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return validation.Result{}, err
	}

	def, err := o.parser.Parse(ctx, doc.WithFormat(req.Format))
	if err != nil {
		if design.KindOf(err) == "" {
			return validation.Result{}, fmt.Errorf("orchestrator: parse definition: %w", err)
		}
		return validation.Failed(err), nil
	}
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &def); err != nil {
			return validation.Result{}, fmt.Errorf("orchestrator: transform definition: %w", err)
		}
	}
	return validation.Check(def), nil
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
	}
	return o.initialiseErr
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgdefinition.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgdefinition.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgdefinition.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(pkgdefinition.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgdefinition.NewParserOptions())
	}
	if o.catalog == nil {
		o.catalog = catalog.Default()
	}
	if o.registry == nil {
		registry, err := NewDefaultRegistry()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}

// NewDefaultRegistry returns a registry holding every built-in renderer:
// text, json, csv, yaml and html.
func NewDefaultRegistry() (*render.Registry, error) {
	sheet, err := htmlsheet.New()
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(
		text.New(),
		jsonfmt.New(),
		csvfmt.New(),
		yamlfmt.New(),
		sheet,
	)
}
