package render

// RenderOptions describe per-request presentation knobs. Renderers ignore the
// fields that do not apply to them.
type RenderOptions struct {
	// Indent pretty prints structured output (JSON).
	Indent bool
	// OmitHeader drops the summary line of the text renderer and the header
	// record of the CSV renderer.
	OmitHeader bool
	// Title overrides the heading of document style renderers (HTML).
	Title string
}
