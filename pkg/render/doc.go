// Package render defines the Renderer contract shared by the run sheet
// formats, the Plan they consume and a concurrency-safe registry.
package render
