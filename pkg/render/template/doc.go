// Package template defines the template engine seam used by document style
// renderers. The pongo subpackage provides the pongo2 implementation.
package template
