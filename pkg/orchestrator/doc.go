// Package orchestrator wires the loader, parser, validator, selector,
// generator and renderer stages into a single pipeline with functional
// options and lazy defaults.
package orchestrator
