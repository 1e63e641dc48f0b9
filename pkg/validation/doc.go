// Package validation cross-checks definitions at the two points the pipeline
// needs it: structurally after parsing, and for capacity once an array has
// been chosen. Checks never mutate their inputs and stop at the first
// violation so every message has a single cause.
package validation
