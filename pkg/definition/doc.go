// Package definition exposes the public contracts for the loader and parser
// stages that turn an experiment definition document into a design.Definition.
// Implementations live under internal/definition so format libraries (yaml.v3,
// kin-openapi, hcl) stay out of the public API.
package definition
