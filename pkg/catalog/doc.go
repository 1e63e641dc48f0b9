// Package catalog holds the registry of standard orthogonal arrays. Every
// entry is homogeneous (all columns share one level count) and satisfies the
// strength-2 property: for any two columns each ordered pair of level indices
// appears equally often. Entries are built and verified once when a Catalog is
// constructed and are read-only afterwards, so a Catalog can be shared across
// goroutines without locking.
package catalog
