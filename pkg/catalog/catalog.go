package catalog

import (
	"fmt"
	"sync"
)

// Catalog is an immutable, ordered registry of orthogonal arrays keyed by
// name. Declaration order drives listing and the final selection tie-break.
type Catalog struct {
	entries []Descriptor
	index   map[string]int
}

type entrySpec struct {
	name   string
	levels int
	table  [][]int
	// power arrays: GF(base)^exp
	base, exp int
}

var standardEntries = []entrySpec{
	{name: "L4", levels: 2, table: tableL4},
	{name: "L8", levels: 2, table: tableL8},
	{name: "L9", levels: 3, table: tableL9},
	{name: "L16", levels: 4, base: 4, exp: 2},
	{name: "L16b", levels: 2, base: 2, exp: 4},
	{name: "L18", levels: 3, table: tableL18},
	{name: "L25", levels: 5, base: 5, exp: 2},
	{name: "L27", levels: 3, base: 3, exp: 3},
	{name: "L32", levels: 2, base: 2, exp: 5},
	{name: "L49", levels: 7, base: 7, exp: 2},
	{name: "L64", levels: 2, base: 2, exp: 6},
	{name: "L64b", levels: 4, base: 4, exp: 3},
	{name: "L81", levels: 3, base: 3, exp: 4},
	{name: "L125", levels: 5, base: 5, exp: 3},
	{name: "L128", levels: 2, base: 2, exp: 7},
	{name: "L243", levels: 3, base: 3, exp: 5},
	{name: "L256", levels: 2, base: 2, exp: 8},
	{name: "L512", levels: 2, base: 2, exp: 9},
	{name: "L625", levels: 5, base: 5, exp: 4},
	{name: "L729", levels: 3, base: 3, exp: 6},
	{name: "L1024", levels: 2, base: 2, exp: 10},
	{name: "L2187", levels: 3, base: 3, exp: 7},
	{name: "L3125", levels: 5, base: 5, exp: 5},
}

// verifyLimit bounds the power arrays New checks pair by pair. Above it the
// GF construction is trusted: any two distinct canonical vectors are linearly
// independent, which makes every column pair balanced.
const verifyLimit = 256

var defaultCatalog = sync.OnceValue(MustNew)

// Default returns the process-wide standard catalog, built on first use.
func Default() *Catalog {
	return defaultCatalog()
}

// New builds the standard catalog. Tables and small power arrays are
// verified once here.
func New() (*Catalog, error) {
	descriptors := make([]Descriptor, 0, len(standardEntries))
	for _, spec := range standardEntries {
		d, err := spec.build()
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, d)
	}
	return assemble(descriptors)
}

// MustNew panics if the standard catalog fails verification.
func MustNew() *Catalog {
	c, err := New()
	if err != nil {
		panic(err)
	}
	return c
}

// Build assembles a catalog from descriptors in the given order, rejecting
// duplicate names and arrays that are not orthogonal.
func Build(descriptors ...Descriptor) (*Catalog, error) {
	checked := make([]Descriptor, len(descriptors))
	for i, d := range descriptors {
		d.constructed = false
		checked[i] = d
	}
	return assemble(checked)
}

func assemble(descriptors []Descriptor) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Descriptor, 0, len(descriptors)),
		index:   make(map[string]int, len(descriptors)),
	}
	for _, d := range descriptors {
		if d.rows == nil {
			return nil, fmt.Errorf("catalog: descriptor %q was not constructed with NewDescriptor", d.Name)
		}
		if err := d.Valid(); err != nil {
			return nil, err
		}
		if _, exists := c.index[d.Name]; exists {
			return nil, fmt.Errorf("catalog: duplicate array %q", d.Name)
		}
		if !d.constructed || d.Runs <= verifyLimit {
			if err := d.Orthogonal(); err != nil {
				return nil, err
			}
		}
		c.index[d.Name] = len(c.entries)
		c.entries = append(c.entries, d)
	}
	return c, nil
}

// NewDescriptor validates a level-index matrix and wraps it in a Descriptor.
// The rows are copied.
func NewDescriptor(name string, levels int, rows [][]int) (Descriptor, error) {
	packed, err := pack(name, levels, rows)
	if err != nil {
		return Descriptor{}, err
	}
	return newDescriptor(name, "table", levels, packed)
}

func (s entrySpec) build() (Descriptor, error) {
	if s.table != nil {
		return NewDescriptor(s.name, s.levels, s.table)
	}
	rows, err := powerArray(s.base, s.exp)
	if err != nil {
		return Descriptor{}, fmt.Errorf("catalog: build %s: %w", s.name, err)
	}
	d, err := newDescriptor(s.name, fmt.Sprintf("GF(%d)^%d", s.base, s.exp), s.levels, rows)
	if err != nil {
		return Descriptor{}, err
	}
	d.constructed = true
	return d, nil
}

// Find looks up an array by exact name.
func (c *Catalog) Find(name string) (Descriptor, bool) {
	if c == nil {
		return Descriptor{}, false
	}
	idx, ok := c.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return c.entries[idx], true
}

// All returns every descriptor in declaration order.
func (c *Catalog) All() []Descriptor {
	if c == nil {
		return nil
	}
	return append([]Descriptor(nil), c.entries...)
}

// Names lists array names in declaration order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.entries))
	for i, d := range c.entries {
		names[i] = d.Name
	}
	return names
}

// Len reports the number of arrays in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}
