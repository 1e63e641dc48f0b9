package parser

import (
	"strings"

	"github.com/goliatone/go-taguchi/pkg/design"
)

// ParseText parses the line format:
//
//	factors:
//	  <name>: <level>, <level>, ...
//	array: <name>
//
// Blank lines and # comments are ignored anywhere. The parser performs no
// I/O and never consults the catalog.
func ParseText(text string) (design.Definition, error) {
	c := newCollector()
	inFactors := false
	seenHeader := false

	for i, raw := range strings.Split(text, "\n") {
		raw = strings.TrimRight(raw, "\r")
		at := locator{line: i + 1, text: strings.TrimSpace(raw)}

		content := raw
		if idx := strings.IndexByte(content, '#'); idx >= 0 {
			content = content[:idx]
		}
		if strings.TrimSpace(content) == "" {
			continue
		}
		indented := content[0] == ' ' || content[0] == '\t'
		trimmed := strings.TrimSpace(content)

		key, value, found := strings.Cut(trimmed, ":")
		if !found {
			if inFactors {
				return design.Definition{}, c.fail(design.ErrSyntax, at, "expected '<name>: <level>, <level>'")
			}
			return design.Definition{}, c.fail(design.ErrSyntax, at, "unexpected line outside the factors section")
		}
		key = strings.TrimSpace(key)

		if key == "array" {
			if err := c.array(at, value); err != nil {
				return design.Definition{}, err
			}
			inFactors = false
			continue
		}
		if !indented && key == "factors" {
			if strings.TrimSpace(value) != "" {
				return design.Definition{}, c.fail(design.ErrSyntax, at, "factors section takes no inline value")
			}
			if seenHeader {
				return design.Definition{}, c.fail(design.ErrSyntax, at, "factors section declared more than once")
			}
			seenHeader = true
			inFactors = true
			continue
		}

		if !inFactors {
			return design.Definition{}, c.fail(design.ErrSyntax, at, "unknown key %q", key)
		}
		if err := c.factor(at, key, strings.Split(value, ",")); err != nil {
			return design.Definition{}, err
		}
	}

	return c.definition(), nil
}
