package parser

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-taguchi/pkg/design"
)

// locator points at the source line a factor or array entry came from.
// Line is zero when the decoder cannot tell.
type locator struct {
	line int
	text string
}

// collector applies the rules every format shares and builds the Definition
// entry by entry. All failures are *design.ParseError values.
type collector struct {
	def      design.Definition
	seen     map[string]struct{}
	arraySet bool
}

func newCollector() *collector {
	return &collector{seen: make(map[string]struct{})}
}

func (c *collector) fail(kind design.ErrorKind, at locator, format string, args ...any) error {
	return &design.ParseError{
		Kind:    kind,
		Line:    at.line,
		Text:    at.text,
		Message: fmt.Sprintf(format, args...),
	}
}

// factor validates one entry. Levels arrive as raw tokens; they are trimmed
// here so every format treats surrounding whitespace the same way, and empty
// tokens are dropped before the levels are counted.
func (c *collector) factor(at locator, name string, levels []string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return c.fail(design.ErrSyntax, at, "factor name is empty")
	}
	if strings.ContainsAny(name, ":#\r\n") {
		return c.fail(design.ErrSyntax, at, "factor name %q contains a reserved character", name)
	}
	if len(name) > design.MaxFactorNameLen {
		return c.fail(design.ErrLimits, at, "factor name %q too long (max %d)", name, design.MaxFactorNameLen)
	}
	if _, dup := c.seen[name]; dup {
		return c.fail(design.ErrDuplicateFactor, at, "duplicate factor %q", name)
	}
	if len(c.def.Factors) >= design.MaxFactors {
		return c.fail(design.ErrLimits, at, "too many factors (max %d)", design.MaxFactors)
	}

	cleaned := make([]string, 0, len(levels))
	for _, level := range levels {
		level = strings.TrimSpace(level)
		if level == "" {
			continue
		}
		cleaned = append(cleaned, level)
	}
	if len(cleaned) < 2 {
		return c.fail(design.ErrInsufficientLevels, at, "factor %q has %d level(s), need at least 2", name, len(cleaned))
	}
	if len(cleaned) > design.MaxLevels {
		return c.fail(design.ErrLimits, at, "factor %q has %d levels (max %d)", name, len(cleaned), design.MaxLevels)
	}

	labels := make(map[string]struct{}, len(cleaned))
	for _, level := range cleaned {
		if strings.ContainsAny(level, ",#\r\n") {
			return c.fail(design.ErrSyntax, at, "level %q contains a reserved character", level)
		}
		if len(level) > design.MaxLevelLen {
			return c.fail(design.ErrLimits, at, "level %q too long (max %d)", level, design.MaxLevelLen)
		}
		if _, dup := labels[level]; dup {
			return c.fail(design.ErrSyntax, at, "factor %q repeats level %q", name, level)
		}
		labels[level] = struct{}{}
	}

	c.seen[name] = struct{}{}
	c.def.Factors = append(c.def.Factors, design.Factor{Name: name, Levels: cleaned})
	return nil
}

// array records the explicit array request verbatim, minus whitespace.
func (c *collector) array(at locator, value string) error {
	value = strings.TrimSpace(value)
	if c.arraySet {
		return c.fail(design.ErrSyntax, at, "array declared more than once")
	}
	if value == "" {
		return c.fail(design.ErrSyntax, at, "array name is empty")
	}
	if strings.ContainsAny(value, design.ReservedArrayChars) {
		return c.fail(design.ErrSyntax, at, "array name %q contains a reserved character", value)
	}
	c.arraySet = true
	c.def.Array = value
	return nil
}

func (c *collector) definition() design.Definition {
	return c.def
}
