package parser

import (
	"errors"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-taguchi/pkg/design"
)

// parseYAML accepts either a sequence of {name, levels} mappings or a mapping
// of name to levels under "factors". Levels may be a sequence of scalars or a
// comma separated string. Line numbers come from the yaml.v3 node tree.
func parseYAML(raw []byte) (design.Definition, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return design.Definition{}, yamlSyntaxError(err)
	}

	c := newCollector()
	if root.Kind == 0 || len(root.Content) == 0 {
		return c.definition(), nil
	}
	doc := root.Content[0]
	if doc.Kind == yaml.ScalarNode && doc.Tag == "!!null" {
		return c.definition(), nil
	}
	if doc.Kind != yaml.MappingNode {
		return design.Definition{}, c.fail(design.ErrSyntax, nodeAt(doc), "definition must be a mapping")
	}

	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]
		switch key.Value {
		case "factors":
			if err := yamlFactors(c, value); err != nil {
				return design.Definition{}, err
			}
		case "array":
			if value.Kind != yaml.ScalarNode {
				return design.Definition{}, c.fail(design.ErrSyntax, nodeAt(value), "array must be a scalar")
			}
			if err := c.array(nodeAt(key), scalarValue(value)); err != nil {
				return design.Definition{}, err
			}
		default:
			return design.Definition{}, c.fail(design.ErrSyntax, nodeAt(key), "unknown key %q", key.Value)
		}
	}

	return c.definition(), nil
}

func yamlFactors(c *collector, node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil
		}
	case yaml.SequenceNode:
		for _, item := range node.Content {
			if err := yamlFactorItem(c, item); err != nil {
				return err
			}
		}
		return nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			name, levels := node.Content[i], node.Content[i+1]
			values, err := yamlLevels(c, levels)
			if err != nil {
				return err
			}
			if err := c.factor(nodeAt(name), name.Value, values); err != nil {
				return err
			}
		}
		return nil
	}
	return c.fail(design.ErrSyntax, nodeAt(node), "factors must be a sequence or a mapping")
}

func yamlFactorItem(c *collector, item *yaml.Node) error {
	if item.Kind != yaml.MappingNode {
		return c.fail(design.ErrSyntax, nodeAt(item), "factor entry must be a mapping with name and levels")
	}

	var (
		name    string
		levels  []string
		hasName bool
	)
	for i := 0; i+1 < len(item.Content); i += 2 {
		key, value := item.Content[i], item.Content[i+1]
		switch key.Value {
		case "name":
			if value.Kind != yaml.ScalarNode {
				return c.fail(design.ErrSyntax, nodeAt(value), "factor name must be a scalar")
			}
			name, hasName = scalarValue(value), true
		case "levels":
			values, err := yamlLevels(c, value)
			if err != nil {
				return err
			}
			levels = values
		default:
			return c.fail(design.ErrSyntax, nodeAt(key), "unknown factor key %q", key.Value)
		}
	}
	if !hasName {
		return c.fail(design.ErrSyntax, nodeAt(item), "factor entry is missing a name")
	}
	return c.factor(nodeAt(item), name, levels)
}

func yamlLevels(c *collector, node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
		return strings.Split(node.Value, ","), nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, c.fail(design.ErrSyntax, nodeAt(item), "level must be a scalar")
			}
			out = append(out, scalarValue(item))
		}
		return out, nil
	default:
		return nil, c.fail(design.ErrSyntax, nodeAt(node), "levels must be a sequence or a comma separated string")
	}
}

// scalarValue maps YAML null to the empty string so it trips the empty
// level and empty name checks.
func scalarValue(node *yaml.Node) string {
	if node.Tag == "!!null" {
		return ""
	}
	return node.Value
}

func nodeAt(node *yaml.Node) locator {
	at := locator{line: node.Line}
	if node.Kind == yaml.ScalarNode {
		at.text = node.Value
	}
	return at
}

func yamlSyntaxError(err error) error {
	var typeErr *yaml.TypeError
	message := err.Error()
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		message = typeErr.Errors[0]
	}
	message = strings.TrimPrefix(message, "yaml: ")
	return &design.ParseError{
		Kind:    design.ErrSyntax,
		Line:    yamlErrorLine(message),
		Message: message,
	}
}

// yamlErrorLine pulls the number out of yaml.v3 messages such as
// "line 3: mapping values are not allowed in this context".
func yamlErrorLine(message string) int {
	rest, ok := strings.CutPrefix(message, "line ")
	if !ok {
		return 0
	}
	n := 0
	for _, r := range rest {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
