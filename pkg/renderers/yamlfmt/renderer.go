// Package yamlfmt renders a plan as a YAML document. Assignments are emitted
// as ordered mapping nodes so factors keep declaration order.
package yamlfmt

import (
	"bytes"
	"context"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-taguchi/pkg/render"
)

const name = "yaml"

// Renderer produces the YAML run sheet.
type Renderer struct {
	indent int
}

var _ render.Renderer = (*Renderer)(nil)

// New returns a YAML renderer with two-space indentation.
func New() *Renderer {
	return &Renderer{indent: 2}
}

func (r *Renderer) Name() string {
	return name
}

func (r *Renderer) ContentType() string {
	return "application/yaml"
}

func (r *Renderer) Render(ctx context.Context, plan render.Plan, _ render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root := mapping()
	if plan.Array.Name != "" {
		appendPair(root, "array", str(plan.Array.Name))
	}
	if len(plan.Imbalanced) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, factor := range plan.Imbalanced {
			seq.Content = append(seq.Content, str(factor))
		}
		appendPair(root, "imbalanced", seq)
	}

	runs := &yaml.Node{Kind: yaml.SequenceNode}
	for _, run := range plan.Runs {
		assignments := mapping()
		for i := 0; i < run.FactorCount(); i++ {
			factor, _ := run.FactorAt(i)
			value, _ := run.Value(factor)
			appendPair(assignments, factor, str(value))
		}

		entry := mapping()
		appendPair(entry, "id", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(run.ID)})
		appendPair(entry, "assignments", assignments)
		runs.Content = append(runs.Content, entry)
	}
	appendPair(root, "runs", runs)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(r.indent)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode}
}

// str forces string scalars so levels such as "10" or "true" survive a
// decode as strings.
func str(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func appendPair(node *yaml.Node, key string, value *yaml.Node) {
	node.Content = append(node.Content, str(key), value)
}
