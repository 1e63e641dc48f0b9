// Package jsonfmt renders a plan as a JSON array of flat run objects:
//
//	[
//	  {"run_id": 1, "temp": "350F", "pressure": "10"}
//	]
//
// Factor keys keep declaration order, which encoding/json maps cannot.
package jsonfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"

	"github.com/goliatone/go-taguchi/pkg/render"
)

const name = "json"

// Renderer produces the run_id keyed JSON document.
type Renderer struct{}

var _ render.Renderer = (*Renderer)(nil)

// New returns a JSON renderer.
func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Name() string {
	return name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render emits one object per line, or fully indented output when
// options.Indent is set.
func (r *Renderer) Render(ctx context.Context, plan render.Plan, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if len(plan.Runs) == 0 {
		buf.WriteString("[]")
	} else {
		buf.WriteString("[\n")
		for i, run := range plan.Runs {
			buf.WriteString(`  {"run_id": `)
			buf.WriteString(strconv.Itoa(run.ID))
			for j := 0; j < run.FactorCount(); j++ {
				factor, _ := run.FactorAt(j)
				value, _ := run.Value(factor)
				buf.WriteString(", ")
				if err := writeString(&buf, factor); err != nil {
					return nil, err
				}
				buf.WriteString(": ")
				if err := writeString(&buf, value); err != nil {
					return nil, err
				}
			}
			buf.WriteByte('}')
			if i < len(plan.Runs)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		buf.WriteByte(']')
	}

	if !options.Indent {
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	pretty.WriteByte('\n')
	return pretty.Bytes(), nil
}

func writeString(buf *bytes.Buffer, s string) error {
	encoded, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(encoded)
	return nil
}
