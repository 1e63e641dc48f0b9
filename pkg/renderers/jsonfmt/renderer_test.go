package jsonfmt_test

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-taguchi/pkg/render"
	"github.com/goliatone/go-taguchi/pkg/renderers/jsonfmt"
	"github.com/goliatone/go-taguchi/pkg/testsupport"
)

const bake = "factors:\n  temp: 350F, 400F\n  pressure: 10, 15\n  speed: slow, fast\n"

func TestRenderer_RenderContract(t *testing.T) {
	renderer := jsonfmt.New()
	if got := renderer.Name(); got != "json" {
		t.Fatalf("unexpected renderer name: %s", got)
	}
	if got := renderer.ContentType(); got != "application/json" {
		t.Fatalf("unexpected content type: %s", got)
	}

	plan := testsupport.MustPlan(t, testsupport.MustParseDefinition(t, bake), "L4")
	output, err := renderer.Render(testsupport.Context(), plan, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	goldenPath := filepath.Join("testdata", "bake.golden.json")
	if testsupport.WriteMaybeGolden(t, goldenPath, output) {
		return
	}
	want := testsupport.MustReadGoldenString(t, goldenPath)
	if diff := testsupport.CompareGolden(want, string(output)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_IndentAndEscaping(t *testing.T) {
	def := testsupport.MustParseDefinition(t, "factors:\n  say \"hi\": a\\b, </script>\n")
	plan := testsupport.MustPlan(t, def, "L4")

	output, err := jsonfmt.New().Render(testsupport.Context(), plan, render.RenderOptions{Indent: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(output), "\n    \"run_id\": 1,\n") {
		t.Fatalf("expected indented output, got:\n%s", output)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(output, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []map[string]any{
		{"run_id": float64(1), `say "hi"`: `a\b`},
		{"run_id": float64(2), `say "hi"`: `a\b`},
		{"run_id": float64(3), `say "hi"`: "</script>"},
		{"run_id": float64(4), `say "hi"`: "</script>"},
	}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("decoded mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_EmptyPlan(t *testing.T) {
	output, err := jsonfmt.New().Render(testsupport.Context(), render.Plan{}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(output) != "[]\n" {
		t.Fatalf("unexpected output %q", output)
	}
}
