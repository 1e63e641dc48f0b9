package csvfmt_test

import (
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-taguchi/pkg/render"
	"github.com/goliatone/go-taguchi/pkg/renderers/csvfmt"
	"github.com/goliatone/go-taguchi/pkg/testsupport"
)

const bake = "factors:\n  temp: 350F, 400F\n  pressure: 10, 15\n  speed: slow, fast\n"

func TestRenderer_RenderContract(t *testing.T) {
	renderer := csvfmt.New()
	if got := renderer.Name(); got != "csv" {
		t.Fatalf("unexpected renderer name: %s", got)
	}

	plan := testsupport.MustPlan(t, testsupport.MustParseDefinition(t, bake), "L4")
	output, err := renderer.Render(testsupport.Context(), plan, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	goldenPath := filepath.Join("testdata", "bake.golden.csv")
	if testsupport.WriteMaybeGolden(t, goldenPath, output) {
		return
	}
	want := testsupport.MustReadGoldenString(t, goldenPath)
	if diff := testsupport.CompareGolden(want, string(output)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_QuotesAndDelimiter(t *testing.T) {
	def := testsupport.MustParseDefinition(t, "factors:\n  label: \"a b\", plain\n  mode: x;y, z\n")
	plan := testsupport.MustPlan(t, def, "L4")

	output, err := csvfmt.New(csvfmt.WithComma(';')).Render(testsupport.Context(), plan, render.RenderOptions{OmitHeader: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	reader := csv.NewReader(strings.NewReader(string(output)))
	reader.Comma = ';'
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if diff := cmp.Diff(testsupport.RunTable(plan.Runs), records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}
