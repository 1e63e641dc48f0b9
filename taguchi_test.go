package taguchi

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	pkgdefinition "github.com/goliatone/go-taguchi/pkg/definition"
	"github.com/goliatone/go-taguchi/pkg/design"
)

const cacheText = `factors:
  cache_size: 64M, 128M, 256M
  threads: 2, 4, 8
  timeout: 1s, 5s, 10s
array: L9
`

func TestParseGenerateRoundTrip(t *testing.T) {
	def, err := ParseDefinition(cacheText)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ok, msg := ValidateDefinition(def); !ok {
		t.Fatalf("validate: %s", msg)
	}

	runs, err := GenerateRuns(def)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(runs) != 9 {
		t.Fatalf("expected 9 runs, got %d", len(runs))
	}
	for i, run := range runs {
		if run.ID != i+1 {
			t.Fatalf("run %d has id %d", i, run.ID)
		}
		if _, ok := run.Value("threads"); !ok {
			t.Fatalf("run %d misses threads", run.ID)
		}
		if _, ok := run.Value("missing"); ok {
			t.Fatalf("run %d reports an undeclared factor", run.ID)
		}
	}

	ReleaseRuns(runs)
	if runs[0].Assignments != nil {
		t.Fatal("expected released runs to drop assignments")
	}
	ReleaseRuns(nil)

	def.Release()
	def.Release()
	if len(def.Factors) != 0 || def.Array != "" {
		t.Fatalf("expected released definition, got %+v", def)
	}
}

func TestParseDefinition_Error(t *testing.T) {
	def, err := ParseDefinition("factors:\n  mode: only_choice\n")
	if def != nil {
		t.Fatalf("expected nil definition, got %+v", def)
	}
	if !IsKind(err, design.ErrInsufficientLevels) || KindOf(err) != design.ErrInsufficientLevels {
		t.Fatalf("expected insufficient levels, got %v", err)
	}
}

func TestValidateDefinition(t *testing.T) {
	if ok, msg := ValidateDefinition(nil); ok || msg == "" {
		t.Fatalf("expected nil definition to fail, got %v %q", ok, msg)
	}

	def := CreateDefinition("")
	ok, msg := ValidateDefinition(def)
	if ok || !strings.Contains(msg, "no factors defined in experiment") {
		t.Fatalf("expected empty definition failure, got %v %q", ok, msg)
	}

	def.Factors = append(def.Factors, design.Factor{Name: "mode", Levels: []string{"only"}})
	ok, msg = ValidateDefinition(def)
	if ok || !strings.Contains(msg, "insufficient_levels") {
		t.Fatalf("expected insufficient levels, got %v %q", ok, msg)
	}
}

func TestListArraysAndInfo(t *testing.T) {
	names := ListArrays()
	want := []string{
		"L4", "L8", "L9", "L16", "L16b", "L18", "L25", "L27", "L32",
		"L49", "L64", "L64b", "L81", "L125", "L128", "L243", "L256",
		"L512", "L625", "L729", "L1024", "L2187", "L3125",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("array names mismatch (-want +got):\n%s", diff)
	}

	runs, cols, levels, ok := ArrayInfo("L18")
	if !ok || runs != 18 || cols != 7 || levels != 3 {
		t.Fatalf("unexpected L18 info: %d %d %d %v", runs, cols, levels, ok)
	}
	if _, _, _, ok := ArrayInfo("L999"); ok {
		t.Fatal("expected unknown array to report not found")
	}
}

func TestGenerateRuns_Errors(t *testing.T) {
	for _, def := range []*Definition{nil, CreateDefinition(""), CreateDefinition("L4")} {
		_, err := GenerateRuns(def)
		if !errors.Is(err, design.ErrEmptyDefinition) {
			t.Fatalf("expected empty definition, got %v", err)
		}
		var genErr *design.GenerationError
		if !errors.As(err, &genErr) {
			t.Fatalf("expected GenerationError, got %T", err)
		}
	}

	def := CreateDefinition("L999")
	if err := def.AddFactor("a", "1", "2"); err != nil {
		t.Fatalf("add factor: %v", err)
	}
	_, err := GenerateRuns(def)
	if !errors.Is(err, design.ErrUnknownArray) {
		t.Fatalf("expected unknown array, got %v", err)
	}
	if ErrorMessage(err) != "selection error (unknown_array): unknown array type: L999" {
		t.Fatalf("unexpected message %q", ErrorMessage(err))
	}
}

func TestSuggestArray(t *testing.T) {
	def := CreateDefinition("L27")
	for _, name := range []string{"a", "b", "c"} {
		if err := def.AddFactor(name, "x", "y"); err != nil {
			t.Fatalf("add factor: %v", err)
		}
	}
	name, err := SuggestArray(def)
	if err != nil || name != "L4" {
		t.Fatalf("expected L4, got %q %v", name, err)
	}
	if _, err := SuggestArray(nil); err == nil {
		t.Fatal("expected nil definition error")
	}
}

func TestErrorMessage_Truncates(t *testing.T) {
	if ErrorMessage(nil) != "" {
		t.Fatal("expected empty message for nil")
	}

	long := strings.Repeat("é", 200)
	msg := ErrorMessage(errors.New(long))
	if len(msg) > ErrorSize-1 {
		t.Fatalf("message exceeds bound: %d bytes", len(msg))
	}
	if !utf8.ValidString(msg) {
		t.Fatal("message cut inside a rune")
	}
	if len(msg) != 254 {
		t.Fatalf("expected 254 bytes (127 two-byte runes), got %d", len(msg))
	}

	short := "plain failure"
	if ErrorMessage(errors.New(short)) != short {
		t.Fatal("expected short message unchanged")
	}
}

func TestGenerateFromDocument(t *testing.T) {
	doc := pkgdefinition.TextDocument("factors:\n  a: 1, 2\n  b: x, y\n")
	out, err := GenerateFromDocument(context.Background(), doc, "csv")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := "run_id,a,b\n1,1,x\n2,1,y\n3,2,x\n4,2,y\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	data, err := fs.ReadFile(EmbeddedTemplates(), "sheet.html.tpl")
	if err != nil {
		t.Fatalf("read embedded template: %v", err)
	}
	if !strings.Contains(string(data), "<table") {
		t.Fatal("expected the run sheet table in the embedded template")
	}
}
