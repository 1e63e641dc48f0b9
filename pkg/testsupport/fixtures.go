package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-taguchi/internal/definition/parser"
	"github.com/goliatone/go-taguchi/pkg/catalog"
	pkgdefinition "github.com/goliatone/go-taguchi/pkg/definition"
	"github.com/goliatone/go-taguchi/pkg/design"
	"github.com/goliatone/go-taguchi/pkg/generator"
	"github.com/goliatone/go-taguchi/pkg/render"
	"github.com/goliatone/go-taguchi/pkg/selector"
)

// LoadDocument reads a fixture and builds a definition.Document using a file
// source. The format follows the file extension.
func LoadDocument(t *testing.T, path string) pkgdefinition.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T, allowing
// callers to wire fixtures in setup functions.
func LoadDocumentFromPath(path string) (pkgdefinition.Document, error) {
	if path == "" {
		return pkgdefinition.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return pkgdefinition.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := pkgdefinition.NewDocument(pkgdefinition.SourceFromFile(path), data)
	if err != nil {
		return pkgdefinition.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// MustParseDefinition parses line format text or fails the test.
func MustParseDefinition(t *testing.T, text string) design.Definition {
	t.Helper()

	def, err := parser.ParseText(text)
	if err != nil {
		t.Fatalf("parse definition: %v", err)
	}
	return def
}

// MustPlan builds a render.Plan for def on the named catalog array. An empty
// name auto-selects.
func MustPlan(t *testing.T, def design.Definition, array string) render.Plan {
	t.Helper()

	desc, err := selector.Select(catalog.Default(), def.Shape(), array)
	if err != nil {
		t.Fatalf("select array: %v", err)
	}

	runs, err := generator.Generate(def, desc)
	if err != nil {
		t.Fatalf("generate runs: %v", err)
	}
	return render.Plan{
		Definition: def,
		Array:      desc,
		Runs:       runs,
		Imbalanced: generator.Imbalanced(def, desc),
	}
}

// RunTable flattens runs into [id, level...] rows in factor declaration order
// so they can be compared with cmp.Diff.
func RunTable(runs []design.Run) [][]string {
	out := make([][]string, len(runs))
	for i, run := range runs {
		out[i] = append([]string{fmt.Sprint(run.ID)}, run.Levels()...)
	}
	return out
}

// WriteGolden writes arbitrary data as JSON to a golden file when
// UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
