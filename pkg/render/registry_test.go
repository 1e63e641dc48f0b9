package render_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-taguchi/pkg/render"
)

type stubRenderer struct {
	name string
	out  string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, render.Plan, render.RenderOptions) ([]byte, error) {
	return []byte(s.out), nil
}

func TestRegistry(t *testing.T) {
	registry, err := render.NewRegistry(stubRenderer{name: "text"}, stubRenderer{name: "csv"})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	if diff := cmp.Diff([]string{"csv", "text"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("csv") || registry.Has("html") {
		t.Fatal("unexpected Has results")
	}

	if err := registry.Register(stubRenderer{name: "csv"}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if err := registry.Register(stubRenderer{}); err == nil {
		t.Fatal("expected error for unnamed renderer")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatal("expected error for nil renderer")
	}

	_, err = registry.Get("html")
	if err == nil || !strings.Contains(err.Error(), "available: [csv text]") {
		t.Fatalf("expected not found error listing names, got %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected MustGet to panic")
		}
	}()
	registry.MustGet("html")
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	if _, err := render.NewRegistry(stubRenderer{name: "a"}, stubRenderer{name: "a"}); err == nil {
		t.Fatal("expected duplicate error")
	}
}

func TestWriteTo(t *testing.T) {
	var buf bytes.Buffer
	if err := render.WriteTo(context.Background(), &buf, stubRenderer{name: "x", out: "hello"}, render.Plan{}, render.RenderOptions{}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "hello" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
