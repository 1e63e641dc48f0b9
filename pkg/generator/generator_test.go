package generator_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-taguchi/pkg/catalog"
	"github.com/goliatone/go-taguchi/pkg/design"
	"github.com/goliatone/go-taguchi/pkg/generator"
)

func mustArray(t *testing.T, name string) catalog.Descriptor {
	t.Helper()
	d, ok := catalog.Default().Find(name)
	if !ok {
		t.Fatalf("array %s missing from catalog", name)
	}
	return d
}

func TestGenerateL9CoversEveryPairOnce(t *testing.T) {
	def := design.Definition{Factors: []design.Factor{
		{Name: "cache_size", Levels: []string{"64M", "128M", "256M"}},
		{Name: "threads", Levels: []string{"2", "4", "8"}},
	}}

	runs, err := generator.Generate(def, mustArray(t, "L9"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(runs) != 9 {
		t.Fatalf("expected 9 runs, got %d", len(runs))
	}

	pairs := make(map[[2]string]int)
	for i, run := range runs {
		if run.ID != i+1 {
			t.Fatalf("run %d has id %d", i, run.ID)
		}
		cache, _ := run.Value("cache_size")
		threads, _ := run.Value("threads")
		pairs[[2]string{cache, threads}]++
	}
	if len(pairs) != 9 {
		t.Fatalf("expected 9 distinct pairs, got %d: %v", len(pairs), pairs)
	}
	for pair, n := range pairs {
		if n != 1 {
			t.Fatalf("pair %v appears %d times", pair, n)
		}
	}
}

func TestGenerateFollowsRowOrder(t *testing.T) {
	def := design.Definition{Factors: []design.Factor{
		{Name: "temp", Levels: []string{"350F", "400F"}},
		{Name: "pressure", Levels: []string{"10", "15"}},
		{Name: "speed", Levels: []string{"slow", "fast"}},
	}}

	runs, err := generator.Generate(def, mustArray(t, "L4"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	got := make([][]string, len(runs))
	for i, run := range runs {
		got[i] = run.Levels()
	}
	want := [][]string{
		{"350F", "10", "slow"},
		{"350F", "15", "fast"},
		{"400F", "10", "fast"},
		{"400F", "15", "slow"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("runs mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateDropsUnusedColumnsAndReducesLevels(t *testing.T) {
	def := design.Definition{Factors: []design.Factor{
		{Name: "a", Levels: []string{"a1", "a2", "a3"}},
		{Name: "b", Levels: []string{"b1", "b2"}},
	}}
	array := mustArray(t, "L16")

	runs, err := generator.Generate(def, array)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(runs) != array.Runs {
		t.Fatalf("expected %d runs, got %d", array.Runs, len(runs))
	}

	counts := map[string]int{}
	for r, run := range runs {
		if run.FactorCount() != 2 {
			t.Fatalf("run %d assigns %d factors", run.ID, run.FactorCount())
		}
		a, _ := run.Value("a")
		want := def.Factors[0].Levels[array.Cell(r, 0)%3]
		if a != want {
			t.Fatalf("run %d: a=%s, want %s", run.ID, a, want)
		}
		b, _ := run.Value("b")
		counts[b]++
	}
	// Two levels divide the four-level columns evenly.
	if counts["b1"] != 8 || counts["b2"] != 8 {
		t.Fatalf("expected balanced b levels, got %v", counts)
	}

	if diff := cmp.Diff([]string{"a"}, generator.Imbalanced(def, array)); diff != "" {
		t.Fatalf("imbalanced mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateMembership(t *testing.T) {
	for _, array := range catalog.Default().All() {
		if array.Runs > 64 {
			continue
		}
		def := design.Definition{}
		for i := 0; i < array.Columns && i < 6; i++ {
			levels := make([]string, 2+i%array.Levels)
			for l := range levels {
				levels[l] = string(rune('a'+i)) + string(rune('0'+l))
			}
			def.Factors = append(def.Factors, design.Factor{Name: string(rune('A' + i)), Levels: levels})
		}

		runs, err := generator.Generate(def, array)
		if err != nil {
			t.Fatalf("%s: generate: %v", array.Name, err)
		}
		for _, run := range runs {
			for _, factor := range def.Factors {
				v, ok := run.Value(factor.Name)
				if !ok || !contains(factor.Levels, v) {
					t.Fatalf("%s run %d: %s=%q not a declared level", array.Name, run.ID, factor.Name, v)
				}
			}
		}
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	def := design.Definition{Factors: []design.Factor{
		{Name: "x", Levels: []string{"1", "2", "3"}},
		{Name: "y", Levels: []string{"a", "b"}},
	}}
	array := mustArray(t, "L9")

	first, err := generator.Generate(def, array)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := generator.Generate(def, array)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("run %d id differs", i)
		}
		if diff := cmp.Diff(first[i].Assignments, second[i].Assignments); diff != "" {
			t.Fatalf("run %d differs (-first +second):\n%s", i, diff)
		}
	}
}

func TestRunsOutliveDefinition(t *testing.T) {
	def := design.Definition{Factors: []design.Factor{
		{Name: "x", Levels: []string{"1", "2"}},
	}}
	runs, err := generator.Generate(def, mustArray(t, "L4"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	def.Factors[0].Name = "renamed"
	def.Factors[0].Levels[0] = "changed"

	if v, ok := runs[0].Value("x"); !ok || v != "1" {
		t.Fatalf("run aliased definition storage: %q %v", v, ok)
	}
}

func TestGenerateErrors(t *testing.T) {
	_, err := generator.Generate(design.Definition{}, catalog.Descriptor{})
	if !errors.Is(err, design.ErrEmptyDefinition) {
		t.Fatalf("expected empty definition error, got %v", err)
	}

	def := design.Definition{}
	for i := 0; i < 4; i++ {
		def.Factors = append(def.Factors, design.Factor{Name: string(rune('a' + i)), Levels: []string{"0", "1"}})
	}
	_, err = generator.Generate(def, mustArray(t, "L4"))
	if !errors.Is(err, design.ErrArrayTooSmall) {
		t.Fatalf("expected array too small, got %v", err)
	}

	var genErr *design.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %T", err)
	}
}

func TestGenerateRejectsHandBuiltDescriptor(t *testing.T) {
	def := design.Definition{Factors: []design.Factor{
		{Name: "a", Levels: []string{"0", "1"}},
		{Name: "b", Levels: []string{"0", "1"}},
	}}

	_, err := generator.Generate(def, catalog.Descriptor{Name: "L4", Runs: 4, Columns: 3, Levels: 2})
	if !errors.Is(err, design.ErrInvalidArray) {
		t.Fatalf("expected invalid array error, got %v", err)
	}
	var genErr *design.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %T", err)
	}

	forged := mustArray(t, "L4")
	forged.Runs = 8
	if _, err := generator.Generate(def, forged); !errors.Is(err, design.ErrInvalidArray) {
		t.Fatalf("expected invalid array error for mismatched runs, got %v", err)
	}

	forged = mustArray(t, "L4")
	forged.Columns = 7
	if _, err := generator.Generate(def, forged); !errors.Is(err, design.ErrInvalidArray) {
		t.Fatalf("expected invalid array error for mismatched columns, got %v", err)
	}
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
