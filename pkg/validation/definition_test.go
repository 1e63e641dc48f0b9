package validation_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-taguchi/pkg/catalog"
	"github.com/goliatone/go-taguchi/pkg/design"
	"github.com/goliatone/go-taguchi/pkg/validation"
)

func TestDefinitionAcceptsWellFormed(t *testing.T) {
	def := design.Definition{Factors: []design.Factor{
		{Name: "cache_size", Levels: []string{"64M", "128M", "256M"}},
		{Name: "threads", Levels: []string{"2", "4"}},
	}}
	if err := validation.Definition(def); err != nil {
		t.Fatalf("expected valid definition, got %v", err)
	}
	if result := validation.Check(def); !result.Valid || len(result.Issues) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestDefinitionRejections(t *testing.T) {
	tooMany := design.Definition{}
	for i := 0; i <= design.MaxFactors; i++ {
		tooMany.Factors = append(tooMany.Factors, design.Factor{Name: fmt.Sprintf("f%d", i), Levels: []string{"a", "b"}})
	}
	manyLevels := make([]string, design.MaxLevels+1)
	for i := range manyLevels {
		manyLevels[i] = fmt.Sprintf("l%d", i)
	}

	cases := []struct {
		name   string
		def    design.Definition
		kind   design.ErrorKind
		factor string
	}{
		{name: "empty", def: design.Definition{}, kind: design.ErrEmptyDefinition},
		{name: "too many factors", def: tooMany, kind: design.ErrLimits},
		{
			name: "blank name",
			def:  design.Definition{Factors: []design.Factor{{Name: "  ", Levels: []string{"a", "b"}}}},
			kind: design.ErrEmptyName,
		},
		{
			name:   "long name",
			def:    design.Definition{Factors: []design.Factor{{Name: strings.Repeat("n", design.MaxFactorNameLen+1), Levels: []string{"a", "b"}}}},
			kind:   design.ErrLimits,
			factor: strings.Repeat("n", design.MaxFactorNameLen+1),
		},
		{
			name:   "single level",
			def:    design.Definition{Factors: []design.Factor{{Name: "temp", Levels: []string{"hot"}}}},
			kind:   design.ErrInsufficientLevels,
			factor: "temp",
		},
		{
			name:   "too many levels",
			def:    design.Definition{Factors: []design.Factor{{Name: "temp", Levels: manyLevels}}},
			kind:   design.ErrLimits,
			factor: "temp",
		},
		{
			name:   "blank level",
			def:    design.Definition{Factors: []design.Factor{{Name: "temp", Levels: []string{"hot", ""}}}},
			kind:   design.ErrEmptyName,
			factor: "temp",
		},
		{
			name:   "long level",
			def:    design.Definition{Factors: []design.Factor{{Name: "temp", Levels: []string{"hot", strings.Repeat("x", design.MaxLevelLen+1)}}}},
			kind:   design.ErrLimits,
			factor: "temp",
		},
		{
			name:   "duplicate level",
			def:    design.Definition{Factors: []design.Factor{{Name: "temp", Levels: []string{"hot", "hot"}}}},
			kind:   design.ErrDuplicateLevel,
			factor: "temp",
		},
		{
			name: "reserved character in array",
			def: design.Definition{
				Array:   "L#4",
				Factors: []design.Factor{{Name: "temp", Levels: []string{"hot", "cold"}}},
			},
			kind: design.ErrSyntax,
		},
		{
			name: "duplicate factor",
			def: design.Definition{Factors: []design.Factor{
				{Name: "temp", Levels: []string{"hot", "cold"}},
				{Name: "temp", Levels: []string{"1", "2"}},
			}},
			kind:   design.ErrDuplicateFactor,
			factor: "temp",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validation.Definition(tc.def)
			if !errors.Is(err, tc.kind) {
				t.Fatalf("expected %s, got %v", tc.kind, err)
			}
			var valErr *design.ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if valErr.Factor != tc.factor {
				t.Fatalf("expected factor %q, got %q", tc.factor, valErr.Factor)
			}
		})
	}
}

func TestCapacity(t *testing.T) {
	l4, _ := catalog.Default().Find("L4")

	fits := design.Definition{Factors: []design.Factor{
		{Name: "a", Levels: []string{"1", "2"}},
		{Name: "b", Levels: []string{"1", "2"}},
	}}
	if err := validation.Capacity(fits, l4); err != nil {
		t.Fatalf("expected capacity, got %v", err)
	}

	wide := design.Definition{Factors: []design.Factor{
		{Name: "a", Levels: []string{"1", "2"}},
		{Name: "speed", Levels: []string{"low", "mid", "high"}},
	}}
	err := validation.Capacity(wide, l4)
	if !errors.Is(err, design.ErrIncompatible) {
		t.Fatalf("expected incompatible, got %v", err)
	}
	if !strings.Contains(err.Error(), `factor "speed"`) {
		t.Fatalf("expected factor in message, got %v", err)
	}

	long := design.Definition{}
	for i := 0; i < 4; i++ {
		long.Factors = append(long.Factors, design.Factor{Name: fmt.Sprintf("f%d", i), Levels: []string{"a", "b"}})
	}
	err = validation.Capacity(long, l4)
	if !errors.Is(err, design.ErrIncompatible) || !strings.Contains(err.Error(), "too few columns") {
		t.Fatalf("expected column incompatibility, got %v", err)
	}
}

func TestIssueFromError(t *testing.T) {
	parseErr := &design.ParseError{Kind: design.ErrSyntax, Line: 3, Text: "oops", Message: "missing ':'"}
	got := validation.IssueFromError(fmt.Errorf("parser: %w", parseErr))
	want := validation.Issue{
		Kind:    string(design.ErrSyntax),
		Line:    3,
		Message: fmt.Sprintf("parser: %s", parseErr.Error()),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("issue mismatch (-want +got):\n%s", diff)
	}

	result := validation.Check(design.Definition{Factors: []design.Factor{{Name: "x", Levels: []string{"only"}}}})
	wantResult := validation.Result{
		Valid: false,
		Issues: []validation.Issue{{
			Kind:    string(design.ErrInsufficientLevels),
			Factor:  "x",
			Message: `factor "x" has 1 level(s), need at least 2`,
		}},
	}
	if diff := cmp.Diff(wantResult, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}

	if issue := validation.IssueFromError(nil); issue.Message != "unknown error" {
		t.Fatalf("unexpected nil issue: %+v", issue)
	}
}
