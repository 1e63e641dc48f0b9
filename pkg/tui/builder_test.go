package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-taguchi/pkg/design"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	infoMessages []string
	selectOpts   [][]string
	inputPos     int
	selectPos    int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectOpts = append(s.selectOpts, cfg.Options)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

type abortingDriver struct{ stubDriver }

func (a *abortingDriver) Input(context.Context, InputConfig) (string, error) {
	return "", ErrAborted
}

func TestBuilder_CollectsFactorsAndAutoArray(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"temp", "350F, 400F", "speed", "slow,fast", ""},
		selectIdx: []int{0},
	}
	def, err := NewBuilder(WithPromptDriver(driver)).Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := design.Definition{Factors: []design.Factor{
		{Name: "temp", Levels: []string{"350F", "400F"}},
		{Name: "speed", Levels: []string{"slow", "fast"}},
	}}
	if diff := cmp.Diff(want, def); diff != "" {
		t.Fatalf("definition mismatch (-want +got):\n%s", diff)
	}
	if driver.selectOpts[0][0] != "auto" || driver.selectOpts[0][1] != "L4 (4 runs)" {
		t.Fatalf("unexpected array options %v", driver.selectOpts[0])
	}
}

func TestBuilder_RejectedFactorIsAskedAgain(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{
			"a", "only",
			"a", "1, 2",
			"a", "3, 4",
			"",
		},
		selectIdx: []int{1},
	}
	def, err := NewBuilder(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "E: "})).Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(def.Factors) != 1 || def.Array != "L4" {
		t.Fatalf("unexpected definition %+v", def)
	}

	want := []string{
		"Define the factors of your experiment. Leave the name empty to finish.",
		`E: factor "a" has 1 level(s), need at least 2`,
		`E: duplicate factor "a"`,
	}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_EmptySession(t *testing.T) {
	driver := &stubDriver{inputs: []string{""}, confirm: []bool{false}}
	if _, err := NewBuilder(WithPromptDriver(driver)).Build(context.Background()); !errors.Is(err, ErrNoFactors) {
		t.Fatalf("expected ErrNoFactors, got %v", err)
	}
}

func TestBuilder_Abort(t *testing.T) {
	if _, err := NewBuilder(WithPromptDriver(&abortingDriver{})).Build(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestSplitLevels(t *testing.T) {
	if got := splitLevels("  "); got != nil {
		t.Fatalf("expected nil for blank input, got %v", got)
	}
	if diff := cmp.Diff([]string{"a", "b", ""}, splitLevels(" a ,b,")); diff != "" {
		t.Fatalf("split mismatch (-want +got):\n%s", diff)
	}
}
