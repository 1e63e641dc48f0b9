package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-taguchi/pkg/tui"
)

const bakeListing = `Generated 4 experiment runs:
Run 1: temp=350F, pressure=10, speed=slow
Run 2: temp=350F, pressure=15, speed=fast
Run 3: temp=400F, pressure=10, speed=fast
Run 4: temp=400F, pressure=15, speed=slow
`

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, a *app, stdin string, args ...string) result {
	t.Helper()
	if a == nil {
		a = newApp()
	}
	var out, errOut bytes.Buffer
	code := execute(context.Background(), a, args, strings.NewReader(stdin), &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func TestGenerate(t *testing.T) {
	res := runCLI(t, nil, "", "generate", filepath.Join("testdata", "bake.tgu"))
	if res.code != 0 {
		t.Fatalf("exit %d: %s", res.code, res.stderr)
	}
	if diff := cmp.Diff(bakeListing, res.stdout); diff != "" {
		t.Fatalf("listing mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_StdinAndFormats(t *testing.T) {
	bake, err := os.ReadFile(filepath.Join("testdata", "bake.tgu"))
	if err != nil {
		t.Fatal(err)
	}

	res := runCLI(t, nil, string(bake), "generate", "-", "--format", "csv")
	if res.code != 0 {
		t.Fatalf("exit %d: %s", res.code, res.stderr)
	}
	if !strings.HasPrefix(res.stdout, "run_id,temp,pressure,speed\n1,350F,10,slow\n") {
		t.Fatalf("unexpected csv:\n%s", res.stdout)
	}

	res = runCLI(t, nil, "", "generate", filepath.Join("testdata", "bake.json"), "--array", "L8", "--format", "text")
	if res.code != 0 {
		t.Fatalf("exit %d: %s", res.code, res.stderr)
	}
	if !strings.HasPrefix(res.stdout, "Generated 8 experiment runs:\n") {
		t.Fatalf("unexpected listing:\n%s", res.stdout)
	}
}

func TestGenerate_ConfigDefaultFormat(t *testing.T) {
	res := runCLI(t, nil, "", "--config", filepath.Join("testdata", "csv.yaml"), "generate", filepath.Join("testdata", "bake.tgu"))
	if res.code != 0 {
		t.Fatalf("exit %d: %s", res.code, res.stderr)
	}
	if !strings.HasPrefix(res.stdout, "run_id,") {
		t.Fatalf("expected csv from config default, got:\n%s", res.stdout)
	}
}

func TestGenerate_OutputFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "runs.json")
	res := runCLI(t, nil, "", "generate", filepath.Join("testdata", "bake.tgu"), "--format", "json", "-o", target)
	if res.code != 0 {
		t.Fatalf("exit %d: %s", res.code, res.stderr)
	}
	if res.stdout != "Runs written to "+target+"\n" {
		t.Fatalf("unexpected stdout %q", res.stdout)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "[\n  {\"run_id\": 1,") {
		t.Fatalf("unexpected file contents:\n%s", data)
	}
}

func TestGenerate_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown array", args: []string{"generate", filepath.Join("testdata", "bake.tgu"), "--array", "L999"}, want: "Error: selection error (unknown_array): unknown array type: L999\n"},
		{name: "missing file", args: []string{"generate", filepath.Join("testdata", "missing.tgu")}, want: "Error: orchestrator: load document:"},
		{name: "bad input flag", args: []string{"generate", "-", "--input", "xml"}, want: "Error: definition: unsupported format"},
		{name: "no args", args: []string{"generate"}, want: "Error: accepts 1 arg(s)"},
		{name: "bad log level", args: []string{"--log-level", "loud", "list-arrays"}, want: "Error: config: log.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := runCLI(t, nil, "", tc.args...)
			if res.code != 1 {
				t.Fatalf("expected exit 1, got %d", res.code)
			}
			if !strings.HasPrefix(res.stderr, tc.want) {
				t.Fatalf("expected stderr to start with %q, got %q", tc.want, res.stderr)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	path := filepath.Join("testdata", "bake.tgu")
	res := runCLI(t, nil, "", "validate", path)
	if res.code != 0 || res.stdout != "Valid .tgu file: "+path+"\n" {
		t.Fatalf("unexpected result %+v", res)
	}

	bad := filepath.Join("testdata", "single.tgu")
	res = runCLI(t, nil, "", "validate", bad)
	if res.code != 1 {
		t.Fatalf("expected failure, got %+v", res)
	}
	if !strings.Contains(res.stderr, "Error: invalid definition "+bad+": parse error (insufficient_levels): line 2:") {
		t.Fatalf("unexpected stderr %q", res.stderr)
	}
}

func TestListArrays(t *testing.T) {
	res := runCLI(t, nil, "", "list-arrays")
	if res.code != 0 {
		t.Fatalf("exit %d: %s", res.code, res.stderr)
	}
	lines := strings.Split(strings.TrimRight(res.stdout, "\n"), "\n")
	if len(lines) != 24 {
		t.Fatalf("expected header plus 23 arrays, got %d lines", len(lines))
	}
	want := []string{
		"Available orthogonal arrays:",
		"  L4    (   4 runs,    3 cols, 2 levels)",
		"  L8    (   8 runs,    7 cols, 2 levels)",
	}
	if diff := cmp.Diff(want, lines[:3]); diff != "" {
		t.Fatalf("listing mismatch (-want +got):\n%s", diff)
	}
	if lines[17] != "  L256  ( 256 runs,  255 cols, 2 levels)" {
		t.Fatalf("unexpected L256 line %q", lines[17])
	}
	if lines[23] != "  L3125 (3125 runs,  781 cols, 5 levels)" {
		t.Fatalf("unexpected last line %q", lines[23])
	}
}

func TestSuggest(t *testing.T) {
	path := filepath.Join("testdata", "bake.tgu")
	res := runCLI(t, nil, "", "suggest", path)
	if res.code != 0 || res.stdout != "L4\n" {
		t.Fatalf("unexpected result %+v", res)
	}

	res = runCLI(t, nil, "", "suggest", path, "--all")
	if res.code != 0 {
		t.Fatalf("exit %d: %s", res.code, res.stderr)
	}
	lines := strings.Split(res.stdout, "\n")
	if lines[0] != "Arrays that fit, best first:" || lines[1] != "  L4    (   4 runs,    3 cols, 2 levels)" {
		t.Fatalf("unexpected listing:\n%s", res.stdout)
	}
}

type scriptedDriver struct {
	inputs []string
	pos    int
}

func (s *scriptedDriver) Input(context.Context, tui.InputConfig) (string, error) {
	if s.pos >= len(s.inputs) {
		return "", tui.ErrAborted
	}
	v := s.inputs[s.pos]
	s.pos++
	return v, nil
}

func (s *scriptedDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	return false, nil
}

func (s *scriptedDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	return 1, nil
}

func (s *scriptedDriver) Info(context.Context, string) error {
	return nil
}

func TestNew(t *testing.T) {
	a := newApp()
	a.newBuilder = func(io.Writer) *tui.Builder {
		return tui.NewBuilder(tui.WithPromptDriver(&scriptedDriver{
			inputs: []string{"temp", "350F, 400F", "speed", "slow, fast", ""},
		}))
	}

	res := runCLI(t, a, "", "new")
	if res.code != 0 {
		t.Fatalf("exit %d: %s", res.code, res.stderr)
	}
	want := "factors:\n  temp: 350F, 400F\n  speed: slow, fast\narray: L4\n"
	if diff := cmp.Diff(want, res.stdout); diff != "" {
		t.Fatalf("definition mismatch (-want +got):\n%s", diff)
	}

	a.newBuilder = func(io.Writer) *tui.Builder {
		return tui.NewBuilder(tui.WithPromptDriver(&scriptedDriver{}))
	}
	res = runCLI(t, a, "", "new")
	if res.code != 1 || res.stderr != "Error: aborted\n" {
		t.Fatalf("expected abort, got %+v", res)
	}
}

func TestVersion(t *testing.T) {
	res := runCLI(t, nil, "", "version")
	if res.code != 0 || res.stdout != "Taguchi Array Tool v"+Version+"\n" {
		t.Fatalf("unexpected result %+v", res)
	}
}
