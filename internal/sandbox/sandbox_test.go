package sandbox

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeRunner simulates an interpreter by optionally dropping files into the
// working directory and returning canned output.
type fakeRunner struct {
	output    string
	err       error
	artifacts []string
	gotDir    string
	gotName   string
	gotArgs   []string
}

func (f *fakeRunner) Run(ctx context.Context, workDir string, name string, args ...string) ([]byte, error) {
	f.gotDir = workDir
	f.gotName = name
	f.gotArgs = args
	for _, a := range f.artifacts {
		if err := os.WriteFile(filepath.Join(workDir, a), []byte("data"), 0644); err != nil {
			return nil, err
		}
	}
	return []byte(f.output), f.err
}

func TestExecute_CollectsArtifacts(t *testing.T) {
	fake := &fakeRunner{
		output:    "done\n",
		artifacts: []string{"chart.png", "notes.txt", "trend.svg"},
	}
	r := NewRunner(fake, "")

	ex, err := r.Execute(context.Background(), "print('hi')")
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	defer ex.Cleanup()

	if fake.gotName != "python3" {
		t.Errorf("interpreter = %q, want python3", fake.gotName)
	}
	if len(fake.gotArgs) != 1 || fake.gotArgs[0] != "script.py" {
		t.Errorf("args = %v, want [script.py]", fake.gotArgs)
	}
	if ex.Output != "done" {
		t.Errorf("Output = %q, want done", ex.Output)
	}

	// Only image artifacts are collected, in sorted order.
	if len(ex.Artifacts) != 2 {
		t.Fatalf("got %d artifacts, want 2: %v", len(ex.Artifacts), ex.Artifacts)
	}
	if filepath.Base(ex.Artifacts[0]) != "chart.png" || filepath.Base(ex.Artifacts[1]) != "trend.svg" {
		t.Errorf("artifacts = %v, want [chart.png trend.svg]", ex.Artifacts)
	}
}

func TestExecute_WritesScriptWithPreamble(t *testing.T) {
	var script string
	fake := &fakeRunner{}
	r := NewRunner(fake, "python3")

	ex, err := r.Execute(context.Background(), "print('hello')")
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	defer ex.Cleanup()

	data, err := os.ReadFile(filepath.Join(fake.gotDir, "script.py"))
	if err != nil {
		t.Fatalf("read script: %v", err)
	}
	script = string(data)
	if !strings.HasPrefix(script, "import os\ntemp_dir = os.getcwd()\n") {
		t.Errorf("script missing temp_dir preamble: %q", script)
	}
	if !strings.Contains(script, "print('hello')") {
		t.Errorf("script missing code body: %q", script)
	}
}

func TestExecute_InterpreterFailure(t *testing.T) {
	fake := &fakeRunner{output: "Traceback ...", err: errors.New("exit status 1")}
	r := NewRunner(fake, "")

	ex, err := r.Execute(context.Background(), "raise ValueError()")
	if err == nil {
		t.Fatal("Execute() error = nil, want interpreter failure")
	}
	if ex == nil || ex.Dir == "" {
		t.Fatal("Execute() must return the scratch dir even on failure")
	}
	ex.Cleanup()
	if _, statErr := os.Stat(ex.Dir); !os.IsNotExist(statErr) {
		t.Errorf("Cleanup() left scratch dir %s in place", ex.Dir)
	}
}

func TestExecute_NoArtifacts(t *testing.T) {
	fake := &fakeRunner{output: "ok"}
	r := NewRunner(fake, "")

	ex, err := r.Execute(context.Background(), "x = 1")
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	defer ex.Cleanup()

	if len(ex.Artifacts) != 0 {
		t.Errorf("artifacts = %v, want none", ex.Artifacts)
	}
}
