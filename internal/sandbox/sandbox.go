// Package sandbox runs generated code in a scratch directory and collects
// the artifact files it produces.
package sandbox

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/siftlabs/sift/internal/exec"
)

// preamble is prepended to generated code so it can reference temp_dir for
// artifact output, matching the contract stated in the generation prompt.
const preamble = "import os\ntemp_dir = os.getcwd()\n"

// artifactExts are the file extensions collected after a run.
var artifactExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".svg":  true,
}

// Execution is the outcome of running one piece of generated code.
type Execution struct {
	// Dir is the scratch directory the code ran in. Valid until Cleanup.
	Dir string
	// Output is the combined stdout/stderr of the interpreter.
	Output string
	// Artifacts are the paths of generated files inside Dir.
	Artifacts []string
}

// Cleanup removes the scratch directory and everything in it. Safe to call
// after a failed run.
func (e *Execution) Cleanup() {
	if e != nil && e.Dir != "" {
		os.RemoveAll(e.Dir)
	}
}

// Runner executes code through an interpreter in an isolated scratch dir.
type Runner struct {
	runner exec.CommandRunner
	// python is the interpreter binary, e.g. "python3".
	python string
}

// NewRunner creates a sandbox Runner. An empty python defaults to "python3".
func NewRunner(cmd exec.CommandRunner, python string) *Runner {
	if python == "" {
		python = "python3"
	}
	return &Runner{runner: cmd, python: python}
}

// Execute writes code to a scratch directory, runs it, and collects generated
// artifact files. The returned Execution always carries the scratch dir so
// the caller can Cleanup regardless of outcome; a non-nil error means the
// interpreter failed.
func (r *Runner) Execute(ctx context.Context, code string) (*Execution, error) {
	dir, err := os.MkdirTemp("", "sift-sandbox-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}

	script := filepath.Join(dir, "script.py")
	if err := os.WriteFile(script, []byte(preamble+code), 0644); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("write script: %w", err)
	}

	ex := &Execution{Dir: dir}

	log.Printf("[sandbox] executing script in %s", dir)
	out, err := r.runner.Run(ctx, dir, r.python, "script.py")
	ex.Output = strings.TrimSpace(string(out))
	if err != nil {
		return ex, fmt.Errorf("run script: %w: %s", err, ex.Output)
	}

	ex.Artifacts, err = collectArtifacts(dir)
	if err != nil {
		return ex, fmt.Errorf("collect artifacts: %w", err)
	}
	return ex, nil
}

// collectArtifacts returns paths of artifact files directly inside dir,
// sorted by name for deterministic ordering.
func collectArtifacts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var artifacts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if artifactExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			artifacts = append(artifacts, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(artifacts)
	return artifacts, nil
}
