// ABOUTME: Runs the raw ML process in batch mode via `isabelle process`
// ABOUTME: Builds the argument vector from typed batch arguments

package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"

	"github.com/harper/isaclient/internal/logger"
)

// BatchArgs configures one batch-mode process run.
type BatchArgs struct {
	// Theories to load (-T), in the given order.
	Theories []string
	// SessionDirs adds session directories (-d).
	SessionDirs []string
	// Logic selects the logic session image (-l); empty keeps the default.
	Logic string
	// Options overrides system options for this run (-o name=value).
	// Use OptionsBuilder to assemble common ones.
	Options map[string]string
}

// LoadTheories returns batch arguments that load the given theories.
func LoadTheories(theories ...string) BatchArgs {
	return BatchArgs{Theories: theories}
}

// argv renders the argument vector after the binary name. Options are sorted
// so the vector is deterministic.
func (a BatchArgs) argv() []string {
	argv := []string{"process"}
	for _, theory := range a.Theories {
		argv = append(argv, "-T", theory)
	}
	for _, dir := range a.SessionDirs {
		argv = append(argv, "-d", dir)
	}
	if a.Logic != "" {
		argv = append(argv, "-l", a.Logic)
	}
	names := make([]string, 0, len(a.Options))
	for name := range a.Options {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		argv = append(argv, "-o", fmt.Sprintf("%s=%s", name, a.Options[name]))
	}
	return argv
}

// BatchResult is the captured output of a batch run.
type BatchResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// OK reports whether the process exited cleanly.
func (r *BatchResult) OK() bool {
	return r.ExitCode == 0
}

// Batch runs `isabelle process` with the given arguments and waits for it.
// A non-zero exit is reported in the result, not as an error; errors mean the
// process could not be run at all.
func Batch(ctx context.Context, args BatchArgs, dir string) (*BatchResult, error) {
	cmd := exec.CommandContext(ctx, "isabelle", args.argv()...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("running isabelle %v", args.argv())
	err := cmd.Run()
	result := &BatchResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("failed to run isabelle process: %w", err)
		}
		result.ExitCode = exitErr.ExitCode()
	}
	return result, nil
}
