package runner

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// DefaultShell is used when no shell is configured.
const DefaultShell = "/bin/sh"

// Shell runs a complete command line and blocks until it exits.
// This abstraction allows for easy testing with fake implementations.
type Shell interface {
	Run(ctx context.Context, command string) error
}

// Compile-time check that SystemShell implements Shell.
var _ Shell = (*SystemShell)(nil)

// SystemShell runs command lines with `<Path> -c <command>`. The child
// inherits the launcher's terminal unless the streams are overridden.
type SystemShell struct {
	Path   string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewSystemShell creates a SystemShell wired to the process's stdio.
// An empty path selects DefaultShell.
func NewSystemShell(path string) *SystemShell {
	if path == "" {
		path = DefaultShell
	}
	return &SystemShell{
		Path:   path,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes command through the shell. The command line is passed
// verbatim; nothing is quoted or escaped.
func (s *SystemShell) Run(ctx context.Context, command string) error {
	//nolint:gosec // G204: running user-configured command lines is the point
	cmd := exec.CommandContext(ctx, s.Path, "-c", command)
	if s.Dir != "" {
		cmd.Dir = s.Dir
	}
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	return cmd.Run()
}
