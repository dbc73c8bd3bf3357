// Package runner resolves keymap command templates and executes them
// through the host shell.
//
// Typed text is substituted verbatim. Shell metacharacters in user input
// reach the shell unchanged, exactly as if the user had typed the full
// command line themselves.
package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/zjrosen/launchpad/internal/log"
)

// ErrMissingInput indicates a template declares a placeholder but no text
// was supplied for it.
var ErrMissingInput = errors.New("command requires input but none was given")

// Resolve substitutes text for the first occurrence of placeholder in
// template. An empty placeholder means the template needs no input and is
// returned unchanged.
func Resolve(template, placeholder, text string) (string, error) {
	if placeholder == "" {
		return template, nil
	}
	if text == "" {
		return "", fmt.Errorf("%w: placeholder %q", ErrMissingInput, placeholder)
	}
	return strings.Replace(template, placeholder, text, 1), nil
}

// OutcomeKind classifies how a command ended.
type OutcomeKind int

const (
	Success OutcomeKind = iota
	NonZeroExit
	SpawnFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case NonZeroExit:
		return "non-zero exit"
	case SpawnFailure:
		return "spawn failure"
	default:
		return "unknown"
	}
}

// Outcome is the reported result of running one command.
type Outcome struct {
	Kind     OutcomeKind
	Command  string
	ExitCode int   // Set for NonZeroExit
	Err      error // Set for NonZeroExit and SpawnFailure
}

// exitCoder is satisfied by *exec.ExitError.
type exitCoder interface {
	ExitCode() int
}

// Runner executes resolved command lines. It never retries.
type Runner struct {
	shell Shell
}

// New creates a Runner on top of shell.
func New(shell Shell) *Runner {
	return &Runner{shell: shell}
}

// Execute runs command and blocks until it finishes. Failures are reported
// in the Outcome, never as a Go error.
func (r *Runner) Execute(ctx context.Context, command string) Outcome {
	log.Info(log.CatRunner, "Executing command", "command", command)

	err := r.shell.Run(ctx, command)
	if err == nil {
		log.Debug(log.CatRunner, "Command succeeded", "command", command)
		return Outcome{Kind: Success, Command: command}
	}

	var exitErr exitCoder
	if errors.As(err, &exitErr) {
		log.Warn(log.CatRunner, "Command exited non-zero", "command", command, "code", exitErr.ExitCode())
		return Outcome{Kind: NonZeroExit, Command: command, ExitCode: exitErr.ExitCode(), Err: err}
	}

	log.ErrorErr(log.CatRunner, "Failed to spawn command", err, "command", command)
	return Outcome{Kind: SpawnFailure, Command: command, Err: err}
}
