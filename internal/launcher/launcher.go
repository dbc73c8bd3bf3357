// Package launcher implements the keymap dispatcher: it shows the menu,
// listens for trigger keys, runs an editing session when a command needs
// text, and hands the resolved command line to the runner.
//
// The dispatcher is single-threaded. A cycle starts on a trigger key and
// ends back in StateListening. The quit keys end the session, as do key
// read failures and a terminal that cannot be put back in raw mode.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/launchpad/internal/keymap"
	"github.com/zjrosen/launchpad/internal/lineedit"
	"github.com/zjrosen/launchpad/internal/log"
	"github.com/zjrosen/launchpad/internal/runner"
	"github.com/zjrosen/launchpad/internal/terminal"
)

// DefaultPrompt is used when neither the keymap nor Config sets a prompt.
const DefaultPrompt = "Enter input:"

var (
	// errKeyRead marks a failed key read, which ends the session.
	errKeyRead = errors.New("reading key")
	// errResume marks a terminal that could not be put back in raw mode.
	errResume = errors.New("re-entering raw mode")
)

// Terminal is what the dispatcher drives: an oracle it writes to and
// queries, plus a key source.
type Terminal interface {
	terminal.Oracle
	terminal.KeyReader
}

// Executor runs a resolved command line.
type Executor interface {
	Execute(ctx context.Context, command string) runner.Outcome
}

// Compile-time check that Runner satisfies Executor.
var _ Executor = (*runner.Runner)(nil)

// Config holds dispatcher settings.
type Config struct {
	Keymaps keymap.Table
	QuitKey rune   // Reserved key that ends the session from the menu
	Prompt  string // Default prompt for keymaps without one
	Width   int    // Terminal width for menu truncation; 0 disables
}

// Launcher is the keymap dispatcher.
type Launcher struct {
	term  Terminal
	exec  Executor
	cfg   Config
	state State
}

// New creates a dispatcher in StateMenu.
func New(term Terminal, exec Executor, cfg Config) *Launcher {
	if cfg.QuitKey == 0 {
		cfg.QuitKey = 'q'
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	return &Launcher{term: term, exec: exec, cfg: cfg, state: StateMenu}
}

// State returns the current dispatcher state.
func (l *Launcher) State() State {
	return l.state
}

// Run shows the menu and dispatches keys until the user quits, input ends,
// or ctx is cancelled. It returns an error only when a key read fails, raw
// mode cannot be restored after a command, or ctx is done. The cursor is shown again on every exit path.
func (l *Launcher) Run(ctx context.Context) error {
	defer func() {
		if _, err := io.WriteString(l.term, ansi.ShowCursor); err != nil {
			log.ErrorErr(log.CatDispatch, "Failed to show cursor", err)
		}
	}()

	l.setState(StateMenu)
	if err := l.write(l.renderMenu()); err != nil {
		l.reportTerminalError(err)
	}
	l.setState(StateListening)

	for {
		if err := ctx.Err(); err != nil {
			l.setState(StateTerminated)
			return err
		}

		key, err := l.term.ReadKey()
		if err != nil {
			return l.stop(fmt.Errorf("%w: %w", errKeyRead, err))
		}

		done, err := l.handleKey(ctx, key)
		if done {
			return l.stop(err)
		}
	}
}

// stop terminates the session. End of input is a normal exit.
func (l *Launcher) stop(err error) error {
	l.setState(StateTerminated)
	if errors.Is(err, io.EOF) {
		log.Info(log.CatDispatch, "Input closed")
		return nil
	}
	return err
}

// handleKey processes one key in StateListening. It reports whether the
// session is over.
func (l *Launcher) handleKey(ctx context.Context, key terminal.Key) (bool, error) {
	switch key.Type {
	case terminal.KeyCtrlC, terminal.KeyCtrlD:
		log.Info(log.CatDispatch, "Quit", "key", key.String())
		return true, nil
	case terminal.KeyRune:
	default:
		log.Debug(log.CatDispatch, "Ignoring key", "key", key.String())
		return false, nil
	}

	if key.Rune == l.cfg.QuitKey {
		log.Info(log.CatDispatch, "Quit", "key", key.String())
		return true, nil
	}

	km, ok := l.cfg.Keymaps.Find(key.Rune)
	if !ok {
		log.Debug(log.CatDispatch, "No keymap for key", "key", key.String())
		return false, nil
	}

	if err := l.dispatch(ctx, km); err != nil {
		return true, err
	}
	l.listen()
	return false, nil
}

// dispatch runs one cycle for km. Key read and raw mode failures are
// returned; everything else is only reported on the terminal.
func (l *Launcher) dispatch(ctx context.Context, km keymap.Keymap) error {
	log.Debug(log.CatDispatch, "Keymap selected", "key", string(km.Key), "command", km.Command)

	command := km.Command
	if km.RequiresInput() {
		l.setState(StateEditing)
		res, err := l.edit(km)
		switch {
		case errors.Is(err, errKeyRead):
			return err
		case errors.Is(err, lineedit.ErrTerminalIO):
			l.reportTerminalError(err)
			return nil
		case err != nil:
			log.Debug(log.CatDispatch, "Invalid input", "error", err)
			l.report(renderInvalidInput(err))
			return nil
		case res.IsExit():
			log.Debug(log.CatDispatch, "Input cancelled", "key", string(km.Key))
			l.report(renderCancelled())
			return nil
		}

		command, err = runner.Resolve(km.Command, km.Placeholder, res.Text)
		if err != nil {
			l.report(renderInvalidInput(err))
			return nil
		}
	}

	l.setState(StateDispatching)
	return l.execute(ctx, command)
}

// edit prints the prompt and runs an editing session until Enter, Escape
// or Ctrl-C.
func (l *Launcher) edit(km keymap.Keymap) (lineedit.Result, error) {
	prompt := km.Prompt
	if prompt == "" {
		prompt = l.cfg.Prompt
	}
	if err := l.write(renderPrompt(prompt)); err != nil {
		return lineedit.Result{}, &lineedit.IOError{Op: "write", Err: err}
	}

	ed, err := lineedit.New(l.term)
	if err != nil {
		return lineedit.Result{}, err
	}

	for {
		key, err := l.term.ReadKey()
		if err != nil {
			return lineedit.Result{}, fmt.Errorf("%w: %w", errKeyRead, err)
		}

		switch key.Type {
		case terminal.KeyRune:
			err = ed.Insert(key.Rune)
		case terminal.KeyBackspace:
			err = ed.Backspace()
		case terminal.KeyLeft:
			err = ed.MoveLeft()
		case terminal.KeyRight:
			err = ed.MoveRight()
		case terminal.KeyEnter:
			return ed.Finalize()
		case terminal.KeyEscape, terminal.KeyCtrlC:
			return ed.Cancel(), nil
		default:
			continue
		}
		if err != nil {
			return lineedit.Result{}, err
		}
	}
}

// execute runs command with raw mode suspended and reports the outcome.
func (l *Launcher) execute(ctx context.Context, command string) error {
	if err := l.write(renderCommand(command) + ansi.ShowCursor); err != nil {
		l.reportTerminalError(err)
		return nil
	}

	suspender, ok := l.term.(terminal.Suspender)
	if ok {
		if err := suspender.Suspend(); err != nil {
			// The command still runs, with the terminal left raw.
			l.reportTerminalError(fmt.Errorf("leaving raw mode: %w", err))
		}
	}

	outcome := l.exec.Execute(ctx, command)
	log.Debug(log.CatDispatch, "Command finished", "command", command, "outcome", outcome.Kind.String())

	var resumeErr error
	if ok {
		resumeErr = suspender.Resume()
	}
	l.report(renderOutcome(outcome))

	if resumeErr != nil {
		err := fmt.Errorf("%w: %w", errResume, resumeErr)
		l.reportTerminalError(err)
		return err
	}
	return nil
}

// listen returns to StateListening with a hint line.
func (l *Launcher) listen() {
	l.setState(StateListening)
	if err := l.write(renderHint(l.cfg.QuitKey)); err != nil {
		log.ErrorErr(log.CatDispatch, "Failed to write hint", err)
	}
}

func (l *Launcher) report(s string) {
	if err := l.write(s); err != nil {
		log.ErrorErr(log.CatDispatch, "Failed to write result", err)
	}
}

func (l *Launcher) reportTerminalError(err error) {
	log.ErrorErr(log.CatDispatch, "Terminal error", err, "state", l.state.String())
	l.report(renderTerminalError(err))
}

func (l *Launcher) write(s string) error {
	_, err := io.WriteString(l.term, s)
	return err
}

func (l *Launcher) setState(s State) {
	if l.state != s {
		log.Debug(log.CatDispatch, "State change", "from", l.state.String(), "to", s.String())
	}
	l.state = s
}
