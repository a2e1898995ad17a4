// Package terminal owns the terminal mode and signal setup of the shell.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// Terminal snapshots and restores the mode of a terminal file descriptor.
// On anything that is not a terminal every method is a no-op.
type Terminal struct {
	fd      int
	saved   *term.State
	heredoc *term.State
}

// New wraps f, usually os.Stdin.
func New(f *os.File) *Terminal {
	return &Terminal{fd: int(f.Fd())}
}

// IsTerminal reports whether the descriptor is a terminal.
func (t *Terminal) IsTerminal() bool {
	return term.IsTerminal(t.fd)
}

// Save records the current mode so Restore can return to it.
func (t *Terminal) Save() error {
	if !t.IsTerminal() {
		return nil
	}
	state, err := term.GetState(t.fd)
	if err != nil {
		return err
	}
	t.saved = state
	return nil
}

// Restore returns the terminal to the mode recorded by Save.
func (t *Terminal) Restore() error {
	if t.saved == nil {
		return nil
	}
	return term.Restore(t.fd, t.saved)
}

// EnterHeredoc records the mode in effect before a heredoc body is read.
func (t *Terminal) EnterHeredoc() error {
	if !t.IsTerminal() {
		return nil
	}
	state, err := term.GetState(t.fd)
	if err != nil {
		return err
	}
	t.heredoc = state
	return nil
}

// ExitHeredoc puts back the mode recorded by EnterHeredoc, whatever the
// reader left behind.
func (t *Terminal) ExitHeredoc() error {
	state := t.heredoc
	t.heredoc = nil
	if state == nil {
		return nil
	}
	return term.Restore(t.fd, state)
}
