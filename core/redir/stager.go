package redir

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/josephlewis42/minishell/core/ast"
	"github.com/josephlewis42/minishell/core/lexer"
	"github.com/josephlewis42/minishell/core/vos"
)

// DefaultPrompt is shown while reading a heredoc body interactively.
const DefaultPrompt = "> "

// Stager reads heredoc bodies into private staging files.
type Stager struct {
	Fs afero.Fs

	// Dir holds the staging files, the OS temp directory when empty.
	Dir string

	// Source supplies body lines: buffered input first, then the user.
	Source *vos.LineSource

	// Prompt is shown for interactive lines, DefaultPrompt when empty.
	Prompt string

	// Expand is applied to the lines of heredocs with an unquoted delimiter.
	Expand func(string) string

	// Warn receives non-fatal diagnostics.
	Warn func(msg string)

	staged []string
}

// StageAll reads the body of every heredoc in the tree that has none yet, in
// input order. On any failure the files staged so far are removed.
func (s *Stager) StageAll(ctx context.Context, tree *ast.Tree) error {
	for _, r := range tree.Heredocs() {
		if r.Staged != "" {
			continue
		}
		if err := s.Stage(ctx, r); err != nil {
			s.Cleanup()
			return err
		}
	}
	return nil
}

// Stage reads lines until one equals the delimiter and records the staging
// file in r.Staged. End of input ends the body with a warning. An interrupt
// discards the partial body and returns ErrInterrupted.
func (s *Stager) Stage(ctx context.Context, r *ast.Redirect) error {
	if r.Op != lexer.Heredoc {
		return fmt.Errorf("stage %v: not a heredoc", r.Op)
	}

	f, err := afero.TempFile(s.Fs, s.Dir, "minishell-heredoc-")
	if err != nil {
		return &Error{Op: r.Op, Path: r.Target, Err: err}
	}
	name := f.Name()

	if err := s.copyBody(ctx, f, r); err != nil {
		f.Close()
		_ = s.Fs.Remove(name)
		return err
	}
	if err := f.Close(); err != nil {
		_ = s.Fs.Remove(name)
		return &Error{Op: r.Op, Path: r.Target, Err: err}
	}

	s.staged = append(s.staged, name)
	r.Staged = name
	return nil
}

func (s *Stager) copyBody(ctx context.Context, f io.Writer, r *ast.Redirect) error {
	w := bufio.NewWriter(f)
	for {
		line, err := s.Source.Next(ctx, s.prompt())
		if errors.Is(err, io.EOF) {
			s.warn(fmt.Sprintf("warning: here-document delimited by end-of-file (wanted `%s')", r.Target))
			break
		}
		if errors.Is(err, vos.ErrInterrupted) {
			return ErrInterrupted
		}
		if err != nil {
			return err
		}

		if line == r.Target {
			break
		}
		if r.Expand && s.Expand != nil {
			line = s.Expand(line)
		}
		if _, err := w.WriteString(line + "\n"); err != nil {
			return &Error{Op: r.Op, Path: r.Target, Err: err}
		}
	}

	if err := w.Flush(); err != nil {
		return &Error{Op: r.Op, Path: r.Target, Err: err}
	}
	return nil
}

// Cleanup removes every staging file.
func (s *Stager) Cleanup() {
	for _, name := range s.staged {
		_ = s.Fs.Remove(name)
	}
	s.staged = nil
}

// Staged returns the paths of the live staging files.
func (s *Stager) Staged() []string {
	return append([]string(nil), s.staged...)
}

func (s *Stager) prompt() string {
	if s.Prompt == "" {
		return DefaultPrompt
	}
	return s.Prompt
}

func (s *Stager) warn(msg string) {
	if s.Warn != nil {
		s.Warn(msg)
	}
}
