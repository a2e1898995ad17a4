package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/josephlewis42/minishell/core/ast"
	"github.com/josephlewis42/minishell/core/expand"
	"github.com/josephlewis42/minishell/core/lexer"
	"github.com/josephlewis42/minishell/core/logger"
	"github.com/josephlewis42/minishell/core/redir"
	"github.com/josephlewis42/minishell/core/terminal"
	"github.com/josephlewis42/minishell/core/vos"
)

// RunLine runs one command cycle starting with line: continuation lines are
// read until it parses, heredoc bodies are staged, the tree is executed and
// the staging files removed. It returns the new $?.
func (s *Shell) RunLine(ctx context.Context, line string) int {
	stager := &redir.Stager{
		Fs:     s.Fs,
		Dir:    s.Config.HeredocDir,
		Source: s.Source,
		Expand: expand.New(s.Proc.Env, s.Proc.Status).Expand,
		Warn:   func(msg string) { s.Proc.Errorf("%s", msg) },
	}
	defer stager.Cleanup()

	tree, text, err := s.parse(ctx, stager, line)
	s.addHistory(text)

	switch {
	case errors.Is(err, ast.ErrNoCommand):
		// Solo redirections still run.
	case err != nil:
		return s.fail(text, err)
	}

	if err := s.stage(ctx, stager, tree.Heredocs()); err != nil {
		return s.fail(text, err)
	}

	if len(tree.Solo) > 0 {
		status := s.Executor.Redirect(s.Proc, tree.Solo)
		if tree.Root == ast.NoNode {
			s.Proc.Status = status
			return status
		}
	}
	if tree.Root == ast.NoNode {
		return s.Proc.Status
	}

	return s.Executor.Execute(ctx, s.Proc, tree)
}

// parse tokenizes and builds line, reading continuation lines while the
// input ends inside quotes or after a pipe. It returns the full text read.
//
// The bodies of heredocs on a line that ends in a pipe follow that line, so
// they are staged before the continuation is read and carried over to the
// final tree.
func (s *Shell) parse(ctx context.Context, stager *redir.Stager, line string) (*ast.Tree, string, error) {
	text := line
	var early []*ast.Redirect
	for attempt := 0; ; attempt++ {
		tree, tokens, err := s.build(text)
		if errors.Is(err, ast.ErrIncomplete) {
			pending := ast.PendingHeredocs(tokens)[len(early):]
			if err := s.stage(ctx, stager, pending); err != nil {
				return nil, text, err
			}
			early = append(early, pending...)
		}
		if !needsMore(err) {
			if tree != nil {
				carryStaged(tree, early)
			}
			return tree, text, err
		}
		if attempt >= s.Config.ContinuationLimit {
			return nil, text, s.unexpectedEOF(err)
		}

		next, readErr := s.Source.Next(ctx, s.continuationPrompt())
		switch {
		case errors.Is(readErr, io.EOF):
			return nil, text, s.unexpectedEOF(err)
		case readErr != nil:
			return nil, text, readErr
		}
		text += "\n" + next
	}
}

func (s *Shell) build(text string) (*ast.Tree, []lexer.Token, error) {
	tokens, err := lexer.Tokenize(text, expand.New(s.Proc.Env, s.Proc.Status))
	if err != nil {
		return nil, nil, err
	}
	tree, err := ast.Build(tokens)
	return tree, tokens, err
}

// carryStaged copies the staging files of heredocs read during continuation
// onto the matching heredocs of tree. Both are in input order.
func carryStaged(tree *ast.Tree, early []*ast.Redirect) {
	for i, r := range tree.Heredocs() {
		if i >= len(early) {
			return
		}
		r.Staged = early[i].Staged
	}
}

// unexpectedEOF reports the construct left open by err and returns
// ErrUnexpectedEOF.
func (s *Shell) unexpectedEOF(err error) error {
	var quoteErr *lexer.IncompleteError
	if errors.As(err, &quoteErr) {
		s.Proc.Errorf("%v", quoteErr)
	}
	return ErrUnexpectedEOF
}

func (s *Shell) continuationPrompt() string {
	if !s.Proc.Interactive {
		return ""
	}
	return ContinuationPrompt
}

// stage reads the bodies of the heredocs not staged yet. A SIGINT while
// reading abandons the whole line.
func (s *Shell) stage(ctx context.Context, stager *redir.Stager, heredocs []*ast.Redirect) error {
	var pending []*ast.Redirect
	for _, r := range heredocs {
		if r.Staged == "" {
			pending = append(pending, r)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	if s.Terminal != nil {
		if err := s.Terminal.EnterHeredoc(); err != nil {
			return err
		}
		defer s.Terminal.ExitHeredoc()
	}

	ctx, stop := terminal.InterruptContext(ctx)
	defer stop()
	for _, r := range pending {
		if err := stager.Stage(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// fail reports err for the cycle that read text and sets $? accordingly.
func (s *Shell) fail(text string, err error) int {
	var syntaxErr *lexer.SyntaxError

	switch {
	case errors.Is(err, vos.ErrInterrupted):
		s.record(&logger.Interrupt{During: "input"})
	case errors.As(err, &syntaxErr):
		s.record(&logger.SyntaxError{Line: text, Token: syntaxErr.Token})
		s.Proc.Errorf("%v", err)
	case errors.Is(err, ErrUnexpectedEOF):
		s.record(&logger.SyntaxError{Line: text, Token: "EOF"})
		s.Proc.Errorf("%v", err)
	default:
		s.Proc.Errorf("%v", err)
	}

	s.Proc.Status = Status(err)
	return s.Proc.Status
}

// safeRunLine is RunLine for the loop. A panic ends the session with status
// 1 after the terminal is restored.
func (s *Shell) safeRunLine(ctx context.Context, line string) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		s.record(&logger.Panic{Context: fmt.Sprint(r), Stacktrace: string(debug.Stack())})
		if s.Terminal != nil {
			_ = s.Terminal.Restore()
		}
		s.Proc.Errorf("fatal error: %v", r)
		s.Proc.Exit(StatusFailure)
	}()

	s.RunLine(ctx, line)
}
