package shell

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/josephlewis42/minishell/core/logger"
	"github.com/josephlewis42/minishell/core/vos"
)

// Run reads and runs lines until end of input or exit, and returns the
// status the process should exit with.
func (s *Shell) Run(ctx context.Context) int {
	for {
		if code, exited := s.Proc.Exited(); exited {
			return code
		}

		line, err := s.Source.Next(ctx, s.primaryPrompt())
		switch {
		case errors.Is(err, io.EOF):
			if s.Proc.Interactive {
				fmt.Fprintln(s.Proc.Stderr, "exit")
			}
			return s.Proc.Status

		case errors.Is(err, vos.ErrInterrupted):
			// Interrupt clears the line.
			s.record(&logger.Interrupt{During: "prompt"})
			s.Proc.Status = StatusInterrupted
			if ctx.Err() != nil {
				return s.Proc.Status
			}
			continue

		case err != nil:
			s.Proc.Errorf("%v", err)
			return StatusFailure
		}

		s.safeRunLine(ctx, line)
	}
}

// RunScript queues script ahead of any other input and runs until it is
// consumed, as for the -c option.
func (s *Shell) RunScript(ctx context.Context, script string) int {
	s.Source.Push(script)
	for s.Source.Buffered() > 0 {
		if code, exited := s.Proc.Exited(); exited {
			return code
		}
		line, err := s.Source.Next(ctx, "")
		if err != nil {
			break
		}
		s.safeRunLine(ctx, line)
	}

	if code, exited := s.Proc.Exited(); exited {
		return code
	}
	return s.Proc.Status
}

func (s *Shell) primaryPrompt() string {
	if !s.Proc.Interactive {
		return ""
	}
	return s.Prompt()
}
