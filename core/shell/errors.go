package shell

import (
	"errors"

	"github.com/josephlewis42/minishell/core/ast"
	"github.com/josephlewis42/minishell/core/exec"
	"github.com/josephlewis42/minishell/core/lexer"
	"github.com/josephlewis42/minishell/core/vos"
)

// Shell level exit statuses.
const (
	StatusSuccess     = 0
	StatusFailure     = exec.StatusFailure
	StatusSyntax      = 2
	StatusInterrupted = exec.StatusSignalBase + 2
)

// ErrUnexpectedEOF is returned when input ends while a line still needs
// continuation.
var ErrUnexpectedEOF = errors.New("syntax error: unexpected end of file")

// Status maps an error from any stage of a command cycle to the exit status
// the shell reports for it.
func Status(err error) int {
	var (
		syntaxErr *lexer.SyntaxError
		quoteErr  *lexer.IncompleteError
		execErr   *exec.Error
	)

	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, ast.ErrNoCommand):
		return StatusSuccess
	case errors.Is(err, vos.ErrInterrupted):
		return StatusInterrupted
	case errors.As(err, &syntaxErr), errors.As(err, &quoteErr),
		errors.Is(err, ast.ErrIncomplete), errors.Is(err, ErrUnexpectedEOF):
		return StatusSyntax
	case errors.As(err, &execErr):
		return execErr.Status
	default:
		// Redirection and start failures.
		return StatusFailure
	}
}

// needsMore reports whether err asks for a continuation line.
func needsMore(err error) bool {
	var quoteErr *lexer.IncompleteError
	return errors.As(err, &quoteErr) || errors.Is(err, ast.ErrIncomplete)
}
