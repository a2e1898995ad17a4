package exec

import (
	"errors"
	"io/fs"

	"golang.org/x/sys/unix"

	"github.com/josephlewis42/minishell/core/vos"
)

// Exit statuses for commands that could not be run.
const (
	StatusFailure       = 1
	StatusNotExecutable = 126
	StatusNotFound      = 127
	StatusSignalBase    = 128
)

// Error is a command that could not be started.
type Error struct {
	Name   string
	Err    error
	Status int
}

func (e *Error) Error() string {
	if errors.Is(e.Err, unix.ENOEXEC) {
		return e.Name + ": cannot execute binary file: Exec format error"
	}
	return e.Name + ": " + vos.Describe(e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// lookupError classifies a failed PATH search.
func lookupError(name string, err error) *Error {
	switch {
	case errors.Is(err, vos.ErrNotFound):
		return &Error{Name: name, Err: err, Status: StatusNotFound}
	case errors.Is(err, fs.ErrNotExist):
		return &Error{Name: name, Err: err, Status: StatusNotFound}
	default:
		return &Error{Name: name, Err: err, Status: StatusNotExecutable}
	}
}

// startError classifies a failed exec by its errno.
func startError(name string, err error) *Error {
	switch {
	case errors.Is(err, unix.ENOEXEC), errors.Is(err, unix.EACCES):
		return &Error{Name: name, Err: err, Status: StatusNotExecutable}
	case errors.Is(err, unix.EISDIR):
		return &Error{Name: name, Err: vos.ErrIsDir, Status: StatusNotExecutable}
	case errors.Is(err, unix.ENOENT):
		return &Error{Name: name, Err: fs.ErrNotExist, Status: StatusNotFound}
	default:
		return &Error{Name: name, Err: err, Status: StatusFailure}
	}
}
