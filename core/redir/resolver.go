// Package redir opens redirection targets and stages heredoc bodies.
//
// Files are opened when the owning command runs, not while the line is
// parsed, so a redirection in a pipeline stage only has side effects in that
// stage.
package redir

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/sys/unix"

	"github.com/josephlewis42/minishell/core/ast"
	"github.com/josephlewis42/minishell/core/lexer"
	"github.com/josephlewis42/minishell/core/vos"
)

var (
	// ErrAmbiguous is returned for a target that expanded to nothing.
	ErrAmbiguous = errors.New("ambiguous redirect")

	// ErrNotStaged is returned when a heredoc is opened before its body was
	// read.
	ErrNotStaged = errors.New("here-document body not read")

	// ErrInterrupted is returned when the user cancels reading a heredoc.
	ErrInterrupted = vos.ErrInterrupted
)

// Error describes a redirection that could not be performed.
type Error struct {
	Op   lexer.Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	return e.Path + ": " + vos.Describe(e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Resolver opens the files named by redirections.
type Resolver struct {
	Fs afero.Fs
}

// NewResolver creates a resolver over the given filesystem.
func NewResolver(fsys afero.Fs) *Resolver {
	return &Resolver{Fs: fsys}
}

// Open opens the target of r, resolving relative names against dir. The
// caller owns the returned file.
func (res *Resolver) Open(r *ast.Redirect, dir string) (afero.File, error) {
	if r.Ambiguous {
		return nil, &Error{Op: r.Op, Path: r.Raw, Err: ErrAmbiguous}
	}

	var (
		f   afero.File
		err error
	)
	switch r.Op {
	case lexer.InputRedirect:
		f, err = res.openInput(abs(dir, r.Target))
	case lexer.OutputRedirect:
		f, err = res.openOutput(abs(dir, r.Target), os.O_TRUNC)
	case lexer.AppendRedirect:
		f, err = res.openOutput(abs(dir, r.Target), os.O_APPEND)
	case lexer.Heredoc:
		if r.Staged == "" {
			err = ErrNotStaged
		} else {
			f, err = res.Fs.Open(r.Staged)
		}
	default:
		err = errors.New("not a redirection")
	}

	if err != nil {
		return nil, &Error{Op: r.Op, Path: r.Target, Err: err}
	}
	return f, nil
}

func (res *Resolver) openInput(path string) (afero.File, error) {
	info, err := res.stat(path)
	switch {
	case err != nil:
		return nil, err
	case info.IsDir():
		return nil, vos.ErrIsDir
	case !res.access(path, unix.R_OK):
		return nil, fs.ErrPermission
	}
	return res.Fs.Open(path)
}

func (res *Resolver) openOutput(path string, flag int) (afero.File, error) {
	info, err := res.stat(path)
	switch {
	case err == nil:
		if info.IsDir() {
			return nil, vos.ErrIsDir
		}
		if !res.access(path, unix.W_OK) {
			return nil, fs.ErrPermission
		}

	case errors.Is(err, fs.ErrNotExist):
		parent := filepath.Dir(path)
		pinfo, err := res.stat(parent)
		switch {
		case err != nil:
			return nil, err
		case !pinfo.IsDir():
			return nil, vos.ErrNotDir
		case !res.access(parent, unix.W_OK|unix.X_OK):
			return nil, fs.ErrPermission
		}

	default:
		return nil, err
	}

	return res.Fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|flag, 0644)
}

// stat reports a path running through a regular file as ErrNotDir.
func (res *Resolver) stat(path string) (fs.FileInfo, error) {
	info, err := res.Fs.Stat(path)
	if errors.Is(err, unix.ENOTDIR) {
		return nil, vos.ErrNotDir
	}
	return info, err
}

// access checks permissions against the real user; in-memory filesystems
// have no owners and allow everything.
func (res *Resolver) access(path string, mode uint32) bool {
	if _, ok := res.Fs.(*afero.OsFs); !ok {
		return true
	}
	return unix.Access(path, mode) == nil
}

func abs(dir, path string) string {
	if filepath.IsAbs(path) || dir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(dir, path)
}
