package vos

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

var (
	// ErrNotFound is the error resulting if a PATH search failed to find an
	// executable file.
	ErrNotFound = errors.New("command not found")

	// ErrIsDir is returned when a command or redirect names a directory.
	ErrIsDir = errors.New("Is a directory")

	// ErrNotDir is returned when a path component that must be a directory
	// is not one.
	ErrNotDir = errors.New("Not a directory")
)

// BuiltinFunc is a command that runs inside the shell process.
type BuiltinFunc func(p *Proc, args []string) int

// Proc is the state a command observes: environment, working directory,
// standard streams and the status of the last command. The interactive shell
// owns one Proc; every pipeline stage runs on a Clone so its changes never
// reach the parent.
type Proc struct {
	Env *Env
	IO

	// Dir is the working directory. It is always absolute.
	Dir string

	// Status is the exit status of the last command, $?.
	Status int

	// Name prefixes diagnostics written with Errorf.
	Name string

	// Subshell is set on clones created for a pipeline stage.
	Subshell bool

	// Interactive is set when commands are read from a terminal.
	Interactive bool

	exitCode *int
}

// NewProc creates a process rooted at dir.
func NewProc(name string, env *Env, dir string, stdio IO) *Proc {
	if env == nil {
		env = NewEnv()
	}
	return &Proc{
		Env:  env,
		IO:   stdio,
		Dir:  filepath.Clean(dir),
		Name: name,
	}
}

// Clone copies the process the way fork would: the environment is copied and
// the clone is marked as a subshell.
func (p *Proc) Clone() *Proc {
	out := *p
	out.Env = p.Env.Clone()
	out.Subshell = true
	out.exitCode = nil
	return &out
}

// Errorf writes a diagnostic prefixed with the shell name to stderr.
func (p *Proc) Errorf(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	if p.Name != "" {
		msg = p.Name + ": " + msg
	}
	fmt.Fprintln(p.Stderr, msg)
}

// Exit requests the shell stop after the current command.
func (p *Proc) Exit(code int) {
	p.exitCode = &code
}

// Exited reports whether Exit was called and with which code.
func (p *Proc) Exited() (int, bool) {
	if p.exitCode == nil {
		return 0, false
	}
	return *p.exitCode, true
}

// Abs resolves path against the working directory.
func (p *Proc) Abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.Dir, path)
}

// Chdir changes the working directory of the process.
func (p *Proc) Chdir(dir string) error {
	dir = p.Abs(dir)

	stat, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fs.ErrNotExist
	case err != nil:
		return err
	case !stat.IsDir():
		return ErrNotDir
	}
	if err := unix.Access(dir, unix.X_OK); err != nil {
		return fs.ErrPermission
	}
	p.Dir = dir
	return nil
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fs.ErrNotExist
	case err != nil:
		return err
	case d.IsDir():
		return ErrIsDir
	}
	if unix.Access(file, unix.X_OK) != nil {
		return fs.ErrPermission
	}
	return nil
}

// LookPath searches for an executable named file in the directories named by
// the PATH environment variable. If file contains a slash, it is tried directly
// and the PATH is not consulted. The first executable match wins; if only
// non-executable matches exist fs.ErrPermission is returned.
func (p *Proc) LookPath(file string) (string, error) {
	if strings.Contains(file, "/") {
		if err := findExecutable(p.Abs(file)); err != nil {
			return "", err
		}
		return p.Abs(file), nil
	}
	if file == "" {
		return "", ErrNotFound
	}

	path, ok := p.Env.LookupEnv("PATH")
	if !ok || path == "" {
		// Without a search path the name is looked up like a relative path.
		if err := findExecutable(p.Abs(file)); err != nil {
			return "", err
		}
		return p.Abs(file), nil
	}

	var firstErr error
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := p.Abs(filepath.Join(dir, file))
		err := findExecutable(candidate)
		if err == nil {
			return candidate, nil
		}
		if errors.Is(err, fs.ErrPermission) && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return "", firstErr
	}
	return "", ErrNotFound
}
