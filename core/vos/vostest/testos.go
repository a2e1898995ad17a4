// Package vostest provides deterministic processes for tests.
package vostest

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/josephlewis42/minishell/core/vos"
)

// Buffer is a bytes.Buffer that can be written by several pipeline stages at
// once.
type Buffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything written so far.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Reset discards everything written so far.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// Output captures the stdout and stderr of a Proc.
type Output struct {
	Stdout *Buffer
	Stderr *Buffer
}

// NewProc creates a Proc rooted in a fresh temporary directory with captured
// output. The environment holds the host PATH, HOME set to the directory and
// any extra "key=value" entries.
func NewProc(t testing.TB, env ...string) (*vos.Proc, *Output) {
	t.Helper()

	dir := t.TempDir()
	environ := append([]string{
		"PATH=" + os.Getenv("PATH"),
		"HOME=" + dir,
	}, env...)

	out := &Output{Stdout: &Buffer{}, Stderr: &Buffer{}}
	p := vos.NewProc("minishell", vos.NewEnvFromList(environ), dir, vos.NewIO(nil, out.Stdout, out.Stderr))
	return p, out
}
