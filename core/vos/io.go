package vos

import (
	"io"
	"os"
)

// IO holds the standard streams of a process. A stream that is an *os.File
// is handed to child processes as a raw descriptor.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewIO creates stdio streams, replacing nil streams with a null device.
func NewIO(stdin io.Reader, stdout, stderr io.Writer) IO {
	return IO{
		Stdin:  readerOrNull(stdin),
		Stdout: writerOrDiscard(stdout),
		Stderr: writerOrDiscard(stderr),
	}
}

// OSIO returns the streams of the current process.
func OSIO() IO {
	return IO{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// NullIO creates a valid /dev/null style I/O, reads hit EOF and writes are
// discarded.
func NullIO() IO {
	return NewIO(nil, nil, nil)
}

func writerOrDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

func readerOrNull(r io.Reader) io.Reader {
	if r == nil {
		return devNull{}
	}
	return r
}

// devNull always reports end of file.
type devNull struct{}

var _ io.Reader = devNull{}

func (devNull) Read([]byte) (int, error) {
	return 0, io.EOF
}
