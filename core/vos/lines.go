package vos

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrInterrupted is returned by a LineReader when the user cancels a read.
var ErrInterrupted = errors.New("interrupted")

// LineReader reads one line of user input without its trailing newline.
// Implementations return io.EOF at end of input and ErrInterrupted (or the
// context's error) when the read is cancelled.
type LineReader interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// LineSource serves buffered lines first, then falls back to a LineReader.
// Buffered lines come from multi-line input such as a script passed with -c
// or a pasted block; they are consumed without prompting.
type LineSource struct {
	buffered []string
	reader   LineReader
}

// NewLineSource creates a source backed by reader, which may be nil.
func NewLineSource(reader LineReader) *LineSource {
	return &LineSource{reader: reader}
}

// Push queues text, split on newlines, ahead of the reader. A single
// trailing newline does not produce an empty line.
func (s *LineSource) Push(text string) {
	text = strings.TrimSuffix(text, "\n")
	s.buffered = append(s.buffered, strings.Split(text, "\n")...)
}

// Buffered returns the number of queued lines.
func (s *LineSource) Buffered() int {
	return len(s.buffered)
}

// Next returns the next line.
func (s *LineSource) Next(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", ErrInterrupted
	}
	if len(s.buffered) > 0 {
		line := s.buffered[0]
		s.buffered = s.buffered[1:]
		return line, nil
	}
	if s.reader == nil {
		return "", io.EOF
	}

	line, err := s.reader.ReadLine(ctx, prompt)
	if errors.Is(err, context.Canceled) {
		return "", ErrInterrupted
	}
	if err != nil {
		return "", err
	}

	// A paste can deliver several lines at once; keep the rest for later reads.
	if first, rest, ok := strings.Cut(line, "\n"); ok {
		s.Push(rest)
		return first, nil
	}
	return line, nil
}
