package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/abiosoft/readline"

	"github.com/josephlewis42/minishell/core/vos"
)

// LineEditor reads lines with editing and history from a terminal.
type LineEditor struct {
	Readline *readline.Instance
}

var _ vos.LineReader = (*LineEditor)(nil)

// EditorConfig configures NewLineEditor.
type EditorConfig struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// HistoryLimit bounds the in-memory history.
	HistoryLimit int

	// Complete lists words offered for completion at the start of a line.
	Complete []string
}

// NewLineEditor creates a line editor. History is kept in memory only; the
// caller loads and saves it.
func NewLineEditor(config EditorConfig) (*LineEditor, error) {
	var items []readline.PrefixCompleterInterface
	for _, word := range config.Complete {
		items = append(items, readline.PcItem(word))
	}

	cfg := &readline.Config{
		Stdin:                  readline.NewCancelableStdin(config.Stdin),
		Stdout:                 config.Stdout,
		Stderr:                 config.Stderr,
		HistoryLimit:           config.HistoryLimit,
		DisableAutoSaveHistory: true,
		InterruptPrompt:        "^C",
		AutoComplete:           readline.NewPrefixCompleter(items...),
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}
	return &LineEditor{Readline: rl}, nil
}

// ReadLine shows prompt and reads one line. Ctrl-C yields vos.ErrInterrupted
// and Ctrl-D on an empty line io.EOF.
func (e *LineEditor) ReadLine(ctx context.Context, prompt string) (string, error) {
	if ctx.Err() != nil {
		return "", vos.ErrInterrupted
	}

	e.Readline.SetPrompt(prompt)
	line, err := e.Readline.Readline()
	switch {
	case errors.Is(err, readline.ErrInterrupt):
		return "", vos.ErrInterrupted
	case err != nil:
		return "", err
	}
	return line, nil
}

// AddHistory appends lines to the in-memory history.
func (e *LineEditor) AddHistory(lines ...string) {
	for _, line := range lines {
		_ = e.Readline.SaveHistory(line)
	}
}

// Close releases the terminal.
func (e *LineEditor) Close() error {
	return e.Readline.Close()
}

type lineResult struct {
	line string
	err  error
}

// PlainReader reads lines from a stream that is not a terminal, such as a
// script on stdin. A read in progress is abandoned, not lost, when its
// context is cancelled: the next call picks the line up.
//
// Files are read one byte at a time and only on request, so the input after
// the current line is left for the commands the line starts.
type PlainReader struct {
	// Prompt, when set, receives the prompt before each read.
	Prompt io.Writer

	r       io.Reader
	lines   chan lineResult
	pending bool
	eof     bool
}

var _ vos.LineReader = (*PlainReader)(nil)

// NewPlainReader creates a reader over r. Readers other than files, which
// no child process shares, are buffered.
func NewPlainReader(r io.Reader) *PlainReader {
	if _, ok := r.(*os.File); !ok {
		r = bufio.NewReader(r)
	}
	return &PlainReader{
		r:     r,
		lines: make(chan lineResult, 1),
	}
}

func (p *PlainReader) readOne() {
	var line []byte
	var buf [1]byte
	for {
		n, err := p.r.Read(buf[:])
		if n > 0 {
			if buf[0] == '\n' {
				p.lines <- lineResult{line: string(line)}
				return
			}
			line = append(line, buf[0])
		}
		if err != nil {
			if err == io.EOF && len(line) > 0 {
				err = nil
			}
			p.lines <- lineResult{line: string(line), err: err}
			return
		}
	}
}

// ReadLine returns the next line without its newline. A final line without
// one is returned as is and io.EOF comes on the next call.
func (p *PlainReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	if p.Prompt != nil && prompt != "" {
		fmt.Fprint(p.Prompt, prompt)
	}
	if p.eof {
		return "", io.EOF
	}

	if !p.pending {
		p.pending = true
		go p.readOne()
	}

	select {
	case res := <-p.lines:
		p.pending = false
		if res.err != nil {
			p.eof = true
			return "", res.err
		}
		return res.line, nil
	case <-ctx.Done():
		return "", vos.ErrInterrupted
	}
}
