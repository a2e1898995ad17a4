// Package history persists interactive input lines between sessions.
package history

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// DefaultLimit is the number of lines kept when Limit is zero.
const DefaultLimit = 500

// History is a newline delimited file of past input lines, oldest first.
type History struct {
	Fs    afero.Fs
	Path  string
	Limit int
}

// New creates a History for the file at path.
func New(fsys afero.Fs, path string, limit int) *History {
	return &History{Fs: fsys, Path: path, Limit: limit}
}

func (h *History) limit() int {
	if h.Limit <= 0 {
		return DefaultLimit
	}
	return h.Limit
}

// Load reads the most recent lines. A missing file is an empty history.
func (h *History) Load() ([]string, error) {
	fd, err := h.Fs.Open(h.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	var lines []string
	scanner := bufio.NewScanner(fd)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return h.trim(lines), nil
}

// Save replaces the file with the most recent lines. Lines spanning several
// physical lines are stored one physical line each.
func (h *History) Save(lines []string) error {
	var flat []string
	for _, line := range lines {
		for _, part := range strings.Split(line, "\n") {
			if part != "" {
				flat = append(flat, part)
			}
		}
	}
	flat = h.trim(flat)

	if err := h.Fs.MkdirAll(filepath.Dir(h.Path), 0700); err != nil {
		return err
	}

	fd, err := h.Fs.OpenFile(h.Path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(fd)
	for _, line := range flat {
		w.WriteString(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

func (h *History) trim(lines []string) []string {
	if extra := len(lines) - h.limit(); extra > 0 {
		return lines[extra:]
	}
	return lines
}
