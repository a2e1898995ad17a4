package redir

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephlewis42/minishell/core/ast"
	"github.com/josephlewis42/minishell/core/lexer"
	"github.com/josephlewis42/minishell/core/vos"
)

// scriptReader answers prompts from a fixed list of lines.
type scriptReader struct {
	lines   []string
	prompts []string
	err     error
}

func (r *scriptReader) ReadLine(ctx context.Context, prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		if r.err != nil {
			return "", r.err
		}
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func newStager(t *testing.T, reader vos.LineReader) (*Stager, afero.Fs, *[]string) {
	t.Helper()

	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/staging", 0700))

	var warnings []string
	return &Stager{
		Fs:     fsys,
		Dir:    "/staging",
		Source: vos.NewLineSource(reader),
		Expand: strings.ToUpper,
		Warn:   func(msg string) { warnings = append(warnings, msg) },
	}, fsys, &warnings
}

func staged(t *testing.T, fsys afero.Fs, r *ast.Redirect) string {
	t.Helper()
	require.NotEmpty(t, r.Staged)
	b, err := afero.ReadFile(fsys, r.Staged)
	require.NoError(t, err)
	return string(b)
}

func TestStager_Interactive(t *testing.T) {
	reader := &scriptReader{lines: []string{"hello $x", "  EOF", "EOF", "after"}}
	s, fsys, warnings := newStager(t, reader)

	r := &ast.Redirect{Op: lexer.Heredoc, Target: "EOF", Expand: true}
	require.NoError(t, s.Stage(context.Background(), r))

	assert.Equal(t, "HELLO $X\n  EOF\n", staged(t, fsys, r))
	assert.Equal(t, []string{"> ", "> ", "> "}, reader.prompts)
	assert.Empty(t, *warnings)
	assert.Equal(t, []string{"after"}, reader.lines)
}

func TestStager_QuotedDelimiter(t *testing.T) {
	s, fsys, _ := newStager(t, &scriptReader{lines: []string{"keep $HOME", "END"}})

	r := &ast.Redirect{Op: lexer.Heredoc, Target: "END"}
	require.NoError(t, s.Stage(context.Background(), r))
	assert.Equal(t, "keep $HOME\n", staged(t, fsys, r))
}

func TestStager_BufferedFirst(t *testing.T) {
	reader := &scriptReader{lines: []string{"typed", "B"}}
	s, fsys, _ := newStager(t, reader)
	s.Source.Push("pasted one\npasted two\nA\nfrom paste\n")

	tree := &ast.Tree{Root: ast.NoNode, Solo: []*ast.Redirect{
		{Op: lexer.Heredoc, Target: "A", Pos: 0},
		{Op: lexer.Heredoc, Target: "B", Pos: 5},
	}}
	require.NoError(t, s.StageAll(context.Background(), tree))

	assert.Equal(t, "pasted one\npasted two\n", staged(t, fsys, tree.Solo[0]))
	assert.Equal(t, "from paste\ntyped\n", staged(t, fsys, tree.Solo[1]))
	assert.Len(t, s.Staged(), 2)

	s.Cleanup()
	assert.Empty(t, s.Staged())
	for _, r := range tree.Solo {
		exists, err := afero.Exists(fsys, r.Staged)
		require.NoError(t, err)
		assert.False(t, exists, r.Staged)
	}
}

func TestStager_EndOfInput(t *testing.T) {
	s, fsys, warnings := newStager(t, nil)
	s.Source.Push("partial")

	r := &ast.Redirect{Op: lexer.Heredoc, Target: "EOF"}
	require.NoError(t, s.Stage(context.Background(), r))

	assert.Equal(t, "partial\n", staged(t, fsys, r))
	assert.Equal(t, []string{"warning: here-document delimited by end-of-file (wanted `EOF')"}, *warnings)
}

func TestStager_Interrupted(t *testing.T) {
	reader := &scriptReader{lines: []string{"first"}, err: vos.ErrInterrupted}
	s, fsys, _ := newStager(t, reader)

	tree := &ast.Tree{Root: ast.NoNode, Solo: []*ast.Redirect{
		{Op: lexer.Heredoc, Target: "A", Pos: 0},
	}}

	err := s.StageAll(context.Background(), tree)
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.Empty(t, tree.Solo[0].Staged)
	assert.Empty(t, s.Staged())

	files, err := afero.ReadDir(fsys, "/staging")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestStager_CancelledContext(t *testing.T) {
	s, fsys, _ := newStager(t, &scriptReader{lines: []string{"x", "EOF"}})
	s.Source.Push("first")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Stage(ctx, &ast.Redirect{Op: lexer.Heredoc, Target: "EOF"})
	assert.ErrorIs(t, err, ErrInterrupted)

	files, err := afero.ReadDir(fsys, "/staging")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestStager_NotHeredoc(t *testing.T) {
	s, _, _ := newStager(t, nil)
	assert.Error(t, s.Stage(context.Background(), &ast.Redirect{Op: lexer.OutputRedirect, Target: "x"}))
}

func TestStager_SkipsStaged(t *testing.T) {
	reader := &scriptReader{lines: []string{"second", "B"}}
	s, fsys, _ := newStager(t, reader)

	tree := &ast.Tree{Root: ast.NoNode, Solo: []*ast.Redirect{
		{Op: lexer.Heredoc, Target: "A", Pos: 0, Staged: "/staging/earlier"},
		{Op: lexer.Heredoc, Target: "B", Pos: 5},
	}}
	require.NoError(t, s.StageAll(context.Background(), tree))

	assert.Equal(t, "/staging/earlier", tree.Solo[0].Staged)
	assert.Equal(t, "second\n", staged(t, fsys, tree.Solo[1]))
	assert.Len(t, s.Staged(), 1)
}
