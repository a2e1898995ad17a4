package redir

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephlewis42/minishell/core/ast"
	"github.com/josephlewis42/minishell/core/lexer"
	"github.com/josephlewis42/minishell/core/vos"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestResolver_Input(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "in"), "hello\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	res := NewResolver(afero.NewOsFs())

	f, err := res.Open(&ast.Redirect{Op: lexer.InputRedirect, Target: "in"}, dir)
	require.NoError(t, err)
	b, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(b))
	require.NoError(t, f.Close())

	_, err = res.Open(&ast.Redirect{Op: lexer.InputRedirect, Target: "missing"}, dir)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.EqualError(t, err, "missing: No such file or directory")

	_, err = res.Open(&ast.Redirect{Op: lexer.InputRedirect, Target: "sub"}, dir)
	assert.ErrorIs(t, err, vos.ErrIsDir)
	assert.EqualError(t, err, "sub: Is a directory")
}

func TestResolver_Output(t *testing.T) {
	dir := t.TempDir()
	res := NewResolver(afero.NewOsFs())

	write := func(op lexer.Kind, target, text string) {
		t.Helper()
		f, err := res.Open(&ast.Redirect{Op: op, Target: target}, dir)
		require.NoError(t, err)
		_, err = io.WriteString(f, text)
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}

	write(lexer.OutputRedirect, "out", "one\n")
	write(lexer.AppendRedirect, "out", "two\n")
	assert.Equal(t, "one\ntwo\n", readFile(t, filepath.Join(dir, "out")))

	write(lexer.OutputRedirect, "out", "three\n")
	assert.Equal(t, "three\n", readFile(t, filepath.Join(dir, "out")))

	write(lexer.AppendRedirect, "new", "appended\n")
	assert.Equal(t, "appended\n", readFile(t, filepath.Join(dir, "new")))

	info, err := os.Stat(filepath.Join(dir, "new"))
	require.NoError(t, err)
	assert.Zero(t, info.Mode().Perm()&^0644, "mode %v", info.Mode())
}

func TestResolver_OutputErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	writeFile(t, filepath.Join(dir, "file"), "")

	res := NewResolver(afero.NewOsFs())

	cases := map[string]struct {
		target string
		want   error
		msg    string
	}{
		"directory":      {"sub", vos.ErrIsDir, "sub: Is a directory"},
		"missing parent": {"nope/out", fs.ErrNotExist, "nope/out: No such file or directory"},
		"file parent":    {"file/out", vos.ErrNotDir, "file/out: Not a directory"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := res.Open(&ast.Redirect{Op: lexer.OutputRedirect, Target: tc.target}, dir)
			assert.ErrorIs(t, err, tc.want)
			assert.EqualError(t, err, tc.msg)

			var redirErr *Error
			require.True(t, errors.As(err, &redirErr))
			assert.Equal(t, lexer.OutputRedirect, redirErr.Op)
		})
	}
}

func TestResolver_Ambiguous(t *testing.T) {
	res := NewResolver(afero.NewMemMapFs())

	_, err := res.Open(&ast.Redirect{Op: lexer.OutputRedirect, Raw: "$NOPE", Ambiguous: true}, "/")
	assert.ErrorIs(t, err, ErrAmbiguous)
	assert.EqualError(t, err, "$NOPE: ambiguous redirect")
}

func TestResolver_Heredoc(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/tmp/body", []byte("text\n"), 0600))
	res := NewResolver(fsys)

	_, err := res.Open(&ast.Redirect{Op: lexer.Heredoc, Target: "EOF"}, "/")
	assert.ErrorIs(t, err, ErrNotStaged)

	f, err := res.Open(&ast.Redirect{Op: lexer.Heredoc, Target: "EOF", Staged: "/tmp/body"}, "/")
	require.NoError(t, err)
	defer f.Close()

	b, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "text\n", string(b))
}

func TestResolver_MemMapFs(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/home/user", 0755))
	res := NewResolver(fsys)

	f, err := res.Open(&ast.Redirect{Op: lexer.OutputRedirect, Target: "log"}, "/home/user")
	require.NoError(t, err)
	_, err = io.WriteString(f, "entry\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	b, err := afero.ReadFile(fsys, "/home/user/log")
	require.NoError(t, err)
	assert.Equal(t, "entry\n", string(b))
}
