package ast

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephlewis42/minishell/core/lexer"
)

func build(t *testing.T, line string) (*Tree, error) {
	t.Helper()

	tokens, err := lexer.Tokenize(line, nil)
	require.NoError(t, err, "tokenizing %q", line)
	return Build(tokens)
}

func TestBuild_Golden(t *testing.T) {
	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
	)

	cases := map[string]string{
		"pipeline":   "ls -l | grep x | wc -l",
		"redirects":  "< in cat > a >> b | wc",
		"heredoc":    "cat << EOF | cat <<'END'",
		"solo_stage": "ls | > out",
		"ambiguous":  "echo hi > $NOPE",
		"solo_line":  "> a << EOF",
		"solo_lead":  "echo hi | >f cat > out | < in wc",
	}

	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			tree, err := build(t, line)
			if err != nil && !errors.Is(err, ErrNoCommand) {
				t.Fatal(err)
			}
			g.Assert(t, name, []byte(tree.String()))
		})
	}
}

func TestBuild_SingleCommand(t *testing.T) {
	tree, err := build(t, "echo hello world")
	require.NoError(t, err)

	require.Len(t, tree.Nodes, 1)
	root := tree.Node(tree.Root)
	assert.Equal(t, CommandNode, root.Kind)
	assert.Equal(t, []string{"echo", "hello", "world"}, root.Args)
	assert.Empty(t, tree.Solo)
}

func TestBuild_RightChained(t *testing.T) {
	tree, err := build(t, "a | b | c | d")
	require.NoError(t, err)

	var names []string
	for _, id := range tree.Stages() {
		names = append(names, tree.Node(id).Args[0])
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, names)

	root := tree.Node(tree.Root)
	require.Equal(t, PipeNode, root.Kind)
	assert.Equal(t, CommandNode, tree.Node(root.Left).Kind)
	assert.Equal(t, PipeNode, tree.Node(root.Right).Kind)
}

func TestBuild_RedirectOrder(t *testing.T) {
	tree, err := build(t, "cmd > a arg > b < c")
	require.NoError(t, err)

	root := tree.Node(tree.Root)
	require.Equal(t, RedirectNode, root.Kind)
	assert.Equal(t, []string{"cmd", "arg"}, tree.Node(root.Left).Args)

	var targets []string
	for _, r := range root.Chain {
		targets = append(targets, r.Target)
	}
	assert.Equal(t, []string{"a", "b", "c"}, targets)
}

func TestBuild_VanishedWords(t *testing.T) {
	tree, err := build(t, `$NOPE echo $NOPE "" x`)
	require.NoError(t, err)
	assert.Equal(t, []string{"echo", "", "x"}, tree.Node(tree.Root).Args)

	// Only vanished words: still a command, with nothing to run.
	tree, err = build(t, "$NOPE")
	require.NoError(t, err)
	assert.Empty(t, tree.Node(tree.Root).Args)
}

func TestBuild_Heredocs(t *testing.T) {
	tree, err := build(t, `cat <<A | cat << "B" > out | cat <<C`)
	require.NoError(t, err)

	var got []string
	var expand []bool
	for _, r := range tree.Heredocs() {
		got = append(got, r.Target)
		expand = append(expand, r.Expand)
	}
	assert.Equal(t, []string{"A", "B", "C"}, got)
	assert.Equal(t, []bool{true, false, true}, expand)
	assert.Len(t, tree.Redirects(), 4)
}

func TestBuild_NoCommand(t *testing.T) {
	tree, err := Build(nil)
	assert.ErrorIs(t, err, ErrNoCommand)
	require.NotNil(t, tree)
	assert.Equal(t, NoNode, tree.Root)
	assert.Empty(t, tree.Solo)

	tree, err = build(t, "> out")
	assert.ErrorIs(t, err, ErrNoCommand)
	require.NotNil(t, tree)
	require.Len(t, tree.Solo, 1)
	assert.Equal(t, "out", tree.Solo[0].Target)
	assert.Nil(t, tree.Node(tree.Root))
}

func TestBuild_Errors(t *testing.T) {
	cases := map[string]string{
		"| ls":        "|",
		"ls | | wc":   "|",
		"ls ||":       "|",
		"cat <":       "newline",
		"cat > | wc":  "newline",
		"cat > >> x":  "newline",
		"ls | wc >":   "newline",
		"echo < < in": "newline",
	}

	for line, token := range cases {
		t.Run(line, func(t *testing.T) {
			tree, err := build(t, line)
			assert.Nil(t, tree)

			var syntax *lexer.SyntaxError
			require.True(t, errors.As(err, &syntax), "got %v", err)
			assert.Equal(t, token, syntax.Token)
		})
	}
}

func TestBuild_Incomplete(t *testing.T) {
	_, err := build(t, "ls |")
	assert.ErrorIs(t, err, ErrIncomplete)

	_, err = build(t, "ls | grep x |")
	assert.ErrorIs(t, err, ErrIncomplete)

	// The continuation line completes the pipe.
	tree, err := build(t, "ls |\ngrep x")
	require.NoError(t, err)
	assert.Equal(t, "pipe\n  command \"ls\"\n  command \"grep\" \"x\"\n", tree.String())
}

func TestBuild_LeadingRedirectAfterPipe(t *testing.T) {
	tree, err := build(t, "echo hi | >f cat")
	require.NoError(t, err)

	require.Len(t, tree.Solo, 1)
	assert.Equal(t, "f", tree.Solo[0].Target)

	stages := tree.Stages()
	require.Len(t, stages, 2)
	last := tree.Node(stages[1])
	assert.Equal(t, CommandNode, last.Kind)
	assert.Equal(t, []string{"cat"}, last.Args)

	// The first segment has no pipe before it and keeps its redirections.
	tree, err = build(t, "< in cat | wc")
	require.NoError(t, err)
	assert.Empty(t, tree.Solo)
	assert.Equal(t, RedirectNode, tree.Node(tree.Stages()[0]).Kind)
}

func TestPendingHeredocs(t *testing.T) {
	tokens, err := lexer.Tokenize(`cat <<A > out | cat <<'B' |`, nil)
	require.NoError(t, err)

	var got []string
	var expand []bool
	for _, r := range PendingHeredocs(tokens) {
		got = append(got, r.Target)
		expand = append(expand, r.Expand)
	}
	assert.Equal(t, []string{"A", "B"}, got)
	assert.Equal(t, []bool{true, false}, expand)
}
