package ast

import (
	"errors"

	"github.com/josephlewis42/minishell/core/lexer"
)

var (
	// ErrNoCommand is returned for a line without any command. The tree is
	// still returned so solo redirections can be performed.
	ErrNoCommand = errors.New("no command")

	// ErrIncomplete is returned when the line ends with a pipe and more input
	// is needed.
	ErrIncomplete = errors.New("pipeline needs more input")
)

// Build turns a token sequence into a tree.
//
// Pipes are chained to the right so "a | b | c" becomes pipe(a, pipe(b, c)).
// Redirections attach, in order, to the command of the pipeline segment they
// appear in. Redirections between a pipe and the next command word, as in
// "a | >f b", and those of a segment with no words at all are solo: they
// are kept in Tree.Solo and attach to no command.
func Build(tokens []lexer.Token) (*Tree, error) {
	tree := &Tree{Root: NoNode}
	if len(tokens) == 0 {
		return tree, ErrNoCommand
	}
	if err := validate(tokens); err != nil {
		return nil, err
	}

	segments := split(tokens)
	if len(segments) == 1 {
		if !hasWords(segments[0]) {
			tree.Solo = redirects(segments[0])
			return tree, ErrNoCommand
		}
	}

	stages := make([]NodeID, 0, len(segments))
	for i, seg := range segments {
		stages = append(stages, tree.stage(seg, i > 0))
	}

	root := stages[len(stages)-1]
	for i := len(stages) - 2; i >= 0; i-- {
		root = tree.add(Node{Kind: PipeNode, Left: stages[i], Right: root})
	}
	tree.Root = root
	return tree, nil
}

// validate rejects misplaced operators before any node is built.
func validate(tokens []lexer.Token) error {
	for i, tok := range tokens {
		switch {
		case tok.Kind == lexer.Pipe:
			if i == 0 || tokens[i-1].Kind == lexer.Pipe {
				return &lexer.SyntaxError{Token: tok.Text}
			}
			if i == len(tokens)-1 {
				return ErrIncomplete
			}
		case tok.Kind.IsRedirect():
			if i == len(tokens)-1 || tokens[i+1].Kind != lexer.Word {
				return &lexer.SyntaxError{Token: "newline"}
			}
		}
	}
	return nil
}

func split(tokens []lexer.Token) [][]lexer.Token {
	var out [][]lexer.Token
	start := 0
	for i, tok := range tokens {
		if tok.Kind == lexer.Pipe {
			out = append(out, tokens[start:i])
			start = i + 1
		}
	}
	return append(out, tokens[start:])
}

// firstWord returns the index of the first word of seg that is not a
// redirection target, or len(seg) if there is none.
func firstWord(seg []lexer.Token) int {
	for i := 0; i < len(seg); i++ {
		if seg[i].Kind.IsRedirect() {
			i++
			continue
		}
		return i
	}
	return len(seg)
}

// hasWords reports whether a segment has any word that is not a redirection
// target.
func hasWords(seg []lexer.Token) bool {
	return firstWord(seg) < len(seg)
}

func redirects(seg []lexer.Token) []*Redirect {
	var chain []*Redirect
	for i := 0; i < len(seg); i++ {
		op := seg[i]
		if !op.Kind.IsRedirect() || i+1 >= len(seg) {
			continue
		}
		target := seg[i+1]
		i++

		chain = append(chain, &Redirect{
			Op:        op.Kind,
			Target:    target.Text,
			Raw:       target.Raw,
			Pos:       op.Pos,
			Expand:    op.Kind == lexer.Heredoc && target.Expand(),
			Ambiguous: op.Kind != lexer.Heredoc && target.Vanished,
		})
	}
	return chain
}

func args(seg []lexer.Token) []string {
	var out []string
	for i := 0; i < len(seg); i++ {
		tok := seg[i]
		if tok.Kind.IsRedirect() {
			i++
			continue
		}
		if !tok.Vanished {
			out = append(out, tok.Text)
		}
	}
	return out
}

// stage adds the subtree of one pipeline segment. After a pipe, the
// redirections before the first word go to Tree.Solo.
func (t *Tree) stage(seg []lexer.Token, afterPipe bool) NodeID {
	first := firstWord(seg)
	if first == len(seg) {
		t.Solo = append(t.Solo, redirects(seg)...)
		return t.add(Node{Kind: CommandNode, Left: NoNode, Right: NoNode})
	}
	if afterPipe {
		t.Solo = append(t.Solo, redirects(seg[:first])...)
		seg = seg[first:]
	}

	cmd := t.add(Node{Kind: CommandNode, Args: args(seg), Left: NoNode, Right: NoNode})
	chain := redirects(seg)
	if len(chain) == 0 {
		return cmd
	}
	return t.add(Node{Kind: RedirectNode, Chain: chain, Left: cmd, Right: NoNode})
}

// PendingHeredocs returns the heredocs of a token sequence in input order,
// for reading their bodies before the line is complete.
func PendingHeredocs(tokens []lexer.Token) []*Redirect {
	var out []*Redirect
	for _, r := range redirects(tokens) {
		if r.Op == lexer.Heredoc {
			out = append(out, r)
		}
	}
	return out
}
