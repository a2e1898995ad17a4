package ast

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/josephlewis42/minishell/core/lexer"
)

// Fprint writes an indented dump of the tree, one node per line.
func (t *Tree) Fprint(w io.Writer) error {
	if t.Root != NoNode {
		if err := t.fprint(w, t.Root, 0); err != nil {
			return err
		}
	}
	if len(t.Solo) > 0 {
		if _, err := fmt.Fprintf(w, "solo %s\n", formatChain(t.Solo)); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) fprint(w io.Writer, id NodeID, depth int) error {
	n := t.Node(id)
	indent := strings.Repeat("  ", depth)

	var err error
	switch n.Kind {
	case CommandNode:
		var quoted []string
		for _, arg := range n.Args {
			quoted = append(quoted, fmt.Sprintf("%q", arg))
		}
		if len(quoted) == 0 {
			_, err = fmt.Fprintf(w, "%scommand\n", indent)
		} else {
			_, err = fmt.Fprintf(w, "%scommand %s\n", indent, strings.Join(quoted, " "))
		}
		return err

	case PipeNode:
		if _, err = fmt.Fprintf(w, "%spipe\n", indent); err != nil {
			return err
		}
		if err = t.fprint(w, n.Left, depth+1); err != nil {
			return err
		}
		return t.fprint(w, n.Right, depth+1)

	case RedirectNode:
		if _, err = fmt.Fprintf(w, "%sredirect %s\n", indent, formatChain(n.Chain)); err != nil {
			return err
		}
		return t.fprint(w, n.Left, depth+1)
	}
	return fmt.Errorf("unknown node kind %v", n.Kind)
}

func (t *Tree) String() string {
	var buf bytes.Buffer
	_ = t.Fprint(&buf)
	return buf.String()
}

func formatChain(chain []*Redirect) string {
	var parts []string
	for _, r := range chain {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, " ")
}

func (r *Redirect) String() string {
	switch {
	case r.Ambiguous:
		return fmt.Sprintf("[%s %s ambiguous]", r.Op, r.Raw)
	case r.Op == lexer.Heredoc && r.Expand:
		return fmt.Sprintf("[%s %q expand]", r.Op, r.Target)
	default:
		return fmt.Sprintf("[%s %q]", r.Op, r.Target)
	}
}
