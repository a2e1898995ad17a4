// Package ast holds the command tree built from a token stream.
//
// Nodes live in a flat arena owned by the Tree and refer to each other by
// index, so a tree is released as a whole once the line has run.
package ast

import (
	"sort"

	"github.com/josephlewis42/minishell/core/lexer"
)

// NodeID indexes Tree.Nodes.
type NodeID int

// NoNode is the zero reference.
const NoNode NodeID = -1

// NodeKind discriminates Node.
type NodeKind int

const (
	// CommandNode is a simple command. Args may be empty for a pipeline
	// stage made only of redirections.
	CommandNode NodeKind = iota

	// PipeNode connects the stdout of Left to the stdin of Right.
	PipeNode

	// RedirectNode applies Chain around its command, held in Left.
	RedirectNode
)

func (k NodeKind) String() string {
	switch k {
	case CommandNode:
		return "command"
	case PipeNode:
		return "pipe"
	case RedirectNode:
		return "redirect"
	default:
		return "unknown"
	}
}

// Redirect is a single redirection operator with its target.
type Redirect struct {
	Op lexer.Kind

	// Target is the expanded file name, or the delimiter for a heredoc.
	Target string

	// Raw is the target as written.
	Raw string

	// Pos orders redirections by their place in the line.
	Pos int

	// Expand is set on heredocs whose body gets parameter expansion.
	Expand bool

	// Ambiguous is set when the target expanded to nothing.
	Ambiguous bool

	// Staged is the path of the file holding a heredoc body once it has
	// been read.
	Staged string
}

// Node is one entry of the arena.
type Node struct {
	Kind NodeKind

	// Args is the argv of a CommandNode.
	Args []string

	// Chain is the ordered list of redirections of a RedirectNode.
	Chain []*Redirect

	Left  NodeID
	Right NodeID
}

// Tree is a parsed command line.
type Tree struct {
	Nodes []Node
	Root  NodeID

	// Solo holds the redirections of a line that has no command at all,
	// such as "> out" or "<< EOF". They are performed for their side effects.
	Solo []*Redirect
}

// Node returns the node with the given id, or nil for NoNode.
func (t *Tree) Node(id NodeID) *Node {
	if id == NoNode || int(id) >= len(t.Nodes) {
		return nil
	}
	return &t.Nodes[id]
}

func (t *Tree) add(n Node) NodeID {
	t.Nodes = append(t.Nodes, n)
	return NodeID(len(t.Nodes) - 1)
}

// Redirects returns every redirection of the line in source order, solo ones
// included.
func (t *Tree) Redirects() []*Redirect {
	out := append([]*Redirect(nil), t.Solo...)
	for i := range t.Nodes {
		out = append(out, t.Nodes[i].Chain...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Pos < out[j].Pos
	})
	return out
}

// Heredocs returns the heredoc redirections in the order their bodies appear
// in the input.
func (t *Tree) Heredocs() []*Redirect {
	var out []*Redirect
	for _, r := range t.Redirects() {
		if r.Op == lexer.Heredoc {
			out = append(out, r)
		}
	}
	return out
}

// Stages returns the command subtrees of a pipeline from left to right.
func (t *Tree) Stages() []NodeID {
	var out []NodeID
	id := t.Root
	for id != NoNode {
		n := t.Node(id)
		if n.Kind != PipeNode {
			return append(out, id)
		}
		out = append(out, n.Left)
		id = n.Right
	}
	return out
}
