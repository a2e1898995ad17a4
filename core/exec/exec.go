// Package exec runs command trees.
//
// External commands are started with os/exec. Every pipeline stage runs on a
// clone of the session in its own goroutine, the way a forked child would,
// and the executor waits for all of them before returning.
package exec

import (
	"context"
	"fmt"
	"os"
	osexec "os/exec"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/josephlewis42/minishell/core/ast"
	"github.com/josephlewis42/minishell/core/lexer"
	"github.com/josephlewis42/minishell/core/redir"
	"github.com/josephlewis42/minishell/core/vos"
)

// Executor walks a tree and runs its commands.
type Executor struct {
	Resolver *redir.Resolver
	Builtins map[string]vos.BuiltinFunc

	// OnExit, when set, is called after each simple command finishes.
	OnExit func(args []string, status int)

	// lastSignal holds the signal that killed the most recent child, with
	// coreFlag set if it dumped core.
	lastSignal atomic.Int32
}

const coreFlag = 1 << 16

// New creates an executor that opens redirections on fsys.
func New(fsys afero.Fs, builtins map[string]vos.BuiltinFunc) *Executor {
	return &Executor{
		Resolver: redir.NewResolver(fsys),
		Builtins: builtins,
	}
}

// Execute runs the tree and records its status in p.Status. The status of a
// pipeline is that of its right-most command.
func (e *Executor) Execute(ctx context.Context, p *vos.Proc, tree *ast.Tree) int {
	if tree == nil || tree.Root == ast.NoNode {
		return p.Status
	}

	e.lastSignal.Store(0)
	status := e.run(ctx, p, tree, tree.Root)
	if sig := e.lastSignal.Swap(0); sig != 0 {
		e.reportSignal(p, sig, status)
	}

	p.Status = status
	return status
}

// Redirect performs redirections for their side effects only, as for a line
// with no command.
func (e *Executor) Redirect(p *vos.Proc, chain []*ast.Redirect) int {
	for _, r := range chain {
		f, err := e.Resolver.Open(r, p.Dir)
		if err != nil {
			p.Errorf("%v", err)
			return StatusFailure
		}
		f.Close()
	}
	return 0
}

func (e *Executor) run(ctx context.Context, p *vos.Proc, tree *ast.Tree, id ast.NodeID) int {
	n := tree.Node(id)
	if n == nil {
		return 0
	}

	switch n.Kind {
	case ast.CommandNode:
		status := e.command(ctx, p, n.Args)
		if e.OnExit != nil && len(n.Args) > 0 {
			e.OnExit(n.Args, status)
		}
		return status
	case ast.RedirectNode:
		return e.redirect(ctx, p, tree, n)
	case ast.PipeNode:
		return e.pipe(ctx, p, tree, n)
	}

	p.Errorf("unknown node %v", n.Kind)
	return StatusFailure
}

func (e *Executor) command(ctx context.Context, p *vos.Proc, args []string) int {
	if len(args) == 0 {
		return 0
	}
	if ctx.Err() != nil {
		return StatusSignalBase + int(syscall.SIGINT)
	}

	if builtin, ok := e.Builtins[args[0]]; ok {
		return builtin(p, args)
	}

	path, err := p.LookPath(args[0])
	if err != nil {
		cmdErr := lookupError(args[0], err)
		p.Errorf("%v", cmdErr)
		return cmdErr.Status
	}
	return e.spawn(p, path, args)
}

func (e *Executor) spawn(p *vos.Proc, path string, args []string) int {
	cmd := &osexec.Cmd{
		Path:   path,
		Args:   args,
		Env:    p.Env.Environ(),
		Dir:    p.Dir,
		Stdin:  p.Stdin,
		Stdout: p.Stdout,
		Stderr: p.Stderr,
	}

	if err := cmd.Start(); err != nil {
		cmdErr := startError(args[0], err)
		p.Errorf("%v", cmdErr)
		return cmdErr.Status
	}

	// A copy error only means a reader went away; the exit status is what
	// counts.
	_ = cmd.Wait()
	return e.waitStatus(p, cmd.ProcessState)
}

func (e *Executor) waitStatus(p *vos.Proc, state *os.ProcessState) int {
	if state == nil {
		return StatusFailure
	}

	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		sig := int32(ws.Signal())
		if ws.CoreDump() {
			sig |= coreFlag
		}
		e.lastSignal.Store(sig)
		return StatusSignalBase + int(ws.Signal())
	}
	return state.ExitCode()
}

// reportSignal describes the signal that ended the line, if it did.
func (e *Executor) reportSignal(p *vos.Proc, sig int32, status int) {
	signal := syscall.Signal(sig &^ coreFlag)
	if status != StatusSignalBase+int(signal) {
		return
	}

	switch signal {
	case syscall.SIGINT:
		fmt.Fprintln(p.Stderr)
	case syscall.SIGPIPE:
	default:
		msg := signal.String()
		if msg != "" {
			msg = strings.ToUpper(msg[:1]) + msg[1:]
		}
		if sig&coreFlag != 0 {
			msg += " (core dumped)"
		}
		fmt.Fprintln(p.Stderr, msg)
	}
}

// redirect applies the whole chain in order around the command. Every file is
// opened for its side effects; the last one of each direction stays
// attached. The original streams are restored on every path.
func (e *Executor) redirect(ctx context.Context, p *vos.Proc, tree *ast.Tree, n *ast.Node) int {
	saved := p.IO
	var opened []afero.File
	defer func() {
		for _, f := range opened {
			f.Close()
		}
		p.IO = saved
	}()

	for _, r := range n.Chain {
		f, err := e.Resolver.Open(r, p.Dir)
		if err != nil {
			p.Errorf("%v", err)
			return StatusFailure
		}
		opened = append(opened, f)

		switch r.Op {
		case lexer.InputRedirect, lexer.Heredoc:
			p.Stdin = f
		default:
			p.Stdout = f
		}
	}

	return e.run(ctx, p, tree, n.Left)
}

// pipe runs both sides concurrently on clones of p joined by an OS pipe.
// Each side closes its own end when it finishes so the reader sees EOF
// and the writer sees a broken pipe.
func (e *Executor) pipe(ctx context.Context, p *vos.Proc, tree *ast.Tree, n *ast.Node) int {
	r, w, err := os.Pipe()
	if err != nil {
		p.Errorf("pipe: %v", err)
		return StatusFailure
	}

	left := p.Clone()
	left.Stdout = w
	right := p.Clone()
	right.Stdin = r

	var status int
	var g errgroup.Group
	g.Go(func() error {
		defer w.Close()
		e.run(ctx, left, tree, n.Left)
		return nil
	})
	g.Go(func() error {
		defer r.Close()
		status = e.run(ctx, right, tree, n.Right)
		return nil
	})
	_ = g.Wait()

	return status
}
