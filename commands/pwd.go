package commands

import (
	"fmt"
	"path/filepath"

	"github.com/josephlewis42/minishell/core/vos"
)

// Pwd implements the pwd builtin.
func Pwd(p *vos.Proc, args []string) int {
	cmd := &SimpleCommand{
		Use:   "pwd [-LP]",
		Short: "Print the name of the current working directory.",
	}
	opts := cmd.Flags()
	opts.Bool('L', "print the value of $PWD if it names the current working directory")
	physical := opts.Bool('P', "print the physical directory, without any symbolic links")

	return cmd.Run(p, args, func() int {
		dir := p.Dir
		if *physical {
			if resolved, err := filepath.EvalSymlinks(dir); err == nil {
				dir = resolved
			}
		}

		fmt.Fprintln(p.Stdout, dir)
		return 0
	})
}

var _ vos.BuiltinFunc = Pwd

func init() {
	addBuiltin("pwd", "Print the name of the current working directory.", Pwd)
}
