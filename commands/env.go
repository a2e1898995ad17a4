package commands

import (
	"fmt"

	"github.com/josephlewis42/minishell/core/vos"
)

// Env prints the environment, one key=value pair per line, in the order the
// shell received or created the variables.
func Env(p *vos.Proc, args []string) int {
	cmd := &SimpleCommand{
		Use:   "env",
		Short: "Print the environment.",
	}

	return cmd.Run(p, args, func() int {
		if extra := cmd.Flags().Args(); len(extra) > 0 {
			p.Errorf("env: %s: too many arguments", extra[0])
			return 1
		}

		for _, envDef := range p.Env.Environ() {
			fmt.Fprintln(p.Stdout, envDef)
		}

		return 0
	})
}

var _ vos.BuiltinFunc = Env

func init() {
	addBuiltin("env", "Print the environment.", Env)
}
