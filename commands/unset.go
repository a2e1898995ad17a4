package commands

import (
	"github.com/josephlewis42/minishell/core/expand"
	"github.com/josephlewis42/minishell/core/vos"
)

// Unset removes variables from the environment.
func Unset(p *vos.Proc, args []string) int {
	cmd := &SimpleCommand{
		Use:   "unset [-v] [NAME ...]",
		Short: "Unset values of shell variables.",
	}
	cmd.Flags().Bool('v', "treat each NAME as a variable")

	return cmd.Run(p, args, func() int {
		status := 0
		for _, name := range cmd.Flags().Args() {
			if !expand.ValidName(name) {
				p.Errorf("unset: `%s': not a valid identifier", name)
				status = 1
				continue
			}
			p.Env.Unsetenv(name)
		}
		return status
	})
}

var _ vos.BuiltinFunc = Unset

func init() {
	addBuiltin("unset", "Unset values of shell variables.", Unset)
}
