package commands

import (
	"fmt"

	"github.com/josephlewis42/minishell/core/vos"
)

// Cd changes the working directory of the shell. With no argument it goes to
// $HOME, with "-" to $OLDPWD. PWD and OLDPWD are kept up to date.
func Cd(p *vos.Proc, args []string) int {
	var dir string
	printDir := false

	switch len(args) {
	case 1:
		home, ok := p.Env.LookupEnv(EnvHome)
		if !ok {
			p.Errorf("cd: HOME not set")
			return 1
		}
		dir = home
	case 2:
		dir = args[1]
		if dir == "-" {
			old, ok := p.Env.LookupEnv(EnvOldPWD)
			if !ok || old == "" {
				p.Errorf("cd: OLDPWD not set")
				return 1
			}
			dir = old
			printDir = true
		}
	default:
		p.Errorf("cd: too many arguments")
		return 1
	}

	// An empty operand leaves the directory unchanged.
	if dir == "" {
		return 0
	}

	previous := p.Dir
	if err := p.Chdir(dir); err != nil {
		p.Errorf("cd: %s: %s", dir, vos.Describe(err))
		return 1
	}

	p.Env.Setenv(EnvOldPWD, previous)
	p.Env.Setenv(EnvPWD, p.Dir)
	if printDir {
		fmt.Fprintln(p.Stdout, p.Dir)
	}
	return 0
}

var _ vos.BuiltinFunc = Cd

func init() {
	addBuiltin("cd", "Change the shell working directory.", Cd)
}
