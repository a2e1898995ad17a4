package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/josephlewis42/minishell/core/vos"
)

// Exit ends the shell with the given status, or the last status when none is
// given. In a pipeline stage it only ends that stage.
func Exit(p *vos.Proc, args []string) int {
	if p.Interactive && !p.Subshell {
		fmt.Fprintln(p.Stderr, "exit")
	}

	if len(args) < 2 {
		p.Exit(p.Status)
		return p.Status
	}

	n, err := strconv.ParseInt(strings.TrimSpace(args[1]), 10, 64)
	if err != nil {
		p.Errorf("exit: %s: numeric argument required", args[1])
		p.Exit(2)
		return 2
	}

	if len(args) > 2 {
		p.Errorf("exit: too many arguments")
		return 1
	}

	code := int(n & 0xff)
	p.Exit(code)
	return code
}

var _ vos.BuiltinFunc = Exit

func init() {
	addBuiltin("exit", "Exit the shell.", Exit)
}
