package commands

import (
	"fmt"
	"strings"

	"github.com/josephlewis42/minishell/core/expand"
	"github.com/josephlewis42/minishell/core/vos"
)

// Export marks variables for export to child processes, optionally setting
// their value. Without operands it lists exported variables.
func Export(p *vos.Proc, args []string) int {
	cmd := &SimpleCommand{
		Use:   "export [-p] [NAME[=VALUE] ...]",
		Short: "Set export attribute for shell variables.",
	}
	listOpt := cmd.Flags().Bool('p', "display all exported variables")

	return cmd.Run(p, args, func() int {
		operands := cmd.Flags().Args()
		if *listOpt || len(operands) == 0 {
			printExports(p)
			return 0
		}

		status := 0
		for _, operand := range operands {
			name, value, hasValue := strings.Cut(operand, "=")
			if !expand.ValidName(name) {
				p.Errorf("export: `%s': not a valid identifier", operand)
				status = 1
				continue
			}

			if hasValue {
				p.Env.Setenv(name, value)
			} else {
				p.Env.Export(name)
			}
		}
		return status
	})
}

func printExports(p *vos.Proc) {
	for _, entry := range p.Env.Exported() {
		if !entry.Set {
			fmt.Fprintf(p.Stdout, "declare -x %s\n", entry.Key)
			continue
		}
		fmt.Fprintf(p.Stdout, "declare -x %s=\"%s\"\n", entry.Key, declareEscaper.Replace(entry.Value))
	}
}

var declareEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`")

var _ vos.BuiltinFunc = Export

func init() {
	addBuiltin("export", "Set export attribute for shell variables.", Export)
}
