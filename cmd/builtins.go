package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/josephlewis42/minishell/commands"
)

var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the commands built into the shell.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		for _, builtin := range commands.ListBuiltins() {
			fmt.Fprintf(w, "%s\t%s\n", builtin.Name, builtin.Short)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
