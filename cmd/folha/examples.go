package main

import (
	"fmt"

	"github.com/farxc/folha-assistente/internal/intent"
	"github.com/spf13/cobra"
)

func newExamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "List sample questions per tool",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			examples := intent.Examples()
			for _, tool := range []intent.Tool{intent.ToolTabular, intent.ToolExternal, intent.ToolGeneral} {
				fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", tool)
				for _, q := range examples[tool] {
					fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", q)
				}
			}
		},
	}
}
