package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func newAliasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aliases [name]",
		Short: "Show the aliases and patterns a prohibited name expands to",
		Long:  "Show the aliases and patterns a prohibited name expands to.\nWithout a name, list every allergen the alias table knows.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newService()
			if len(args) == 0 {
				return printJSON(cmd, svc.KnownAllergens())
			}
			info, err := svc.Aliases(strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printJSON(cmd, info)
		},
	}
}
