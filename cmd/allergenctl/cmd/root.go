package cmd

import (
	"errors"
	"fmt"

	"allergen-guard/internal/core/screening"
	"allergen-guard/internal/infrastructure/config"
	"allergen-guard/internal/pkg/common"

	"github.com/spf13/cobra"
)

// ErrUnsafe is returned by check --fail-on-match when a prohibited ingredient is found.
var ErrUnsafe = errors.New("prohibited ingredients found")

type rootOptions struct {
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "allergenctl",
		Short:         "allergenctl: allergen and avoid-list screening",
		Long:          "Check product ingredient lists against a personal avoid list and inspect the alias tables.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// 預設不輸出日誌，避免干擾 JSON 輸出
			if opts.logLevel == "" {
				return nil
			}
			common.ConsoleOutput = cmd.ErrOrStderr()
			return common.InitLogger(opts.logLevel, "", "")
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "enable logging to stderr at this level (debug, info, warn, error)")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newAliasesCmd())
	root.AddCommand(newSeverityCmd())
	return root
}

// newService builds a screening service that runs batches inline.
func newService() *screening.Service {
	return screening.NewService(config.Default(), nil)
}

// printJSON writes v as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v interface{}) error {
	out, err := common.ToIndentedJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

// Execute runs the root command.
func Execute() error {
	root := newRootCmd()
	err := root.Execute()
	if err != nil && !errors.Is(err, ErrUnsafe) {
		fmt.Fprintf(root.ErrOrStderr(), "error: %v\n", err)
	}
	common.Sync()
	return err
}
