package cmd

import (
	"fmt"
	"strconv"

	"allergen-guard/internal/core/allergen"

	"github.com/spf13/cobra"
)

func newSeverityCmd() *cobra.Command {
	var scale string

	cmd := &cobra.Command{
		Use:   "severity <level>",
		Short: "Show the label, color and alert class for a severity level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("severity must be an integer: %q", args[0])
			}

			s, err := allergen.ParseScale(scale)
			if err != nil {
				return err
			}
			unified, err := s.ToUnified(level)
			if err != nil {
				return err
			}

			info, err := newService().Severity(unified)
			if err != nil {
				return err
			}
			return printJSON(cmd, info)
		},
	}
	cmd.Flags().StringVar(&scale, "scale", string(allergen.ScaleTen), "scale the level is given in (1-10 or 1-3)")
	return cmd
}
