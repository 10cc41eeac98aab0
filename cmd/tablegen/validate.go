package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/tablegen/compiler/gen"
	"github.com/syssam/tablegen/config"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <project.yaml>",
		Short: "Check the structure of a project document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			p, err := config.LoadFile(args[0])
			if err != nil {
				return err
			}
			a.log.Debug("project loaded", "file", args[0], "project", p.Name())
			if err := config.Validate(p); err != nil {
				problems := []error{err}
				if joined, ok := err.(interface{ Unwrap() []error }); ok {
					problems = joined.Unwrap()
				}
				for _, e := range problems {
					fmt.Fprintf(out, "  %s %v\n", red("✗"), e)
				}
				return fmt.Errorf("%s: %d problems: %w", args[0], len(problems), config.ErrInvalidProject)
			}
			fmt.Fprintf(out, "%s %s: %d tables to generate\n", green("valid"), args[0], len(gen.EnabledTables(p)))
			return nil
		},
	}
}
