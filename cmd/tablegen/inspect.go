package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/syssam/tablegen/compiler/gen"
	"github.com/syssam/tablegen/config"
	"github.com/syssam/tablegen/introspect"
)

func newInspectCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Build a project document from a live database",
		Example: `  tablegen inspect --driver postgres --dsn "postgres://localhost/shop?sslmode=disable" --schema public -o shop.yaml
  tablegen inspect --driver sqlite --dsn "file:shop.db" --name shop`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			driver, dsn := a.v.GetString("driver"), a.v.GetString("dsn")
			if driver == "" || dsn == "" {
				return fmt.Errorf("inspect: --driver and --dsn are required")
			}
			name := a.v.GetString("name")
			if name == "" {
				name = "project"
			}

			ctx := cmd.Context()
			insp, err := introspect.Open(ctx, driver, dsn,
				introspect.WithLogger(a.log),
				introspect.WithSlowThreshold(a.v.GetDuration("slow-threshold")),
			)
			if err != nil {
				return err
			}
			defer insp.Close()
			p, err := insp.Project(ctx, name, a.v.GetStringSlice("schemas")...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output == "" || output == "-" {
				return config.Encode(out, p)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("inspect: %w", err)
			}
			if err := config.Encode(f, p); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("inspect: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %d tables into %s (%s)\n",
				green("inspected"), len(gen.EnabledTables(p)), output, insp.Stats())
			return nil
		},
	}
	f := cmd.Flags()
	f.String("driver", "", "database dialect: postgres, mysql or sqlite")
	f.String("dsn", "", "data source name of the database")
	f.StringSlice("schema", nil, "schema to inspect (default is every schema)")
	f.String("name", "", "name of the project")
	f.Duration("slow-threshold", 0, "log queries slower than this as slow")
	f.StringVarP(&output, "output", "o", "", "file to write the project document to (default is stdout)")
	a.bind(f, "driver", "driver")
	a.bind(f, "dsn", "dsn")
	a.bind(f, "schemas", "schema")
	a.bind(f, "name", "name")
	a.bind(f, "slow-threshold", "slow-threshold")
	return cmd
}
