package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/syssam/tablegen/config"
	"github.com/syssam/tablegen/contrib/graphql"
)

func newGraphQLCmd(a *app) *cobra.Command {
	var (
		output string
		query  bool
		gqlgen string
		models string
	)
	cmd := &cobra.Command{
		Use:   "graphql <project.yaml>",
		Short: "Write the GraphQL schema of a project document",
		Example: `  tablegen graphql shop.yaml -o schema.graphqls --query
  tablegen graphql shop.yaml -o schema.graphqls --gqlgen gqlgen.yml --models example.com/shop/models`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.LoadFile(args[0])
			if err != nil {
				return err
			}
			if err := config.Validate(p); err != nil {
				return err
			}
			var opts []graphql.Option
			if query {
				opts = append(opts, graphql.WithQuery())
			}
			doc, err := graphql.Generate(p, opts...)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				return graphql.Format(cmd.OutOrStdout(), doc)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("graphql: %w", err)
			}
			if err := graphql.Format(f, doc); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("graphql: %w", err)
			}
			a.log.Debug("schema written", "file", output, "definitions", len(doc.Definitions))

			if gqlgen != "" {
				cfg, err := graphql.LoadGQLGenConfig(gqlgen)
				if err != nil {
					return err
				}
				cfg.Bind(doc, models, output)
				if err := graphql.SaveGQLGenConfig(gqlgen, cfg); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", yellow("updated"), gqlgen)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d definitions into %s\n", green("wrote"), len(doc.Definitions), output)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "file to write the schema to (default is stdout)")
	f.BoolVar(&query, "query", false, "add a Query type listing every object type")
	f.StringVar(&gqlgen, "gqlgen", "", "gqlgen.yml to bind the object types and scalars in")
	f.StringVar(&models, "models", "", "import path of the generated package bound by --gqlgen")
	return cmd
}
