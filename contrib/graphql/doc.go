// Package graphql generates a GraphQL schema (SDL) from a project tree.
//
// The schema is built with a project-anchored builder, so only enabled
// tables of enabled schemas and servers take part.
//
// # Output
//
// For every table the schema holds an object type named like the generated
// entity:
//   - one field per enabled column, non-null unless the column is nullable
//   - ID! for the column of a single-column primary key
//   - one object-valued field per resolvable foreign key, e.g. user: User!
//     for orders.user_id
//
// Custom scalars (Time, JSON, UUID, Any) are declared when a column uses
// them. WithQuery adds a Query root listing every type.
//
// # Usage
//
//	doc, err := graphql.Generate(project, graphql.WithQuery())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := graphql.Format(os.Stdout, doc); err != nil {
//	    log.Fatal(err)
//	}
//
// # gqlgen
//
// Bind records the generated entities as gqlgen models:
//
//	cfg, err := graphql.LoadGQLGenConfig("gqlgen.yml")
//	cfg.Bind(doc, "github.com/org/shop/models", "schema.graphqls")
//	err = graphql.SaveGQLGenConfig("gqlgen.yml", cfg)
//
// # Skipping
//
// Set the graphqlSkip property on a table or column to leave it out:
//
//	tables:
//	  - name: audit_log
//	    graphqlSkip: true
package graphql
