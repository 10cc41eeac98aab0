// Package introspect builds project trees from live databases.
//
// The atlas inspectors read the schemas of a PostgreSQL, MySQL or SQLite
// database; FromAtlas converts them into a project holding a single server:
//
//	insp, err := introspect.Open(ctx, introspect.MySQL, "root:pass@tcp(localhost:3306)/shop")
//	if err != nil {
//	    return err
//	}
//	defer insp.Close()
//	project, err := insp.Project(ctx, "shop", "shop")
//
// Column types are kept as the raw database types, so the generator maps
// them like hand-written projects. Every inspection query is counted and
// logged at debug level; see WithLogger and WithSlowThreshold.
package introspect
