package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	// Database drivers of the supported dialects.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/syssam/tablegen/config"
)

// Supported dialects.
const (
	Postgres = "postgres"
	MySQL    = "mysql"
	SQLite   = "sqlite"
)

// drivers maps the dialects to their database/sql driver names.
var drivers = map[string]string{
	Postgres: "postgres",
	MySQL:    "mysql",
	SQLite:   "sqlite",
}

// Dialect returns the dialect of name, accepting aliases such as
// "postgresql", "pgx" or "sqlite3".
func Dialect(name string) (string, error) {
	for _, d := range []string{Postgres, MySQL, SQLite} {
		if strings.HasPrefix(strings.ToLower(name), d) {
			return d, nil
		}
	}
	if strings.EqualFold(name, "pgx") || strings.EqualFold(name, "pg") {
		return Postgres, nil
	}
	return "", fmt.Errorf("introspect: unsupported dialect %q", name)
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithLogger logs the inspection queries to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Inspector) {
		if logger != nil {
			i.conn.log = logger
		}
	}
}

// WithSlowThreshold sets the threshold above which queries are logged as slow.
func WithSlowThreshold(d time.Duration) Option {
	return func(i *Inspector) {
		i.conn.slowThreshold = d
	}
}

// Inspector reads schemas of a live database into project trees.
type Inspector struct {
	dialect string
	db      *sql.DB
	conn    *conn
	driver  migrate.Driver
}

// Open opens and pings the database at dsn and returns an inspector of it.
//
//	insp, err := introspect.Open(ctx, introspect.Postgres, "postgres://localhost/shop?sslmode=disable")
//	if err != nil {
//	    return err
//	}
//	defer insp.Close()
//	project, err := insp.Project(ctx, "shop", "public")
func Open(ctx context.Context, dialect, dsn string, opts ...Option) (*Inspector, error) {
	d, err := Dialect(dialect)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(drivers[d], dsn)
	if err != nil {
		return nil, fmt.Errorf("introspect: open %s: %w", d, err)
	}
	i, err := OpenDB(ctx, d, db, opts...)
	if err != nil {
		db.Close()
		return nil, err
	}
	return i, nil
}

// OpenDB returns an inspector of an open database. Close closes db.
func OpenDB(ctx context.Context, dialect string, db *sql.DB, opts ...Option) (*Inspector, error) {
	d, err := Dialect(dialect)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("introspect: ping %s: %w", d, err)
	}
	i := &Inspector{
		dialect: d,
		db:      db,
		conn: &conn{
			db:    db,
			stats: &QueryStats{},
			log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		},
	}
	for _, opt := range opts {
		opt(i)
	}
	var open func(schema.ExecQuerier) (migrate.Driver, error)
	switch d {
	case Postgres:
		open = postgres.Open
	case MySQL:
		open = mysql.Open
	default:
		open = sqlite.Open
	}
	if i.driver, err = open(i.conn); err != nil {
		return nil, fmt.Errorf("introspect: open %s inspector: %w", d, err)
	}
	return i, nil
}

// Dialect returns the dialect of the inspected database.
func (i *Inspector) Dialect() string { return i.dialect }

// Stats returns the statistics of the queries run so far.
func (i *Inspector) Stats() StatsSnapshot { return i.conn.stats.Stats() }

// Close closes the database.
func (i *Inspector) Close() error { return i.db.Close() }

// Schemas inspects the named schemas, or every schema of the database if no
// name is given.
func (i *Inspector) Schemas(ctx context.Context, names ...string) ([]*schema.Schema, error) {
	if len(names) == 0 {
		realm, err := i.driver.InspectRealm(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("introspect: inspect realm: %w", err)
		}
		return realm.Schemas, nil
	}
	schemas := make([]*schema.Schema, 0, len(names))
	for _, name := range names {
		s, err := i.driver.InspectSchema(ctx, name, nil)
		if err != nil {
			return nil, fmt.Errorf("introspect: inspect schema %q: %w", name, err)
		}
		schemas = append(schemas, s)
	}
	return schemas, nil
}

// Project inspects the named schemas and converts them into a project tree
// named name, holding a single server named after the dialect.
func (i *Inspector) Project(ctx context.Context, name string, schemas ...string) (*config.Project, error) {
	inspected, err := i.Schemas(ctx, schemas...)
	if err != nil {
		return nil, err
	}
	i.conn.log.InfoContext(ctx, "database inspected", "dialect", i.dialect, "schemas", len(inspected), "stats", i.Stats().String())
	return FromAtlas(name, i.dialect, inspected), nil
}
