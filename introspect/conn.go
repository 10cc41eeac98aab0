package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// QueryStats holds the statistics of the queries an inspection ran.
type QueryStats struct {
	// TotalQueries is the total number of queries executed.
	TotalQueries atomic.Int64
	// TotalExecs is the total number of exec statements executed.
	TotalExecs atomic.Int64
	// TotalDuration is the total time spent executing statements.
	TotalDuration atomic.Int64 // nanoseconds
	// SlowQueries is the count of statements exceeding the slow threshold.
	SlowQueries atomic.Int64
	// Errors is the count of statement errors.
	Errors atomic.Int64
}

// Stats returns a snapshot of the current statistics.
func (s *QueryStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalQueries:  s.TotalQueries.Load(),
		TotalExecs:    s.TotalExecs.Load(),
		TotalDuration: time.Duration(s.TotalDuration.Load()),
		SlowQueries:   s.SlowQueries.Load(),
		Errors:        s.Errors.Load(),
	}
}

// StatsSnapshot is a point-in-time snapshot of query statistics.
type StatsSnapshot struct {
	TotalQueries  int64
	TotalExecs    int64
	TotalDuration time.Duration
	SlowQueries   int64
	Errors        int64
}

// String returns a human-readable summary of the statistics.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf("queries=%d execs=%d duration=%s slow=%d errors=%d",
		s.TotalQueries, s.TotalExecs, s.TotalDuration, s.SlowQueries, s.Errors)
}

// conn is the schema.ExecQuerier handed to the atlas inspectors. It records
// statistics and logs every statement at debug level.
type conn struct {
	db            *sql.DB
	stats         *QueryStats
	slowThreshold time.Duration
	log           *slog.Logger
}

// ExecContext implements schema.ExecQuerier.
func (c *conn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := c.db.ExecContext(ctx, query, args...)
	c.stats.TotalExecs.Add(1)
	c.record(ctx, query, time.Since(start), err)
	return res, err
}

// QueryContext implements schema.ExecQuerier.
func (c *conn) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := c.db.QueryContext(ctx, query, args...)
	c.stats.TotalQueries.Add(1)
	c.record(ctx, query, time.Since(start), err)
	return rows, err
}

func (c *conn) record(ctx context.Context, query string, d time.Duration, err error) {
	c.stats.TotalDuration.Add(int64(d))
	if err != nil {
		c.stats.Errors.Add(1)
		c.log.DebugContext(ctx, "inspection query failed", "query", query, "duration", d, "error", err)
		return
	}
	if c.slowThreshold > 0 && d > c.slowThreshold {
		c.stats.SlowQueries.Add(1)
		c.log.WarnContext(ctx, "slow inspection query", "query", query, "duration", d)
		return
	}
	c.log.DebugContext(ctx, "inspection query", "query", query, "duration", d)
}
