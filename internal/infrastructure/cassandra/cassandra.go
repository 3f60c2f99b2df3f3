package cassandra

import (
	"context"
	"fmt"
	"time"

	"github.com/gocql/gocql"
	"github.com/rs/zerolog"
)

// Consistency levels applied to every data statement. Both sides use a quorum
// level so that a read observes any previously acknowledged write within a
// single-region deployment.
const (
	WriteConsistency = gocql.LocalQuorum
	ReadConsistency  = gocql.LocalQuorum
)

// Config controls Cassandra connectivity.
type Config struct {
	Host            string
	Port            int
	Keyspace        string
	ConnectAttempts int
	ConnectDelay    time.Duration
	QueryTimeout    time.Duration
}

// Client wraps a pooled Cassandra session. It is safe for concurrent use; the
// underlying session multiplexes in-flight requests over its connection pool
// and re-establishes lost connections on its own.
type Client struct {
	session *gocql.Session
	cfg     Config
	log     zerolog.Logger
}

// Connect establishes a session with bounded retries. Exhausting the retry
// budget means the storage dependency is unavailable, which callers should
// treat as fatal at startup rather than a per-request condition.
func Connect(cfg Config, log zerolog.Logger) (*Client, error) {
	log = log.With().Str("component", "cassandra").Logger()

	session, err := connectWithRetry(cfg, cfg.Keyspace, log)
	if err != nil {
		return nil, err
	}
	return &Client{session: session, cfg: cfg, log: log}, nil
}

func connectWithRetry(cfg Config, keyspace string, log zerolog.Logger) (*gocql.Session, error) {
	var lastErr error
	for attempt := 1; attempt <= cfg.ConnectAttempts; attempt++ {
		log.Info().
			Int("attempt", attempt).
			Str("host", cfg.Host).
			Int("port", cfg.Port).
			Str("keyspace", keyspace).
			Msg("connecting to Cassandra")

		session, err := createSession(cfg, keyspace)
		if err == nil {
			log.Info().Msg("connected to Cassandra")
			return session, nil
		}

		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Msg("Cassandra connection attempt failed")
		if attempt < cfg.ConnectAttempts {
			time.Sleep(cfg.ConnectDelay)
		}
	}

	return nil, fmt.Errorf("connect cassandra after %d attempts: %w", cfg.ConnectAttempts, lastErr)
}

func createSession(cfg Config, keyspace string) (*gocql.Session, error) {
	cluster := gocql.NewCluster(cfg.Host)
	cluster.Port = cfg.Port
	cluster.Keyspace = keyspace
	cluster.Consistency = WriteConsistency
	cluster.Timeout = cfg.QueryTimeout
	cluster.ConnectTimeout = cfg.QueryTimeout
	cluster.PoolConfig.HostSelectionPolicy = gocql.RoundRobinHostPolicy()
	return cluster.CreateSession()
}

// Close shuts down the session pool.
func (c *Client) Close() {
	if c.session != nil {
		c.session.Close()
		c.log.Info().Msg("Cassandra connection closed")
	}
}

// Query builds a statement bound to ctx with an explicit consistency level.
func (c *Client) Query(ctx context.Context, stmt string, cons gocql.Consistency, args ...interface{}) *gocql.Query {
	return c.session.Query(stmt, args...).WithContext(ctx).Consistency(cons)
}

// Exec runs a statement that returns no rows.
func (c *Client) Exec(ctx context.Context, stmt string, cons gocql.Consistency, args ...interface{}) error {
	return c.Query(ctx, stmt, cons, args...).Exec()
}

// ExecCAS runs a conditional insert. When the condition does not apply, prev
// holds the existing row's columns.
func (c *Client) ExecCAS(ctx context.Context, stmt string, args ...interface{}) (applied bool, prev map[string]interface{}, err error) {
	prev = make(map[string]interface{})
	applied, err = c.Query(ctx, stmt, WriteConsistency, args...).MapScanCAS(prev)
	return applied, prev, err
}

// QueryPaged returns an iterator over exactly one page of results. Supplying a
// page state, even a nil one, disables the driver's automatic paging so the
// iterator stops at the page boundary; the continuation token is available
// through Iter.PageState.
func (c *Client) QueryPaged(ctx context.Context, stmt string, cons gocql.Consistency, pageSize int, pageState []byte, args ...interface{}) *gocql.Iter {
	return c.Query(ctx, stmt, cons, args...).
		PageSize(pageSize).
		PageState(pageState).
		Iter()
}
