package pgvector

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Logger is the logging surface this package needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// PgClient wraps a PostgreSQL connection pool (pgx via database/sql) for
// the pgvector backend.
type PgClient struct {
	db     *sql.DB
	logger Logger
}

// NewPgClient opens the connection pool and verifies connectivity.
func NewPgClient(cfg *Config, logger Logger) (*PgClient, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("pgvector: missing DATABASE_URL")
	}

	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pgvector: open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pgvector: ping database: %w", err)
	}

	logger.Info("PostgreSQL client connected", nil)
	return &PgClient{db: db, logger: logger}, nil
}

// DB returns the underlying pool for direct access.
func (c *PgClient) DB() *sql.DB {
	return c.db
}

// Close closes the connection pool.
func (c *PgClient) Close() error {
	return c.db.Close()
}
