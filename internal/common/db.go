package common

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/lib/pq"
)

// DBConfig holds the pool settings for the Postgres connection.
type DBConfig struct {
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
	// ConnTimeout bounds how long an operation waits for a pooled connection.
	ConnTimeout time.Duration
}

// DB is the explicitly constructed connection pool handed to the Postgres backend.
type DB struct {
	*sql.DB
	connTimeout time.Duration
}

// PostgresURI builds a connection string from discrete settings.
func PostgresURI(host, port, user, password, name string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     fmt.Sprintf("%s:%s", host, port),
		Path:     name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func NewDB(URI string, cfg DBConfig) (*DB, error) {
	return connectDB(URI, cfg)
}

// connectDB connects to the database and returns the connection
func connectDB(URI string, cfg DBConfig) (*DB, error) {
	db, err := sql.Open("postgres", URI)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxIdleTime(cfg.MaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, StorageError(err)
	}

	timeout := cfg.ConnTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	return &DB{DB: db, connTimeout: timeout}, nil
}

// WithConn acquires a dedicated connection from the pool, runs fn on it and
// releases the connection on every return path. Waiting longer than the
// configured connection timeout fails with ErrStorageUnavailable.
func (db *DB) WithConn(ctx context.Context, fn func(conn *sql.Conn) error) error {
	acquireCtx, cancel := context.WithTimeout(ctx, db.connTimeout)
	defer cancel()

	conn, err := db.Conn(acquireCtx)
	if err != nil {
		return StorageError(fmt.Errorf("acquire connection: %w", err))
	}
	defer conn.Close()

	return StorageError(fn(conn))
}

// CloseDB closes the database connection
func CloseDB(db *DB) error {
	return db.Close()
}
