package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/sushihentaime/contenthub/internal/common"
	"github.com/sushihentaime/contenthub/internal/storage"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

type conn struct {
	db *common.DB
}

func (c conn) Ping(ctx context.Context) error {
	return c.db.WithConn(ctx, func(conn *sql.Conn) error {
		return conn.PingContext(ctx)
	})
}

func (c conn) Close() error {
	return common.CloseDB(c.db)
}

// New returns a backend over an open Postgres pool whose schema has been migrated.
func New(db *common.DB) *storage.Backend {
	return &storage.Backend{
		Driver:       storage.DriverPostgres,
		Blogs:        NewBlogStore(db),
		Contacts:     NewContactStore(db),
		Testimonials: NewTestimonialStore(db),
		Subscribers:  NewSubscriberStore(db),
		Documents:    NewDocumentStore(db),
		Conn:         conn{db: db},
	}
}

// UniqueViolation reports whether err is a unique constraint error on the named constraint.
func UniqueViolation(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

// notFound maps an empty result to common.ErrRecordNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrRecordNotFound
	}
	return err
}
