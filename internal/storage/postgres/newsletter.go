package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/sushihentaime/contenthub/internal/common"
	"github.com/sushihentaime/contenthub/internal/newsletterservice"
)

const (
	subscriberColumns = `id, email, name, subscribed_at, unsubscribed, unsubscribed_at`
	documentColumns   = `id, name, category, date, filename, original_name, uploaded_at`

	subscriberEmailKey = "newsletter_subscribers_email_key"
)

type SubscriberStore struct {
	db *common.DB
}

func NewSubscriberStore(db *common.DB) *SubscriberStore {
	return &SubscriberStore{db: db}
}

func scanSubscriber(row rowScanner) (*newsletterservice.Subscriber, error) {
	var (
		s              newsletterservice.Subscriber
		unsubscribedAt sql.NullTime
	)
	if err := row.Scan(&s.ID, &s.Email, &s.Name, &s.SubscribedAt, &s.Unsubscribed, &unsubscribedAt); err != nil {
		return nil, err
	}

	s.SubscribedAt = s.SubscribedAt.UTC()
	if unsubscribedAt.Valid {
		at := unsubscribedAt.Time.UTC()
		s.UnsubscribedAt = &at
	}

	return &s, nil
}

func (s *SubscriberStore) Insert(ctx context.Context, sub *newsletterservice.Subscriber) error {
	query := `
		INSERT INTO newsletter_subscribers (id, email, name, subscribed_at, unsubscribed, unsubscribed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	return s.db.WithConn(ctx, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, query, sub.ID, sub.Email, sub.Name, sub.SubscribedAt, sub.Unsubscribed, sub.UnsubscribedAt)
		if UniqueViolation(err, subscriberEmailKey) || UniqueViolation(err, "newsletter_subscribers_pkey") {
			return common.ErrDuplicateRecord
		}
		return err
	})
}

func (s *SubscriberStore) Get(ctx context.Context, id string) (*newsletterservice.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM newsletter_subscribers WHERE id = $1`

	return s.queryOne(ctx, query, id)
}

func (s *SubscriberStore) GetByEmail(ctx context.Context, email string) (*newsletterservice.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM newsletter_subscribers WHERE email = $1`

	return s.queryOne(ctx, query, email)
}

func (s *SubscriberStore) List(ctx context.Context, filter newsletterservice.SubscriberFilter) ([]newsletterservice.Subscriber, error) {
	query := `
		SELECT ` + subscriberColumns + `
		FROM newsletter_subscribers
		WHERE ($1 IN ('', 'all')
			OR ($1 = 'active' AND NOT unsubscribed)
			OR ($1 = 'unsubscribed' AND unsubscribed))
		AND ($2::uuid[] IS NULL OR id = ANY($2::uuid[]))
		ORDER BY subscribed_at DESC, seq`

	var ids any
	if filter.IDs != nil {
		ids = pq.Array(filter.IDs)
	}

	subs := []newsletterservice.Subscriber{}
	err := s.db.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, filter.Status, ids)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			sub, err := scanSubscriber(rows)
			if err != nil {
				return err
			}
			subs = append(subs, *sub)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return subs, nil
}

func (s *SubscriberStore) Update(ctx context.Context, sub *newsletterservice.Subscriber) error {
	query := `
		UPDATE newsletter_subscribers
		SET email = $1, name = $2
		WHERE id = $3
		RETURNING ` + subscriberColumns

	updated, err := s.queryOne(ctx, query, sub.Email, sub.Name, sub.ID)
	if err != nil {
		if UniqueViolation(err, subscriberEmailKey) {
			return common.ErrDuplicateRecord
		}
		return err
	}

	*sub = *updated
	return nil
}

func (s *SubscriberStore) Delete(ctx context.Context, id string) (*newsletterservice.Subscriber, error) {
	query := `DELETE FROM newsletter_subscribers WHERE id = $1 RETURNING ` + subscriberColumns

	return s.queryOne(ctx, query, id)
}

func (s *SubscriberStore) SetSubscribed(ctx context.Context, id string, subscribed bool, at time.Time) (*newsletterservice.Subscriber, error) {
	query := `
		UPDATE newsletter_subscribers
		SET unsubscribed = $1, unsubscribed_at = $2
		WHERE id = $3
		RETURNING ` + subscriberColumns

	var unsubscribedAt *time.Time
	if !subscribed {
		unsubscribedAt = &at
	}

	return s.queryOne(ctx, query, !subscribed, unsubscribedAt, id)
}

func (s *SubscriberStore) queryOne(ctx context.Context, query string, args ...any) (*newsletterservice.Subscriber, error) {
	var sub *newsletterservice.Subscriber
	err := s.db.WithConn(ctx, func(conn *sql.Conn) (err error) {
		sub, err = scanSubscriber(conn.QueryRowContext(ctx, query, args...))
		return notFound(err)
	})

	return sub, err
}

type DocumentStore struct {
	db *common.DB
}

func NewDocumentStore(db *common.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

func scanDocument(row rowScanner) (*newsletterservice.Document, error) {
	var d newsletterservice.Document
	if err := row.Scan(&d.ID, &d.Name, &d.Category, &d.Date, &d.Filename, &d.OriginalName, &d.UploadedAt); err != nil {
		return nil, err
	}

	d.Date = time.Date(d.Date.Year(), d.Date.Month(), d.Date.Day(), 0, 0, 0, 0, time.UTC)
	d.UploadedAt = d.UploadedAt.UTC()

	return &d, nil
}

func (s *DocumentStore) Insert(ctx context.Context, doc *newsletterservice.Document) error {
	query := `
		INSERT INTO newsletter_uploads (id, name, category, date, filename, original_name, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	return s.db.WithConn(ctx, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, query, doc.ID, doc.Name, doc.Category, doc.Date.Format(time.DateOnly), doc.Filename, doc.OriginalName, doc.UploadedAt)
		if UniqueViolation(err, "newsletter_uploads_pkey") {
			return common.ErrDuplicateRecord
		}
		return err
	})
}

func (s *DocumentStore) Get(ctx context.Context, id string) (*newsletterservice.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM newsletter_uploads WHERE id = $1`

	return s.queryOne(ctx, query, id)
}

func (s *DocumentStore) List(ctx context.Context) ([]newsletterservice.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM newsletter_uploads ORDER BY uploaded_at DESC, seq`

	docs := []newsletterservice.Document{}
	err := s.db.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			doc, err := scanDocument(rows)
			if err != nil {
				return err
			}
			docs = append(docs, *doc)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return docs, nil
}

func (s *DocumentStore) Update(ctx context.Context, doc *newsletterservice.Document) error {
	query := `
		UPDATE newsletter_uploads
		SET name = $1, category = $2, date = $3, filename = $4, original_name = $5
		WHERE id = $6
		RETURNING ` + documentColumns

	updated, err := s.queryOne(ctx, query, doc.Name, doc.Category, doc.Date.Format(time.DateOnly), doc.Filename, doc.OriginalName, doc.ID)
	if err != nil {
		return err
	}

	*doc = *updated
	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, id string) (*newsletterservice.Document, error) {
	query := `DELETE FROM newsletter_uploads WHERE id = $1 RETURNING ` + documentColumns

	return s.queryOne(ctx, query, id)
}

func (s *DocumentStore) queryOne(ctx context.Context, query string, args ...any) (*newsletterservice.Document, error) {
	var doc *newsletterservice.Document
	err := s.db.WithConn(ctx, func(conn *sql.Conn) (err error) {
		doc, err = scanDocument(conn.QueryRowContext(ctx, query, args...))
		return notFound(err)
	})

	return doc, err
}
