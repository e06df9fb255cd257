package postgres

import (
	"context"
	"database/sql"

	"github.com/sushihentaime/contenthub/internal/common"
	"github.com/sushihentaime/contenthub/internal/contactservice"
)

const contactColumns = `id, name, email, phone, subject, message, read, created_at`

type ContactStore struct {
	db *common.DB
}

func NewContactStore(db *common.DB) *ContactStore {
	return &ContactStore{db: db}
}

func scanSubmission(row rowScanner) (*contactservice.Submission, error) {
	var s contactservice.Submission
	if err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Subject, &s.Message, &s.Read, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.CreatedAt = s.CreatedAt.UTC()

	return &s, nil
}

func (s *ContactStore) Insert(ctx context.Context, sub *contactservice.Submission) error {
	query := `
		INSERT INTO contact_submissions (id, name, email, phone, subject, message, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	return s.db.WithConn(ctx, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, query, sub.ID, sub.Name, sub.Email, sub.Phone, sub.Subject, sub.Message, sub.Read, sub.CreatedAt)
		if UniqueViolation(err, "contact_submissions_pkey") {
			return common.ErrDuplicateRecord
		}
		return err
	})
}

func (s *ContactStore) Get(ctx context.Context, id string) (*contactservice.Submission, error) {
	query := `SELECT ` + contactColumns + ` FROM contact_submissions WHERE id = $1`

	return s.queryOne(ctx, query, id)
}

func (s *ContactStore) List(ctx context.Context, filter contactservice.Filter) ([]contactservice.Submission, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM contact_submissions
		WHERE $1::boolean IS NULL OR read = $1
		ORDER BY created_at DESC, seq`

	var read any
	if filter.Read != nil {
		read = *filter.Read
	}

	subs := []contactservice.Submission{}
	err := s.db.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, read)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			sub, err := scanSubmission(rows)
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

func (s *ContactStore) Update(ctx context.Context, sub *contactservice.Submission) error {
	query := `
		UPDATE contact_submissions
		SET name = $1, email = $2, phone = $3, subject = $4, message = $5
		WHERE id = $6
		RETURNING ` + contactColumns

	updated, err := s.queryOne(ctx, query, sub.Name, sub.Email, sub.Phone, sub.Subject, sub.Message, sub.ID)
	if err != nil {
		return err
	}

	*sub = *updated
	return nil
}

func (s *ContactStore) Delete(ctx context.Context, id string) (*contactservice.Submission, error) {
	query := `DELETE FROM contact_submissions WHERE id = $1 RETURNING ` + contactColumns

	return s.queryOne(ctx, query, id)
}

func (s *ContactStore) SetRead(ctx context.Context, id string, read bool) (*contactservice.Submission, error) {
	query := `UPDATE contact_submissions SET read = $1 WHERE id = $2 RETURNING ` + contactColumns

	return s.queryOne(ctx, query, read, id)
}

func (s *ContactStore) queryOne(ctx context.Context, query string, args ...any) (*contactservice.Submission, error) {
	var sub *contactservice.Submission
	err := s.db.WithConn(ctx, func(conn *sql.Conn) (err error) {
		sub, err = scanSubmission(conn.QueryRowContext(ctx, query, args...))
		return notFound(err)
	})

	return sub, err
}
