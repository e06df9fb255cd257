package postgres

import (
	"context"
	"database/sql"

	"github.com/sushihentaime/contenthub/internal/common"
	"github.com/sushihentaime/contenthub/internal/testimonialservice"
)

const testimonialColumns = `id, name, company, rating, testimonial, active, created_at`

type TestimonialStore struct {
	db *common.DB
}

func NewTestimonialStore(db *common.DB) *TestimonialStore {
	return &TestimonialStore{db: db}
}

func scanTestimonial(row rowScanner) (*testimonialservice.Testimonial, error) {
	var t testimonialservice.Testimonial
	if err := row.Scan(&t.ID, &t.Name, &t.Company, &t.Rating, &t.Testimonial, &t.Active, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.CreatedAt = t.CreatedAt.UTC()

	return &t, nil
}

func (s *TestimonialStore) Insert(ctx context.Context, t *testimonialservice.Testimonial) error {
	query := `
		INSERT INTO testimonials (id, name, company, rating, testimonial, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	return s.db.WithConn(ctx, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, query, t.ID, t.Name, t.Company, t.Rating, t.Testimonial, t.Active, t.CreatedAt)
		if UniqueViolation(err, "testimonials_pkey") {
			return common.ErrDuplicateRecord
		}
		return err
	})
}

func (s *TestimonialStore) Get(ctx context.Context, id string) (*testimonialservice.Testimonial, error) {
	query := `SELECT ` + testimonialColumns + ` FROM testimonials WHERE id = $1`

	return s.queryOne(ctx, query, id)
}

func (s *TestimonialStore) List(ctx context.Context, filter testimonialservice.Filter) ([]testimonialservice.Testimonial, error) {
	query := `
		SELECT ` + testimonialColumns + `
		FROM testimonials
		WHERE NOT $1 OR active
		ORDER BY created_at DESC, seq`

	testimonials := []testimonialservice.Testimonial{}
	err := s.db.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, filter.ActiveOnly)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			t, err := scanTestimonial(rows)
			if err != nil {
				return err
			}
			testimonials = append(testimonials, *t)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return testimonials, nil
}

func (s *TestimonialStore) Update(ctx context.Context, t *testimonialservice.Testimonial) error {
	query := `
		UPDATE testimonials
		SET name = $1, company = $2, rating = $3, testimonial = $4, active = $5
		WHERE id = $6
		RETURNING ` + testimonialColumns

	updated, err := s.queryOne(ctx, query, t.Name, t.Company, t.Rating, t.Testimonial, t.Active, t.ID)
	if err != nil {
		return err
	}

	*t = *updated
	return nil
}

func (s *TestimonialStore) Delete(ctx context.Context, id string) (*testimonialservice.Testimonial, error) {
	query := `DELETE FROM testimonials WHERE id = $1 RETURNING ` + testimonialColumns

	return s.queryOne(ctx, query, id)
}

func (s *TestimonialStore) SetActive(ctx context.Context, id string, active bool) (*testimonialservice.Testimonial, error) {
	query := `UPDATE testimonials SET active = $1 WHERE id = $2 RETURNING ` + testimonialColumns

	return s.queryOne(ctx, query, active, id)
}

func (s *TestimonialStore) queryOne(ctx context.Context, query string, args ...any) (*testimonialservice.Testimonial, error) {
	var t *testimonialservice.Testimonial
	err := s.db.WithConn(ctx, func(conn *sql.Conn) (err error) {
		t, err = scanTestimonial(conn.QueryRowContext(ctx, query, args...))
		return notFound(err)
	})

	return t, err
}
