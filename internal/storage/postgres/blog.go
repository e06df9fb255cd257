package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/sushihentaime/contenthub/internal/blogservice"
	"github.com/sushihentaime/contenthub/internal/common"
)

const blogColumns = `id, title, excerpt, content, author, category, date, tags, featured, views, image, thumbnail, created_at`

type BlogStore struct {
	db *common.DB
}

func NewBlogStore(db *common.DB) *BlogStore {
	return &BlogStore{db: db}
}

func scanBlog(row rowScanner) (*blogservice.Blog, error) {
	var blog blogservice.Blog
	err := row.Scan(&blog.ID, &blog.Title, &blog.Excerpt, &blog.Content, &blog.Author, &blog.Category, &blog.Date,
		pq.Array(&blog.Tags), &blog.Featured, &blog.Views, &blog.Image, &blog.Thumbnail, &blog.CreatedAt)
	if err != nil {
		return nil, err
	}

	if blog.Tags == nil {
		blog.Tags = []string{}
	}
	blog.CreatedAt = blog.CreatedAt.UTC()

	return &blog, nil
}

func tagsParam(tags []string) any {
	if tags == nil {
		tags = []string{}
	}
	return pq.Array(tags)
}

func (s *BlogStore) Insert(ctx context.Context, blog *blogservice.Blog) error {
	query := `
		INSERT INTO blogs (id, title, excerpt, content, author, category, date, tags, featured, views, image, thumbnail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	return s.db.WithConn(ctx, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, query, blog.ID, blog.Title, blog.Excerpt, blog.Content, blog.Author, blog.Category,
			blog.Date, tagsParam(blog.Tags), blog.Featured, blog.Views, blog.Image, blog.Thumbnail, blog.CreatedAt)
		if UniqueViolation(err, "blogs_pkey") {
			return common.ErrDuplicateRecord
		}
		return err
	})
}

func (s *BlogStore) Get(ctx context.Context, id string) (*blogservice.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE id = $1`

	var blog *blogservice.Blog
	err := s.db.WithConn(ctx, func(conn *sql.Conn) (err error) {
		blog, err = scanBlog(conn.QueryRowContext(ctx, query, id))
		return notFound(err)
	})

	return blog, err
}

// List sorts by created_at descending; seq keeps insertion order for equal timestamps.
func (s *BlogStore) List(ctx context.Context, filter blogservice.Filter) ([]blogservice.Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs
		WHERE NOT $1 OR featured
		ORDER BY created_at DESC, seq`

	blogs := []blogservice.Blog{}
	err := s.db.WithConn(ctx, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query, filter.FeaturedOnly)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			blog, err := scanBlog(rows)
			if err != nil {
				return err
			}
			blogs = append(blogs, *blog)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return blogs, nil
}

func (s *BlogStore) Update(ctx context.Context, blog *blogservice.Blog) error {
	query := `
		UPDATE blogs
		SET title = $1, excerpt = $2, content = $3, author = $4, category = $5, date = $6, tags = $7,
			featured = $8, image = $9, thumbnail = $10
		WHERE id = $11
		RETURNING ` + blogColumns

	return s.db.WithConn(ctx, func(conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx, query, blog.Title, blog.Excerpt, blog.Content, blog.Author, blog.Category, blog.Date,
			tagsParam(blog.Tags), blog.Featured, blog.Image, blog.Thumbnail, blog.ID)

		updated, err := scanBlog(row)
		if err != nil {
			return notFound(err)
		}

		*blog = *updated
		return nil
	})
}

func (s *BlogStore) Delete(ctx context.Context, id string) (*blogservice.Blog, error) {
	query := `DELETE FROM blogs WHERE id = $1 RETURNING ` + blogColumns

	var blog *blogservice.Blog
	err := s.db.WithConn(ctx, func(conn *sql.Conn) (err error) {
		blog, err = scanBlog(conn.QueryRowContext(ctx, query, id))
		return notFound(err)
	})

	return blog, err
}

func (s *BlogStore) IncrementViews(ctx context.Context, id string) (*blogservice.Blog, error) {
	query := `UPDATE blogs SET views = views + 1 WHERE id = $1 RETURNING ` + blogColumns

	var blog *blogservice.Blog
	err := s.db.WithConn(ctx, func(conn *sql.Conn) (err error) {
		blog, err = scanBlog(conn.QueryRowContext(ctx, query, id))
		return notFound(err)
	})

	return blog, err
}

func (s *BlogStore) Stats(ctx context.Context) (*blogservice.Stats, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(views), 0) FROM blogs`

	var stats blogservice.Stats
	err := s.db.WithConn(ctx, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query).Scan(&stats.TotalPosts, &stats.TotalViews)
	})
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
