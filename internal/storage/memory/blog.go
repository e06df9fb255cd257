package memory

import (
	"context"
	"slices"
	"time"

	"github.com/sushihentaime/contenthub/internal/blogservice"
)

type BlogStore struct {
	c *collection[blogservice.Blog]
}

func NewBlogStore() *BlogStore {
	return &BlogStore{c: newCollection(
		func(b blogservice.Blog) time.Time { return b.CreatedAt },
		func(b blogservice.Blog) blogservice.Blog {
			b.Tags = slices.Clone(b.Tags)
			if b.Tags == nil {
				b.Tags = []string{}
			}
			return b
		},
	)}
}

func (s *BlogStore) Insert(_ context.Context, blog *blogservice.Blog) error {
	return s.c.insert(blog.ID, *blog)
}

func (s *BlogStore) Get(_ context.Context, id string) (*blogservice.Blog, error) {
	b, err := s.c.get(id)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BlogStore) List(_ context.Context, filter blogservice.Filter) ([]blogservice.Blog, error) {
	return s.c.list(func(b blogservice.Blog) bool {
		return !filter.FeaturedOnly || b.Featured
	}), nil
}

func (s *BlogStore) Update(_ context.Context, blog *blogservice.Blog) error {
	updated, err := s.c.update(blog.ID, func(b *blogservice.Blog) {
		b.Title = blog.Title
		b.Excerpt = blog.Excerpt
		b.Content = blog.Content
		b.Author = blog.Author
		b.Category = blog.Category
		b.Date = blog.Date
		b.Tags = slices.Clone(blog.Tags)
		b.Featured = blog.Featured
		b.Image = blog.Image
		b.Thumbnail = blog.Thumbnail
	})
	if err != nil {
		return err
	}

	*blog = updated
	return nil
}

func (s *BlogStore) Delete(_ context.Context, id string) (*blogservice.Blog, error) {
	b, err := s.c.remove(id)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BlogStore) IncrementViews(_ context.Context, id string) (*blogservice.Blog, error) {
	b, err := s.c.update(id, func(b *blogservice.Blog) {
		b.Views++
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BlogStore) Stats(_ context.Context) (*blogservice.Stats, error) {
	stats := &blogservice.Stats{}
	for _, b := range s.c.list(nil) {
		stats.TotalPosts++
		stats.TotalViews += b.Views
	}
	return stats, nil
}
