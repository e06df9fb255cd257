package blogservice

import (
	"context"
)

// Store persists blog posts. Implementations return common.ErrRecordNotFound for
// unknown ids and list posts newest first, keeping insertion order for equal
// timestamps.
type Store interface {
	Insert(ctx context.Context, blog *Blog) error
	Get(ctx context.Context, id string) (*Blog, error)
	List(ctx context.Context, filter Filter) ([]Blog, error)
	// Update replaces the mutable fields of blog and fills in Views and CreatedAt
	// from the stored row.
	Update(ctx context.Context, blog *Blog) error
	// Delete removes the post and returns its last state.
	Delete(ctx context.Context, id string) (*Blog, error)
	// IncrementViews adds one to the view counter in a single step and returns the
	// updated post.
	IncrementViews(ctx context.Context, id string) (*Blog, error)
	Stats(ctx context.Context) (*Stats, error)
}
