package testimonialservice

import "context"

// Store persists testimonials. Unknown ids yield common.ErrRecordNotFound.
type Store interface {
	Insert(ctx context.Context, t *Testimonial) error
	Get(ctx context.Context, id string) (*Testimonial, error)
	List(ctx context.Context, filter Filter) ([]Testimonial, error)
	// Update replaces every mutable field and fills in CreatedAt.
	Update(ctx context.Context, t *Testimonial) error
	Delete(ctx context.Context, id string) (*Testimonial, error)
	SetActive(ctx context.Context, id string, active bool) (*Testimonial, error)
}
