package memory

import (
	"context"
	"time"

	"github.com/sushihentaime/contenthub/internal/testimonialservice"
)

type TestimonialStore struct {
	c *collection[testimonialservice.Testimonial]
}

func NewTestimonialStore() *TestimonialStore {
	return &TestimonialStore{c: newCollection(
		func(t testimonialservice.Testimonial) time.Time { return t.CreatedAt },
		nil,
	)}
}

func (s *TestimonialStore) Insert(_ context.Context, t *testimonialservice.Testimonial) error {
	return s.c.insert(t.ID, *t)
}

func (s *TestimonialStore) Get(_ context.Context, id string) (*testimonialservice.Testimonial, error) {
	t, err := s.c.get(id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TestimonialStore) List(_ context.Context, filter testimonialservice.Filter) ([]testimonialservice.Testimonial, error) {
	return s.c.list(func(t testimonialservice.Testimonial) bool {
		return !filter.ActiveOnly || t.Active
	}), nil
}

func (s *TestimonialStore) Update(_ context.Context, t *testimonialservice.Testimonial) error {
	updated, err := s.c.update(t.ID, func(v *testimonialservice.Testimonial) {
		v.Name = t.Name
		v.Company = t.Company
		v.Rating = t.Rating
		v.Testimonial = t.Testimonial
		v.Active = t.Active
	})
	if err != nil {
		return err
	}

	*t = updated
	return nil
}

func (s *TestimonialStore) Delete(_ context.Context, id string) (*testimonialservice.Testimonial, error) {
	t, err := s.c.remove(id)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TestimonialStore) SetActive(_ context.Context, id string, active bool) (*testimonialservice.Testimonial, error) {
	t, err := s.c.update(id, func(v *testimonialservice.Testimonial) {
		v.Active = active
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}
