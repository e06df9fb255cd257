package testimonialservice

import (
	"context"

	"github.com/sushihentaime/contenthub/internal/common"
)

func NewTestimonialService(store Store) *TestimonialService {
	return &TestimonialService{store: store, now: common.Now}
}

// CreateTestimonial stores a new testimonial. It is active unless the input says otherwise.
func (s *TestimonialService) CreateTestimonial(ctx context.Context, in *TestimonialInput) (*Testimonial, error) {
	t, err := s.fromInput(common.NewID(), in)
	if err != nil {
		return nil, err
	}
	t.CreatedAt = s.now()

	if err := s.store.Insert(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *TestimonialService) GetTestimonial(ctx context.Context, id string) (*Testimonial, error) {
	if !common.ValidID(id) {
		return nil, common.ErrRecordNotFound
	}

	return s.store.Get(ctx, id)
}

// ListTestimonials returns testimonials newest first.
func (s *TestimonialService) ListTestimonials(ctx context.Context, filter Filter) ([]Testimonial, error) {
	return s.store.List(ctx, filter)
}

// UpdateTestimonial replaces every mutable field. An omitted active flag resets to true.
func (s *TestimonialService) UpdateTestimonial(ctx context.Context, id string, in *TestimonialInput) (*Testimonial, error) {
	if !common.ValidID(id) {
		return nil, common.ErrRecordNotFound
	}

	t, err := s.fromInput(id, in)
	if err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// SetActive shows or hides a testimonial on the public listing.
func (s *TestimonialService) SetActive(ctx context.Context, id string, active bool) (*Testimonial, error) {
	if !common.ValidID(id) {
		return nil, common.ErrRecordNotFound
	}

	return s.store.SetActive(ctx, id, active)
}

func (s *TestimonialService) DeleteTestimonial(ctx context.Context, id string) (*Testimonial, error) {
	if !common.ValidID(id) {
		return nil, common.ErrRecordNotFound
	}

	return s.store.Delete(ctx, id)
}

func (s *TestimonialService) fromInput(id string, in *TestimonialInput) (*Testimonial, error) {
	normalizeInput(in)

	v := common.NewValidator()
	validateInput(v, in)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	return &Testimonial{
		ID:          id,
		Name:        in.Name,
		Company:     in.Company,
		Rating:      *in.Rating,
		Testimonial: in.Testimonial,
		Active:      active,
	}, nil
}
