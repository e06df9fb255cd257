package testimonialservice

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Testimonial struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Company     string    `json:"company"`
	Rating      int       `json:"rating"`
	Testimonial string    `json:"testimonial"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// TestimonialInput holds the client supplied fields. Rating and Active are
// pointers so a missing value can be told apart from a zero value.
type TestimonialInput struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	Rating      *int   `json:"rating"`
	Testimonial string `json:"testimonial"`
	Active      *bool  `json:"active"`
}

type Filter struct {
	ActiveOnly bool
}

type TestimonialService struct {
	store Store
	now   func() time.Time
}
