package testimonialservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/contenthub/internal/common"
	"github.com/sushihentaime/contenthub/internal/storage/memory"
	"github.com/sushihentaime/contenthub/internal/testimonialservice"
)

func intPtr(n int) *int { return &n }

func boolPtr(b bool) *bool { return &b }

func TestCreateTestimonial(t *testing.T) {
	testCases := []struct {
		name        string
		input       testimonialservice.TestimonialInput
		expectedErr map[string]string
	}{
		{
			name:  "valid",
			input: testimonialservice.TestimonialInput{Name: "Ann", Company: "Acme", Rating: intPtr(5), Testimonial: "Great"},
		},
		{
			name:  "lowest rating",
			input: testimonialservice.TestimonialInput{Name: "Ann", Company: "Acme", Rating: intPtr(1)},
		},
		{
			name:        "rating above range",
			input:       testimonialservice.TestimonialInput{Name: "Ann", Company: "Acme", Rating: intPtr(6)},
			expectedErr: map[string]string{"rating": "must be between 1 and 5"},
		},
		{
			name:        "rating below range",
			input:       testimonialservice.TestimonialInput{Name: "Ann", Company: "Acme", Rating: intPtr(0)},
			expectedErr: map[string]string{"rating": "must be between 1 and 5"},
		},
		{
			name:        "missing rating",
			input:       testimonialservice.TestimonialInput{Name: "Ann", Company: "Acme"},
			expectedErr: map[string]string{"rating": "must be provided"},
		},
		{
			name:  "missing name and company",
			input: testimonialservice.TestimonialInput{Rating: intPtr(3)},
			expectedErr: map[string]string{
				"name":    "must be provided",
				"company": "must be provided",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := testimonialservice.NewTestimonialService(memory.NewTestimonialStore())
			ctx := context.Background()

			in := tc.input
			got, err := s.CreateTestimonial(ctx, &in)
			if tc.expectedErr != nil {
				var verr common.ValidationError
				require.True(t, errors.As(err, &verr), "got %v", err)
				assert.Equal(t, tc.expectedErr, verr.Errors)

				all, err := s.ListTestimonials(ctx, testimonialservice.Filter{})
				require.NoError(t, err)
				assert.Empty(t, all)
				return
			}

			require.NoError(t, err)
			assert.True(t, got.Active)
			assert.Equal(t, *tc.input.Rating, got.Rating)
			assert.Equal(t, tc.input.Testimonial, got.Testimonial)
		})
	}
}

func TestActiveFilter(t *testing.T) {
	s := testimonialservice.NewTestimonialService(memory.NewTestimonialStore())
	ctx := context.Background()

	shown, err := s.CreateTestimonial(ctx, &testimonialservice.TestimonialInput{Name: "Ann", Company: "Acme", Rating: intPtr(5)})
	require.NoError(t, err)

	hidden, err := s.CreateTestimonial(ctx, &testimonialservice.TestimonialInput{Name: "Bob", Company: "Acme", Rating: intPtr(4), Active: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, hidden.Active)

	public, err := s.ListTestimonials(ctx, testimonialservice.Filter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, shown.ID, public[0].ID)

	_, err = s.SetActive(ctx, hidden.ID, true)
	require.NoError(t, err)

	public, err = s.ListTestimonials(ctx, testimonialservice.Filter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, public, 2)
}

func TestUpdateTestimonial(t *testing.T) {
	s := testimonialservice.NewTestimonialService(memory.NewTestimonialStore())
	ctx := context.Background()

	created, err := s.CreateTestimonial(ctx, &testimonialservice.TestimonialInput{Name: "Ann", Company: "Acme", Rating: intPtr(5), Testimonial: "Great", Active: boolPtr(false)})
	require.NoError(t, err)

	updated, err := s.UpdateTestimonial(ctx, created.ID, &testimonialservice.TestimonialInput{Name: "Ann", Company: "Acme Inc", Rating: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, "Acme Inc", updated.Company)
	assert.Equal(t, 4, updated.Rating)
	assert.Empty(t, updated.Testimonial)
	assert.True(t, updated.Active)

	_, err = s.UpdateTestimonial(ctx, created.ID, &testimonialservice.TestimonialInput{Name: "Ann", Company: "Acme", Rating: intPtr(9)})
	var verr common.ValidationError
	assert.True(t, errors.As(err, &verr))

	got, err := s.GetTestimonial(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Rating)

	_, err = s.UpdateTestimonial(ctx, common.NewID(), &testimonialservice.TestimonialInput{Name: "Ann", Company: "Acme", Rating: intPtr(4)})
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}

func TestDeleteTestimonial(t *testing.T) {
	s := testimonialservice.NewTestimonialService(memory.NewTestimonialStore())
	ctx := context.Background()

	created, err := s.CreateTestimonial(ctx, &testimonialservice.TestimonialInput{Name: "Ann", Company: "Acme", Rating: intPtr(5)})
	require.NoError(t, err)

	_, err = s.DeleteTestimonial(ctx, created.ID)
	require.NoError(t, err)

	_, err = s.DeleteTestimonial(ctx, created.ID)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}
