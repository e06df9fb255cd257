package testimonialservice

import (
	"fmt"
	"strings"

	"github.com/sushihentaime/contenthub/internal/common"
)

func normalizeInput(in *TestimonialInput) {
	in.Name = strings.TrimSpace(in.Name)
	in.Company = strings.TrimSpace(in.Company)
	in.Testimonial = strings.TrimSpace(in.Testimonial)
}

func validateInput(v *common.Validator, in *TestimonialInput) {
	v.Check(in.Name != "", "name", "must be provided")
	v.Check(v.MaxLength(in.Name, 100), "name", "must not be more than 100 characters long")

	v.Check(in.Company != "", "company", "must be provided")
	v.Check(v.MaxLength(in.Company, 255), "company", "must not be more than 255 characters long")

	validateRating(v, in.Rating)
}

func validateRating(v *common.Validator, rating *int) {
	if rating == nil {
		v.AddError("rating", "must be provided")
		return
	}

	v.Check(v.Between(*rating, MinRating, MaxRating), "rating", fmt.Sprintf("must be between %d and %d", MinRating, MaxRating))
}
