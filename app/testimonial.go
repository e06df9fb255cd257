package main

import (
	"net/http"

	"github.com/sushihentaime/contenthub/internal/common"
	"github.com/sushihentaime/contenthub/internal/testimonialservice"
)

type activeRequest struct {
	Active *bool `json:"active"`
}

// listTestimonialsHandler lists active testimonials unless all=true is given.
func (app *application) listTestimonialsHandler(w http.ResponseWriter, r *http.Request) {
	all, err := app.readBoolQuery(r, "all")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	filter := testimonialservice.Filter{ActiveOnly: all == nil || !*all}

	testimonials, err := app.testimonialService.ListTestimonials(r.Context(), filter)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"testimonials": testimonials}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createTestimonialHandler(w http.ResponseWriter, r *http.Request) {
	var input testimonialservice.TestimonialInput

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	testimonial, err := app.testimonialService.CreateTestimonial(r.Context(), &input)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	env := envelope{"message": "Testimonial created successfully", "testimonial": testimonial}
	err = app.writeJSON(w, http.StatusCreated, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getTestimonialHandler(w http.ResponseWriter, r *http.Request) {
	testimonial, err := app.testimonialService.GetTestimonial(r.Context(), app.readIDParam(r))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"testimonial": testimonial}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateTestimonialHandler(w http.ResponseWriter, r *http.Request) {
	var input testimonialservice.TestimonialInput

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	testimonial, err := app.testimonialService.UpdateTestimonial(r.Context(), app.readIDParam(r), &input)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	env := envelope{"message": "Testimonial updated successfully", "testimonial": testimonial}
	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) setTestimonialActiveHandler(w http.ResponseWriter, r *http.Request) {
	var input activeRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	if input.Active == nil {
		app.failedValidationErrorResponse(w, r, common.ValidationError{Errors: map[string]string{"active": "must be provided"}})
		return
	}

	testimonial, err := app.testimonialService.SetActive(r.Context(), app.readIDParam(r), *input.Active)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	env := envelope{"message": "Testimonial updated successfully", "testimonial": testimonial}
	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteTestimonialHandler(w http.ResponseWriter, r *http.Request) {
	_, err := app.testimonialService.DeleteTestimonial(r.Context(), app.readIDParam(r))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "Testimonial deleted successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
