package main

import (
	"net/http"

	"github.com/sushihentaime/contenthub/internal/common"
	"github.com/sushihentaime/contenthub/internal/contactservice"
)

type readRequest struct {
	Read *bool `json:"read"`
}

func (app *application) listSubmissionsHandler(w http.ResponseWriter, r *http.Request) {
	read, err := app.readBoolQuery(r, "read")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	submissions, err := app.contactService.ListSubmissions(r.Context(), contactservice.Filter{Read: read})
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"submissions": submissions}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createSubmissionHandler(w http.ResponseWriter, r *http.Request) {
	var input contactservice.SubmissionInput

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	submission, err := app.contactService.CreateSubmission(r.Context(), &input)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	env := envelope{"message": "Contact submission received successfully", "submission": submission}
	err = app.writeJSON(w, http.StatusCreated, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getSubmissionHandler(w http.ResponseWriter, r *http.Request) {
	submission, err := app.contactService.GetSubmission(r.Context(), app.readIDParam(r))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"submission": submission}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateSubmissionHandler(w http.ResponseWriter, r *http.Request) {
	var input contactservice.SubmissionInput

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	submission, err := app.contactService.UpdateSubmission(r.Context(), app.readIDParam(r), &input)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	env := envelope{"message": "Contact submission updated successfully", "submission": submission}
	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) markSubmissionReadHandler(w http.ResponseWriter, r *http.Request) {
	var input readRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	if input.Read == nil {
		app.failedValidationErrorResponse(w, r, common.ValidationError{Errors: map[string]string{"read": "must be provided"}})
		return
	}

	submission, err := app.contactService.MarkRead(r.Context(), app.readIDParam(r), *input.Read)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	env := envelope{"message": "Contact submission updated successfully", "submission": submission}
	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteSubmissionHandler(w http.ResponseWriter, r *http.Request) {
	_, err := app.contactService.DeleteSubmission(r.Context(), app.readIDParam(r))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "Contact submission deleted successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
