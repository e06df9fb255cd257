package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/sushihentaime/contenthub/internal/attachment"
	"github.com/sushihentaime/contenthub/internal/common"
	"github.com/sushihentaime/contenthub/internal/newsletterservice"
)

func (app *application) logError(r *http.Request, err error) {
	var (
		method  = r.Method
		url     = r.URL.RequestURI()
		message = err.Error()
	)

	app.logger.Error(message, slog.String("method", method), slog.String("url", url))
}

func (app *application) writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, label, details string, extra envelope) {
	env := envelope{"error": label, "details": details}
	for k, v := range extra {
		env[k] = v
	}

	err := app.writeJSON(w, status, env, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	var extra envelope
	if !app.config.production() {
		extra = envelope{"stack": fmt.Sprintf("%s\n\n%s", err, debug.Stack())}
	}

	message := "the server encountered a problem and could not process your request"
	app.writeErrorResponse(w, r, http.StatusInternalServerError, "internal server error", message, extra)
}

func (app *application) badRequestErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.writeErrorResponse(w, r, http.StatusBadRequest, "bad request", err.Error(), nil)
}

func (app *application) notFoundErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusNotFound, "not found", "the requested resource could not be found", nil)
}

func (app *application) methodNotAllowedErrorResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	app.writeErrorResponse(w, r, http.StatusMethodNotAllowed, "method not allowed", message, nil)
}

func (app *application) failedValidationErrorResponse(w http.ResponseWriter, r *http.Request, verr common.ValidationError) {
	app.writeErrorResponse(w, r, http.StatusBadRequest, verr.Summary(), "the request contains invalid fields", envelope{"fields": verr.Errors})
}

func (app *application) storageUnavailableResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.writeErrorResponse(w, r, http.StatusServiceUnavailable, "service unavailable", "the storage backend is unavailable, please retry later", nil)
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded", "too many requests, slow down", nil)
}

func (app *application) missingFileResponse(w http.ResponseWriter, r *http.Request, field string) {
	app.writeErrorResponse(w, r, http.StatusBadRequest, "missing file", fmt.Sprintf("a file must be uploaded in the %s field", field), nil)
}

// errorResponse maps an error returned by a service or the attachment store onto a response.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var verr common.ValidationError

	switch {
	case errors.As(err, &verr):
		app.failedValidationErrorResponse(w, r, verr)
	case errors.Is(err, common.ErrRecordNotFound):
		app.notFoundErrorResponse(w, r)
	case errors.Is(err, attachment.ErrInvalidMediaType):
		app.writeErrorResponse(w, r, http.StatusBadRequest, "invalid file type", err.Error(), nil)
	case errors.Is(err, attachment.ErrPayloadTooLarge):
		app.writeErrorResponse(w, r, http.StatusBadRequest, "file too large", err.Error(), nil)
	case errors.Is(err, newsletterservice.ErrAlreadySubscribed):
		app.writeErrorResponse(w, r, http.StatusBadRequest, "already subscribed", "this email is already subscribed to the newsletter", nil)
	case errors.Is(err, common.ErrDuplicateRecord):
		app.writeErrorResponse(w, r, http.StatusBadRequest, "duplicate record", err.Error(), nil)
	case errors.Is(err, common.ErrStorageUnavailable):
		app.storageUnavailableResponse(w, r, err)
	default:
		app.serverErrorResponse(w, r, err)
	}
}
