package main

import (
	"fmt"
	"net/http"

	"github.com/sushihentaime/contenthub/internal/attachment"
	"github.com/sushihentaime/contenthub/internal/newsletterservice"
)

func (app *application) subscribeHandler(w http.ResponseWriter, r *http.Request) {
	var input newsletterservice.SubscriberInput

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	subscriber, created, err := app.newsletterService.Subscribe(r.Context(), &input)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	status, message := http.StatusOK, "Welcome back! Your subscription has been reactivated"
	if created {
		status, message = http.StatusCreated, "Successfully subscribed to the newsletter"
	}

	err = app.writeJSON(w, status, envelope{"message": message, "subscriber": subscriber}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) listSubscribersHandler(w http.ResponseWriter, r *http.Request) {
	filter := newsletterservice.SubscriberFilter{Status: r.URL.Query().Get("status")}

	subscribers, err := app.newsletterService.ListSubscribers(r.Context(), filter)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"subscribers": subscribers}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getSubscriberHandler(w http.ResponseWriter, r *http.Request) {
	subscriber, err := app.newsletterService.GetSubscriber(r.Context(), app.readIDParam(r))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"subscriber": subscriber}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateSubscriberHandler(w http.ResponseWriter, r *http.Request) {
	var input newsletterservice.SubscriberInput

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	subscriber, err := app.newsletterService.UpdateSubscriber(r.Context(), app.readIDParam(r), &input)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	env := envelope{"message": "Subscriber updated successfully", "subscriber": subscriber}
	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) unsubscribeHandler(w http.ResponseWriter, r *http.Request) {
	subscriber, err := app.newsletterService.Unsubscribe(r.Context(), app.readIDParam(r))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	env := envelope{"message": "Subscriber unsubscribed successfully", "subscriber": subscriber}
	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) resubscribeHandler(w http.ResponseWriter, r *http.Request) {
	subscriber, err := app.newsletterService.Resubscribe(r.Context(), app.readIDParam(r))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	env := envelope{"message": "Subscriber resubscribed successfully", "subscriber": subscriber}
	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteSubscriberHandler(w http.ResponseWriter, r *http.Request) {
	_, err := app.newsletterService.DeleteSubscriber(r.Context(), app.readIDParam(r))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "Subscriber deleted successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) sendNewsletterHandler(w http.ResponseWriter, r *http.Request) {
	var input newsletterservice.SendInput

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	receipt, err := app.newsletterService.Send(r.Context(), &input)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	env := envelope{
		"message": fmt.Sprintf("Newsletter sent to %d subscribers", receipt.Accepted),
		"sentTo":  receipt.Accepted,
	}
	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) uploadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	var input newsletterservice.DocumentInput

	upload, cleanup, err := app.parseMultipart(w, r, attachment.PDF, &input, "pdf")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}
	defer cleanup()

	if err := app.newsletterService.ValidateDocument(&input); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if upload == nil {
		app.missingFileResponse(w, r, "pdf")
		return
	}

	ref, err := app.attachments.Store(attachment.PDF, *upload)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	file := newsletterservice.File{Filename: ref.Name, OriginalName: ref.OriginalName}
	doc, err := app.newsletterService.CreateDocument(r.Context(), &input, file)
	if err != nil {
		app.logOrphan(r, attachment.PDF, ref.Name, err)
		app.errorResponse(w, r, err)
		return
	}

	env := envelope{"message": "Newsletter uploaded successfully", "document": doc}
	err = app.writeJSON(w, http.StatusCreated, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) listDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	docs, err := app.newsletterService.ListDocuments(r.Context())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"documents": docs}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getDocumentHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := app.newsletterService.GetDocument(r.Context(), app.readIDParam(r))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"document": doc}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateDocumentHandler replaces the metadata and, when a new PDF is sent, the file.
func (app *application) updateDocumentHandler(w http.ResponseWriter, r *http.Request) {
	id := app.readIDParam(r)

	var input newsletterservice.DocumentInput

	upload, cleanup, err := app.parseMultipart(w, r, attachment.PDF, &input, "pdf")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}
	defer cleanup()

	if err := app.newsletterService.ValidateDocument(&input); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	existing, err := app.newsletterService.GetDocument(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	var doc *newsletterservice.Document
	if upload == nil {
		file := newsletterservice.File{Filename: existing.Filename, OriginalName: existing.OriginalName}
		doc, err = app.newsletterService.UpdateDocument(r.Context(), id, &input, file)
	} else {
		_, err = app.attachments.Replace(attachment.PDF, existing.Filename, *upload, func(ref *attachment.StoredRef) error {
			var err error
			file := newsletterservice.File{Filename: ref.Name, OriginalName: ref.OriginalName}
			doc, err = app.newsletterService.UpdateDocument(r.Context(), id, &input, file)
			return err
		})
	}
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	env := envelope{"message": "Newsletter updated successfully", "document": doc}
	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := app.newsletterService.DeleteDocument(r.Context(), app.readIDParam(r))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	app.attachments.Delete(attachment.PDF, doc.Filename)

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "Newsletter deleted successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
