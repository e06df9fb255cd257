package main

import (
	"io/fs"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sushihentaime/contenthub/internal/attachment"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/api/test", app.liveness)
	router.HandlerFunc(http.MethodGet, "/api/db-health", app.healthCheckHandler)

	// blogs
	router.HandlerFunc(http.MethodGet, "/api/blogs", app.listBlogsHandler)
	router.HandlerFunc(http.MethodPost, "/api/blogs", app.createBlogHandler)
	router.HandlerFunc(http.MethodGet, "/api/blogs/:id", app.getBlogHandler)
	router.HandlerFunc(http.MethodPut, "/api/blogs/:id", app.updateBlogHandler)
	router.HandlerFunc(http.MethodDelete, "/api/blogs/:id", app.deleteBlogHandler)
	router.HandlerFunc(http.MethodGet, "/api/blogs-analytics", app.blogAnalyticsHandler)

	// contact submissions
	router.HandlerFunc(http.MethodGet, "/api/contact-submissions", app.listSubmissionsHandler)
	router.HandlerFunc(http.MethodPost, "/api/contact-submissions", app.createSubmissionHandler)
	router.HandlerFunc(http.MethodGet, "/api/contact-submissions/:id", app.getSubmissionHandler)
	router.HandlerFunc(http.MethodPut, "/api/contact-submissions/:id", app.updateSubmissionHandler)
	router.HandlerFunc(http.MethodDelete, "/api/contact-submissions/:id", app.deleteSubmissionHandler)
	router.HandlerFunc(http.MethodPut, "/api/contact-submissions/:id/read", app.markSubmissionReadHandler)

	// testimonials
	router.HandlerFunc(http.MethodGet, "/api/testimonials", app.listTestimonialsHandler)
	router.HandlerFunc(http.MethodPost, "/api/testimonials", app.createTestimonialHandler)
	router.HandlerFunc(http.MethodGet, "/api/testimonials/:id", app.getTestimonialHandler)
	router.HandlerFunc(http.MethodPut, "/api/testimonials/:id", app.updateTestimonialHandler)
	router.HandlerFunc(http.MethodDelete, "/api/testimonials/:id", app.deleteTestimonialHandler)
	router.HandlerFunc(http.MethodPut, "/api/testimonials/:id/active", app.setTestimonialActiveHandler)

	// newsletter
	router.HandlerFunc(http.MethodPost, "/api/newsletter/subscribe", app.subscribeHandler)
	router.HandlerFunc(http.MethodGet, "/api/newsletter/subscribers", app.listSubscribersHandler)
	router.HandlerFunc(http.MethodGet, "/api/newsletter/subscribers/:id", app.getSubscriberHandler)
	router.HandlerFunc(http.MethodPut, "/api/newsletter/subscribers/:id", app.updateSubscriberHandler)
	router.HandlerFunc(http.MethodDelete, "/api/newsletter/subscribers/:id", app.deleteSubscriberHandler)
	router.HandlerFunc(http.MethodPut, "/api/newsletter/subscribers/:id/unsubscribe", app.unsubscribeHandler)
	router.HandlerFunc(http.MethodPut, "/api/newsletter/subscribers/:id/resubscribe", app.resubscribeHandler)
	router.HandlerFunc(http.MethodPost, "/api/newsletter/send", app.sendNewsletterHandler)
	router.HandlerFunc(http.MethodPost, "/api/newsletter/upload", app.uploadDocumentHandler)
	router.HandlerFunc(http.MethodGet, "/api/newsletter/uploads", app.listDocumentsHandler)
	router.HandlerFunc(http.MethodGet, "/api/newsletter/uploads/:id", app.getDocumentHandler)
	router.HandlerFunc(http.MethodPut, "/api/newsletter/uploads/:id", app.updateDocumentHandler)
	router.HandlerFunc(http.MethodDelete, "/api/newsletter/uploads/:id", app.deleteDocumentHandler)

	router.ServeFiles(attachment.URLPrefix+"/*filepath", fileOnlyFS{http.Dir(app.attachments.Root())})

	return app.recoverPanic(app.logRequest(app.enableCORS(app.rateLimit(router))))
}

// fileOnlyFS hides directories so the upload tree cannot be listed.
type fileOnlyFS struct {
	fs http.FileSystem
}

func (f fileOnlyFS) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}

	return file, nil
}
