package main

import (
	"log/slog"
	"net/http"

	"github.com/sushihentaime/contenthub/internal/attachment"
	"github.com/sushihentaime/contenthub/internal/blogservice"
)

func (app *application) listBlogsHandler(w http.ResponseWriter, r *http.Request) {
	featured, err := app.readBoolQuery(r, "featured")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	filter := blogservice.Filter{FeaturedOnly: featured != nil && *featured}

	blogs, err := app.blogService.ListBlogs(r.Context(), filter)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blogs": blogs}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// getBlogHandler counts a view on every successful fetch.
func (app *application) getBlogHandler(w http.ResponseWriter, r *http.Request) {
	blog, err := app.blogService.ViewBlog(r.Context(), app.readIDParam(r))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blog": blog}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input blogservice.BlogInput

	upload, cleanup, err := app.parseMultipart(w, r, attachment.Image, &input, "image")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}
	defer cleanup()

	// Reject bad fields before anything is written to disk.
	if err := app.blogService.ValidateInput(&input); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	var image string
	if upload != nil {
		ref, err := app.attachments.Store(attachment.Image, *upload)
		if err != nil {
			app.errorResponse(w, r, err)
			return
		}
		image = ref.Path
	}

	blog, err := app.blogService.CreateBlog(r.Context(), &input, image)
	if err != nil {
		if image != "" {
			app.logOrphan(r, attachment.Image, image, err)
		}
		app.errorResponse(w, r, err)
		return
	}

	env := envelope{"message": "Blog post created successfully", "blog": blog}
	err = app.writeJSON(w, http.StatusCreated, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateBlogHandler(w http.ResponseWriter, r *http.Request) {
	id := app.readIDParam(r)

	var input blogservice.BlogInput

	upload, cleanup, err := app.parseMultipart(w, r, attachment.Image, &input, "image")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}
	defer cleanup()

	if err := app.blogService.ValidateInput(&input); err != nil {
		app.errorResponse(w, r, err)
		return
	}

	existing, err := app.blogService.GetBlog(r.Context(), id)
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	var blog *blogservice.Blog
	if upload == nil {
		blog, err = app.blogService.UpdateBlog(r.Context(), id, &input, existing.Image)
	} else {
		_, err = app.attachments.Replace(attachment.Image, existing.Image, *upload, func(ref *attachment.StoredRef) error {
			var err error
			blog, err = app.blogService.UpdateBlog(r.Context(), id, &input, ref.Path)
			return err
		})
	}
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	env := envelope{"message": "Blog post updated successfully", "blog": blog}
	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteBlogHandler(w http.ResponseWriter, r *http.Request) {
	blog, err := app.blogService.DeleteBlog(r.Context(), app.readIDParam(r))
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	if blog.Image != "" {
		app.attachments.Delete(attachment.Image, blog.Image)
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "Blog post deleted successfully"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) blogAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := app.blogService.Analytics(r.Context())
	if err != nil {
		app.errorResponse(w, r, err)
		return
	}

	env := envelope{"total_posts": stats.TotalPosts, "total_views": stats.TotalViews}
	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// logOrphan records a stored file left without a referencing record.
func (app *application) logOrphan(r *http.Request, kind attachment.Kind, ref string, err error) {
	app.logger.Warn("attachment orphaned after failed write",
		slog.String("kind", kind.String()),
		slog.String("ref", ref),
		slog.String("url", r.URL.RequestURI()),
		slog.String("error", err.Error()))
}
