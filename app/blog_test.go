package main

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\nfake image")

func imagePath(app *application, ref string) string {
	return filepath.Join(app.attachments.Root(), strings.TrimPrefix(ref, "/uploads/"))
}

func TestBlogLifecycle(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	data := map[string]any{
		"title":   "  Hello  ",
		"content": "Body<script>alert(1)</script>",
		"tags":    "go, web,, ",
	}

	status, _, body := ts.multipartRequest(t, http.MethodPost, "/api/blogs", data, &testFile{
		field: "image", filename: "cover.png", contentType: "image/png", content: pngBytes,
	})
	require.Equal(t, http.StatusCreated, status, body)

	blog := object(t, body, "blog")
	id := blog["id"].(string)
	image := blog["image"].(string)

	assert.Equal(t, "Hello", blog["title"])
	assert.Equal(t, "Body", blog["content"])
	assert.Equal(t, []any{"go", "web"}, blog["tags"])
	assert.Equal(t, image, blog["thumbnail"])
	assert.True(t, strings.HasPrefix(image, "/uploads/"))
	assert.FileExists(t, imagePath(app, image))

	t.Run("image is served", func(t *testing.T) {
		res, err := ts.Client().Get(ts.URL + image)
		require.NoError(t, err)
		defer res.Body.Close()

		content, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, pngBytes, content)
	})

	t.Run("every fetch counts a view", func(t *testing.T) {
		var views float64
		for i := 0; i < 3; i++ {
			status, _, body := ts.get(t, "/api/blogs/"+id)
			require.Equal(t, http.StatusOK, status)
			views = object(t, body, "blog")["views"].(float64)
		}
		assert.Equal(t, float64(3), views)
	})

	t.Run("update without image keeps it", func(t *testing.T) {
		status, _, body := ts.multipartRequest(t, http.MethodPut, "/api/blogs/"+id, map[string]any{
			"title": "Updated", "content": "New body", "tags": []string{"a, b"},
		}, nil)
		require.Equal(t, http.StatusOK, status, body)

		blog := object(t, body, "blog")
		assert.Equal(t, "Updated", blog["title"])
		assert.Equal(t, image, blog["image"])
		assert.Equal(t, []any{"a, b"}, blog["tags"])
		assert.Equal(t, float64(3), blog["views"])
	})

	t.Run("update with image replaces the file", func(t *testing.T) {
		status, _, body := ts.multipartRequest(t, http.MethodPut, "/api/blogs/"+id, map[string]any{
			"title": "Updated", "content": "New body",
		}, &testFile{field: "image", filename: "new.jpg", contentType: "image/jpeg", content: []byte("jpeg")})
		require.Equal(t, http.StatusOK, status, body)

		newImage := object(t, body, "blog")["image"].(string)
		assert.NotEqual(t, image, newImage)
		assert.FileExists(t, imagePath(app, newImage))
		assert.NoFileExists(t, imagePath(app, image))
		image = newImage
	})

	t.Run("delete removes the image", func(t *testing.T) {
		status, _, body := ts.request(t, http.MethodDelete, "/api/blogs/"+id, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Blog post deleted successfully", body["message"])
		assert.NoFileExists(t, imagePath(app, image))

		status, _, _ = ts.get(t, "/api/blogs/"+id)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestCreateBlogRejected(t *testing.T) {
	tests := []struct {
		name   string
		data   map[string]any
		file   *testFile
		status int
		field  string
	}{
		{
			name:   "missing title",
			data:   map[string]any{"content": "Body"},
			file:   &testFile{field: "image", filename: "a.png", contentType: "image/png", content: pngBytes},
			status: http.StatusBadRequest,
			field:  "title",
		},
		{
			name:   "not an image",
			data:   map[string]any{"title": "T", "content": "Body"},
			file:   &testFile{field: "image", filename: "a.txt", contentType: "text/plain", content: []byte("hi")},
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown field",
			data:   map[string]any{"title": "T", "content": "Body", "views": 10},
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(t)
			ts := newTestServer(t, app.routes())

			status, _, body := ts.multipartRequest(t, http.MethodPost, "/api/blogs", tt.data, tt.file)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, body["error"])
			assert.NotEmpty(t, body["details"])

			if tt.field != "" {
				assert.Contains(t, object(t, body, "fields"), tt.field)
			}

			entries, err := os.ReadDir(app.attachments.Root())
			require.NoError(t, err)
			for _, e := range entries {
				assert.True(t, e.IsDir(), "unexpected file %s", e.Name())
			}
		})
	}
}

func TestCreateBlogRequiresMultipart(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, _, _ := ts.request(t, http.MethodPost, "/api/blogs", map[string]any{"title": "T", "content": "C"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestListBlogsAndAnalytics(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	for _, data := range []map[string]any{
		{"title": "One", "content": "1", "featured": true},
		{"title": "Two", "content": "2"},
	} {
		status, _, _ := ts.multipartRequest(t, http.MethodPost, "/api/blogs", data, nil)
		require.Equal(t, http.StatusCreated, status)
	}

	_, _, body := ts.get(t, "/api/blogs")
	blogs := list(t, body, "blogs")
	require.Len(t, blogs, 2)
	titles := []any{blogs[0].(map[string]any)["title"], blogs[1].(map[string]any)["title"]}
	assert.ElementsMatch(t, []any{"One", "Two"}, titles)

	_, _, body = ts.get(t, "/api/blogs?featured=true")
	blogs = list(t, body, "blogs")
	require.Len(t, blogs, 1)
	assert.Equal(t, "One", blogs[0].(map[string]any)["title"])

	status, _, _ := ts.get(t, "/api/blogs?featured=maybe")
	assert.Equal(t, http.StatusBadRequest, status)

	id := blogs[0].(map[string]any)["id"].(string)
	ts.get(t, "/api/blogs/"+id)
	ts.get(t, "/api/blogs/"+id)

	status, _, body = ts.get(t, "/api/blogs-analytics")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["total_posts"])
	assert.Equal(t, float64(2), body["total_views"])
}

func TestGetBlogNotFound(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	for _, id := range []string{"not-a-uuid", "6f1c1d7e-8c4a-4c1e-9c57-2b0f5d3b9a11"} {
		status, _, body := ts.get(t, "/api/blogs/"+id)
		assert.Equal(t, http.StatusNotFound, status)
		assert.NotContains(t, body, "stack")
	}
}
