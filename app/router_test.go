package main

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeUploads(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	root := app.attachments.Root()
	docsDir := filepath.Join(root, "newsletters")
	require.NoError(t, os.MkdirAll(docsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "1-2-cover.png"), pngBytes, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "1-2-report.pdf"), pdfBytes, 0o644))

	testCases := []struct {
		name   string
		path   string
		status int
		body   []byte
	}{
		{name: "image", path: "/uploads/1-2-cover.png", status: http.StatusOK, body: pngBytes},
		{name: "document", path: "/uploads/newsletters/1-2-report.pdf", status: http.StatusOK, body: pdfBytes},
		{name: "root listing", path: "/uploads/", status: http.StatusNotFound},
		{name: "documents listing", path: "/uploads/newsletters/", status: http.StatusNotFound},
		{name: "documents dir without slash", path: "/uploads/newsletters", status: http.StatusNotFound},
		{name: "missing file", path: "/uploads/nope.png", status: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := ts.Client().Get(ts.URL + tc.path)
			require.NoError(t, err)
			defer res.Body.Close()

			body, err := io.ReadAll(res.Body)
			require.NoError(t, err)

			assert.Equal(t, tc.status, res.StatusCode)
			if tc.body != nil {
				assert.Equal(t, tc.body, body)
			} else {
				assert.NotContains(t, string(body), "1-2-")
			}
		})
	}
}
