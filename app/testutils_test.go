package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/contenthub/internal/attachment"
	"github.com/sushihentaime/contenthub/internal/mailservice"
	"github.com/sushihentaime/contenthub/internal/storage/memory"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func newTestConfig() *Config {
	return &Config{
		Port:           "5000",
		Environment:    "development",
		Version:        "test",
		StorageDriver:  "memory",
		TrustedOrigins: []string{"*"},
		NewsletterSink: sinkLog,
	}
}

func newTestApplication(t *testing.T) *application {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	attachments, err := attachment.NewStore(t.TempDir(), logger)
	require.NoError(t, err)

	return newApplication(newTestConfig(), logger, memory.New(), attachments, mailservice.NewLogSink(logger))
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var envelope envelope
	err = json.Unmarshal(responseBody, &envelope)
	if err != nil {
		t.Fatalf("could not decode %q: %v", responseBody, err)
	}

	return res.StatusCode, res.Header, envelope
}

func (ts *testServer) do(t *testing.T, method, path, contentType string, body io.Reader) (int, http.Header, envelope) {
	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) request(t *testing.T, method, path string, payload any) (int, http.Header, envelope) {
	if payload == nil {
		return ts.do(t, method, path, "", nil)
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}

	return ts.do(t, method, path, "application/json", bytes.NewReader(jsonPayload))
}

func (ts *testServer) get(t *testing.T, path string) (int, http.Header, envelope) {
	return ts.request(t, http.MethodGet, path, nil)
}

type testFile struct {
	field       string
	filename    string
	contentType string
	content     []byte
}

// multipartRequest sends data as the JSON "data" part plus an optional file.
func (ts *testServer) multipartRequest(t *testing.T, method, path string, data any, file *testFile) (int, http.Header, envelope) {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)

	if data != nil {
		js, err := json.Marshal(data)
		require.NoError(t, err)
		require.NoError(t, mw.WriteField("data", string(js)))
	}

	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.field, file.filename))
		h.Set("Content-Type", file.contentType)

		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.content)
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	return ts.do(t, method, path, mw.FormDataContentType(), body)
}

// object returns env[key] as a JSON object.
func object(t *testing.T, env envelope, key string) map[string]any {
	t.Helper()

	v, ok := env[key].(map[string]any)
	require.True(t, ok, "expected %q to be an object in %v", key, env)
	return v
}

// list returns env[key] as a JSON array.
func list(t *testing.T, env envelope, key string) []any {
	t.Helper()

	v, ok := env[key].([]any)
	require.True(t, ok, "expected %q to be an array in %v", key, env)
	return v
}

func stringsReader(s string) io.Reader {
	return bytes.NewBufferString(s)
}
