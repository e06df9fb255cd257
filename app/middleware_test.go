package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string {
	return &s
}

func TestRecoverPanic(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		wantStack   bool
	}{
		{name: "development", environment: "development", wantStack: true},
		{name: "production", environment: "production", wantStack: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApplication(t)
			app.config.Environment = tt.environment

			// Create a test HTTP handler that will panic
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic("something went wrong")
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			res := httptest.NewRecorder()

			app.recoverPanic(handler).ServeHTTP(res, req)

			_, _, body := readResponse(t, res.Result())
			assert.Equal(t, http.StatusInternalServerError, res.Code)
			assert.Equal(t, "close", res.Header().Get("Connection"))
			assert.Equal(t, "internal server error", body["error"])
			if tt.wantStack {
				assert.Contains(t, body["stack"], "something went wrong")
			} else {
				assert.NotContains(t, body, "stack")
			}
		})
	}
}

func TestEnableCORS(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name                       string
		trusted                    []string
		origin                     string
		method                     string
		accessControlRequestMethod *string
		expectedStatus             int
		expectedOrigin             string
		preflight                  bool
	}{
		{
			name:           "Valid Origin and Method",
			trusted:        []string{"http://example.com"},
			origin:         "http://example.com",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
			expectedOrigin: "http://example.com",
		},
		{
			name:                       "Valid Origin and Preflight Request",
			trusted:                    []string{"http://example.com"},
			origin:                     "http://example.com",
			method:                     http.MethodOptions,
			accessControlRequestMethod: strptr(http.MethodPut),
			expectedStatus:             http.StatusOK,
			expectedOrigin:             "http://example.com",
			preflight:                  true,
		},
		{
			name:           "Invalid Origin",
			trusted:        []string{"http://example.com"},
			origin:         "http://invalid.com",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Wildcard",
			trusted:        []string{"*"},
			origin:         "http://anywhere.com",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
			expectedOrigin: "*",
		},
		{
			name:           "No Origin",
			trusted:        []string{"*"},
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &application{config: &Config{TrustedOrigins: tt.trusted}}

			req := httptest.NewRequest(tt.method, "/", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.accessControlRequestMethod != nil {
				req.Header.Set("Access-Control-Request-Method", *tt.accessControlRequestMethod)
			}

			res := httptest.NewRecorder()
			app.enableCORS(handler).ServeHTTP(res, req)

			assert.Equal(t, tt.expectedStatus, res.Code)
			assert.Equal(t, tt.expectedOrigin, res.Header().Get("Access-Control-Allow-Origin"))

			if tt.preflight {
				assert.Equal(t, "OPTIONS, GET, POST, PUT, DELETE", res.Header().Get("Access-Control-Allow-Methods"))
				assert.Equal(t, "Content-Type", res.Header().Get("Access-Control-Allow-Headers"))
			} else {
				assert.Empty(t, res.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	app := &application{
		config: &Config{
			RateLimitRPS:     2,
			RateLimitBurst:   4,
			RateLimitEnabled: true,
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := httptest.NewServer(app.rateLimit(handler))
	defer server.Close()

	tests := []struct {
		name           string
		requests       int
		expectedStatus int
	}{
		{
			name:           "Within Limit",
			requests:       4,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Over Limit",
			requests:       6,
			expectedStatus: http.StatusTooManyRequests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lastStatusCode int

			for i := 0; i < tt.requests; i++ {
				res, err := http.Get(server.URL)
				require.NoError(t, err)
				res.Body.Close()

				lastStatusCode = res.StatusCode
			}

			assert.Equal(t, tt.expectedStatus, lastStatusCode)
		})
	}
}

func TestRateLimitDisabled(t *testing.T) {
	app := &application{config: &Config{RateLimitEnabled: false}}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mw := app.rateLimit(handler)

	for i := 0; i < 50; i++ {
		res := httptest.NewRecorder()
		mw.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, res.Code)
	}
}

func TestRoutingErrors(t *testing.T) {
	app := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	status, _, body := ts.get(t, "/api/unknown")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not found", body["error"])

	status, _, body = ts.request(t, http.MethodPatch, "/api/blogs", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, status)
	assert.Equal(t, "method not allowed", body["error"])
}
