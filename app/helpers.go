package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/sushihentaime/contenthub/internal/attachment"
)

const (
	maxJSONBytes = 1_048_576
	// maxMemory is how much of a multipart body is held in memory before spilling to disk.
	maxMemory = 32 << 20
)

type envelope map[string]any

func (app *application) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}

	for key, values := range headers {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

func (app *application) parseJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBytes)
	return decodeJSON(r.Body, dst)
}

func decodeJSON(body io.Reader, dst any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	err := decoder.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("request body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("request body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("request body contains an invalid value for the %q field", unmarshalTypeError.Field)
			}
			return fmt.Errorf("request body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("request body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("request body contains unknown field %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("request body must not be larger than %d bytes", maxBytesError.Limit)
		case errors.As(err, &invalidUnmarshalError):
			panic(err)
		default:
			return err
		}
	}

	err = decoder.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("request body must only contain a single JSON value")
	}

	return nil
}

// parseMultipart decodes a multipart/form-data body. The record fields arrive as
// JSON in the "data" part; without it the plain form values are decoded instead.
// The file under fileField is optional: a nil upload means none was sent. The
// returned cleanup closes the file and removes temporary parts.
func (app *application) parseMultipart(w http.ResponseWriter, r *http.Request, kind attachment.Kind, dst any, fileField string) (*attachment.Upload, func(), error) {
	noop := func() {}
	limit := app.attachments.MaxBytes(kind) + maxJSONBytes
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var maxBytesError *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesError):
			return nil, noop, fmt.Errorf("%w: request body must not be larger than %d bytes", attachment.ErrPayloadTooLarge, maxBytesError.Limit)
		case errors.Is(err, http.ErrNotMultipart):
			return nil, noop, errors.New("request body must be multipart/form-data")
		default:
			return nil, noop, fmt.Errorf("could not parse multipart body: %w", err)
		}
	}
	cleanup := func() { r.MultipartForm.RemoveAll() }

	if data := r.MultipartForm.Value["data"]; len(data) > 0 {
		if err := decodeJSON(strings.NewReader(data[0]), dst); err != nil {
			cleanup()
			return nil, noop, err
		}
	} else if err := decodeFormValues(r.MultipartForm.Value, dst); err != nil {
		cleanup()
		return nil, noop, err
	}

	file, header, err := r.FormFile(fileField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, cleanup, nil
		}
		cleanup()
		return nil, noop, fmt.Errorf("could not read %s file: %w", fileField, err)
	}

	up := &attachment.Upload{
		File:        file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}

	return up, func() {
		file.Close()
		cleanup()
	}, nil
}

// decodeFormValues decodes plain text form fields as a flat JSON object of strings.
func decodeFormValues(values map[string][]string, dst any) error {
	fields := make(map[string]string, len(values))
	for key, v := range values {
		if len(v) > 0 {
			fields[key] = v[0]
		}
	}

	js, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	return decodeJSON(strings.NewReader(string(js)), dst)
}

func (app *application) readIDParam(r *http.Request) string {
	params := httprouter.ParamsFromContext(r.Context())
	return params.ByName("id")
}

// readBoolQuery returns nil when key is absent from the query string.
func (app *application) readBoolQuery(r *http.Request, key string) (*bool, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}

	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter", key)
	}

	return &b, nil
}
