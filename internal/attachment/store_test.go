package attachment

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := NewStore(t.TempDir(), logger)
	require.NoError(t, err)

	return s
}

func imageUpload(name string, data []byte) Upload {
	return Upload{File: bytes.NewReader(data), Filename: name, ContentType: "image/png", Size: int64(len(data))}
}

func pdfUpload(name string, data []byte) Upload {
	return Upload{File: bytes.NewReader(data), Filename: name, ContentType: "application/pdf", Size: int64(len(data))}
}

func TestNewStoreCreatesDirectories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")

	_, err := NewStore(root, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(root, "newsletters"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStore(t *testing.T) {
	testCases := []struct {
		name        string
		kind        Kind
		upload      Upload
		expectedErr error
		wantPrefix  string
	}{
		{
			name:       "image",
			kind:       Image,
			upload:     imageUpload("cover photo.png", []byte("png-bytes")),
			wantPrefix: "/uploads/",
		},
		{
			name:       "image with parameters",
			kind:       Image,
			upload:     Upload{File: strings.NewReader("x"), Filename: "a.jpg", ContentType: "image/jpeg; charset=binary", Size: 1},
			wantPrefix: "/uploads/",
		},
		{
			name:       "pdf",
			kind:       PDF,
			upload:     pdfUpload("issue-1.pdf", []byte("%PDF-1.4")),
			wantPrefix: "/uploads/newsletters/",
		},
		{
			name:        "text as image",
			kind:        Image,
			upload:      Upload{File: strings.NewReader("hello"), Filename: "a.txt", ContentType: "text/plain", Size: 5},
			expectedErr: ErrInvalidMediaType,
		},
		{
			name:        "image as pdf",
			kind:        PDF,
			upload:      imageUpload("a.png", []byte("png")),
			expectedErr: ErrInvalidMediaType,
		},
		{
			name:        "declared size over the image ceiling",
			kind:        Image,
			upload:      Upload{File: strings.NewReader("x"), Filename: "big.png", ContentType: "image/png", Size: MaxImageBytes + 1},
			expectedErr: ErrPayloadTooLarge,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStore(t)

			ref, err := s.Store(tc.kind, tc.upload)
			if tc.expectedErr != nil {
				assert.True(t, errors.Is(err, tc.expectedErr), "got %v", err)
				assert.Nil(t, ref)

				entries, err := os.ReadDir(s.kinds[tc.kind].dir)
				require.NoError(t, err)
				for _, e := range entries {
					assert.True(t, e.IsDir(), "unexpected file %s", e.Name())
				}
				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(ref.Path, tc.wantPrefix), ref.Path)
			assert.Equal(t, tc.upload.Filename, ref.OriginalName)
			assert.True(t, s.Exists(tc.kind, ref.Path))
			assert.True(t, s.Exists(tc.kind, ref.Name))
		})
	}
}

func TestStoreUndeclaredOversizedPayload(t *testing.T) {
	s := newTestStore(t)
	s.kinds[Image] = kindRules{dir: s.root, prefix: URLPrefix, maxBytes: 4, label: "image", accepts: s.kinds[Image].accepts}

	ref, err := s.Store(Image, Upload{File: strings.NewReader("too many bytes"), Filename: "a.png", ContentType: "image/png", Size: -1})
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
	assert.Nil(t, ref)

	entries, err := os.ReadDir(s.root)
	require.NoError(t, err)
	for _, e := range entries {
		assert.True(t, e.IsDir(), "partial file %s left behind", e.Name())
	}
}

func TestStoreGeneratesDistinctNames(t *testing.T) {
	s := newTestStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		ref, err := s.Store(Image, imageUpload("same.png", []byte("x")))
		require.NoError(t, err)
		assert.False(t, seen[ref.Name], "duplicate name %s", ref.Name)
		assert.True(t, strings.HasSuffix(ref.Name, "-same.png"), ref.Name)
		seen[ref.Name] = true
	}
}

func TestSanitizeName(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "report.pdf", want: "report.pdf"},
		{name: "spaces", input: "my report.pdf", want: "my_report.pdf"},
		{name: "dots only", input: "..", want: "file"},
		{name: "unicode", input: "résumé.pdf", want: "r_sum_.pdf"},
		{name: "long", input: strings.Repeat("a", 300) + ".pdf", want: strings.Repeat("a", maxOriginalNameLength-4) + ".pdf"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sanitizeName(tc.input))
		})
	}
}

func TestReplace(t *testing.T) {
	t.Run("deletes the old file after commit", func(t *testing.T) {
		s := newTestStore(t)

		old, err := s.Store(Image, imageUpload("old.png", []byte("old")))
		require.NoError(t, err)

		var committed string
		ref, err := s.Replace(Image, old.Path, imageUpload("new.png", []byte("new")), func(ref *StoredRef) error {
			committed = ref.Path
			return nil
		})
		require.NoError(t, err)

		assert.Equal(t, ref.Path, committed)
		assert.True(t, s.Exists(Image, ref.Path))
		assert.False(t, s.Exists(Image, old.Path))
	})

	t.Run("missing old file is not an error", func(t *testing.T) {
		s := newTestStore(t)

		ref, err := s.Replace(Image, "/uploads/vanished.png", imageUpload("new.png", []byte("new")), nil)
		require.NoError(t, err)
		assert.True(t, s.Exists(Image, ref.Path))
	})

	t.Run("failed commit keeps the old file", func(t *testing.T) {
		s := newTestStore(t)

		old, err := s.Store(Image, imageUpload("old.png", []byte("old")))
		require.NoError(t, err)

		commitErr := errors.New("update failed")
		ref, err := s.Replace(Image, old.Path, imageUpload("new.png", []byte("new")), func(*StoredRef) error {
			return commitErr
		})
		assert.ErrorIs(t, err, commitErr)
		assert.Nil(t, ref)
		assert.True(t, s.Exists(Image, old.Path))
	})

	t.Run("rejected upload keeps the old file", func(t *testing.T) {
		s := newTestStore(t)

		old, err := s.Store(Image, imageUpload("old.png", []byte("old")))
		require.NoError(t, err)

		called := false
		_, err = s.Replace(Image, old.Path, Upload{File: strings.NewReader("x"), Filename: "x.txt", ContentType: "text/plain", Size: 1}, func(*StoredRef) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, ErrInvalidMediaType)
		assert.False(t, called)
		assert.True(t, s.Exists(Image, old.Path))
	})
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(filepath.Join(dir, "uploads"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	outside := filepath.Join(dir, "outside.png")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))

	doc, err := s.Store(PDF, pdfUpload("issue.pdf", []byte("%PDF")))
	require.NoError(t, err)

	img, err := s.Store(Image, imageUpload("a.png", []byte("a")))
	require.NoError(t, err)

	// unmanaged references are ignored
	s.Delete(Image, "/uploads/../outside.png")
	s.Delete(Image, "/static/a.png")
	s.Delete(Image, doc.Path)
	s.Delete(Image, "")

	_, err = os.Stat(outside)
	assert.NoError(t, err)
	assert.True(t, s.Exists(PDF, doc.Path))

	// missing files are a no-op
	s.Delete(Image, "/uploads/missing.png")

	s.Delete(Image, img.Path)
	assert.False(t, s.Exists(Image, img.Path))

	s.Delete(PDF, doc.Name)
	assert.False(t, s.Exists(PDF, doc.Path))
}
