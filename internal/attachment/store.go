package attachment

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/exp/rand"
)

const maxOriginalNameLength = 200

// NewStore prepares the upload root (images) and its newsletters subdirectory (PDFs).
func NewStore(root string, logger *slog.Logger) (*Store, error) {
	docs := filepath.Join(root, documentsSubdir)

	for _, dir := range []string{root, docs} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create upload directory %s: %w", dir, err)
		}
	}

	return &Store{
		root: root,
		kinds: map[Kind]kindRules{
			Image: {
				dir:      root,
				prefix:   URLPrefix,
				maxBytes: MaxImageBytes,
				label:    "image",
				accepts:  func(mt string) bool { return strings.HasPrefix(mt, "image/") },
			},
			PDF: {
				dir:      docs,
				prefix:   URLPrefix + "/" + documentsSubdir,
				maxBytes: MaxPDFBytes,
				label:    "PDF",
				accepts:  func(mt string) bool { return mt == "application/pdf" },
			},
		},
		logger: logger,
		now:    time.Now,
		random: func() int64 { return rand.Int63n(1e9) },
	}, nil
}

// Root returns the directory served under URLPrefix.
func (s *Store) Root() string {
	return s.root
}

// MaxBytes returns the size ceiling for kind.
func (s *Store) MaxBytes(kind Kind) int64 {
	return s.kinds[kind].maxBytes
}

// Store validates the upload against kind and writes it under a generated name.
// Nothing is written when the media type or declared size is rejected.
func (s *Store) Store(kind Kind, up Upload) (*StoredRef, error) {
	rules, ok := s.kinds[kind]
	if !ok {
		return nil, fmt.Errorf("unknown attachment kind %d", kind)
	}

	if !rules.accepts(mediaType(up.ContentType)) {
		return nil, fmt.Errorf("%w: only %s files are allowed", ErrInvalidMediaType, rules.label)
	}

	if up.Size > rules.maxBytes {
		return nil, fmt.Errorf("%w: %s files must not be larger than %d bytes", ErrPayloadTooLarge, rules.label, rules.maxBytes)
	}

	original := filepath.Base(strings.ReplaceAll(up.Filename, `\`, "/"))
	name := fmt.Sprintf("%d-%d-%s", s.now().UnixNano(), s.random(), sanitizeName(original))
	path := filepath.Join(rules.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}

	n, err := io.Copy(f, io.LimitReader(up.File, rules.maxBytes+1))
	closeErr := f.Close()
	switch {
	case err != nil:
		err = fmt.Errorf("write %s: %w", name, err)
	case n > rules.maxBytes:
		err = fmt.Errorf("%w: %s files must not be larger than %d bytes", ErrPayloadTooLarge, rules.label, rules.maxBytes)
	case closeErr != nil:
		err = fmt.Errorf("close %s: %w", name, closeErr)
	}
	if err != nil {
		os.Remove(path)
		return nil, err
	}

	s.logger.Info("attachment stored", slog.String("kind", kind.String()), slog.String("name", name), slog.Int64("bytes", n))

	return &StoredRef{
		Name:         name,
		OriginalName: original,
		Path:         rules.prefix + "/" + name,
	}, nil
}

// Replace stores up, runs commit with the new reference and, once both succeed,
// deletes the file oldRef points at. A failing commit leaves the new file in place
// and the old one untouched.
func (s *Store) Replace(kind Kind, oldRef string, up Upload, commit func(ref *StoredRef) error) (*StoredRef, error) {
	ref, err := s.Store(kind, up)
	if err != nil {
		return nil, err
	}

	if commit != nil {
		if err := commit(ref); err != nil {
			s.logger.Warn("attachment orphaned after failed commit", slog.String("kind", kind.String()), slog.String("name", ref.Name), slog.String("error", err.Error()))
			return nil, err
		}
	}

	if oldRef != "" && oldRef != ref.Path && oldRef != ref.Name {
		s.Delete(kind, oldRef)
	}

	return ref, nil
}

// Delete removes the file ref points at. Missing files and references outside the
// managed directories are ignored; other failures are logged.
func (s *Store) Delete(kind Kind, ref string) {
	path, ok := s.resolve(kind, ref)
	if !ok {
		return
	}

	err := os.Remove(path)
	switch {
	case err == nil:
		s.logger.Info("attachment deleted", slog.String("kind", kind.String()), slog.String("path", path))
	case errors.Is(err, fs.ErrNotExist):
	default:
		s.logger.Error("could not delete attachment", slog.String("kind", kind.String()), slog.String("path", path), slog.String("error", err.Error()))
	}
}

// Exists reports whether ref points at a managed file that is present on disk.
func (s *Store) Exists(kind Kind, ref string) bool {
	path, ok := s.resolve(kind, ref)
	if !ok {
		return false
	}

	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// resolve maps a public path ("/uploads/<name>") or a bare generated name to its
// location on disk.
func (s *Store) resolve(kind Kind, ref string) (string, bool) {
	rules, ok := s.kinds[kind]
	if !ok || ref == "" {
		return "", false
	}

	name := ref
	if strings.HasPrefix(ref, rules.prefix+"/") {
		name = strings.TrimPrefix(ref, rules.prefix+"/")
	}

	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", false
	}

	return filepath.Join(rules.dir, name), true
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}

// sanitizeName keeps the original name readable while making it safe as a single
// path element.
func sanitizeName(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)

	clean = strings.Trim(clean, ".")
	if clean == "" {
		return "file"
	}

	if len(clean) > maxOriginalNameLength {
		ext := filepath.Ext(clean)
		if len(ext) > 16 {
			ext = ""
		}
		clean = clean[:maxOriginalNameLength-len(ext)] + ext
	}

	return clean
}
