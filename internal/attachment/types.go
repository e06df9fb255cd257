package attachment

import (
	"errors"
	"io"
	"log/slog"
	"time"
)

var (
	ErrInvalidMediaType = errors.New("invalid media type")
	ErrPayloadTooLarge  = errors.New("payload too large")
)

// Kind selects the storage rules applied to an upload.
type Kind int

const (
	Image Kind = iota
	PDF
)

const (
	MaxImageBytes int64 = 10 << 20
	MaxPDFBytes   int64 = 50 << 20

	// URLPrefix is the public path the upload root is served under.
	URLPrefix       = "/uploads"
	documentsSubdir = "newsletters"
)

func (k Kind) String() string {
	switch k {
	case Image:
		return "image"
	case PDF:
		return "pdf"
	default:
		return "unknown"
	}
}

// Upload is a binary payload as received from a client.
type Upload struct {
	File     io.Reader
	Filename string
	// ContentType is the media type declared by the client.
	ContentType string
	// Size is the declared size in bytes, or -1 when unknown.
	Size int64
}

// StoredRef identifies a file written by the Store.
type StoredRef struct {
	Name         string `json:"name"`
	OriginalName string `json:"original_name"`
	Path         string `json:"path"`
}

type kindRules struct {
	dir      string
	prefix   string
	maxBytes int64
	label    string
	accepts  func(mediaType string) bool
}

// Store keeps uploaded files on the local filesystem. It holds no state besides
// the files themselves; generated names rely on a nanosecond timestamp plus a
// random integer to avoid collisions.
type Store struct {
	root   string
	kinds  map[Kind]kindRules
	logger *slog.Logger
	now    func() time.Time
	random func() int64
}
