package memory

import (
	"context"

	"github.com/sushihentaime/contenthub/internal/storage"
)

type conn struct{}

func (conn) Ping(context.Context) error { return nil }

func (conn) Close() error { return nil }

// New returns a backend that keeps every record in process memory. Nothing
// survives a restart.
func New() *storage.Backend {
	return &storage.Backend{
		Driver:       storage.DriverMemory,
		Blogs:        NewBlogStore(),
		Contacts:     NewContactStore(),
		Testimonials: NewTestimonialStore(),
		Subscribers:  NewSubscriberStore(),
		Documents:    NewDocumentStore(),
		Conn:         conn{},
	}
}
