package storage

import (
	"context"

	"github.com/sushihentaime/contenthub/internal/blogservice"
	"github.com/sushihentaime/contenthub/internal/contactservice"
	"github.com/sushihentaime/contenthub/internal/newsletterservice"
	"github.com/sushihentaime/contenthub/internal/testimonialservice"
)

// Driver names accepted by the STORAGE_DRIVER setting.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Conn is the connection underneath a backend.
type Conn interface {
	Ping(ctx context.Context) error
	Close() error
}

// Backend groups the stores of one storage engine.
type Backend struct {
	Driver       string
	Blogs        blogservice.Store
	Contacts     contactservice.Store
	Testimonials testimonialservice.Store
	Subscribers  newsletterservice.SubscriberStore
	Documents    newsletterservice.DocumentStore

	Conn Conn
}

// Ping checks that the storage engine is reachable.
func (b *Backend) Ping(ctx context.Context) error {
	return b.Conn.Ping(ctx)
}

func (b *Backend) Close() error {
	return b.Conn.Close()
}
