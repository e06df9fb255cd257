package newsletterservice

import (
	"context"
	"time"
)

// SubscriberStore persists subscribers. Emails are unique across active and
// unsubscribed rows; a conflicting write yields common.ErrDuplicateRecord.
type SubscriberStore interface {
	Insert(ctx context.Context, s *Subscriber) error
	Get(ctx context.Context, id string) (*Subscriber, error)
	GetByEmail(ctx context.Context, email string) (*Subscriber, error)
	List(ctx context.Context, filter SubscriberFilter) ([]Subscriber, error)
	// Update replaces email and name and fills in the remaining fields.
	Update(ctx context.Context, s *Subscriber) error
	Delete(ctx context.Context, id string) (*Subscriber, error)
	// SetSubscribed flips the unsubscribed flag. Unsubscribing records at as the
	// unsubscription time; resubscribing clears it.
	SetSubscribed(ctx context.Context, id string, subscribed bool, at time.Time) (*Subscriber, error)
}

// DocumentStore persists newsletter document metadata.
type DocumentStore interface {
	Insert(ctx context.Context, d *Document) error
	Get(ctx context.Context, id string) (*Document, error)
	List(ctx context.Context) ([]Document, error)
	// Update replaces every mutable field and fills in UploadedAt.
	Update(ctx context.Context, d *Document) error
	Delete(ctx context.Context, id string) (*Document, error)
}
