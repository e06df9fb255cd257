package memory

import (
	"context"
	"slices"
	"time"

	"github.com/sushihentaime/contenthub/internal/newsletterservice"
)

type SubscriberStore struct {
	c *collection[newsletterservice.Subscriber]
}

func NewSubscriberStore() *SubscriberStore {
	c := newCollection(
		func(s newsletterservice.Subscriber) time.Time { return s.SubscribedAt },
		func(s newsletterservice.Subscriber) newsletterservice.Subscriber {
			if s.UnsubscribedAt != nil {
				at := *s.UnsubscribedAt
				s.UnsubscribedAt = &at
			}
			return s
		},
	)
	c.conflicts = func(a, b newsletterservice.Subscriber) bool {
		return a.Email == b.Email
	}

	return &SubscriberStore{c: c}
}

func (s *SubscriberStore) Insert(_ context.Context, sub *newsletterservice.Subscriber) error {
	return s.c.insert(sub.ID, *sub)
}

func (s *SubscriberStore) Get(_ context.Context, id string) (*newsletterservice.Subscriber, error) {
	sub, err := s.c.get(id)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *SubscriberStore) GetByEmail(_ context.Context, email string) (*newsletterservice.Subscriber, error) {
	sub, err := s.c.find(func(v newsletterservice.Subscriber) bool {
		return v.Email == email
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *SubscriberStore) List(_ context.Context, filter newsletterservice.SubscriberFilter) ([]newsletterservice.Subscriber, error) {
	return s.c.list(func(v newsletterservice.Subscriber) bool {
		switch filter.Status {
		case newsletterservice.StatusActive:
			if v.Unsubscribed {
				return false
			}
		case newsletterservice.StatusUnsubscribed:
			if !v.Unsubscribed {
				return false
			}
		}
		return filter.IDs == nil || slices.Contains(filter.IDs, v.ID)
	}), nil
}

func (s *SubscriberStore) Update(_ context.Context, sub *newsletterservice.Subscriber) error {
	updated, err := s.c.update(sub.ID, func(v *newsletterservice.Subscriber) {
		v.Email = sub.Email
		v.Name = sub.Name
	})
	if err != nil {
		return err
	}

	*sub = updated
	return nil
}

func (s *SubscriberStore) Delete(_ context.Context, id string) (*newsletterservice.Subscriber, error) {
	sub, err := s.c.remove(id)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *SubscriberStore) SetSubscribed(_ context.Context, id string, subscribed bool, at time.Time) (*newsletterservice.Subscriber, error) {
	sub, err := s.c.update(id, func(v *newsletterservice.Subscriber) {
		v.Unsubscribed = !subscribed
		v.UnsubscribedAt = nil
		if !subscribed {
			v.UnsubscribedAt = &at
		}
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

type DocumentStore struct {
	c *collection[newsletterservice.Document]
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{c: newCollection(
		func(d newsletterservice.Document) time.Time { return d.UploadedAt },
		nil,
	)}
}

func (s *DocumentStore) Insert(_ context.Context, doc *newsletterservice.Document) error {
	return s.c.insert(doc.ID, *doc)
}

func (s *DocumentStore) Get(_ context.Context, id string) (*newsletterservice.Document, error) {
	doc, err := s.c.get(id)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *DocumentStore) List(_ context.Context) ([]newsletterservice.Document, error) {
	return s.c.list(nil), nil
}

func (s *DocumentStore) Update(_ context.Context, doc *newsletterservice.Document) error {
	updated, err := s.c.update(doc.ID, func(v *newsletterservice.Document) {
		v.Name = doc.Name
		v.Category = doc.Category
		v.Date = doc.Date
		v.Filename = doc.Filename
		v.OriginalName = doc.OriginalName
	})
	if err != nil {
		return err
	}

	*doc = updated
	return nil
}

func (s *DocumentStore) Delete(_ context.Context, id string) (*newsletterservice.Document, error) {
	doc, err := s.c.remove(id)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
