package memory

import (
	"context"
	"time"

	"github.com/sushihentaime/contenthub/internal/contactservice"
)

type ContactStore struct {
	c *collection[contactservice.Submission]
}

func NewContactStore() *ContactStore {
	return &ContactStore{c: newCollection(
		func(s contactservice.Submission) time.Time { return s.CreatedAt },
		nil,
	)}
}

func (s *ContactStore) Insert(_ context.Context, sub *contactservice.Submission) error {
	return s.c.insert(sub.ID, *sub)
}

func (s *ContactStore) Get(_ context.Context, id string) (*contactservice.Submission, error) {
	sub, err := s.c.get(id)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *ContactStore) List(_ context.Context, filter contactservice.Filter) ([]contactservice.Submission, error) {
	return s.c.list(func(sub contactservice.Submission) bool {
		return filter.Read == nil || sub.Read == *filter.Read
	}), nil
}

func (s *ContactStore) Update(_ context.Context, sub *contactservice.Submission) error {
	updated, err := s.c.update(sub.ID, func(v *contactservice.Submission) {
		v.Name = sub.Name
		v.Email = sub.Email
		v.Phone = sub.Phone
		v.Subject = sub.Subject
		v.Message = sub.Message
	})
	if err != nil {
		return err
	}

	*sub = updated
	return nil
}

func (s *ContactStore) Delete(_ context.Context, id string) (*contactservice.Submission, error) {
	sub, err := s.c.remove(id)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *ContactStore) SetRead(_ context.Context, id string, read bool) (*contactservice.Submission, error) {
	sub, err := s.c.update(id, func(v *contactservice.Submission) {
		v.Read = read
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}
