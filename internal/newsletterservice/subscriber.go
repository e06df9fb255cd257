package newsletterservice

import (
	"context"
	"errors"

	"github.com/sushihentaime/contenthub/internal/common"
)

func NewNewsletterService(subscribers SubscriberStore, documents DocumentStore, sink NotificationSink) *NewsletterService {
	return &NewsletterService{
		subscribers: subscribers,
		documents:   documents,
		sink:        sink,
		now:         common.Now,
	}
}

// Subscribe adds an email to the mailing list. An unsubscribed email is
// reactivated in place, keeping its id; created reports which of the two
// happened. An email that is already active yields ErrAlreadySubscribed.
func (s *NewsletterService) Subscribe(ctx context.Context, in *SubscriberInput) (sub *Subscriber, created bool, err error) {
	normalizeSubscriber(in)

	v := common.NewValidator()
	validateSubscriber(v, in)
	if !v.Valid() {
		return nil, false, v.ValidationError()
	}

	existing, err := s.subscribers.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		if !existing.Unsubscribed {
			return nil, false, ErrAlreadySubscribed
		}

		sub, err = s.subscribers.SetSubscribed(ctx, existing.ID, true, s.now())
		if err != nil {
			return nil, false, err
		}
		return sub, false, nil
	case !errors.Is(err, common.ErrRecordNotFound):
		return nil, false, err
	}

	sub = &Subscriber{
		ID:           common.NewID(),
		Email:        in.Email,
		Name:         in.Name,
		SubscribedAt: s.now(),
	}

	if err := s.subscribers.Insert(ctx, sub); err != nil {
		if errors.Is(err, common.ErrDuplicateRecord) {
			return nil, false, ErrAlreadySubscribed
		}
		return nil, false, err
	}

	return sub, true, nil
}

func (s *NewsletterService) GetSubscriber(ctx context.Context, id string) (*Subscriber, error) {
	if !common.ValidID(id) {
		return nil, common.ErrRecordNotFound
	}

	return s.subscribers.Get(ctx, id)
}

// ListSubscribers returns subscribers, most recently subscribed first.
func (s *NewsletterService) ListSubscribers(ctx context.Context, filter SubscriberFilter) ([]Subscriber, error) {
	if filter.Status == "" {
		filter.Status = StatusAll
	}

	v := common.NewValidator()
	v.Check(v.PermittedValue(filter.Status, StatusAll, StatusActive, StatusUnsubscribed), "status", "must be one of all, active or unsubscribed")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.subscribers.List(ctx, filter)
}

// UpdateSubscriber replaces the email and name of a subscriber.
func (s *NewsletterService) UpdateSubscriber(ctx context.Context, id string, in *SubscriberInput) (*Subscriber, error) {
	if !common.ValidID(id) {
		return nil, common.ErrRecordNotFound
	}

	normalizeSubscriber(in)

	v := common.NewValidator()
	validateSubscriber(v, in)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	sub := &Subscriber{ID: id, Email: in.Email, Name: in.Name}
	if err := s.subscribers.Update(ctx, sub); err != nil {
		if errors.Is(err, common.ErrDuplicateRecord) {
			v.AddError("email", "is already used by another subscriber")
			return nil, v.ValidationError()
		}
		return nil, err
	}

	return sub, nil
}

func (s *NewsletterService) Unsubscribe(ctx context.Context, id string) (*Subscriber, error) {
	return s.setSubscribed(ctx, id, false)
}

func (s *NewsletterService) Resubscribe(ctx context.Context, id string) (*Subscriber, error) {
	return s.setSubscribed(ctx, id, true)
}

func (s *NewsletterService) DeleteSubscriber(ctx context.Context, id string) (*Subscriber, error) {
	if !common.ValidID(id) {
		return nil, common.ErrRecordNotFound
	}

	return s.subscribers.Delete(ctx, id)
}

func (s *NewsletterService) setSubscribed(ctx context.Context, id string, subscribed bool) (*Subscriber, error) {
	if !common.ValidID(id) {
		return nil, common.ErrRecordNotFound
	}

	return s.subscribers.SetSubscribed(ctx, id, subscribed, s.now())
}
