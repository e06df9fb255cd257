package newsletterservice

import (
	"context"
	"strings"

	"github.com/sushihentaime/contenthub/internal/common"
)

// Recipient is a subscriber a newsletter is addressed to.
type Recipient struct {
	ID    string
	Email string
	Name  string
}

// DeliveryReceipt reports what a sink accepted for delivery.
type DeliveryReceipt struct {
	ID       string `json:"id"`
	Accepted int    `json:"accepted"`
}

// NotificationSink delivers a newsletter to its recipients.
type NotificationSink interface {
	Send(ctx context.Context, subject, body string, recipients []Recipient) (*DeliveryReceipt, error)
}

// Send resolves the audience of a newsletter and hands it to the notification
// sink. "all" targets active subscribers, "selected" the given ids that are still
// active, "unsubscribed" everyone who left the list.
func (s *NewsletterService) Send(ctx context.Context, in *SendInput) (*DeliveryReceipt, error) {
	in.Subject = strings.TrimSpace(in.Subject)
	in.Content = strings.TrimSpace(in.Content)
	in.SendTo = strings.TrimSpace(in.SendTo)
	if in.SendTo == "" {
		in.SendTo = SendToAll
	}

	v := common.NewValidator()
	validateSend(v, in)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	recipients, err := s.recipients(ctx, in)
	if err != nil {
		return nil, err
	}

	if len(recipients) == 0 {
		return &DeliveryReceipt{}, nil
	}

	return s.sink.Send(ctx, in.Subject, in.Content, recipients)
}

func (s *NewsletterService) recipients(ctx context.Context, in *SendInput) ([]Recipient, error) {
	filter := SubscriberFilter{Status: StatusActive}

	switch in.SendTo {
	case SendToUnsubscribed:
		filter.Status = StatusUnsubscribed
	case SendToSelected:
		for _, id := range in.SubscriberIDs {
			if common.ValidID(id) {
				filter.IDs = append(filter.IDs, id)
			}
		}
		if len(filter.IDs) == 0 {
			return nil, nil
		}
	}

	subscribers, err := s.subscribers.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	recipients := make([]Recipient, 0, len(subscribers))
	for _, sub := range subscribers {
		recipients = append(recipients, Recipient{ID: sub.ID, Email: sub.Email, Name: sub.Name})
	}

	return recipients, nil
}
