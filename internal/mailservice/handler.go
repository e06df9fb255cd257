package mailservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sushihentaime/contenthub/internal/common"
	"github.com/sushihentaime/contenthub/internal/newsletterservice"
)

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger, newID: common.NewID}
}

// Send logs the newsletter and reports every recipient as accepted. Nothing is delivered.
func (s *LogSink) Send(_ context.Context, subject, body string, recipients []newsletterservice.Recipient) (*newsletterservice.DeliveryReceipt, error) {
	receipt := &newsletterservice.DeliveryReceipt{ID: s.newID(), Accepted: len(recipients)}

	s.logger.Info("newsletter would be sent",
		slog.String("receipt", receipt.ID),
		slog.Int("recipients", len(recipients)),
		slog.String("subject", subject),
		slog.Int("body_length", len(body)))

	for _, r := range recipients {
		s.logger.Debug("newsletter recipient", slog.String("receipt", receipt.ID), slog.String("email", r.Email))
	}

	return receipt, nil
}

func NewBrokerSink(producer common.MessageProducer, sender string, logger *slog.Logger) *BrokerSink {
	return &BrokerSink{
		producer: producer,
		parser:   NewTemplate(),
		sender:   sender,
		logger:   logger,
		newID:    common.NewID,
	}
}

// Send publishes one message per recipient. It stops at the first failure; messages
// published before it stay queued.
func (s *BrokerSink) Send(ctx context.Context, subject, body string, recipients []newsletterservice.Recipient) (*newsletterservice.DeliveryReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	receipt := &newsletterservice.DeliveryReceipt{ID: s.newID()}

	rendered, err := renderMarkdown(body)
	if err != nil {
		return nil, fmt.Errorf("render newsletter: %w", err)
	}

	for i, r := range recipients {
		raw, err := s.compose(r, subject, body, rendered)
		if err != nil {
			return nil, fmt.Errorf("compose newsletter for %s: %w", r.Email, err)
		}

		msg := common.Message{
			ContentType: "message/rfc822",
			MessageID:   fmt.Sprintf("%s-%d", receipt.ID, i),
			Headers: map[string]any{
				"receipt":   receipt.ID,
				"recipient": r.Email,
			},
			Body: raw,
		}

		if err := s.producer.Publish(ctx, msg, common.NewsletterSendKey, common.NewsletterExchange); err != nil {
			s.logger.Error("could not publish newsletter",
				slog.String("receipt", receipt.ID),
				slog.String("email", r.Email),
				slog.Int("published", receipt.Accepted),
				slog.String("error", err.Error()))
			return nil, err
		}

		receipt.Accepted++
	}

	s.logger.Info("newsletter published", slog.String("receipt", receipt.ID), slog.Int("recipients", receipt.Accepted))

	return receipt, nil
}
