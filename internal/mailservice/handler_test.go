package mailservice

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/contenthub/internal/common"
	"github.com/sushihentaime/contenthub/internal/newsletterservice"
)

var recipients = []newsletterservice.Recipient{
	{ID: "1", Email: "ann@example.com", Name: "Ann"},
	{ID: "2", Email: "bob@example.com"},
}

func TestLogSink(t *testing.T) {
	s := NewLogSink(slog.Default())

	receipt, err := s.Send(context.Background(), "Hi", "Body", recipients)
	require.NoError(t, err)
	assert.Equal(t, 2, receipt.Accepted)
	assert.True(t, common.ValidID(receipt.ID))
}

func TestBrokerSinkSend(t *testing.T) {
	t.Run("publishes one message per recipient", func(t *testing.T) {
		producer := new(MockProducer)
		producer.On("Publish", mock.Anything, mock.MatchedBy(func(msg common.Message) bool {
			return msg.ContentType == "message/rfc822" && len(msg.Body) > 0
		}), common.NewsletterSendKey, common.NewsletterExchange).Return(nil).Twice()

		s := NewBrokerSink(producer, "news@example.com", slog.Default())
		s.newID = func() string { return "batch" }

		receipt, err := s.Send(context.Background(), "Hi", "Body", recipients)
		require.NoError(t, err)
		assert.Equal(t, "batch", receipt.ID)
		assert.Equal(t, 2, receipt.Accepted)

		producer.AssertExpectations(t)
		msg := producer.Calls[1].Arguments.Get(1).(common.Message)
		assert.Equal(t, "batch-1", msg.MessageID)
		assert.Equal(t, "bob@example.com", msg.Headers["recipient"])
	})

	t.Run("publish failure", func(t *testing.T) {
		producer := new(MockProducer)
		producer.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		producer.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("channel closed")).Once()

		s := NewBrokerSink(producer, "news@example.com", slog.Default())

		receipt, err := s.Send(context.Background(), "Hi", "Body", recipients)
		assert.Error(t, err)
		assert.Nil(t, receipt)
		producer.AssertNumberOfCalls(t, "Publish", 2)
	})

	t.Run("no recipients", func(t *testing.T) {
		producer := new(MockProducer)
		s := NewBrokerSink(producer, "news@example.com", slog.Default())

		receipt, err := s.Send(context.Background(), "Hi", "Body", nil)
		require.NoError(t, err)
		assert.Equal(t, 0, receipt.Accepted)
		producer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBrokerSinkRabbitMQ(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping rabbitmq test in short mode")
	}

	mb, err := common.NewMessageBroker(common.TestRabbitMQ(t))
	require.NoError(t, err)
	t.Cleanup(func() { mb.Close() })

	require.NoError(t, common.SetupNewsletterExchange(mb))

	s := NewBrokerSink(mb, "news@example.com", slog.Default())
	receipt, err := s.Send(context.Background(), "Launch day", "We are live.", recipients[:1])
	require.NoError(t, err)
	assert.Equal(t, 1, receipt.Accepted)

	msgs, err := mb.Consume(common.NewsletterSendKey, common.NewsletterExchange, common.NewsletterSendQueue)
	require.NoError(t, err)

	select {
	case d := <-msgs:
		assert.Equal(t, "message/rfc822", d.ContentType)
		assert.Equal(t, receipt.ID+"-0", d.MessageId)
		assert.Contains(t, string(d.Body), "Subject: Launch day")
		assert.NoError(t, d.Ack(false))
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for newsletter message")
	}
}
