package common

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Exchange string

type Queue string

type BindingKey string

type MessageProducer interface {
	Publish(ctx context.Context, msg Message, key BindingKey, exchange Exchange) error
}

type MessageConsumer interface {
	Consume(key BindingKey, exchange Exchange, queue Queue) (<-chan amqp.Delivery, error)
}

// Message is a single publication handed to the broker.
type Message struct {
	ContentType string
	MessageID   string
	Headers     map[string]any
	Body        []byte
}

const (
	NewsletterExchange  Exchange   = "newsletter_exchange"
	NewsletterSendQueue Queue      = "newsletter_send_queue"
	NewsletterSendKey   BindingKey = "newsletter.send"
)

type MessageBroker struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewMessageBroker(URI string) (*MessageBroker, error) {
	conn, ch, err := connectAMQP(URI)
	if err != nil {
		return nil, err
	}

	return &MessageBroker{
		conn: conn,
		ch:   ch,
	}, nil
}

// BrokerURI builds an AMQP URI from discrete settings.
func BrokerURI(host, port, user, password string) string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", user, password, host, port)
}

func connectAMQP(URI string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(URI)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("could not open channel: %w", err)
	}

	return conn, ch, nil
}

// Close closes the connection and channel of the message broker.
func (mb *MessageBroker) Close() error {
	err := mb.ch.Close()
	if err != nil {
		return err
	}

	err = mb.conn.Close()
	if err != nil {
		return err
	}

	return nil
}

// SetupNewsletterExchange declares the durable exchange and queue an external mail
// relay consumes newsletter messages from.
func SetupNewsletterExchange(mb *MessageBroker) error {
	err := mb.ch.ExchangeDeclare(string(NewsletterExchange), "direct", true, false, false, false, nil)
	if err != nil {
		return err
	}

	_, err = mb.ch.QueueDeclare(string(NewsletterSendQueue), true, false, false, false, nil)
	if err != nil {
		return err
	}

	err = mb.ch.QueueBind(string(NewsletterSendQueue), string(NewsletterSendKey), string(NewsletterExchange), false, nil)
	if err != nil {
		return err
	}

	return nil
}

func (mb *MessageBroker) Publish(ctx context.Context, msg Message, key BindingKey, exchange Exchange) error {
	err := mb.ch.PublishWithContext(ctx, string(exchange), string(key), false, false, amqp.Publishing{
		ContentType:  msg.ContentType,
		MessageId:    msg.MessageID,
		Headers:      amqp.Table(msg.Headers),
		DeliveryMode: amqp.Persistent,
		Body:         msg.Body,
	})
	if err != nil {
		return fmt.Errorf("could not publish message: %w", err)
	}

	return nil
}

func (mb *MessageBroker) Consume(key BindingKey, exchange Exchange, queue Queue) (<-chan amqp.Delivery, error) {
	msgs, err := mb.ch.Consume(string(queue), string(key), false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("could not consume message: %w", err)
	}

	return msgs, nil
}
