package helpers

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

// amqpSession is one connection plus channel bound to a durable queue.
type amqpSession struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	Queue string
}

func dialQueue(url, queue string) (*amqpSession, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "amqp dial")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, pkgerrors.Wrap(err, "amqp channel")
	}
	// durable, not auto-deleted, shared
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, pkgerrors.Wrapf(err, "declare queue %s", queue)
	}
	return &amqpSession{conn: conn, ch: ch, Queue: queue}, nil
}

func (s *amqpSession) Close() {
	if s == nil {
		return
	}
	if s.ch != nil {
		_ = s.ch.Close()
	}
	if s.conn != nil {
		_ = s.conn.Close()
	}
}

// RabbitPublisher publishes JSON jobs onto a durable queue via the default exchange.
type RabbitPublisher struct {
	*amqpSession
	mu sync.Mutex
}

func NewRabbitPublisher(url, queue string) (*RabbitPublisher, error) {
	s, err := dialQueue(url, queue)
	if err != nil {
		return nil, err
	}
	return &RabbitPublisher{amqpSession: s}, nil
}

// PublishJSON marshals body and publishes it as a persistent message.
func (p *RabbitPublisher) PublishJSON(ctx context.Context, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx, "", p.Queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         b,
	})
}

// RabbitConsumer delivers messages from a durable queue with manual acks.
type RabbitConsumer struct {
	*amqpSession
}

// NewRabbitConsumer opens the queue with the given prefetch window.
func NewRabbitConsumer(url, queue string, prefetch int) (*RabbitConsumer, error) {
	s, err := dialQueue(url, queue)
	if err != nil {
		return nil, err
	}
	if err := s.ch.Qos(prefetch, 0, false); err != nil {
		s.Close()
		return nil, pkgerrors.Wrap(err, "amqp qos")
	}
	return &RabbitConsumer{amqpSession: s}, nil
}

// Deliveries starts consuming. The channel closes when the consumer is closed.
func (c *RabbitConsumer) Deliveries() (<-chan amqp.Delivery, error) {
	return c.ch.Consume(c.Queue, "", false, false, false, false, nil)
}
