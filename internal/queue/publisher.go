package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"cinema-ticketing/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Publisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error
	Close() error
}

// NewPublisher dials the broker and declares the durable queue. When
// RabbitMQ is disabled a no-op publisher is returned.
func NewPublisher(cfg utils.RabbitMQConfig, log *zap.Logger) (Publisher, error) {
	if !cfg.Enabled {
		return NopPublisher{}, nil
	}

	queue := cfg.Queue
	if queue == "" {
		queue = OrderCreatedQueue
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}

	return &rabbitPublisher{
		conn:  conn,
		ch:    ch,
		queue: queue,
		log:   log.With(zap.String("component", "publisher")),
	}, nil
}

type rabbitPublisher struct {
	mu    sync.Mutex // amqp channels are not safe for concurrent publishing
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	log   *zap.Logger
}

func (p *rabbitPublisher) PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    event.OrderID,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = queue name
		false,   // mandatory
		false,   // immediate
		msg,
	); err != nil {
		return fmt.Errorf("publish order %s: %w", event.OrderID, err)
	}

	p.log.Debug("Order event published", zap.String("order_id", event.OrderID))
	return nil
}

func (p *rabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil && err != amqp.ErrClosed {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishOrderCreated(context.Context, OrderCreatedEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
