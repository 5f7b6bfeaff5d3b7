package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dineqr-be/internal/metrics"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPPublisher mirrors hub events onto a durable fanout exchange so
// off-process consumers (analytics, receipt printers) can subscribe.
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to AMQP broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open AMQP channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"fanout",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event string, payload interface{}) error {
	body, err := json.Marshal(Envelope{
		Event:   event,
		At:      time.Now().UTC(),
		Payload: payload,
	})
	if err != nil {
		metrics.RecordEventPublished(event, false)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.ch.PublishWithContext(
		ctx,
		p.exchange,
		"",    // routing key: fanout ignores it
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		metrics.RecordEventPublished(event, false)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	metrics.RecordEventPublished(event, true)
	return nil
}

func (p *AMQPPublisher) Close() {
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
