package notifier

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// QueueName is the durable queue staff notification consumers read from.
const QueueName = "pos.notifications"

const publishTimeout = 5 * time.Second

// RabbitMQNotifier publishes events to a durable RabbitMQ queue. Messages are
// marked persistent so they survive broker restarts.
type RabbitMQNotifier struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	mu   sync.Mutex
}

// NewRabbitMQNotifier dials the broker and declares the notification queue.
func NewRabbitMQNotifier(url string) (*RabbitMQNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(
		QueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &RabbitMQNotifier{conn: conn, ch: ch}, nil
}

// Publish implements Notifier. Errors are logged here as well as returned so
// callers may ignore them without losing the diagnostic.
func (n *RabbitMQNotifier) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("kind", event.Kind).Msg("notifier: marshal event failed")
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	n.mu.Lock()
	defer n.mu.Unlock()

	err = n.ch.PublishWithContext(ctx,
		"",        // default exchange
		QueueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		log.Error().Err(err).Str("kind", event.Kind).Msg("notifier: publish failed")
		return err
	}
	return nil
}

// Close releases the channel and connection.
func (n *RabbitMQNotifier) Close() {
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		_ = n.conn.Close()
	}
}
