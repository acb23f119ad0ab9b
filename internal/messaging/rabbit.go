// internal/messaging/rabbit.go
package messaging

import (
	"fmt"

	"github.com/streadway/amqp"

	"tenant-portal/internal/logger"
	"tenant-portal/internal/metrics"
)

// Queue names for async usage ingestion. One durable stream; events the
// consumer cannot persist land in the DLQ.
const (
	UsageQueue = "usage_events"
	UsageDLQ   = "usage_events_dlq"
)

type RabbitClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	URL     string
}

func NewRabbitClient(url string) (*RabbitClient, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	return &RabbitClient{
		conn:    conn,
		channel: ch,
		URL:     url,
	}, nil
}

func (r *RabbitClient) GetChannel() *amqp.Channel {
	return r.channel
}

func (r *RabbitClient) GetConnection() *amqp.Connection {
	return r.conn
}

// DeclareUsageQueue creates the durable usage queue and its DLQ.
func (r *RabbitClient) DeclareUsageQueue() error {
	_, err := r.channel.QueueDeclare(
		UsageDLQ,
		true, false, false, false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare DLQ: %w", err)
	}

	args := amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": UsageDLQ,
	}
	_, err = r.channel.QueueDeclare(
		UsageQueue,
		true, false, false, false,
		args,
	)
	if err != nil {
		return fmt.Errorf("declare usage queue: %w", err)
	}

	logger.Get().Info("[Rabbit] usage queues declared")
	return nil
}

// Publish sends a usage event body to the usage queue.
func (r *RabbitClient) Publish(body []byte) error {
	err := r.channel.Publish(
		"",         // default exchange
		UsageQueue, // routing key (queue name)
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to queue %s: %w", UsageQueue, err)
	}
	return nil
}

// UpdateQueueDepth refreshes the queue depth gauge.
func (r *RabbitClient) UpdateQueueDepth() {
	q, err := r.channel.QueueInspect(UsageQueue)
	if err != nil {
		logger.Get().WithError(err).Warn("[Rabbit] failed to inspect usage queue")
		return
	}
	metrics.QueueDepth.Set(float64(q.Messages))
}

// Close cleans up connection and channel.
func (r *RabbitClient) Close() error {
	if err := r.channel.Close(); err != nil {
		return err
	}
	return r.conn.Close()
}
