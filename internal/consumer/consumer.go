// internal/consumer/consumer.go
package consumer

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"tenant-portal/internal/idgen"
	"tenant-portal/internal/logger"
	"tenant-portal/internal/messaging"
	"tenant-portal/internal/metrics"
	"tenant-portal/internal/model"
)

// UsageStore is the slice of storage the consumer needs.
type UsageStore interface {
	InsertUsage(u *model.UsageEvent) error
}

// Consumer drains the usage queue with a fixed pool of workers. Events
// it cannot decode or persist are rejected to the DLQ.
type Consumer struct {
	channel     *amqp.Channel
	store       UsageStore
	consumerTag string
	workers     int
	wg          sync.WaitGroup
}

// StartConsumer opens a channel and spawns the worker pool.
func StartConsumer(conn *amqp.Connection, store UsageStore, workers int) (*Consumer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.Qos(workers*2, 0, false); err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to set qos: %w", err)
	}

	tag := "usage-consumer"
	msgs, err := ch.Consume(
		messaging.UsageQueue,
		tag,
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	c := &Consumer{
		channel:     ch,
		store:       store,
		consumerTag: tag,
		workers:     workers,
	}

	for i := 0; i < workers; i++ {
		c.wg.Add(1)
		go c.work(msgs)
	}

	logger.Get().Infof("usage consumer started with %d workers", workers)
	return c, nil
}

func (c *Consumer) work(msgs <-chan amqp.Delivery) {
	defer c.wg.Done()
	metrics.ConsumerWorkers.Inc()
	defer metrics.ConsumerWorkers.Dec()

	for msg := range msgs {
		if err := c.handle(msg); err != nil {
			logger.Get().WithError(err).Warn("usage event rejected")
			_ = msg.Reject(false) // send to DLQ
			metrics.UsageEventsConsumed.WithLabelValues("rejected").Inc()
			continue
		}
		_ = msg.Ack(false)
		metrics.UsageEventsConsumed.WithLabelValues("ok").Inc()
	}
}

// handle decodes the same body shape POST /api/usage accepts and inserts
// the event. Like the HTTP path, it does not verify the team exists.
func (c *Consumer) handle(msg amqp.Delivery) error {
	var sub model.UsageSubmission
	if err := json.Unmarshal(msg.Body, &sub); err != nil {
		return fmt.Errorf("decode usage event: %w", err)
	}
	if sub.TeamID == "" {
		return fmt.Errorf("usage event missing team id")
	}

	ts := msg.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	event := &model.UsageEvent{
		ID:        idgen.New("usage"),
		TeamID:    sub.TeamID,
		Email:     sub.Email,
		TokensIn:  sub.TokensIn,
		TokensOut: sub.TokensOut,
		Cost:      sub.Cost,
		Model:     sub.Model,
		Timestamp: ts,
	}
	if err := c.store.InsertUsage(event); err != nil {
		return fmt.Errorf("insert usage event: %w", err)
	}
	return nil
}

// Stop cancels the subscription, waits for in-flight deliveries, and
// closes the channel.
func (c *Consumer) Stop() {
	_ = c.channel.Cancel(c.consumerTag, false)
	c.wg.Wait()
	_ = c.channel.Close()
	logger.Get().Info("usage consumer stopped")
}
