// Package service publishes page actions to RabbitMQ.  Errors are logged
// and returned so callers can ignore them without interrupting the page.
package service

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/table-reservation-web/internal/queue"
)

// AMQPURLFromEnv returns RABBITMQ_URL, falling back to AMQP_URL.  An empty
// result means publishing is disabled.
func AMQPURLFromEnv() string {
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		return url
	}
	return os.Getenv("AMQP_URL")
}

// ActionPublisher sends ReservationActionEvents to the reservation.actions
// queue.  Each publish dials its own connection; actions are rare and
// human-paced.
type ActionPublisher struct {
	URL         string
	DialTimeout time.Duration
}

func NewActionPublisher(url string) *ActionPublisher {
	return &ActionPublisher{URL: url, DialTimeout: 3 * time.Second}
}

// PublishAction marshals the event and publishes it as a persistent
// message.  The queue is declared durable on every call (idempotent).
func (p *ActionPublisher) PublishAction(ctx context.Context, event q.ReservationActionEvent) error {
	if event.OccurredAt == "" {
		event.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}
	conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(p.DialTimeout)})
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		q.ActionQueue, // name
		true,          // durable
		false,         // autoDelete
		false,         // exclusive
		false,         // noWait
		nil,           // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", q.ActionQueue, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
