package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ActionLogger appends one line per ReservationActionEvent to a file.
type ActionLogger struct {
	Path string
}

// StartActionConsumer connects to the broker at url, declares the durable
// reservation.actions queue and writes every delivery through lg.  It
// reconnects with exponential backoff and only returns when ctx is done.
func StartActionConsumer(ctx context.Context, url string, lg *ActionLogger) error {
	backoff := time.Second
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("action-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, lg)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("action-consumer: consume loop ended: %v; reconnecting", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, lg *ActionLogger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("action-consumer: set QoS failed: %v", err)
	}
	if _, err := ch.QueueDeclare(ActionQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(ActionQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := lg.Handle(d.Body); err != nil {
				log.Printf("action-consumer: handle message failed: %v", err)
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Handle decodes one message body and appends its line to the log file.
func (lg *ActionLogger) Handle(body []byte) error {
	var ev ReservationActionEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Action == "" {
		return errors.New("event without action")
	}
	if err := os.MkdirAll(filepath.Dir(lg.Path), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(lg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	return WriteLine(f, ev)
}

// WriteLine formats ev as a single human-friendly line.
func WriteLine(w io.Writer, ev ReservationActionEvent) error {
	tables := "[]"
	if len(ev.TableIDs) > 0 {
		ids := make([]string, len(ev.TableIDs))
		for i, id := range ev.TableIDs {
			ids[i] = fmt.Sprint(id)
		}
		tables = "[" + strings.Join(ids, ",") + "]"
	}
	line := fmt.Sprintf("[%s] Reservation %s | actor=%s | reservation_id=%d | user_id=%d | user=%q | slot=\"%s %s\" | tables=%s\n",
		ev.OccurredAt, ev.Action, ev.Actor, ev.ReservationID, ev.UserID, ev.Username, ev.Date, ev.Time, tables)
	if _, err := io.WriteString(w, line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
