package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/iliyamo/table-reservation-web/internal/queue"
	"github.com/iliyamo/table-reservation-web/internal/service"
)

// auditlog appends every action published by the web front-end to a log
// file, one line per event.
func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("auditlog: .env not loaded: %v", err)
	}
	url := service.AMQPURLFromEnv()
	if url == "" {
		log.Fatal("auditlog: RABBITMQ_URL or AMQP_URL is required")
	}
	path := os.Getenv("ACTION_LOG_PATH")
	if path == "" {
		path = "logs/actions.log"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("auditlog: consuming %s into %s", queue.ActionQueue, path)
	err := queue.StartActionConsumer(ctx, url, &queue.ActionLogger{Path: path})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("auditlog: %v", err)
	}
}
