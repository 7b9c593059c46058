package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/cafe-backend/internal/config"
	"github.com/example/cafe-backend/internal/email"
	"github.com/example/cafe-backend/internal/infrastructure/kafka"
	"github.com/example/cafe-backend/internal/infrastructure/store"
	"github.com/example/cafe-backend/internal/notification"
)

// Dedicated consumer group so receipts and other consumers of the
// trade topic do not steal each other's offsets.
const consumerGroup = "email-notifier"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Notifier] Configuration error: %v", err)
	}

	log.Println("[Notifier] ========================================")
	log.Println("[Notifier] Cafe Backend - Receipt Notifier")
	log.Println("[Notifier] ========================================")
	log.Printf("[Notifier] Kafka: %v", cfg.KafkaBrokers)
	log.Printf("[Notifier] Topic: %s", cfg.KafkaTopic)
	log.Printf("[Notifier] Group: %s", consumerGroup)
	log.Printf("[Notifier] SMTP: %s:%s", cfg.SMTPHost, cfg.SMTPPort)
	log.Printf("[Notifier] From: %s", cfg.MailFrom)

	// PostgreSQL connection for member and item lookups
	db, err := store.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[Notifier] Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()
	log.Println("[Notifier] Connected to PostgreSQL")

	memberStore := store.NewPostgresMemberStore(db)
	itemStore := store.NewPostgresItemStore(db)

	// Initialize email service
	emailSvc := email.NewService(cfg.SMTPHost, cfg.SMTPPort, cfg.MailFrom)

	// Initialize notification handler
	handler := notification.NewHandler(emailSvc, memberStore, itemStore)

	// Initialize Kafka consumer
	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, consumerGroup)
	defer consumer.Close()

	// Start consuming
	go func() {
		log.Println("[Notifier] Starting event consumer...")
		if err := consumer.Consume(ctx, handler.HandleMessage); err != nil {
			log.Printf("[Notifier] Consumer error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[Notifier] Shutting down...")
	cancel()
}
