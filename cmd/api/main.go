package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/cafe-backend/internal/api"
	"github.com/example/cafe-backend/internal/auth"
	"github.com/example/cafe-backend/internal/config"
	"github.com/example/cafe-backend/internal/domain/cart"
	"github.com/example/cafe-backend/internal/domain/item"
	"github.com/example/cafe-backend/internal/domain/member"
	"github.com/example/cafe-backend/internal/domain/review"
	"github.com/example/cafe-backend/internal/domain/trade"
	"github.com/example/cafe-backend/internal/infrastructure/cache"
	"github.com/example/cafe-backend/internal/infrastructure/kafka"
	"github.com/example/cafe-backend/internal/infrastructure/store"
	"github.com/example/cafe-backend/internal/purchase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[API] Configuration error: %v", err)
	}

	log.Println("[API] ========================================")
	log.Println("[API] Cafe Backend")
	log.Println("[API] ========================================")
	log.Printf("[API] Listen: %s", cfg.ListenAddr)
	log.Printf("[API] Kafka: %v", cfg.KafkaBrokers)
	log.Printf("[API] Topic: %s", cfg.KafkaTopic)

	// Initialize PostgreSQL connection
	db, err := store.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[API] Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()
	if err := store.EnsureSchema(db); err != nil {
		log.Fatalf("[API] Failed to ensure schema: %v", err)
	}
	log.Println("[API] Connected to PostgreSQL")

	// Initialize stores
	cartStore := store.NewPostgresCartStore(db)
	tradeStore := store.NewPostgresTradeStore(db)
	memberStore := store.NewPostgresMemberStore(db)
	itemStore := store.NewPostgresItemStore(db)
	reviewStore := store.NewPostgresReviewStore(db)

	// Redis cart cache is optional; without REDIS_ADDR carts are read
	// straight from PostgreSQL.
	var cartCache cart.Cache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		cartCache = cache.NewRedisCartCache(redisClient)
		log.Printf("[API] Cart cache: Redis at %s", cfg.RedisAddr)
	}

	// Initialize Kafka producer
	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	// Initialize domain services
	itemSvc := item.NewService(itemStore)
	cartSvc := cart.NewService(cartStore, itemSvc, cartCache)
	ledger := trade.NewLedger(tradeStore, cartCache, producer)
	memberSvc := member.NewService(memberStore)
	gate := purchase.NewGate(ledger)
	reviewSvc := review.NewService(reviewStore, gate)

	// Initialize token service and resolver
	tokenSvc := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry)
	resolver := auth.NewResolver(tokenSvc)

	// Initialize API
	handlers := api.NewHandlers(cartSvc, ledger, itemSvc)
	authHandlers := api.NewAuthHandlers(memberSvc, tokenSvc)
	reviewHandlers := api.NewReviewHandlers(reviewSvc)
	router := api.NewRouter(handlers, authHandlers, reviewHandlers, resolver)

	// Start HTTP server
	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		log.Printf("[API] Server started on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[API] Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[API] Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[API] Shutdown error: %v", err)
	}
}
