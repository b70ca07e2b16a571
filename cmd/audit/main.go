// Command audit consumes catalog events and writes one structured log line
// per change, with per-type counters on /metrics.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/storefront/internal/catalog"
	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/infrastructure/kafka"
	"github.com/example/storefront/internal/logger"
	"github.com/example/storefront/internal/metrics"
	"go.uber.org/zap"
)

const serviceName = "storefront-audit"

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	log := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		ServiceName: serviceName,
		File:        cfg.LogFile,
	})
	defer log.Sync()

	if len(cfg.KafkaBrokers) == 0 {
		log.Fatal("KAFKA_BROKERS is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New(serviceName)
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	metricsServer := &http.Server{Addr: cfg.AuditMetricsAddr, Handler: mux}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server error", zap.Error(err))
		}
	}()

	consumer := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID, log)
	defer consumer.Close()

	log.Info("consuming catalog events",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaTopic),
		zap.String("group", cfg.KafkaGroupID),
	)

	err = consumer.Consume(ctx, func(_ context.Context, event catalog.Event) error {
		m.ObserveEvent(event.Type)
		log.Info("catalog event",
			zap.String("event_id", event.ID),
			zap.String("type", event.Type),
			zap.String("aggregate_id", event.AggregateID),
			zap.String("actor_id", event.ActorID),
			zap.Time("occurred_at", event.OccurredAt),
			zap.ByteString("data", event.Data),
		)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("consumer stopped", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	metricsServer.Shutdown(shutdownCtx)
	log.Info("shut down")
}
