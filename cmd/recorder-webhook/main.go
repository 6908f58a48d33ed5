package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/your-org/mediaflow-recorder/internal/recorder"
	"github.com/your-org/mediaflow-recorder/pkg/config"
	"github.com/your-org/mediaflow-recorder/pkg/kafka"
	"github.com/your-org/mediaflow-recorder/pkg/logger"
	"github.com/your-org/mediaflow-recorder/pkg/observability"
	"github.com/your-org/mediaflow-recorder/pkg/storage/objectstore"
	"github.com/your-org/mediaflow-recorder/pkg/table"
	"github.com/your-org/mediaflow-recorder/pkg/tracing"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logr, err := logger.New(cfg.App.Name, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	hooks, err := tracing.Init(ctx, tracing.Config{
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		SampleRatio: cfg.Tracing.SampleRatio,
		Attributes:  tracing.ParseAttributes(cfg.Tracing.ResourceAttr),
		ServiceName: cfg.App.Name,
	})
	if err != nil {
		logr.Fatal("init tracing", zap.Error(err))
	}
	defer hooks.Shutdown(context.Background()) //nolint:errcheck

	if cfg.Storage.Bucket != "" && cfg.Storage.NotifyARN != "" {
		store, err := objectstore.New(objectstore.Config{
			Provider:  cfg.Storage.Provider,
			Endpoint:  cfg.Storage.Endpoint,
			Region:    cfg.Storage.Region,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			logr.Fatal("init object store", zap.Error(err))
		}
		if err := store.EnsureUploadNotification(ctx, cfg.Storage.Bucket, cfg.Storage.NotifyARN); err != nil {
			logr.Fatal("register bucket notification", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
		}
		store.Close() //nolint:errcheck
	}

	params := recorder.Params{
		Table:   table.NewDynamoWriter(cfg.Table.Name, cfg.Table.Region),
		Logger:  logr,
		Metrics: observability.NewMetrics(prometheus.NewRegistry()),
	}
	var producer *kafka.Producer
	if cfg.Kafka.Enabled() {
		producer = kafka.NewProducer(kafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.NotifyTopic,
			BatchTimeout: cfg.Kafka.BatchTimeout,
			Compression:  kafka.CompressionFromString(cfg.Kafka.CompressionCodec),
			RequiredAcks: kafkago.RequireAll,
			MaxAttempts:  cfg.Kafka.Retries,
		})
		params.Publisher = producer
	}

	handler := recorder.NewHTTPHandler(recorder.NewService(params), logr, cfg.HTTP.SourceARN)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logr.Error("http server shutdown failed", zap.Error(err))
		}
		if producer != nil {
			if err := producer.Close(); err != nil {
				logr.Error("producer shutdown failed", zap.Error(err))
			}
		}
	}()

	logr.Info("recorder webhook starting", zap.String("addr", cfg.HTTP.Addr), zap.String("table", cfg.Table.Name))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logr.Fatal("http server failed", zap.Error(err))
	}
}
