package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/your-org/mediaflow-recorder/internal/recorder"
	"github.com/your-org/mediaflow-recorder/pkg/config"
	"github.com/your-org/mediaflow-recorder/pkg/kafka"
	"github.com/your-org/mediaflow-recorder/pkg/logger"
	"github.com/your-org/mediaflow-recorder/pkg/table"
	"github.com/your-org/mediaflow-recorder/pkg/tracing"
)

func main() {
	ctx := context.Background()

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

	// Counters are not exported from a function sandbox; the dropped-records
	// and failure warnings in the log stream are the signal here.
	params := recorder.Params{
		Table:  table.NewDynamoWriter(cfg.Table.Name, cfg.Table.Region),
		Logger: logr,
	}
	if cfg.Kafka.Enabled() {
		params.Publisher = kafka.NewProducer(kafka.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.NotifyTopic,
			BatchTimeout: cfg.Kafka.BatchTimeout,
			Compression:  kafka.CompressionFromString(cfg.Kafka.CompressionCodec),
			RequiredAcks: kafkago.RequireAll,
			MaxAttempts:  cfg.Kafka.Retries,
		})
	}

	logr.Info("recorder function starting", zap.String("table", cfg.Table.Name), zap.Bool("notify", cfg.Kafka.Enabled()))
	lambda.Start(recorder.LambdaHandler(recorder.NewService(params), hooks.Flush))
}
