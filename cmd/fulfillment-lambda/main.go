package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/harborview/hotel-booking-bot/internal/app/bootstrap"
	appconfig "github.com/harborview/hotel-booking-bot/internal/config"
	"github.com/harborview/hotel-booking-bot/internal/fulfillment"
	"github.com/harborview/hotel-booking-bot/internal/lexv2"
	"github.com/harborview/hotel-booking-bot/internal/observability/metrics"
	"github.com/harborview/hotel-booking-bot/pkg/logging"
)

func main() {
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel).WithHandler("fulfillment")

	ctx := context.Background()
	backend, err := bootstrap.BuildBackend(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build booking backend", "error", err)
		os.Exit(1)
	}
	publisher, err := bootstrap.BuildPublisher(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build event publisher", "error", err)
		os.Exit(1)
	}

	var botMetrics *metrics.BotMetrics
	if cfg.MetricsEnabled {
		botMetrics = metrics.NewBotMetrics(nil)
	}

	processor := fulfillment.NewProcessor(backend, publisher, logger, botMetrics)

	lambda.Start(func(ctx context.Context, evt *lexv2.Event) (lexv2.Response, error) {
		return processor.Handle(ctx, evt)
	})
}
