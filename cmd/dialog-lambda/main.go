package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/harborview/hotel-booking-bot/internal/app/bootstrap"
	appconfig "github.com/harborview/hotel-booking-bot/internal/config"
	"github.com/harborview/hotel-booking-bot/internal/dialog"
	"github.com/harborview/hotel-booking-bot/internal/lexv2"
	"github.com/harborview/hotel-booking-bot/internal/observability/metrics"
	"github.com/harborview/hotel-booking-bot/pkg/logging"
)

func main() {
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel).WithHandler("dialog")

	backend, err := bootstrap.BuildBackend(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to build booking backend", "error", err)
		os.Exit(1)
	}

	var botMetrics *metrics.BotMetrics
	if cfg.MetricsEnabled {
		botMetrics = metrics.NewBotMetrics(nil)
	}

	validator := dialog.NewValidator(backend, cfg.MaxAdvanceDays, cfg.MaxBookingNights, logger, botMetrics)

	lambda.Start(func(ctx context.Context, evt *lexv2.Event) (lexv2.Response, error) {
		return validator.Handle(ctx, evt)
	})
}
