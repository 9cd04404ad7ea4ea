package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/harborview/hotel-booking-bot/internal/api"
	appconfig "github.com/harborview/hotel-booking-bot/internal/config"
	"github.com/harborview/hotel-booking-bot/pkg/logging"
)

func main() {
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel).WithHandler("api")

	handler := api.NewHandler(cfg, logger)

	lambda.Start(func(_ context.Context, evt events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
		return handler.Handle(evt), nil
	})
}
