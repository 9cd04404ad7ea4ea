package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/harborview/hotel-booking-bot/cmd/mainconfig"
	appconfig "github.com/harborview/hotel-booking-bot/internal/config"
	"github.com/harborview/hotel-booking-bot/internal/layerdemo"
	"github.com/harborview/hotel-booking-bot/pkg/logging"
)

func main() {
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel).WithHandler("layerdemo")

	// S3 access is a nice-to-have for the process action; the demo still
	// answers without it.
	var s3Client layerdemo.S3API
	if awsCfg, err := mainconfig.LoadAWSConfig(context.Background(), cfg); err != nil {
		logger.Warn("AWS config unavailable, S3 checks disabled", "error", err)
	} else {
		s3Client = s3.NewFromConfig(awsCfg)
	}

	handler := layerdemo.NewHandler(cfg, s3Client, nil, logger)
	lambda.Start(handler.Handle)
}
