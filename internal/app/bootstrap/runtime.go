// Package bootstrap wires shared runtime dependencies for the Lambda
// entrypoints: the booking backend and the optional event publisher.
package bootstrap

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/harborview/hotel-booking-bot/cmd/mainconfig"
	"github.com/harborview/hotel-booking-bot/internal/booking"
	appconfig "github.com/harborview/hotel-booking-bot/internal/config"
	"github.com/harborview/hotel-booking-bot/internal/events"
	"github.com/harborview/hotel-booking-bot/pkg/logging"
)

// BuildBackend selects the booking backend: DynamoDB-backed persistence
// when BOOKINGS_TABLE is configured, the simulated reservation system
// otherwise.
func BuildBackend(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (booking.Backend, error) {
	if logger == nil {
		logger = logging.Default()
	}
	sim := booking.NewSimulated(nil, logger)
	if cfg.BookingsTable == "" {
		logger.Info("using simulated booking backend")
		return sim, nil
	}

	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("using DynamoDB booking store", "table", cfg.BookingsTable)
	return booking.NewStore(dynamodb.NewFromConfig(awsCfg), cfg.BookingsTable, sim, logger), nil
}

// BuildPublisher returns an SQS booking-event publisher, or nil when no
// queue is configured.
func BuildPublisher(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (events.Publisher, error) {
	if cfg.BookingEventsQueueURL == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logging.Default()
	}

	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("publishing booking events", "queue_url", cfg.BookingEventsQueueURL)
	return events.NewSQSPublisher(sqs.NewFromConfig(awsCfg), cfg.BookingEventsQueueURL), nil
}
