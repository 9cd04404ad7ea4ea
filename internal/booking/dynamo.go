package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/harborview/hotel-booking-bot/pkg/logging"
)

// bookingTTL keeps demo records from accumulating forever.
const bookingTTL = 90 * 24 * time.Hour

type dynamoAPI interface {
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(context.Context, *dynamodb.UpdateItemInput, ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// Store persists bookings to DynamoDB keyed by booking number. Availability
// draws remain simulated: there is no inventory table in this demo, only
// reservation records.
type Store struct {
	*Simulated

	client    dynamoAPI
	tableName string
	logger    *logging.Logger
}

var _ Backend = (*Store)(nil)

// NewStore builds a store backed by the provided DynamoDB client.
func NewStore(client dynamoAPI, tableName string, sim *Simulated, logger *logging.Logger) *Store {
	if client == nil {
		panic("booking: dynamodb client cannot be nil")
	}
	if tableName == "" {
		panic("booking: table name cannot be empty")
	}
	if sim == nil {
		sim = NewSimulated(nil, logger)
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Store{
		Simulated: sim,
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

type bookingItem struct {
	Booking
	ExpiresAt int64 `dynamodbav:"expiresAt"`
}

// CreateBooking inserts the reservation, refusing to overwrite an existing
// booking number.
func (s *Store) CreateBooking(ctx context.Context, b Booking) error {
	if b.Number == "" {
		return errors.New("booking: booking number required")
	}
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.Status == "" {
		b.Status = "confirmed"
	}

	item, err := attributevalue.MarshalMap(bookingItem{
		Booking:   b,
		ExpiresAt: now.Add(bookingTTL).Unix(),
	})
	if err != nil {
		return fmt.Errorf("booking: failed to marshal booking: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(bookingNumber)"),
	})
	if err != nil {
		var conditional *types.ConditionalCheckFailedException
		if errors.As(err, &conditional) {
			return fmt.Errorf("booking: number %s already exists: %w", b.Number, ErrBackendUnavailable)
		}
		return fmt.Errorf("booking: failed to persist booking: %w", err)
	}

	s.logger.Info("booking persisted", "booking_number", b.Number, "table", s.tableName)
	return nil
}

// GetBooking fetches a reservation by number.
func (s *Store) GetBooking(ctx context.Context, number string) (*Booking, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"bookingNumber": &types.AttributeValueMemberS{Value: number},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("booking: failed to fetch booking: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrBookingNotFound
	}

	var item bookingItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("booking: failed to unmarshal booking: %w", err)
	}
	return &item.Booking, nil
}

// CancelBooking marks the reservation cancelled. Cancelling a number that
// does not exist returns ErrBookingNotFound.
func (s *Store) CancelBooking(ctx context.Context, number string) error {
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"bookingNumber": &types.AttributeValueMemberS{Value: number},
		},
		UpdateExpression:    aws.String("SET #status = :cancelled, updatedAt = :now"),
		ConditionExpression: aws.String("attribute_exists(bookingNumber)"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cancelled": &types.AttributeValueMemberS{Value: "cancelled"},
			":now":       &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
		},
	})
	if err != nil {
		var conditional *types.ConditionalCheckFailedException
		if errors.As(err, &conditional) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("booking: failed to cancel booking: %w", err)
	}

	s.logger.Info("booking cancelled", "booking_number", number, "table", s.tableName)
	return nil
}
