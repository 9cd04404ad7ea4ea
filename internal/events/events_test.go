package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	fixed := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return fixed }
	defer func() { nowFunc = time.Now }()

	env, err := NewEnvelope(TypeBookingCreated, "sess-1", BookingPayload{
		BookingNumber: "ABC12345",
		RoomType:      "double",
		Nights:        3,
		TotalPrice:    389.97,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, env.EventID)
	assert.Equal(t, TypeBookingCreated, env.EventType)
	assert.Equal(t, fixed.UnixMicro(), env.TimestampMicros)

	var payload BookingPayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, "ABC12345", payload.BookingNumber)
	assert.InDelta(t, 389.97, payload.TotalPrice, 1e-9)
}

func TestNewEnvelopeRequiresType(t *testing.T) {
	_, err := NewEnvelope("  ", "", BookingPayload{})
	assert.ErrorIs(t, err, errMissingType)
}

type stubSQS struct {
	sent []*sqs.SendMessageInput
	err  error
}

func (s *stubSQS) SendMessage(_ context.Context, in *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	s.sent = append(s.sent, in)
	if s.err != nil {
		return nil, s.err
	}
	return &sqs.SendMessageOutput{}, nil
}

func TestSQSPublisherSendsEnvelope(t *testing.T) {
	stub := &stubSQS{}
	pub := NewSQSPublisher(stub, "https://sqs.local/booking-events")

	env, err := NewEnvelope(TypeBookingCancelled, "sess-2", BookingPayload{BookingNumber: "BCD00001"})
	require.NoError(t, err)
	require.NoError(t, pub.Publish(context.Background(), env))

	require.Len(t, stub.sent, 1)
	assert.Equal(t, "https://sqs.local/booking-events", *stub.sent[0].QueueUrl)

	var decoded Envelope
	require.NoError(t, json.Unmarshal([]byte(*stub.sent[0].MessageBody), &decoded))
	assert.Equal(t, TypeBookingCancelled, decoded.EventType)
}

func TestMemoryPublisherCollects(t *testing.T) {
	pub := &MemoryPublisher{}
	env, err := NewEnvelope(TypeBookingCreated, "", BookingPayload{BookingNumber: "AAA11111"})
	require.NoError(t, err)
	require.NoError(t, pub.Publish(context.Background(), env))
	require.Len(t, pub.Published, 1)
}
