// Package events publishes versioned booking domain events. Publishing is
// best-effort: fulfillment never fails a guest-facing response because a
// downstream consumer is unreachable.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the fulfillment hook.
const (
	TypeBookingCreated   = "booking.created.v1"
	TypeBookingCancelled = "booking.cancelled.v1"
)

var (
	errMissingType = errors.New("events: event type is required")
	nowFunc        = time.Now
)

// Envelope captures transport metadata around a booking event payload.
type Envelope struct {
	EventID         uuid.UUID       `json:"event_id"`
	EventType       string          `json:"event_type"`
	TimestampMicros int64           `json:"timestamp"`
	SessionID       string          `json:"session_id,omitempty"`
	Payload         json.RawMessage `json:"payload"`
}

// BookingPayload is the payload for both created and cancelled events.
type BookingPayload struct {
	BookingNumber string  `json:"booking_number"`
	RoomType      string  `json:"room_type,omitempty"`
	CheckInDate   string  `json:"check_in_date,omitempty"`
	Nights        int     `json:"nights,omitempty"`
	TotalPrice    float64 `json:"total_price,omitempty"`
}

// NewEnvelope wraps a payload in a transport envelope.
func NewEnvelope(eventType, sessionID string, payload BookingPayload) (Envelope, error) {
	if strings.TrimSpace(eventType) == "" {
		return Envelope{}, errMissingType
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("events: failed to marshal payload: %w", err)
	}
	return Envelope{
		EventID:         uuid.New(),
		EventType:       eventType,
		TimestampMicros: nowFunc().UTC().UnixMicro(),
		SessionID:       sessionID,
		Payload:         raw,
	}, nil
}

// Publisher delivers envelopes to whatever transport is wired in.
type Publisher interface {
	Publish(ctx context.Context, env Envelope) error
}
