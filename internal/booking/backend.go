// Package booking defines the booking backend capability used by the Lex
// code hooks: availability checks, booking creation, lookup, and
// cancellation. Handlers depend on the interface so tests can supply
// deterministic fakes; production wiring picks the simulated backend or
// the DynamoDB store.
package booking

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Room types the hotel actually offers.
const (
	RoomSingle = "single"
	RoomDouble = "double"
	RoomSuite  = "suite"
)

// DefaultNightlyRate applies when a booking carries an unrecognized room
// type (legacy records, direct API writes).
const DefaultNightlyRate = 99.99

var nightlyRates = map[string]float64{
	RoomSingle: 89.99,
	RoomDouble: 129.99,
	RoomSuite:  249.99,
}

// ErrBookingNotFound indicates the booking number has no stored record.
var ErrBookingNotFound = errors.New("booking: not found")

// ErrBackendUnavailable indicates the reservation system rejected the
// operation; callers surface a retry message rather than details.
var ErrBackendUnavailable = errors.New("booking: backend unavailable")

// Booking is one reservation. Outside the DynamoDB store it lives only for
// the duration of a single Lambda invocation.
type Booking struct {
	Number      string    `json:"bookingNumber" dynamodbav:"bookingNumber"`
	RoomType    string    `json:"roomType" dynamodbav:"roomType"`
	CheckInDate string    `json:"checkInDate" dynamodbav:"checkInDate"`
	Nights      int       `json:"nights" dynamodbav:"nights"`
	TotalPrice  float64   `json:"totalPrice" dynamodbav:"totalPrice"`
	Status      string    `json:"status" dynamodbav:"status"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"createdAt"`
}

// Backend is the reservation-system capability the code hooks depend on.
type Backend interface {
	// CheckAvailability reports whether any room of the given type can be
	// booked.
	CheckAvailability(ctx context.Context, roomType string) (bool, error)

	// AvailableRooms returns how many rooms of the given type are open.
	AvailableRooms(ctx context.Context, roomType string) (int, error)

	// CreateBooking records a new reservation.
	CreateBooking(ctx context.Context, b Booking) error

	// GetBooking looks up a reservation by booking number. Returns
	// ErrBookingNotFound when no record exists.
	GetBooking(ctx context.Context, number string) (*Booking, error)

	// CancelBooking cancels the reservation with the given number.
	CancelBooking(ctx context.Context, number string) error
}

// ValidRoomType reports whether the room type is one the hotel offers.
// Matching is case-insensitive.
func ValidRoomType(roomType string) bool {
	_, ok := nightlyRates[strings.ToLower(roomType)]
	return ok
}

// NightlyRate returns the per-night price for a room type, falling back to
// DefaultNightlyRate for unknown types.
func NightlyRate(roomType string) float64 {
	if rate, ok := nightlyRates[strings.ToLower(roomType)]; ok {
		return rate
	}
	return DefaultNightlyRate
}
