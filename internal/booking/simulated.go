package booking

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/harborview/hotel-booking-bot/pkg/logging"
)

const (
	// availabilityRate mirrors the demo reservation system: three out of
	// four availability checks succeed.
	availabilityRate = 0.75
	// createSuccessRate models occasional write failures in the demo
	// reservation system.
	createSuccessRate = 0.98

	maxOpenRooms = 10
)

// Simulated is the in-process stand-in for a real reservation system. Its
// lookup accepts any booking number starting with A or B, and its
// availability and create paths draw from an injectable random source.
type Simulated struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *logging.Logger
}

var _ Backend = (*Simulated)(nil)

// NewSimulated builds a simulated backend. A nil rng gets a time-seeded
// source; tests pass a seeded one.
func NewSimulated(rng *rand.Rand, logger *logging.Logger) *Simulated {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Simulated{rng: rng, logger: logger}
}

func (s *Simulated) CheckAvailability(ctx context.Context, roomType string) (bool, error) {
	available := s.draw() < availabilityRate
	s.logger.Info("availability check", "room_type", roomType, "available", available)
	return available, nil
}

func (s *Simulated) AvailableRooms(ctx context.Context, roomType string) (int, error) {
	s.mu.Lock()
	count := 1 + s.rng.Intn(maxOpenRooms)
	s.mu.Unlock()
	return count, nil
}

func (s *Simulated) CreateBooking(ctx context.Context, b Booking) error {
	if s.draw() >= createSuccessRate {
		s.logger.Warn("booking create rejected", "booking_number", b.Number)
		return ErrBackendUnavailable
	}
	s.logger.Info("booking created",
		"booking_number", b.Number,
		"room_type", b.RoomType,
		"check_in_date", b.CheckInDate,
		"nights", b.Nights,
		"total_price", b.TotalPrice,
	)
	return nil
}

// GetBooking returns a canned confirmed reservation for numbers starting
// with A or B and ErrBookingNotFound for everything else.
func (s *Simulated) GetBooking(ctx context.Context, number string) (*Booking, error) {
	if number == "" || !strings.ContainsAny(number[:1], "aAbB") {
		return nil, ErrBookingNotFound
	}
	return &Booking{
		Number:      number,
		RoomType:    RoomDouble,
		CheckInDate: "2026-03-15",
		Nights:      3,
		TotalPrice:  389.97,
		Status:      "confirmed",
	}, nil
}

func (s *Simulated) CancelBooking(ctx context.Context, number string) error {
	s.logger.Info("booking cancelled", "booking_number", number)
	return nil
}

func (s *Simulated) draw() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}
