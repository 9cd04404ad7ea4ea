// Package dialog implements the Lex dialog code hook: per-turn slot
// validation for the hotel-booking bot. It only emits Delegate/ElicitSlot/
// Close signals; Lex owns the dialog state machine itself.
package dialog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harborview/hotel-booking-bot/internal/booking"
	"github.com/harborview/hotel-booking-bot/internal/lexv2"
	"github.com/harborview/hotel-booking-bot/internal/observability/metrics"
	"github.com/harborview/hotel-booking-bot/pkg/logging"
)

// Intents this hook knows how to validate.
const (
	IntentBookRoom          = "BookRoom"
	IntentCancelBooking     = "CancelBooking"
	IntentCheckAvailability = "CheckAvailability"
)

// Slot names used by the BookRoom and CancelBooking intents.
const (
	SlotRoomType      = "RoomType"
	SlotCheckInDate   = "CheckInDate"
	SlotNights        = "Nights"
	SlotBookingNumber = "BookingNumber"
)

const checkInDateLayout = "2006-01-02"

// Validator validates slot values during the conversation.
type Validator struct {
	backend        booking.Backend
	logger         *logging.Logger
	metrics        *metrics.BotMetrics
	maxAdvanceDays int
	maxNights      int
	now            func() time.Time
}

// NewValidator constructs the dialog validator. metrics may be nil.
func NewValidator(backend booking.Backend, maxAdvanceDays, maxNights int, logger *logging.Logger, m *metrics.BotMetrics) *Validator {
	if backend == nil {
		panic("dialog: booking backend required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if maxAdvanceDays <= 0 {
		maxAdvanceDays = 365
	}
	if maxNights <= 0 {
		maxNights = 30
	}
	return &Validator{
		backend:        backend,
		logger:         logger,
		metrics:        m,
		maxAdvanceDays: maxAdvanceDays,
		maxNights:      maxNights,
		now:            time.Now,
	}
}

// Handle routes a dialog-hook event to the intent's validation rules.
// Unknown intents delegate back to Lex.
func (v *Validator) Handle(ctx context.Context, evt *lexv2.Event) (lexv2.Response, error) {
	start := time.Now()
	intent := evt.SessionState.Intent.Name
	v.logger.Info("dialog turn",
		"intent", intent,
		"invocation_source", evt.InvocationSource,
		"session_id", evt.SessionID,
	)

	var resp lexv2.Response
	switch intent {
	case IntentBookRoom:
		resp = v.validateBookRoom(ctx, evt)
	case IntentCancelBooking:
		resp = v.validateCancelBooking(ctx, evt)
	case IntentCheckAvailability:
		resp = v.checkAvailability(ctx, evt)
	default:
		resp = lexv2.Delegate(evt)
	}

	v.metrics.ObserveDialog(intent, resp.SessionState.DialogAction.Type)
	v.metrics.ObserveLatency("dialog", time.Since(start).Seconds())
	return resp, nil
}

func (v *Validator) validateBookRoom(ctx context.Context, evt *lexv2.Event) lexv2.Response {
	if roomType, ok := evt.SlotString(SlotRoomType); ok {
		if !booking.ValidRoomType(roomType) {
			return lexv2.ElicitSlot(evt, SlotRoomType,
				"I'm sorry, we only have single, double, or suite rooms. Which would you prefer?")
		}
	}

	if raw, ok := evt.SlotString(SlotCheckInDate); ok {
		if resp, ok := v.validateCheckInDate(evt, raw); !ok {
			return resp
		}
	}

	if raw, ok := evt.SlotString(SlotNights); ok {
		if resp, ok := v.validateNights(evt, raw); !ok {
			return resp
		}
	}

	// Only consult availability once every required slot has a value.
	roomType, haveRoom := evt.SlotString(SlotRoomType)
	_, haveDate := evt.SlotString(SlotCheckInDate)
	_, haveNights := evt.SlotString(SlotNights)
	if haveRoom && haveDate && haveNights {
		available, err := v.backend.CheckAvailability(ctx, roomType)
		if err != nil {
			v.logger.Error("availability check failed", "error", err)
			return lexv2.Delegate(evt)
		}
		if !available {
			return lexv2.ElicitSlot(evt, SlotRoomType, fmt.Sprintf(
				"I'm sorry, we don't have any %s rooms available for those dates. Would you like to try a different room type?",
				roomType))
		}
	}

	return lexv2.Delegate(evt)
}

func (v *Validator) validateCheckInDate(evt *lexv2.Event, raw string) (lexv2.Response, bool) {
	checkIn, err := time.Parse(checkInDateLayout, raw)
	if err != nil {
		return lexv2.ElicitSlot(evt, SlotCheckInDate,
			"I couldn't understand that date. Please provide the check-in date in DD/MM/YYYY format."), false
	}

	today := dateOnly(v.now())
	if checkIn.Before(today) {
		return lexv2.ElicitSlot(evt, SlotCheckInDate,
			"The check-in date cannot be in the past. Please provide a future date."), false
	}
	if checkIn.After(today.AddDate(0, 0, v.maxAdvanceDays)) {
		return lexv2.ElicitSlot(evt, SlotCheckInDate,
			"We can only accept bookings up to one year in advance. Please choose an earlier date."), false
	}
	return lexv2.Response{}, true
}

func (v *Validator) validateNights(evt *lexv2.Event, raw string) (lexv2.Response, bool) {
	nights, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return lexv2.ElicitSlot(evt, SlotNights, "Please provide a valid number of nights."), false
	}
	if nights < 1 {
		return lexv2.ElicitSlot(evt, SlotNights,
			"You must book at least one night. How many nights would you like to stay?"), false
	}
	if nights > v.maxNights {
		return lexv2.ElicitSlot(evt, SlotNights, fmt.Sprintf(
			"We can only accept bookings up to %d nights. For longer stays, please contact our reservations team.",
			v.maxNights)), false
	}
	return lexv2.Response{}, true
}

func (v *Validator) validateCancelBooking(ctx context.Context, evt *lexv2.Event) lexv2.Response {
	number, ok := evt.SlotString(SlotBookingNumber)
	if !ok {
		return lexv2.Delegate(evt)
	}

	if !validBookingNumber(number) {
		return lexv2.ElicitSlot(evt, SlotBookingNumber,
			"That doesn't look like a valid booking number. Booking numbers are 6-8 alphanumeric characters. Please try again.")
	}

	if _, err := v.backend.GetBooking(ctx, number); err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return lexv2.ElicitSlot(evt, SlotBookingNumber, fmt.Sprintf(
				"I couldn't find a booking with number %s. Please verify and try again.", number))
		}
		v.logger.Error("booking lookup failed", "booking_number", number, "error", err)
		return lexv2.Delegate(evt)
	}

	return lexv2.Delegate(evt)
}

func (v *Validator) checkAvailability(ctx context.Context, evt *lexv2.Event) lexv2.Response {
	roomType, ok := evt.SlotString(SlotRoomType)
	if !ok {
		return lexv2.Close(evt, lexv2.StateFulfilled,
			"We have rooms available across all our room types. Would you like to book one?", nil)
	}

	count, err := v.backend.AvailableRooms(ctx, roomType)
	if err != nil {
		v.logger.Error("available-rooms lookup failed", "room_type", roomType, "error", err)
		return lexv2.Close(evt, lexv2.StateFulfilled,
			"We have rooms available across all our room types. Would you like to book one?", nil)
	}

	return lexv2.Close(evt, lexv2.StateFulfilled,
		fmt.Sprintf("We currently have %d %s rooms available.", count, roomType), nil)
}

func validBookingNumber(number string) bool {
	if len(number) < 6 || len(number) > 8 {
		return false
	}
	for _, r := range number {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		default:
			return false
		}
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
