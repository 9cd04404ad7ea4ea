// Package fulfillment implements the Lex fulfillment code hook: booking
// creation and cancellation once every slot has been collected.
package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/harborview/hotel-booking-bot/internal/booking"
	"github.com/harborview/hotel-booking-bot/internal/dialog"
	"github.com/harborview/hotel-booking-bot/internal/events"
	"github.com/harborview/hotel-booking-bot/internal/lexv2"
	"github.com/harborview/hotel-booking-bot/internal/observability/metrics"
	"github.com/harborview/hotel-booking-bot/pkg/logging"
)

// Session attribute keys persisted for follow-up turns.
const (
	AttrLastBookingNumber = "lastBookingNumber"
	AttrLastBookingTotal  = "lastBookingTotal"
)

// Processor executes the business logic behind BookRoom and CancelBooking.
type Processor struct {
	backend   booking.Backend
	publisher events.Publisher
	logger    *logging.Logger
	metrics   *metrics.BotMetrics
	tracer    trace.Tracer
	now       func() time.Time
}

// NewProcessor constructs a fulfillment processor. publisher and metrics
// may be nil.
func NewProcessor(backend booking.Backend, publisher events.Publisher, logger *logging.Logger, m *metrics.BotMetrics) *Processor {
	if backend == nil {
		panic("fulfillment: booking backend required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Processor{
		backend:   backend,
		publisher: publisher,
		logger:    logger,
		metrics:   m,
		tracer:    otel.Tracer("hotelbot.internal.fulfillment"),
		now:       time.Now,
	}
}

// Handle routes a fulfillment-hook event to the intent's business logic.
func (p *Processor) Handle(ctx context.Context, evt *lexv2.Event) (lexv2.Response, error) {
	start := time.Now()
	intent := evt.SessionState.Intent.Name
	p.logger.Info("fulfillment request",
		"intent", intent,
		"invocation_source", evt.InvocationSource,
		"session_id", evt.SessionID,
	)

	var resp lexv2.Response
	switch intent {
	case dialog.IntentBookRoom:
		resp = p.fulfillBookRoom(ctx, evt)
	case dialog.IntentCancelBooking:
		resp = p.fulfillCancelBooking(ctx, evt)
	default:
		resp = lexv2.Close(evt, lexv2.StateFailed, "I'm sorry, I couldn't process that request.", nil)
	}

	p.metrics.ObserveFulfillment(intent, resp.SessionState.Intent.State)
	p.metrics.ObserveLatency("fulfillment", time.Since(start).Seconds())
	return resp, nil
}

func (p *Processor) fulfillBookRoom(ctx context.Context, evt *lexv2.Event) lexv2.Response {
	ctx, span := p.tracer.Start(ctx, "fulfillment.book_room")
	defer span.End()

	roomType, ok := evt.SlotString(dialog.SlotRoomType)
	if !ok {
		return p.missingInformation(evt, dialog.SlotRoomType)
	}
	checkInDate, ok := evt.SlotString(dialog.SlotCheckInDate)
	if !ok {
		return p.missingInformation(evt, dialog.SlotCheckInDate)
	}
	rawNights, ok := evt.SlotString(dialog.SlotNights)
	if !ok {
		return p.missingInformation(evt, dialog.SlotNights)
	}
	nights, err := strconv.Atoi(strings.TrimSpace(rawNights))
	if err != nil {
		return p.missingInformation(evt, dialog.SlotNights)
	}

	totalPrice := booking.NightlyRate(roomType) * float64(nights)
	number := booking.Number()
	span.SetAttributes(
		attribute.String("hotelbot.booking_number", number),
		attribute.String("hotelbot.room_type", roomType),
		attribute.Int("hotelbot.nights", nights),
	)

	record := booking.Booking{
		Number:      number,
		RoomType:    roomType,
		CheckInDate: checkInDate,
		Nights:      nights,
		TotalPrice:  totalPrice,
		CreatedAt:   p.now().UTC(),
	}
	if err := p.backend.CreateBooking(ctx, record); err != nil {
		span.RecordError(err)
		p.logger.Error("booking create failed", "booking_number", number, "error", err)
		return lexv2.Close(evt, lexv2.StateFailed,
			"I'm sorry, there was an error processing your booking. Please try again or contact our support team.", nil)
	}

	p.publish(ctx, events.TypeBookingCreated, evt.SessionID, events.BookingPayload{
		BookingNumber: number,
		RoomType:      roomType,
		CheckInDate:   checkInDate,
		Nights:        nights,
		TotalPrice:    totalPrice,
	})

	message := fmt.Sprintf(
		"Excellent! Your %s room has been successfully booked.\n\n"+
			"📅 Check-in: %s\n"+
			"🌙 Duration: %d %s\n"+
			"💰 Total: £%.2f\n"+
			"🎫 Confirmation: %s\n\n"+
			"A confirmation email has been sent. We look forward to welcoming you!",
		roomType, displayDate(checkInDate), nights, pluralNights(nights), totalPrice, number)

	// Surface the confirmation number as a slot so follow-up intents can
	// reference it without re-asking.
	evt.SessionState.Intent.SetSlot(dialog.SlotBookingNumber, number)

	return lexv2.Close(evt, lexv2.StateFulfilled, message, map[string]string{
		AttrLastBookingNumber: number,
		AttrLastBookingTotal:  strconv.FormatFloat(totalPrice, 'f', 2, 64),
	})
}

func (p *Processor) fulfillCancelBooking(ctx context.Context, evt *lexv2.Event) lexv2.Response {
	ctx, span := p.tracer.Start(ctx, "fulfillment.cancel_booking")
	defer span.End()

	number, ok := evt.SlotString(dialog.SlotBookingNumber)
	if !ok {
		return lexv2.Close(evt, lexv2.StateFailed,
			"I need a booking number to process the cancellation.", nil)
	}
	span.SetAttributes(attribute.String("hotelbot.booking_number", number))

	record, err := p.backend.GetBooking(ctx, number)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return lexv2.Close(evt, lexv2.StateFailed, fmt.Sprintf(
				"I couldn't find a booking with number %s. Please verify and try again.", number), nil)
		}
		span.RecordError(err)
		p.logger.Error("booking lookup failed", "booking_number", number, "error", err)
		return lexv2.Close(evt, lexv2.StateFailed,
			"I'm sorry, an unexpected error occurred. Please try again or contact support.", nil)
	}

	if err := p.backend.CancelBooking(ctx, number); err != nil {
		span.RecordError(err)
		p.logger.Error("booking cancel failed", "booking_number", number, "error", err)
		return lexv2.Close(evt, lexv2.StateFailed, fmt.Sprintf(
			"There was an error cancelling booking %s. Please contact our support team.", number), nil)
	}

	p.publish(ctx, events.TypeBookingCancelled, evt.SessionID, events.BookingPayload{
		BookingNumber: number,
		TotalPrice:    record.TotalPrice,
	})

	message := fmt.Sprintf(
		"Your booking %s has been successfully cancelled.\n\n"+
			"💰 Refund: £%.2f\n"+
			"⏱️ Processing time: 5-7 business days\n\n"+
			"You will receive a confirmation email shortly. We hope to see you again in the future!",
		number, record.TotalPrice)

	return lexv2.Close(evt, lexv2.StateFulfilled, message, nil)
}

func (p *Processor) missingInformation(evt *lexv2.Event, slot string) lexv2.Response {
	p.logger.Error("required slot missing or invalid", "slot", slot, "intent", evt.SessionState.Intent.Name)
	return lexv2.Close(evt, lexv2.StateFailed,
		"I'm sorry, some booking information is missing. Please try again.", nil)
}

func (p *Processor) publish(ctx context.Context, eventType, sessionID string, payload events.BookingPayload) {
	if p.publisher == nil {
		return
	}
	env, err := events.NewEnvelope(eventType, sessionID, payload)
	if err != nil {
		p.logger.Error("failed to build booking event", "event_type", eventType, "error", err)
		return
	}
	if err := p.publisher.Publish(ctx, env); err != nil {
		// Best-effort only; the guest already has their confirmation.
		p.logger.Error("failed to publish booking event", "event_type", eventType, "error", err)
	}
}

// displayDate converts an ISO check-in date (YYYY-MM-DD) to the en_GB
// display format (DD/MM/YYYY). Unparseable input is shown as-is.
func displayDate(isoDate string) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format("02/01/2006")
}

func pluralNights(nights int) string {
	if nights == 1 {
		return "night"
	}
	return "nights"
}
