package dialog

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/harborview/hotel-booking-bot/internal/booking"
	"github.com/harborview/hotel-booking-bot/internal/lexv2"
	"github.com/harborview/hotel-booking-bot/pkg/logging"
)

// fakeBackend is a deterministic stand-in for the reservation system.
type fakeBackend struct {
	available      bool
	availableRooms int
	availErr       error
	booking        *booking.Booking
	getErr         error
	createErr      error
	cancelErr      error
}

func (f *fakeBackend) CheckAvailability(context.Context, string) (bool, error) {
	return f.available, f.availErr
}

func (f *fakeBackend) AvailableRooms(context.Context, string) (int, error) {
	return f.availableRooms, f.availErr
}

func (f *fakeBackend) CreateBooking(context.Context, booking.Booking) error {
	return f.createErr
}

func (f *fakeBackend) GetBooking(_ context.Context, number string) (*booking.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBackend) CancelBooking(context.Context, string) error {
	return f.cancelErr
}

var testNow = time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

func newTestValidator(backend booking.Backend) *Validator {
	v := NewValidator(backend, 365, 30, logging.New("error"), nil)
	v.now = func() time.Time { return testNow }
	return v
}

func bookRoomEvent(slots map[string]string) *lexv2.Event {
	return dialogEvent(IntentBookRoom, slots)
}

func dialogEvent(intent string, slots map[string]string) *lexv2.Event {
	evt := &lexv2.Event{
		InvocationSource: lexv2.SourceDialogCodeHook,
		SessionState: lexv2.SessionState{
			Intent: lexv2.Intent{Name: intent},
		},
	}
	for name, value := range slots {
		evt.SessionState.Intent.SetSlot(name, value)
	}
	return evt
}

func assertElicits(t *testing.T, resp lexv2.Response, slot string) {
	t.Helper()
	da := resp.SessionState.DialogAction
	if da.Type != lexv2.ActionElicitSlot {
		t.Fatalf("expected ElicitSlot, got %s", da.Type)
	}
	if da.SlotToElicit != slot {
		t.Fatalf("expected slot %s to be elicited, got %s", slot, da.SlotToElicit)
	}
	if len(resp.Messages) != 1 || resp.Messages[0].Content == "" {
		t.Fatalf("expected a correction message, got %+v", resp.Messages)
	}
}

func assertDelegates(t *testing.T, resp lexv2.Response) {
	t.Helper()
	if resp.SessionState.DialogAction.Type != lexv2.ActionDelegate {
		t.Fatalf("expected Delegate, got %s", resp.SessionState.DialogAction.Type)
	}
}

func TestBookRoomRejectsUnknownRoomTypes(t *testing.T) {
	v := newTestValidator(&fakeBackend{available: true})

	for _, roomType := range []string{"penthouse", "cabin", "twin", "deluxe"} {
		resp, err := v.Handle(context.Background(), bookRoomEvent(map[string]string{SlotRoomType: roomType}))
		if err != nil {
			t.Fatalf("Handle returned error: %v", err)
		}
		assertElicits(t, resp, SlotRoomType)
	}
}

func TestBookRoomAcceptsOfferedRoomTypes(t *testing.T) {
	v := newTestValidator(&fakeBackend{available: true})

	for _, roomType := range []string{"single", "double", "suite", "Suite"} {
		resp, err := v.Handle(context.Background(), bookRoomEvent(map[string]string{SlotRoomType: roomType}))
		if err != nil {
			t.Fatalf("Handle returned error: %v", err)
		}
		assertDelegates(t, resp)
	}
}

func TestBookRoomCheckInDateRules(t *testing.T) {
	v := newTestValidator(&fakeBackend{available: true})

	tests := []struct {
		name    string
		date    string
		elicits bool
	}{
		{"yesterday", "2026-08-29", true},
		{"far past", "2020-01-01", true},
		{"beyond one year", "2027-09-15", true},
		{"today", "2026-08-30", false},
		{"tomorrow", "2026-08-31", false},
		{"exactly one year out", "2027-08-30", false},
		{"garbage", "next tuesday", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := v.Handle(context.Background(), bookRoomEvent(map[string]string{SlotCheckInDate: tt.date}))
			if err != nil {
				t.Fatalf("Handle returned error: %v", err)
			}
			if tt.elicits {
				assertElicits(t, resp, SlotCheckInDate)
			} else {
				assertDelegates(t, resp)
			}
		})
	}
}

func TestBookRoomNightsRules(t *testing.T) {
	v := newTestValidator(&fakeBackend{available: true})

	tests := []struct {
		nights  string
		elicits bool
	}{
		{"0", true},
		{"-1", true},
		{"31", true},
		{"forty", true},
		{"1", false},
		{"30", false},
		{"3", false},
	}
	for _, tt := range tests {
		resp, err := v.Handle(context.Background(), bookRoomEvent(map[string]string{SlotNights: tt.nights}))
		if err != nil {
			t.Fatalf("Handle returned error: %v", err)
		}
		if tt.elicits {
			assertElicits(t, resp, SlotNights)
		} else {
			assertDelegates(t, resp)
		}
	}
}

func TestBookRoomAvailabilityConsultedWhenComplete(t *testing.T) {
	slots := map[string]string{
		SlotRoomType:    "double",
		SlotCheckInDate: "2026-09-10",
		SlotNights:      "3",
	}

	resp, err := newTestValidator(&fakeBackend{available: true}).Handle(context.Background(), bookRoomEvent(slots))
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	assertDelegates(t, resp)

	resp, err = newTestValidator(&fakeBackend{available: false}).Handle(context.Background(), bookRoomEvent(slots))
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	assertElicits(t, resp, SlotRoomType)
	if !strings.Contains(resp.Messages[0].Content, "double") {
		t.Fatalf("expected message to name the room type, got %q", resp.Messages[0].Content)
	}
}

func TestBookRoomIncompleteSlotsSkipAvailability(t *testing.T) {
	// Availability would fail the turn, but with slots missing it must not
	// be consulted at all.
	v := newTestValidator(&fakeBackend{available: false})
	resp, err := v.Handle(context.Background(), bookRoomEvent(map[string]string{
		SlotRoomType: "single",
		SlotNights:   "2",
	}))
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	assertDelegates(t, resp)
}

func TestCancelBookingNumberFormat(t *testing.T) {
	v := newTestValidator(&fakeBackend{booking: &booking.Booking{Number: "ABC12345"}})

	for _, number := range []string{"AB!12", "toolongnumber", "a-b-c-d", "12345"} {
		resp, err := v.Handle(context.Background(), dialogEvent(IntentCancelBooking, map[string]string{
			SlotBookingNumber: number,
		}))
		if err != nil {
			t.Fatalf("Handle returned error: %v", err)
		}
		assertElicits(t, resp, SlotBookingNumber)
	}
}

func TestCancelBookingUnknownNumber(t *testing.T) {
	v := newTestValidator(&fakeBackend{getErr: booking.ErrBookingNotFound})
	resp, err := v.Handle(context.Background(), dialogEvent(IntentCancelBooking, map[string]string{
		SlotBookingNumber: "ZZZ99999",
	}))
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	assertElicits(t, resp, SlotBookingNumber)
	if !strings.Contains(resp.Messages[0].Content, "ZZZ99999") {
		t.Fatalf("expected message to echo the number, got %q", resp.Messages[0].Content)
	}
}

func TestCancelBookingKnownNumberDelegates(t *testing.T) {
	v := newTestValidator(&fakeBackend{booking: &booking.Booking{Number: "ABC12345"}})
	resp, err := v.Handle(context.Background(), dialogEvent(IntentCancelBooking, map[string]string{
		SlotBookingNumber: "ABC12345",
	}))
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	assertDelegates(t, resp)
}

func TestCheckAvailabilityWithRoomType(t *testing.T) {
	v := newTestValidator(&fakeBackend{availableRooms: 4})
	resp, err := v.Handle(context.Background(), dialogEvent(IntentCheckAvailability, map[string]string{
		SlotRoomType: "suite",
	}))
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if resp.SessionState.DialogAction.Type != lexv2.ActionClose {
		t.Fatalf("expected Close, got %s", resp.SessionState.DialogAction.Type)
	}
	if got := resp.Messages[0].Content; got != "We currently have 4 suite rooms available." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestCheckAvailabilityGeneral(t *testing.T) {
	v := newTestValidator(&fakeBackend{availableRooms: 4})
	resp, err := v.Handle(context.Background(), dialogEvent(IntentCheckAvailability, nil))
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if resp.SessionState.DialogAction.Type != lexv2.ActionClose {
		t.Fatalf("expected Close, got %s", resp.SessionState.DialogAction.Type)
	}
	if !strings.Contains(resp.Messages[0].Content, "all our room types") {
		t.Fatalf("unexpected message %q", resp.Messages[0].Content)
	}
}

func TestUnknownIntentDelegates(t *testing.T) {
	v := newTestValidator(&fakeBackend{})
	resp, err := v.Handle(context.Background(), dialogEvent("OrderPizza", nil))
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	assertDelegates(t, resp)
}
