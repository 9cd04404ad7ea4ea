// Package lexv2 defines the Lex V2 code-hook event and response envelope.
// The Lambda events package only ships Lex V1 types, so the V2 shapes are
// declared here with explicit optional fields instead of untyped maps.
package lexv2

// InvocationSource values set by Lex on each code-hook call.
const (
	SourceDialogCodeHook      = "DialogCodeHook"
	SourceFulfillmentCodeHook = "FulfillmentCodeHook"
)

// Dialog action types emitted back to Lex.
const (
	ActionDelegate   = "Delegate"
	ActionElicitSlot = "ElicitSlot"
	ActionClose      = "Close"
)

// Fulfillment states carried on the intent when closing a dialog.
const (
	StateFulfilled = "Fulfilled"
	StateFailed    = "Failed"
)

// Event is the request Lex sends to a code-hook Lambda.
type Event struct {
	MessageVersion   string       `json:"messageVersion,omitempty"`
	InvocationSource string       `json:"invocationSource"`
	InputMode        string       `json:"inputMode,omitempty"`
	InputTranscript  string       `json:"inputTranscript,omitempty"`
	SessionID        string       `json:"sessionId,omitempty"`
	Bot              *Bot         `json:"bot,omitempty"`
	SessionState     SessionState `json:"sessionState"`
}

// Bot identifies the calling bot and alias.
type Bot struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	AliasID  string `json:"aliasId,omitempty"`
	LocaleID string `json:"localeId,omitempty"`
	Version  string `json:"version,omitempty"`
}

// SessionState carries the intent under interpretation and any session
// attributes accumulated across turns. Lex owns persistence of both; the
// code hook only reads and echoes them.
type SessionState struct {
	DialogAction      *DialogAction     `json:"dialogAction,omitempty"`
	Intent            Intent            `json:"intent"`
	SessionAttributes map[string]string `json:"sessionAttributes,omitempty"`
}

// Intent is the matched intent with its slot map.
type Intent struct {
	Name              string           `json:"name"`
	Slots             map[string]*Slot `json:"slots,omitempty"`
	State             string           `json:"state,omitempty"`
	ConfirmationState string           `json:"confirmationState,omitempty"`
}

// Slot is a single collected conversational field. A nil Slot or nil Value
// means the slot has not been filled yet.
type Slot struct {
	Shape  string     `json:"shape,omitempty"`
	Value  *SlotValue `json:"value,omitempty"`
	Values []*Slot    `json:"values,omitempty"`
}

// SlotValue holds the raw utterance and the value Lex resolved it to.
type SlotValue struct {
	OriginalValue    string   `json:"originalValue,omitempty"`
	InterpretedValue string   `json:"interpretedValue,omitempty"`
	ResolvedValues   []string `json:"resolvedValues,omitempty"`
}

// DialogAction tells Lex what to do next.
type DialogAction struct {
	Type         string `json:"type"`
	SlotToElicit string `json:"slotToElicit,omitempty"`
}

// Message is one element of the response messages array.
type Message struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Response is the envelope a code hook returns to Lex.
type Response struct {
	SessionState SessionState `json:"sessionState"`
	Messages     []Message    `json:"messages,omitempty"`
}

// SlotString returns the interpreted value of the named slot and whether
// the slot is filled.
func (e *Event) SlotString(name string) (string, bool) {
	slot, ok := e.SessionState.Intent.Slots[name]
	if !ok || slot == nil || slot.Value == nil {
		return "", false
	}
	if slot.Value.InterpretedValue == "" {
		return "", false
	}
	return slot.Value.InterpretedValue, true
}

// SetSlot writes a scalar slot value back onto the intent, creating the
// slot map if needed.
func (i *Intent) SetSlot(name, value string) {
	if i.Slots == nil {
		i.Slots = map[string]*Slot{}
	}
	i.Slots[name] = &Slot{
		Shape: "Scalar",
		Value: &SlotValue{
			OriginalValue:    value,
			InterpretedValue: value,
			ResolvedValues:   []string{value},
		},
	}
}
