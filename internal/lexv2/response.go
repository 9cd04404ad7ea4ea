package lexv2

// PlainText is the only content type these bots emit.
const PlainText = "PlainText"

// Delegate tells Lex to continue its own slot collection without intervention.
func Delegate(evt *Event) Response {
	return Response{
		SessionState: SessionState{
			DialogAction:      &DialogAction{Type: ActionDelegate},
			Intent:            evt.SessionState.Intent,
			SessionAttributes: evt.SessionState.SessionAttributes,
		},
	}
}

// ElicitSlot asks Lex to re-prompt the user for one slot with a custom message.
func ElicitSlot(evt *Event, slotToElicit, message string) Response {
	return Response{
		SessionState: SessionState{
			DialogAction: &DialogAction{
				Type:         ActionElicitSlot,
				SlotToElicit: slotToElicit,
			},
			Intent:            evt.SessionState.Intent,
			SessionAttributes: evt.SessionState.SessionAttributes,
		},
		Messages: []Message{{ContentType: PlainText, Content: message}},
	}
}

// Close ends the dialog with the given fulfillment state and message.
// Session attributes from the event are carried forward; attrs entries are
// merged on top.
func Close(evt *Event, fulfillmentState, message string, attrs map[string]string) Response {
	intent := evt.SessionState.Intent
	intent.State = fulfillmentState

	merged := evt.SessionState.SessionAttributes
	if len(attrs) > 0 {
		merged = map[string]string{}
		for k, v := range evt.SessionState.SessionAttributes {
			merged[k] = v
		}
		for k, v := range attrs {
			merged[k] = v
		}
	}

	return Response{
		SessionState: SessionState{
			DialogAction:      &DialogAction{Type: ActionClose},
			Intent:            intent,
			SessionAttributes: merged,
		},
		Messages: []Message{{ContentType: PlainText, Content: message}},
	}
}
