package chat

import "encoding/json"

// UnavailableNotice is the synthetic reply used when the backend cannot be reached.
const UnavailableNotice = "⚠️ Sorry, chatbot unavailable."

// Envelope is one reply unit returned by the backend for a submitted message.
type Envelope struct {
	Text     string
	Language string
	Raw      json.RawMessage
}

// DisplayText returns the text to show for the envelope. Replies without text
// (images, buttons, custom payloads) are shown as their raw JSON.
func (e Envelope) DisplayText() string {
	if e.Text != "" {
		return e.Text
	}
	if len(e.Raw) > 0 {
		return string(e.Raw)
	}
	return ""
}

// WebhookRequest is the body posted to the REST webhook.
type WebhookRequest struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// WebhookReply is one element of the REST webhook response array.
type WebhookReply struct {
	RecipientID string       `json:"recipient_id,omitempty"`
	Text        string       `json:"text,omitempty"`
	JSONMessage *JSONMessage `json:"json_message,omitempty"`
}

// JSONMessage carries custom reply metadata set by backend actions.
type JSONMessage struct {
	Language string `json:"language,omitempty"`
}
