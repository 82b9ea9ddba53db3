package widget

import "encoding/json"

// Inbound message types sent by the browser.
const (
	msgHello            = "hello"
	msgInput            = "input"
	msgSubmit           = "submit"
	msgVoice            = "voice"
	msgTranscript       = "transcript"
	msgRecognitionError = "recognition_error"
)

// Outbound message types sent to the browser.
const (
	msgReady  = "ready"
	msgRender = "render"
	msgListen = "listen"
	msgSpeak  = "speak"
	msgError  = "error"
)

type inboundMessage struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// HelloMessage reports which speech services the browser offers.
type HelloMessage struct {
	SpeechRecognition bool `json:"speechRecognition"`
	SpeechSynthesis   bool `json:"speechSynthesis"`
}

// TextMessage carries typed input, a submission, or a transcript.
type TextMessage struct {
	Text string `json:"text"`
}

// RecognitionErrorMessage reports a failed recognition session.
type RecognitionErrorMessage struct {
	Error string `json:"error"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

type readyData struct {
	SessionID string `json:"sessionId"`
	Locale    string `json:"locale"`
}

type renderData struct {
	HTML  string `json:"html"`
	Count int    `json:"count"`
}

type inputData struct {
	Text string `json:"text"`
}

type listenData struct {
	Locale string `json:"locale"`
}

type speakData struct {
	Text   string `json:"text"`
	Locale string `json:"locale"`
}

// decodeData unmarshals an optional payload; a missing payload leaves v zero.
func decodeData(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, v)
}
