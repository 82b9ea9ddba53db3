package widget

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/acadassist/widget/internal/metrics"
	chatservice "github.com/acadassist/widget/internal/service/chat"
	"github.com/acadassist/widget/internal/service/speech"
	widgetservice "github.com/acadassist/widget/internal/service/widget"
	"github.com/acadassist/widget/internal/shell/web"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingInterval = 54 * time.Second
)

var (
	errSessionClosed           = errors.New("recognition abandoned: session closed")
	errInvalidRecognitionError = errors.New("invalid recognition_error payload")
	errUnknownRecognitionError = errors.New("recognition failed")
)

// session is the state of one connected widget.
type session struct {
	id     string
	conn   *websocket.Conn
	widget *widgetservice.Widget
	bridge *browserBridge
	logger zerolog.Logger

	writeMu sync.Mutex

	// clientInput is the buffer as last reported by the browser, used to
	// avoid echoing keystrokes back.
	inputMu     sync.Mutex
	clientInput string

	wg sync.WaitGroup
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())

	s := h.newSession(conn)
	s.logger.Info().Msg("widget session opened")
	metrics.ActiveSessions.Inc()

	defer func() {
		cancel()
		s.bridge.resolve("", errSessionClosed)
		s.wg.Wait()
		metrics.ActiveSessions.Dec()
		s.logger.Info().Msg("widget session closed")
	}()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	go s.pingLoop(ctx)

	if err := s.send(msgReady, readyData{SessionID: s.id, Locale: s.widget.RecognitionLocale()}); err != nil {
		return
	}

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn().Err(err).Msg("websocket read error")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		if msg.SessionID != "" && msg.SessionID != s.id {
			s.sendError("session mismatch")
			continue
		}

		s.handleMessage(ctx, &msg)
	}
}

func (h *Handler) newSession(conn *websocket.Conn) *session {
	s := &session{
		id:   uuid.NewString(),
		conn: conn,
	}
	s.logger = h.logger.With().Str("session", s.id).Logger()
	s.bridge = newBrowserBridge(s.send)

	s.widget = widgetservice.New(widgetservice.Dependencies{
		Transport: h.transport,
		Input:     speech.NewInput(recognizer{bridge: s.bridge}, h.locale, s.logger),
		Output:    speech.NewOutput(synthesizer{bridge: s.bridge}, s.logger),
		Store:     chatservice.NewStore(),
		SenderID:  s.id,
	}, s.logger)

	s.widget.Store().Subscribe(s.render)
	s.widget.OnInputChange(s.syncInput)
	return s
}

func (s *session) handleMessage(ctx context.Context, msg *inboundMessage) {
	switch msg.Type {
	case msgHello:
		var hello HelloMessage
		if err := decodeData(msg.Data, &hello); err != nil {
			s.sendError("invalid hello payload")
			return
		}
		s.bridge.setCapabilities(hello)
		s.logger.Debug().
			Bool("recognition", hello.SpeechRecognition).
			Bool("synthesis", hello.SpeechSynthesis).
			Msg("browser capabilities")

	case msgInput:
		var payload TextMessage
		if err := decodeData(msg.Data, &payload); err != nil {
			s.sendError("invalid input payload")
			return
		}
		s.setClientInput(payload.Text)
		s.widget.SetInput(payload.Text)

	case msgSubmit:
		var payload TextMessage
		if err := decodeData(msg.Data, &payload); err != nil {
			s.sendError("invalid submit payload")
			return
		}
		text := payload.Text
		if text == "" {
			text = s.widget.Input()
		} else {
			s.setClientInput(text)
			s.widget.SetInput(text)
		}
		s.goRun(func() { s.widget.Submit(ctx, text) })

	case msgVoice:
		if !s.widget.VoiceAvailable() {
			s.sendError("speech recognition unavailable")
			return
		}
		if s.widget.Listening() {
			s.sendError("already listening")
			return
		}
		s.goRun(func() { s.widget.StartVoice(ctx) })

	case msgTranscript:
		var payload TextMessage
		if err := decodeData(msg.Data, &payload); err != nil {
			s.sendError("invalid transcript payload")
			return
		}
		if !s.bridge.resolve(payload.Text, nil) {
			s.logger.Debug().Msg("transcript without pending recognition")
		}

	case msgRecognitionError:
		reason, err := recognitionReason(msg.Data)
		if err != nil {
			s.logger.Warn().Err(err).Msg("invalid recognition_error payload")
		}
		s.logger.Warn().Str("error", reason).Msg("browser speech recognition failed")
		s.bridge.resolve("", errors.New(reason))

	default:
		s.sendError("unknown message type")
	}
}

// recognitionReason extracts the failure reason of a recognition_error frame.
// A payload that does not decode yields a fixed reason and the decode error.
func recognitionReason(raw json.RawMessage) (string, error) {
	var payload RecognitionErrorMessage
	if err := decodeData(raw, &payload); err != nil {
		return errInvalidRecognitionError.Error(), err
	}
	if payload.Error == "" {
		return errUnknownRecognitionError.Error(), nil
	}
	return payload.Error, nil
}

func (s *session) goRun(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}

// render pushes the full message list after every history change.
func (s *session) render(update chatservice.Update) {
	html, err := web.MessagesHTML(s.widget.Store().Turns())
	if err != nil {
		s.logger.Error().Err(err).Msg("render messages failed")
		return
	}
	_ = s.send(msgRender, renderData{HTML: html, Count: update.Total})
}

func (s *session) syncInput(text string) {
	s.inputMu.Lock()
	echo := s.clientInput == text
	s.clientInput = text
	s.inputMu.Unlock()

	if echo {
		return
	}
	_ = s.send(msgInput, inputData{Text: text})
}

func (s *session) setClientInput(text string) {
	s.inputMu.Lock()
	s.clientInput = text
	s.inputMu.Unlock()
}

func (s *session) send(msgType string, data interface{}) error {
	msg := outgoingMessage{
		Type:      msgType,
		SessionID: s.id,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := s.conn.WriteJSON(msg); err != nil {
		s.logger.Debug().Err(err).Str("type", msgType).Msg("websocket write failed")
		return err
	}
	return nil
}

func (s *session) sendError(message string) {
	_ = s.send(msgError, map[string]string{"message": message})
}

func (s *session) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.writeMu.Lock()
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
			s.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
