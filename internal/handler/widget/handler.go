package widget

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/acadassist/widget/internal/model/speech"
	"github.com/acadassist/widget/internal/service/transport"
	"github.com/acadassist/widget/internal/shell/web"
)

// SocketPath is where the page connects its session.
const SocketPath = "/ws/widget"

// Options configures the widget handler.
type Options struct {
	// RecognitionLocale is the initial voice-input locale of every session.
	RecognitionLocale string
}

// Handler serves the widget page and one WebSocket session per page load.
type Handler struct {
	transport transport.Transport
	locale    string
	logger    zerolog.Logger
	upgrader  websocket.Upgrader
}

// New creates a widget handler relaying every session to tr.
func New(tr transport.Transport, opts Options, logger zerolog.Logger) *Handler {
	locale := speech.CanonicalLocale(opts.RecognitionLocale)
	if locale == "" {
		locale = speech.DefaultLocale
	}
	return &Handler{
		transport: tr,
		locale:    locale,
		logger:    logger.With().Str("component", "widget-handler").Logger(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
}

// RegisterRoutes mounts the page and the socket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handlePage)
	r.Get(SocketPath, h.handleWebSocket)
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := web.RenderPage(w, web.DefaultPage(SocketPath)); err != nil {
		h.logger.Error().Err(err).Msg("render page failed")
	}
}
