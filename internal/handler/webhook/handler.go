// Package webhook is a stand-in for the Rasa REST channel, used for local
// development and tests. It echoes each message tagged with the language
// detected from its script.
package webhook

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/acadassist/widget/internal/analysis/language"
	"github.com/acadassist/widget/internal/model/chat"
	"github.com/acadassist/widget/pkg/utils"
)

// Path is the Rasa REST channel path.
const Path = "/webhooks/rest/webhook"

// Replier produces the reply text for a message in a detected language.
type Replier func(message, lang string) string

// Echo replies with the message itself.
func Echo(message, _ string) string {
	return message
}

// Handler answers webhook requests.
type Handler struct {
	reply  Replier
	logger zerolog.Logger
}

// New creates a webhook handler. A nil replier echoes.
func New(reply Replier, logger zerolog.Logger) *Handler {
	if reply == nil {
		reply = Echo
	}
	return &Handler{
		reply:  reply,
		logger: logger.With().Str("component", "webhook").Logger(),
	}
}

// RegisterRoutes mounts the webhook.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post(Path, h.handleMessage)
}

func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req chat.WebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	lang := language.Detect(req.Message)
	h.logger.Info().Str("sender", req.Sender).Str("language", lang).Msg("webhook message")

	utils.RespondJSON(w, http.StatusOK, []chat.WebhookReply{{
		RecipientID: req.Sender,
		Text:        h.reply(req.Message, lang),
		JSONMessage: &chat.JSONMessage{Language: lang},
	}})
}
