package chat

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who produced a turn.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Turn is one message unit in the conversation history. Turns are values and
// are never mutated once appended.
type Turn struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewTurn stamps a turn with an identifier and creation time.
func NewTurn(sender Sender, text string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
}

// IsUser reports whether the turn was submitted by the user.
func (t Turn) IsUser() bool {
	return t.Sender == SenderUser
}
