package models

import (
	"time"

	"github.com/google/uuid"
)

// Speaker constants
const (
	SpeakerUser = "You"
	SpeakerBot  = "Bot"
)

// Turn is one message in a conversation.
type Turn struct {
	Speaker string    `json:"speaker"`
	Message string    `json:"message"`
	Emotion string    `json:"emotion,omitempty"`
	At      time.Time `json:"at"`
}

// IsUser returns true if the turn was typed by the user.
func (t Turn) IsUser() bool {
	return t.Speaker == SpeakerUser
}

// Exchange is the bot's answer to one user message.
type Exchange struct {
	Input   string     `json:"input"`
	Reply   Resolution `json:"reply"`
	Emotion Resolution `json:"emotion"`
	Style   MoodStyle  `json:"style"`
}

// Conversation is the per-session chat history. It has no size limit.
type Conversation struct {
	ID    uuid.UUID `json:"id"`
	Turns []Turn    `json:"turns"`
	Last  *Exchange `json:"last,omitempty"`
}

// NewConversation starts an empty conversation with a fresh ID.
func NewConversation() Conversation {
	return Conversation{ID: uuid.New()}
}

// Append returns a copy of c with the exchange recorded as a user turn and a
// bot turn. The receiver's backing array is never shared with the result.
func (c Conversation) Append(ex Exchange, at time.Time) Conversation {
	turns := make([]Turn, len(c.Turns), len(c.Turns)+2)
	copy(turns, c.Turns)
	turns = append(turns,
		Turn{Speaker: SpeakerUser, Message: ex.Input, At: at},
		Turn{Speaker: SpeakerBot, Message: ex.Reply.Label, Emotion: ex.Emotion.Label, At: at},
	)
	last := ex
	return Conversation{ID: c.ID, Turns: turns, Last: &last}
}

// IsEmpty returns true if nothing has been said yet.
func (c Conversation) IsEmpty() bool {
	return len(c.Turns) == 0
}
