package middleware

import (
	"encoding/json"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"moodchat/internal/models"
)

const (
	sessionConversationKey = "conversation"
	localsConversationKey  = "conversation"
)

// LoadConversation reads the session's conversation into c.Locals. A missing
// or unreadable entry starts a fresh conversation.
func LoadConversation(c fiber.Ctx) error {
	conv := models.NewConversation()

	sess := session.FromContext(c)
	if sess != nil {
		if raw, ok := sess.Get(sessionConversationKey).(string); ok && raw != "" {
			var stored models.Conversation
			if err := json.Unmarshal([]byte(raw), &stored); err != nil {
				slog.Warn("discarding unreadable conversation", "session", sess.ID(), "error", err)
			} else {
				conv = stored
			}
		}
	}

	c.Locals(localsConversationKey, conv)
	return c.Next()
}

// Conversation returns the conversation loaded for this request.
func Conversation(c fiber.Ctx) models.Conversation {
	if conv, ok := c.Locals(localsConversationKey).(models.Conversation); ok {
		return conv
	}
	return models.NewConversation()
}

// SaveConversation stores conv in the session and in c.Locals.
func SaveConversation(c fiber.Ctx, conv models.Conversation) error {
	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session unavailable")
	}

	raw, err := json.Marshal(conv)
	if err != nil {
		return err
	}
	sess.Set(sessionConversationKey, string(raw))
	c.Locals(localsConversationKey, conv)
	return nil
}

// ClearConversation removes the conversation from the session.
func ClearConversation(c fiber.Ctx) {
	if sess := session.FromContext(c); sess != nil {
		sess.Delete(sessionConversationKey)
	}
	c.Locals(localsConversationKey, models.NewConversation())
}
