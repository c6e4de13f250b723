package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"moodchat/internal/chat"
	"moodchat/internal/models"
	"moodchat/internal/validation"
)

// ResolveHandler resolves messages via JSON API without touching the session.
type ResolveHandler struct {
	engine *chat.Engine
}

// NewResolveHandler creates a new API resolve handler.
func NewResolveHandler(engine *chat.Engine) *ResolveHandler {
	return &ResolveHandler{engine: engine}
}

// Resolve returns the reply, emotion and mood style for a message.
func (h *ResolveHandler) Resolve(c fiber.Ctx) error {
	var body models.ResolveRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	message := validation.NormalizeMessage(body.Message)
	if valid, msg := validation.ValidateMessage(message); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	return jsonSuccess(c, models.NewResolveResponse(h.engine.Respond(c.Context(), message)))
}
