package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"moodchat/internal/chat"
	"moodchat/internal/config"
	"moodchat/internal/middleware"
	"moodchat/internal/validation"
)

// ChatHandler serves the chat widget page.
type ChatHandler struct {
	engine *chat.Engine
	cfg    *config.Config
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(engine *chat.Engine, cfg *config.Config) *ChatHandler {
	return &ChatHandler{engine: engine, cfg: cfg}
}

// Index renders the widget with the mood banner and the session history.
func (h *ChatHandler) Index(c fiber.Ctx) error {
	return c.Render("index", h.pageData(c, fiber.Map{}))
}

// Send answers the submitted message and redirects back to the page.
func (h *ChatHandler) Send(c fiber.Ctx) error {
	message := validation.NormalizeMessage(c.FormValue("message"))
	if valid, msg := validation.ValidateMessage(message); !valid {
		return c.Status(fiber.StatusUnprocessableEntity).Render("index", h.pageData(c, fiber.Map{
			"Error": msg,
			"Draft": message,
		}))
	}

	conv, _ := h.engine.Interact(c.Context(), middleware.Conversation(c), message)
	if err := middleware.SaveConversation(c, conv); err != nil {
		return err
	}

	return c.Redirect().Status(fiber.StatusSeeOther).To("/")
}

// Reset clears the session history.
func (h *ChatHandler) Reset(c fiber.Ctx) error {
	middleware.ClearConversation(c)
	return c.Redirect().Status(fiber.StatusSeeOther).To("/")
}

func (h *ChatHandler) pageData(c fiber.Ctx, data fiber.Map) fiber.Map {
	conv := middleware.Conversation(c)

	data["Title"] = h.cfg.SiteTitle
	data["Turns"] = conv.Turns
	data["MaxMessageLength"] = validation.MaxMessageLength
	if conv.Last != nil {
		style := h.engine.Style(conv.Last.Emotion.Label)
		data["Banner"] = style
		data["EmotionLabel"] = strings.ToUpper(conv.Last.Emotion.Label)
	}
	return MergeBranding(data, h.cfg)
}
