package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"moodchat/internal/chat"
	"moodchat/internal/config"
	"moodchat/internal/db"
	"moodchat/internal/models"
)

// HealthHandler reports liveness and dataset sizes.
type HealthHandler struct {
	engine *chat.Engine
	db     *db.DB
	cfg    *config.Config
}

// NewHealthHandler creates a new health handler. database may be nil when
// datasets are read from files.
func NewHealthHandler(engine *chat.Engine, database *db.DB, cfg *config.Config) *HealthHandler {
	return &HealthHandler{engine: engine, db: database, cfg: cfg}
}

// Check returns 200 with dataset sizes and stored phrase counts, or 503 if
// the database is unreachable.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	stats := h.engine.Stats()
	resp := models.HealthResponse{
		Status:         "ok",
		DatasetSource:  h.cfg.DatasetSource,
		ChatPhrases:    stats.ChatPhrases,
		EmotionPhrases: stats.EmotionPhrases,
		Threshold:      stats.Threshold,
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		resp.Database = "ok"
		if err := h.db.Ping(ctx); err != nil {
			slog.Error("health check database ping failed", "error", err)
			resp.Status = "degraded"
			resp.Database = "unreachable"
			return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
		}

		counts, err := h.db.CountPhrases(ctx)
		if err != nil {
			slog.Error("health check phrase count failed", "error", err)
			resp.Status = "degraded"
			resp.Database = "error"
			return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
		}
		resp.StoredPhrases = counts
	}

	return c.JSON(resp)
}
