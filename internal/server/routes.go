package server

import (
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"

	"moodchat/internal/chat"
	"moodchat/internal/db"
	"moodchat/internal/handlers"
	"moodchat/internal/handlers/api"
	"moodchat/internal/metrics"
	"moodchat/internal/middleware"
)

// RegisterRoutes registers all application routes. database and recorder may
// be nil.
func (s *Server) RegisterRoutes(engine *chat.Engine, database *db.DB, recorder *metrics.Recorder) {
	// Initialize handlers
	chatHandler := handlers.NewChatHandler(engine, s.Cfg)
	resolveHandler := api.NewResolveHandler(engine)
	healthHandler := api.NewHealthHandler(engine, database, s.Cfg)

	// Widget routes keep the conversation in the session
	s.App.Get("/", middleware.LoadConversation, chatHandler.Index)
	s.App.Post("/chat", middleware.LoadConversation, chatHandler.Send)
	s.App.Post("/chat/reset", middleware.LoadConversation, chatHandler.Reset)

	// JSON API
	v1 := s.App.Group("/api/v1")
	v1.Post("/resolve", resolveHandler.Resolve)

	s.App.Get("/healthz", healthHandler.Check)

	if recorder != nil {
		s.App.Get("/metrics", adaptor.HTTPHandler(recorder.Handler()))
		log.Println("Prometheus metrics exposed on /metrics")
	}
}
