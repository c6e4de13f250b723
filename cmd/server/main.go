package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"moodchat/internal/chat"
	"moodchat/internal/classifier"
	"moodchat/internal/config"
	"moodchat/internal/datasource"
	"moodchat/internal/db"
	"moodchat/internal/metrics"
	"moodchat/internal/mood"
	"moodchat/internal/server"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Mood styles from config.yaml, falling back to the built-in table
	yamlCfg, err := config.LoadYAMLConfig(cfg.ConfigFile)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", cfg.ConfigFile, err)
	}
	styles := yamlCfg.MoodStyles()
	if len(styles) == 0 {
		styles = mood.DefaultStyles()
	}
	fallback := mood.DefaultFallback()
	if f, ok := yamlCfg.DefaultMoodStyle(); ok {
		fallback = f
	}
	registry, err := mood.NewRegistry(styles, fallback)
	if err != nil {
		log.Fatalf("Invalid mood styles: %v", err)
	}
	log.Printf("Mood styles: %s", strings.Join(registry.Labels(), ", "))

	// Initialize database
	var database *db.DB
	if cfg.UsesPostgres() {
		database, err = db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Migrations completed successfully")
	}

	// Metrics must exist before training so lexicon sizes are recorded
	var recorder *metrics.Recorder
	if cfg.MetricsEnabled {
		recorder = metrics.Init()
	}

	var store datasource.Store
	if database != nil {
		store = database
	}
	datasets, err := datasource.Load(ctx, cfg, store)
	if err != nil {
		log.Fatalf("Failed to load datasets: %v", err)
	}

	engine, err := chat.Train(datasets.Chat, datasets.Emotion, cfg.MatchThreshold, registry, classifier.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to train models: %v", err)
	}
	log.Printf("Models trained (%s source, threshold %d)", cfg.DatasetSource, cfg.MatchThreshold)

	srv := server.New(cfg)
	srv.RegisterRoutes(engine, database, recorder)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
