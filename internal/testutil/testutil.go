// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"testing"

	"moodchat/internal/chat"
	"moodchat/internal/classifier"
	"moodchat/internal/config"
	"moodchat/internal/db"
	"moodchat/internal/models"
	"moodchat/internal/mood"
)

// ChatRows is a small reply table used across handler tests.
var ChatRows = []models.LabeledPhrase{
	{Input: "hi", Label: "Hello! How can I help you?"},
	{Input: "how are you", Label: "I'm doing great, thanks for asking!"},
	{Input: "bye", Label: "Goodbye, take care!"},
	{Input: "thank you", Label: "You're welcome!"},
}

// EmotionRows is a small emotion table used across handler tests.
var EmotionRows = []models.LabeledPhrase{
	{Input: "i am so happy today", Label: "happy"},
	{Input: "this is wonderful news", Label: "happy"},
	{Input: "i feel sad and lonely", Label: "sad"},
	{Input: "i miss my friends", Label: "sad"},
	{Input: "too much work pressure", Label: "stress"},
	{Input: "deadline tomorrow and nothing is done", Label: "stress"},
}

// Engine trains a chat engine on ChatRows and EmotionRows.
func Engine(t *testing.T) *chat.Engine {
	t.Helper()

	chatDS := &models.Dataset{Name: models.DatasetChat, LabelColumn: "chatbot", Rows: ChatRows}
	emotionDS := &models.Dataset{Name: models.DatasetEmotion, LabelColumn: "emotion", Rows: EmotionRows}

	engine, err := chat.Train(chatDS, emotionDS, 70, mood.Default(), classifier.DefaultConfig())
	if err != nil {
		t.Fatalf("failed to train test engine: %v", err)
	}
	return engine
}

// Config returns a development configuration with defaults.
func Config() *config.Config {
	return &config.Config{
		Env:            "development",
		ServerAddr:     ":0",
		BaseURL:        "http://localhost:3000",
		RateLimitMax:   1000,
		SessionSecret:  "test-secret-that-is-long-enough-for-production",
		DatasetSource:  config.SourceCSV,
		MatchThreshold: 70,
		SiteTitle:      "Friendly Chatbot",
		SiteTagline:    "Talk to your virtual friend",
	}
}

// TestDB creates a test database connection and returns a cleanup function.
// Skips the test unless TEST_DATABASE_URL is set.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanup := func() {
		database.Pool.Exec(ctx, "DELETE FROM phrases")
		database.Close()
	}

	return database, cleanup
}

// SeedDatasets replaces both stored datasets with ChatRows and EmotionRows.
func SeedDatasets(t *testing.T, database *db.DB) {
	t.Helper()
	ctx := context.Background()

	if _, err := database.ReplaceDataset(ctx, models.DatasetChat, ChatRows); err != nil {
		t.Fatalf("failed to seed chat dataset: %v", err)
	}
	if _, err := database.ReplaceDataset(ctx, models.DatasetEmotion, EmotionRows); err != nil {
		t.Fatalf("failed to seed emotion dataset: %v", err)
	}
}
