package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"moodchat/internal/models"
	"moodchat/internal/testutil"
)

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func newAPIApp(t *testing.T) *fiber.App {
	t.Helper()
	engine := testutil.Engine(t)

	app := fiber.New()
	app.Post("/api/v1/resolve", NewResolveHandler(engine).Resolve)
	app.Get("/healthz", NewHealthHandler(engine, nil, testutil.Config()).Check)
	return app
}

func postJSON(t *testing.T, app *fiber.App, body string) (*http.Response, envelope) {
	t.Helper()
	req, _ := http.NewRequest("POST", "/api/v1/resolve", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("invalid JSON response %q: %v", raw, err)
	}
	return resp, env
}

func TestResolve_Success(t *testing.T) {
	app := newAPIApp(t)

	resp, env := postJSON(t, app, `{"message": "HI"}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if env.Status != "ok" {
		t.Fatalf("status = %q, want ok", env.Status)
	}

	var data models.ResolveResponse
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("invalid data: %v", err)
	}
	if data.Reply != "Hello! How can I help you?" {
		t.Errorf("reply = %q", data.Reply)
	}
	if data.ReplySource != models.SourceLexicon || data.ReplyScore != 100 {
		t.Errorf("reply source/score = %s/%d, want lexicon/100", data.ReplySource, data.ReplyScore)
	}
	if data.Emotion == "" || data.Style.Color == "" {
		t.Errorf("missing emotion or style: %+v", data)
	}
}

func TestResolve_Errors(t *testing.T) {
	app := newAPIApp(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"invalid json", `{"message":`, "invalid request body"},
		{"empty message", `{"message": "  "}`, "Message is required"},
		{"missing message", `{}`, "Message is required"},
		{"too long", `{"message": "` + strings.Repeat("x", 501) + `"}`, "Message is too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, env := postJSON(t, app, tt.body)
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Errorf("expected 400, got %d", resp.StatusCode)
			}
			if env.Status != "error" || env.Error != tt.want {
				t.Errorf("envelope = %+v, want error %q", env, tt.want)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	app := newAPIApp(t)

	req, _ := http.NewRequest("GET", "/healthz", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var health models.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if health.Status != "ok" || health.ChatPhrases != 4 || health.EmotionPhrases != 6 {
		t.Errorf("health = %+v", health)
	}
	if health.Database != "" {
		t.Errorf("database = %q, want empty without a database", health.Database)
	}
}

func TestHealth_WithDatabase(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()
	testutil.SeedDatasets(t, database)

	app := fiber.New()
	app.Get("/healthz", NewHealthHandler(testutil.Engine(t), database, testutil.Config()).Check)

	req, _ := http.NewRequest("GET", "/healthz", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var health models.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if health.Database != "ok" {
		t.Errorf("database = %q, want ok", health.Database)
	}
	if health.StoredPhrases[models.DatasetChat] != len(testutil.ChatRows) ||
		health.StoredPhrases[models.DatasetEmotion] != len(testutil.EmotionRows) {
		t.Errorf("stored phrases = %v", health.StoredPhrases)
	}
}
