package middleware

import (
	"io"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"moodchat/internal/models"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	sessionMiddleware, _ := session.NewWithStore(session.Config{
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	app.Use(sessionMiddleware)
	app.Use(LoadConversation)

	app.Post("/say/:word", func(c fiber.Ctx) error {
		conv := Conversation(c).Append(models.Exchange{
			Input: c.Params("word"),
			Reply: models.Resolution{Label: "ok"},
		}, time.Now())
		if err := SaveConversation(c, conv); err != nil {
			return err
		}
		return c.SendString(strconv.Itoa(len(conv.Turns)))
	})
	app.Post("/reset", func(c fiber.Ctx) error {
		ClearConversation(c)
		return c.SendString(strconv.Itoa(len(Conversation(c).Turns)))
	})
	app.Get("/turns", func(c fiber.Ctx) error {
		return c.SendString(strconv.Itoa(len(Conversation(c).Turns)))
	})
	return app
}

func do(t *testing.T, app *fiber.App, method, path string, cookies []*http.Cookie) (string, []*http.Cookie) {
	t.Helper()
	req, _ := http.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		t.Fatalf("%s %s: expected 200, got %d: %s", method, path, resp.StatusCode, body)
	}
	if got := resp.Cookies(); len(got) > 0 {
		cookies = got
	}
	return string(body), cookies
}

func TestConversationRoundTrip(t *testing.T) {
	app := newTestApp()

	body, cookies := do(t, app, "GET", "/turns", nil)
	if body != "0" {
		t.Fatalf("fresh session turns = %s, want 0", body)
	}

	body, cookies = do(t, app, "POST", "/say/hi", cookies)
	if body != "2" {
		t.Fatalf("after first message turns = %s, want 2", body)
	}

	body, cookies = do(t, app, "POST", "/say/bye", cookies)
	if body != "4" {
		t.Fatalf("after second message turns = %s, want 4", body)
	}

	body, cookies = do(t, app, "GET", "/turns", cookies)
	if body != "4" {
		t.Errorf("reloaded turns = %s, want 4", body)
	}

	body, cookies = do(t, app, "POST", "/reset", cookies)
	if body != "0" {
		t.Errorf("after reset turns = %s, want 0", body)
	}

	body, _ = do(t, app, "GET", "/turns", cookies)
	if body != "0" {
		t.Errorf("reloaded after reset turns = %s, want 0", body)
	}
}

func TestConversationsAreIsolated(t *testing.T) {
	app := newTestApp()

	_, alice := do(t, app, "POST", "/say/hi", nil)
	do(t, app, "POST", "/say/again", alice)

	body, _ := do(t, app, "GET", "/turns", nil)
	if body != "0" {
		t.Errorf("new visitor sees %s turns, want 0", body)
	}
}

func TestConversation_WithoutMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c fiber.Ctx) error {
		if !Conversation(c).IsEmpty() {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString("empty")
	})

	resp, err := app.Test(httpRequest("GET", "/"))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func httpRequest(method, path string) *http.Request {
	req, _ := http.NewRequest(method, path, nil)
	return req
}
