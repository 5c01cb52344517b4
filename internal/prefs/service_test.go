package prefs

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func testService(t *testing.T) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(client)
}

func TestGetDefaults(t *testing.T) {
	svc := testService(t)

	p, err := svc.Get(context.Background(), "device-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p != DefaultPreferences() {
		t.Fatalf("expected defaults, got %+v", p)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	svc := testService(t)

	want := Preferences{Voice: "en-GB-standard", Rate: 1.2, Pitch: 0.9, Volume: 0.8}
	if err := svc.Set(context.Background(), "device-1", want); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := svc.Get(context.Background(), "device-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestPrefsHandlers(t *testing.T) {
	svc := testService(t)

	app := fiber.New()
	RegisterRoutes(app.Group("/prefs"), svc, func(c *fiber.Ctx) error {
		c.Locals("device_id", "device-1")
		return c.Next()
	})

	body, _ := json.Marshal(Preferences{Voice: "vi-VN", Rate: 1.1, Pitch: 1, Volume: 1})
	req := httptest.NewRequest(http.MethodPut, "/prefs/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("put status: %v", err)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/prefs/", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("get status: %v", err)
	}
	var got Preferences
	_ = json.NewDecoder(resp.Body).Decode(&got)
	if got.Voice != "vi-VN" {
		t.Fatalf("unexpected prefs %+v", got)
	}
}

func TestPrefsHandlersUnauthorized(t *testing.T) {
	svc := testService(t)

	app := fiber.New()
	RegisterRoutes(app.Group("/prefs"), svc, func(c *fiber.Ctx) error { return c.Next() })

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/prefs/", nil))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %d", resp.StatusCode)
	}
}

func TestNarrationOptions(t *testing.T) {
	p := Preferences{Voice: "en-GB", Rate: 1.25, Pitch: 0.9, Volume: 0.8}
	opts := p.NarrationOptions()
	if opts.Voice != "en-GB" || opts.Rate != 1.25 || opts.Pitch != 0.9 || opts.Volume != 0.8 {
		t.Fatalf("unexpected options %+v", opts)
	}

	defaults := DefaultPreferences().NarrationOptions()
	if defaults.Rate != 1 || defaults.Pitch != 1 || defaults.Volume != 1 {
		t.Fatalf("unexpected default options %+v", defaults)
	}
}
