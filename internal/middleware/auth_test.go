package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/osspulse/osspulse/internal/config"
	"github.com/osspulse/osspulse/internal/logging"
)

const testKey = "0123456789abcdef0123456789abcdef"

func newAuthApp(cfg config.AuthConfig) *fiber.App {
	app := fiber.New()
	app.Use(APIKeyAuth(logging.NewDevelopment(), cfg))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func TestAPIKeyAuthDisabled(t *testing.T) {
	app := newAuthApp(config.AuthConfig{Enabled: false})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusOK)
	}
}

func TestAPIKeyAuthHeaders(t *testing.T) {
	app := newAuthApp(config.AuthConfig{Enabled: true, APIKeys: []string{testKey}})

	tests := []struct {
		name     string
		header   string
		value    string
		expected int
	}{
		{"x-api-key header", "X-API-Key", testKey, fiber.StatusOK},
		{"bearer token", "Authorization", "Bearer " + testKey, fiber.StatusOK},
		{"plain authorization", "Authorization", testKey, fiber.StatusOK},
		{"wrong key", "X-API-Key", "wrong-key-wrong-key-wrong-key", fiber.StatusUnauthorized},
		{"missing key", "", "", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/ping", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("Test: %v", err)
			}
			if resp.StatusCode != tt.expected {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.expected)
			}
		})
	}
}

func TestAPIKeyAuthShortKeyRejected(t *testing.T) {
	// A configured key below the minimum length is discarded, so requests
	// presenting it are unauthorized.
	short := "too-short"
	app := newAuthApp(config.AuthConfig{Enabled: true, APIKeys: []string{short}})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-API-Key", short)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want %d", resp.StatusCode, fiber.StatusUnauthorized)
	}
}

func TestMaskAPIKey(t *testing.T) {
	if got := maskAPIKey("abc"); got != "****" {
		t.Errorf("maskAPIKey(short) = %q, want ****", got)
	}
	if got := maskAPIKey("abcdefgh"); got != "abcd****" {
		t.Errorf("maskAPIKey = %q, want abcd****", got)
	}
}
