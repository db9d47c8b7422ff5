package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

func serveLogged(t *testing.T, status int, target string) map[string]any {
	t.Helper()

	var buf bytes.Buffer
	e := echo.New()
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string { return "req-1" },
	}))
	e.Use(RequestLogger(zerolog.New(&buf)))
	e.GET("/api/users/:id/", func(c echo.Context) error {
		if status >= 400 {
			return echo.NewHTTPError(status, http.StatusText(status))
		}
		return c.NoContent(status)
	})

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != status {
		t.Fatalf("expected %d, got %d", status, rec.Code)
	}

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
	}
	return line
}

func TestRequestLogger_Fields(t *testing.T) {
	line := serveLogged(t, http.StatusNoContent, "/api/users/7/")

	if line["level"] != "info" {
		t.Errorf("expected info, got %v", line["level"])
	}
	if line["method"] != "GET" || line["uri"] != "/api/users/7/" || line["route"] != "/api/users/:id/" {
		t.Errorf("unexpected request fields %v", line)
	}
	if line["status"] != float64(http.StatusNoContent) {
		t.Errorf("unexpected status %v", line["status"])
	}
	if line["request_id"] != "req-1" {
		t.Errorf("unexpected request id %v", line["request_id"])
	}
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	tests := map[int]string{
		http.StatusOK:                  "info",
		http.StatusNotFound:            "warn",
		http.StatusInternalServerError: "error",
	}
	for status, want := range tests {
		line := serveLogged(t, status, "/api/users/1/")
		if line["level"] != want {
			t.Errorf("status %d: expected level %s, got %v", status, want, line["level"])
		}
	}
}
