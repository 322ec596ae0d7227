package middleware

import (
	contextPkg "IntentBridge/pkg/context"
	jwtPkg "IntentBridge/pkg/jwt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv(AccessTokenSecret, "test-secret")
	t.Setenv("RATE_LIMIT_RPS", "1")
	t.Setenv("RATE_LIMIT_BURST", "2")

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	mw := New(logger)

	app := fiber.New()
	app.Use(mw.NewRequestIDMiddleware())
	app.Get("/id", func(c *fiber.Ctx) error {
		return c.SendString(mw.GetRequestID(c))
	})
	app.Get("/ctx", func(c *fiber.Ctx) error {
		return c.SendString(contextPkg.GetRequestID(contextPkg.FromFiberCtx(c)))
	})
	app.Get("/limited", mw.NewRateLimiter, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/secure", mw.NewTokenMiddleware, func(c *fiber.Ctx) error {
		operator, err := jwtPkg.GetOperator(c)
		if err != nil {
			return err
		}
		return c.SendString(operator.ID + ":" + operator.Username)
	})
	return app
}

func call(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

func TestRequestIDIsAssignedOrKept(t *testing.T) {
	app := newTestApp(t)

	resp, body := call(t, app, httptest.NewRequest(http.MethodGet, "/id", nil))
	if len(body) != 26 || resp.Header.Get(RequestIDKey) != body {
		t.Fatalf("generated id = %q header = %q", body, resp.Header.Get(RequestIDKey))
	}

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(RequestIDKey, "abc-123")
	if _, body := call(t, app, req); body != "abc-123" {
		t.Fatalf("kept id = %q", body)
	}
}

func TestRequestIDReachesUserContext(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/ctx", nil)
	req.Header.Set(RequestIDKey, "trace-42")
	if _, body := call(t, app, req); body != "trace-42" {
		t.Fatalf("context id = %q", body)
	}

	resp, body := call(t, app, httptest.NewRequest(http.MethodGet, "/ctx", nil))
	if len(body) != 26 || resp.Header.Get(RequestIDKey) != body {
		t.Fatalf("context id = %q header = %q", body, resp.Header.Get(RequestIDKey))
	}
}

func TestMalformedRequestIDIsReplaced(t *testing.T) {
	app := newTestApp(t)

	for _, bad := range []string{strings.Repeat("a", 65), "two words", "caf\u00e9"} {
		req := httptest.NewRequest(http.MethodGet, "/ctx", nil)
		req.Header.Set(RequestIDKey, bad)

		resp, body := call(t, app, req)
		if body == bad || len(body) != 26 || resp.Header.Get(RequestIDKey) != body {
			t.Fatalf("header %q: id = %q", bad, body)
		}
	}
}

func TestRateLimiterRejectsBurst(t *testing.T) {
	app := newTestApp(t)

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, _ := call(t, app, httptest.NewRequest(http.MethodGet, "/limited", nil))
		statuses = append(statuses, resp.StatusCode)
	}

	want := []int{fiber.StatusNoContent, fiber.StatusNoContent, fiber.StatusTooManyRequests}
	for i := range want {
		if statuses[i] != want[i] {
			t.Fatalf("statuses = %v, want %v", statuses, want)
		}
	}
}

func TestTokenMiddleware(t *testing.T) {
	app := newTestApp(t)

	valid, _, err := jwtPkg.Sign(map[string]interface{}{"id": "op-1", "username": "alice"}, time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	missingClaims, _, err := jwtPkg.Sign(map[string]interface{}{"id": "op-1"}, time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	expired, _, err := jwtPkg.Sign(map[string]interface{}{"id": "op-1", "username": "alice"}, -time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	otherSecret, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       "op-1",
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("not-the-secret"))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid", header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: "op-1:alice"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "no bearer prefix", header: valid, wantStatus: http.StatusUnauthorized},
		{name: "missing username", header: "Bearer " + missingClaims, wantStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + otherSecret, wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, body := call(t, app, req)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", resp.StatusCode, tt.wantStatus, body)
			}
			if tt.wantBody != "" && body != tt.wantBody {
				t.Fatalf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}
