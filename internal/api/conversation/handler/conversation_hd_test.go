package conversationHandler

import (
	"IntentBridge/internal/api/conversation"
	"IntentBridge/internal/middleware"
	"IntentBridge/pkg/structconv"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

type fakeConversationService struct {
	detectReq  conversation.DetectIntentRequest
	sessionID  string
	webhookReq conversation.WebhookRequest
	createRes  *conversation.CreateContextsResponse
	historyErr error
	page       int
	limit      int
}

func (f *fakeConversationService) DetectIntent(ctx context.Context, req conversation.DetectIntentRequest) (*conversation.DetectIntentResponse, error) {
	f.detectReq = req
	params := structconv.NewMap()
	params.Set("size", "large")
	params.Set("amount", 2.0)
	return &conversation.DetectIntentResponse{SessionID: "s-1", Parameters: params}, nil
}

func (f *fakeConversationService) ListContexts(ctx context.Context, sessionID string) (*conversation.ContextListResponse, error) {
	f.sessionID = sessionID
	return &conversation.ContextListResponse{SessionID: sessionID}, nil
}

func (f *fakeConversationService) CreateContexts(ctx context.Context, sessionID string, req conversation.CreateContextsRequest) (*conversation.CreateContextsResponse, error) {
	f.sessionID = sessionID
	return f.createRes, nil
}

func (f *fakeConversationService) GetHistory(ctx context.Context, sessionID string, page, limit int) (*conversation.HistoryResponse, error) {
	f.sessionID, f.page, f.limit = sessionID, page, limit
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return &conversation.HistoryResponse{SessionID: sessionID}, nil
}

func (f *fakeConversationService) Fulfill(ctx context.Context, req conversation.WebhookRequest) (*conversation.WebhookResponse, error) {
	f.webhookReq = req
	return &conversation.WebhookResponse{FulfillmentText: "ok"}, nil
}

func newTestApp(svc *fakeConversationService) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	mw := middleware.New(logger)
	app := fiber.New(fiber.Config{
		JSONEncoder: jsoniter.Marshal,
		JSONDecoder: jsoniter.Unmarshal,
	})
	app.Use(mw.NewRequestIDMiddleware())

	New(logger, validator.New(), mw, svc).Start(app.Group("/api/v1"))
	return app
}

func send(t *testing.T, app *fiber.App, method, target, body string) (int, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(raw)
}

func TestDetectIntentKeepsParameterOrder(t *testing.T) {
	svc := &fakeConversationService{}
	app := newTestApp(svc)

	status, body := send(t, app, http.MethodPost, "/api/v1/conversation/detect",
		`{"query":"large pizza twice","contexts":["awaiting-size"]}`)
	if status != http.StatusOK {
		t.Fatalf("status = %d body = %s", status, body)
	}
	if svc.detectReq.Query != "large pizza twice" || len(svc.detectReq.Contexts) != 1 {
		t.Fatalf("request = %+v", svc.detectReq)
	}
	if !strings.Contains(body, `"parameters":{"size":"large","amount":2}`) {
		t.Fatalf("body = %s", body)
	}
}

func TestDetectIntentValidation(t *testing.T) {
	app := newTestApp(&fakeConversationService{})

	cases := []string{
		`{"query":""}`,
		`{"query":"hi","session_id":"` + strings.Repeat("x", 37) + `"}`,
		`{"query":"hi","contexts":[""]}`,
		`not json`,
	}
	for _, body := range cases {
		if status, resp := send(t, app, http.MethodPost, "/api/v1/conversation/detect", body); status != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d resp = %s", body, status, resp)
		}
	}
}

func TestSessionIDIsValidated(t *testing.T) {
	svc := &fakeConversationService{}
	app := newTestApp(svc)

	status, body := send(t, app, http.MethodGet, "/api/v1/conversation/sessions/"+strings.Repeat("a", 40)+"/contexts", "")
	if status != http.StatusBadRequest || !strings.Contains(body, "invalid session id") {
		t.Fatalf("status = %d body = %s", status, body)
	}

	status, _ = send(t, app, http.MethodGet, "/api/v1/conversation/sessions/s-1/contexts", "")
	if status != http.StatusOK || svc.sessionID != "s-1" {
		t.Fatalf("status = %d session = %q", status, svc.sessionID)
	}
}

func TestCreateContextsStatus(t *testing.T) {
	svc := &fakeConversationService{createRes: &conversation.CreateContextsResponse{Succeeded: 2}}
	app := newTestApp(svc)

	status, body := send(t, app, http.MethodPost, "/api/v1/conversation/sessions/s-1/contexts", `{"names":["a","b"]}`)
	if status != http.StatusCreated {
		t.Fatalf("status = %d body = %s", status, body)
	}

	svc.createRes = &conversation.CreateContextsResponse{Succeeded: 1, Failed: 1}
	status, body = send(t, app, http.MethodPost, "/api/v1/conversation/sessions/s-1/contexts", `{"names":["a","bad"]}`)
	if status != http.StatusMultiStatus {
		t.Fatalf("status = %d body = %s", status, body)
	}

	status, _ = send(t, app, http.MethodPost, "/api/v1/conversation/sessions/s-1/contexts", `{"names":[]}`)
	if status != http.StatusBadRequest {
		t.Fatalf("empty names: status = %d", status)
	}
}

func TestHistory(t *testing.T) {
	svc := &fakeConversationService{}
	app := newTestApp(svc)

	status, _ := send(t, app, http.MethodGet, "/api/v1/conversation/sessions/s-1/history?page=2&limit=5", "")
	if status != http.StatusOK || svc.page != 2 || svc.limit != 5 {
		t.Fatalf("status = %d page = %d limit = %d", status, svc.page, svc.limit)
	}

	svc.historyErr = conversation.ErrHistoryUnavailable
	status, body := send(t, app, http.MethodGet, "/api/v1/conversation/sessions/s-1/history", "")
	if status != http.StatusServiceUnavailable {
		t.Fatalf("status = %d body = %s", status, body)
	}
}

func TestWebhook(t *testing.T) {
	svc := &fakeConversationService{}
	app := newTestApp(svc)

	payload := `{
		"responseId": "r-1",
		"session": "projects/demo/agent/sessions/s-1",
		"queryResult": {
			"queryText": "large pizza",
			"parameters": {"size": "large", "amount": 2},
			"intent": {"name": "projects/demo/agent/intents/o1", "displayName": "order"},
			"intentDetectionConfidence": 0.87
		}
	}`

	status, body := send(t, app, http.MethodPost, "/api/v1/conversation/webhook", payload)
	if status != http.StatusOK {
		t.Fatalf("status = %d body = %s", status, body)
	}
	if body != `{"fulfillmentText":"ok"}` {
		t.Fatalf("body = %s", body)
	}

	got := svc.webhookReq.QueryResult
	if got.Intent.DisplayName != "order" || got.IntentDetectionConfidence != 0.87 {
		t.Fatalf("query result = %+v", got)
	}
	if raw := string(got.Parameters); !strings.HasPrefix(raw, "{") || strings.Index(raw, `"size"`) > strings.Index(raw, `"amount"`) {
		t.Fatalf("raw parameters = %s", got.Parameters)
	}

	status, _ = send(t, app, http.MethodPost, "/api/v1/conversation/webhook", `{"queryResult":{}}`)
	if status != http.StatusBadRequest {
		t.Fatalf("missing session: status = %d", status)
	}
}
