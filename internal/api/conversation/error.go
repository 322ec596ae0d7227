package conversation

import "IntentBridge/pkg/response"

var (
	ErrInvalidSessionID     = response.NewError(400, "invalid session id")
	ErrDetectIntent         = response.NewError(502, "failed to detect intent")
	ErrListContexts         = response.NewError(502, "failed to list session contexts")
	ErrHistoryUnavailable   = response.NewError(503, "query history is not configured")
	ErrHistoryQuery         = response.NewError(500, "failed to read query history")
	ErrInvalidWebhookParams = response.NewError(400, "webhook parameters are not valid JSON")
)
