package intents

import "IntentBridge/pkg/response"

var (
	ErrIntentNotFound     = response.NewError(404, "intent not found")
	ErrIntentSourceFailed = response.NewError(502, "failed to fetch intents from agent")
	ErrUpdateIntent       = response.NewError(502, "failed to update intent")
	ErrBatchUpdateIntents = response.NewError(502, "failed to batch update intents")
	ErrInvalidIntentName  = response.NewError(400, "invalid intent name")
	ErrInvalidDisplayName = response.NewError(400, "invalid intent display name")
	ErrDuplicateBatchItem = response.NewError(400, "display name appears more than once in batch")
)
