package conversation

import (
	"IntentBridge/pkg/structconv"
	"encoding/json"
	"time"
)

type DetectIntentRequest struct {
	SessionID string   `json:"session_id" validate:"omitempty,max=36,printascii"`
	Query     string   `json:"query" validate:"required,max=256"`
	Contexts  []string `json:"contexts" validate:"omitempty,max=20,dive,required,max=250"`
}

type MatchedIntent struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

type DetectIntentResponse struct {
	SessionID       string          `json:"session_id"`
	ResponseID      string          `json:"response_id"`
	QueryText       string          `json:"query_text"`
	LanguageCode    string          `json:"language_code"`
	Intent          MatchedIntent   `json:"intent"`
	Confidence      float64         `json:"confidence"`
	FulfillmentText string          `json:"fulfillment_text"`
	Messages        []string        `json:"messages"`
	Action          string          `json:"action,omitempty"`
	Parameters      *structconv.Map `json:"parameters"`
	OutputContexts  []string        `json:"output_contexts"`
}

type ContextResponse struct {
	Name          string          `json:"name"`
	Path          string          `json:"path"`
	LifespanCount int64           `json:"lifespan_count"`
	Parameters    *structconv.Map `json:"parameters"`
}

type ContextListResponse struct {
	SessionID string            `json:"session_id"`
	Contexts  []ContextResponse `json:"contexts"`
}

type CreateContextsRequest struct {
	Names []string `json:"names" validate:"required,min=1,max=20,dive,required,max=250"`
}

type ContextResult struct {
	Name    string           `json:"name"`
	OK      bool             `json:"ok"`
	Context *ContextResponse `json:"context,omitempty"`
	Error   string           `json:"error,omitempty"`
}

type CreateContextsResponse struct {
	SessionID string          `json:"session_id"`
	Results   []ContextResult `json:"results"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
}

type HistoryEntry struct {
	ID                string          `json:"id"`
	QueryText         string          `json:"query_text"`
	IntentName        string          `json:"intent_name"`
	IntentDisplayName string          `json:"intent_display_name"`
	Confidence        float64         `json:"confidence"`
	FulfillmentText   string          `json:"fulfillment_text"`
	Parameters        json.RawMessage `json:"parameters"`
	CreatedAt         time.Time       `json:"created_at"`
}

type HistoryResponse struct {
	SessionID string         `json:"session_id"`
	Entries   []HistoryEntry `json:"entries"`
	Total     int            `json:"total"`
	Page      int            `json:"page"`
	Limit     int            `json:"limit"`
}

// Fulfillment webhook wire format, as posted by the agent.

type WebhookIntent struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

type WebhookText struct {
	Text []string `json:"text"`
}

type WebhookMessage struct {
	Text *WebhookText `json:"text,omitempty"`
}

type WebhookContext struct {
	Name          string          `json:"name"`
	LifespanCount int64           `json:"lifespanCount,omitempty"`
	Parameters    json.RawMessage `json:"parameters,omitempty"`
}

type WebhookQueryResult struct {
	QueryText                 string           `json:"queryText"`
	Parameters                json.RawMessage  `json:"parameters"`
	FulfillmentText           string           `json:"fulfillmentText"`
	FulfillmentMessages       []WebhookMessage `json:"fulfillmentMessages"`
	Intent                    WebhookIntent    `json:"intent"`
	IntentDetectionConfidence float64          `json:"intentDetectionConfidence"`
	LanguageCode              string           `json:"languageCode"`
	OutputContexts            []WebhookContext `json:"outputContexts"`
}

type WebhookRequest struct {
	ResponseID  string             `json:"responseId"`
	Session     string             `json:"session" validate:"required"`
	QueryResult WebhookQueryResult `json:"queryResult"`
}

type WebhookResponse struct {
	FulfillmentText     string           `json:"fulfillmentText,omitempty"`
	FulfillmentMessages []WebhookMessage `json:"fulfillmentMessages,omitempty"`
	Payload             *structconv.Map  `json:"payload,omitempty"`
}
