package entity

import "time"

// QueryLog is one detect-intent exchange kept for session history.
type QueryLog struct {
	ID                string    `db:"id"`
	SessionID         string    `db:"session_id"`
	QueryText         string    `db:"query_text"`
	IntentName        string    `db:"intent_name"`
	IntentDisplayName string    `db:"intent_display_name"`
	Confidence        float64   `db:"confidence"`
	FulfillmentText   string    `db:"fulfillment_text"`
	Parameters        []byte    `db:"parameters"`
	CreatedAt         time.Time `db:"created_at"`
}
