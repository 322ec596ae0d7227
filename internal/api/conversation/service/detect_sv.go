package conversationService

import (
	"IntentBridge/internal/api/conversation"
	"IntentBridge/internal/entity"
	contextPkg "IntentBridge/pkg/context"
	"IntentBridge/pkg/dialogflow"
	"IntentBridge/pkg/response"
	"IntentBridge/pkg/structconv"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// DetectIntent sends the query to the agent, opening a new session when none is given, and
// records the exchange when history is enabled.
func (s *conversationService) DetectIntent(ctx context.Context, req conversation.DetectIntentRequest) (*conversation.DetectIntentResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = dialogflow.NewSessionID()
	}

	result, err := s.agent.DetectIntent(ctx, sessionID, req.Query, req.Contexts)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to detect intent")
		return nil, response.Wrap(conversation.ErrDetectIntent, err)
	}

	params := result.PlainParameters()

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": sessionID,
		"intent":     result.IntentDisplayName,
		"confidence": result.Confidence,
	}).Debug("Intent detected")

	s.recordQuery(ctx, sessionID, result, params)

	return &conversation.DetectIntentResponse{
		SessionID:    sessionID,
		ResponseID:   result.ResponseID,
		QueryText:    result.QueryText,
		LanguageCode: result.LanguageCode,
		Intent: conversation.MatchedIntent{
			Name:        result.IntentName,
			DisplayName: result.IntentDisplayName,
		},
		Confidence:      result.Confidence,
		FulfillmentText: result.FulfillmentText,
		Messages:        nonNil(result.FulfillmentMessages),
		Action:          result.Action,
		Parameters:      params,
		OutputContexts:  nonNil(result.OutputContexts),
	}, nil
}

// recordQuery persists the exchange. Failures are logged and never fail the detect call.
func (s *conversationService) recordQuery(ctx context.Context, sessionID string, result *dialogflow.DetectResult, params *structconv.Map) {
	if s.repo == nil {
		return
	}

	requestID := contextPkg.GetRequestID(ctx)

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate ULID")
		return
	}

	encoded, err := structconv.MarshalJSON(params)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to encode query parameters")
		encoded = []byte("{}")
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return
	}

	err = repo.QueryLogs.CreateQueryLog(ctx, entity.QueryLog{
		ID:                id,
		SessionID:         sessionID,
		QueryText:         result.QueryText,
		IntentName:        result.IntentName,
		IntentDisplayName: result.IntentDisplayName,
		Confidence:        result.Confidence,
		FulfillmentText:   result.FulfillmentText,
		Parameters:        encoded,
		CreatedAt:         time.Now(),
	})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("Failed to record query log")
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
