package conversationService

import (
	"IntentBridge/internal/api/conversation"
	contextPkg "IntentBridge/pkg/context"
	"IntentBridge/pkg/response"
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// GetHistory returns a page of the session's recorded queries, newest first.
func (s *conversationService) GetHistory(ctx context.Context, sessionID string, page, limit int) (*conversation.HistoryResponse, error) {
	if s.repo == nil {
		return nil, conversation.ErrHistoryUnavailable
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, response.Wrap(conversation.ErrHistoryQuery, err)
	}

	logs, total, err := repo.QueryLogs.GetQueryLogsBySession(ctx, sessionID, limit, (page-1)*limit)
	if err != nil {
		return nil, response.Wrap(conversation.ErrHistoryQuery, err)
	}

	resp := &conversation.HistoryResponse{
		SessionID: sessionID,
		Entries:   make([]conversation.HistoryEntry, 0, len(logs)),
		Total:     total,
		Page:      page,
		Limit:     limit,
	}

	for _, l := range logs {
		params := json.RawMessage(l.Parameters)
		if len(params) == 0 {
			params = json.RawMessage("{}")
		}

		resp.Entries = append(resp.Entries, conversation.HistoryEntry{
			ID:                l.ID,
			QueryText:         l.QueryText,
			IntentName:        l.IntentName,
			IntentDisplayName: l.IntentDisplayName,
			Confidence:        l.Confidence,
			FulfillmentText:   l.FulfillmentText,
			Parameters:        params,
			CreatedAt:         l.CreatedAt,
		})
	}

	return resp, nil
}
