package conversationService

import (
	"IntentBridge/internal/api/conversation"
	contextPkg "IntentBridge/pkg/context"
	"IntentBridge/pkg/dialogflow"
	"IntentBridge/pkg/response"
	"IntentBridge/pkg/structconv"
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

func (s *conversationService) ListContexts(ctx context.Context, sessionID string) (*conversation.ContextListResponse, error) {
	contexts, err := s.agent.ListContexts(ctx, sessionID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"session_id": sessionID,
			"error":      err.Error(),
		}).Error("Failed to list contexts")
		return nil, response.Wrap(conversation.ErrListContexts, err)
	}

	resp := &conversation.ContextListResponse{
		SessionID: sessionID,
		Contexts:  make([]conversation.ContextResponse, 0, len(contexts)),
	}
	for _, c := range contexts {
		if c == nil {
			continue
		}
		resp.Contexts = append(resp.Contexts, s.makeContext(ctx, c))
	}

	return resp, nil
}

// CreateContexts creates every named context and reports each outcome in request order.
func (s *conversationService) CreateContexts(
	ctx context.Context,
	sessionID string,
	req conversation.CreateContextsRequest,
) (*conversation.CreateContextsResponse, error) {
	results := s.agent.CreateContexts(ctx, sessionID, req.Names)

	resp := &conversation.CreateContextsResponse{
		SessionID: sessionID,
		Results:   make([]conversation.ContextResult, 0, len(results)),
	}

	for _, r := range results {
		item := conversation.ContextResult{Name: r.Key, OK: r.OK()}
		if r.OK() {
			if r.Value != nil {
				c := s.makeContext(ctx, r.Value)
				item.Context = &c
			}
		} else {
			item.Error = r.Err.Error()
		}
		resp.Results = append(resp.Results, item)
	}

	failed := dialogflow.Failed(results)
	resp.Failed = len(failed)
	resp.Succeeded = len(results) - len(failed)

	if len(failed) > 0 {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"session_id": sessionID,
			"error":      dialogflow.JoinErrors(failed).Error(),
		}).Warn("Some contexts could not be created")
	}

	return resp, nil
}

func (s *conversationService) makeContext(ctx context.Context, c *dialogflow.Context) conversation.ContextResponse {
	params := structconv.Mapping()
	if len(c.Parameters) > 0 {
		parsed, err := structconv.FromJSON(c.Parameters)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"context":    c.Name,
				"error":      err.Error(),
			}).Warn("Context parameters are not valid JSON")
		} else if parsed.Kind() == structconv.KindMapping {
			params = parsed
		}
	}

	return conversation.ContextResponse{
		Name:          shortName(c.Name),
		Path:          c.Name,
		LifespanCount: c.LifespanCount,
		Parameters:    structconv.ConvertMapping(params),
	}
}

func shortName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
