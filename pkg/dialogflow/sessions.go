package dialogflow

import (
	"context"
	"fmt"

	"IntentBridge/pkg/structconv"

	"github.com/sirupsen/logrus"
	dfv2 "google.golang.org/api/dialogflow/v2"
)

// detectContextLifespan keeps contexts attached to a query alive for that query only.
const detectContextLifespan = 1

// Session addresses one conversation with the agent. It holds no server-side state.
type Session struct {
	client *Client
	id     string
}

// Session returns a handle on an existing session id.
func (c *Client) Session(id string) *Session {
	return &Session{client: c, id: id}
}

// NewSession opens a session with a fresh id and creates the named contexts in it. The first
// context that cannot be created aborts the call.
func (c *Client) NewSession(ctx context.Context, contextNames []string) (*Session, error) {
	s := c.Session(NewSessionID())

	for _, name := range contextNames {
		if _, err := s.CreateContext(ctx, name); err != nil {
			return nil, err
		}
	}

	c.log.WithFields(logrus.Fields{
		"session_id": s.id,
		"contexts":   len(contextNames),
	}).Debug("Session created")

	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Path() string {
	return s.client.SessionPath(s.id)
}

func (s *Session) ContextPath(contextName string) string {
	return s.client.ContextPath(s.id, contextName)
}

// DetectResult is the part of a detect-intent response callers consume, with the matched
// parameters already classified for conversion.
type DetectResult struct {
	ResponseID          string
	QueryText           string
	LanguageCode        string
	IntentName          string
	IntentDisplayName   string
	Confidence          float64
	FulfillmentText     string
	FulfillmentMessages []string
	Action              string
	Parameters          structconv.Value
	OutputContexts      []string
	Raw                 *dfv2.GoogleCloudDialogflowV2DetectIntentResponse
}

// PlainParameters converts the matched parameters to plain data.
func (r *DetectResult) PlainParameters() *structconv.Map {
	if m := structconv.ConvertMapping(r.Parameters); m != nil {
		return m
	}
	return structconv.NewMap()
}

// DetectIntent sends a text query. Each named context is attached with a lifespan of one turn.
func (s *Session) DetectIntent(ctx context.Context, query string, contextNames []string) (*DetectResult, error) {
	contexts := make([]*dfv2.GoogleCloudDialogflowV2Context, 0, len(contextNames))
	for _, name := range contextNames {
		contexts = append(contexts, &dfv2.GoogleCloudDialogflowV2Context{
			Name:          s.ContextPath(name),
			LifespanCount: detectContextLifespan,
		})
	}

	req := &dfv2.GoogleCloudDialogflowV2DetectIntentRequest{
		QueryInput: &dfv2.GoogleCloudDialogflowV2QueryInput{
			Text: &dfv2.GoogleCloudDialogflowV2TextInput{
				Text:         query,
				LanguageCode: s.client.cfg.LanguageCode,
			},
		},
		QueryParams: &dfv2.GoogleCloudDialogflowV2QueryParameters{
			Contexts: contexts,
		},
	}

	resp, err := s.client.svc.Projects.Agent.Sessions.DetectIntent(s.Path(), req).Context(ctx).Do()
	if err != nil {
		s.client.log.WithFields(logrus.Fields{
			"session_id": s.id,
			"error":      err.Error(),
		}).Error("Detect intent failed")
		return nil, fmt.Errorf("dialogflow: detect intent: %w", err)
	}

	return newDetectResult(resp)
}

func newDetectResult(resp *dfv2.GoogleCloudDialogflowV2DetectIntentResponse) (*DetectResult, error) {
	result := &DetectResult{
		ResponseID: resp.ResponseId,
		Parameters: structconv.Mapping(),
		Raw:        resp,
	}

	qr := resp.QueryResult
	if qr == nil {
		return result, nil
	}

	result.QueryText = qr.QueryText
	result.LanguageCode = qr.LanguageCode
	result.Confidence = qr.IntentDetectionConfidence
	result.FulfillmentText = qr.FulfillmentText
	result.Action = qr.Action

	if qr.Intent != nil {
		result.IntentName = qr.Intent.Name
		result.IntentDisplayName = qr.Intent.DisplayName
	}

	for _, m := range qr.FulfillmentMessages {
		if m != nil && m.Text != nil {
			result.FulfillmentMessages = append(result.FulfillmentMessages, m.Text.Text...)
		}
	}

	for _, oc := range qr.OutputContexts {
		if oc != nil {
			result.OutputContexts = append(result.OutputContexts, oc.Name)
		}
	}

	if len(qr.Parameters) > 0 {
		params, err := structconv.FromJSON(qr.Parameters)
		if err != nil {
			return nil, fmt.Errorf("dialogflow: decode query parameters: %w", err)
		}
		result.Parameters = params
	}

	return result, nil
}

// DetectIntent runs query in the session identified by sessionID.
func (c *Client) DetectIntent(ctx context.Context, sessionID, query string, contextNames []string) (*DetectResult, error) {
	return c.Session(sessionID).DetectIntent(ctx, query, contextNames)
}
