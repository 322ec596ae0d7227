package dialogflow

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	dfv2 "google.golang.org/api/dialogflow/v2"
)

type Context = dfv2.GoogleCloudDialogflowV2Context

// ListContexts returns every active context of the session.
func (s *Session) ListContexts(ctx context.Context) ([]*Context, error) {
	var contexts []*Context

	err := s.client.svc.Projects.Agent.Sessions.Contexts.List(s.Path()).
		Pages(ctx, func(page *dfv2.GoogleCloudDialogflowV2ListContextsResponse) error {
			contexts = append(contexts, page.Contexts...)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("dialogflow: list contexts: %w", err)
	}

	return contexts, nil
}

// CreateContext creates the context with the given short name in the session.
func (s *Session) CreateContext(ctx context.Context, contextName string) (*Context, error) {
	created, err := s.client.svc.Projects.Agent.Sessions.Contexts.
		Create(s.Path(), &Context{Name: s.ContextPath(contextName)}).
		Context(ctx).
		Do()
	if err != nil {
		s.client.log.WithFields(logrus.Fields{
			"session_id": s.id,
			"context":    contextName,
			"error":      err.Error(),
		}).Warn("Failed to create context")
		return nil, fmt.Errorf("dialogflow: create context %s: %w", contextName, err)
	}

	return created, nil
}

// CreateContexts creates each named context and reports every outcome in input order.
func (s *Session) CreateContexts(ctx context.Context, contextNames []string) []Result[*Context] {
	results := make([]Result[*Context], 0, len(contextNames))
	for _, name := range contextNames {
		created, err := s.CreateContext(ctx, name)
		results = append(results, Result[*Context]{Key: name, Value: created, Err: err})
	}
	return results
}

// GetContext fetches one context by short name.
func (s *Session) GetContext(ctx context.Context, contextName string) (*Context, error) {
	got, err := s.client.svc.Projects.Agent.Sessions.Contexts.Get(s.ContextPath(contextName)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("dialogflow: get context %s: %w", contextName, err)
	}
	return got, nil
}

// GetContexts fetches each named context and reports every outcome in input order.
func (s *Session) GetContexts(ctx context.Context, contextNames []string) []Result[*Context] {
	results := make([]Result[*Context], 0, len(contextNames))
	for _, name := range contextNames {
		got, err := s.GetContext(ctx, name)
		results = append(results, Result[*Context]{Key: name, Value: got, Err: err})
	}
	return results
}

func (c *Client) ListContexts(ctx context.Context, sessionID string) ([]*Context, error) {
	return c.Session(sessionID).ListContexts(ctx)
}

func (c *Client) CreateContexts(ctx context.Context, sessionID string, contextNames []string) []Result[*Context] {
	return c.Session(sessionID).CreateContexts(ctx, contextNames)
}
