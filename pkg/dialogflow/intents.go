package dialogflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	dfv2 "google.golang.org/api/dialogflow/v2"
)

const defaultOperationPoll = 2 * time.Second

// ListIntents returns every intent of the agent with training phrases, following all pages.
func (c *Client) ListIntents(ctx context.Context) ([]*dfv2.GoogleCloudDialogflowV2Intent, error) {
	var intents []*dfv2.GoogleCloudDialogflowV2Intent

	call := c.svc.Projects.Agent.Intents.List(c.AgentPath()).
		IntentView(intentViewFull).
		LanguageCode(c.cfg.LanguageCode)

	err := call.Pages(ctx, func(page *dfv2.GoogleCloudDialogflowV2ListIntentsResponse) error {
		intents = append(intents, page.Intents...)
		return nil
	})
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"agent": c.AgentPath(),
			"error": err.Error(),
		}).Error("Failed to list intents")
		return nil, fmt.Errorf("dialogflow: list intents: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"agent": c.AgentPath(),
		"count": len(intents),
	}).Debug("Listed intents")

	return intents, nil
}

// prepareForUpdate copies intent and clears the followup fields the API computes itself.
func prepareForUpdate(intent *dfv2.GoogleCloudDialogflowV2Intent) *dfv2.GoogleCloudDialogflowV2Intent {
	cp := *intent
	cp.RootFollowupIntentName = ""
	cp.FollowupIntentInfo = nil
	return &cp
}

// UpdateIntent writes intent back to the agent. The caller's record is not modified.
func (c *Client) UpdateIntent(ctx context.Context, intent *dfv2.GoogleCloudDialogflowV2Intent) (*dfv2.GoogleCloudDialogflowV2Intent, error) {
	if intent == nil || intent.Name == "" {
		return nil, errors.New("dialogflow: update intent: intent name is required")
	}

	updated, err := c.svc.Projects.Agent.Intents.Patch(intent.Name, prepareForUpdate(intent)).
		IntentView(intentViewFull).
		LanguageCode(c.cfg.LanguageCode).
		Context(ctx).
		Do()
	if err != nil {
		c.log.WithFields(logrus.Fields{
			"intent": intent.Name,
			"error":  err.Error(),
		}).Error("Failed to update intent")
		return nil, fmt.Errorf("dialogflow: update intent %s: %w", intent.Name, err)
	}

	return updated, nil
}

// BatchUpdateIntents starts a batch update and waits for the long-running operation to finish.
func (c *Client) BatchUpdateIntents(ctx context.Context, intents []*dfv2.GoogleCloudDialogflowV2Intent) ([]*dfv2.GoogleCloudDialogflowV2Intent, error) {
	if len(intents) == 0 {
		return nil, nil
	}

	batch := make([]*dfv2.GoogleCloudDialogflowV2Intent, 0, len(intents))
	for _, intent := range intents {
		if intent == nil {
			continue
		}
		batch = append(batch, prepareForUpdate(intent))
	}

	req := &dfv2.GoogleCloudDialogflowV2BatchUpdateIntentsRequest{
		IntentBatchInline: &dfv2.GoogleCloudDialogflowV2IntentBatch{Intents: batch},
		IntentView:        intentViewFull,
		LanguageCode:      c.cfg.LanguageCode,
	}

	op, err := c.svc.Projects.Agent.Intents.BatchUpdate(c.AgentPath(), req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("dialogflow: batch update intents: %w", err)
	}

	op, err = c.WaitOperation(ctx, op, defaultOperationPoll)
	if err != nil {
		return nil, err
	}

	var resp dfv2.GoogleCloudDialogflowV2BatchUpdateIntentsResponse
	if len(op.Response) > 0 {
		if err := jsoniter.Unmarshal(op.Response, &resp); err != nil {
			return nil, fmt.Errorf("dialogflow: decode batch update response: %w", err)
		}
	}

	c.log.WithFields(logrus.Fields{
		"operation": op.Name,
		"count":     len(resp.Intents),
	}).Info("Batch intent update finished")

	return resp.Intents, nil
}

// WaitOperation polls op until it is done, ctx ends, or the operation reports an error.
func (c *Client) WaitOperation(ctx context.Context, op *dfv2.GoogleLongrunningOperation, interval time.Duration) (*dfv2.GoogleLongrunningOperation, error) {
	if interval <= 0 {
		interval = defaultOperationPoll
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !op.Done {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("dialogflow: wait for operation %s: %w", op.Name, ctx.Err())
		case <-ticker.C:
		}

		next, err := c.svc.Projects.Operations.Get(op.Name).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("dialogflow: get operation %s: %w", op.Name, err)
		}
		op = next
	}

	if op.Error != nil {
		return nil, &OperationError{Name: op.Name, Code: op.Error.Code, Message: op.Error.Message}
	}

	return op, nil
}

// OperationError is the failure status reported by a finished long-running operation.
type OperationError struct {
	Name    string
	Code    int64
	Message string
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("dialogflow: operation %s failed with code %d: %s", e.Name, e.Code, e.Message)
}
