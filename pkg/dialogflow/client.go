// Package dialogflow is the thin client over the Dialogflow ES v2 REST API used by the rest of
// the service: listing and updating intents, detecting intents in a session and managing the
// contexts of a session. Transport, authentication and retries are left to the Google API
// client library.
package dialogflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	dfv2 "google.golang.org/api/dialogflow/v2"
	"google.golang.org/api/option"
)

const intentViewFull = "INTENT_VIEW_FULL"

type Client struct {
	cfg Config
	svc *dfv2.Service
	log *logrus.Logger
}

// New validates cfg, loads the credential file and builds the REST service. Extra options are
// applied after the ones derived from cfg.
func New(ctx context.Context, cfg Config, log *logrus.Logger, opts ...option.ClientOption) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logrus.StandardLogger()
	}

	credential, err := loadCredentials(ctx, cfg.Credential)
	if err != nil {
		return nil, fmt.Errorf("dialogflow: %w", err)
	}

	clientOpts := []option.ClientOption{credential}
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(cfg.Endpoint))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := dfv2.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("dialogflow: create service: %w", err)
	}

	log.WithFields(logrus.Fields{
		"project_id":    cfg.ProjectID,
		"language_code": cfg.LanguageCode,
	}).Info("Dialogflow client initialized")

	return &Client{cfg: cfg, svc: svc, log: log}, nil
}

func (c *Client) ProjectID() string {
	return c.cfg.ProjectID
}

// AgentPath is the resource name of the project's agent.
func (c *Client) AgentPath() string {
	return fmt.Sprintf("projects/%s/agent", c.cfg.ProjectID)
}

func (c *Client) SessionPath(sessionID string) string {
	return fmt.Sprintf("%s/sessions/%s", c.AgentPath(), sessionID)
}

func (c *Client) ContextPath(sessionID, contextName string) string {
	return fmt.Sprintf("%s/contexts/%s", c.SessionPath(sessionID), contextName)
}

// NewSessionID returns a random session id: a UUID without dashes.
func NewSessionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
