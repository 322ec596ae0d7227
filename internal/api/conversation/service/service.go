package conversationService

import (
	"IntentBridge/internal/api/conversation"
	conversationRepository "IntentBridge/internal/api/conversation/repository"
	"IntentBridge/pkg/dialogflow"
	"IntentBridge/pkg/intent"
	"IntentBridge/pkg/utils"
	"context"

	"github.com/sirupsen/logrus"
)

// Agent is the session side of the agent client.
type Agent interface {
	DetectIntent(ctx context.Context, sessionID, query string, contextNames []string) (*dialogflow.DetectResult, error)
	ListContexts(ctx context.Context, sessionID string) ([]*dialogflow.Context, error)
	CreateContexts(ctx context.Context, sessionID string, contextNames []string) []dialogflow.Result[*dialogflow.Context]
}

// IntentLookup resolves the intent a webhook call was made for.
type IntentLookup interface {
	FindByDisplayName(ctx context.Context, displayName string) (*intent.Intent, error)
}

type IConversationService interface {
	DetectIntent(ctx context.Context, req conversation.DetectIntentRequest) (*conversation.DetectIntentResponse, error)
	ListContexts(ctx context.Context, sessionID string) (*conversation.ContextListResponse, error)
	CreateContexts(ctx context.Context, sessionID string, req conversation.CreateContextsRequest) (*conversation.CreateContextsResponse, error)
	GetHistory(ctx context.Context, sessionID string, page, limit int) (*conversation.HistoryResponse, error)
	Fulfill(ctx context.Context, req conversation.WebhookRequest) (*conversation.WebhookResponse, error)
}

type conversationService struct {
	log     *logrus.Logger
	agent   Agent
	intents IntentLookup
	repo    conversationRepository.Repository
	utils   utils.IUtils
}

// NewConversationService builds the service. repo may be nil, which disables query history.
func NewConversationService(
	log *logrus.Logger,
	agent Agent,
	intents IntentLookup,
	repo conversationRepository.Repository,
	utils utils.IUtils,
) IConversationService {
	return &conversationService{
		log:     log,
		agent:   agent,
		intents: intents,
		repo:    repo,
		utils:   utils,
	}
}
