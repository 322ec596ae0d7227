package intentService

import (
	"IntentBridge/internal/api/intent"
	"IntentBridge/pkg/intent"
	"IntentBridge/pkg/redis"
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// IntentSource is the agent the intents are read from and written back to.
type IntentSource interface {
	ProjectID() string
	ListIntents(ctx context.Context) ([]*intent.Record, error)
	UpdateIntent(ctx context.Context, record *intent.Record) (*intent.Record, error)
	BatchUpdateIntents(ctx context.Context, records []*intent.Record) ([]*intent.Record, error)
}

type IIntentService interface {
	ListIntents(ctx context.Context) (*intents.IntentListResponse, error)
	GetIntentByName(ctx context.Context, name string) (*intents.IntentDetail, error)
	GetIntentByDisplayName(ctx context.Context, displayName string) (*intents.IntentDetail, error)
	GetTree(ctx context.Context) (*intents.TreeResponse, error)
	Refresh(ctx context.Context) (*intents.RefreshResponse, error)
	UpdateTrainingPhrases(ctx context.Context, displayName string, req intents.UpdateTrainingPhrasesRequest) (*intents.IntentDetail, error)
	BatchUpdateTrainingPhrases(ctx context.Context, req intents.BatchTrainingPhrasesRequest) (*intents.BatchTrainingPhrasesResponse, error)
	FindByDisplayName(ctx context.Context, displayName string) (*intent.Intent, error)
}

// snapshot is a linked registry that is never modified once published.
type snapshot struct {
	registry *intent.Registry
	linkErr  error
	loadedAt time.Time
}

type intentService struct {
	log      *logrus.Logger
	source   IntentSource
	cache    redis.IRedis
	cacheTTL time.Duration

	mu      sync.RWMutex
	current *snapshot

	// loadMu serializes agent fetches so concurrent cold reads trigger one load.
	loadMu sync.Mutex
}

// NewIntentService builds the service. cache may be nil, in which case every load goes to
// the agent.
func NewIntentService(
	log *logrus.Logger,
	source IntentSource,
	cache redis.IRedis,
	cacheTTL time.Duration,
) IIntentService {
	return &intentService{
		log:      log,
		source:   source,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}
