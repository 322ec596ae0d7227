package intentService

import (
	"IntentBridge/internal/api/intent"
	contextPkg "IntentBridge/pkg/context"
	"IntentBridge/pkg/intent"
	"IntentBridge/pkg/redis"
	"IntentBridge/pkg/response"
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

func (s *intentService) cacheKey() string {
	return fmt.Sprintf("intentbridge:intents:%s", s.source.ProjectID())
}

// snapshot returns the published registry, loading it on first use.
func (s *intentService) snapshot(ctx context.Context) (*snapshot, error) {
	s.mu.RLock()
	cur := s.current
	s.mu.RUnlock()
	if cur != nil {
		return cur, nil
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.RLock()
	cur = s.current
	s.mu.RUnlock()
	if cur != nil {
		return cur, nil
	}

	return s.load(ctx, true)
}

// reload drops the cached copy and publishes a registry fetched from the agent.
func (s *intentService) reload(ctx context.Context) (*snapshot, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	if s.cache != nil {
		if err := s.cache.DeleteSnapshot(ctx, s.cacheKey()); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"error":      err.Error(),
			}).Warn("Failed to invalidate intent cache")
		}
	}

	return s.load(ctx, false)
}

// load must be called with loadMu held.
func (s *intentService) load(ctx context.Context, useCache bool) (*snapshot, error) {
	requestID := contextPkg.GetRequestID(ctx)

	records, fromCache := s.readCache(ctx, useCache)
	if !fromCache {
		var err error
		records, err = s.source.ListIntents(ctx)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to list intents from agent")
			return nil, response.Wrap(intents.ErrIntentSourceFailed, err)
		}
		s.writeCache(ctx, records)
	}

	snap := buildSnapshot(records)

	fields := logrus.Fields{
		"request_id": requestID,
		"intents":    snap.registry.Len(),
		"from_cache": fromCache,
	}
	if snap.linkErr != nil {
		fields["error"] = snap.linkErr.Error()
		s.log.WithFields(fields).Warn("Intent tree linked with errors")
	} else {
		s.log.WithFields(fields).Info("Intent registry loaded")
	}

	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()

	return snap, nil
}

func buildSnapshot(records []*intent.Record) *snapshot {
	registry := intent.NewRegistry()
	registry.Ingest(records)

	linkErr := registry.LinkParents()
	if errors.Is(linkErr, intent.ErrNotIngested) {
		linkErr = nil
	}

	return &snapshot{
		registry: registry,
		linkErr:  linkErr,
		loadedAt: time.Now(),
	}
}

func (s *intentService) readCache(ctx context.Context, useCache bool) ([]*intent.Record, bool) {
	if !useCache || s.cache == nil {
		return nil, false
	}

	data, err := s.cache.GetSnapshot(ctx, s.cacheKey())
	if err != nil {
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"error":      err.Error(),
			}).Warn("Intent cache read failed")
		}
		return nil, false
	}

	var records []*intent.Record
	if err := jsoniter.Unmarshal(data, &records); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Intent cache entry is corrupt")
		return nil, false
	}

	return records, true
}

func (s *intentService) writeCache(ctx context.Context, records []*intent.Record) {
	if s.cache == nil {
		return
	}

	data, err := jsoniter.Marshal(records)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Failed to encode intents for cache")
		return
	}

	if err := s.cache.SetSnapshot(ctx, s.cacheKey(), data, s.cacheTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Failed to write intent cache")
	}
}

// linkErrorStrings flattens a joined link error into one message per failure.
func linkErrorStrings(err error) []string {
	if err == nil {
		return nil
	}

	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []string{err.Error()}
	}

	var out []string
	for _, e := range joined.Unwrap() {
		out = append(out, linkErrorStrings(e)...)
	}
	return out
}
