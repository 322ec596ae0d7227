package intentService

import (
	"IntentBridge/internal/api/intent"
	contextPkg "IntentBridge/pkg/context"
	"IntentBridge/pkg/intent"
	"IntentBridge/pkg/response"
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

func (s *intentService) ListIntents(ctx context.Context) (*intents.IntentListResponse, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	all := snap.registry.All()
	summaries := make([]intents.IntentSummary, 0, len(all))
	for _, it := range all {
		summaries = append(summaries, makeSummary(it))
	}

	return &intents.IntentListResponse{
		Intents:  summaries,
		Total:    len(summaries),
		LoadedAt: snap.loadedAt,
	}, nil
}

// GetIntentByName accepts a full intent path or a bare intent id.
func (s *intentService) GetIntentByName(ctx context.Context, name string) (*intents.IntentDetail, error) {
	name = strings.Trim(name, "/")
	if name == "" {
		return nil, intents.ErrInvalidIntentName
	}
	if !strings.Contains(name, "/") {
		name = fmt.Sprintf("projects/%s/agent/intents/%s", s.source.ProjectID(), name)
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	it, err := snap.registry.ByName(name)
	if err != nil {
		return nil, response.Wrap(intents.ErrIntentNotFound, err)
	}

	return makeDetail(snap.registry, it), nil
}

func (s *intentService) GetIntentByDisplayName(ctx context.Context, displayName string) (*intents.IntentDetail, error) {
	it, snap, err := s.byDisplayName(ctx, displayName)
	if err != nil {
		return nil, err
	}

	return makeDetail(snap.registry, it), nil
}

// FindByDisplayName returns the read-only view of an intent in the current snapshot.
func (s *intentService) FindByDisplayName(ctx context.Context, displayName string) (*intent.Intent, error) {
	it, _, err := s.byDisplayName(ctx, displayName)
	return it, err
}

func (s *intentService) byDisplayName(ctx context.Context, displayName string) (*intent.Intent, *snapshot, error) {
	if strings.TrimSpace(displayName) == "" {
		return nil, nil, intents.ErrInvalidDisplayName
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}

	it, err := snap.registry.ByDisplayName(displayName)
	if err != nil {
		return nil, nil, response.Wrap(intents.ErrIntentNotFound, err)
	}

	return it, snap, nil
}

func (s *intentService) GetTree(ctx context.Context) (*intents.TreeResponse, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	roots := snap.registry.Roots()
	resp := &intents.TreeResponse{
		Roots:                 make([]intents.TreeNode, 0, len(roots)),
		LinkErrors:            linkErrorStrings(snap.linkErr),
		DuplicateDisplayNames: snap.registry.DuplicateDisplayNames(),
	}

	for _, root := range roots {
		resp.Roots = append(resp.Roots, makeTreeNode(root, map[*intent.Intent]bool{}))
	}

	return resp, nil
}

func (s *intentService) Refresh(ctx context.Context) (*intents.RefreshResponse, error) {
	snap, err := s.reload(ctx)
	if err != nil {
		return nil, err
	}

	return &intents.RefreshResponse{
		Total:      snap.registry.Len(),
		LinkErrors: linkErrorStrings(snap.linkErr),
		LoadedAt:   snap.loadedAt,
	}, nil
}

// UpdateTrainingPhrases replaces the phrases of one intent on the agent and republishes the
// registry. The published snapshot is never edited in place.
func (s *intentService) UpdateTrainingPhrases(
	ctx context.Context,
	displayName string,
	req intents.UpdateTrainingPhrasesRequest,
) (*intents.IntentDetail, error) {
	requestID := contextPkg.GetRequestID(ctx)

	it, _, err := s.byDisplayName(ctx, displayName)
	if err != nil {
		return nil, err
	}

	record := withTrainingPhrases(it, req.Phrases)

	updated, err := s.source.UpdateIntent(ctx, record)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":   requestID,
			"display_name": displayName,
			"error":        err.Error(),
		}).Error("Failed to update intent training phrases")
		return nil, response.Wrap(intents.ErrUpdateIntent, err)
	}

	s.log.WithFields(logrus.Fields{
		"request_id":   requestID,
		"display_name": displayName,
		"phrases":      len(req.Phrases),
	}).Info("Intent training phrases updated")

	snap, err := s.reload(ctx)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Registry reload after update failed")
		detail := makeDetail(nil, intent.New(updated))
		return detail, nil
	}

	reloaded, err := snap.registry.ByName(updated.Name)
	if err != nil {
		return makeDetail(nil, intent.New(updated)), nil
	}

	return makeDetail(snap.registry, reloaded), nil
}

// BatchUpdateTrainingPhrases resolves every item against the current snapshot, sends the
// resolved ones in one batch and reports an outcome per item in request order.
func (s *intentService) BatchUpdateTrainingPhrases(
	ctx context.Context,
	req intents.BatchTrainingPhrasesRequest,
) (*intents.BatchTrainingPhrasesResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]intents.BatchItemResult, len(req.Items))
	seen := make(map[string]bool, len(req.Items))
	var records []*intent.Record
	var positions []int

	for i, item := range req.Items {
		results[i].DisplayName = item.DisplayName

		if seen[item.DisplayName] {
			results[i].Error = intents.ErrDuplicateBatchItem.Error()
			continue
		}
		seen[item.DisplayName] = true

		it, err := snap.registry.ByDisplayName(item.DisplayName)
		if err != nil {
			results[i].Error = err.Error()
			continue
		}

		results[i].Name = it.Name()
		records = append(records, withTrainingPhrases(it, item.Phrases))
		positions = append(positions, i)
	}

	if len(records) > 0 {
		if _, err := s.source.BatchUpdateIntents(ctx, records); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"intents":    len(records),
				"error":      err.Error(),
			}).Error("Batch intent update failed")

			msg := fmt.Sprintf("%s: %s", intents.ErrBatchUpdateIntents.Error(), err.Error())
			for _, pos := range positions {
				results[pos].Error = msg
			}
		} else {
			for _, pos := range positions {
				results[pos].OK = true
			}

			if _, err := s.reload(ctx); err != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      err.Error(),
				}).Warn("Registry reload after batch update failed")
			}
		}
	}

	resp := &intents.BatchTrainingPhrasesResponse{Results: results}
	for _, r := range results {
		if r.OK {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}

	return resp, nil
}

// withTrainingPhrases returns a copy of the intent's record carrying phrases.
func withTrainingPhrases(it *intent.Intent, phrases []string) *intent.Record {
	record := *it.Record()
	intent.New(&record).SetTrainingPhrases(phrases)
	return &record
}

func makeSummary(it *intent.Intent) intents.IntentSummary {
	messages := it.Messages()
	if messages == nil {
		messages = []string{}
	}

	phrases := it.TrainingPhrases()
	if phrases == nil {
		phrases = []string{}
	}

	return intents.IntentSummary{
		ID:              it.ID(),
		Name:            it.Name(),
		DisplayName:     it.DisplayName(),
		ParentName:      it.ParentName(),
		Action:          it.Record().Action,
		TrainingPhrases: phrases,
		Messages:        messages,
		HasMessages:     it.HasMessages(),
		InputContexts:   nonNil(it.InputContextNames()),
		OutputContexts:  nonNil(it.OutputContextNames()),
		FollowupCount:   len(it.Children()),
	}
}

// makeDetail adds followups and ancestors. registry may be nil for an intent that is not in
// the published snapshot.
func makeDetail(registry *intent.Registry, it *intent.Intent) *intents.IntentDetail {
	detail := &intents.IntentDetail{
		IntentSummary: makeSummary(it),
		Followups:     []string{},
		Ancestors:     []string{},
	}

	for _, child := range it.Children() {
		detail.Followups = append(detail.Followups, child.DisplayName())
	}

	if registry != nil {
		ancestors, err := registry.Ancestors(it.Name())
		if err == nil {
			for _, a := range ancestors {
				detail.Ancestors = append(detail.Ancestors, a.DisplayName())
			}
		}
	}

	return detail
}

func makeTreeNode(it *intent.Intent, visited map[*intent.Intent]bool) intents.TreeNode {
	visited[it] = true

	node := intents.TreeNode{
		Name:        it.Name(),
		DisplayName: it.DisplayName(),
		HasMessages: it.HasMessages(),
		Followups:   []intents.TreeNode{},
	}

	for _, child := range it.Children() {
		if visited[child] {
			continue
		}
		node.Followups = append(node.Followups, makeTreeNode(child, visited))
	}

	return node
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
