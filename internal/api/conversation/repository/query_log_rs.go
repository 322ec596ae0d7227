package conversationRepository

import (
	"IntentBridge/internal/entity"
	contextPkg "IntentBridge/pkg/context"
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func (r *queryLogsRepository) CreateQueryLog(ctx context.Context, entry entity.QueryLog) error {
	requestID := contextPkg.GetRequestID(ctx)

	parameters := string(entry.Parameters)
	if parameters == "" {
		parameters = "{}"
	}

	argsKV := map[string]interface{}{
		"id":                  entry.ID,
		"session_id":          entry.SessionID,
		"query_text":          entry.QueryText,
		"intent_name":         entry.IntentName,
		"intent_display_name": entry.IntentDisplayName,
		"confidence":          entry.Confidence,
		"fulfillment_text":    entry.FulfillmentText,
		"parameters":          parameters,
		"created_at":          entry.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateQueryLog, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateQueryLog")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating query log")
		return err
	}

	return nil
}

func (r *queryLogsRepository) GetQueryLogsBySession(ctx context.Context, sessionID string, limit, offset int) ([]entity.QueryLog, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var total int

	countQuery, countArgs, err := sqlx.Named(queryCountQueryLogsBySession, map[string]interface{}{
		"session_id": sessionID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountQueryLogsBySession named query preparation err")
		return nil, 0, err
	}
	countQuery = r.q.Rebind(countQuery)

	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountQueryLogsBySession execution err")
		return nil, 0, err
	}

	query, args, err := sqlx.Named(queryGetQueryLogsBySession, map[string]interface{}{
		"session_id": sessionID,
		"limit":      limit,
		"offset":     offset,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetQueryLogsBySession named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	var logs []entity.QueryLog
	if err := r.q.SelectContext(ctx, &logs, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetQueryLogsBySession execution err")
		return nil, 0, err
	}

	return logs, total, nil
}
