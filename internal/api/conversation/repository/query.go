package conversationRepository

const (
	queryCreateQueryLog = `
		INSERT INTO query_logs (
			id,
			session_id,
			query_text,
			intent_name,
			intent_display_name,
			confidence,
			fulfillment_text,
			parameters,
			created_at
		) VALUES (
			:id,
			:session_id,
			:query_text,
			:intent_name,
			:intent_display_name,
			:confidence,
			:fulfillment_text,
			CAST(:parameters AS JSON),
			:created_at
		)
	`

	queryGetQueryLogsBySession = `
		SELECT
			id,
			session_id,
			query_text,
			intent_name,
			intent_display_name,
			confidence,
			fulfillment_text,
			parameters,
			created_at
		FROM query_logs
		WHERE session_id = :session_id
		ORDER BY created_at DESC, id DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountQueryLogsBySession = `
		SELECT COUNT(*)
		FROM query_logs
		WHERE session_id = :session_id
	`
)
