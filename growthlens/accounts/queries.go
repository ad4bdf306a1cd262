package accounts

const (
	accountColumns = `id, user_id, platform, external_id, title, avatar_url,
		follower_count, engagement_count, video_count, last_synced_at,
		access_token, refresh_token, token_expires_at, created_at, updated_at`

	queryListByUser = `
		SELECT ` + accountColumns + `
		FROM connected_accounts
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	queryListAll = `
		SELECT ` + accountColumns + `
		FROM connected_accounts
		ORDER BY last_synced_at ASC NULLS FIRST
	`

	queryCountByUser = `
		SELECT COUNT(*)
		FROM connected_accounts
		WHERE user_id = $1
	`

	queryFindByID = `
		SELECT ` + accountColumns + `
		FROM connected_accounts
		WHERE user_id = $1 AND id = $2
	`

	queryFindByExternalID = `
		SELECT ` + accountColumns + `
		FROM connected_accounts
		WHERE user_id = $1 AND platform = $2 AND external_id = $3
	`

	queryInsert = `
		INSERT INTO connected_accounts (
			user_id, platform, external_id, title, avatar_url,
			follower_count, engagement_count, video_count, last_synced_at,
			access_token, refresh_token, token_expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + accountColumns + `
	`

	queryUpdateMetrics = `
		UPDATE connected_accounts
		SET title = $2, avatar_url = $3, follower_count = $4, engagement_count = $5,
			video_count = $6, last_synced_at = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + accountColumns + `
	`

	queryUpdateTokens = `
		UPDATE connected_accounts
		SET access_token = $2, refresh_token = $3, token_expires_at = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + accountColumns + `
	`

	queryDelete = `
		DELETE FROM connected_accounts
		WHERE user_id = $1 AND id = $2
	`
)
