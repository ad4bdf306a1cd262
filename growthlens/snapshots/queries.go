package snapshots

const (
	// the unique index on (account_id, snapshot_day) makes the insert a no-op
	// when a snapshot already exists for the day, even under concurrent refreshes
	queryInsert = `
		INSERT INTO account_snapshots (
			account_id, recorded_at, snapshot_day,
			follower_count, engagement_count, video_count
		)
		VALUES ($1, $2, ($2 AT TIME ZONE 'UTC')::date, $3, $4, $5)
		ON CONFLICT (account_id, snapshot_day) DO NOTHING
	`

	queryExistsSince = `
		SELECT EXISTS (
			SELECT 1
			FROM account_snapshots
			WHERE account_id = $1 AND recorded_at >= $2
		)
	`

	// most recent N points, returned in ascending time order for charting
	queryListByAccount = `
		SELECT id, account_id, recorded_at, follower_count, engagement_count, video_count
		FROM (
			SELECT id, account_id, recorded_at, follower_count, engagement_count, video_count
			FROM account_snapshots
			WHERE account_id = $1
			ORDER BY recorded_at DESC
			LIMIT $2
		) recent
		ORDER BY recorded_at ASC
	`
)
