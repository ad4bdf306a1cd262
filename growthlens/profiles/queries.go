package profiles

const (
	queryFindByUser = `
		SELECT user_id, plan, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	queryEnsureExists = `
		INSERT INTO profiles (user_id, plan)
		VALUES ($1, 'free')
		ON CONFLICT (user_id) DO NOTHING
	`

	queryUpdatePlan = `
		INSERT INTO profiles (user_id, plan)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET plan = EXCLUDED.plan, updated_at = NOW()
		RETURNING user_id, plan, created_at, updated_at
	`
)
