package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("account not found")
)

// creates a new account repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// lists all connected accounts for a user, both platforms, oldest first
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Account, error) {
	rows, err := r.db.Query(ctx, queryListByUser, userID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	return scanAccounts(rows)
}

// lists every connected account in the system, least recently synced first.
// used by the periodic refresh trigger.
func (r *Repository) ListAll(ctx context.Context) ([]Account, error) {
	rows, err := r.db.Query(ctx, queryListAll)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	return scanAccounts(rows)
}

// counts a user's connected accounts for quota checks
func (r *Repository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int

	err := r.db.QueryRow(ctx, queryCountByUser, userID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// finds an account by internal id, scoped to its owner
func (r *Repository) FindByID(ctx context.Context, userID, id string) (*Account, error) {
	account, err := scanAccountRow(r.db.QueryRow(ctx, queryFindByID, userID, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return account, nil
}

// finds an account by its platform-native id.
// returns nil without error when no such account is connected.
func (r *Repository) FindByExternalID(ctx context.Context, userID, platform, externalID string) (*Account, error) {
	account, err := scanAccountRow(r.db.QueryRow(ctx, queryFindByExternalID, userID, platform, externalID))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return account, nil
}

// inserts a new connected account
func (r *Repository) Insert(ctx context.Context, params InsertParams) (*Account, error) {
	return scanAccountRow(r.db.QueryRow(
		ctx,
		queryInsert,
		params.UserID,
		params.Platform,
		params.ExternalID,
		params.Title,
		params.AvatarURL,
		params.Metrics.FollowerCount,
		params.Metrics.EngagementCount,
		params.Metrics.VideoCount,
		params.LastSyncedAt,
		params.AccessToken,
		params.RefreshToken,
		params.TokenExpiresAt,
	))
}

// overwrites an account's metrics and sync timestamp after a successful fetch
func (r *Repository) UpdateMetrics(
	ctx context.Context,
	id, title, avatarURL string,
	metrics Metrics,
	syncedAt time.Time,
) (*Account, error) {
	return scanAccountRow(r.db.QueryRow(
		ctx,
		queryUpdateMetrics,
		id,
		title,
		avatarURL,
		metrics.FollowerCount,
		metrics.EngagementCount,
		metrics.VideoCount,
		syncedAt,
	))
}

// persists a rotated token pair and its expiry in a single update
func (r *Repository) UpdateTokens(
	ctx context.Context,
	id, accessToken, refreshToken string,
	expiresAt time.Time,
) (*Account, error) {
	return scanAccountRow(r.db.QueryRow(
		ctx,
		queryUpdateTokens,
		id,
		accessToken,
		refreshToken,
		expiresAt,
	))
}

// deletes an account, scoped to its owner. snapshots are retained.
func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.db.Exec(ctx, queryDelete, userID, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// scans a single account row
func scanAccountRow(row pgx.Row) (*Account, error) {
	var a Account

	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Platform,
		&a.ExternalID,
		&a.Title,
		&a.AvatarURL,
		&a.FollowerCount,
		&a.EngagementCount,
		&a.VideoCount,
		&a.LastSyncedAt,
		&a.AccessToken,
		&a.RefreshToken,
		&a.TokenExpiresAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &a, nil
}

// scans all rows from an account query
func scanAccounts(rows pgx.Rows) ([]Account, error) {
	list := []Account{}

	for rows.Next() {
		account, err := scanAccountRow(rows)
		if err != nil {
			return nil, err
		}

		list = append(list, *account)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
