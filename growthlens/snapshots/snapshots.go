package snapshots

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new snapshot repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// inserts a snapshot unless one already exists for the account's current day
func (r *Repository) Insert(ctx context.Context, params InsertParams) error {
	_, err := r.db.Exec(
		ctx,
		queryInsert,
		params.AccountID,
		params.RecordedAt,
		params.FollowerCount,
		params.EngagementCount,
		params.VideoCount,
	)

	return err
}

// reports whether a snapshot exists for the account at or after the given time
func (r *Repository) ExistsSince(ctx context.Context, accountID string, since time.Time) (bool, error) {
	var exists bool

	err := r.db.QueryRow(ctx, queryExistsSince, accountID, since).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// returns up to limit of the most recent snapshots, oldest first
func (r *Repository) ListByAccount(ctx context.Context, accountID string, limit int) ([]Snapshot, error) {
	rows, err := r.db.Query(ctx, queryListByAccount, accountID, limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	list := []Snapshot{}

	for rows.Next() {
		var s Snapshot

		err := rows.Scan(
			&s.ID,
			&s.AccountID,
			&s.RecordedAt,
			&s.FollowerCount,
			&s.EngagementCount,
			&s.VideoCount,
		)
		if err != nil {
			return nil, err
		}

		list = append(list, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
