package profiles

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new profile repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// finds a user's profile. a missing row maps to the free plan.
func (r *Repository) FindByUser(ctx context.Context, userID string) (*Profile, error) {
	var p Profile

	err := r.db.QueryRow(ctx, queryFindByUser, userID).Scan(
		&p.UserID,
		&p.Plan,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return &Profile{UserID: userID, Plan: "free"}, nil
	}

	if err != nil {
		return nil, err
	}

	return &p, nil
}

// returns the user's plan tier
func (r *Repository) GetPlan(ctx context.Context, userID string) (string, error) {
	profile, err := r.FindByUser(ctx, userID)
	if err != nil {
		return "", err
	}

	return profile.Plan, nil
}

// creates the free-plan profile row at signup if it doesn't exist yet
func (r *Repository) EnsureExists(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx, queryEnsureExists, userID)
	return err
}

// persists a plan change (billing webhook or validated user request).
// upserts so a webhook arriving before the user's first login still applies.
func (r *Repository) UpdatePlan(ctx context.Context, userID, plan string) (*Profile, error) {
	var p Profile

	err := r.db.QueryRow(ctx, queryUpdatePlan, userID, plan).Scan(
		&p.UserID,
		&p.Plan,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &p, nil
}
