package profiles

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles user profile database operations
type Repository struct {
	db *pgxpool.Pool
}

// holds a user's current subscription plan
type Profile struct {
	UserID    string    `json:"user_id"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
