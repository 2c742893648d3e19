package db

import (
	"context"

	"github.com/google/uuid"
)

func (db *Postgres) SignupExists(ctx context.Context, userID, eventID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM event_signups WHERE user_id = $1 AND event_id = $2)`

	var exists bool
	if err := db.Pool.QueryRow(ctx, query, userID, eventID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (db *Postgres) CreateSignup(ctx context.Context, userID, eventID string) error {
	query := `
		INSERT INTO event_signups (id, user_id, event_id, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	_, err := db.Pool.Exec(ctx, query, uuid.NewString(), userID, eventID)
	return err
}
