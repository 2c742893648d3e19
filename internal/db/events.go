package db

import (
	"context"
	"time"

	"github.com/eventhub/backend/internal/model"
	"github.com/google/uuid"
)

const eventColumns = `id, title, description, date, location, img, created_by, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*model.Event, error) {
	var e model.Event
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.Date,
		&e.Location,
		&e.Img,
		&e.CreatedBy,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (db *Postgres) GetEventList(ctx context.Context) ([]model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date ASC`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if list == nil {
		list = []model.Event{}
	}
	return list, nil
}

func (db *Postgres) GetEventByID(ctx context.Context, id string) (*model.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(db.Pool.QueryRow(ctx, query, id))
}

func (db *Postgres) CreateEvent(ctx context.Context, title string, description *string, date time.Time, location, img *string, createdBy string) (*model.Event, error) {
	query := `
		INSERT INTO events (id, title, description, date, location, img, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + eventColumns
	return scanEvent(db.Pool.QueryRow(ctx, query, uuid.NewString(), title, description, date, location, img, createdBy))
}

func (db *Postgres) UpdateEvent(ctx context.Context, id, title string, description *string, date time.Time, location, img *string) (*model.Event, error) {
	query := `
		UPDATE events
		SET title = $2, description = $3, date = $4, location = $5, img = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + eventColumns
	return scanEvent(db.Pool.QueryRow(ctx, query, id, title, description, date, location, img))
}

func (db *Postgres) DeleteEvent(ctx context.Context, id string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	return err
}
