package db

import "context"

func (db *Postgres) EnsureSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			is_staff BOOLEAN NOT NULL DEFAULT FALSE,
			google_access_token TEXT,
			google_refresh_token TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS events (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			date TIMESTAMPTZ NOT NULL,
			location TEXT,
			img TEXT,
			created_by UUID NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS event_categories (
			id UUID PRIMARY KEY,
			event_id UUID NOT NULL REFERENCES events(id),
			category_id UUID NOT NULL REFERENCES categories(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`
		CREATE TABLE IF NOT EXISTS event_signups (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			event_id UUID NOT NULL REFERENCES events(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, event_id)
		)
		`,
		`CREATE INDEX IF NOT EXISTS event_signups_event_id_idx ON event_signups(event_id)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}
