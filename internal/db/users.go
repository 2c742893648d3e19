package db

import (
	"context"

	"github.com/eventhub/backend/internal/model"
	"github.com/google/uuid"
)

const userColumns = `id, name, email, password_hash, is_staff,
	google_access_token, google_refresh_token, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.IsStaff,
		&user.GoogleAccessToken,
		&user.GoogleRefreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) CreateUser(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	query := `
		INSERT INTO users (id, name, email, password_hash, is_staff, created_at, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW(), NOW())
		RETURNING ` + userColumns
	return scanUser(db.Pool.QueryRow(ctx, query, uuid.NewString(), name, email, passwordHash))
}

// CreateGoogleUser inserts a user created on first federated login,
// carrying the provider token pair.
func (db *Postgres) CreateGoogleUser(ctx context.Context, name, email, passwordHash, accessToken string, refreshToken *string) (*model.User, error) {
	query := `
		INSERT INTO users (id, name, email, password_hash, is_staff,
			google_access_token, google_refresh_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, $5, $6, NOW(), NOW())
		RETURNING ` + userColumns
	return scanUser(db.Pool.QueryRow(ctx, query, uuid.NewString(), name, email, passwordHash, accessToken, refreshToken))
}

func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, email))
}

func (db *Postgres) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, userID))
}

// UpdateGoogleTokens overwrites the stored access token and, only when
// refreshToken is non-nil, the stored refresh token. Google omits the
// refresh token on re-consent, so an absent one must not erase a
// previously granted value.
func (db *Postgres) UpdateGoogleTokens(ctx context.Context, email, accessToken string, refreshToken *string) (*model.User, error) {
	query := `
		UPDATE users
		SET google_access_token = $2,
			google_refresh_token = COALESCE($3, google_refresh_token),
			updated_at = NOW()
		WHERE email = $1
		RETURNING ` + userColumns
	return scanUser(db.Pool.QueryRow(ctx, query, email, accessToken, refreshToken))
}

func (db *Postgres) UpdateGoogleAccessToken(ctx context.Context, userID, accessToken string) error {
	query := `
		UPDATE users
		SET google_access_token = $2, updated_at = NOW()
		WHERE id = $1
	`
	_, err := db.Pool.Exec(ctx, query, userID, accessToken)
	return err
}
