package model

import "time"

type User struct {
	ID                 string
	Name               string
	Email              string
	PasswordHash       string
	IsStaff            bool
	GoogleAccessToken  *string
	GoogleRefreshToken *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// AuthUser is the identity decoded from a session token and attached
// to the request context by the auth middleware.
type AuthUser struct {
	ID      string
	Email   string
	Name    string
	IsStaff bool
}
