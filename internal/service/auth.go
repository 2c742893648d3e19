package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/eventhub/backend/internal/config"
	"github.com/eventhub/backend/internal/db"
	"github.com/eventhub/backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxNameLength     = 50
	minPasswordLength = 8
	passwordSymbols   = "@$!%*?&"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var ErrMisconfigured = errors.New("auth config invalid")

// UserStore is the slice of the credential store local authentication needs.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type AuthService struct {
	store     UserStore
	jwtSecret []byte
	tokenTTL  time.Duration
}

type sessionClaims struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsStaff bool   `json:"is_staff"`
	Name    string `json:"name"`
	jwt.RegisteredClaims
}

func NewAuthService(store UserStore, cfg config.AuthConfig) (*AuthService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET is required", ErrMisconfigured)
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &AuthService{
		store:     store,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  ttl,
	}, nil
}

// Register creates a local account and returns it with a fresh session
// token. The email pre-check is advisory; the users.email unique
// constraint is the authoritative guard, and a violation from the
// insert maps to the same conflict error.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	if strings.TrimSpace(name) == "" || len(name) > maxNameLength {
		return nil, "", invalid("Invalid name.")
	}
	if !emailPattern.MatchString(email) {
		return nil, "", invalid("Invalid email format.")
	}
	if !isStrongPassword(password) {
		return nil, "", invalid("Password does not meet complexity requirements.")
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !db.IsNoRows(err) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user, err := s.store.CreateUser(ctx, name, email, string(hash))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies local credentials. An unknown email and a wrong
// password produce the same error so callers cannot probe which
// addresses are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if !emailPattern.MatchString(email) {
		return nil, "", invalid("Invalid email format.")
	}
	if password == "" {
		return nil, "", invalid("Password is required.")
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IssueToken signs a session token carrying a snapshot of the user's
// identity. Claims are not refreshed until re-authentication.
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		ID:      user.ID,
		Email:   user.Email,
		IsStaff: user.IsStaff,
		Name:    user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *AuthService) VerifyToken(tokenStr string) (*model.AuthUser, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenSignature
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenSignature
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	return &model.AuthUser{
		ID:      claims.ID,
		Email:   claims.Email,
		Name:    claims.Name,
		IsStaff: claims.IsStaff,
	}, nil
}

// isStrongPassword requires at least 8 characters with one lowercase,
// one uppercase, one digit, and one symbol from the allowed set.
func isStrongPassword(password string) bool {
	if len(password) < minPasswordLength {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}
