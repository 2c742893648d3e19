package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/eventhub/backend/internal/config"
	"github.com/eventhub/backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeUserStore struct {
	users map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, name, email, passwordHash string) (*model.User, error) {
	if _, ok := f.users[email]; ok {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	user := &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.users[email] = user
	return user, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	if user, ok := f.users[email]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserStore) {
	t.Helper()
	store := newFakeUserStore()
	svc, err := NewAuthService(store, config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	})
	if err != nil {
		t.Fatalf("NewAuthService() error = %v", err)
	}
	return svc, store
}

func TestNewAuthServiceRequiresSecret(t *testing.T) {
	_, err := NewAuthService(newFakeUserStore(), config.AuthConfig{TokenTTL: time.Hour})
	if !errors.Is(err, ErrMisconfigured) {
		t.Fatalf("expected ErrMisconfigured, got %v", err)
	}
}

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "valid", password: "Abc12345!", want: true},
		{name: "too-short", password: "Ab1!", want: false},
		{name: "no-upper", password: "abc12345!", want: false},
		{name: "no-lower", password: "ABC12345!", want: false},
		{name: "no-digit", password: "Abcdefgh!", want: false},
		{name: "no-symbol", password: "Abc123456", want: false},
		{name: "symbol-outside-set", password: "Abc12345#", want: false},
		{name: "all-symbols-accepted", password: "Abc1@$!%*?&", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isStrongPassword(tt.password); got != tt.want {
				t.Fatalf("isStrongPassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestAuthService(t)

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantMsg  string
	}{
		{name: "empty-name", userName: "   ", email: "a@x.com", password: "Abc12345!", wantMsg: "Invalid name."},
		{name: "long-name", userName: strings.Repeat("a", 51), email: "a@x.com", password: "Abc12345!", wantMsg: "Invalid name."},
		{name: "bad-email", userName: "Ana", email: "not-an-email", password: "Abc12345!", wantMsg: "Invalid email format."},
		{name: "email-missing-tld", userName: "Ana", email: "a@x", password: "Abc12345!", wantMsg: "Invalid email format."},
		{name: "weak-password", userName: "Ana", email: "a@x.com", password: "password", wantMsg: "Password does not meet complexity requirements."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Message != tt.wantMsg {
				t.Fatalf("message = %q, want %q", vErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "Ana", "ana@x.com", "Abc12345!")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.IsStaff {
		t.Fatal("new users must not be staff")
	}
	if user.PasswordHash == "Abc12345!" {
		t.Fatal("password stored in plaintext")
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if claims.ID != user.ID || claims.Email != "ana@x.com" || claims.Name != "Ana" || claims.IsStaff {
		t.Fatalf("claims = %+v, want snapshot of %+v", claims, user)
	}

	_, loginToken, err := svc.Login(ctx, "ana@x.com", "Abc12345!")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	loginClaims, err := svc.VerifyToken(loginToken)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if loginClaims.Email != "ana@x.com" {
		t.Fatalf("login claims email = %q, want %q", loginClaims.Email, "ana@x.com")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, store := newTestAuthService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Ana", "ana@x.com", "Abc12345!"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	if _, _, err := svc.Register(ctx, "Ana", "ana@x.com", "Abc12345!"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(store.users) != 1 {
		t.Fatalf("store has %d users, want 1", len(store.users))
	}
}

func TestLoginUniformFailure(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Ana", "ana@x.com", "Abc12345!"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, _, wrongPassword := svc.Login(ctx, "ana@x.com", "wrong")
	_, _, unknownEmail := svc.Login(ctx, "ghost@x.com", "Abc12345!")

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPassword != unknownEmail {
		t.Fatal("wrong-password and unknown-email must be indistinguishable")
	}
}

func TestVerifyTokenFailures(t *testing.T) {
	svc, _ := newTestAuthService(t)
	user := &model.User{ID: uuid.NewString(), Name: "Ana", Email: "ana@x.com"}

	t.Run("malformed", func(t *testing.T) {
		if _, err := svc.VerifyToken("not-a-token"); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("expected ErrTokenMalformed, got %v", err)
		}
	})

	t.Run("wrong-secret", func(t *testing.T) {
		other, err := NewAuthService(newFakeUserStore(), config.AuthConfig{
			JWTSecret: "other-secret",
			TokenTTL:  time.Hour,
		})
		if err != nil {
			t.Fatalf("NewAuthService() error = %v", err)
		}
		token, err := other.IssueToken(user)
		if err != nil {
			t.Fatalf("IssueToken() error = %v", err)
		}
		if _, err := svc.VerifyToken(token); !errors.Is(err, ErrTokenSignature) {
			t.Fatalf("expected ErrTokenSignature, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		now := time.Now().Add(-2 * time.Second)
		claims := sessionClaims{
			ID:    user.ID,
			Email: user.Email,
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Second)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.jwtSecret)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		if _, err := svc.VerifyToken(token); !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("fresh-token-accepted", func(t *testing.T) {
		token, err := svc.IssueToken(user)
		if err != nil {
			t.Fatalf("IssueToken() error = %v", err)
		}
		if _, err := svc.VerifyToken(token); err != nil {
			t.Fatalf("VerifyToken() error = %v", err)
		}
	})
}
