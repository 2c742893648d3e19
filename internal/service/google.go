package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/eventhub/backend/internal/config"
	"github.com/eventhub/backend/internal/db"
	"github.com/eventhub/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleIssuer = "https://accounts.google.com"

	// Federated-only accounts never log in with a password, but the
	// password_hash column is NOT NULL, so they get a hash of this
	// fixed placeholder.
	placeholderPassword = "google_oauth_password"
)

var ErrNoProfile = errors.New("no profile returned by provider")

// GoogleUserStore is the slice of the credential store federated login needs.
type GoogleUserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateGoogleUser(ctx context.Context, name, email, passwordHash, accessToken string, refreshToken *string) (*model.User, error)
	UpdateGoogleTokens(ctx context.Context, email, accessToken string, refreshToken *string) (*model.User, error)
}

// GoogleService drives the OAuth2 authorization-code flow against
// Google and reconciles the returned profile into the user store.
type GoogleService struct {
	store GoogleUserStore
	auth  *AuthService
	oauth *oauth2.Config

	mu       sync.Mutex
	verifier *oidc.IDTokenVerifier
}

type googleProfile struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func NewGoogleService(store GoogleUserStore, auth *AuthService, cfg config.GoogleConfig) *GoogleService {
	return &GoogleService{
		store: store,
		auth:  auth,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Endpoint:     google.Endpoint,
			Scopes: []string{
				"profile",
				"email",
				"https://www.googleapis.com/auth/calendar",
			},
		},
	}
}

// AuthCodeURL returns the consent-screen URL and the random state value
// the caller must carry across the redirect. Offline access with forced
// consent makes Google grant a refresh token on every approval, not
// just the first.
func (s *GoogleService) AuthCodeURL() (string, string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", "", err
	}
	state := base64.RawURLEncoding.EncodeToString(raw)

	url := s.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	return url, state, nil
}

// HandleCallback exchanges the authorization code, verifies the ID
// token, reconciles the profile against the store, and returns a
// session token for the reconciled user.
func (s *GoogleService) HandleCallback(ctx context.Context, code string) (string, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("code exchange failed: %w", err)
	}

	profile, err := s.verifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}

	var refreshToken *string
	if token.RefreshToken != "" {
		refreshToken = &token.RefreshToken
	}

	// Reconciliation runs to completion even if the client went away,
	// so a user row is never left half-updated.
	user, err := s.reconcile(context.WithoutCancel(ctx), profile, token.AccessToken, refreshToken)
	if err != nil {
		return "", err
	}

	return s.auth.IssueToken(user)
}

func (s *GoogleService) verifyIDToken(ctx context.Context, token *oauth2.Token) (googleProfile, error) {
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return googleProfile{}, ErrNoProfile
	}

	verifier, err := s.tokenVerifier(ctx)
	if err != nil {
		return googleProfile{}, fmt.Errorf("oidc provider unavailable: %w", err)
	}

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return googleProfile{}, fmt.Errorf("id token verification failed: %w", err)
	}

	var profile googleProfile
	if err := idToken.Claims(&profile); err != nil {
		return googleProfile{}, err
	}
	if profile.Email == "" {
		return googleProfile{}, ErrNoProfile
	}
	return profile, nil
}

// reconcile is a single logical read-modify-write per user: an unseen
// email creates the account, a known one always takes the new access
// token and takes the refresh token only when one was returned.
func (s *GoogleService) reconcile(ctx context.Context, profile googleProfile, accessToken string, refreshToken *string) (*model.User, error) {
	_, err := s.store.GetUserByEmail(ctx, profile.Email)
	if err != nil {
		if !db.IsNoRows(err) {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(placeholderPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		return s.store.CreateGoogleUser(ctx, profile.Name, profile.Email, string(hash), accessToken, refreshToken)
	}

	return s.store.UpdateGoogleTokens(ctx, profile.Email, accessToken, refreshToken)
}

func (s *GoogleService) tokenVerifier(ctx context.Context) (*oidc.IDTokenVerifier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.verifier != nil {
		return s.verifier, nil
	}

	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, err
	}
	s.verifier = provider.Verifier(&oidc.Config{ClientID: s.oauth.ClientID})
	return s.verifier, nil
}

// OAuthConfig exposes the provider client configuration for the
// calendar token refresher.
func (s *GoogleService) OAuthConfig() *oauth2.Config {
	return s.oauth
}
