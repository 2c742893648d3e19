package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/eventhub/backend/internal/client"
	"github.com/eventhub/backend/internal/db"
	"github.com/eventhub/backend/internal/model"
	"golang.org/x/oauth2"
)

// CalendarStore is the slice of persistence the calendar action needs.
type CalendarStore interface {
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
	GetEventByID(ctx context.Context, id string) (*model.Event, error)
	UpdateGoogleAccessToken(ctx context.Context, userID, accessToken string) error
}

// TokenRefresher obtains a valid access token from the provider using
// a stored refresh token.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// CalendarInserter adds an event to the user's calendar.
type CalendarInserter interface {
	InsertEvent(ctx context.Context, accessToken string, event client.CalendarEvent) (string, error)
}

// CalendarService adds platform events to a user's Google Calendar,
// silently refreshing the stored access token first.
type CalendarService struct {
	store     CalendarStore
	refresher TokenRefresher
	inserter  CalendarInserter
}

func NewCalendarService(store CalendarStore, refresher TokenRefresher, inserter CalendarInserter) *CalendarService {
	return &CalendarService{
		store:     store,
		refresher: refresher,
		inserter:  inserter,
	}
}

// AddEvent inserts the given event into the user's primary calendar
// and returns the calendar link.
//
// Precondition errors are checked before the provider is contacted:
// ErrNotLinked when no access token is stored, ErrRefreshRequired when
// the refresh token is missing (the user must re-consent). Exactly one
// refresh grant is attempted per call; a rotated access token is
// persisted best-effort without blocking the insert.
func (s *CalendarService) AddEvent(ctx context.Context, userID, eventID string) (string, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if user.GoogleAccessToken == nil || *user.GoogleAccessToken == "" {
		return "", ErrNotLinked
	}
	if user.GoogleRefreshToken == nil || *user.GoogleRefreshToken == "" {
		return "", ErrRefreshRequired
	}

	event, err := s.store.GetEventByID(ctx, eventID)
	if err != nil {
		if db.IsNoRows(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	if event.Date.IsZero() {
		return "", invalid("Invalid event date.")
	}

	token, err := s.refresher.Refresh(ctx, *user.GoogleRefreshToken)
	if err != nil {
		return "", fmt.Errorf("access token refresh failed: %w", err)
	}

	if token.AccessToken != "" && token.AccessToken != *user.GoogleAccessToken {
		if err := s.store.UpdateGoogleAccessToken(context.WithoutCancel(ctx), userID, token.AccessToken); err != nil {
			log.Printf("calendar: failed to persist rotated access token for user %s: %v", userID, err)
		}
	}

	calEvent := client.NewCalendarEvent(
		event.Title,
		deref(event.Description),
		deref(event.Location),
		event.Date,
	)

	link, err := s.inserter.InsertEvent(ctx, token.AccessToken, calEvent)
	if err != nil {
		return "", fmt.Errorf("calendar insert failed: %w", err)
	}
	return link, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// OAuthRefresher implements TokenRefresher on top of the provider's
// token endpoint.
type OAuthRefresher struct {
	oauth *oauth2.Config
}

func NewOAuthRefresher(oauth *oauth2.Config) *OAuthRefresher {
	return &OAuthRefresher{oauth: oauth}
}

// Refresh performs one refresh-grant round trip. The token source is
// seeded with only the refresh token, so the provider decides whether
// to rotate the access token.
func (r *OAuthRefresher) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	seed := &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Minute),
	}
	return r.oauth.TokenSource(ctx, seed).Token()
}
