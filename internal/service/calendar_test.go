package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eventhub/backend/internal/client"
	"github.com/eventhub/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/oauth2"
)

type fakeCalendarStore struct {
	user       *model.User
	event      *model.Event
	saved      string
	saveErr    error
	saveCalled bool
}

func (f *fakeCalendarStore) GetUserByID(_ context.Context, userID string) (*model.User, error) {
	if f.user == nil || f.user.ID != userID {
		return nil, pgx.ErrNoRows
	}
	return f.user, nil
}

func (f *fakeCalendarStore) GetEventByID(_ context.Context, id string) (*model.Event, error) {
	if f.event == nil || f.event.ID != id {
		return nil, pgx.ErrNoRows
	}
	return f.event, nil
}

func (f *fakeCalendarStore) UpdateGoogleAccessToken(_ context.Context, _, accessToken string) error {
	f.saveCalled = true
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = accessToken
	return nil
}

type fakeRefresher struct {
	token  *oauth2.Token
	err    error
	called int
}

func (f *fakeRefresher) Refresh(_ context.Context, _ string) (*oauth2.Token, error) {
	f.called++
	if f.err != nil {
		return nil, f.err
	}
	return f.token, nil
}

type fakeInserter struct {
	gotToken string
	gotEvent client.CalendarEvent
	link     string
	err      error
	called   int
}

func (f *fakeInserter) InsertEvent(_ context.Context, accessToken string, event client.CalendarEvent) (string, error) {
	f.called++
	f.gotToken = accessToken
	f.gotEvent = event
	if f.err != nil {
		return "", f.err
	}
	return f.link, nil
}

func calendarFixtures() (*fakeCalendarStore, *fakeRefresher, *fakeInserter) {
	access := "access-1"
	refresh := "refresh-1"
	userID := uuid.NewString()
	eventID := uuid.NewString()
	store := &fakeCalendarStore{
		user: &model.User{
			ID:                 userID,
			Email:              "ana@x.com",
			GoogleAccessToken:  &access,
			GoogleRefreshToken: &refresh,
		},
		event: &model.Event{
			ID:    eventID,
			Title: "Launch party",
			Date:  time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC),
		},
	}
	refresher := &fakeRefresher{token: &oauth2.Token{AccessToken: "access-1"}}
	inserter := &fakeInserter{link: "https://calendar.google.com/event?eid=abc"}
	return store, refresher, inserter
}

func TestAddEventNotLinked(t *testing.T) {
	store, refresher, inserter := calendarFixtures()
	store.user.GoogleAccessToken = nil
	svc := NewCalendarService(store, refresher, inserter)

	_, err := svc.AddEvent(context.Background(), store.user.ID, store.event.ID)
	if !errors.Is(err, ErrNotLinked) {
		t.Fatalf("expected ErrNotLinked, got %v", err)
	}
	if refresher.called != 0 {
		t.Fatal("provider must not be contacted")
	}
}

func TestAddEventRefreshRequired(t *testing.T) {
	store, refresher, inserter := calendarFixtures()
	store.user.GoogleRefreshToken = nil
	svc := NewCalendarService(store, refresher, inserter)

	_, err := svc.AddEvent(context.Background(), store.user.ID, store.event.ID)
	if !errors.Is(err, ErrRefreshRequired) {
		t.Fatalf("expected ErrRefreshRequired, got %v", err)
	}
	if refresher.called != 0 || inserter.called != 0 {
		t.Fatal("provider must not be contacted before preconditions pass")
	}
}

func TestAddEventUnknownEvent(t *testing.T) {
	store, refresher, inserter := calendarFixtures()
	svc := NewCalendarService(store, refresher, inserter)

	_, err := svc.AddEvent(context.Background(), store.user.ID, uuid.NewString())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if refresher.called != 0 {
		t.Fatal("provider must not be contacted for a missing event")
	}
}

func TestAddEventPersistsRotatedToken(t *testing.T) {
	store, refresher, inserter := calendarFixtures()
	refresher.token = &oauth2.Token{AccessToken: "access-2"}
	svc := NewCalendarService(store, refresher, inserter)

	link, err := svc.AddEvent(context.Background(), store.user.ID, store.event.ID)
	if err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}
	if link != inserter.link {
		t.Fatalf("link = %q, want %q", link, inserter.link)
	}
	if refresher.called != 1 {
		t.Fatalf("refresh called %d times, want exactly 1", refresher.called)
	}
	if store.saved != "access-2" {
		t.Fatalf("persisted token = %q, want access-2", store.saved)
	}
	if inserter.gotToken != "access-2" {
		t.Fatalf("insert used token %q, want the refreshed one", inserter.gotToken)
	}
}

func TestAddEventUnchangedTokenNotPersisted(t *testing.T) {
	store, refresher, inserter := calendarFixtures()
	svc := NewCalendarService(store, refresher, inserter)

	if _, err := svc.AddEvent(context.Background(), store.user.ID, store.event.ID); err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}
	if store.saveCalled {
		t.Fatal("unchanged access token must not be rewritten")
	}
}

func TestAddEventPersistFailureDoesNotAbort(t *testing.T) {
	store, refresher, inserter := calendarFixtures()
	refresher.token = &oauth2.Token{AccessToken: "access-2"}
	store.saveErr = errors.New("write failed")
	svc := NewCalendarService(store, refresher, inserter)

	link, err := svc.AddEvent(context.Background(), store.user.ID, store.event.ID)
	if err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}
	if link == "" || inserter.called != 1 {
		t.Fatal("insert must proceed despite persistence failure")
	}
}

func TestAddEventRefreshFailure(t *testing.T) {
	store, refresher, inserter := calendarFixtures()
	refresher.err = errors.New("invalid_grant")
	svc := NewCalendarService(store, refresher, inserter)

	_, err := svc.AddEvent(context.Background(), store.user.ID, store.event.ID)
	if err == nil {
		t.Fatal("expected error")
	}
	if inserter.called != 0 {
		t.Fatal("insert must not run without a valid access token")
	}
}

func TestAddEventPayload(t *testing.T) {
	store, refresher, inserter := calendarFixtures()
	desc := "Company launch"
	loc := "Lisbon"
	store.event.Description = &desc
	store.event.Location = &loc
	svc := NewCalendarService(store, refresher, inserter)

	if _, err := svc.AddEvent(context.Background(), store.user.ID, store.event.ID); err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}

	got := inserter.gotEvent
	if got.Summary != "Launch party" || got.Description != desc || got.Location != loc {
		t.Fatalf("payload = %+v", got)
	}
	start, _ := time.Parse(time.RFC3339, got.Start.DateTime)
	end, _ := time.Parse(time.RFC3339, got.End.DateTime)
	if end.Sub(start) != time.Hour {
		t.Fatalf("event slot = %v, want 1h", end.Sub(start))
	}
}
