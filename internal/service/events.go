package service

import (
	"context"
	"time"

	"github.com/eventhub/backend/internal/db"
	"github.com/eventhub/backend/internal/model"
)

// EventStore is the persistence surface for events, categories, and signups.
type EventStore interface {
	GetEventList(ctx context.Context) ([]model.Event, error)
	GetEventByID(ctx context.Context, id string) (*model.Event, error)
	CreateEvent(ctx context.Context, title string, description *string, date time.Time, location, img *string, createdBy string) (*model.Event, error)
	UpdateEvent(ctx context.Context, id, title string, description *string, date time.Time, location, img *string) (*model.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	GetCategoryList(ctx context.Context) ([]model.Category, error)
	SignupExists(ctx context.Context, userID, eventID string) (bool, error)
	CreateSignup(ctx context.Context, userID, eventID string) error
}

type EventService struct {
	store EventStore
}

func NewEventService(store EventStore) *EventService {
	return &EventService{store: store}
}

func (s *EventService) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.store.GetEventList(ctx)
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.store.GetEventByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *EventService) CreateEvent(ctx context.Context, req model.CreateEventRequest, createdBy string) (*model.Event, error) {
	if req.Title == "" || req.Date == "" {
		return nil, invalid("Title and date are required.")
	}

	date, err := parseEventDate(req.Date)
	if err != nil {
		return nil, invalid("Invalid date format.")
	}

	return s.store.CreateEvent(ctx, req.Title, req.Description, date, req.Location, req.Img, createdBy)
}

// UpdateEvent applies a partial update; fields absent from the request
// keep their stored values.
func (s *EventService) UpdateEvent(ctx context.Context, id string, req model.UpdateEventRequest) (*model.Event, error) {
	existing, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	title := existing.Title
	if req.Title != nil {
		title = *req.Title
	}
	description := existing.Description
	if req.Description != nil {
		description = req.Description
	}
	date := existing.Date
	if req.Date != nil {
		date, err = parseEventDate(*req.Date)
		if err != nil {
			return nil, invalid("Invalid date format.")
		}
	}
	location := existing.Location
	if req.Location != nil {
		location = req.Location
	}
	img := existing.Img
	if req.Img != nil {
		img = req.Img
	}

	return s.store.UpdateEvent(ctx, id, title, description, date, location, img)
}

func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if _, err := s.GetEvent(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteEvent(ctx, id)
}

func (s *EventService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.store.GetCategoryList(ctx)
}

// SignUp registers the user for an event. The signup pre-check and the
// unique (user_id, event_id) constraint both map to the same duplicate
// error.
func (s *EventService) SignUp(ctx context.Context, userID, eventID string) error {
	if _, err := s.GetEvent(ctx, eventID); err != nil {
		return err
	}

	exists, err := s.store.SignupExists(ctx, userID, eventID)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateSignup
	}

	if err := s.store.CreateSignup(ctx, userID, eventID); err != nil {
		if db.IsUniqueViolation(err) {
			return ErrDuplicateSignup
		}
		return err
	}
	return nil
}

func parseEventDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
