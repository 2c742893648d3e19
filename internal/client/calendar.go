// Client for the Google Calendar REST API (v3).
//
// Only event insertion on the user's primary calendar is needed, so
// this is a plain HTTP client rather than the full Google SDK. The
// caller supplies a valid OAuth2 access token per request.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const calendarBaseURL = "https://www.googleapis.com/calendar/v3"

type CalendarClient struct {
	baseURL    string
	httpClient *http.Client
}

type CalendarEvent struct {
	Summary     string            `json:"summary"`
	Description string            `json:"description"`
	Location    string            `json:"location"`
	Start       CalendarTime      `json:"start"`
	End         CalendarTime      `json:"end"`
	Attendees   []struct{}        `json:"attendees"`
	Reminders   CalendarReminders `json:"reminders"`
}

type CalendarTime struct {
	DateTime string `json:"dateTime"`
}

type CalendarReminders struct {
	UseDefault bool               `json:"useDefault"`
	Overrides  []ReminderOverride `json:"overrides"`
}

type ReminderOverride struct {
	Method  string `json:"method"`
	Minutes int    `json:"minutes"`
}

type insertedEvent struct {
	HTMLLink string `json:"htmlLink"`
}

func NewCalendarClient() *CalendarClient {
	return &CalendarClient{
		baseURL: calendarBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewCalendarEvent builds the insertion payload used for platform
// events: a one-hour slot with an email reminder a day ahead and a
// popup ten minutes before.
func NewCalendarEvent(summary, description, location string, start time.Time) CalendarEvent {
	return CalendarEvent{
		Summary:     summary,
		Description: description,
		Location:    location,
		Start:       CalendarTime{DateTime: start.Format(time.RFC3339)},
		End:         CalendarTime{DateTime: start.Add(time.Hour).Format(time.RFC3339)},
		Attendees:   []struct{}{},
		Reminders: CalendarReminders{
			UseDefault: false,
			Overrides: []ReminderOverride{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 10},
			},
		},
	}
}

// InsertEvent adds the event to the user's primary calendar and
// returns the link Google assigns to it.
func (c *CalendarClient) InsertEvent(ctx context.Context, accessToken string, event CalendarEvent) (string, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return "", err
	}

	url := c.baseURL + "/calendars/primary/events"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("calendar insert failed: status %d: %s", resp.StatusCode, string(respBody))
	}

	var inserted insertedEvent
	if err := json.Unmarshal(respBody, &inserted); err != nil {
		return "", fmt.Errorf("calendar insert: unexpected response: %w", err)
	}

	return inserted.HTMLLink, nil
}
