// Package calendar creates events on a professional's calendar using their
// stored OAuth credential. Calendar failures never block a session: the
// meeting link works without an event.
package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// ErrTokenExpired means the stored credential is no longer valid. Callers
// treat this as a recoverable condition (the professional reconnects their
// calendar), not an outage.
var ErrTokenExpired = errors.New("calendar token expired")

type EventRequest struct {
	Title           string
	Description     string
	StartTime       time.Time
	DurationMinutes int
	MeetingURL      string
	AttendeeEmail   string
}

type Event struct {
	ID string `json:"id"`
}

// Client creates calendar events with a per-professional credential.
type Client interface {
	CreateEvent(ctx context.Context, token *oauth2.Token, req EventRequest) (*Event, error)
}

// HTTPClient talks to the calendar provider's REST API.
type HTTPClient struct {
	BaseURL string
	timeout time.Duration
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{BaseURL: baseURL, timeout: 15 * time.Second}
}

type createEventReq struct {
	Summary       string `json:"summary"`
	Description   string `json:"description"`
	Start         string `json:"start"`
	End           string `json:"end"`
	Location      string `json:"location"`
	AttendeeEmail string `json:"attendee_email,omitempty"`
}

func (c *HTTPClient) CreateEvent(ctx context.Context, token *oauth2.Token, req EventRequest) (*Event, error) {
	if token == nil || token.AccessToken == "" {
		return nil, ErrTokenExpired
	}
	if !token.Valid() && token.RefreshToken == "" {
		return nil, ErrTokenExpired
	}
	payload := createEventReq{
		Summary:       req.Title,
		Description:   req.Description,
		Start:         req.StartTime.UTC().Format(time.RFC3339),
		End:           req.StartTime.Add(time.Duration(req.DurationMinutes) * time.Minute).UTC().Format(time.RFC3339),
		Location:      req.MeetingURL,
		AttendeeEmail: req.AttendeeEmail,
	}
	body, _ := json.Marshal(payload)

	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	httpClient.Timeout = c.timeout
	apiReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/events", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	apiReq.Header.Set("Content-Type", "application/json")
	resp, err := httpClient.Do(apiReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrTokenExpired
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("calendar create: %d %s", resp.StatusCode, string(respBody))
	}
	var out Event
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ParseToken decodes a stored credential. Empty input means the professional
// never connected a calendar.
func ParseToken(raw string) (*oauth2.Token, error) {
	if raw == "" {
		return nil, nil
	}
	var tok oauth2.Token
	if err := json.Unmarshal([]byte(raw), &tok); err != nil {
		return nil, fmt.Errorf("parse calendar token: %w", err)
	}
	return &tok, nil
}
