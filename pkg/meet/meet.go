// Package meet wraps the RoomKit video-meeting API. Sessions cannot be
// confirmed without a meeting; deletion is best-effort cleanup.
package meet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

type MeetingRequest struct {
	HostName        string
	GuestName       string
	StartTime       time.Time
	DurationMinutes int
}

type Meeting struct {
	ID      string `json:"id"`
	JoinURL string `json:"join_url"`
}

// Client creates and deletes video meetings.
type Client interface {
	CreateMeeting(ctx context.Context, req MeetingRequest) (*Meeting, error)
	DeleteMeeting(ctx context.Context, id string) error
}

// RoomKitClient talks to the RoomKit REST API with an API key.
type RoomKitClient struct {
	BaseURL string
	APIKey  string
	client  *http.Client
}

func NewRoomKitClient(baseURL, apiKey string) *RoomKitClient {
	return &RoomKitClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type roomKitCreateReq struct {
	Title           string `json:"title"`
	HostName        string `json:"host_name"`
	GuestName       string `json:"guest_name"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
}

func (c *RoomKitClient) CreateMeeting(ctx context.Context, req MeetingRequest) (*Meeting, error) {
	payload := roomKitCreateReq{
		Title:           fmt.Sprintf("Coffee chat: %s / %s", req.HostName, req.GuestName),
		HostName:        req.HostName,
		GuestName:       req.GuestName,
		StartTime:       req.StartTime.UTC().Format(time.RFC3339),
		DurationMinutes: req.DurationMinutes,
	}
	body, _ := json.Marshal(payload)
	apiReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/meetings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	apiReq.Header.Set("Content-Type", "application/json")
	apiReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	resp, err := c.client.Do(apiReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Printf("[Meet] create failed status=%d body=%s", resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("roomkit create: %d", resp.StatusCode)
	}
	var out Meeting
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *RoomKitClient) DeleteMeeting(ctx context.Context, id string) error {
	apiReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.BaseURL+"/v1/meetings/"+id, nil)
	if err != nil {
		return err
	}
	apiReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	resp, err := c.client.Do(apiReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("roomkit delete: %d", resp.StatusCode)
	}
	return nil
}
