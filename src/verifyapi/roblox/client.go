package roblox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://users.roblox.com/v1"

// Profile is the public user record returned by the Roblox users API.
type Profile struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Created     string `json:"created"`
}

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// User fetches the public profile for a user id. Non-2xx responses are
// returned as errors carrying the status and body for diagnosis.
func (c *Client) User(ctx context.Context, id string) (*Profile, error) {
	status, body, err := c.UserRaw(ctx, id)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("roblox user %s: status %d: %s", id, status, body)
	}

	var p Profile
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("roblox user %s: decode: %w", id, err)
	}
	return &p, nil
}

// UserRaw returns the raw status and body, for passing through to the web
// client unchanged.
func (c *Client) UserRaw(ctx context.Context, id string) (int, []byte, error) {
	url := fmt.Sprintf("%s/users/%s", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}
