package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thefortaiagency/bendavis/internal/model"
)

type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient returns a client for the site at baseURL, e.g. http://localhost:3000.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	endpoint, err := url.JoinPath(strings.TrimRight(baseURL, "/"), "/api/chat")
	if err != nil {
		return nil, fmt.Errorf("failed to build chat url: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
	}, nil
}

// Send posts one turn. Any transport problem, non-200 status or undecodable
// body is returned as an error.
func (c *Client) Send(ctx context.Context, message string, speaker model.PersonaID) (model.ChatResponse, error) {
	payload, err := json.Marshal(model.ChatRequest{Message: message, Speaker: speaker})
	if err != nil {
		return model.ChatResponse{}, fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return model.ChatResponse{}, fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.ChatResponse{}, fmt.Errorf("failed to send chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return model.ChatResponse{}, fmt.Errorf("chat request failed: HTTP %d: %s", resp.StatusCode, body)
	}

	var chatResp model.ChatResponse
	if err = json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return model.ChatResponse{}, fmt.Errorf("failed to decode chat response: %w", err)
	}
	return chatResp, nil
}
