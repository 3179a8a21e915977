// Package godaddy is a small client for the GoDaddy domains record API.
package godaddy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thefortaiagency/bendavis/internal/model"
)

const DefaultBaseURL = "https://api.godaddy.com"

var ErrMissingCredentials = errors.New("godaddy api key and secret are required")

// APIError is returned for any unexpected response status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("godaddy api: HTTP %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, apiSecret string, httpClient *http.Client) (*Client, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, ErrMissingCredentials
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		httpClient: httpClient,
	}, nil
}

// GetRecords returns the records of recordType named name.
// A 404 is reported as model.ErrDNSRecordNotFound.
func (c *Client) GetRecords(
	ctx context.Context, domain string, recordType model.DNSRecordType, name string,
) ([]model.DNSRecord, error) {
	var records []model.DNSRecord
	err := c.do(ctx, http.MethodGet, recordsPath(domain, recordType, name), nil, &records)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, model.ErrDNSRecordNotFound
		}
		return nil, err
	}
	return records, nil
}

// AddRecords appends records to the zone without touching existing ones.
func (c *Client) AddRecords(ctx context.Context, domain string, records []model.DNSRecord) error {
	return c.do(ctx, http.MethodPatch, "/v1/domains/"+url.PathEscape(domain)+"/records", records, nil)
}

// ReplaceRecords replaces every record of recordType named name.
func (c *Client) ReplaceRecords(
	ctx context.Context, domain string, recordType model.DNSRecordType, name string, records []model.DNSRecord,
) error {
	return c.do(ctx, http.MethodPut, recordsPath(domain, recordType, name), records, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("sso-key %s:%s", c.apiKey, c.apiSecret))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out != nil && len(respBody) > 0 {
		if err = json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func recordsPath(domain string, recordType model.DNSRecordType, name string) string {
	return fmt.Sprintf(
		"/v1/domains/%s/records/%s/%s", url.PathEscape(domain), url.PathEscape(string(recordType)), url.PathEscape(name),
	)
}
