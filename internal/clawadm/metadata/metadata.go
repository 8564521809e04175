// Package metadata queries the link-local instance metadata service for the
// deployment site and instance id. The service is advisory only: any failure
// resolves to the Unknown sentinel and the run carries on.
package metadata

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

// Unknown is returned when the metadata service cannot be reached or gives
// an unusable answer.
const Unknown = "unknown"

const (
	defaultBaseURL = "http://100.96.0.96"
	siteNamePath   = "/volcstack/latest/site_name"
	instanceIDPath = "/latest/instance_id"

	requestTimeout = 10 * time.Second
)

// Client fetches host identity facts from the metadata service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client against the fixed link-local metadata address.
func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURL)
}

// NewClientWithBaseURL returns a Client against an alternate address,
// primarily for tests.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// SiteName resolves the deployment site, or Unknown.
func (c *Client) SiteName(ctx context.Context) string {
	return c.fetch(ctx, siteNamePath)
}

// InstanceID resolves the cloud instance id, or Unknown.
func (c *Client) InstanceID(ctx context.Context) string {
	return c.fetch(ctx, instanceIDPath)
}

func (c *Client) fetch(ctx context.Context, path string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return Unknown
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Unknown
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Unknown
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Unknown
	}
	value := strings.TrimSpace(string(body))
	if value == "" {
		return Unknown
	}
	return value
}
