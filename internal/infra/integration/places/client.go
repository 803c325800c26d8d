package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://places.googleapis.com/v1"
	// MaxPageSize is the largest page the search endpoint returns
	MaxPageSize = 20

	fieldMask = "places.id,places.displayName,places.formattedAddress,places.nationalPhoneNumber,places.internationalPhoneNumber,places.websiteUri"
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Option configures the Client
type Option func(*Client)

// WithBaseURL points the client at another endpoint, used by tests
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SearchPlaces runs a free text search such as "plumbers in Austin"
func (c *Client) SearchPlaces(ctx context.Context, query string, limit int) ([]Place, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}

	body, err := json.Marshal(searchTextRequest{TextQuery: query, PageSize: limit})
	if err != nil {
		return nil, fmt.Errorf("encode places search: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/places:searchText", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		var apiErr errorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("%w (status %d): %s", ErrSearchFailed, resp.StatusCode, apiErr.Error.Message)
		}

		return nil, fmt.Errorf("%w (status %d)", ErrSearchFailed, resp.StatusCode)
	}

	var out searchTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode places response: %w", err)
	}

	result := make([]Place, 0, len(out.Places))
	for _, p := range out.Places {
		phone := p.NationalPhoneNumber
		if phone == "" {
			phone = p.InternationalPhoneNumber
		}

		result = append(result, Place{
			ID:         p.ID,
			Name:       p.DisplayName.Text,
			Address:    p.FormattedAddress,
			Phone:      phone,
			WebsiteURL: p.WebsiteURI,
		})
	}

	return result, nil
}
