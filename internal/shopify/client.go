package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultAPIVersion is used when the configuration does not pin one.
const DefaultAPIVersion = "2024-10"

// UserError is a field-level rejection returned inside a mutation payload.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// graphQLError is a top-level GraphQL error.
type graphQLError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code,omitempty"`
	} `json:"extensions,omitempty"`
}

// AggregateUserErrors joins all user error messages into a single error, or
// returns nil when the collection is empty.
func AggregateUserErrors(errs []UserError) error {
	if len(errs) == 0 {
		return nil
	}
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return fmt.Errorf("platform rejected mutation: %s", strings.Join(messages, "; "))
}

// Client issues GraphQL requests against a shop's Admin API. The shop domain
// and access token are supplied per call; nothing is cached between calls.
type Client struct {
	httpClient *http.Client
	apiVersion string
	// baseURL overrides the https://<shop> scheme+host, for tests only.
	baseURL string
	logger  zerolog.Logger
}

// NewClient creates a new Admin API client.
func NewClient(apiVersion string, logger zerolog.Logger) *Client {
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiVersion: apiVersion,
		logger:     logger.With().Str("component", "shopify-client").Logger(),
	}
}

// NewClientWithBaseURL creates a client pointed at a fixed endpoint instead
// of the shop domain. Used by tests with httptest servers.
func NewClientWithBaseURL(baseURL, apiVersion string, logger zerolog.Logger) *Client {
	c := NewClient(apiVersion, logger)
	c.baseURL = baseURL
	return c
}

func (c *Client) endpoint(shop string) string {
	base := c.baseURL
	if base == "" {
		base = "https://" + shop
	}
	return fmt.Sprintf("%s/admin/api/%s/graphql.json", base, c.apiVersion)
}

// Execute posts a GraphQL document and returns the raw "data" payload.
// Top-level GraphQL errors and non-200 responses are returned as errors;
// userErrors inside mutation payloads are the caller's concern.
func (c *Client) Execute(ctx context.Context, shop, accessToken, query string, variables map[string]interface{}) (json.RawMessage, error) {
	payload := map[string]interface{}{
		"query":     query,
		"variables": variables,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(shop), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("shop", shop).Msg("admin API request failed")
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error().
			Str("shop", shop).
			Int("status", resp.StatusCode).
			Msg("admin API returned non-200 status")
		return nil, fmt.Errorf("admin API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphQLError  `json:"errors"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	// GraphQL errors arrive with HTTP 200.
	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return nil, fmt.Errorf("graphql errors: %s", strings.Join(messages, "; "))
	}

	return envelope.Data, nil
}
