package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ericfisherdev/happyplace/internal/domain"
	"github.com/ericfisherdev/happyplace/internal/props"
)

// Response headers of the preview fragment endpoint.
const (
	familiesHeader    = "X-HPH-Families"
	unusedPropsHeader = "X-HPH-Unused-Props"
)

// APIClient talks to a running site.
type APIClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is an error envelope returned by the site.
type APIError struct {
	StatusCode int                    `json:"status_code"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("API error (%d)", e.StatusCode)
	if e.Code != "" {
		msg += " " + e.Code
	}
	msg += ": " + e.Message
	for k, v := range e.Details {
		msg += fmt.Sprintf("; %s: %v", k, v)
	}
	return msg
}

// doRequest sends body as JSON and returns the raw response.
func (c *APIClient) doRequest(ctx context.Context, method, endpoint string, query url.Values, body interface{}) (*http.Response, error) {
	var reqBody io.Reader

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	fullURL, err := url.JoinPath(c.BaseURL, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to join URL path: %w", err)
	}
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

// readResponse returns the body of a successful response and turns error
// envelopes into *APIError. It closes the body.
func readResponse(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiError := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Error *APIError `json:"error"`
		}
		if json.Unmarshal(body, &envelope) == nil && envelope.Error != nil {
			apiError.Code = envelope.Error.Code
			apiError.Message = envelope.Error.Message
			apiError.Details = envelope.Error.Details
		}
		if apiError.Message == "" {
			apiError.Message = strings.TrimSpace(string(body))
		}
		return nil, apiError
	}
	return body, nil
}

// handleResponse decodes the data member of a success envelope into result.
//
//nolint:bodyclose // Response body is closed by readResponse
func (c *APIClient) handleResponse(resp *http.Response, result interface{}) error {
	body, err := readResponse(resp)
	if err != nil {
		return err
	}
	if result == nil || len(body) == 0 {
		return nil
	}
	envelope := struct {
		Data interface{} `json:"data"`
	}{Data: result}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// Health checks that the site is ready.
func (c *APIClient) Health(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodGet, "/health/ready", nil, nil)
	if err != nil {
		return err
	}
	_, err = readResponse(resp)
	return err
}

// Listings runs q against the listings API.
func (c *APIClient) Listings(ctx context.Context, q domain.ListingQuery) (*domain.ListingPage, error) {
	values := url.Values{}
	for k, v := range q.Params() {
		values.Set(k, v)
	}
	if q.Page > 1 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/listings", values, nil)
	if err != nil {
		return nil, err
	}
	var page domain.ListingPage
	if err := c.handleResponse(resp, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Listing returns one listing by ID or slug.
func (c *APIClient) Listing(ctx context.Context, idOrSlug string) (*domain.Listing, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/listings/"+url.PathEscape(idOrSlug), nil, nil)
	if err != nil {
		return nil, err
	}
	var l domain.Listing
	if err := c.handleResponse(resp, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Fragment is a component rendered by the site's preview endpoint.
type Fragment struct {
	HTML     string   `json:"html"`
	Families []string `json:"families"`
	Unused   []string `json:"unused,omitempty"`
}

// Render renders a component on the site. The site must have the
// component preview enabled.
func (c *APIClient) Render(ctx context.Context, name string, args props.Map) (*Fragment, error) {
	if args == nil {
		args = props.Map{}
	}
	resp, err := c.doRequest(ctx, http.MethodPost, "/components/"+url.PathEscape(name), nil, args)
	if err != nil {
		return nil, err
	}
	families, unused := resp.Header.Get(familiesHeader), resp.Header.Get(unusedPropsHeader)
	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}
	return &Fragment{HTML: string(body), Families: splitList(families), Unused: splitList(unused)}, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
