package services

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

	"github.com/google/uuid"
	"github.com/octofit/octofit-tracker/internal/metrics"
	"github.com/octofit/octofit-tracker/models"
	"github.com/rs/zerolog"
)

// BackendClient is a client for the OctoFit REST API.
type BackendClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Metrics    *metrics.Metrics
}

// HTTPError is returned for any response outside the 2xx range. Body holds
// the raw response body, if any.
type HTTPError struct {
	Message string
	Status  int
	Body    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewBackendClient creates a new instance of BackendClient. baseURL is the
// API root, e.g. http://localhost:8000/api/.
func NewBackendClient(baseURL string, httpClient *http.Client) *BackendClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &BackendClient{
		BaseURL:    baseURL,
		HTTPClient: httpClient,
	}
}

// FetchCollection issues a GET for a collection and decodes it into out,
// which must be a pointer to a slice. Both a bare JSON array and a paginated
// object with a results array are accepted.
func (c *BackendClient) FetchCollection(ctx context.Context, path string, out any) error {
	respBody, err := c.makeRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodeCollection(respBody, out)
}

// Submit sends body as JSON with the given method (POST or PATCH) and decodes
// the response into out when out is non-nil.
func (c *BackendClient) Submit(ctx context.Context, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	respBody, err := c.makeRequest(ctx, method, path, payload)
	if err != nil {
		return err
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Remove issues a DELETE. 204 and every other 2xx status count as success.
func (c *BackendClient) Remove(ctx context.Context, path string) error {
	_, err := c.makeRequest(ctx, http.MethodDelete, path, nil)
	return err
}

func decodeCollection(data []byte, out any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("failed to decode response: empty body")
	}

	if data[0] == '{' {
		var page models.Page
		if err := json.Unmarshal(data, &page); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		data = bytes.TrimSpace(page.Results)
		if len(data) == 0 || bytes.Equal(data, []byte("null")) {
			data = []byte("[]")
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *BackendClient) resolve(path string) (string, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", c.BaseURL, err)
	}
	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid resource path %q: %w", path, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// resourceName is the first path segment, used as a metrics label.
func resourceName(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.Index(path, "/"); i >= 0 {
		return path[:i]
	}
	return path
}

// Helper function for making HTTP requests to the backend API.
func (c *BackendClient) makeRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	target, err := c.resolve(path)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := zerolog.Ctx(ctx).With().
		Str("method", method).
		Str("url", target).
		Str("request_id", requestID).
		Logger()

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Metrics.ObserveBackend(method, resourceName(path), 0, time.Since(start))
		logger.Debug().Err(err).Msg("backend request failed")
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	c.Metrics.ObserveBackend(method, resourceName(path), resp.StatusCode, time.Since(start))
	logger.Debug().Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("backend request completed")

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newHTTPError(method, resp.StatusCode, respBody)
	}

	return respBody, nil
}

// newHTTPError builds the error for a non-2xx response. Reads report the
// status only; writes report the server's error payload when there is one.
func newHTTPError(method string, status int, body []byte) *HTTPError {
	e := &HTTPError{
		Message: fmt.Sprintf("HTTP %d", status),
		Status:  status,
		Body:    string(body),
	}
	if method == http.MethodPost || method == http.MethodPatch || method == http.MethodPut {
		if trimmed := strings.TrimSpace(e.Body); trimmed != "" {
			e.Message = compactJSON(trimmed)
		}
	}
	return e
}

func compactJSON(s string) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}
