package apiclient

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/faunadata/fauna/internal/apitypes"
)

// APIClient talks to a faunad server.
type APIClient struct {
	client  *http.Client
	baseURL string
}

func New(serverURL string) *APIClient {
	return &APIClient{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: strings.TrimRight(serverURL, "/"),
	}
}

func (c *APIClient) BaseURL() string {
	return c.baseURL
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return fmt.Sprintf("server returned status %d: %s", e.Status, e.Detail)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

func newAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var errResp apitypes.ErrorResponse
	if json.Unmarshal(body, &errResp) == nil {
		apiErr.Detail = errResp.Detail
	} else {
		apiErr.Detail = strings.TrimSpace(string(body))
	}
	return apiErr
}

func (c *APIClient) HealthCheck(ctx context.Context) (*apitypes.HealthResponse, error) {
	var response apitypes.HealthResponse
	if err := c.get(ctx, "/health", &response); err != nil {
		return nil, fmt.Errorf("server not reachable at %s: %w", c.baseURL, err)
	}
	return &response, nil
}

func (c *APIClient) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create GET request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return newAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// stream reads an SSE endpoint and hands every data payload to handler until
// handler asks to stop, the server closes the stream, or ctx ends. A handler
// error skips that event.
func (c *APIClient) stream(ctx context.Context, path string, handler func(data string) (bool, error), onSkip func(error)) error {
	streamingClient := &http.Client{Timeout: 0, Transport: c.client.Transport}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create SSE request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := streamingClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return newAPIError(resp)
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()

		// Blank separators and ": keepalive" comments
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}

		data, ok := strings.CutPrefix(line, "data: ")
		if !ok {
			continue
		}

		shouldStop, err := handler(data)
		if err != nil {
			if onSkip != nil {
				onSkip(err)
			}
			continue
		}
		if shouldStop {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("error reading stream: %w", err)
	}
	return ctx.Err()
}
