package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"padang/pkg/logger"
	"padang/pkg/metrics"
)

// Client is the remote store as seen by the booking flow
type Client interface {
	ListTeams(ctx context.Context) ([]TeamRegistration, error)
	BookedSlots(ctx context.Context) (BookedSlotIndex, error)
	RegisterTeam(ctx context.Context, team TeamRegistration) (*TeamRegistration, error)
}

// HTTPClient talks to the remote store REST API
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

func NewHTTPClient(baseURL string, timeout time.Duration, log *logger.Logger, m *metrics.Metrics) *HTTPClient {
	if log == nil {
		log = logger.GetDefault()
	}
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
		metrics:    m,
	}
}

func (c *HTTPClient) ListTeams(ctx context.Context) ([]TeamRegistration, error) {
	var teams []TeamRegistration
	if err := c.do(ctx, "list_teams", http.MethodGet, "/teams", nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (c *HTTPClient) BookedSlots(ctx context.Context) (BookedSlotIndex, error) {
	index := BookedSlotIndex{}
	if err := c.do(ctx, "booked_slots", http.MethodGet, "/booked-slots", nil, &index); err != nil {
		return nil, err
	}
	return index, nil
}

func (c *HTTPClient) RegisterTeam(ctx context.Context, team TeamRegistration) (*TeamRegistration, error) {
	var stored TeamRegistration
	if err := c.do(ctx, "register_team", http.MethodPost, "/register-team", team, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

type errorBody struct {
	Message string `json:"message"`
}

func (c *HTTPClient) do(ctx context.Context, operation, method, path string, body, dest interface{}) (err error) {
	start := time.Now()
	status := 0
	defer func() {
		duration := time.Since(start)
		c.metrics.ObserveRemoteCall(operation, err, duration)
		c.logger.LogRemoteStoreCall(ctx, method, path, status, duration)
		if err != nil {
			c.logger.LogRemoteStoreError(ctx, operation, err)
		}
	}()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return &APIError{StatusCode: resp.StatusCode, Message: eb.Message}
	}

	if dest == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", operation, err)
	}
	return nil
}
