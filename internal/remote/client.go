package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/warelog/warelog/internal/common"
	"github.com/warelog/warelog/internal/model"
	"github.com/warelog/warelog/internal/service"
)

// fetchRetries is how many times a failed fetch-all is retried before
// degrading to an empty result.
const fetchRetries = 2

// Config holds the remote endpoint settings.
type Config struct {
	// URL of the deployed macro endpoint.
	URL string
	// AckMode selects checked or fire-and-forget writes.
	AckMode service.AckMode
	// Timeout per HTTP request.
	Timeout time.Duration
}

// Client implements service.RemoteStore against the macro endpoint.
type Client struct {
	baseURL    string
	ackMode    service.AckMode
	httpClient *http.Client
}

// NewClient creates a new remote store client.
func NewClient(cfg Config) (*Client, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		return nil, fmt.Errorf("%w: remote.url", common.ErrMissingConfig)
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("%w: remote.url %q is not an http(s) URL", common.ErrInvalidConfig, url)
	}

	ackMode := cfg.AckMode
	if ackMode == "" {
		ackMode = service.AckChecked
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: url,
		ackMode: ackMode,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// FetchAll reads the full record set. Transient failures are retried
// with a fixed backoff; when the budget runs out the result degrades
// to an empty set rather than an error, so callers cannot distinguish
// "empty store" from "store unreachable". Cancellation still
// propagates.
func (c *Client) FetchAll(ctx context.Context) ([]model.Transaction, error) {
	var records []model.Transaction

	err := common.WithRetry(ctx, func() error {
		fetched, err := c.fetchOnce(ctx)
		if err != nil {
			return err
		}
		records = fetched
		return nil
	}, service.RetryOptions{
		MaxAttempts:  fetchRetries + 1,
		InitialDelay: time.Second,
		MaxDelay:     time.Second,
		Multiplier:   1.0,
	})

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		common.LogError(err, "fetch-all failed, degrading to empty result", common.Fields{
			"url": c.baseURL,
		})
		return []model.Transaction{}, nil
	}
	return records, nil
}

func (c *Client) fetchOnce(ctx context.Context) ([]model.Transaction, error) {
	// The cache-buster mirrors what browsers needed against the macro
	// endpoint's aggressive GET caching.
	separator := "?"
	if strings.Contains(c.baseURL, "?") {
		separator = "&"
	}
	url := fmt.Sprintf("%s%saction=fetch&_=%d", c.baseURL, separator, time.Now().UnixMilli())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: HTTP %d - %s", common.ErrRemoteUnavailable, resp.StatusCode, string(body))
	}

	var raw []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	records := make([]model.Transaction, 0, len(raw))
	for i, row := range raw {
		records = append(records, decodeRecord(row, i))
	}

	slog.Debug("Fetched remote records", "count", len(records))
	return records, nil
}

// wirePayload is the write-request envelope the endpoint expects.
type wirePayload struct {
	Action string         `json:"action"`
	ID     string         `json:"id,omitempty"`
	Type   string         `json:"type,omitempty"`
	Data   map[string]any `json:"data"`
}

// wireResult is the endpoint's write/login response.
type wireResult struct {
	Result     string `json:"result"`
	Message    string `json:"message"`
	Authorized bool   `json:"authorized"`
}

// Insert appends a new record to its kind partition.
func (c *Client) Insert(ctx context.Context, tx model.Transaction) error {
	return c.post(ctx, wirePayload{
		Action: "insert",
		ID:     tx.ID,
		Type:   string(tx.Kind),
		Data:   encodeRecord(tx),
	})
}

// Update replaces the remote row matching the record's id, appending
// instead when the row has vanished.
func (c *Client) Update(ctx context.Context, tx model.Transaction) error {
	return c.post(ctx, wirePayload{
		Action: "update",
		ID:     tx.ID,
		Type:   string(tx.Kind),
		Data:   encodeRecord(tx),
	})
}

// Delete removes the record with the given id. The endpoint scans all
// kind partitions, so a stale kind hint still cleans up.
func (c *Client) Delete(ctx context.Context, id string, kind model.Kind) error {
	return c.post(ctx, wirePayload{
		Action: "delete",
		ID:     id,
		Type:   string(kind),
		Data:   map[string]any{},
	})
}

// Login verifies credentials against the endpoint. Authorization
// failure is a result, not an error; errors mean the endpoint itself
// was unreachable.
func (c *Client) Login(ctx context.Context, username, password string) (service.LoginResult, error) {
	result, err := c.postChecked(ctx, wirePayload{
		Action: "login",
		Data: map[string]any{
			"username": username,
			"password": password,
		},
	})
	if err != nil {
		return service.LoginResult{}, err
	}
	return service.LoginResult{
		Authorized: result.Authorized,
		Message:    result.Message,
	}, nil
}

// post dispatches a write under the configured acknowledgment mode.
func (c *Client) post(ctx context.Context, payload wirePayload) error {
	if c.ackMode == service.AckFireAndForget {
		resp, err := c.send(ctx, payload)
		if err != nil {
			return err
		}
		// Response intentionally unread: this mode mirrors the no-cors
		// deployments where the body was opaque anyway.
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		return nil
	}

	_, err := c.postChecked(ctx, payload)
	return err
}

func (c *Client) postChecked(ctx context.Context, payload wirePayload) (wireResult, error) {
	resp, err := c.send(ctx, payload)
	if err != nil {
		return wireResult{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return wireResult{}, fmt.Errorf("%w: HTTP %d - %s", common.ErrRemoteUnavailable, resp.StatusCode, string(body))
	}

	var result wireResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return wireResult{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if result.Result != "ok" {
		if payload.Action == "login" {
			// Auth verdicts ride the error result; surface them as data.
			return result, nil
		}
		return result, fmt.Errorf("remote %s rejected: %s", payload.Action, result.Message)
	}
	return result, nil
}

func (c *Client) send(ctx context.Context, payload wirePayload) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// The macro endpoint only parses text/plain bodies.
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRemoteUnavailable, err)
	}
	return resp, nil
}
