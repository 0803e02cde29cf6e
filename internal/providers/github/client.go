// Package github fetches repository traffic windows from the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"viewcounter/internal/domain"
	"viewcounter/internal/infra"
)

var (
	// ErrMissingToken indicates that the client was configured without credentials.
	ErrMissingToken = errors.New("github: traffic token is required")
	// ErrInvalidRepo indicates a repository that is not in owner/name form.
	ErrInvalidRepo = errors.New("github: repo must be owner/name")
)

const (
	defaultBaseURL   = "https://api.github.com"
	defaultUserAgent = "visitor-counter"
	apiVersion       = "2022-11-28"
	maxErrorBody     = 4 << 10
)

// Options configures the traffic client.
type Options struct {
	Token          string
	Repo           string
	BaseURL        string
	UserAgent      string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the repository traffic endpoint.
type Client struct {
	token      string
	repo       string
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *infra.Logger
}

// APIError carries a non-success response from the traffic endpoint.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("github: failed to fetch traffic data: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body == "" {
		return msg
	}
	return msg + "\n" + e.Body
}

// Is lets callers match any APIError against domain.ErrTrafficSource.
func (e *APIError) Is(target error) bool {
	return target == domain.ErrTrafficSource
}

type viewsResponse struct {
	Count   int         `json:"count"`
	Uniques int         `json:"uniques"`
	Views   []viewEntry `json:"views"`
}

type viewEntry struct {
	Timestamp string `json:"timestamp"`
	Count     int    `json:"count"`
	Uniques   *int   `json:"uniques"`
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) (*Client, error) {
	repo := strings.Trim(strings.TrimSpace(opts.Repo), "/")
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRepo, opts.Repo)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &Client{
		token:      strings.TrimSpace(opts.Token),
		repo:       repo,
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// Repo returns the owner/name the client reads traffic for.
func (c *Client) Repo() string {
	return c.repo
}

// HasCredentials reports whether the client can perform remote calls.
func (c *Client) HasCredentials() bool {
	return c.token != ""
}

// FetchViews returns the daily view window currently offered by the API,
// typically the last fourteen days.
func (c *Client) FetchViews(ctx context.Context) (domain.FetchedWindow, error) {
	if !c.HasCredentials() {
		return nil, ErrMissingToken
	}
	endpoint := c.baseURL + "/repos/" + c.repo + "/traffic/views"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("github: build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("github: read response: %w", err)
	}
	var decoded viewsResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("github: decode response: %w", err)
	}

	window := make(domain.FetchedWindow, 0, len(decoded.Views))
	for i, v := range decoded.Views {
		date, err := dateFromTimestamp(v.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("github: views[%d]: %w", i, err)
		}
		window = append(window, domain.DailyRecord{Date: date, Count: v.Count, Uniques: v.Uniques})
	}

	c.logger.Debug().
		Str("repo", c.repo).
		Int("days", len(window)).
		Int("window_count", decoded.Count).
		Int("window_uniques", decoded.Uniques).
		Msg("github: fetched traffic window")
	return window, nil
}

func dateFromTimestamp(ts string) (string, error) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return "", domain.ErrMissingDate
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		if d, derr := time.Parse(domain.DateLayout, ts); derr == nil {
			return d.Format(domain.DateLayout), nil
		}
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidDate, ts)
	}
	return t.UTC().Format(domain.DateLayout), nil
}

var _ domain.TrafficSource = (*Client)(nil)
