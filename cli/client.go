package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lector/domain"
)

const (
	serviceAudience = "lector-internal"
	serviceIssuer   = "lectorctl"
	tokenLifetime   = 5 * time.Minute
)

// Client talks to a running server: public health on /v1, ops calls on
// /internal/v1 with a short-lived service token.
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
}

func NewClient(baseURL, secret string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		secret:  secret,
		http:    &http.Client{Timeout: timeout},
	}
}

// mintToken signs a service JWT the server's internal group accepts.
func (c *Client) mintToken() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    serviceIssuer,
		Audience:  jwt.ClaimStrings{serviceAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.secret))
}

func (c *Client) do(ctx context.Context, method, path string, authed bool, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	if authed {
		if c.secret == "" {
			return fmt.Errorf("SERVICE_TOKEN_SECRET is not set")
		}
		token, err := c.mintToken()
		if err != nil {
			return fmt.Errorf("mint service token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		// Best-effort decode so callers can inspect structured error
		// bodies, e.g. a degraded health report answering 503.
		if out != nil {
			_ = json.Unmarshal(body, out)
		}
		return apiError(resp.StatusCode, body)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func apiError(status int, body []byte) error {
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return fmt.Errorf("server returned %d: %s", status, parsed.Message)
		}
		if parsed.Error != "" {
			return fmt.Errorf("server returned %d: %s", status, parsed.Error)
		}
	}
	return fmt.Errorf("server returned %d", status)
}

// HealthReport is the /v1/health response.
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (c *Client) Health(ctx context.Context) (*HealthReport, error) {
	var report HealthReport
	err := c.do(ctx, http.MethodGet, "/v1/health", false, &report)
	// Degraded health answers 503 with the same body; surface the report
	// when it parsed.
	if err != nil && report.Status == "" {
		return nil, err
	}
	return &report, nil
}

func (c *Client) TriggerJob(ctx context.Context, jobType string) (*domain.JobRecord, error) {
	var record domain.JobRecord
	path := "/internal/v1/jobs/" + url.PathEscape(jobType)
	if err := c.do(ctx, http.MethodPost, path, true, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) JobStatus(ctx context.Context, jobID string) (*domain.JobRecord, error) {
	var record domain.JobRecord
	path := "/internal/v1/jobs/" + url.PathEscape(jobID)
	if err := c.do(ctx, http.MethodGet, path, true, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) ListFeeds(ctx context.Context, limit, offset int) ([]*domain.Feed, error) {
	var resp struct {
		Feeds []*domain.Feed `json:"feeds"`
	}
	path := fmt.Sprintf("/internal/v1/feeds?limit=%d&offset=%d", limit, offset)
	if err := c.do(ctx, http.MethodGet, path, true, &resp); err != nil {
		return nil, err
	}
	return resp.Feeds, nil
}
