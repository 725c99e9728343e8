package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/osse101/FishBot_Go/internal/domain"
	"github.com/osse101/FishBot_Go/internal/logger"
)

// APIError is a non-2xx answer from the game server
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%sstatus %d", apiErrorPrefix, e.Status)
	}
	return apiErrorPrefix + e.Message
}

// APIClient talks to the FishBot HTTP API
type APIClient struct {
	BaseURL    string
	Client     *http.Client
	APIKey     string
	MaxRetries int
	RetryDelay time.Duration
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL:    baseURL,
		Client:     &http.Client{Timeout: defaultClientTimeout},
		APIKey:     apiKey,
		MaxRetries: defaultMaxRetries,
		RetryDelay: defaultRetryDelay,
	}
}

// doRequest performs an HTTP request with retry on transport and 5xx failures
// and decodes a 2xx body into out when out is non-nil.
func (c *APIClient) doRequest(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody []byte
	if body != nil {
		var err error
		if reqBody, err = json.Marshal(body); err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	log := logger.FromContext(ctx)
	target := c.BaseURL + apiPrefix + path

	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.RetryDelay * time.Duration(1<<uint(attempt-1))
			log.Info(LogMsgRetrying, "attempt", attempt, "path", path, "delay", delay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(reqBody))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set(headerAPIKey, c.APIKey)
		}
		if id, ok := logger.RequestIDFromContext(ctx); ok {
			req.Header.Set("X-Request-ID", id)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			log.Warn(LogMsgRequestFailed, "error", err, "attempt", attempt)
			continue
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			lastErr = &APIError{Status: resp.StatusCode}
			log.Warn(LogMsgServerError, "status", resp.StatusCode, "attempt", attempt)
			continue
		}

		err = decodeResponse(resp, out)
		resp.Body.Close()
		return err
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func decodeResponse(resp *http.Response, out interface{}) error {
	if resp.StatusCode >= http.StatusBadRequest {
		var errResp struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return &APIError{Status: resp.StatusCode, Message: errResp.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func userPath(discordID, suffix string) string {
	return "/users/" + domain.PlatformDiscord + "/" + url.PathEscape(discordID) + suffix
}

// RegisterUser registers the Discord user, or returns the existing account
func (c *APIClient) RegisterUser(ctx context.Context, discordID, username string) (*domain.User, error) {
	req := map[string]string{
		"platform":    domain.PlatformDiscord,
		"platform_id": discordID,
		"username":    username,
	}
	var resp struct {
		User    domain.User `json:"user"`
		Created bool        `json:"created"`
	}
	if err := c.doRequest(ctx, http.MethodPost, "/users", req, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *APIClient) Profile(ctx context.Context, discordID string) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.doRequest(ctx, http.MethodGet, userPath(discordID, ""), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *APIClient) Fish(ctx context.Context, discordID string) (*domain.FishingResult, error) {
	var res domain.FishingResult
	if err := c.doRequest(ctx, http.MethodPost, userPath(discordID, "/fish"), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Draw pulls once or ten times from a gacha pool
func (c *APIClient) Draw(ctx context.Context, discordID string, poolID int, ten bool) (*domain.GachaResult, error) {
	mode := "/single"
	if ten {
		mode = "/ten"
	}
	var res domain.GachaResult
	path := userPath(discordID, fmt.Sprintf("/gacha/%d%s", poolID, mode))
	if err := c.doRequest(ctx, http.MethodPost, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *APIClient) GachaPools(ctx context.Context) ([]domain.GachaPool, error) {
	var pools []domain.GachaPool
	if err := c.doRequest(ctx, http.MethodGet, "/gacha/pools", nil, &pools); err != nil {
		return nil, err
	}
	return pools, nil
}

func (c *APIClient) SignIn(ctx context.Context, discordID string) (*domain.SignInResult, error) {
	var res domain.SignInResult
	if err := c.doRequest(ctx, http.MethodPost, userPath(discordID, "/signin"), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *APIClient) Technologies(ctx context.Context, discordID string) ([]domain.TechStatus, error) {
	var list []domain.TechStatus
	if err := c.doRequest(ctx, http.MethodGet, userPath(discordID, "/tech"), nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *APIClient) UnlockTechnology(ctx context.Context, discordID, key string) (*domain.Technology, error) {
	var tech domain.Technology
	path := userPath(discordID, "/tech/"+url.PathEscape(key)+"/unlock")
	if err := c.doRequest(ctx, http.MethodPost, path, nil, &tech); err != nil {
		return nil, err
	}
	return &tech, nil
}

// Healthy reports whether the API answers its liveness check
func (c *APIClient) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/healthz", nil)
	if err != nil {
		return false
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		slog.Debug(LogMsgRequestFailed, "error", err)
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
