package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/djougoo/propass-central/internal/config"
	"github.com/djougoo/propass-central/models"
	"github.com/go-resty/resty/v2"
)

var (
	ErrUnauthorized  = errors.New("agent unauthorized")
	ErrServerFailure = errors.New("server failure")
)

// Client talks to the central server over HTTP. It logs in with the device
// account, keeps the issued bearer token, and re-authenticates once on a 401
// before giving up on a call.
type Client struct {
	client   *resty.Client
	deviceID string
	username string
	password string

	mu    sync.RWMutex
	token string
}

// NewClient builds a Client from the agent configuration.
func NewClient(cfg config.AgentConfig) *Client {
	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.ServerAddress, "/")).
		SetTimeout(cfg.RequestTimeout)

	return &Client{
		client:   cli,
		deviceID: cfg.DeviceID,
		username: cfg.Username,
		password: cfg.Password,
	}
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Login authenticates with the device credentials and stores the issued
// token for subsequent calls.
func (c *Client) Login(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.LoginRequest{
			Username: c.username,
			Password: c.password,
			DeviceID: c.deviceID,
		}).
		Post("/api/auth/login")
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return err
	}

	var body models.LoginResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return fmt.Errorf("login response decode: %w", err)
	}
	if body.Token == "" {
		return fmt.Errorf("login response carried no token: %w", ErrUnauthorized)
	}

	c.setToken(body.Token)
	return nil
}

// Push submits the queued items and returns the per-item outcomes. On a 401
// it re-authenticates once and retries the push.
func (c *Client) Push(ctx context.Context, items []models.SyncItem) ([]models.SyncOutcome, error) {
	outcomes, err := c.push(ctx, items)
	if errors.Is(err, ErrUnauthorized) {
		if err := c.Login(ctx); err != nil {
			return nil, err
		}
		return c.push(ctx, items)
	}
	return outcomes, err
}

func (c *Client) push(ctx context.Context, items []models.SyncItem) ([]models.SyncOutcome, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(c.currentToken()).
		SetBody(models.PushRequest{DeviceID: c.deviceID, Queue: items}).
		Post("/api/sync/push")
	if err != nil {
		return nil, fmt.Errorf("push request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}

	var body struct {
		Success bool                 `json:"success"`
		Data    []models.SyncOutcome `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("push response decode: %w", err)
	}

	return body.Data, nil
}

func mapHTTPError(resp *resty.Response) error {
	switch {
	case resp.StatusCode() == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode() >= http.StatusBadRequest:
		return fmt.Errorf("%w: status %d: %s", ErrServerFailure, resp.StatusCode(), resp.Body())
	default:
		return nil
	}
}
