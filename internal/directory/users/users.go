// Package users is an implementation of directory interface over users service REST API.
package users

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/agora-forum/agora/internal/directory"
	"github.com/agora-forum/agora/internal/entities"
)

var log = logrus.WithField("layer", "directory").WithField("package", "users")

// maxBodySize limits a response read from users service.
const maxBodySize = 1 << 20

type client struct {
	url string
	c   *retryablehttp.Client
}

// Options configures the client.
type Options struct {
	Timeout      time.Duration
	Retries      int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type permissionsDTO struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

type userDTO struct {
	ID              int64  `json:"id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// New returns new instance of directory client.
func New(url string, opts Options) directory.Directory {
	c := retryablehttp.NewClient()
	c.Logger = log
	c.RetryMax = opts.Retries
	c.HTTPClient.Timeout = opts.Timeout
	if opts.RetryWaitMin > 0 {
		c.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		c.RetryWaitMax = opts.RetryWaitMax
	}

	return &client{
		url: strings.TrimSuffix(url, "/"),
		c:   c,
	}
}

func (c *client) GetPermissions(ctx context.Context, userID int64) (*entities.Permissions, error) {
	var p permissionsDTO
	if err := c.get(ctx, fmt.Sprintf("/users/%d/permissions", userID), &p); err != nil {
		return nil, err
	}

	return &entities.Permissions{
		UserID: userID,
		Role:   entities.Role(strings.ToUpper(p.Role)),
		Active: p.Active,
	}, nil
}

func (c *client) GetProfile(ctx context.Context, userID int64) (*entities.Profile, error) {
	var u userDTO
	if err := c.get(ctx, fmt.Sprintf("/users/%d", userID), &u); err != nil {
		return nil, err
	}

	return &entities.Profile{
		ID:              userID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
	}, nil
}

func (c *client) Ping(ctx context.Context) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.url+"/actuator/health", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.c.HTTPClient.Do(req.Request)
	if err != nil {
		return fmt.Errorf("%w: %s", directory.ErrUnavailable, err.Error())
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", directory.ErrUnavailable, resp.StatusCode)
	}

	return nil
}

func (c *client) get(ctx context.Context, path string, data interface{}) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.url+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.c.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", directory.ErrUnavailable, err.Error())
	}
	defer resp.Body.Close() // nolint:errcheck

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: failed to read body: %s", directory.ErrUnavailable, err.Error())
	}

	var e envelope
	if err := json.Unmarshal(b, &e); err != nil && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("%w: failed to decode response with status %d: %s", directory.ErrUnavailable, resp.StatusCode, err.Error())
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", directory.ErrUserNotFound, e.Message)
	case resp.StatusCode != http.StatusOK || !e.Success:
		return fmt.Errorf("%w: status %d: %s", directory.ErrUnavailable, resp.StatusCode, e.Message)
	case len(e.Data) == 0 || string(e.Data) == "null":
		return fmt.Errorf("%w: empty data", directory.ErrUserNotFound)
	}

	if err := json.Unmarshal(e.Data, data); err != nil {
		return fmt.Errorf("%w: failed to decode data: %s", directory.ErrUnavailable, err.Error())
	}

	return nil
}
