package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the API rooted at baseURL, for example
// "http://localhost:8080". The timeout bounds each request.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/") + "/api",
		http:    &http.Client{Timeout: timeout},
	}
}

// do sends one request and decodes a JSON body into out when the server
// sent one. It returns the status code of successful answers.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, c.mapError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, c.mapError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, mapStatus(resp.StatusCode, message(data))
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("%w: %w", ErrUnexpected, err)
		}
	}
	return resp.StatusCode, nil
}

func (c *HTTPClient) mapError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func message(data []byte) string {
	var m struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &m) == nil && m.Message != "" {
		return m.Message
	}
	return strings.TrimSpace(string(data))
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var res struct {
		Status string `json:"status"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/health", nil, &res); err != nil {
		return err
	}
	if res.Status != "OK" {
		return fmt.Errorf("%w: health status %q", ErrUnavailable, res.Status)
	}
	return nil
}

func (c *HTTPClient) ListTasks(ctx context.Context, ownerID string) ([]models.Task, error) {
	path := "/tasks"
	if ownerID != "" {
		path += "?ownerId=" + url.QueryEscape(ownerID)
	}

	out := []models.Task{}
	if _, err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateTask(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	var out models.Task
	if _, err := c.do(ctx, http.MethodPost, "/tasks", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateTask(ctx context.Context, id string, in models.TaskInput) (Reply, error) {
	var out models.Task
	status, err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), in, &out)
	if err != nil {
		return Reply{}, err
	}
	if status == http.StatusNoContent || out.ID == "" {
		return Reply{}, nil
	}
	return Reply{Task: &out}, nil
}

func (c *HTTPClient) DeleteTask(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
	return err
}

func (c *HTTPClient) ReorderTasks(ctx context.Context, pairs []models.TaskOrder) error {
	if pairs == nil {
		pairs = []models.TaskOrder{}
	}
	_, err := c.do(ctx, http.MethodPatch, "/tasks/reorder", pairs, nil)
	return err
}

// ToggleTask sends the new completion flag as a bare JSON boolean.
func (c *HTTPClient) ToggleTask(ctx context.Context, id string, completed bool) (*models.Task, error) {
	var out models.Task
	if _, err := c.do(ctx, http.MethodPatch, "/tasks/"+url.PathEscape(id)+"/toggle", completed, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	out := []models.User{}
	if _, err := c.do(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	var out models.User
	if _, err := c.do(ctx, http.MethodPost, "/users", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id string, in models.UserInput) error {
	_, err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), in, nil)
	return err
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
	return err
}
