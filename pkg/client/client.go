// Package client is the Go counterpart of the dashboard front-end: an API
// gateway over the REST endpoints, an explicit auth session, and an
// in-memory team state with pure view derivations.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/RAJEEVRANJAN0001/Employee-Task-Tracker/internal/models"
)

// APIError is a non-2xx response decoded from the {message} envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// Client wraps HTTP calls to the API layer, attaching the bearer token to
// every request once one is set.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.Mutex
	token string
}

// New creates a client for an API at baseURL (e.g. "http://localhost:5001").
func New(baseURL string) *Client {
	return &Client{baseURL: baseURL, httpClient: &http.Client{}}
}

// SetToken installs (or with "" clears) the bearer token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		if envelope.Message == "" {
			envelope.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: envelope.Message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// VerifyResponse is returned by the verify endpoint.
type VerifyResponse struct {
	Valid bool              `json:"valid"`
	User  models.PublicUser `json:"user"`
}

func (c *Client) Signup(ctx context.Context, req models.SignupRequest) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/signup", req, &out)
	return out, err
}

func (c *Client) Signin(ctx context.Context, req models.SigninRequest) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/signin", req, &out)
	return out, err
}

func (c *Client) VerifyToken(ctx context.Context) (VerifyResponse, error) {
	var out VerifyResponse
	err := c.do(ctx, http.MethodGet, "/auth/verify", nil, &out)
	return out, err
}

func (c *Client) UpdatePassword(ctx context.Context, req models.UpdatePasswordRequest) error {
	return c.do(ctx, http.MethodPut, "/auth/update-password", req, nil)
}

func (c *Client) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	var out []models.Employee
	err := c.do(ctx, http.MethodGet, "/employees", nil, &out)
	return out, err
}

func (c *Client) AddEmployee(ctx context.Context, req models.CreateEmployeeDTO) (models.Employee, error) {
	var out models.Employee
	err := c.do(ctx, http.MethodPost, "/employees", req, &out)
	return out, err
}

func (c *Client) UpdateEmployee(ctx context.Context, id string, req models.UpdateEmployeeDTO) (models.Employee, error) {
	var out models.Employee
	err := c.do(ctx, http.MethodPut, "/employees/"+id, req, &out)
	return out, err
}

func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/employees/"+id, nil, nil)
}

func (c *Client) AddTask(ctx context.Context, employeeID string, req models.CreateTaskDTO) (models.Employee, error) {
	var out models.Employee
	err := c.do(ctx, http.MethodPost, "/employees/"+employeeID+"/tasks", req, &out)
	return out, err
}

func (c *Client) UpdateTaskStatus(ctx context.Context, employeeID, taskID string, status models.TaskStatus) (models.Employee, error) {
	var out models.Employee
	err := c.do(ctx, http.MethodPatch, "/employees/"+employeeID+"/tasks/"+taskID,
		models.UpdateTaskStatusDTO{Status: status}, &out)
	return out, err
}

// Seed attempts the idempotent bulk load and returns the server's message.
func (c *Client) Seed(ctx context.Context, employees []models.CreateEmployeeDTO) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodPost, "/seed", employees, &out)
	return out.Message, err
}
