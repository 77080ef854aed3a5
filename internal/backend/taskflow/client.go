// Package taskflow implements service.Service against the TaskFlow REST
// API. Commands never build HTTP requests directly.
package taskflow

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"taskflow/internal/config"
	"taskflow/internal/service"
	"taskflow/internal/session"
	"taskflow/internal/task"
)

// APITimeout is the timeout for API calls.
const APITimeout = 5 * time.Second

// Client implements service.Service over the TaskFlow REST contract.
type Client struct {
	base  string
	auth  *http.Client // injects the bearer token
	plain *http.Client // login/signup, no auth header
}

// New creates a client for the configured server. Authorized requests draw
// their bearer token from tokens on every call, so a fresh login is picked
// up without rebuilding the client.
func New(cfg *config.Config, tokens service.TokenProvider) *Client {
	return &Client{
		base: strings.TrimRight(cfg.ServerURL, "/"),
		auth: &http.Client{
			Transport: &oauth2.Transport{Source: tokenSource{tokens}},
		},
		plain: &http.Client{},
	}
}

// tokenSource adapts the session store to oauth2.TokenSource so the oauth2
// transport handles the Authorization header.
type tokenSource struct {
	tokens service.TokenProvider
}

func (s tokenSource) Token() (*oauth2.Token, error) {
	tok, ok := s.tokens.Token()
	if !ok {
		return nil, session.ErrNoSession
	}
	return &oauth2.Token{AccessToken: tok}, nil
}

type messageBody struct {
	Message string `json:"message"`
}

type credentialsBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login implements service.Service.
func (c *Client) Login(ctx context.Context, username, password string) (service.Credentials, error) {
	var resp struct {
		AccessToken string `json:"access_token"`
		Message     string `json:"message"`
	}
	status, err := c.do(ctx, c.plain, http.MethodPost, "/login", credentialsBody{username, password}, &resp)
	if err != nil {
		return service.Credentials{}, err
	}
	if status != http.StatusOK || resp.AccessToken == "" {
		return service.Credentials{}, &service.AuthError{Message: orDefault(resp.Message, "login failed")}
	}
	return service.Credentials{AccessToken: resp.AccessToken}, nil
}

// Signup implements service.Service.
func (c *Client) Signup(ctx context.Context, username, password string) error {
	var resp messageBody
	status, err := c.do(ctx, c.plain, http.MethodPost, "/signup", credentialsBody{username, password}, &resp)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return &service.AuthError{Message: orDefault(resp.Message, "signup failed")}
	}
	return nil
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]task.Task, error) {
	var tasks []task.Task
	status, err := c.do(ctx, c.auth, http.MethodGet, "/tasks", nil, &tasks)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, nil); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, n task.NewTask) (task.Task, error) {
	var resp struct {
		Message string    `json:"message"`
		Task    task.Task `json:"task"`
	}
	status, err := c.do(ctx, c.auth, http.MethodPost, "/tasks", n, &resp)
	if err != nil {
		return task.Task{}, err
	}
	if err := checkStatus(status, &messageBody{resp.Message}); err != nil {
		return task.Task{}, err
	}
	return resp.Task, nil
}

// UpdateTask implements service.Service. Only the set fields of the patch
// appear in the request body.
func (c *Client) UpdateTask(ctx context.Context, id int64, p task.Patch) error {
	var resp messageBody
	status, err := c.do(ctx, c.auth, http.MethodPut, fmt.Sprintf("/tasks/%d", id), p, &resp)
	if err != nil {
		return err
	}
	return checkStatus(status, &resp)
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	var resp messageBody
	status, err := c.do(ctx, c.auth, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, &resp)
	if err != nil {
		return err
	}
	return checkStatus(status, &resp)
}

// do sends one request and decodes the response body into out, if non-nil.
// Returns the HTTP status, or a typed error for transport failures and 401s.
func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, body, out any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := sonic.Marshal(body)
		if err != nil {
			return 0, &service.RemoteError{Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return 0, &service.RemoteError{Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)

	resp, err := hc.Do(req)
	if err != nil {
		return 0, wrapTransport(err)
	}
	defer resp.Body.Close()

	logrus.WithFields(logrus.Fields{
		"method":     method,
		"path":       path,
		"status":     resp.StatusCode,
		"request_id": reqID,
	}).Debug("taskflow: request")

	// A 401 on an authorized request means the session is dead. Login and
	// signup go through the plain client and report their own rejections.
	if hc == c.auth && resp.StatusCode == http.StatusUnauthorized {
		return resp.StatusCode, service.ErrUnauthorized
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, &service.RemoteError{StatusCode: resp.StatusCode, Err: err}
	}
	if out != nil && len(data) > 0 {
		if err := sonic.Unmarshal(data, out); err != nil {
			// A success response the client cannot decode must not pass
			// for a valid one. Error bodies may legitimately not match
			// the success shape; status handling decides what to surface.
			if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
				return resp.StatusCode, &service.RemoteError{
					StatusCode: resp.StatusCode,
					Message:    "malformed response body",
					Err:        err,
				}
			}
		}
	}
	return resp.StatusCode, nil
}

// checkStatus maps uncovered non-2xx responses to RemoteError.
func checkStatus(status int, msg *messageBody) error {
	if status >= 200 && status <= 299 {
		return nil
	}
	m := ""
	if msg != nil {
		m = msg.Message
	}
	return &service.RemoteError{StatusCode: status, Message: m}
}

func orDefault(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}

func wrapTransport(err error) error {
	if strings.Contains(err.Error(), "context deadline exceeded") {
		return &service.RemoteError{Message: "request timed out", Err: err}
	}
	return &service.RemoteError{Err: err}
}
