// Package service defines the backend-agnostic interface for the remote
// TaskFlow service. Commands and stores never speak HTTP directly; they go
// through this interface, which the real client and the test fake implement.
package service

import (
	"context"

	"taskflow/internal/task"
)

// Credentials is the result of a successful login.
type Credentials struct {
	AccessToken string
}

// TokenProvider supplies the access token for authorized requests.
// The session store implements it.
type TokenProvider interface {
	Token() (string, bool)
}

// Service defines the remote operations the client depends on.
type Service interface {
	// Login exchanges credentials for an access token.
	// Rejected credentials return an *AuthError carrying the service message.
	Login(ctx context.Context, username, password string) (Credentials, error)

	// Signup registers a new account. It does not create a session; the
	// caller must log in afterwards.
	Signup(ctx context.Context, username, password string) error

	// ListTasks returns the full task collection for the session, in
	// service order.
	ListTasks(ctx context.Context) ([]task.Task, error)

	// CreateTask creates a task and returns the service's copy with its
	// assigned id.
	CreateTask(ctx context.Context, n task.NewTask) (task.Task, error)

	// UpdateTask applies a partial update. Unset fields are left untouched
	// server-side. The service returns no task body; callers refetch.
	UpdateTask(ctx context.Context, id int64, p task.Patch) error

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id int64) error
}
