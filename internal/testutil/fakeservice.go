// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"taskflow/internal/service"
	"taskflow/internal/task"
)

// FakeService is an in-memory implementation of service.Service for testing.
// It mirrors the TaskFlow backend's behavior: ids are assigned on create,
// updates apply only the set patch fields, and rejections carry the
// backend's messages.
type FakeService struct {
	mu       sync.RWMutex
	accounts map[string]string // username -> password
	tasks    []task.Task
	nextID   int64

	// Error injection for testing
	LoginErr      error
	SignupErr     error
	ListTasksErr  error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error

	// Call counters
	ListCalls int

	// ListTasksHook, if set, runs after the result is captured and before
	// ListTasks returns. Tests use it to stall an in-flight fetch.
	ListTasksHook func()
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		accounts: make(map[string]string),
		nextID:   1,
	}
}

// AddAccount registers an account without going through Signup.
func (f *FakeService) AddAccount(username, password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[username] = password
}

// SeedTask adds a task directly, bypassing CreateTask.
func (f *FakeService) SeedTask(t task.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID == 0 {
		t.ID = f.nextID
	}
	if t.ID >= f.nextID {
		f.nextID = t.ID + 1
	}
	if t.Status == "" {
		t.Status = task.StatusPending
	}
	if t.Priority == "" {
		t.Priority = task.PriorityLow
	}
	f.tasks = append(f.tasks, t)
}

// Tasks returns a copy of the stored tasks.
func (f *FakeService) Tasks() []task.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]task.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, username, password string) (service.Credentials, error) {
	if f.LoginErr != nil {
		return service.Credentials{}, f.LoginErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if pw, ok := f.accounts[username]; !ok || pw != password {
		return service.Credentials{}, &service.AuthError{Message: "Invalid username or password"}
	}
	return service.Credentials{AccessToken: "token-" + username}, nil
}

// Signup implements service.Service.
func (f *FakeService) Signup(ctx context.Context, username, password string) error {
	if f.SignupErr != nil {
		return f.SignupErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.accounts[username]; exists {
		return &service.AuthError{Message: "Username already exists"}
	}
	f.accounts[username] = password
	return nil
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]task.Task, error) {
	f.mu.Lock()
	f.ListCalls++
	f.mu.Unlock()
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	out := f.Tasks()
	if f.ListTasksHook != nil {
		f.ListTasksHook()
	}
	return out, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, n task.NewTask) (task.Task, error) {
	if f.CreateTaskErr != nil {
		return task.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := task.Task{
		ID:          f.nextID,
		Title:       n.Title,
		Description: n.Description,
		Deadline:    n.Deadline,
		Priority:    n.Priority,
		Status:      task.StatusPending,
	}
	f.nextID++
	f.tasks = append(f.tasks, t)
	return t, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id int64, p task.Patch) error {
	if f.UpdateTaskErr != nil {
		return f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		if p.Title != nil {
			f.tasks[i].Title = *p.Title
		}
		if p.Description != nil {
			f.tasks[i].Description = *p.Description
		}
		if p.Deadline != nil {
			f.tasks[i].Deadline = *p.Deadline
		}
		if p.Priority != nil {
			f.tasks[i].Priority = *p.Priority
		}
		if p.Status != nil {
			f.tasks[i].Status = *p.Status
		}
		return nil
	}
	return &service.RemoteError{StatusCode: 404, Message: "Task not found"}
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int64) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return &service.RemoteError{StatusCode: 404, Message: "Task not found"}
}
