// Package cache owns the authoritative local copy of the task collection
// for the current session. Every mutation goes to the service first and is
// followed by a full refetch; the cache never synthesizes or optimistically
// patches local state. Any 401 invalidates the session and aborts without
// further cache mutation.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"taskflow/internal/service"
	"taskflow/internal/session"
	"taskflow/internal/task"
)

// Cache synchronizes a local task snapshot with the remote service.
type Cache struct {
	mu    sync.Mutex
	svc   service.Service
	sess  *session.Store
	tasks []task.Task

	// Refresh generation numbers. A fetch result is applied only when no
	// newer refresh started after it, so a slow in-flight refresh cannot
	// clobber a later one (last-started-wins).
	started uint64
	applied uint64
}

// New creates a cache bound to a session store and service.
func New(sess *session.Store, svc service.Service) *Cache {
	return &Cache{svc: svc, sess: sess}
}

// Snapshot returns a copy of the current task collection in cache order.
func (c *Cache) Snapshot() []task.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]task.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Len returns the number of cached tasks.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tasks)
}

// Clear drops the snapshot. Registered as a session reset hook so logout
// and invalidation leave no task state behind.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = nil
}

// Refresh fetches the full collection and replaces the snapshot atomically.
// A failed fetch leaves the prior snapshot intact. Payload tasks with
// unknown status or priority fail the whole refresh.
func (c *Cache) Refresh(ctx context.Context) ([]task.Task, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.started++
	gen := c.started
	c.mu.Unlock()

	fetched, err := c.svc.ListTasks(ctx)
	if err != nil {
		return nil, c.authFail(err)
	}
	for _, t := range fetched {
		if err := t.Check(); err != nil {
			return nil, &service.RemoteError{Message: fmt.Sprintf("bad task %d in response: %v", t.ID, err)}
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen < c.started && c.applied > gen {
		// A newer refresh already landed; keep its snapshot.
		logrus.WithField("gen", gen).Debug("cache: stale refresh discarded")
	} else {
		c.tasks = fetched
		c.applied = gen
		logrus.WithField("tasks", len(fetched)).Debug("cache: refreshed")
	}
	out := make([]task.Task, len(c.tasks))
	copy(out, c.tasks)
	return out, nil
}

// Add validates the input locally, creates the task remotely, and refetches
// so the server-assigned id and any server-computed fields are honored.
// Returns the created task as seen in the fresh snapshot.
func (c *Cache) Add(ctx context.Context, n task.NewTask) (task.Task, error) {
	if err := c.requireSession(); err != nil {
		return task.Task{}, err
	}
	n, err := n.Normalize()
	if err != nil {
		return task.Task{}, err
	}

	created, err := c.svc.CreateTask(ctx, n)
	if err != nil {
		return task.Task{}, c.authFail(err)
	}

	snap, err := c.Refresh(ctx)
	if err != nil {
		return task.Task{}, err
	}
	for _, t := range snap {
		if t.ID == created.ID {
			return t, nil
		}
	}
	// The service accepted the create; trust its copy even if the refetch
	// raced with a concurrent delete.
	return created, nil
}

// Edit sends only the set fields of the patch and refetches. Returns the
// task as seen in the fresh snapshot.
func (c *Cache) Edit(ctx context.Context, id int64, p task.Patch) (task.Task, error) {
	if err := c.requireSession(); err != nil {
		return task.Task{}, err
	}
	if err := p.Validate(); err != nil {
		return task.Task{}, err
	}

	if err := c.svc.UpdateTask(ctx, id, p); err != nil {
		return task.Task{}, c.authFail(err)
	}

	snap, err := c.Refresh(ctx)
	if err != nil {
		return task.Task{}, err
	}
	for _, t := range snap {
		if t.ID == id {
			return t, nil
		}
	}
	return task.Task{}, &service.RemoteError{Message: fmt.Sprintf("task %d missing after update", id)}
}

// Complete marks a task completed. Modeled as a status transition through
// the edit path, not a separate entity.
func (c *Cache) Complete(ctx context.Context, id int64) error {
	status := task.StatusCompleted
	_, err := c.Edit(ctx, id, task.Patch{Status: &status})
	return err
}

// Delete removes the task remotely and refetches. No locally-optimistic
// removal happens before confirmation.
func (c *Cache) Delete(ctx context.Context, id int64) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	if err := c.svc.DeleteTask(ctx, id); err != nil {
		return c.authFail(err)
	}
	_, err := c.Refresh(ctx)
	return err
}

func (c *Cache) requireSession() error {
	if _, ok := c.sess.Current(); !ok {
		return session.ErrNoSession
	}
	return nil
}

// authFail converts a 401 into session invalidation. The session teardown
// hooks clear this cache, so no lock may be held here.
func (c *Cache) authFail(err error) error {
	if errors.Is(err, service.ErrUnauthorized) {
		c.sess.Invalidate()
	}
	return err
}
