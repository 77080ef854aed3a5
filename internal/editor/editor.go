// Package editor enforces the one-draft-at-a-time editing contract. A draft
// is seeded from a cached task, mutated in memory only, and either committed
// through the task cache or discarded. Beginning an edit while another draft
// exists replaces it; unsaved changes are abandoned without confirmation.
package editor

import (
	"context"
	"errors"
	"sync"

	"taskflow/internal/cache"
	"taskflow/internal/task"
)

// ErrNoDraft is returned when a draft operation is attempted while idle.
var ErrNoDraft = errors.New("no edit in progress")

// Draft holds the in-progress edit of one task.
type Draft struct {
	TaskID      int64
	Title       string
	Description string
	Deadline    string
	Priority    task.Priority
}

// Coordinator mediates the single mutable draft. Idle -> Editing on Begin;
// back to Idle on commit success or cancel. Begin while Editing replaces
// the draft.
type Coordinator struct {
	mu     sync.Mutex
	tasks  *cache.Cache
	draft  *Draft
	seeded Draft // values at Begin time, for changed-field detection
}

// New creates a coordinator bound to the task cache.
func New(tasks *cache.Cache) *Coordinator {
	return &Coordinator{tasks: tasks}
}

// Begin starts editing t, seeding the draft from its current values. Any
// prior draft, for this task or another, is silently discarded.
func (c *Coordinator) Begin(t task.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := Draft{
		TaskID:      t.ID,
		Title:       t.Title,
		Description: t.Description,
		Deadline:    t.Deadline,
		Priority:    t.Priority,
	}
	c.draft = &d
	c.seeded = d
}

// Active returns the current draft, if any.
func (c *Coordinator) Active() (Draft, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return Draft{}, false
	}
	return *c.draft, true
}

// SetTitle updates the draft title. The cache is never touched.
func (c *Coordinator) SetTitle(v string) error {
	return c.update(func(d *Draft) { d.Title = v })
}

// SetDescription updates the draft description.
func (c *Coordinator) SetDescription(v string) error {
	return c.update(func(d *Draft) { d.Description = v })
}

// SetDeadline updates the draft deadline.
func (c *Coordinator) SetDeadline(v string) error {
	return c.update(func(d *Draft) { d.Deadline = v })
}

// SetPriority updates the draft priority.
func (c *Coordinator) SetPriority(v task.Priority) error {
	return c.update(func(d *Draft) { d.Priority = v })
}

func (c *Coordinator) update(fn func(*Draft)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return ErrNoDraft
	}
	fn(c.draft)
	return nil
}

// Commit validates the draft, sends only the changed fields through the
// cache's edit path, and clears the draft on success. On failure the draft
// is retained so the caller can retry. A draft with no changes clears
// without a network call.
func (c *Coordinator) Commit(ctx context.Context) (task.Task, error) {
	c.mu.Lock()
	if c.draft == nil {
		c.mu.Unlock()
		return task.Task{}, ErrNoDraft
	}
	d := *c.draft
	seeded := c.seeded
	c.mu.Unlock()

	p := changed(seeded, d)
	if err := p.Validate(); err != nil {
		return task.Task{}, err
	}
	if p.IsZero() {
		c.Cancel()
		return task.Task{}, nil
	}

	t, err := c.tasks.Edit(ctx, d.TaskID, p)
	if err != nil {
		return task.Task{}, err
	}

	c.mu.Lock()
	// Only clear if the committed draft is still the live one; a Begin
	// racing with a slow commit must not lose its fresh draft.
	if c.draft != nil && *c.draft == d {
		c.draft = nil
	}
	c.mu.Unlock()
	return t, nil
}

// Cancel discards the draft without contacting the service.
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = nil
}

// changed computes the patch of fields that differ from the seeded values.
func changed(seeded, d Draft) task.Patch {
	var p task.Patch
	if d.Title != seeded.Title {
		v := d.Title
		p.Title = &v
	}
	if d.Description != seeded.Description {
		v := d.Description
		p.Description = &v
	}
	if d.Deadline != seeded.Deadline {
		v := d.Deadline
		p.Deadline = &v
	}
	if d.Priority != seeded.Priority {
		v := d.Priority
		p.Priority = &v
	}
	return p
}
