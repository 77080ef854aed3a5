// Package task defines the task model shared by the cache, editor, and
// remote backend. Priority and status are closed enumerations: values
// outside them are rejected at the boundary, whether they come from user
// input or from a remote payload.
package task

import (
	"fmt"
	"strings"
	"time"
)

// Priority is a task priority level.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Status is a task lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// DeadlineLayout is the wire format for deadlines.
const DeadlineLayout = "2006-01-02"

// Task represents a single task item as held in the cache.
type Task struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Deadline    string   `json:"deadline"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

// NewTask is the validated input for creating a task.
type NewTask struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Deadline    string   `json:"deadline"`
	Priority    Priority `json:"priority"`
}

// Patch is a partial update. Nil fields are left untouched server-side.
type Patch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Deadline    *string   `json:"deadline,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Status      *Status   `json:"status,omitempty"`
}

// ValidationError reports a field rejected before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ValidPriority reports whether p is a member of the priority enum.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// ValidStatus reports whether s is a member of the status enum.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusCompleted:
		return true
	default:
		return false
	}
}

// ParsePriority parses a user-supplied priority, case-insensitively.
// An empty string defaults to Low.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PriorityLow, nil
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	default:
		return "", invalidf("priority", "must be one of Low, Medium, High: %s", s)
	}
}

// ValidDeadline checks that s is empty or a YYYY-MM-DD date.
func ValidDeadline(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(DeadlineLayout, s); err != nil {
		return invalidf("deadline", "must be YYYY-MM-DD: %s", s)
	}
	return nil
}

// Normalize trims the title and applies the Low default, then validates.
// Returns the normalized input or a ValidationError.
func (n NewTask) Normalize() (NewTask, error) {
	n.Title = strings.TrimSpace(n.Title)
	if n.Title == "" {
		return NewTask{}, invalidf("title", "must not be empty")
	}
	n.Description = strings.TrimSpace(n.Description)
	if n.Priority == "" {
		n.Priority = PriorityLow
	}
	if !ValidPriority(n.Priority) {
		return NewTask{}, invalidf("priority", "must be one of Low, Medium, High: %s", n.Priority)
	}
	if err := ValidDeadline(n.Deadline); err != nil {
		return NewTask{}, err
	}
	return n, nil
}

// Validate checks each set field of the patch against the same rules the
// add path applies.
func (p Patch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalidf("title", "must not be empty")
	}
	if p.Priority != nil && !ValidPriority(*p.Priority) {
		return invalidf("priority", "must be one of Low, Medium, High: %s", *p.Priority)
	}
	if p.Status != nil && !ValidStatus(*p.Status) {
		return invalidf("status", "must be pending or completed: %s", *p.Status)
	}
	if p.Deadline != nil {
		if err := ValidDeadline(*p.Deadline); err != nil {
			return err
		}
	}
	return nil
}

// IsZero reports whether the patch sets no fields.
func (p Patch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.Deadline == nil &&
		p.Priority == nil && p.Status == nil
}

// Check validates a task received from the remote service. Unknown enum
// values are rejected rather than trusted.
func (t Task) Check() error {
	if !ValidStatus(t.Status) {
		return invalidf("status", "unknown value from service: %s", t.Status)
	}
	if !ValidPriority(t.Priority) {
		return invalidf("priority", "unknown value from service: %s", t.Priority)
	}
	return nil
}
