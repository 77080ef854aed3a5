// Package views computes read-only projections of a task cache snapshot.
// Every function is pure and stateless; results are recomputed on each
// read, which is fine at the list sizes a single-user tool sees.
package views

import (
	"strings"

	"taskflow/internal/task"
)

// Summary holds the aggregate counts for the status partition.
type Summary struct {
	Pending   int
	Completed int
}

// ByStatus returns the tasks whose status matches, preserving cache order.
func ByStatus(snapshot []task.Task, status task.Status) []task.Task {
	var out []task.Task
	for _, t := range snapshot {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// Search returns the tasks whose title or description contains term,
// case-insensitively. An empty term matches everything, order unchanged.
func Search(snapshot []task.Task, term string) []task.Task {
	if term == "" {
		out := make([]task.Task, len(snapshot))
		copy(out, snapshot)
		return out
	}
	needle := strings.ToLower(term)
	var out []task.Task
	for _, t := range snapshot {
		if strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle) {
			out = append(out, t)
		}
	}
	return out
}

// Counts returns the partition sizes. Pending plus completed always equals
// the snapshot length because the status enum is closed.
func Counts(snapshot []task.Task) Summary {
	var s Summary
	for _, t := range snapshot {
		if t.Status == task.StatusCompleted {
			s.Completed++
		} else {
			s.Pending++
		}
	}
	return s
}
