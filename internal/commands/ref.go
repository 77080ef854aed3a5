package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"taskflow/internal/app"
	"taskflow/internal/task"
	"taskflow/internal/views"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses the 1-based pending-task number from args.
func ParseTaskRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	ref := args[0]
	if !isAllDigits(ref) {
		return 0, fmt.Errorf("invalid task reference: %s", ref)
	}
	num, err := strconv.Atoi(ref)
	if err != nil || num < 1 {
		return 0, fmt.Errorf("task number out of range: %s", ref)
	}
	return num, nil
}

// findPending refreshes the cache and resolves a 1-based number within the
// pending partition. Numbering follows cache order, matching list output.
func findPending(ctx context.Context, a *app.App, num int) (task.Task, error) {
	snap, err := a.Tasks.Refresh(ctx)
	if err != nil {
		return task.Task{}, err
	}
	pending := views.ByStatus(snap, task.StatusPending)
	if num < 1 || num > len(pending) {
		return task.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return pending[num-1], nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
