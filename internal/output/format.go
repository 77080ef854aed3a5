// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskflow/internal/task"
	"taskflow/internal/views"
)

const (
	// SectionSeparator is the separator line for status sections.
	SectionSeparator = "------------"

	// summaryBarWidth is the width of a full summary bar.
	summaryBarWidth = 20
)

// FormatTask formats a task line.
// Format: "{N:>4}  {TITLE} [{PRIORITY}]" plus optional "due {DEADLINE}".
func FormatTask(w io.Writer, num int, t task.Task) {
	line := fmt.Sprintf("%4d  %s [%s]", num, normalizeTitle(t.Title), t.Priority)
	if t.Deadline != "" {
		line += fmt.Sprintf("  due %s", t.Deadline)
	}
	fmt.Fprintln(w, line)
}

// FormatTaskDetail formats a task line followed by its description, if any.
func FormatTaskDetail(w io.Writer, num int, t task.Task) {
	FormatTask(w, num, t)
	if desc := strings.TrimSpace(t.Description); desc != "" {
		fmt.Fprintf(w, "      %s\n", desc)
	}
}

// FormatSectionHeader formats a status section header.
func FormatSectionHeader(w io.Writer, title string) {
	fmt.Fprintln(w, SectionSeparator)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, SectionSeparator)
}

// FormatSummary renders the pending/completed counts as labeled bars, the
// CLI stand-in for the web client's summary chart.
func FormatSummary(w io.Writer, s views.Summary) {
	total := s.Pending + s.Completed
	fmt.Fprintf(w, "pending    %s %d\n", bar(s.Pending, total), s.Pending)
	fmt.Fprintf(w, "completed  %s %d\n", bar(s.Completed, total), s.Completed)
}

func bar(n, total int) string {
	if total == 0 {
		return strings.Repeat(".", summaryBarWidth)
	}
	filled := n * summaryBarWidth / total
	return strings.Repeat("#", filled) + strings.Repeat(".", summaryBarWidth-filled)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
