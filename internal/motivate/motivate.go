// Package motivate provides the motivational one-liners shown after task
// activity. Pull-based only; any scheduling or popup behavior belongs to
// the caller.
package motivate

import "math/rand"

var messages = []string{
	"You can do it!",
	"Every task completed is a victory!",
	"Stay focused and crush it!",
	"One step at a time!",
	"Productivity is power!",
}

// Pick returns a random motivational message.
func Pick() string {
	return messages[rand.Intn(len(messages))]
}
