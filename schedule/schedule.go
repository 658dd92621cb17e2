// Package schedule defines the recurring task descriptor handed to the agent
// when a scheduler fires, plus cron pattern validation and next-run
// computation.
package schedule

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// parser accepts standard five-field cron expressions (minute through
// day-of-week) as well as descriptors like @daily.
var parser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Schedule describes a recurring task. MaxCalls is nil for unlimited
// invocations; the scheduler owning the task is responsible for enforcing it.
type Schedule struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Pattern     string `json:"pattern"`
	MaxCalls    *int   `json:"maxCalls,omitempty"`
	Command     string `json:"command"`
}

// Validate checks that the schedule is well formed: non-empty identifying
// fields, a parseable cron pattern and a command to run.
func (s Schedule) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("schedule id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("schedule name is required")
	}
	if s.Command == "" {
		return fmt.Errorf("schedule command is required")
	}
	if _, err := parser.Parse(s.Pattern); err != nil {
		return fmt.Errorf("invalid cron pattern %q: %w", s.Pattern, err)
	}

	return nil
}

// NextRun returns the first activation after the given time. The pattern must
// have been validated beforehand; an unparseable pattern yields the zero time.
func (s Schedule) NextRun(after time.Time) time.Time {
	sched, err := parser.Parse(s.Pattern)
	if err != nil {
		return time.Time{}
	}

	return sched.Next(after)
}
