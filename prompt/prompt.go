// Package prompt contains the pure prompt composition functions. Both
// builders are deterministic for identical inputs and perform no I/O.
package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/agentgate/schedule"
)

// SystemParams drive the system prompt. Locale is advisory metadata passed
// through to the model; date and time are rendered in fixed layouts.
type SystemParams struct {
	Date               time.Time
	Locale             string
	Language           string
	MaxContextLoadTime int
	Platforms          []string
	CurrentPlatform    string
}

// ScheduleParams drive the schedule trigger message.
type ScheduleParams struct {
	Schedule schedule.Schedule
	Locale   string
	Date     time.Time
}

// timeBlock renders the shared date/time header lines.
func timeBlock(date time.Time) string {
	return strings.TrimSpace(fmt.Sprintf(`
date: %s
time: %s
`, date.Format("2006-01-02"), date.Format("15:04:05")))
}

// System builds the system prompt: current date/time, response language,
// the context load budget and the platform capability list. Empty platform
// lists and an absent current platform render without error.
func System(params SystemParams) string {
	var b strings.Builder

	b.WriteString("You are a helpful assistant operating inside an automated agent runtime.\n\n")
	b.WriteString(timeBlock(params.Date))
	b.WriteString("\n")

	if params.Locale != "" {
		fmt.Fprintf(&b, "locale: %s\n", params.Locale)
	}
	if params.Language != "" {
		fmt.Fprintf(&b, "\nAlways respond in %s unless the user explicitly asks otherwise.\n", params.Language)
	}

	fmt.Fprintf(&b, "\nContext freshness: loading additional context may take up to %d seconds. Prefer answers from the conversation so far when that budget would be exceeded.\n", params.MaxContextLoadTime)

	if len(params.Platforms) > 0 {
		b.WriteString("\nSupported platforms:\n")
		for _, p := range params.Platforms {
			if p == params.CurrentPlatform {
				fmt.Fprintf(&b, "- %s (current)\n", p)
			} else {
				fmt.Fprintf(&b, "- %s\n", p)
			}
		}
	} else if params.CurrentPlatform != "" {
		fmt.Fprintf(&b, "\nCurrent platform: %s\n", params.CurrentPlatform)
	}

	return strings.TrimSpace(b.String())
}

// Schedule builds the trigger message injected when a schedule fires. The
// body marks itself as system generated so downstream policy never treats it
// as an end-user instruction, and carries the command text verbatim in a
// delimited section.
func Schedule(params ScheduleParams) string {
	maxCalls := "Unlimited"
	if params.Schedule.MaxCalls != nil {
		maxCalls = fmt.Sprintf("%d", *params.Schedule.MaxCalls)
	}

	var next string
	if nextRun := params.Schedule.NextRun(params.Date); !nextRun.IsZero() {
		next = fmt.Sprintf("next-run: %s\n", nextRun.Format("2006-01-02 15:04:05"))
	}

	return strings.TrimSpace(fmt.Sprintf(`
---
notice: **This is a scheduled task automatically sent to you by the system, not the user input**
%s
schedule-name: %s
schedule-description: %s
schedule-id: %s
max-calls: %s
cron-pattern: %s
%s---

**COMMAND**

%s
`,
		timeBlock(params.Date),
		params.Schedule.Name,
		params.Schedule.Description,
		params.Schedule.ID,
		maxCalls,
		params.Schedule.Pattern,
		next,
		params.Schedule.Command,
	))
}
