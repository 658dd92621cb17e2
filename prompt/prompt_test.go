package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/agentgate/schedule"
	"github.com/stretchr/testify/assert"
)

var testDate = time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

func TestSystem(t *testing.T) {
	out := System(SystemParams{
		Date:               testDate,
		Locale:             "en-US",
		Language:           "German",
		MaxContextLoadTime: 5,
		Platforms:          []string{"telegram", "discord", "web"},
		CurrentPlatform:    "discord",
	})

	assert.Contains(t, out, "date: 2025-03-10")
	assert.Contains(t, out, "time: 14:30:00")
	assert.Contains(t, out, "respond in German")
	assert.Contains(t, out, "up to 5 seconds")
	assert.Contains(t, out, "- discord (current)")
	assert.Contains(t, out, "- telegram\n")
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestSystem_MinimalParams(t *testing.T) {
	out := System(SystemParams{Date: testDate, MaxContextLoadTime: 1})

	assert.Contains(t, out, "up to 1 seconds")
	assert.NotContains(t, out, "Supported platforms")
	assert.NotContains(t, out, "locale:")
}

func TestSystem_Deterministic(t *testing.T) {
	params := SystemParams{Date: testDate, MaxContextLoadTime: 3, Platforms: []string{"web"}}
	assert.Equal(t, System(params), System(params))
}

func scheduleFixture() schedule.Schedule {
	return schedule.Schedule{
		ID:          "s1",
		Name:        "daily-report",
		Description: "Summarize yesterday's logs",
		Pattern:     "0 9 * * *",
		Command:     "Summarize yesterday's logs",
	}
}

func TestSchedule(t *testing.T) {
	out := Schedule(ScheduleParams{Schedule: scheduleFixture(), Date: testDate})

	// Command text appears verbatim.
	assert.Contains(t, out, "Summarize yesterday's logs")
	// Self-marks as system generated.
	assert.Contains(t, out, "scheduled task automatically sent to you by the system, not the user input")
	assert.Contains(t, out, "schedule-name: daily-report")
	assert.Contains(t, out, "schedule-id: s1")
	assert.Contains(t, out, "cron-pattern: 0 9 * * *")
	assert.Contains(t, out, "max-calls: Unlimited")
	assert.Contains(t, out, "**COMMAND**")
	// Trimmed output.
	assert.Equal(t, out, strings.TrimSpace(out))
}

func TestSchedule_MaxCalls(t *testing.T) {
	s := scheduleFixture()
	n := 5
	s.MaxCalls = &n

	out := Schedule(ScheduleParams{Schedule: s, Date: testDate})
	assert.Contains(t, out, "max-calls: 5")
	assert.NotContains(t, out, "Unlimited")
}

func TestSchedule_NextRun(t *testing.T) {
	out := Schedule(ScheduleParams{Schedule: scheduleFixture(), Date: testDate})
	// 14:30 on 2025-03-10 rolls to 09:00 next day.
	assert.Contains(t, out, "next-run: 2025-03-11 09:00:00")
}

func TestSchedule_Idempotent(t *testing.T) {
	params := ScheduleParams{Schedule: scheduleFixture(), Date: testDate}
	assert.Equal(t, Schedule(params), Schedule(params))
}
