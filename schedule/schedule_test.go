package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSchedule() Schedule {
	return Schedule{
		ID:          "sched-1",
		Name:        "daily-digest",
		Description: "Summarize unread items",
		Pattern:     "0 9 * * *",
		Command:     "Summarize my unread items",
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validSchedule().Validate())

	s := validSchedule()
	s.ID = ""
	assert.Error(t, s.Validate())

	s = validSchedule()
	s.Name = ""
	assert.Error(t, s.Validate())

	s = validSchedule()
	s.Command = ""
	assert.Error(t, s.Validate())

	s = validSchedule()
	s.Pattern = "not a cron"
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron pattern")
}

func TestValidate_Descriptor(t *testing.T) {
	s := validSchedule()
	s.Pattern = "@hourly"
	assert.NoError(t, s.Validate())
}

func TestNextRun(t *testing.T) {
	s := validSchedule()

	after := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	next := s.NextRun(after)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), next)

	// After today's activation the run rolls over to the next day.
	next = s.NextRun(time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC), next)

	s.Pattern = "garbage"
	assert.True(t, s.NextRun(after).IsZero())
}
