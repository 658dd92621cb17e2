package agentgate

import (
	"context"
	"testing"
	"time"

	"github.com/hupe1980/agentgate/core"
	"github.com/hupe1980/agentgate/gateway"
	"github.com/hupe1980/agentgate/model"
	"github.com/hupe1980/agentgate/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockBinder(m model.Model) gateway.Binder {
	return gateway.BinderFunc(func(_ context.Context, _ gateway.Credentials, _ string) (model.Model, error) {
		return m, nil
	})
}

func newTestAgent(m model.Model) *Agent {
	return New(Config{
		APIKey:             "test-key",
		Model:              "test-model",
		ClientType:         gateway.ClientTypeOpenAI,
		MaxContextLoadTime: 5,
	}, func(o *Options) {
		o.Binder = mockBinder(m)
		o.Clock = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	})
}

func TestAsk(t *testing.T) {
	m := model.NewMockModel("test-model", "test")
	m.AddResponse("Hello", "Hi!")

	a := newTestAgent(m)

	res, err := a.Ask(context.Background(), Input{Query: "Hello"})
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, core.RoleAssistant, res.Messages[0].Role)

	// Session grew by the user turn plus every returned message.
	history := a.Messages()
	require.Len(t, history, 2)
	assert.Equal(t, core.RoleUser, history[0].Role)
	assert.Equal(t, "Hello", history[0].Text())
	assert.Equal(t, "Hi!", history[1].Text())
}

func TestAsk_SequentialCallsAccumulate(t *testing.T) {
	m := model.NewMockModel("test-model", "test")
	m.AddResponse("one", "first")
	m.AddResponse("two", "second")

	a := newTestAgent(m)

	_, err := a.Ask(context.Background(), Input{Query: "one"})
	require.NoError(t, err)
	_, err = a.Ask(context.Background(), Input{Query: "two"})
	require.NoError(t, err)

	history := a.Messages()
	require.Len(t, history, 4)
	assert.Equal(t, "one", history[0].Text())
	assert.Equal(t, "first", history[1].Text())
	assert.Equal(t, "two", history[2].Text())
	assert.Equal(t, "second", history[3].Text())
}

func TestAsk_PriorMessagesAppended(t *testing.T) {
	m := model.NewMockModel("test-model", "test")

	a := newTestAgent(m)

	prior := []core.Message{
		core.NewUserMessage("earlier question"),
		core.NewAssistantMessage("earlier answer"),
	}

	_, err := a.Ask(context.Background(), Input{Messages: prior, Query: "follow up"})
	require.NoError(t, err)

	history := a.Messages()
	require.GreaterOrEqual(t, len(history), 4)
	assert.Equal(t, "earlier question", history[0].Text())
	assert.Equal(t, "earlier answer", history[1].Text())
	assert.Equal(t, "follow up", history[2].Text())
}

func TestStream(t *testing.T) {
	m := model.NewMockModel("test-model", "test")
	m.AddResponse("Hi", "ok")

	a := newTestAgent(m)

	s, err := a.Stream(context.Background(), Input{Query: "Hi"})
	require.NoError(t, err)

	var deltas string
	for ev := range s.Events() {
		if d, ok := ev.(core.TextDeltaEvent); ok {
			deltas += d.Text
		}
	}

	res, err := s.Wait()
	require.NoError(t, err)
	assert.Equal(t, "ok", deltas)
	require.Len(t, res.Messages, 1)

	// Final messages folded into the session exactly once.
	require.Len(t, a.Messages(), 2)
	_, err = s.Wait()
	require.NoError(t, err)
	assert.Len(t, a.Messages(), 2)
}

func TestTriggerSchedule(t *testing.T) {
	m := model.NewMockModel("test-model", "test")

	a := newTestAgent(m)

	sched := schedule.Schedule{
		ID:          "s1",
		Name:        "daily-report",
		Description: "Summarize logs",
		Pattern:     "0 9 * * *",
		Command:     "Summarize yesterday's logs",
	}

	res, err := a.TriggerSchedule(context.Background(), Input{}, sched)
	require.NoError(t, err)
	require.NotEmpty(t, res.Messages)

	history := a.Messages()
	require.GreaterOrEqual(t, len(history), 2)

	trigger := history[0].Text()
	assert.Contains(t, trigger, "daily-report")
	assert.Contains(t, trigger, "0 9 * * *")
	assert.Contains(t, trigger, "Summarize yesterday's logs")
	assert.Contains(t, trigger, "not the user input")
}

func TestMessages_ReturnsCopy(t *testing.T) {
	m := model.NewMockModel("test-model", "test")

	a := newTestAgent(m)

	_, err := a.Ask(context.Background(), Input{Query: "Hello"})
	require.NoError(t, err)

	snapshot := a.Messages()
	snapshot[0] = core.NewUserMessage("mutated")

	assert.Equal(t, "Hello", a.Messages()[0].Text())
}
