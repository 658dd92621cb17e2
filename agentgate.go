// Package agentgate provides the conversational agent session: a thin façade
// composing the prompt builders, the provider gateway and the bounded
// execution engine around an in-process message history. Most applications
// interact with this package by:
//  1. Creating an Agent via New() with provider credentials and a model id
//  2. Calling Ask (blocking), Stream (incremental events) or TriggerSchedule
//     (scheduler-injected turn) as conversation turns arrive
//
// One Agent owns one conversation. Its history grows monotonically across
// calls and is never pruned or persisted here. An Agent must not be used for
// concurrent in-flight calls; the surrounding transport serializes access.
package agentgate

import (
	"context"
	"time"

	"github.com/hupe1980/agentgate/core"
	"github.com/hupe1980/agentgate/engine"
	"github.com/hupe1980/agentgate/gateway"
	"github.com/hupe1980/agentgate/logging"
	"github.com/hupe1980/agentgate/prompt"
	"github.com/hupe1980/agentgate/schedule"
	"github.com/hupe1980/agentgate/tool"
)

// Config binds an Agent to one provider, model and prompt environment. It is
// immutable after construction.
type Config struct {
	// APIKey and BaseURL are the provider credentials. BaseURL is optional
	// for the built-in providers and required for compatible gateways.
	APIKey  string
	BaseURL string

	// Model is the provider-specific model identifier.
	Model string

	// ClientType selects the provider wire protocol. Unknown values fall
	// back to the OpenAI-compatible gateway.
	ClientType gateway.ClientType

	// Locale and Language feed the system prompt.
	Locale   string
	Language string

	// MaxSteps bounds the agentic loop per call (default 50).
	MaxSteps int

	// MaxContextLoadTime is the context freshness budget in seconds,
	// surfaced to the model through the system prompt.
	MaxContextLoadTime int

	// Platforms lists the caller's supported delivery platforms;
	// CurrentPlatform marks the one in use.
	Platforms       []string
	CurrentPlatform string
}

// Options holds the optional collaborators of an Agent.
type Options struct {
	// Tools exposed to the model during generation.
	Tools []tool.Tool

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger

	// Binder overrides gateway resolution, mainly for tests.
	Binder gateway.Binder

	// Clock supplies the current time for prompt composition.
	Clock func() time.Time
}

// Input is one conversation turn: prior messages not yet known to the
// session plus the new user query.
type Input struct {
	Messages []core.Message
	Query    string
}

// Result carries the full response-turn sequence produced by one run,
// including intermediate tool-call and tool-result turns.
type Result struct {
	Messages []core.Message
}

// Agent is a stateful conversation session over one provider binding.
type Agent struct {
	cfg    Config
	opts   Options
	engine *engine.Engine
	binder gateway.Binder

	messages []core.Message
}

// New creates an Agent for the given config.
func New(cfg Config, optFns ...func(o *Options)) *Agent {
	opts := Options{
		Logger: logging.NoOpLogger{},
		Clock:  time.Now,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	binder := opts.Binder
	if binder == nil {
		binder = gateway.Resolve(cfg.ClientType)
	}

	eng := engine.New(func(o *engine.Options) {
		o.MaxSteps = cfg.MaxSteps
		o.Tools = opts.Tools
		o.Logger = opts.Logger
	})

	return &Agent{cfg: cfg, opts: opts, engine: eng, binder: binder}
}

// Messages returns a snapshot of the session history.
func (a *Agent) Messages() []core.Message {
	out := make([]core.Message, len(a.messages))
	copy(out, a.messages)
	return out
}

// systemPrompt composes the per-call system prompt from the config and the
// current time.
func (a *Agent) systemPrompt() string {
	return prompt.System(prompt.SystemParams{
		Date:               a.opts.Clock(),
		Locale:             a.cfg.Locale,
		Language:           a.cfg.Language,
		MaxContextLoadTime: a.cfg.MaxContextLoadTime,
		Platforms:          a.cfg.Platforms,
		CurrentPlatform:    a.cfg.CurrentPlatform,
	})
}

// appendTurn folds the caller-supplied prior messages plus the new turn into
// the session history. Callers supply only messages not already present; the
// session trusts and appends them verbatim.
func (a *Agent) appendTurn(messages []core.Message, turn core.Message) {
	a.messages = append(a.messages, messages...)
	a.messages = append(a.messages, turn)
}

// Ask runs one blocking conversation turn. The input messages and the user
// query are appended to the session, the bounded loop runs to completion,
// and every produced message is folded back into the session history before
// being returned.
func (a *Agent) Ask(ctx context.Context, input Input) (*Result, error) {
	a.appendTurn(input.Messages, core.NewUserMessage(input.Query))
	return a.dispatch(ctx)
}

// dispatch runs the engine against the current history and folds the
// produced turns back in. Provider failures propagate unmodified; the
// session keeps whatever was produced before the failure.
func (a *Agent) dispatch(ctx context.Context) (*Result, error) {
	m, err := a.binder.Bind(ctx, gateway.Credentials{
		APIKey:  a.cfg.APIKey,
		BaseURL: a.cfg.BaseURL,
	}, a.cfg.Model)
	if err != nil {
		return nil, err
	}

	produced, err := a.engine.Run(ctx, m, a.systemPrompt(), a.messages)
	a.messages = append(a.messages, produced...)
	if err != nil {
		return nil, err
	}

	return &Result{Messages: produced}, nil
}

// Stream runs one conversation turn while exposing every generation event.
// The returned stream must be drained (or its context cancelled); Wait
// returns the same Result contract as Ask. Abandoning the stream without
// cancelling ctx leaves the provider call to run to completion.
func (a *Agent) Stream(ctx context.Context, input Input) (*Stream, error) {
	a.appendTurn(input.Messages, core.NewUserMessage(input.Query))

	m, err := a.binder.Bind(ctx, gateway.Credentials{
		APIKey:  a.cfg.APIKey,
		BaseURL: a.cfg.BaseURL,
	}, a.cfg.Model)
	if err != nil {
		return nil, err
	}

	inner := a.engine.RunStream(ctx, m, a.systemPrompt(), a.messages)

	return &Stream{agent: a, inner: inner}, nil
}

// TriggerSchedule runs a scheduler-originated turn. The schedule descriptor
// is rendered into a self-marking trigger message appended in place of a raw
// user query, then dispatched through the identical generation pipeline as
// Ask. Input.Query is ignored on this path.
func (a *Agent) TriggerSchedule(ctx context.Context, input Input, sched schedule.Schedule) (*Result, error) {
	body := prompt.Schedule(prompt.ScheduleParams{
		Schedule: sched,
		Locale:   a.cfg.Locale,
		Date:     a.opts.Clock(),
	})

	a.appendTurn(input.Messages, core.NewUserMessage(body))

	return a.dispatch(ctx)
}

// Stream adapts an engine stream to the session: the final messages are
// folded into the history exactly once, when the run completes.
type Stream struct {
	agent *Agent
	inner *engine.Stream

	folded bool
}

// Events returns the ordered generation event channel.
func (s *Stream) Events() <-chan core.StreamEvent { return s.inner.Events() }

// Wait blocks until the run completes, folds the produced turns into the
// session history and returns them.
func (s *Stream) Wait() (*Result, error) {
	msgs, err := s.inner.Wait()

	if !s.folded {
		s.folded = true
		s.agent.messages = append(s.agent.messages, msgs...)
	}

	if err != nil {
		return nil, err
	}

	return &Result{Messages: msgs}, nil
}
