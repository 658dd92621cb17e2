package core

// StreamEvent is one incremental unit of output produced during a streaming
// generation run. Concrete event types implement the unexported marker so the
// variant set stays closed and consumers can handle every case exhaustively.
//
// Events within one stream are strictly ordered by emission time; the engine
// never reorders or coalesces them.
type StreamEvent interface {
	isStreamEvent()

	// Type returns the stable wire tag of the event variant.
	Type() string
}

// TextDeltaEvent carries an incremental fragment of assistant text.
type TextDeltaEvent struct {
	Text string `json:"text"`
}

func (TextDeltaEvent) isStreamEvent() {}

// Type implements StreamEvent.
func (TextDeltaEvent) Type() string { return "text-delta" }

// ToolCallEvent signals that the model requested execution of a function.
type ToolCallEvent struct {
	Call FunctionCall `json:"call"`
}

func (ToolCallEvent) isStreamEvent() {}

// Type implements StreamEvent.
func (ToolCallEvent) Type() string { return "tool-call" }

// ToolResultEvent carries the outcome of an executed function call.
type ToolResultEvent struct {
	Result FunctionResponse `json:"result"`
}

func (ToolResultEvent) isStreamEvent() {}

// Type implements StreamEvent.
func (ToolResultEvent) Type() string { return "tool-result" }

// FinishEvent marks the end of a generation run. Reason is the provider's
// finish reason for the last step, or "max-steps" when the step ceiling
// forced termination.
type FinishEvent struct {
	Reason string `json:"reason"`
	Steps  int    `json:"steps"`
}

func (FinishEvent) isStreamEvent() {}

// Type implements StreamEvent.
func (FinishEvent) Type() string { return "finish" }

// ErrorEvent reports a generation failure. It is always the last event of a
// failed stream; the same failure is returned from Stream.Wait.
type ErrorEvent struct {
	Message string `json:"message"`
}

func (ErrorEvent) isStreamEvent() {}

// Type implements StreamEvent.
func (ErrorEvent) Type() string { return "error" }

// FinishReasonMaxSteps is emitted when the bounded loop hits its ceiling.
const FinishReasonMaxSteps = "max-steps"
