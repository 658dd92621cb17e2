package server

import (
	"github.com/hupe1980/agentgate"
	"github.com/hupe1980/agentgate/core"
	"github.com/hupe1980/agentgate/gateway"
	"github.com/hupe1980/agentgate/schedule"
)

// ChatRequest is the body of /chat and /chat/stream. Credentials travel per
// request; the server never stores them.
type ChatRequest struct {
	APIKey             string   `json:"apiKey"`
	BaseURL            string   `json:"baseUrl"`
	Model              string   `json:"model"`
	ClientType         string   `json:"clientType"`
	Locale             string   `json:"locale,omitempty"`
	Language           string   `json:"language,omitempty"`
	MaxSteps           int      `json:"maxSteps,omitempty"`
	MaxContextLoadTime int      `json:"maxContextLoadTime"`
	Platforms          []string `json:"platforms,omitempty"`
	CurrentPlatform    string   `json:"currentPlatform,omitempty"`

	Messages []core.Message `json:"messages"`
	Query    string         `json:"query"`
}

// ScheduleRequest is the body of /chat/schedule: a chat body plus the
// schedule descriptor.
type ScheduleRequest struct {
	ChatRequest
	Schedule schedule.Schedule `json:"schedule"`
}

var validClientTypes = map[string]bool{
	string(gateway.ClientTypeOpenAI):    true,
	string(gateway.ClientTypeAnthropic): true,
	string(gateway.ClientTypeGoogle):    true,
}

// Validate checks the request against the boundary contract. Messages may be
// empty; query must not be.
func (r ChatRequest) Validate() error {
	switch {
	case r.APIKey == "":
		return core.NewError(core.KindValidation, "API key is required")
	case r.BaseURL == "":
		return core.NewError(core.KindValidation, "Base URL is required")
	case r.Model == "":
		return core.NewError(core.KindValidation, "Model is required")
	case !validClientTypes[r.ClientType]:
		return core.NewError(core.KindValidation, "Client type must be one of openai, anthropic, google")
	case r.MaxContextLoadTime < 1:
		return core.NewError(core.KindValidation, "Max context load time is required")
	case r.Query == "":
		return core.NewError(core.KindValidation, "Query is required")
	}

	return nil
}

// Validate extends the chat validation with the schedule descriptor.
func (r ScheduleRequest) Validate() error {
	if err := r.ChatRequest.Validate(); err != nil {
		return err
	}

	switch {
	case r.Schedule.ID == "":
		return core.NewError(core.KindValidation, "Schedule ID is required")
	case r.Schedule.Name == "":
		return core.NewError(core.KindValidation, "Schedule name is required")
	case r.Schedule.Description == "":
		return core.NewError(core.KindValidation, "Schedule description is required")
	case r.Schedule.Pattern == "":
		return core.NewError(core.KindValidation, "Schedule pattern is required")
	case r.Schedule.Command == "":
		return core.NewError(core.KindValidation, "Schedule command is required")
	}

	if err := r.Schedule.Validate(); err != nil {
		return core.WrapError(core.KindValidation, err, err.Error())
	}

	return nil
}

// agentConfig maps the request onto the session config.
func (r ChatRequest) agentConfig() agentgate.Config {
	return agentgate.Config{
		APIKey:             r.APIKey,
		BaseURL:            r.BaseURL,
		Model:              r.Model,
		ClientType:         gateway.ClientType(r.ClientType),
		Locale:             r.Locale,
		Language:           r.Language,
		MaxSteps:           r.MaxSteps,
		MaxContextLoadTime: r.MaxContextLoadTime,
		Platforms:          r.Platforms,
		CurrentPlatform:    r.CurrentPlatform,
	}
}

// ChatResponse is the body of successful /chat and /chat/schedule calls.
type ChatResponse struct {
	Messages []core.Message `json:"messages"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}
