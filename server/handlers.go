package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hupe1980/agentgate"
	"github.com/hupe1980/agentgate/core"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":    "ok",
		"uptime":    time.Since(s.startTime).Seconds(),
		"timestamp": time.Now().UnixMilli(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// handleChat runs one blocking conversation turn.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	var req ChatRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	agent := s.newAgent(req.agentConfig())

	result, err := agent.Ask(r.Context(), agentgate.Input{
		Messages: req.Messages,
		Query:    req.Query,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("path", r.URL.Path).
			Str("model", req.Model).
			Msg("Chat request failed")
		s.writeError(w, err)
		return
	}

	s.logger.Info().
		Str("path", r.URL.Path).
		Str("model", req.Model).
		Int("messages", len(result.Messages)).
		Int64("duration", time.Since(startTime).Milliseconds()).
		Msg("Chat request completed")

	s.writeJSON(w, http.StatusOK, ChatResponse{Messages: result.Messages})
}

// handleStream runs one conversation turn as a server-sent event stream:
// delta frames per generation event, then a single done frame with the final
// messages, or an error frame on failure.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, core.NewError(core.KindInternal, "streaming unsupported"))
		return
	}

	agent := s.newAgent(req.agentConfig())

	stream, err := agent.Stream(r.Context(), agentgate.Input{
		Messages: req.Messages,
		Query:    req.Query,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	for ev := range stream.Events() {
		payload, err := marshalEvent(ev)
		if err != nil {
			continue
		}
		writeSSE(w, "delta", payload)
		flusher.Flush()
	}

	result, err := stream.Wait()
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("path", r.URL.Path).
			Str("model", req.Model).
			Msg("Stream request failed")

		payload, _ := json.Marshal(ErrorResponse{
			Success: false,
			Error:   err.Error(),
			Code:    string(core.KindOf(err)),
		})
		writeSSE(w, "error", payload)
		flusher.Flush()

		return
	}

	payload, _ := json.Marshal(ChatResponse{Messages: result.Messages})
	writeSSE(w, "done", payload)
	flusher.Flush()
}

// handleSchedule runs a scheduler-originated turn.
func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var req ScheduleRequest
	if !s.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, err)
		return
	}

	agent := s.newAgent(req.agentConfig())

	result, err := agent.TriggerSchedule(r.Context(), agentgate.Input{
		Messages: req.Messages,
		Query:    req.Query,
	}, req.Schedule)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("path", r.URL.Path).
			Str("schedule", req.Schedule.ID).
			Msg("Schedule request failed")
		s.writeError(w, err)
		return
	}

	s.logger.Info().
		Str("path", r.URL.Path).
		Str("schedule", req.Schedule.ID).
		Int("messages", len(result.Messages)).
		Msg("Schedule request completed")

	s.writeJSON(w, http.StatusOK, ChatResponse{Messages: result.Messages})
}

// decode parses a POST JSON body into dst, writing the error response itself
// on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, core.WrapError(core.KindValidation, err, fmt.Sprintf("invalid request body: %v", err)))
		return false
	}

	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps the error kind to a transport status and writes the
// uniform envelope.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind := core.KindOf(err)

	s.writeJSON(w, core.HTTPStatus(kind), ErrorResponse{
		Success: false,
		Error:   err.Error(),
		Code:    string(kind),
	})
}

// marshalEvent serializes a stream event with its variant tag injected into
// the payload.
func marshalEvent(ev core.StreamEvent) ([]byte, error) {
	raw, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	m["type"] = ev.Type()

	return json.Marshal(m)
}

func writeSSE(w http.ResponseWriter, event string, data []byte) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}
