// Package model defines the provider-agnostic abstractions for driving
// language model generation inside agentgate.
//
// Core goals:
//   - Unify streaming + non-streaming generation behind a single interface
//   - Normalize tool / function call representation (ToolDefinition)
//   - Keep request/response shapes minimal and transport independent
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (OpenAI, Anthropic, Google, and the generic OpenAI-compatible
// fallback) implement the Model interface from this package so the engine
// and session layers remain decoupled from vendor SDKs.
package model
