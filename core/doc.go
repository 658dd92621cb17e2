// Package core defines the shared conversational primitives of agentgate:
// messages with a closed set of content parts, the stream event variants
// emitted during incremental generation, and the structured error kinds the
// boundary maps to transport status codes.
//
// Everything in this package is transport and provider independent. Provider
// adapters (model/*) convert these types into vendor SDK shapes; the HTTP
// server serializes them with the tagged JSON codec in json.go.
package core
