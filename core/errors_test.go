package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := NewError(KindAuth, "invalid api key")
	if KindOf(err) != KindAuth {
		t.Fatalf("expected auth kind, got %s", KindOf(err))
	}

	wrapped := fmt.Errorf("dispatch failed: %w", WrapError(KindRateLimit, errors.New("429"), "throttled"))
	if KindOf(wrapped) != KindRateLimit {
		t.Fatalf("kind should survive wrapping, got %s", KindOf(wrapped))
	}

	if KindOf(errors.New("plain")) != KindInternal {
		t.Fatal("untagged errors should report internal kind")
	}
}

func TestKindStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		kind   Kind
	}{
		{http.StatusUnauthorized, KindAuth},
		{http.StatusForbidden, KindForbidden},
		{http.StatusNotFound, KindNotFound},
		{http.StatusConflict, KindConflict},
		{http.StatusTooManyRequests, KindRateLimit},
		{http.StatusBadGateway, KindProvider},
	}
	for _, tc := range cases {
		if got := KindForStatus(tc.status); got != tc.kind {
			t.Errorf("KindForStatus(%d) = %s, want %s", tc.status, got, tc.kind)
		}
	}

	// Kinds with a dedicated status must map back to it.
	if HTTPStatus(KindAuth) != http.StatusUnauthorized || HTTPStatus(KindValidation) != http.StatusBadRequest {
		t.Fatal("HTTPStatus mapping broken")
	}
	if HTTPStatus(KindProvider) != http.StatusInternalServerError {
		t.Fatal("provider failures should surface as 500")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("socket closed")
	err := WrapError(KindProvider, cause, "openai api error")
	if !errors.Is(err, cause) {
		t.Fatal("cause should be reachable via errors.Is")
	}
	if err.Error() != "openai api error" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}
