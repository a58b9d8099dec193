package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	base := errors.New("boom")

	err := E(KindStore, "index", base)
	if KindOf(err) != KindStore {
		t.Errorf("expected store kind, got %s", KindOf(err))
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if KindOf(wrapped) != KindStore {
		t.Errorf("expected kind to survive wrapping, got %s", KindOf(wrapped))
	}

	if KindOf(base) != KindProvider {
		t.Errorf("expected unclassified errors to default to provider, got %s", KindOf(base))
	}
}

func TestErrorUnwrap(t *testing.T) {
	base := errors.New("boom")
	err := E(KindConfig, "startup", base)

	if !errors.Is(err, base) {
		t.Error("expected errors.Is to find the wrapped error")
	}
	if err.Error() == "" {
		t.Error("expected non-empty message")
	}
}
