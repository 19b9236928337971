package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := NotFound("item not found")
	if KindOf(err) != KindNotFound {
		t.Errorf("expected not_found, got %s", KindOf(err))
	}
	if KindOf(errors.New("plain")) != KindInternal {
		t.Error("plain errors must map to internal")
	}
	if KindOf(fmt.Errorf("wrapped: %w", Conflict("taken"))) != KindConflict {
		t.Error("kind must survive wrapping")
	}
}

func TestIs(t *testing.T) {
	err := InvalidState("already claimed")
	if !Is(err, KindInvalidState) {
		t.Error("expected Is to match kind")
	}
	if Is(err, KindNotFound) {
		t.Error("Is must not match a different kind")
	}
	if Is(errors.New("plain"), KindInternal) {
		t.Error("plain errors are not *Error values")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("smtp unreachable")
	err := Wrap(cause, KindDependencyFailure, "failed to send reset email")
	if !errors.Is(err, cause) {
		t.Error("wrapped cause must be reachable via errors.Is")
	}
	if err.Error() != "failed to send reset email" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
