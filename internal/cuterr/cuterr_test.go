package cuterr

import (
	"errors"
	"testing"
)

func TestIs(t *testing.T) {
	err := New(Infeasible, "cut too long")
	if !Is(err, Infeasible) {
		t.Error("Is(err, Infeasible) = false, want true")
	}
	if Is(err, SolverFailure) {
		t.Error("Is(err, SolverFailure) = true, want false")
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(SolverFailure, "integer master", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find the wrapped cause")
	}
}
