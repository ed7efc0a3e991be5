package faults

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKindClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("release %q not found", "v9"), KindValidation},
		{"io", IO(errors.New("connection reset"), "downloading %s", "a.jar"), KindIO},
		{"security", Security("entry %q escapes destination", "../evil"), KindSecurity},
		{"canceled", Canceled(context.Canceled), KindCanceled},
		{"plain error defaults to io", errors.New("boom"), KindIO},
		{"wrapped fault keeps kind", fmt.Errorf("outer: %w", Validation("bad")), KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	err := fmt.Errorf("install failed: %w", Security("zip-slip detected"))
	if !IsSecurity(err) {
		t.Error("IsSecurity() = false through a wrap chain")
	}
	if IsValidation(err) || IsCanceled(err) || IsIO(err) {
		t.Error("predicates for other kinds matched")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := IO(cause, "writing registry")
	if !errors.Is(err, cause) {
		t.Error("errors.Is does not reach the cause")
	}
	if err.Error() != "writing registry: disk full" {
		t.Errorf("Error() = %q", err.Error())
	}
}
