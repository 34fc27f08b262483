package util

import (
	"errors"
	"strings"
	"testing"
)

func TestValidationError_Single(t *testing.T) {
	err := NewValidationError("action is required")
	if got := err.Error(); got != "validation failed: action is required" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrValidationFailed) {
		t.Error("expected errors.Is(err, ErrValidationFailed)")
	}
}

func TestValidationError_Multiple(t *testing.T) {
	err := NewValidationError("first", "second")
	msg := err.Error()
	if !strings.Contains(msg, "first") || !strings.Contains(msg, "second") {
		t.Errorf("Error() = %q, want both messages", msg)
	}
}

func TestValidationf(t *testing.T) {
	err := Validationf("rule %d: missing %s", 10, "action")
	if got := err.Error(); got != "validation failed: rule 10: missing action" {
		t.Errorf("Error() = %q", got)
	}
}

func TestCapabilityError(t *testing.T) {
	err := &CapabilityError{Family: "firewall-group", Feature: "domain-group", Version: "1.4"}
	if !errors.Is(err, ErrNotSupported) {
		t.Error("expected errors.Is(err, ErrNotSupported)")
	}
	msg := err.Error()
	for _, want := range []string{"firewall-group", "domain-group", "1.4"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, want substring %q", msg, want)
		}
	}
}

func TestUnknownOperationError(t *testing.T) {
	err := &UnknownOperationError{Family: "nat", Operation: "bogus"}
	if !errors.Is(err, ErrUnknownOperation) {
		t.Error("expected errors.Is(err, ErrUnknownOperation)")
	}
}

func TestDeviceRejectedError_RawVerbatim(t *testing.T) {
	raw := "Configuration path: [firewall name BAD] is not valid"
	err := &DeviceRejectedError{Device: "edge1", Raw: raw}
	if !errors.Is(err, ErrDeviceRejected) {
		t.Error("expected errors.Is(err, ErrDeviceRejected)")
	}
	if !strings.Contains(err.Error(), raw) {
		t.Errorf("Error() = %q, must carry raw device text verbatim", err.Error())
	}
}

func TestDeviceCommError_Unwrap(t *testing.T) {
	inner := errors.New("dial tcp: i/o timeout")
	err := &DeviceCommError{Device: "edge1", Op: "configure", Err: inner}
	if !errors.Is(err, ErrDeviceComm) {
		t.Error("expected errors.Is(err, ErrDeviceComm)")
	}
	if !strings.Contains(err.Error(), "i/o timeout") {
		t.Errorf("Error() = %q, want inner error detail", err.Error())
	}
}

func TestValidationBuilder(t *testing.T) {
	var b ValidationBuilder
	b.Add(true, "should not appear")
	b.Add(false, "missing name")
	b.AddErrorf("rule %d invalid", 5)

	if !b.HasErrors() {
		t.Fatal("expected errors")
	}
	err := b.Build()
	if err == nil {
		t.Fatal("expected non-nil error")
	}
	msg := err.Error()
	if strings.Contains(msg, "should not appear") {
		t.Error("condition-true message leaked into error")
	}
	if !strings.Contains(msg, "missing name") || !strings.Contains(msg, "rule 5 invalid") {
		t.Errorf("Build() = %q", msg)
	}
}

func TestValidationBuilder_Empty(t *testing.T) {
	var b ValidationBuilder
	if b.HasErrors() {
		t.Error("fresh builder reports errors")
	}
	if err := b.Build(); err != nil {
		t.Errorf("Build() = %v, want nil", err)
	}
}
