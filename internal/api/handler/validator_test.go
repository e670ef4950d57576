package handler

import (
	"strings"
	"testing"
)

func TestValidator_FlattensAllViolations(t *testing.T) {
	v := NewValidator()

	req := registerRequest{Email: "not-an-email", Password: "short", Role: "admin"}
	err := v.Validate(&req)
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	msg := err.Error()
	for _, want := range []string{
		"email is not a valid email address",
		"password must be at least 8 characters",
		"role must be one of creator brand agency",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestValidator_PassesValidStruct(t *testing.T) {
	v := NewValidator()

	req := registerRequest{Email: "a@b.com", Password: "longenough", Role: "creator"}
	if err := v.Validate(&req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
