package logging

import (
	"log/slog"
	"strings"
	"testing"
)

func TestAnonymizeIdentity(t *testing.T) {
	hash := AnonymizeIdentity("alice@example.com")
	if !strings.HasPrefix(hash, "user:") {
		t.Errorf("expected user: prefix, got %q", hash)
	}
	if strings.Contains(hash, "alice") {
		t.Errorf("anonymized identity leaks the input: %q", hash)
	}

	// Deterministic for correlation.
	if AnonymizeIdentity("alice@example.com") != hash {
		t.Error("expected stable hash for the same identity")
	}
	if AnonymizeIdentity("bob@example.com") == hash {
		t.Error("expected different hashes for different identities")
	}
	if AnonymizeIdentity("") != "" {
		t.Error("expected empty result for empty identity")
	}
}

func TestErrNilSafe(t *testing.T) {
	attr := Err(nil)
	if attr.Key != "" {
		t.Errorf("expected empty group for nil error, got key %q", attr.Key)
	}
}

func TestAttributeKeys(t *testing.T) {
	tests := []struct {
		attr slog.Attr
		key  string
		want string
	}{
		{Operation("chat"), KeyOperation, "chat"},
		{Tool("create_event"), KeyTool, "create_event"},
		{Model("mistral"), KeyModel, "mistral"},
		{Status(StatusSuccess), KeyStatus, "success"},
	}

	for _, tt := range tests {
		if tt.attr.Key != tt.key {
			t.Errorf("attribute key = %q, expected %q", tt.attr.Key, tt.key)
		}
		if tt.attr.Value.String() != tt.want {
			t.Errorf("attribute value = %q, expected %q", tt.attr.Value.String(), tt.want)
		}
	}
}
