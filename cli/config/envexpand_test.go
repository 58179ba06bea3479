package config

import (
	"errors"
	"testing"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("SWU_SET", "real")
	t.Setenv("SWU_EMPTY", "")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"set var", "value: ${SWU_SET}", "value: real"},
		{"unset var", "value: ${SWU_UNSET_12345}", "value: "},
		{"default when unset", "value: ${SWU_UNSET_12345:-fallback}", "value: fallback"},
		{"default ignored when set", "value: ${SWU_SET:-fallback}", "value: real"},
		{"default when empty", "value: ${SWU_EMPTY:-fallback}", "value: fallback"},
		{"required and set", "key: ${SWU_SET:?key missing}", "key: real"},
		{"multiple", "${SWU_SET}:${SWU_SET}", "real:real"},
		{"no vars", "no variables here", "no variables here"},
		{"bare dollar untouched", "cost: $SWU_SET", "cost: $SWU_SET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandEnv(tt.input)
			if err != nil {
				t.Fatalf("ExpandEnv: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandEnvErrors(t *testing.T) {
	t.Setenv("SWU_SET", "real")

	tests := []struct {
		name   string
		input  string
		ref    string
		reason string
	}{
		{"required and unset", "key: ${SWU_UNSET_12345:?set the aes key}", "${SWU_UNSET_12345:?set the aes key}", "set the aes key"},
		{"required without message", "key: ${SWU_UNSET_12345:?}", "${SWU_UNSET_12345:?}", "SWU_UNSET_12345 is required"},
		{"alternate value form", "v: ${SWU_SET:+x}", "${SWU_SET:+x}", `unsupported syntax ":+x"`},
		{"bad name", "v: ${1SWU}", "${1SWU}", "invalid variable name"},
		{"empty reference", "v: ${}", "${}", "invalid variable name"},
		{"unterminated", "a: ${SWU_SET}\nb: ${SWU_SET\nc: 1", "${SWU_SET", "missing closing brace"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExpandEnv(tt.input)

			var expandErr *ExpandError
			if !errors.As(err, &expandErr) {
				t.Fatalf("expected *ExpandError, got %v", err)
			}
			if expandErr.Ref != tt.ref {
				t.Errorf("Ref = %q, want %q", expandErr.Ref, tt.ref)
			}
			if expandErr.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", expandErr.Reason, tt.reason)
			}
		})
	}
}
