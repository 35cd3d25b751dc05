package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "memory", false},
		{"valid with dash", "zz-memory", false},
		{"valid with underscore", "zz_memory", false},
		{"valid with dot", "patch.v2", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"path traversal", "foo..bar", true},
		{"slash", "foo/bar", true},
		{"backslash", "foo\\bar", true},
		{"space", "foo bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("ValidateName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidName)
			}
		})
	}
}

func TestValidateScale(t *testing.T) {
	for _, k := range []int{0, 1, 2, 100, MaxScale} {
		if err := ValidateScale(k); err != nil {
			t.Errorf("ValidateScale(%d) = %v, want nil", k, err)
		}
	}
	for _, k := range []int{-1, -10, MaxScale + 1, math.MaxInt/2 + 1, math.MaxInt} {
		if err := ValidateScale(k); !Is(err, ErrCodeInvalidScale) {
			t.Errorf("ValidateScale(%d) = %v, want INVALID_SCALE", k, err)
		}
	}
}

func TestValidateArity(t *testing.T) {
	if err := ValidateArity("square", 2, 2); err != nil {
		t.Errorf("ValidateArity(2, 2) = %v, want nil", err)
	}
	err := ValidateArity("square", 2, 3)
	if !Is(err, ErrCodeArity) {
		t.Fatalf("ValidateArity(2, 3) = %v, want ARITY", err)
	}
	if want := "square expects 2 plaquette indices, got 3"; UserMessage(err) != want {
		t.Errorf("UserMessage() = %q, want %q", UserMessage(err), want)
	}
}
