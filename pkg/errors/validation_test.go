package errors

import (
	"math"
	"testing"
)

func TestValidateProgress(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"gap", 0.7, false},
		{"one", 1, false},

		{"negative", -0.1, true},
		{"above one", 1.01, true},
		{"NaN", math.NaN(), true},
		{"infinite", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProgress(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProgress(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidProgress) {
				t.Errorf("ValidateProgress(%v) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateVerticalPosition(t *testing.T) {
	for _, v := range []float64{0, 0.5, 1} {
		if err := ValidateVerticalPosition(v); err != nil {
			t.Errorf("ValidateVerticalPosition(%v) = %v", v, err)
		}
	}
	for _, v := range []float64{-1, 1.5, math.NaN()} {
		if err := ValidateVerticalPosition(v); err == nil {
			t.Errorf("ValidateVerticalPosition(%v) = nil, want error", v)
		}
	}
}

func TestValidateTraceName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "commit", false},
		{"valid with dash", "slow-cancel", false},
		{"valid with dot", "left.delete", false},
		{"valid with underscore", "row_3", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"path traversal", "../etc", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"control char", "foo\x01bar", true},
		{"leading dot", ".hidden", true},
		{"space", "my trace", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTraceName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTraceName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/frame.svg", false},
		{"absolute", "/tmp/frame.png", false},

		{"empty", "", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"too long", string(make([]byte, 600)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateRedisURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"redis://localhost:6379/0", false},
		{"rediss://cache.internal:6380", false},
		{"", true},
		{"http://localhost:6379", true},
	}
	for _, tt := range tests {
		if err := ValidateRedisURL(tt.input); (err != nil) != tt.wantErr {
			t.Errorf("ValidateRedisURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidConfig,
		ErrCodeInvalidFormat,
		ErrCodeInvalidProgress,
		ErrCodeInvalidDirection,
		ErrCodeInvalidTrace,
		ErrCodeInvalidColor,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeTraceNotFound,
		ErrCodeRenderFailed,
		ErrCodeCache,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
