package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidProgress, "progress %g outside [0,1]", 1.5)
	if got, want := err.Error(), "INVALID_PROGRESS: progress 1.5 outside [0,1]"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := Wrap(ErrCodeRenderFailed, fs.ErrPermission, "write %s", "frame.svg")
	if got, want := wrapped.Error(), "RENDER_FAILED: write frame.svg: permission denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(wrapped, fs.ErrPermission) {
		t.Error("wrapped cause not reachable through errors.Is")
	}
	if errors.Unwrap(wrapped) != fs.ErrPermission {
		t.Error("Unwrap should return the cause")
	}
}

// TestClassification runs every accessor over the same set of errors.
func TestClassification(t *testing.T) {
	plain := errors.New("disk on fire")

	tests := []struct {
		name    string
		err     error
		code    Code
		message string
		status  int
	}{
		{"bad progress", New(ErrCodeInvalidProgress, "too far"), ErrCodeInvalidProgress, "too far", 400},
		{"bad direction", New(ErrCodeInvalidDirection, "up"), ErrCodeInvalidDirection, "up", 400},
		{"bad colour", New(ErrCodeInvalidColor, "#zz"), ErrCodeInvalidColor, "#zz", 400},
		{"bad trace", New(ErrCodeInvalidTrace, "empty"), ErrCodeInvalidTrace, "empty", 400},
		{"missing trace", New(ErrCodeTraceNotFound, "swipe-1"), ErrCodeTraceNotFound, "swipe-1", 404},
		{"missing icon file", Wrap(ErrCodeFileNotFound, fs.ErrNotExist, "star.png"), ErrCodeFileNotFound, "star.png", 404},
		{"no rsvg", New(ErrCodeUnsupported, "pdf"), ErrCodeUnsupported, "pdf", 501},
		{"render failure", Wrap(ErrCodeRenderFailed, plain, "gif"), ErrCodeRenderFailed, "gif", 500},
		{"config", New(ErrCodeInvalidConfig, "[canvas] fps"), ErrCodeInvalidConfig, "[canvas] fps", 500},
		{"fmt wrapped", fmt.Errorf("serve: %w", New(ErrCodeNotFound, "left")), ErrCodeNotFound, "left", 404},
		{"plain", plain, "", "disk on fire", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
			if got := UserMessage(tt.err); got != tt.message {
				t.Errorf("UserMessage() = %q, want %q", got, tt.message)
			}
			if got := HTTPStatus(tt.err); got != tt.status {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.status)
			}
		})
	}
}

func TestIsMatchesOutermostCode(t *testing.T) {
	err := Wrap(ErrCodeCache, New(ErrCodeInvalidInput, "inner"), "outer")

	if !Is(err, ErrCodeCache) {
		t.Error("outer code should match")
	}
	if Is(err, ErrCodeInvalidInput) {
		t.Error("inner code is shadowed by the outer one")
	}
	if Is(nil, ErrCodeCache) {
		t.Error("nil never matches")
	}
}
