package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/tiler/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"interrupted", fmt.Errorf("render: %w", context.Canceled), ExitInterrupted},
		{"arity", fmt.Errorf("build: %w", errors.New(errors.ErrCodeArity, "want 2 indices, got 3")), ExitBadLayout},
		{"disconnected", errors.New(errors.ErrCodeDisconnectedTemplate, "template 2"), ExitBadLayout},
		{"not found", errors.New(errors.ErrCodeNotFound, "layout"), ExitFailure},
		{"plain", fmt.Errorf("disk full"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	ReportError(&buf, fmt.Errorf("build: %w", errors.New(errors.ErrCodeInvalidScale, "scale must be >= 0")))
	if got := buf.String(); !strings.Contains(got, "scale must be >= 0 [INVALID_SCALE]") {
		t.Errorf("ReportError() = %q", got)
	}

	buf.Reset()
	ReportError(&buf, context.Canceled)
	if buf.Len() != 0 {
		t.Errorf("ReportError(Canceled) = %q, want nothing", buf.String())
	}
}
