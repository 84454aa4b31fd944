package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/interop"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, exitOK},
		{"usage", fmt.Errorf("%w: max-cycle \"x\"", errUsage), exitInvalidArguments},
		{"no metrics", fmt.Errorf("copy: %w", interop.ErrNoMetricsFound), exitNoMetricsFound},
		{"unsupported version", fmt.Errorf("read: %w", interop.ErrUnsupportedVersion), exitBadFormat},
		{"record size mismatch", interop.ErrRecordSizeMismatch, exitBadFormat},
		{"corrupt", interop.ErrCorrupt, exitBadFormat},
		{"unexpected", errors.New("disk on fire"), exitUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
