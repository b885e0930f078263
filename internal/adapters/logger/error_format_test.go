package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/hob/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: []string{"boom"},
		},
		{
			name: "single zerr",
			err:  zerr.New("task not found"),
			want: []string{"task not found"},
		},
		{
			name: "zerr wrapping zerr",
			err:  zerr.Wrap(zerr.New("no such file"), "failed to read config"),
			want: []string{"failed to read config", "no such file"},
		},
		{
			name: "zerr wrapping plain error",
			err:  zerr.Wrap(errors.New("exit status 127"), "spawn failed"),
			want: []string{"spawn failed", "exit status 127"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.CollectErrorEntries(tt.err))
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	t.Run("single message", func(t *testing.T) {
		got := logger.FormatErrorEntries([]string{"boom"})
		assert.Equal(t, "Error: boom", got)
	})

	t.Run("chain gets caused-by section", func(t *testing.T) {
		got := logger.FormatErrorEntries([]string{"outer", "middle", "inner"})
		assert.Equal(t, "Error: outer\n\n  Caused by:\n    → middle\n    → inner", got)
	})

	t.Run("multiline message is indented", func(t *testing.T) {
		got := logger.FormatErrorEntries([]string{"outer", "line one\nline two"})
		assert.Contains(t, got, "    → line one\n      line two")
	})
}
