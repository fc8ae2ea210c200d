package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		want   string
	}{
		{
			name:   "default",
			config: &Config{LogLevel: "info"},
			want:   "info",
		},
		{
			name:   "explicit log level wins",
			config: &Config{LogLevel: "trace", Verbose: true},
			want:   "trace",
		},
		{
			name:   "verbose shortcut",
			config: &Config{LogLevel: "info", Verbose: true},
			want:   "debug",
		},
		{
			name:   "quiet shortcut",
			config: &Config{LogLevel: "info", Quiet: true},
			want:   "warn",
		},
		{
			name:   "verbose and quiet conflict uses quiet",
			config: &Config{LogLevel: "info", Verbose: true, Quiet: true},
			want:   "warn",
		},
		{
			name:   "environment level",
			config: &Config{LogLevel: "error"},
			want:   "error",
		},
		{
			name:   "invalid level falls back to info",
			config: &Config{LogLevel: "loud"},
			want:   "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineLogLevel(tt.config))
		})
	}
}

func TestValidateLogLevel(t *testing.T) {
	assert.Equal(t, "debug", validateLogLevel("debug"))
	assert.Equal(t, "warn", validateLogLevel("warn"))
	assert.Equal(t, "info", validateLogLevel(""))
	assert.Equal(t, "info", validateLogLevel("nonsense"))
}
