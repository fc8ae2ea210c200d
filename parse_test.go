package catime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		required []string
		want     map[string]any
		ok       bool
	}{
		{
			name: "bare object",
			text: `{"idea": "a cat", "story": "a story"}`,
			want: map[string]any{"idea": "a cat", "story": "a story"},
			ok:   true,
		},
		{
			name: "json code fence",
			text: "Here you go:\n```json\n{\"prompt\": \"paint a cat\"}\n```\nEnjoy!",
			want: map[string]any{"prompt": "paint a cat"},
			ok:   true,
		},
		{
			name: "plain code fence",
			text: "```\n{\"news\": [\"headline\"]}\n```",
			want: map[string]any{"news": []any{"headline"}},
			ok:   true,
		},
		{
			name:     "missing required key",
			text:     `{"idea": "a cat"}`,
			required: []string{"idea", "story"},
			ok:       false,
		},
		{
			name:     "required keys present",
			text:     `{"idea": "a cat", "story": "a story", "title": "貓"}`,
			required: []string{"idea", "story"},
			want:     map[string]any{"idea": "a cat", "story": "a story", "title": "貓"},
			ok:       true,
		},
		{
			name: "prose without json",
			text: "I cannot help with that.",
			ok:   false,
		},
		{
			name: "empty",
			text: "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseResponse(tt.text, tt.required...)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestStringValue(t *testing.T) {
	data := map[string]any{"title": "貓咪日常", "number": 5.0}

	assert.Equal(t, "貓咪日常", stringValue(data, "title"))
	assert.Empty(t, stringValue(data, "number"), "non-string values yield empty")
	assert.Empty(t, stringValue(data, "missing"))
}

func TestStringSlice(t *testing.T) {
	data := map[string]any{
		"news":  []any{"first", 2.0, "third"},
		"title": "not a list",
	}

	assert.Equal(t, []string{"first", "third"}, stringSlice(data, "news"))
	assert.Nil(t, stringSlice(data, "title"))
	assert.Nil(t, stringSlice(data, "missing"))
}
