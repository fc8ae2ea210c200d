package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/yazelin/catime/pkg/errors"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrAPIKeyRequired)
}

func TestInlineImage(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want []byte
	}{
		{
			name: "no candidates",
			resp: &genai.GenerateContentResponse{},
		},
		{
			name: "nil content",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{}},
			},
		},
		{
			name: "text only",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{
						Parts: []*genai.Part{{Text: "here is your cat"}},
					},
				}},
			},
		},
		{
			name: "image after text",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{
						Parts: []*genai.Part{
							{Text: "here is your cat"},
							{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte{0x89, 0x50}}},
						},
					},
				}},
			},
			want: []byte{0x89, 0x50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inlineImage(tt.resp))
		})
	}
}
