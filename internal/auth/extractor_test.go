package auth

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/gitsmith/internal/models"
)

func TestExtractorHeaderWinsOverEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_fromenv")

	h := http.Header{}
	h.Set("X-GitHub-Token", "ghu_fromheader")
	ctx := WithHeaders(context.Background(), h)

	token, err := NewExtractor("X-GitHub-Token", "GITHUB_TOKEN").Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Credential("ghu_fromheader"), token)
}

func TestExtractorHeaderCaseInsensitive(t *testing.T) {
	h := http.Header{}
	h.Set("x-github-token", "gho_lowercase")
	ctx := WithHeaders(context.Background(), h)

	token, err := NewExtractor("X-GitHub-Token", "GITHUB_TOKEN").Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Credential("gho_lowercase"), token)
}

func TestExtractorEnvFallback(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_fromenv")

	token, err := NewExtractor("X-GitHub-Token", "GITHUB_TOKEN").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Credential("ghp_fromenv"), token)
}

func TestExtractorRejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
		env    string
	}{
		{name: "Nothing Supplied"},
		{name: "Unknown Header Prefix", header: "tok_abc"},
		{name: "Unknown Env Prefix", env: "abc123"},
		{name: "Whitespace Header", header: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GITHUB_TOKEN", tt.env)

			ctx := context.Background()
			if tt.header != "" {
				h := http.Header{}
				h.Set("X-GitHub-Token", tt.header)
				ctx = WithHeaders(ctx, h)
			}

			_, err := NewExtractor("X-GitHub-Token", "GITHUB_TOKEN").Token(ctx)
			assert.ErrorIs(t, err, ErrAuthenticationRequired)
		})
	}
}

func TestExtractorAllPrefixesAccepted(t *testing.T) {
	for _, prefix := range models.TokenPrefixes {
		t.Setenv("GITHUB_TOKEN", prefix+"sometoken")

		token, err := NewExtractor("", "").Token(context.Background())
		require.NoError(t, err, prefix)
		assert.True(t, token.Valid())
	}
}
