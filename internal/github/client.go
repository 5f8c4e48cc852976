// Package github wraps the GitHub REST API behind the operations the
// MCP tools expose. A Service is constructed per call from the caller's
// token; it holds no cross-call state and no cache. The platform's own
// optimistic-concurrency check (blob SHA precondition on updates) is the
// only consistency guard on writes.
package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/ternarybob/arbor"
	"golang.org/x/oauth2"

	"github.com/ternarybob/gitsmith/internal/common"
	"github.com/ternarybob/gitsmith/internal/interfaces"
	"github.com/ternarybob/gitsmith/internal/models"
)

// Ensure interface compliance
var _ interfaces.GitHubService = (*Service)(nil)

// Service issues authenticated GitHub API calls for one tool
// invocation.
type Service struct {
	client *github.Client
	limits common.LimitsConfig
	logger arbor.ILogger
}

// NewService builds a Service around the supplied credential. The
// credential's shape is validated by the extractor before this point;
// actual validity surfaces as a 401 on first use. apiBaseURL is only
// overridden by tests.
func NewService(token models.Credential, apiBaseURL string, limits common.LimitsConfig, logger arbor.ILogger) (*Service, error) {
	if token == "" {
		return nil, fmt.Errorf("github token is required")
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: string(token)},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	client := github.NewClient(tc)

	if apiBaseURL != "" && apiBaseURL != "https://api.github.com/" {
		base, err := url.Parse(apiBaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid api base url: %w", err)
		}
		if !strings.HasSuffix(base.Path, "/") {
			base.Path += "/"
		}
		client.BaseURL = base
	}

	return &Service{client: client, limits: limits, logger: logger}, nil
}

// branch returns the ref's branch or the default.
func branch(ref models.RepositoryRef) string {
	if ref.Branch == "" {
		return models.DefaultBranch
	}
	return ref.Branch
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
