package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/gitsmith/internal/auth"
	"github.com/ternarybob/gitsmith/internal/common"
	"github.com/ternarybob/gitsmith/internal/interfaces"
	"github.com/ternarybob/gitsmith/internal/models"
)

type stubAuthenticator struct {
	session *models.DeviceFlowSession
	result  *models.LoginResult
}

func (s *stubAuthenticator) InitiateLogin(ctx context.Context) (*models.DeviceFlowSession, error) {
	return s.session, nil
}

func (s *stubAuthenticator) VerifyLogin(ctx context.Context, deviceCode string, interval time.Duration) (*models.LoginResult, error) {
	return s.result, nil
}

type stubCredentials struct {
	token models.Credential
	err   error
}

func (s *stubCredentials) Token(ctx context.Context) (models.Credential, error) {
	return s.token, s.err
}

type stubService struct {
	interfaces.GitHubService
	references []models.ReferenceContent
	mapErr     error
}

func (s *stubService) ReadReferences(ctx context.Context, ref models.RepositoryRef, paths []string) []models.ReferenceContent {
	return s.references
}

func (s *stubService) GetRepositoryMap(ctx context.Context, ref models.RepositoryRef) (*models.RepositoryMap, error) {
	if s.mapErr != nil {
		return nil, s.mapErr
	}
	return &models.RepositoryMap{}, nil
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestLoginHandlersRelayTokenVerbatim(t *testing.T) {
	deps := &toolDeps{
		logger: common.GetLogger(),
		authenticator: &stubAuthenticator{
			session: &models.DeviceFlowSession{
				DeviceCode:      "dev123",
				UserCode:        "ABCD-1234",
				VerificationURI: "https://github.com/login/device",
				PollInterval:    6 * time.Second,
			},
			result: &models.LoginResult{
				State:       models.LoginSucceeded,
				AccessToken: "ghu_abc",
				Polls:       3,
			},
		},
	}

	initiated, err := handleInitiateLogin(deps)(context.Background(), callRequest(nil))
	require.NoError(t, err)
	text := resultText(t, initiated)
	assert.Contains(t, text, "https://github.com/login/device")
	assert.Contains(t, text, "ABCD-1234")
	assert.Contains(t, text, "dev123")

	verified, err := handleVerifyLogin(deps)(context.Background(), callRequest(map[string]any{
		"device_code": "dev123",
	}))
	require.NoError(t, err)
	text = resultText(t, verified)
	assert.Contains(t, text, "ghu_abc")
	assert.Contains(t, text, "X-GitHub-Token")
	assert.Contains(t, text, "GITHUB_TOKEN")
}

func TestHandlersRequireCredentialBeforePlatformCalls(t *testing.T) {
	deps := &toolDeps{
		logger:      common.GetLogger(),
		credentials: &stubCredentials{err: auth.ErrAuthenticationRequired},
		newService: func(token models.Credential) (interfaces.GitHubService, error) {
			t.Fatal("service must not be constructed without a credential")
			return nil, nil
		},
	}

	result, err := handleGetUserContext(deps)(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "initiate_login")
}

func TestReadReferencesHandlerKeepsFailedSlots(t *testing.T) {
	deps := &toolDeps{
		logger:      common.GetLogger(),
		credentials: &stubCredentials{token: "ghp_ok"},
		newService: func(token models.Credential) (interfaces.GitHubService, error) {
			return &stubService{references: []models.ReferenceContent{
				{Path: "a.txt", Content: "alpha", SHA: "sha-a"},
				{Path: "missing.txt", Err: "Not found or insufficient permission (404)"},
			}}, nil
		},
	}

	result, err := handleReadReferences(deps)(context.Background(), callRequest(map[string]any{
		"owner": "alice",
		"repo":  "tool",
		"paths": []any{"a.txt", "missing.txt"},
	}))
	require.NoError(t, err)

	text := resultText(t, result)
	assert.Contains(t, text, "alpha")
	assert.Contains(t, text, "missing.txt")
	assert.Contains(t, text, "404")
}

func TestHandlerRelaysServiceFailureAsContent(t *testing.T) {
	deps := &toolDeps{
		logger:      common.GetLogger(),
		credentials: &stubCredentials{token: "ghp_ok"},
		newService: func(token models.Credential) (interfaces.GitHubService, error) {
			return &stubService{mapErr: errors.New("Not found or insufficient permission (404)")}, nil
		},
	}

	result, err := handleGetRepositoryMap(deps)(context.Background(), callRequest(map[string]any{
		"owner": "alice",
		"repo":  "tool",
	}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "404")
}

func TestRepoRefValidation(t *testing.T) {
	_, err := repoRef(callRequest(map[string]any{"repo": "tool"}))
	assert.Error(t, err)

	_, err = repoRef(callRequest(map[string]any{"owner": "alice"}))
	assert.Error(t, err)

	ref, err := repoRef(callRequest(map[string]any{"owner": "alice", "repo": "tool", "branch": "dev"}))
	require.NoError(t, err)
	assert.Equal(t, models.RepositoryRef{Owner: "alice", Name: "tool", Branch: "dev"}, ref)
}
