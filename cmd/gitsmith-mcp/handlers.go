package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/gitsmith/internal/interfaces"
	"github.com/ternarybob/gitsmith/internal/models"
)

// toolDeps bundles what every handler needs: the per-call credential
// source, a factory building a GitHub service around that credential,
// and the device-flow authenticator (which needs no credential).
type toolDeps struct {
	credentials   interfaces.CredentialSource
	newService    interfaces.ServiceFactory
	authenticator interfaces.Authenticator
	logger        arbor.ILogger
}

// textResult wraps a markdown payload in a tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

// failure wraps a descriptive failure string in a tool result. Tool
// failures are relayed as content, never as protocol errors, so the
// calling LLM can read and act on them.
func failure(err error) *mcp.CallToolResult {
	return textResult(fmt.Sprintf("Error: %v", err))
}

// service extracts the call's credential and builds a GitHub service
// around it. AuthenticationRequired aborts here, before any platform
// request is issued.
func (d *toolDeps) service(ctx context.Context) (interfaces.GitHubService, error) {
	token, err := d.credentials.Token(ctx)
	if err != nil {
		return nil, err
	}
	return d.newService(token)
}

// repoRef parses the owner/repo/branch arguments shared by most tools.
func repoRef(request mcp.CallToolRequest) (models.RepositoryRef, error) {
	owner, err := request.RequireString("owner")
	if err != nil || owner == "" {
		return models.RepositoryRef{}, fmt.Errorf("owner parameter is required")
	}
	repo, err := request.RequireString("repo")
	if err != nil || repo == "" {
		return models.RepositoryRef{}, fmt.Errorf("repo parameter is required")
	}
	return models.RepositoryRef{
		Owner:  owner,
		Name:   repo,
		Branch: request.GetString("branch", ""),
	}, nil
}

// handleInitiateLogin implements the initiate_login tool
func handleInitiateLogin(deps *toolDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		requestID := uuid.NewString()

		session, err := deps.authenticator.InitiateLogin(ctx)
		if err != nil {
			deps.logger.Error().Err(err).Str("request_id", requestID).Msg("initiate_login failed")
			return failure(err), nil
		}
		return textResult(formatLoginInstructions(session)), nil
	}
}

// handleVerifyLogin implements the verify_login tool
func handleVerifyLogin(deps *toolDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		deviceCode, err := request.RequireString("device_code")
		if err != nil || deviceCode == "" {
			return textResult("Error: device_code parameter is required"), nil
		}
		interval := time.Duration(request.GetInt("interval", 0)) * time.Second

		requestID := uuid.NewString()

		result, err := deps.authenticator.VerifyLogin(ctx, deviceCode, interval)
		if err != nil {
			deps.logger.Error().Err(err).Str("request_id", requestID).Msg("verify_login failed")
			return failure(err), nil
		}
		return textResult(formatLoginResult(result)), nil
	}
}

// handleGetUserContext implements the get_user_context tool
func handleGetUserContext(deps *toolDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		requestID := uuid.NewString()

		svc, err := deps.service(ctx)
		if err != nil {
			return failure(err), nil
		}

		uc, err := svc.GetUserContext(ctx)
		if err != nil {
			deps.logger.Error().Err(err).Str("request_id", requestID).Msg("get_user_context failed")
			return failure(err), nil
		}
		return textResult(formatUserContext(uc)), nil
	}
}

// handleSearchRepositories implements the search_repositories tool
func handleSearchRepositories(deps *toolDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil || query == "" {
			return textResult("Error: query parameter is required"), nil
		}

		requestID := uuid.NewString()

		svc, err := deps.service(ctx)
		if err != nil {
			return failure(err), nil
		}

		repos, err := svc.SearchRepositories(ctx, query)
		if err != nil {
			deps.logger.Error().Err(err).Str("request_id", requestID).Str("query", query).Msg("search_repositories failed")
			return failure(err), nil
		}
		return textResult(formatSearchResults(query, repos)), nil
	}
}

// handleGetRepositoryMap implements the get_repository_map tool
func handleGetRepositoryMap(deps *toolDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := repoRef(request)
		if err != nil {
			return failure(err), nil
		}

		requestID := uuid.NewString()

		svc, err := deps.service(ctx)
		if err != nil {
			return failure(err), nil
		}

		repoMap, err := svc.GetRepositoryMap(ctx, ref)
		if err != nil {
			deps.logger.Error().Err(err).Str("request_id", requestID).Str("repo", ref.Owner+"/"+ref.Name).Msg("get_repository_map failed")
			return failure(err), nil
		}
		return textResult(formatRepositoryMap(repoMap)), nil
	}
}

// handleGetProjectOverview implements the get_project_overview tool
func handleGetProjectOverview(deps *toolDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := repoRef(request)
		if err != nil {
			return failure(err), nil
		}

		requestID := uuid.NewString()

		svc, err := deps.service(ctx)
		if err != nil {
			return failure(err), nil
		}

		overview := svc.GetProjectOverview(ctx, ref)
		deps.logger.Info().Str("request_id", requestID).Str("repo", ref.Owner+"/"+ref.Name).Msg("get_project_overview complete")
		return textResult(formatProjectOverview(overview)), nil
	}
}

// handleInspectTargetFile implements the inspect_target_file tool
func handleInspectTargetFile(deps *toolDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := repoRef(request)
		if err != nil {
			return failure(err), nil
		}
		path, err := request.RequireString("path")
		if err != nil || path == "" {
			return textResult("Error: path parameter is required"), nil
		}

		requestID := uuid.NewString()

		svc, err := deps.service(ctx)
		if err != nil {
			return failure(err), nil
		}

		inspection, err := svc.InspectTargetFile(ctx, ref, path)
		if err != nil {
			deps.logger.Error().Err(err).Str("request_id", requestID).Str("path", path).Msg("inspect_target_file failed")
			return failure(err), nil
		}
		return textResult(formatFileInspection(inspection)), nil
	}
}

// handleReadReferences implements the read_references tool
func handleReadReferences(deps *toolDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := repoRef(request)
		if err != nil {
			return failure(err), nil
		}
		paths := request.GetStringSlice("paths", nil)
		if len(paths) == 0 {
			return textResult("Error: paths parameter is required"), nil
		}

		requestID := uuid.NewString()

		svc, err := deps.service(ctx)
		if err != nil {
			return failure(err), nil
		}

		results := svc.ReadReferences(ctx, ref, paths)
		deps.logger.Info().Str("request_id", requestID).Int("paths", len(paths)).Msg("read_references complete")
		return textResult(formatReferences(results)), nil
	}
}

// handleInitializeWorkspace implements the initialize_workspace tool
func handleInitializeWorkspace(deps *toolDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := repoRef(request)
		if err != nil {
			return failure(err), nil
		}
		base := request.GetString("base_branch", "")

		requestID := uuid.NewString()

		svc, err := deps.service(ctx)
		if err != nil {
			return failure(err), nil
		}

		branch, err := svc.InitializeWorkspace(ctx, ref, base)
		if err != nil {
			deps.logger.Error().Err(err).Str("request_id", requestID).Str("repo", ref.Owner+"/"+ref.Name).Msg("initialize_workspace failed")
			return failure(err), nil
		}
		return textResult(formatBranchCreated(branch)), nil
	}
}

// handleCommitFileUpdate implements the commit_file_update tool
func handleCommitFileUpdate(deps *toolDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := repoRef(request)
		if err != nil {
			return failure(err), nil
		}
		branch, err := request.RequireString("branch")
		if err != nil || branch == "" {
			return textResult("Error: branch parameter is required"), nil
		}
		path, err := request.RequireString("path")
		if err != nil || path == "" {
			return textResult("Error: path parameter is required"), nil
		}
		content, err := request.RequireString("content")
		if err != nil {
			return textResult("Error: content parameter is required"), nil
		}
		originalSHA, err := request.RequireString("original_sha")
		if err != nil || originalSHA == "" {
			return textResult("Error: original_sha parameter is required (run inspect_target_file first)"), nil
		}
		message := request.GetString("message", "")

		requestID := uuid.NewString()

		svc, err := deps.service(ctx)
		if err != nil {
			return failure(err), nil
		}

		result, err := svc.CommitFileUpdate(ctx, ref, branch, path, content, originalSHA, message)
		if err != nil {
			deps.logger.Error().Err(err).Str("request_id", requestID).Str("path", path).Msg("commit_file_update failed")
			return failure(err), nil
		}
		return textResult(formatCommitResult(result, branch)), nil
	}
}

// handleSubmitReviewRequest implements the submit_review_request tool
func handleSubmitReviewRequest(deps *toolDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := repoRef(request)
		if err != nil {
			return failure(err), nil
		}
		head, err := request.RequireString("head_branch")
		if err != nil || head == "" {
			return textResult("Error: head_branch parameter is required"), nil
		}
		title, err := request.RequireString("title")
		if err != nil || title == "" {
			return textResult("Error: title parameter is required"), nil
		}
		body := request.GetString("body", "")
		base := request.GetString("base_branch", "")

		requestID := uuid.NewString()

		svc, err := deps.service(ctx)
		if err != nil {
			return failure(err), nil
		}

		pr, err := svc.SubmitReviewRequest(ctx, ref, head, title, body, base)
		if err != nil {
			deps.logger.Error().Err(err).Str("request_id", requestID).Str("head", head).Msg("submit_review_request failed")
			return failure(err), nil
		}
		return textResult(formatPullRequest(pr)), nil
	}
}
