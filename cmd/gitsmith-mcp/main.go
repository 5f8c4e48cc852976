package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ternarybob/gitsmith/internal/auth"
	"github.com/ternarybob/gitsmith/internal/common"
	"github.com/ternarybob/gitsmith/internal/github"
	"github.com/ternarybob/gitsmith/internal/interfaces"
	"github.com/ternarybob/gitsmith/internal/models"
)

func main() {
	// Load configuration
	configPath := os.Getenv("GITSMITH_CONFIG")
	if configPath == "" {
		configPath = "gitsmith.toml"
	}

	config, err := common.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Minimal logging by default to keep MCP stdio clean
	logger := common.InitLogger(config)

	// Per-call credential extraction: header (HTTP mode) or env fallback
	extractor := auth.NewExtractor(config.Auth.HeaderName, config.Auth.TokenEnv)

	// Device-flow authenticator; only configuration it needs is the
	// unauthenticated GitHub App client ID
	authenticator := auth.NewAuthenticator(
		config.GitHub.ClientID,
		config.Login.Scopes,
		config.GitHub.OAuthBase,
		auth.PollPolicy{
			Interval:   config.FallbackPoll(),
			Margin:     config.IntervalMargin(),
			MaxElapsed: config.PollBudget(),
		},
		logger,
	)

	deps := &toolDeps{
		credentials:   extractor,
		authenticator: authenticator,
		logger:        logger,
		newService: func(token models.Credential) (interfaces.GitHubService, error) {
			return github.NewService(token, config.GitHub.APIBaseURL, config.Limits, logger)
		},
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		"gitsmith",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	// Register login tools
	mcpServer.AddTool(createInitiateLoginTool(), handleInitiateLogin(deps))
	mcpServer.AddTool(createVerifyLoginTool(), handleVerifyLogin(deps))

	// Register discovery tools
	mcpServer.AddTool(createGetUserContextTool(), handleGetUserContext(deps))
	mcpServer.AddTool(createSearchRepositoriesTool(), handleSearchRepositories(deps))
	mcpServer.AddTool(createGetRepositoryMapTool(), handleGetRepositoryMap(deps))
	mcpServer.AddTool(createGetProjectOverviewTool(), handleGetProjectOverview(deps))

	// Register inspection tools
	mcpServer.AddTool(createInspectTargetFileTool(), handleInspectTargetFile(deps))
	mcpServer.AddTool(createReadReferencesTool(), handleReadReferences(deps))

	// Register write tools
	mcpServer.AddTool(createInitializeWorkspaceTool(), handleInitializeWorkspace(deps))
	mcpServer.AddTool(createCommitFileUpdateTool(), handleCommitFileUpdate(deps))
	mcpServer.AddTool(createSubmitReviewRequestTool(), handleSubmitReviewRequest(deps))

	if config.Server.Mode == "http" {
		// HTTP mode carries the credential header; copy the header set
		// into the request context for the extractor
		httpServer := server.NewStreamableHTTPServer(mcpServer,
			server.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
				return auth.WithHeaders(ctx, r.Header)
			}),
		)
		addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
		logger.Info().Str("addr", addr).Msg("Serving MCP over HTTP")
		if err := httpServer.Start(addr); err != nil {
			logger.Fatal().Err(err).Msg("MCP server failed")
		}
		return
	}

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
