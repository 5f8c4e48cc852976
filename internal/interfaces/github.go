package interfaces

import (
	"context"
	"time"

	"github.com/ternarybob/gitsmith/internal/models"
)

// CredentialSource extracts a validated bearer token from an inbound
// call. It never issues platform requests.
type CredentialSource interface {
	Token(ctx context.Context) (models.Credential, error)
}

// Authenticator drives the device-flow login sequence.
type Authenticator interface {
	// InitiateLogin requests a device/user code pair without blocking
	// for authorization.
	InitiateLogin(ctx context.Context) (*models.DeviceFlowSession, error)

	// VerifyLogin polls the token endpoint until success, expiry, or
	// the wall-clock budget. interval <= 0 selects the default cadence.
	VerifyLogin(ctx context.Context, deviceCode string, interval time.Duration) (*models.LoginResult, error)
}

// GitHubService is the per-call operation surface over the platform
// API. Implementations are stateless between calls.
type GitHubService interface {
	GetUserContext(ctx context.Context) (*models.UserContext, error)
	SearchRepositories(ctx context.Context, query string) ([]models.RepoSummary, error)
	GetRepositoryMap(ctx context.Context, ref models.RepositoryRef) (*models.RepositoryMap, error)
	GetProjectOverview(ctx context.Context, ref models.RepositoryRef) *models.ProjectOverview

	InspectTargetFile(ctx context.Context, ref models.RepositoryRef, path string) (*models.FileInspection, error)
	ReadReferences(ctx context.Context, ref models.RepositoryRef, paths []string) []models.ReferenceContent

	InitializeWorkspace(ctx context.Context, ref models.RepositoryRef, baseBranch string) (*models.BranchInfo, error)
	CommitFileUpdate(ctx context.Context, ref models.RepositoryRef, branchName, path, content, originalSHA, message string) (*models.CommitResult, error)
	SubmitReviewRequest(ctx context.Context, ref models.RepositoryRef, headBranch, title, body, baseBranch string) (*models.PullRequestResult, error)
}

// ServiceFactory builds a GitHubService around one call's credential.
type ServiceFactory func(token models.Credential) (GitHubService, error)
