package github

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/go-github/v57/github"

	"github.com/ternarybob/gitsmith/internal/models"
)

// InitializeWorkspace reads the base branch's current commit and creates
// a new branch pointing at it. The branch name is derived from the
// current time so repeated calls never collide. The platform owns the
// branch from here on; no local record is kept.
func (s *Service) InitializeWorkspace(ctx context.Context, ref models.RepositoryRef, baseBranch string) (*models.BranchInfo, error) {
	if baseBranch == "" {
		baseBranch = models.DefaultBranch
	}

	baseRef, _, err := s.client.Git.GetRef(ctx, ref.Owner, ref.Name, "heads/"+baseBranch)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("failed to read base branch %s", baseBranch))
	}

	prefix := s.limits.BranchPrefix
	if prefix == "" {
		prefix = "gitsmith-"
	}
	name := prefix + strconv.FormatInt(time.Now().Unix(), 10)

	_, _, err = s.client.Git.CreateRef(ctx, ref.Owner, ref.Name, &github.Reference{
		Ref:    github.String("refs/heads/" + name),
		Object: &github.GitObject{SHA: baseRef.Object.SHA},
	})
	if err != nil {
		return nil, translate(err, fmt.Sprintf("failed to create branch %s", name))
	}

	s.logger.Info().Str("branch", name).Str("base", baseBranch).Msg("Workspace branch created")

	return &models.BranchInfo{
		Name:    name,
		Base:    baseBranch,
		BaseSHA: baseRef.Object.GetSHA(),
	}, nil
}

// CommitFileUpdate submits a guarded content update. originalSHA is the
// blob SHA captured by inspect_target_file; GitHub rejects the update
// with 409 if the live content has changed since. That precondition is
// the only consistency guard on the write path.
func (s *Service) CommitFileUpdate(ctx context.Context, ref models.RepositoryRef, branchName, path, content, originalSHA, message string) (*models.CommitResult, error) {
	if originalSHA == "" {
		return nil, fmt.Errorf("original content SHA is required; run inspect_target_file first")
	}
	if message == "" {
		message = fmt.Sprintf("Update %s", path)
	}

	resp, _, err := s.client.Repositories.UpdateFile(ctx, ref.Owner, ref.Name, path, &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: []byte(content),
		SHA:     github.String(originalSHA),
		Branch:  github.String(branchName),
	})
	if err != nil {
		return nil, translate(err, fmt.Sprintf("failed to update %s", path))
	}

	result := &models.CommitResult{Path: path}
	if resp.Commit.SHA != nil {
		result.CommitSHA = *resp.Commit.SHA
	}
	if resp.Content != nil {
		result.NewSHA = resp.Content.GetSHA()
	}

	s.logger.Info().Str("path", path).Str("branch", branchName).Msg("File update committed")
	return result, nil
}

// SubmitReviewRequest opens a pull request from head to base. A 422
// means one already exists for the branch pair; a 403 means a
// permission or protection block. Both surface as categorized
// diagnostics.
func (s *Service) SubmitReviewRequest(ctx context.Context, ref models.RepositoryRef, headBranch, title, body, baseBranch string) (*models.PullRequestResult, error) {
	if baseBranch == "" {
		baseBranch = models.DefaultBranch
	}
	if title == "" {
		return nil, fmt.Errorf("pull request title is required")
	}

	pr, _, err := s.client.PullRequests.Create(ctx, ref.Owner, ref.Name, &github.NewPullRequest{
		Title: github.String(title),
		Head:  github.String(headBranch),
		Base:  github.String(baseBranch),
		Body:  github.String(body),
	})
	if err != nil {
		return nil, translate(err, fmt.Sprintf("failed to open pull request from %s to %s", headBranch, baseBranch))
	}

	s.logger.Info().Int("number", pr.GetNumber()).Msg("Pull request opened")

	return &models.PullRequestResult{
		Number: pr.GetNumber(),
		URL:    pr.GetHTMLURL(),
		Title:  pr.GetTitle(),
	}, nil
}
