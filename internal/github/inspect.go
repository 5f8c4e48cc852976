package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v57/github"

	"github.com/ternarybob/gitsmith/internal/models"
)

// InspectTargetFile fetches a file's content, its recent history, and
// the pull request behind the latest change. The three steps are
// strictly sequential: history needs the path, the PR lookup needs the
// newest commit SHA. Only the content fetch is load-bearing; history and
// PR lookups degrade to notes. The returned blob SHA is the
// precondition commit_file_update requires.
func (s *Service) InspectTargetFile(ctx context.Context, ref models.RepositoryRef, path string) (*models.FileInspection, error) {
	file, _, _, err := s.client.Repositories.GetContents(ctx, ref.Owner, ref.Name, path, &github.RepositoryContentGetOptions{
		Ref: branch(ref),
	})
	if err != nil {
		return nil, translate(err, fmt.Sprintf("failed to fetch %s", path))
	}
	if file == nil {
		return nil, fmt.Errorf("%s is a directory, not a file", path)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	inspection := &models.FileInspection{
		File: models.FileSnapshot{
			Path:    file.GetPath(),
			Content: content,
			SHA:     file.GetSHA(),
			Size:    file.GetSize(),
		},
	}

	commits, _, err := s.client.Repositories.ListCommits(ctx, ref.Owner, ref.Name, &github.CommitsListOptions{
		Path:        path,
		SHA:         branch(ref),
		ListOptions: github.ListOptions{PerPage: s.historyDepth()},
	})
	if err != nil {
		inspection.HistoryNote = "commit history unavailable"
		return inspection, nil
	}

	for _, c := range commits {
		info := models.CommitInfo{SHA: c.GetSHA()}
		if commit := c.GetCommit(); commit != nil {
			info.Message = commit.GetMessage()
			if author := commit.GetAuthor(); author != nil {
				info.Author = author.GetName()
				info.Date = author.GetDate().Time
			}
		}
		inspection.History = append(inspection.History, info)
	}

	if len(inspection.History) > 0 {
		inspection.PullRequest = s.linkedPullRequest(ctx, ref, inspection.History[0].SHA)
	}

	return inspection, nil
}

// linkedPullRequest returns the first pull request associated with the
// commit, or nil. The lookup is best-effort.
func (s *Service) linkedPullRequest(ctx context.Context, ref models.RepositoryRef, sha string) *models.PullRequestInfo {
	prs, _, err := s.client.PullRequests.ListPullRequestsWithCommit(ctx, ref.Owner, ref.Name, sha, nil)
	if err != nil || len(prs) == 0 {
		return nil
	}

	pr := prs[0]
	return &models.PullRequestInfo{
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
		Body:   truncate(pr.GetBody(), s.limits.PRBodyMaxChars),
		URL:    pr.GetHTMLURL(),
	}
}

func (s *Service) historyDepth() int {
	if s.limits.HistoryDepth > 0 {
		return s.limits.HistoryDepth
	}
	return 3
}
