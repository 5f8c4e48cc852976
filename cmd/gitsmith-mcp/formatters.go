package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ternarybob/gitsmith/internal/models"
)

// formatLoginInstructions formats the initiate_login result as markdown
func formatLoginInstructions(session *models.DeviceFlowSession) string {
	var sb strings.Builder
	sb.WriteString("## GitHub Login Started\n\n")
	sb.WriteString(fmt.Sprintf("1. Open %s\n", session.VerificationURI))
	sb.WriteString(fmt.Sprintf("2. Enter the code: **%s**\n\n", session.UserCode))
	sb.WriteString("Once the code is entered, call `verify_login` with:\n")
	sb.WriteString(fmt.Sprintf("- device_code: `%s`\n", session.DeviceCode))
	sb.WriteString(fmt.Sprintf("- interval: %d\n", int(session.PollInterval.Seconds())))
	return sb.String()
}

// formatLoginResult formats the verify_login outcome as markdown. The
// success branch is the one place the token is intentionally shown: it
// has to be handed to the human so they can configure their client.
func formatLoginResult(result *models.LoginResult) string {
	switch result.State {
	case models.LoginSucceeded:
		var sb strings.Builder
		sb.WriteString("## Login Successful\n\n")
		sb.WriteString(fmt.Sprintf("Access token: `%s`\n\n", result.AccessToken))
		sb.WriteString("Configure your client to send this token on every call:\n")
		sb.WriteString("- HTTP mode: set the `X-GitHub-Token` header\n")
		sb.WriteString("- stdio mode: set the `GITHUB_TOKEN` environment variable\n")
		return sb.String()
	case models.LoginExpired:
		return "Login failed: the device code expired before the user authorized it. Run initiate_login again."
	default:
		return "Login timed out: the user did not authorize within the polling budget. Run initiate_login again."
	}
}

// formatUserContext formats the get_user_context result as markdown
func formatUserContext(uc *models.UserContext) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## User: %s\n", uc.Login))
	if uc.Name != "" {
		sb.WriteString(fmt.Sprintf("**Name:** %s\n", uc.Name))
	}
	sb.WriteString("\n### Recent Repositories\n\n")

	if uc.Repos.Degraded {
		sb.WriteString(fmt.Sprintf("_Repository listing unavailable: %s_\n", uc.Repos.Reason))
		return sb.String()
	}
	if len(uc.Repos.Value) == 0 {
		sb.WriteString("No repositories found.\n")
		return sb.String()
	}
	writeRepoList(&sb, uc.Repos.Value)
	return sb.String()
}

// formatSearchResults formats repository search results as markdown
func formatSearchResults(query string, repos []models.RepoSummary) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Repository Search: \"%s\" (%d results)\n\n", query, len(repos)))
	if len(repos) == 0 {
		sb.WriteString("No matching repositories found.\n")
		return sb.String()
	}
	writeRepoList(&sb, repos)
	return sb.String()
}

func writeRepoList(sb *strings.Builder, repos []models.RepoSummary) {
	for i, r := range repos {
		visibility := "public"
		if r.Private {
			visibility = "private"
		}
		sb.WriteString(fmt.Sprintf("%d. **%s** (%s, default branch: %s)\n", i+1, r.FullName, visibility, r.DefaultBranch))
		if r.Description != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", r.Description))
		}
		if !r.UpdatedAt.IsZero() {
			sb.WriteString(fmt.Sprintf("   Updated: %s\n", r.UpdatedAt.Format(time.RFC3339)))
		}
	}
}

// formatRepositoryMap formats the file listing as markdown
func formatRepositoryMap(m *models.RepositoryMap) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Files in %s/%s", m.Ref.Owner, m.Ref.Name))
	if m.Ref.Branch != "" {
		sb.WriteString(fmt.Sprintf(" @ %s", m.Ref.Branch))
	}
	sb.WriteString(fmt.Sprintf(" (%d files)\n\n", m.TotalFiles))

	if m.TreeTruncated {
		sb.WriteString("**Warning:** the repository tree is too large for GitHub to return in full; this listing is incomplete at the source.\n\n")
	}

	for _, p := range m.Paths {
		sb.WriteString(fmt.Sprintf("- %s\n", p))
	}

	if m.Capped {
		sb.WriteString(fmt.Sprintf("\n_Listing capped at %d paths (%d total)._\n", len(m.Paths), m.TotalFiles))
	}
	return sb.String()
}

// formatProjectOverview formats the three-part overview as markdown
func formatProjectOverview(o *models.ProjectOverview) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Project Overview: %s/%s\n\n", o.Ref.Owner, o.Ref.Name))

	sb.WriteString("### Languages\n")
	if o.Languages.Degraded {
		sb.WriteString(fmt.Sprintf("_%s_\n", o.Languages.Reason))
	} else {
		names := make([]string, 0, len(o.Languages.Value))
		for name := range o.Languages.Value {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			return o.Languages.Value[names[i]] > o.Languages.Value[names[j]]
		})
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("- %s: %d bytes\n", name, o.Languages.Value[name]))
		}
	}

	sb.WriteString("\n### Dependencies\n")
	if o.Dependencies.Degraded {
		sb.WriteString(fmt.Sprintf("_%s_\n", o.Dependencies.Reason))
	} else {
		for _, dep := range o.Dependencies.Value {
			sb.WriteString(fmt.Sprintf("- %s\n", dep))
		}
	}

	sb.WriteString("\n### README\n")
	if o.Readme.Degraded {
		sb.WriteString(fmt.Sprintf("_%s_\n", o.Readme.Reason))
	} else {
		sb.WriteString(o.Readme.Value)
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatFileInspection formats the composed inspection document
func formatFileInspection(ins *models.FileInspection) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## File: %s\n\n", ins.File.Path))
	sb.WriteString(fmt.Sprintf("**Blob SHA:** `%s` (pass as original_sha to commit_file_update)\n", ins.File.SHA))
	sb.WriteString(fmt.Sprintf("**Size:** %d bytes\n\n", ins.File.Size))
	sb.WriteString("### Content\n```\n")
	sb.WriteString(ins.File.Content)
	sb.WriteString("\n```\n\n### Recent Commits\n")

	if ins.HistoryNote != "" {
		sb.WriteString(fmt.Sprintf("_%s_\n", ins.HistoryNote))
	} else if len(ins.History) == 0 {
		sb.WriteString("No commits found for this path.\n")
	} else {
		for _, c := range ins.History {
			sb.WriteString(fmt.Sprintf("- `%.8s` %s", c.SHA, firstLine(c.Message)))
			if c.Author != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", c.Author))
			}
			sb.WriteString("\n")
		}
	}

	if ins.PullRequest != nil {
		sb.WriteString(fmt.Sprintf("\n### Latest Change PR: #%d %s\n", ins.PullRequest.Number, ins.PullRequest.Title))
		if ins.PullRequest.Body != "" {
			sb.WriteString(ins.PullRequest.Body)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// formatReferences formats the fan-out results, one block per path
func formatReferences(refs []models.ReferenceContent) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Referenced Files (%d)\n\n", len(refs)))
	for _, r := range refs {
		sb.WriteString(fmt.Sprintf("### %s\n", r.Path))
		if r.Failed() {
			sb.WriteString(fmt.Sprintf("_Error: %s_\n\n", r.Err))
			continue
		}
		sb.WriteString("```\n")
		sb.WriteString(r.Content)
		sb.WriteString("\n```\n\n")
	}
	return sb.String()
}

// formatBranchCreated formats the initialize_workspace result
func formatBranchCreated(b *models.BranchInfo) string {
	var sb strings.Builder
	sb.WriteString("## Workspace Ready\n\n")
	sb.WriteString(fmt.Sprintf("Created branch **%s** from %s (`%.8s`).\n\n", b.Name, b.Base, b.BaseSHA))
	sb.WriteString("Next: commit_file_update with this branch, then submit_review_request.\n")
	return sb.String()
}

// formatCommitResult formats the commit_file_update result
func formatCommitResult(c *models.CommitResult, branch string) string {
	var sb strings.Builder
	sb.WriteString("## Commit Created\n\n")
	sb.WriteString(fmt.Sprintf("Updated **%s** on %s (commit `%.8s`).\n", c.Path, branch, c.CommitSHA))
	if c.NewSHA != "" {
		sb.WriteString(fmt.Sprintf("New blob SHA: `%s` (use for any further update to this file).\n", c.NewSHA))
	}
	return sb.String()
}

// formatPullRequest formats the submit_review_request result
func formatPullRequest(pr *models.PullRequestResult) string {
	return fmt.Sprintf("## Pull Request Opened\n\n#%d: %s\n%s\n", pr.Number, pr.Title, pr.URL)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
