package models

import "time"

// RepositoryRef identifies a repository and branch on the platform.
// Owner and Name come from the caller; Branch defaults to "main".
type RepositoryRef struct {
	Owner  string
	Name   string
	Branch string
}

// DefaultBranch is used when the caller does not supply a branch.
const DefaultBranch = "main"

// FileSnapshot is one file's decoded content plus the blob SHA that
// guards later updates (optimistic concurrency).
type FileSnapshot struct {
	Path    string
	Content string
	SHA     string
	Size    int
}

// CommitInfo is one entry of a file's recent history.
type CommitInfo struct {
	SHA     string
	Message string
	Author  string
	Date    time.Time
}

// PullRequestInfo is the first pull request linked to a commit, body
// truncated for display.
type PullRequestInfo struct {
	Number int
	Title  string
	Body   string
	URL    string
}

// FileInspection composes everything inspect_target_file gathers: the
// snapshot, up to three recent commits, and the PR that produced the
// latest change (nil when none was found or the lookup degraded).
type FileInspection struct {
	File        FileSnapshot
	History     []CommitInfo
	PullRequest *PullRequestInfo
	// HistoryNote carries the degradation reason when the history
	// sub-fetch failed and History is empty.
	HistoryNote string
}

// RepoSummary is one repository row in listings and search results.
type RepoSummary struct {
	FullName      string
	Description   string
	DefaultBranch string
	Private       bool
	UpdatedAt     time.Time
}

// UserContext is the fan-in of get_user_context. Identity always
// present; Repos is a tagged sub-result because the listing degrades
// independently.
type UserContext struct {
	Login string
	Name  string
	Repos SubResult[[]RepoSummary]
}

// RepositoryMap is the filtered recursive file listing of a branch.
type RepositoryMap struct {
	Ref   RepositoryRef
	Paths []string
	// TotalFiles is the pre-truncation file count.
	TotalFiles int
	// Capped means the listing was cut to the response size limit.
	Capped bool
	// TreeTruncated means the platform itself could not return the
	// full tree, which is a different warning than Capped.
	TreeTruncated bool
}

// ProjectOverview is the fan-in of get_project_overview. None of the
// three sub-fetches is load-bearing, so each arm degrades on its own.
type ProjectOverview struct {
	Ref          RepositoryRef
	Languages    SubResult[map[string]int]
	Dependencies SubResult[[]string]
	Readme       SubResult[string]
}

// ReferenceContent is one arm of the read_references fan-out. A failed
// fetch keeps its slot with Err set so siblings are never blanked out.
type ReferenceContent struct {
	Path    string
	Content string
	SHA     string
	Err     string
}

// Failed reports whether this reference fetch degraded.
func (r ReferenceContent) Failed() bool { return r.Err != "" }

// BranchInfo describes a branch created by initialize_workspace.
type BranchInfo struct {
	Name    string
	BaseSHA string
	Base    string
}

// CommitResult describes a guarded file update that the platform
// accepted.
type CommitResult struct {
	Path      string
	CommitSHA string
	// NewSHA is the blob SHA of the updated content; callers need it
	// for any follow-up update to the same file.
	NewSHA string
}

// PullRequestResult describes a review request opened by
// submit_review_request.
type PullRequestResult struct {
	Number int
	URL    string
	Title  string
}
