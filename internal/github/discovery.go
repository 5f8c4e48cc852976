package github

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/go-github/v57/github"

	"github.com/ternarybob/gitsmith/internal/models"
)

// GetUserContext fetches the caller's identity and their most recently
// updated repositories concurrently. Identity is load-bearing: if it
// fails the whole operation fails. The repository listing degrades to an
// inline note instead.
func (s *Service) GetUserContext(ctx context.Context) (*models.UserContext, error) {
	var (
		wg      sync.WaitGroup
		user    *github.User
		repos   []*github.Repository
		userErr error
		repoErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		user, _, userErr = s.client.Users.Get(ctx, "")
	}()
	go func() {
		defer wg.Done()
		repos, _, repoErr = s.client.Repositories.ListByAuthenticatedUser(ctx, &github.RepositoryListByAuthenticatedUserOptions{
			Sort:        "updated",
			ListOptions: github.ListOptions{PerPage: 10},
		})
	}()
	wg.Wait()

	if userErr != nil {
		return nil, translate(userErr, "failed to fetch user identity")
	}

	uc := &models.UserContext{
		Login: user.GetLogin(),
		Name:  user.GetName(),
	}

	if repoErr != nil {
		uc.Repos = models.DegradedResult[[]models.RepoSummary](
			translate(repoErr, "failed to list repositories").Error())
		return uc, nil
	}

	uc.Repos = models.OkResult(summarizeRepos(repos))
	return uc, nil
}

// SearchRepositories searches repositories the caller can access. An
// empty result set is a normal outcome, not an error.
func (s *Service) SearchRepositories(ctx context.Context, query string) ([]models.RepoSummary, error) {
	scoped := fmt.Sprintf("%s user:@me", query)
	result, _, err := s.client.Search.Repositories(ctx, scoped, &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: 20},
	})
	if err != nil {
		return nil, translate(err, "repository search failed")
	}
	return summarizeRepos(result.Repositories), nil
}

// GetRepositoryMap fetches the branch's full recursive tree, keeps file
// entries only, and caps the listing. A platform-side truncation of the
// tree itself is surfaced separately from the local size cap.
func (s *Service) GetRepositoryMap(ctx context.Context, ref models.RepositoryRef) (*models.RepositoryMap, error) {
	tree, _, err := s.client.Git.GetTree(ctx, ref.Owner, ref.Name, branch(ref), true)
	if err != nil {
		return nil, translate(err, fmt.Sprintf("failed to fetch tree for %s/%s@%s", ref.Owner, ref.Name, branch(ref)))
	}

	var paths []string
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		paths = append(paths, entry.GetPath())
	}

	m := &models.RepositoryMap{
		Ref:           ref,
		TotalFiles:    len(paths),
		TreeTruncated: tree.GetTruncated(),
	}

	max := s.limits.MapMaxPaths
	if max > 0 && len(paths) > max {
		paths = paths[:max]
		m.Capped = true
	}
	m.Paths = paths
	return m, nil
}

// GetProjectOverview issues three concurrent fetches: language
// histogram, dependency manifest (SBOM), and README. None is
// load-bearing, so the operation never hard-fails; each arm degrades to
// a placeholder on its own.
func (s *Service) GetProjectOverview(ctx context.Context, ref models.RepositoryRef) *models.ProjectOverview {
	overview := &models.ProjectOverview{Ref: ref}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		langs, _, err := s.client.Repositories.ListLanguages(ctx, ref.Owner, ref.Name)
		if err != nil {
			overview.Languages = models.DegradedResult[map[string]int]("language data unavailable")
			return
		}
		overview.Languages = models.OkResult(langs)
	}()

	go func() {
		defer wg.Done()
		sbom, _, err := s.client.DependencyGraph.GetSBOM(ctx, ref.Owner, ref.Name)
		if err != nil || sbom.GetSBOM() == nil {
			overview.Dependencies = models.DegradedResult[[]string]("no dependency data available")
			return
		}
		var deps []string
		for _, pkg := range sbom.GetSBOM().Packages {
			name := pkg.GetName()
			if name == "" {
				continue
			}
			if v := pkg.GetVersionInfo(); v != "" {
				name = name + " " + v
			}
			deps = append(deps, name)
		}
		if len(deps) == 0 {
			overview.Dependencies = models.DegradedResult[[]string]("no dependency data available")
			return
		}
		overview.Dependencies = models.OkResult(deps)
	}()

	go func() {
		defer wg.Done()
		readme, _, err := s.client.Repositories.GetReadme(ctx, ref.Owner, ref.Name, &github.RepositoryContentGetOptions{
			Ref: ref.Branch,
		})
		if err != nil {
			overview.Readme = models.DegradedResult[string]("no README available")
			return
		}
		text, err := readme.GetContent()
		if err != nil {
			overview.Readme = models.DegradedResult[string]("README could not be decoded")
			return
		}
		overview.Readme = models.OkResult(truncate(text, s.limits.ReadmeMaxChars))
	}()

	wg.Wait()
	return overview
}

func summarizeRepos(repos []*github.Repository) []models.RepoSummary {
	summaries := make([]models.RepoSummary, 0, len(repos))
	for _, r := range repos {
		summary := models.RepoSummary{
			FullName:      r.GetFullName(),
			Description:   r.GetDescription(),
			DefaultBranch: r.GetDefaultBranch(),
			Private:       r.GetPrivate(),
		}
		if r.UpdatedAt != nil {
			summary.UpdatedAt = r.UpdatedAt.Time
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
