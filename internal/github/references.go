package github

import (
	"context"
	"sync"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/phuslu/log"
	"golang.org/x/time/rate"

	"github.com/ternarybob/gitsmith/internal/models"
)

// ReadReferences fetches content for a list of paths concurrently. Each
// fetch is independently fallible: a failed path keeps its slot with an
// inline error and never aborts its siblings. Results come back in
// input order. Concurrency is bounded by a semaphore and a shared rate
// limiter to stay under GitHub's secondary rate limits.
func (s *Service) ReadReferences(ctx context.Context, ref models.RepositoryRef, paths []string) []models.ReferenceContent {
	results := make([]models.ReferenceContent, len(paths))
	if len(paths) == 0 {
		return results
	}

	start := time.Now()
	concurrency := s.limits.RefConcurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	rps := s.limits.RefRequestsPerSec
	if rps <= 0 {
		rps = 10
	}
	limiter := rate.NewLimiter(rate.Limit(rps), concurrency)

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	for i, path := range paths {
		wg.Add(1)
		go func(idx int, p string) {
			defer wg.Done()

			results[idx] = models.ReferenceContent{Path: p}

			select {
			case <-ctx.Done():
				results[idx].Err = ctx.Err().Error()
				return
			case sem <- struct{}{}:
				defer func() { <-sem }()
			}

			if err := limiter.Wait(ctx); err != nil {
				results[idx].Err = err.Error()
				return
			}

			file, _, _, err := s.client.Repositories.GetContents(ctx, ref.Owner, ref.Name, p, &github.RepositoryContentGetOptions{
				Ref: branch(ref),
			})
			if err != nil {
				results[idx].Err = translate(err, "fetch failed").Error()
				return
			}
			if file == nil {
				results[idx].Err = "path is a directory"
				return
			}

			content, err := file.GetContent()
			if err != nil {
				results[idx].Err = "content could not be decoded"
				return
			}

			results[idx].Content = content
			results[idx].SHA = file.GetSHA()
		}(i, path)
	}

	wg.Wait()

	errCount := 0
	for _, r := range results {
		if r.Failed() {
			errCount++
		}
	}

	log.Info().
		Int("total", len(paths)).
		Int("errors", errCount).
		Dur("duration", time.Since(start)).
		Msg("Reference fetch complete")

	return results
}
