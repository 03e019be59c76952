// Package github fetches public repository metadata for ingestion into the
// portfolio knowledge base.
package github

import (
	"context"
	"fmt"
	"sort"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/folio-labs/folio-cli/internal/core/domain"
	"github.com/folio-labs/folio-cli/internal/logger"
)

// Connector lists a user's public repositories and their language
// breakdown. A token raises the rate limit but is not required for public
// data.
type Connector struct {
	client  *gh.Client
	limiter *rateLimiter
}

// New creates a connector. token may be empty for unauthenticated access.
func New(ctx context.Context, token string) *Connector {
	var client *gh.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		client = gh.NewClient(oauth2.NewClient(ctx, ts))
	} else {
		client = gh.NewClient(nil)
	}

	return &Connector{
		client:  client,
		limiter: newRateLimiter(),
	}
}

// FetchRepositories returns metadata for every public, non-fork,
// non-archived repository of the user, sorted by name for deterministic
// ingestion.
func (c *Connector) FetchRepositories(ctx context.Context, user string) ([]domain.RepositoryMeta, error) {
	if user == "" {
		return nil, fmt.Errorf("%w: github user is required", domain.ErrInvalidInput)
	}

	var repos []*gh.Repository
	opts := &gh.RepositoryListByUserOptions{
		Type:        "owner",
		ListOptions: gh.ListOptions{PerPage: 100},
	}
	for {
		if err := c.limiter.wait(ctx); err != nil {
			return nil, err
		}
		page, resp, err := c.client.Repositories.ListByUser(ctx, user, opts)
		if err != nil {
			return nil, fmt.Errorf("list repositories for %s: %w", user, err)
		}
		repos = append(repos, page...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	metas := make([]domain.RepositoryMeta, 0, len(repos))
	for _, r := range repos {
		if r.GetFork() || r.GetArchived() || r.GetDisabled() {
			continue
		}

		languages, err := c.fetchLanguages(ctx, user, r.GetName())
		if err != nil {
			// Languages are enrichment; keep the repo without them.
			logger.Warn("github: languages for %s unavailable: %v", r.GetName(), err)
		}

		metas = append(metas, domain.RepositoryMeta{
			Name:        r.GetName(),
			Description: r.GetDescription(),
			Languages:   languages,
			URL:         r.GetHTMLURL(),
		})
	}

	sort.Slice(metas, func(i, j int) bool { return metas[i].Name < metas[j].Name })
	logger.Info("github: fetched %d repositories for %s", len(metas), user)
	return metas, nil
}

// fetchLanguages returns the repo's languages ordered by descending byte
// count.
func (c *Connector) fetchLanguages(ctx context.Context, owner, repo string) ([]string, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return nil, err
	}
	byBytes, _, err := c.client.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		return nil, err
	}
	return sortLanguages(byBytes), nil
}

// sortLanguages orders languages by descending byte count, name as the
// tie-break.
func sortLanguages(byBytes map[string]int) []string {
	languages := make([]string, 0, len(byBytes))
	for lang := range byBytes {
		languages = append(languages, lang)
	}
	sort.Slice(languages, func(i, j int) bool {
		if byBytes[languages[i]] != byBytes[languages[j]] {
			return byBytes[languages[i]] > byBytes[languages[j]]
		}
		return languages[i] < languages[j]
	})
	return languages
}
