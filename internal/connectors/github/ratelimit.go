package github

import (
	"context"

	"golang.org/x/time/rate"
)

// fetchRate throttles metadata fetches well below GitHub's authenticated
// limit (5000/hour); portfolio accounts have at most a few hundred repos.
const fetchRate = 1.2

// rateLimiter provides proactive throttling for GitHub API calls.
type rateLimiter struct {
	bucket *rate.Limiter
}

func newRateLimiter() *rateLimiter {
	return &rateLimiter{
		bucket: rate.NewLimiter(rate.Limit(fetchRate), 1),
	}
}

// wait blocks until it's safe to make a request.
func (r *rateLimiter) wait(ctx context.Context) error {
	return r.bucket.Wait(ctx)
}
