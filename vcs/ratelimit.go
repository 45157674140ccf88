package vcs

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/strive-code/strive/errors"
)

const defaultRemoteOpsPerMinute = 30

// newRemoteLimiter paces operations that hit remote git hosts. The
// budget is expressed per minute and spent one operation at a time.
func newRemoteLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		perMinute = defaultRemoteOpsPerMinute
	}
	return rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 1)
}

// waitRemote blocks until the limiter admits one more remote call.
// Local fetches and pushes never pass through here.
func (c *Client) waitRemote(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "remote operation rate limit wait aborted")
	}
	return nil
}
