package vcs

import (
	"context"
	"strings"

	"github.com/go-git/go-git/v5"
	transportclient "github.com/go-git/go-git/v5/plumbing/transport/client"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/server"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/strive-code/strive/config"
	"github.com/strive-code/strive/errors"
	"github.com/strive-code/strive/logger"
)

func init() {
	// Serve file endpoints in process. The stock file transport shells
	// out to git-upload-pack and git-receive-pack, which makes local
	// clone and publish depend on an installed git; the loader-backed
	// server removes that dependency.
	transportclient.InstallProtocol("file", server.DefaultServer)
}

// Client performs clone and publish operations against git sources.
// Configuration is fixed at construction.
type Client struct {
	git     config.GitConfig
	limiter *rate.Limiter
	log     *zap.SugaredLogger
}

// NewClient builds a Client from the git section of the configuration.
func NewClient(cfg config.GitConfig) *Client {
	return &Client{
		git:     cfg,
		limiter: newRemoteLimiter(cfg.RemoteOpsPerMinute),
		log:     logger.ComponentLogger("vcs"),
	}
}

// Clone fetches the source repository into dest. Remote sources clone
// shallow at the configured depth and count against the remote-op rate
// limit; the file transport does not support shallow clones, so local
// sources always clone full.
func (c *Client) Clone(ctx context.Context, src *Source, dest string) error {
	opts := &git.CloneOptions{URL: src.Location}
	if src.Remote {
		if err := c.waitRemote(ctx); err != nil {
			return errors.NewCloneError(err, src.Original)
		}
		if depth := c.git.CloneDepth; depth > 0 {
			opts.Depth = depth
		}
		if auth := c.httpAuth(src.Location); auth != nil {
			opts.Auth = auth
		}
	}

	c.log.Infow("cloning repository",
		logger.FieldLocation, src.Original,
		logger.FieldPath, dest,
	)

	if _, err := git.PlainCloneContext(ctx, dest, false, opts); err != nil {
		return errors.NewCloneError(err, src.Original)
	}
	return nil
}

// httpAuth returns token auth for https endpoints when a token is
// configured, nil otherwise. SSH endpoints rely on the ambient agent.
func (c *Client) httpAuth(location string) *githttp.BasicAuth {
	if c.git.Token == "" || !strings.HasPrefix(location, "http") {
		return nil
	}
	return &githttp.BasicAuth{
		Username: "x-access-token",
		Password: c.git.Token,
	}
}
