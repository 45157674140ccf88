package vcs

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/strive-code/strive/errors"
	"github.com/strive-code/strive/logger"
)

// PublishDestination joins the publish base and repository name into a
// push destination. URL bases join with a slash, filesystem bases with
// the platform separator.
func PublishDestination(base, name string) string {
	if isRemoteLocation(base) {
		return strings.TrimSuffix(base, "/") + "/" + name
	}
	return filepath.Join(base, name)
}

func isRemoteLocation(location string) bool {
	return strings.HasPrefix(location, "http://") ||
		strings.HasPrefix(location, "https://") ||
		strings.HasPrefix(location, "ssh://") ||
		strings.HasPrefix(location, "git@")
}

// Publish commits everything under srcDir and pushes it to dest. The
// directory is initialized as a repository if it is not one already.
// Filesystem destinations are created as bare repositories on first
// publish; remote destinations must already exist. Returns the
// location the result was pushed to.
func (c *Client) Publish(ctx context.Context, srcDir, dest, message string) (string, error) {
	repo, err := c.openOrInit(srcDir)
	if err != nil {
		return "", errors.NewPublishError(err, dest)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", errors.NewPublishError(err, dest)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", errors.NewPublishError(err, dest)
	}

	_, err = wt.Commit(message, &git.CommitOptions{
		AllowEmptyCommits: true,
		Author: &object.Signature{
			Name:  c.git.AuthorName,
			Email: c.git.AuthorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", errors.NewPublishError(err, dest)
	}

	remote := isRemoteLocation(dest)
	if !remote {
		if err := ensureBareRepository(dest); err != nil {
			return "", errors.NewPublishError(err, dest)
		}
	}

	_, err = repo.CreateRemote(&gitcfg.RemoteConfig{
		Name: git.DefaultRemoteName,
		URLs: []string{dest},
	})
	if err != nil && !errors.Is(err, git.ErrRemoteExists) {
		return "", errors.NewPublishError(err, dest)
	}

	pushOpts := &git.PushOptions{RemoteName: git.DefaultRemoteName}
	if remote {
		if err := c.waitRemote(ctx); err != nil {
			return "", errors.NewPublishError(err, dest)
		}
		if auth := c.httpAuth(dest); auth != nil {
			pushOpts.Auth = auth
		}
	}

	c.log.Infow("publishing repository",
		logger.FieldPath, srcDir,
		logger.FieldLocation, dest,
	)

	if err := repo.PushContext(ctx, pushOpts); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return "", errors.NewPublishError(err, dest)
	}
	return dest, nil
}

func (c *Client) openOrInit(path string) (*git.Repository, error) {
	repo, err := git.PlainOpen(path)
	if err == nil {
		return repo, nil
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, err
	}
	return git.PlainInit(path, false)
}

// ensureBareRepository initializes dest as a bare repository so the
// file transport has somewhere to push. An existing repository is
// reused.
func ensureBareRepository(dest string) error {
	_, err := git.PlainInit(dest, true)
	if err != nil && !errors.Is(err, git.ErrRepositoryAlreadyExists) {
		return err
	}
	return nil
}
