// Package vcs fetches source repositories and publishes reconstructed
// ones. Source resolution goes through hashicorp/go-getter so local
// paths, git URLs and GitHub shorthand all work as inputs:
//   - Local paths: /path/to/repo, ./relative/path, ~/home/path
//   - Git URLs: https://github.com/user/repo, git@github.com:user/repo.git
//   - GitHub shorthand: github.com/user/repo
package vcs

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/hashicorp/go-getter"

	"github.com/strive-code/strive/errors"
)

// Source is a resolved repository location, validated and ready to
// clone.
type Source struct {
	// Location is the clone endpoint: an absolute path for local
	// sources, a normalized URL for remote ones.
	Location string
	// Original is the location exactly as the caller supplied it.
	Original string
	// Name is the repository name, safe for directory naming.
	Name string
	// Remote reports whether cloning goes over the network.
	Remote bool
}

// Resolve validates a repository location and normalizes it into a
// clone endpoint. Locations that resolve to neither a git URL nor a
// local git repository are rejected before any clone is attempted.
func Resolve(location string) (*Source, error) {
	trimmed := strings.TrimSpace(location)
	if trimmed == "" {
		return nil, errors.NewInvalidRequestError("repository location is required")
	}

	pwd, err := os.Getwd()
	if err != nil {
		pwd = "."
	}

	detected, err := getter.Detect(trimmed, pwd, getter.Detectors)
	if err != nil {
		return nil, errors.NewInvalidRequestError("unrecognized repository location %q: %v", trimmed, err)
	}

	parsed, err := url.Parse(detected)
	if err != nil {
		return nil, errors.NewInvalidRequestError("unparseable repository location %q: %v", trimmed, err)
	}

	if parsed.Scheme == "file" || parsed.Scheme == "" {
		localPath := trimmed
		if parsed.Scheme == "file" {
			localPath = parsed.Path
		}

		if strings.HasPrefix(localPath, "~/") {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, errors.NewInvalidRequestError("cannot expand home directory in %q: %v", trimmed, err)
			}
			localPath = filepath.Join(home, localPath[2:])
		}
		if !filepath.IsAbs(localPath) {
			localPath = filepath.Join(pwd, localPath)
		}

		if !IsGitRepository(localPath) {
			return nil, errors.NewInvalidRequestError("not a git repository: %s", localPath)
		}

		return &Source{
			Location: cloneEndpoint(localPath),
			Original: location,
			Name:     ExtractRepoName(trimmed),
			Remote:   false,
		}, nil
	}

	// go-getter marks git sources with a forced-getter prefix
	// (git::https://...); go-git wants the bare URL back.
	normalized := strings.TrimPrefix(detected, "git::")

	return &Source{
		Location: normalized,
		Original: location,
		Name:     ExtractRepoName(trimmed),
		Remote:   true,
	}, nil
}

// IsGitRepository checks if a path is a git repository
func IsGitRepository(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

// cloneEndpoint returns the path the in-process file transport can
// serve: the .git directory for checked-out repositories, the path
// itself for bare ones.
func cloneEndpoint(path string) string {
	dotgit := filepath.Join(path, ".git")
	if fi, err := os.Stat(dotgit); err == nil && fi.IsDir() {
		return dotgit
	}
	return path
}

// ExtractRepoName extracts a clean repository name from a URL or path.
// Used for workdir and destination naming.
func ExtractRepoName(input string) string {
	input = strings.TrimSuffix(input, "/")
	input = strings.TrimSuffix(input, ".git")

	if strings.Contains(input, "/") {
		parts := strings.Split(input, "/")
		// Return last non-empty component
		for i := len(parts) - 1; i >= 0; i-- {
			if parts[i] != "" {
				return sanitizeRepoName(parts[i])
			}
		}
	}

	return sanitizeRepoName(input)
}

// sanitizeRepoName removes or replaces characters not safe for directory names.
func sanitizeRepoName(name string) string {
	name = strings.TrimPrefix(name, "git@")

	replacer := strings.NewReplacer(
		":", "-",
		"@", "-",
		" ", "-",
	)
	name = replacer.Replace(name)

	if len(name) > 50 {
		name = name[:50]
	}

	if name == "" {
		name = "repo"
	}

	return name
}
