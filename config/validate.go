package config

import "github.com/strive-code/strive/errors"

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Pipeline workers: 0 = use default, negative = invalid
	if c.Pipeline.Workers < 0 {
		return errors.Newf("pipeline.workers must be >= 0, got %d", c.Pipeline.Workers)
	}

	// Timeouts: 0 = use default, negative = invalid
	if c.Pipeline.CloneTimeoutSeconds < 0 {
		return errors.Newf("pipeline.clone_timeout_seconds must be >= 0, got %d", c.Pipeline.CloneTimeoutSeconds)
	}
	if c.Pipeline.PublishTimeoutSeconds < 0 {
		return errors.Newf("pipeline.publish_timeout_seconds must be >= 0, got %d", c.Pipeline.PublishTimeoutSeconds)
	}
	if c.Pipeline.FileTimeoutSeconds < 0 {
		return errors.Newf("pipeline.file_timeout_seconds must be >= 0, got %d", c.Pipeline.FileTimeoutSeconds)
	}

	// Clone depth: 0 = full clone, negative = invalid
	if c.Git.CloneDepth < 0 {
		return errors.Newf("git.clone_depth must be >= 0, got %d", c.Git.CloneDepth)
	}

	// Remote rate limit: 0 = unlimited, negative = invalid
	if c.Git.RemoteOpsPerMinute < 0 {
		return errors.Newf("git.remote_ops_per_minute must be >= 0, got %d", c.Git.RemoteOpsPerMinute)
	}

	// Publishing requires a commit identity
	if c.Git.AuthorName == "" {
		return errors.New("git.author_name cannot be empty")
	}
	if c.Git.AuthorEmail == "" {
		return errors.New("git.author_email cannot be empty")
	}

	return nil
}
