package catime

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// Option is a functional option for configuring the Client.
type Option func(*Client) error

// WithDir sets the catalog working directory (the checked-out repo).
func WithDir(dir string) Option {
	return func(c *Client) error {
		if dir != "" {
			c.dir = dir
		}
		return nil
	}
}

// WithWorkDir sets the scratch directory for generated image files.
func WithWorkDir(dir string) Option {
	return func(c *Client) error {
		if dir != "" {
			c.workDir = dir
		}
		return nil
	}
}

// WithStylesPath sets the style palette file path.
func WithStylesPath(path string) Option {
	return func(c *Client) error {
		c.stylesPath = path
		return nil
	}
}

// WithTextGenerator sets the text generation backend.
func WithTextGenerator(g TextGenerator) Option {
	return func(c *Client) error {
		c.text = g
		return nil
	}
}

// WithImageGenerator sets the image generation backend.
func WithImageGenerator(g ImageGenerator) Option {
	return func(c *Client) error {
		c.image = g
		return nil
	}
}

// WithReleases sets the release asset publisher.
func WithReleases(r Releases) Option {
	return func(c *Client) error {
		c.releases = r
		return nil
	}
}

// WithIssues sets the tracking issue client.
func WithIssues(i Issues) Option {
	return func(c *Client) error {
		c.issues = i
		return nil
	}
}

// WithPusher sets the catalog pusher.
func WithPusher(p Pusher) Option {
	return func(c *Client) error {
		c.pusher = p
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// WithClock sets the time source (useful for testing).
func WithClock(now func() time.Time) Option {
	return func(c *Client) error {
		if now != nil {
			c.now = now
		}
		return nil
	}
}

// WithRand sets the random source used for style picks (useful for
// testing).
func WithRand(rng *rand.Rand) Option {
	return func(c *Client) error {
		if rng != nil {
			c.rng = rng
		}
		return nil
	}
}
