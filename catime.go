// Package catime generates one AI cat image per hour and maintains the
// published catalog: an append-only index, monthly detail shards, and
// rolling creative notes that bias future prompts away from recent
// repetition. External collaborators (the Gemini API, the gh CLI, and
// git) sit behind narrow interfaces so the pipeline can be exercised
// without the network.
package catime

import (
	"context"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/yazelin/catime/pkg/catalog"
	"github.com/yazelin/catime/pkg/errors"
	"github.com/yazelin/catime/pkg/logging"
	"github.com/yazelin/catime/pkg/styles"
)

// TextGenerator produces text completions for the prompt pipeline.
type TextGenerator interface {
	// GenerateText returns the model's raw text response for a prompt.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// GenerateGroundedText is GenerateText with search grounding enabled,
	// used for the news stage.
	GenerateGroundedText(ctx context.Context, prompt string) (string, error)
}

// ImageGenerator renders an image for a prompt and writes it to path.
// It returns a description of the model that produced the image.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt, path string) (model string, err error)
}

// Releases publishes image files as downloadable release assets.
type Releases interface {
	// Ensure creates the release when it does not exist yet.
	Ensure(ctx context.Context) error

	// Upload publishes the asset and returns its public download URL.
	Upload(ctx context.Context, path string) (url string, err error)
}

// Issues posts gallery comments to the monthly tracking issue.
type Issues interface {
	// Monthly returns the number of the current month's issue, creating
	// it when absent.
	Monthly(ctx context.Context, now time.Time) (string, error)

	// Comment posts a comment and returns its ID.
	Comment(ctx context.Context, issue, body string) (int64, error)
}

// Pusher commits catalog files and pushes them to the remote.
type Pusher interface {
	CommitAndPush(ctx context.Context, files []string, message string) error
}

// Client runs the hourly generation pipeline over a catalog working copy.
type Client struct {
	dir        string
	workDir    string
	stylesPath string

	text     TextGenerator
	image    ImageGenerator
	releases Releases
	issues   Issues
	pusher   Pusher

	logger *zerolog.Logger
	now    func() time.Time
	rng    *rand.Rand
}

// New creates a pipeline client. The text generator, image generator,
// release publisher, and pusher are required; the issue client is
// optional (comments are best-effort).
func New(opts ...Option) (*Client, error) {
	c := &Client{
		dir:     ".",
		workDir: os.TempDir(),
		logger:  logging.Default(),
		now:     time.Now,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.stylesPath == "" {
		c.stylesPath = styles.DefaultFile
	}

	switch {
	case c.text == nil:
		return nil, &errors.ConfigError{Component: "catime", Message: "text generator is required"}
	case c.image == nil:
		return nil, &errors.ConfigError{Component: "catime", Message: "image generator is required"}
	case c.releases == nil:
		return nil, &errors.ConfigError{Component: "catime", Message: "release publisher is required"}
	case c.pusher == nil:
		return nil, &errors.ConfigError{Component: "catime", Message: "pusher is required"}
	}

	return c, nil
}

// Store returns the catalog store for the client's working directory.
func (c *Client) Store() *catalog.Store {
	return catalog.Open(c.dir)
}
