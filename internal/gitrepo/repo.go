// Package gitrepo commits catalog files and pushes them to the remote,
// retrying with a rebase when concurrent runs race on the same branch.
package gitrepo

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yazelin/catime/pkg/errors"
	"github.com/yazelin/catime/pkg/logging"
)

const (
	botName  = "github-actions[bot]"
	botEmail = "github-actions[bot]@users.noreply.github.com"

	pushAttempts = 3
)

// Repo runs git commands in one working copy.
type Repo struct {
	dir    string
	logger *zerolog.Logger
}

// Open creates a Repo for the working copy at dir.
func Open(dir string) *Repo {
	return &Repo{dir: dir, logger: logging.Default()}
}

// WithLogger sets the logger and returns the repo.
func (r *Repo) WithLogger(logger *zerolog.Logger) *Repo {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// git runs a git subcommand in the working copy.
func (r *Repo) git(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return &errors.ProcessError{
			Operation: "git " + args[0],
			Command:   "git " + strings.Join(args, " "),
			Output:    string(output),
			Err:       err,
		}
	}
	return nil
}

// ConfigureBot sets the commit identity to the GitHub Actions bot.
func (r *Repo) ConfigureBot(ctx context.Context) error {
	if err := r.git(ctx, "config", "user.name", botName); err != nil {
		return err
	}
	return r.git(ctx, "config", "user.email", botEmail)
}

// CommitAndPush stages the files, commits with the message, and pushes.
// When the push is rejected it rebases onto the remote and retries, up to
// pushAttempts times.
func (r *Repo) CommitAndPush(ctx context.Context, files []string, message string) error {
	if err := r.ConfigureBot(ctx); err != nil {
		return err
	}
	if err := r.git(ctx, append([]string{"add"}, files...)...); err != nil {
		return err
	}
	if err := r.git(ctx, "commit", "-m", message); err != nil {
		return err
	}

	for attempt := 1; attempt <= pushAttempts; attempt++ {
		err := r.git(ctx, "push")
		if err == nil {
			return nil
		}
		r.logger.Warn().Int("attempt", attempt).Err(err).Msg("Push failed, rebasing")
		if attempt == pushAttempts {
			break
		}
		if err := r.git(ctx, "pull", "--rebase"); err != nil {
			return err
		}
	}
	return fmt.Errorf("push after %d attempts: %w", pushAttempts, errors.ErrPushExhausted)
}
