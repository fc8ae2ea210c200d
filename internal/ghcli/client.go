// Package ghcli shells out to the GitHub CLI (gh) for release assets and
// issue comments. Authentication comes from the GH_TOKEN/GITHUB_TOKEN
// environment, the same way GitHub Actions provides it.
package ghcli

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/yazelin/catime/pkg/errors"
)

const (
	// ReleaseTag is the rolling release holding every cat image asset.
	ReleaseTag = "cats"

	releaseTitle = "Cat Images"
	releaseNotes = "Auto-generated cat images, one every hour."
)

// commentIDRe extracts the comment ID from the URL gh prints,
// e.g. https://github.com/o/r/issues/3#issuecomment-123456.
var commentIDRe = regexp.MustCompile(`issuecomment-(\d+)`)

// Client wraps gh invocations against one repository.
type Client struct {
	repo string
}

// NewClient creates a gh client for an "owner/name" repository.
func NewClient(repo string) *Client {
	return &Client{repo: repo}
}

// run executes gh with the repo flag appended and returns its stdout.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	args = append(args, "--repo", c.repo)
	cmd := exec.CommandContext(ctx, "gh", args...)
	output, err := cmd.Output()
	if err != nil {
		detail := ""
		if exitErr, ok := err.(*exec.ExitError); ok {
			detail = string(exitErr.Stderr)
		}
		return "", &errors.ProcessError{
			Operation: args[0] + " " + args[1],
			Command:   "gh " + strings.Join(args, " "),
			Output:    detail,
			Err:       err,
		}
	}
	return string(output), nil
}

// Ensure creates the cats release when it does not exist yet.
func (c *Client) Ensure(ctx context.Context) error {
	if _, err := c.run(ctx, "release", "view", ReleaseTag); err == nil {
		return nil
	}
	_, err := c.run(ctx, "release", "create", ReleaseTag,
		"--title", releaseTitle,
		"--notes", releaseNotes)
	return err
}

// Upload publishes the file as a release asset, replacing any asset with
// the same name, and returns its public download URL.
func (c *Client) Upload(ctx context.Context, path string) (string, error) {
	if _, err := c.run(ctx, "release", "upload", ReleaseTag, path, "--clobber"); err != nil {
		return "", err
	}
	return AssetURL(c.repo, filepath.Base(path)), nil
}

// AssetURL builds the public download URL of a cats release asset.
func AssetURL(repo, filename string) string {
	return fmt.Sprintf("https://github.com/%s/releases/download/%s/%s", repo, ReleaseTag, filename)
}

// MonthlyTitle is the title of the gallery issue for now's month.
func MonthlyTitle(now time.Time) string {
	return "Cat Gallery - " + now.UTC().Format("2006-01")
}

// Monthly returns the number of the current month's gallery issue,
// creating the issue when absent.
func (c *Client) Monthly(ctx context.Context, now time.Time) (string, error) {
	title := MonthlyTitle(now)

	output, err := c.run(ctx, "issue", "list",
		"--search", fmt.Sprintf("%q in:title", title),
		"--json", "number,title",
		"--limit", "10")
	if err == nil {
		var issues []struct {
			Number int    `json:"number"`
			Title  string `json:"title"`
		}
		if jsonErr := json.Unmarshal([]byte(output), &issues); jsonErr == nil {
			for _, issue := range issues {
				if issue.Title == title {
					return strconv.Itoa(issue.Number), nil
				}
			}
		}
	}

	month := now.UTC().Format("2006-01")
	output, err = c.run(ctx, "issue", "create",
		"--title", title,
		"--body", fmt.Sprintf("Auto-generated cat images for %s.", month))
	if err != nil {
		return "", err
	}

	// gh issue create prints the new issue's URL.
	url := strings.TrimSpace(output)
	number := url[strings.LastIndex(url, "/")+1:]
	if _, convErr := strconv.Atoi(number); convErr != nil {
		return "", errors.WrapParse("issue URL", url, convErr)
	}
	return number, nil
}

// Comment posts a comment on the issue and returns the comment ID parsed
// from the URL gh prints.
func (c *Client) Comment(ctx context.Context, issue, body string) (int64, error) {
	output, err := c.run(ctx, "issue", "comment", issue, "--body", body)
	if err != nil {
		return 0, err
	}

	url := strings.TrimSpace(output)
	m := commentIDRe.FindStringSubmatch(url)
	if m == nil {
		return 0, errors.WrapParse("comment URL", url, errors.New("no issuecomment id"))
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, errors.WrapParse("comment URL", url, err)
	}
	return id, nil
}
