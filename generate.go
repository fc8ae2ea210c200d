package catime

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/yazelin/catime/internal/prompts"
	"github.com/yazelin/catime/pkg/catalog"
	"github.com/yazelin/catime/pkg/errors"
	"github.com/yazelin/catime/pkg/styles"
)

const (
	// notesInterval is how often (in cats) the creative notes rotate.
	notesInterval = 5

	// recentWindow is how many recent details feed the notes summary.
	recentWindow = 10

	// maxNews caps the news items fed into the idea stage.
	maxNews = 5

	fallbackStory = "一隻可愛的貓咪正在享受美好的一天。"
	fallbackTitle = "貓咪日常"
)

// draft is the output of the prompt pipeline before image generation.
type draft struct {
	Prompt      string
	Story       string
	Idea        string
	Title       string
	Inspiration string
	News        []string
	Avoid       []string
	Picks       map[string]string
}

// Run executes one hourly generation: idempotency check, creative notes
// rotation, prompt pipeline, image generation, release upload, issue
// comment, and the catalog append-and-push. A failed image generation is
// recorded in the catalog before the error is returned.
func (c *Client) Run(ctx context.Context) error {
	now := c.now().UTC()
	timestamp := catalog.FormatTimestamp(now)
	store := c.Store()

	exists, err := store.HasSuccessForHour(now)
	if err != nil {
		return err
	}
	if exists {
		c.logger.Info().Str("hour", catalog.HourPrefix(now)).Msg("Cat already exists for this hour, skipping")
		return nil
	}

	number, err := store.NextNumber()
	if err != nil {
		return err
	}

	notes := c.maybeRotateNotes(ctx, store, number)

	c.logger.Info().Int("number", number).Str("timestamp", timestamp).Msg("Generating cat")
	d := c.compose(ctx, timestamp, notes)

	imagePath := filepath.Join(c.workDir, imageFileName(timestamp))
	model, imgErr := c.image.GenerateImage(ctx, d.Prompt, imagePath)
	if imgErr != nil {
		c.logger.Error().Err(imgErr).Msg("Image generation failed")
		rec := catalog.Record{
			Timestamp: timestamp,
			Model:     "all failed",
			Status:    catalog.StatusFailed,
			Error:     imgErr.Error(),
		}
		if pushErr := c.appendAndPush(ctx, store, rec); pushErr != nil {
			return pushErr
		}
		return errors.WrapAPI("gemini", "image", imgErr)
	}
	c.logger.Info().Str("model", model).Msg("Image generated")

	if err := c.releases.Ensure(ctx); err != nil {
		return err
	}
	url, err := c.releases.Upload(ctx, imagePath)
	if err != nil {
		return err
	}
	c.logger.Info().Str("url", url).Msg("Image uploaded as release asset")

	rec := catalog.Record{
		Number:          number,
		Timestamp:       timestamp,
		URL:             url,
		Model:           model,
		Status:          catalog.StatusSuccess,
		Title:           d.Title,
		Inspiration:     d.Inspiration,
		Prompt:          d.Prompt,
		Story:           d.Story,
		Idea:            d.Idea,
		NewsInspiration: d.News,
		AvoidList:       d.Avoid,
		StylePicks:      d.Picks,
	}
	rec.CommentID = c.postComment(ctx, now, rec)

	if err := c.appendAndPush(ctx, store, rec); err != nil {
		return err
	}
	c.logger.Info().Int("number", number).Msg("Done")
	return nil
}

// maybeRotateNotes refreshes the creative notes every notesInterval cats
// by summarizing recent details into an avoid list. Any failure keeps the
// old notes.
func (c *Client) maybeRotateNotes(ctx context.Context, store *catalog.Store, number int) catalog.CreativeNotes {
	notes := store.Notes()
	if number%notesInterval != 0 {
		return notes
	}

	c.logger.Info().Int("number", number).Msg("Rotating creative notes")
	recent, err := store.RecentDetails(recentWindow)
	if err != nil || len(recent) == 0 {
		return notes
	}

	response, err := c.text.GenerateText(ctx, prompts.Summary(recent))
	if err != nil {
		c.logger.Warn().Err(err).Msg("Creative notes update failed, keeping old notes")
		return notes
	}
	data, ok := parseResponse(response, "avoid_list")
	if !ok {
		c.logger.Warn().Msg("Summary response missing avoid_list, keeping old notes")
		return notes
	}
	avoid := stringSlice(data, "avoid_list")
	if len(avoid) == 0 {
		return notes
	}

	fresh := catalog.CreativeNotes{
		AvoidList: avoid,
		UpdatedAt: catalog.FormatTimestamp(c.now()),
	}
	if err := store.SaveNotes(fresh); err != nil {
		c.logger.Warn().Err(err).Msg("Writing creative notes failed, keeping old notes")
		return notes
	}
	c.logger.Info().Int("avoid_items", len(avoid)).Msg("Creative notes updated")
	return fresh
}

// compose runs the three text stages: news gathering, idea invention,
// and prompt rendering. Every failure degrades to a usable fallback.
func (c *Client) compose(ctx context.Context, timestamp string, notes catalog.CreativeNotes) draft {
	news := c.fetchNews(ctx)
	picks := c.pickStyles()

	d := draft{
		Prompt:      fmt.Sprintf("A cute cat with the date and time '%s' displayed in the image, high quality, detailed", timestamp),
		Story:       fallbackStory,
		Title:       fallbackTitle,
		Inspiration: "original",
		News:        news,
		Avoid:       notes.AvoidList,
		Picks:       styles.Names(picks),
	}

	c.logger.Info().
		Int("avoid_items", len(notes.AvoidList)).
		Int("news_items", len(news)).
		Msg("Generating idea")
	response, err := c.text.GenerateText(ctx, prompts.Idea(news, notes.AvoidList, picks))
	if err != nil {
		c.logger.Warn().Err(err).Msg("Idea stage failed, using fallback")
		return d
	}
	data, ok := parseResponse(response, "idea", "story")
	if !ok {
		c.logger.Warn().Msg("Idea stage parse failed, using fallback")
		return d
	}
	d.Idea = stringValue(data, "idea")
	d.Story = stringValue(data, "story")
	if title := stringValue(data, "title"); title != "" {
		d.Title = title
	}
	if inspiration := stringValue(data, "inspiration"); inspiration != "" {
		d.Inspiration = inspiration
	}
	c.logger.Info().Str("title", d.Title).Msg("Idea generated")

	// The render stage fallback reuses the idea directly.
	d.Prompt = fmt.Sprintf("%s. The date and time '%s' is visually displayed in the image. %s",
		d.Idea, timestamp, prompts.Snippets(picks))

	response, err = c.text.GenerateText(ctx, prompts.Render(d.Idea, d.Story, timestamp, picks))
	if err != nil {
		c.logger.Warn().Err(err).Msg("Render stage failed, using idea as prompt")
		return d
	}
	data, ok = parseResponse(response, "prompt")
	if !ok {
		c.logger.Warn().Msg("Render stage parse failed, using idea as prompt")
		return d
	}
	d.Prompt = stringValue(data, "prompt")
	return d
}

// fetchNews gathers today's news summaries for inspiration. Failures
// return an empty list and the pipeline continues without news.
func (c *Client) fetchNews(ctx context.Context) []string {
	response, err := c.text.GenerateGroundedText(ctx, prompts.News())
	if err != nil {
		c.logger.Warn().Err(err).Msg("News fetch failed, skipping news inspiration")
		return nil
	}
	data, ok := parseResponse(response, "news")
	if !ok {
		c.logger.Warn().Msg("News parse failed, skipping news inspiration")
		return nil
	}
	news := stringSlice(data, "news")
	if len(news) > maxNews {
		news = news[:maxNews]
	}
	return news
}

// pickStyles loads the palette and draws today's picks.
func (c *Client) pickStyles() map[string]styles.Style {
	ref, err := styles.Load(c.stylesPath)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Style palette unreadable, continuing without styles")
		return nil
	}
	picks := ref.Pick(c.rng)
	if len(picks) > 0 {
		c.logger.Info().Interface("picks", styles.Names(picks)).Msg("Style picks")
	}
	return picks
}

// postComment posts the gallery comment to the monthly issue. Comment
// failures never fail the run.
func (c *Client) postComment(ctx context.Context, now time.Time, rec catalog.Record) int64 {
	if c.issues == nil {
		return 0
	}

	issue, err := c.issues.Monthly(ctx, now)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Monthly issue lookup failed, continuing without comment")
		return 0
	}
	id, err := c.issues.Comment(ctx, issue, commentBody(rec))
	if err != nil {
		c.logger.Warn().Err(err).Msg("Issue comment failed, continuing without comment")
		return 0
	}
	return id
}

// appendAndPush writes the record to the catalog and pushes the touched
// files, including the creative notes when present.
func (c *Client) appendAndPush(ctx context.Context, store *catalog.Store, rec catalog.Record) error {
	files, err := store.Append(rec)
	if err != nil {
		return err
	}
	if store.NotesExist() {
		files = append(files, catalog.NotesFile)
	}

	message := fmt.Sprintf("Add cat #%d - %s", rec.Number, rec.Timestamp)
	if rec.Status == catalog.StatusFailed {
		message = fmt.Sprintf("Failed cat - %s", rec.Timestamp)
	}
	return c.pusher.CommitAndPush(ctx, files, message)
}

// commentBody renders the markdown gallery comment for a record.
func commentBody(rec catalog.Record) string {
	var b strings.Builder

	title := ""
	if rec.Title != "" {
		title = " — " + rec.Title
	}
	fmt.Fprintf(&b, "## Cat #%d%s\n", rec.Number, title)
	fmt.Fprintf(&b, "**Time:** %s\n", rec.Timestamp)
	fmt.Fprintf(&b, "**Model:** `%s`\n", rec.Model)

	switch {
	case rec.Inspiration == "original":
		b.WriteString("**靈感來源:** 🎨 AI 原創\n")
	case rec.Inspiration != "":
		fmt.Fprintf(&b, "**靈感來源:** 📰 %s\n", rec.Inspiration)
	}
	if rec.Idea != "" {
		fmt.Fprintf(&b, "**Idea:** %s\n", rec.Idea)
	}
	if rec.Prompt != "" {
		fmt.Fprintf(&b, "**Prompt:** %s\n", rec.Prompt)
	}
	if rec.Story != "" {
		fmt.Fprintf(&b, "**Story:** %s\n", rec.Story)
	}
	fmt.Fprintf(&b, "\n![cat-%d](%s)", rec.Number, rec.URL)

	return b.String()
}

// imageFileName converts a catalog timestamp into the asset file name,
// e.g. "cat_2026-01-30_0504_UTC.png".
func imageFileName(timestamp string) string {
	return "cat_" + strings.NewReplacer(" ", "_", ":", "").Replace(timestamp) + ".png"
}
