// Package prompts assembles the text prompts for the generation pipeline:
// news gathering, idea writing, prompt rendering, and the avoid-list
// summary used by the creative notes rotation.
package prompts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yazelin/catime/pkg/catalog"
	"github.com/yazelin/catime/pkg/styles"
)

const summaryTemplate = `You are analyzing recent AI-generated cat image prompts to identify repetitive patterns.

Here are the most recent prompts and stories:
%s

Identify overused themes, settings, styles, poses, lighting, and vocabulary.
Output a JSON object with exactly this format:
{"avoid_list": ["繁體中文短語 1", "繁體中文短語 2", ...]}

Rules:
- Each item should be a short phrase in 繁體中文 (e.g. '生物發光森林', '貓凝望月亮', '宇宙空靈光芒')
- List 8-15 items that appear too frequently
- Focus on specific repeated combos, not generic concepts`

const newsPrompt = `Search for today's interesting world news and current events.

Pick 3-5 news items that are:
- Fun, heartwarming, quirky, cultural, scientific, sports, weather, travel, tourism, or lifestyle related
- From DIFFERENT regions of the world
- AVOID: war, terrorism, political controversy, violent crime, natural disasters with casualties

For each item, write a 1-sentence summary in 繁體中文. MUST include the city/country where it happened.

Output a JSON object with exactly this format:
{"news": ["繁體中文摘要 1", "繁體中文摘要 2", ...]}`

const ideaTemplate = `You are a wildly creative storyteller and visual director inventing a unique scene for an AI cat image.

%s%s%sRequirements:
(1) A cat must be the subject or prominently featured
(2) The cat MUST be DOING something specific (cooking, skateboarding, repairing a clock, reading a map, etc.)
(3) The scene MUST be set in a specific, concrete place (a 1950s diner, a Tokyo subway car, a greenhouse, a lighthouse, etc.)
(4) Be wildly creative - surprise me with unexpected combinations
(5) Use the visual style specified in TODAY'S STYLE PALETTE above. If none provided, pick any creative style.
(6) For photography styles: describe the scene realistically - real cats in real places. Do NOT add fantasy or magical elements. Think like a photographer, not a painter.
(7) Vary the scene composition - sometimes include other characters (people, other animals, crowds) or objects the cat interacts with. A lone cat is fine occasionally, but don't default to it every time.

Output a JSON object with exactly this format:
{"idea": "繁體中文場景描述，1-2句，包含藝術風格", "story": "繁體中文短故事，2-3句", "title": "作品名稱，3-6個字的繁體中文", "inspiration": "original 或引用的新聞摘要"}

The title should be poetic, evocative, and concise (3-6 Chinese characters). Like a painting title.
Examples: 晨光裡的守望、雨巷漫步、星空下的琴音、午後的秘密

For the 'inspiration' field:
- If your idea was inspired by one of the news items, copy that exact news summary as the value.
- If your idea is purely from imagination (not based on any news), set it to "original".

idea, story, title, and inspiration should all be in Traditional Chinese (except 'original' stays English).`

const renderTemplate = `You are a prompt engineer converting a creative idea into a concise image generation prompt.

Idea: %s
Story: %s
%s
Requirements:
(1) The date and time '%s' MUST be visually displayed in the image
(2) Include specific art style, composition, lighting, and color details
(3) Do NOT include any resolution keywords (like 4K, 8K, 16K, etc.)
(4) The image must clearly show a cat doing the described activity
(5) CRITICAL - match the prompt style to the medium:
    - If PHOTOGRAPHY: use camera terms (e.g. '35mm lens, f/1.8, natural light, shallow depth of field, grain, candid shot'). The output MUST look like a real photograph, NOT a painting or digital art. Do NOT use words like 'breathtaking', 'intricate', 'ethereal', 'brushstrokes', or 'palette'.
    - If ILLUSTRATION/ART: describe artistic medium, technique, and visual style.
(6) If style reference snippets are provided below, incorporate them into the prompt.

Output a JSON object with exactly this format:
{"prompt": "English image prompt here"}`

// Summary builds the avoid-list summarization prompt from recent detail
// entries.
func Summary(entries []catalog.DetailEntry) string {
	var lines []string
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("- Prompt: %s\n  Story: %s\n  Idea: %s", e.Prompt, e.Story, e.Idea))
	}
	return fmt.Sprintf(summaryTemplate, strings.Join(lines, "\n"))
}

// News returns the search-grounded news gathering prompt.
func News() string {
	return newsPrompt
}

// Idea builds the scene invention prompt from the optional news items,
// avoid list, and style picks.
func Idea(news, avoid []string, picks map[string]styles.Style) string {
	return fmt.Sprintf(ideaTemplate, newsSection(news), avoidSection(avoid), paletteSection(picks))
}

// Render builds the image prompt conversion request.
func Render(idea, story, timestamp string, picks map[string]styles.Style) string {
	snippetSection := ""
	if snippets := Snippets(picks); snippets != "" {
		snippetSection = "Style reference snippets: " + snippets + "\n"
	}
	return fmt.Sprintf(renderTemplate, idea, story, snippetSection, timestamp)
}

// Snippets joins the picked styles' prompt snippets for the image prompt.
func Snippets(picks map[string]styles.Style) string {
	if len(picks) == 0 {
		return ""
	}
	snippets := make([]string, 0, len(picks))
	for _, category := range sortedCategories(picks) {
		snippets = append(snippets, picks[category].Prompt)
	}
	return strings.Join(snippets, ", ")
}

func newsSection(news []string) string {
	if len(news) == 0 {
		return ""
	}
	return "Here are some current world events for inspiration. " +
		"You MAY creatively incorporate one into the cat scene, or ignore them entirely. " +
		"Aim for roughly half news-inspired, half pure imagination.\n" +
		bullets(news) + "\n\n"
}

func avoidSection(avoid []string) string {
	if len(avoid) == 0 {
		return ""
	}
	return "IMPORTANT: Avoid these overused themes and patterns:\n" + bullets(avoid) + "\n\n"
}

func paletteSection(picks map[string]styles.Style) string {
	if len(picks) == 0 {
		return ""
	}
	var lines []string
	for _, category := range sortedCategories(picks) {
		style := picks[category]
		lines = append(lines, fmt.Sprintf("- %s: %s (%s)", category, style.ZH, style.EN))
	}
	return "TODAY'S STYLE PALETTE (use these as your visual direction):\n" +
		strings.Join(lines, "\n") + "\n" +
		"You MUST use the art_style pick as your visual style. " +
		"Incorporate the other picks (composition, lighting, texture, color_palette) naturally.\n\n"
}

func bullets(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

func sortedCategories(picks map[string]styles.Style) []string {
	categories := make([]string, 0, len(picks))
	for category := range picks {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}
