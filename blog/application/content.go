package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/lsimons/blogbot/blog/domain"
	"github.com/rs/zerolog/log"
)

const (
	// maxPromptCommits caps how many commits are shown to the generator;
	// a representative sample is enough and keeps the prompt bounded.
	maxPromptCommits = 20

	generationTemperature = 0.8

	defaultTitle = "Weekly Update"

	titleMarker   = "TITLE:"
	contentMarker = "CONTENT:"

	systemPrompt = `You are a friendly AI bot named lsimons-bot. You write engaging blog posts
about your coding activities. Keep the tone conversational and technical but accessible.
Write in first person as the bot.`

	postPromptTemplate = `Write a blog post summarizing my recent coding work.

Here are my commits from the past few days:

%s

Requirements:
- Title should be catchy and reflect the main work done
- Content should be 2-4 paragraphs
- Include specific details about what was built or fixed
- Keep it engaging and somewhat informal
- Use HTML formatting (no markdown)

Respond with exactly this format:
TITLE: <your title here>
CONTENT: <your HTML content here>`
)

// ContentGenerator produces blog content from commit activity by delegating
// to a completion capability.
type ContentGenerator struct {
	completer domain.Completer
}

// NewContentGenerator creates a new ContentGenerator.
func NewContentGenerator(completer domain.Completer) *ContentGenerator {
	return &ContentGenerator{completer: completer}
}

// Generate produces a title/body pair for the given activity. Completion
// errors propagate; malformed completion output does not fail and instead
// degrades via extractContent.
func (g *ContentGenerator) Generate(ctx context.Context, summary *domain.ActivitySummary) (*domain.GeneratedContent, error) {
	log.Info().Int("commits", summary.TotalCommits).Msg("Generating blog post")

	prompt := fmt.Sprintf(postPromptTemplate, formatCommits(summary))
	raw, err := g.completer.Complete(ctx, []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: systemPrompt},
		{Role: domain.RoleUser, Content: prompt},
	}, generationTemperature)
	if err != nil {
		return nil, err
	}

	content := extractContent(raw)
	return &content, nil
}

// formatCommits renders at most maxPromptCommits commits, one per line.
func formatCommits(summary *domain.ActivitySummary) string {
	commits := summary.Commits
	if len(commits) > maxPromptCommits {
		commits = commits[:maxPromptCommits]
	}

	lines := make([]string, 0, len(commits))
	for _, c := range commits {
		lines = append(lines, fmt.Sprintf("- [%s] %s (+%d/-%d)", c.Repo, c.Message, c.Additions, c.Deletions))
	}
	return strings.Join(lines, "\n")
}

// extractContent parses the TITLE:/CONTENT: reply shape out of raw model
// output. It is total: when either marker is missing or a field comes back
// empty, the title falls back to defaultTitle and the content to the raw
// output, so the caller always gets something publishable.
func extractContent(raw string) domain.GeneratedContent {
	result := domain.GeneratedContent{
		Title:   defaultTitle,
		Content: raw,
	}

	if !strings.Contains(raw, titleMarker) || !strings.Contains(raw, contentMarker) {
		return result
	}

	before, after, _ := strings.Cut(raw, contentMarker)
	title := strings.TrimSpace(strings.Replace(before, titleMarker, "", 1))
	content := strings.TrimSpace(after)

	if title != "" {
		result.Title = title
	}
	if content != "" {
		result.Content = content
	}
	return result
}
