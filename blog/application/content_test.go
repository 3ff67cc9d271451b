package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lsimons/blogbot/blog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractContent(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantTitle   string
		wantContent string
	}{
		{
			name:        "Well-formed reply",
			raw:         "TITLE: X\nCONTENT: Y",
			wantTitle:   "X",
			wantContent: "Y",
		},
		{
			name:        "Multi-line content",
			raw:         "TITLE: Shipping Week\nCONTENT: <p>First.</p>\n<p>Second.</p>",
			wantTitle:   "Shipping Week",
			wantContent: "<p>First.</p>\n<p>Second.</p>",
		},
		{
			name:        "No markers at all",
			raw:         "Just some prose about my week.",
			wantTitle:   "Weekly Update",
			wantContent: "Just some prose about my week.",
		},
		{
			name:        "Title marker only",
			raw:         "TITLE: Orphaned title",
			wantTitle:   "Weekly Update",
			wantContent: "TITLE: Orphaned title",
		},
		{
			name:        "Content marker only",
			raw:         "CONTENT: body without a title",
			wantTitle:   "Weekly Update",
			wantContent: "CONTENT: body without a title",
		},
		{
			name:        "Empty title falls back",
			raw:         "TITLE:\nCONTENT: body",
			wantTitle:   "Weekly Update",
			wantContent: "body",
		},
		{
			name:        "Empty content falls back to raw",
			raw:         "TITLE: only a title\nCONTENT:",
			wantTitle:   "only a title",
			wantContent: "TITLE: only a title\nCONTENT:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractContent(tt.raw)
			assert.Equal(t, tt.wantTitle, got.Title)
			assert.Equal(t, tt.wantContent, got.Content)
		})
	}
}

func TestFormatCommitsTruncates(t *testing.T) {
	summary := &domain.ActivitySummary{}
	for i := 0; i < 30; i++ {
		summary.Commits = append(summary.Commits, domain.CommitRecord{
			Repo:      "blogbot",
			Message:   "change something",
			Additions: 1,
			Deletions: 2,
		})
	}
	summary.TotalCommits = len(summary.Commits)

	rendered := formatCommits(summary)
	lines := strings.Split(rendered, "\n")
	assert.Len(t, lines, maxPromptCommits)
	assert.Equal(t, "- [blogbot] change something (+1/-2)", lines[0])
}

type fakeCompleter struct {
	response string
	err      error

	gotMessages    []domain.ChatMessage
	gotTemperature float32
}

func (f *fakeCompleter) Complete(_ context.Context, messages []domain.ChatMessage, temperature float32) (string, error) {
	f.gotMessages = messages
	f.gotTemperature = temperature
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestContentGeneratorGenerate(t *testing.T) {
	completer := &fakeCompleter{response: "TITLE: Big Week\nCONTENT: <p>Lots happened.</p>"}
	generator := NewContentGenerator(completer)

	summary := &domain.ActivitySummary{
		Commits: []domain.CommitRecord{
			{Repo: "blogbot", SHA: "abc1234", Message: "add gating", Date: time.Now(), Additions: 10, Deletions: 2},
		},
		TotalCommits:   1,
		MaxCommitLines: 12,
	}

	content, err := generator.Generate(context.Background(), summary)
	require.NoError(t, err)
	assert.Equal(t, "Big Week", content.Title)
	assert.Equal(t, "<p>Lots happened.</p>", content.Content)

	require.Len(t, completer.gotMessages, 2)
	assert.Equal(t, domain.RoleSystem, completer.gotMessages[0].Role)
	assert.Equal(t, domain.RoleUser, completer.gotMessages[1].Role)
	assert.Contains(t, completer.gotMessages[1].Content, "- [blogbot] add gating (+10/-2)")
	assert.InDelta(t, 0.8, completer.gotTemperature, 0.001)
}

func TestContentGeneratorPropagatesCompletionError(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("upstream unavailable")}
	generator := NewContentGenerator(completer)

	_, err := generator.Generate(context.Background(), &domain.ActivitySummary{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream unavailable")
}
