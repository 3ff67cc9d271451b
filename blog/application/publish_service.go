package application

import (
	"context"
	"fmt"
	"time"

	"github.com/lsimons/blogbot/blog/domain"
	"github.com/rs/zerolog/log"
)

// Gates holds the thresholds controlling when a post is warranted.
type Gates struct {
	// MinCommits is the commit count the window must exceed.
	MinCommits int
	// MinLines is the single-commit changed-line count the window must exceed.
	MinLines int
	// Cooldown is the minimum age of the previous post before a new one
	// may be published.
	Cooldown time.Duration
	// Window is the activity lookback used when no previous post exists.
	Window time.Duration
}

// DefaultGates returns the standard publication thresholds.
func DefaultGates() Gates {
	return Gates{
		MinCommits: 5,
		MinLines:   200,
		Cooldown:   24 * time.Hour,
		Window:     7 * 24 * time.Hour,
	}
}

// PublishService decides whether recent commit activity justifies a new
// blog post and, when it does, generates and publishes one.
//
// Each invocation is a linear pass: read the latest post, apply the
// cooldown gate, aggregate activity, apply the significance gate, then
// generate and publish. Either gate blocks the run on its own; there is no
// override beyond dry-run.
type PublishService struct {
	activity  domain.ActivitySource
	publisher domain.PostPublisher
	generator domain.ContentGenerator
	gates     Gates

	now func() time.Time
}

// NewPublishService creates a new PublishService.
func NewPublishService(activity domain.ActivitySource, publisher domain.PostPublisher, generator domain.ContentGenerator, gates Gates) *PublishService {
	return &PublishService{
		activity:  activity,
		publisher: publisher,
		generator: generator,
		gates:     gates,
		now:       time.Now,
	}
}

// CheckAndPublish runs one publish evaluation. The returned outcome always
// carries a human-readable reason; adapter and configuration failures
// propagate as errors and abort the run.
//
// With dryRun set, a would-publish decision is reported without invoking
// the generator or writing to the publication platform.
func (s *PublishService) CheckAndPublish(ctx context.Context, dryRun bool) (*domain.PublishOutcome, error) {
	latest, err := s.publisher.LatestPost(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching latest post: %w", err)
	}

	now := s.now().UTC()
	var since time.Time
	if latest != nil {
		elapsed := now.Sub(latest.Date)
		if elapsed < s.gates.Cooldown {
			log.Info().Float64("hoursSince", elapsed.Hours()).Msg("Cooldown gate blocked publication")
			return &domain.PublishOutcome{
				Published: false,
				Reason: fmt.Sprintf("Last post was %.1f hours ago (threshold: %dh)",
					elapsed.Hours(), int(s.gates.Cooldown.Hours())),
			}, nil
		}
		since = latest.Date
	} else {
		// No post history to anchor the window on.
		since = now.Add(-s.gates.Window)
	}

	summary, err := s.activity.CommitsSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("aggregating commit activity: %w", err)
	}

	if !summary.IsSignificant(s.gates.MinCommits, s.gates.MinLines) {
		log.Info().Int("commits", summary.TotalCommits).Int("maxLines", summary.MaxCommitLines).Msg("Significance gate blocked publication")
		return &domain.PublishOutcome{
			Published: false,
			Reason: fmt.Sprintf("Not enough activity: %d commits (threshold: %d), max %d lines (threshold: %d)",
				summary.TotalCommits, s.gates.MinCommits, summary.MaxCommitLines, s.gates.MinLines),
			Summary: summary,
		}, nil
	}

	if dryRun {
		return &domain.PublishOutcome{
			Published: true,
			Reason: fmt.Sprintf("Would publish: %d commits, max %d lines",
				summary.TotalCommits, summary.MaxCommitLines),
			Summary: summary,
		}, nil
	}

	content, err := s.generator.Generate(ctx, summary)
	if err != nil {
		return nil, fmt.Errorf("generating blog content: %w", err)
	}

	post, err := s.publisher.CreatePost(ctx, content.Title, content.Content)
	if err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	log.Info().Str("title", post.Title).Str("link", post.Link).Msg("Published new post")
	return &domain.PublishOutcome{
		Published: true,
		Reason:    fmt.Sprintf("Published: %s", post.Title),
		Post:      post,
		Summary:   summary,
	}, nil
}
