package domain

import "context"

// ContentGenerator turns aggregated commit activity into publishable
// blog content.
type ContentGenerator interface {
	Generate(ctx context.Context, summary *ActivitySummary) (*GeneratedContent, error)
}
