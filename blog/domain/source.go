package domain

import (
	"context"
	"time"
)

// ActivitySource defines the interface for aggregating commit activity
// (e.g., from GitHub). This allows the application to be decoupled from a
// specific implementation.
type ActivitySource interface {
	CommitsSince(ctx context.Context, since time.Time) (*ActivitySummary, error)
}
