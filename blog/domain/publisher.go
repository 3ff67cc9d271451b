package domain

import "context"

// PostPublisher defines the interface for reading from and writing to the
// publication platform (e.g., WordPress).
type PostPublisher interface {
	// LatestPost returns the most recently published post, or nil when the
	// site has no posts yet.
	LatestPost(ctx context.Context) (*PublishedPost, error)

	// CreatePost publishes a new post immediately (no draft state) and
	// returns the platform's view of it.
	CreatePost(ctx context.Context, title, content string) (*PublishedPost, error)
}
