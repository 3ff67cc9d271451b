package domain

import "time"

// GeneratedContent is the title/body pair produced by the content generator.
type GeneratedContent struct {
	Title   string
	Content string
}

// PublishedPost is a post as known to the publication platform.
// Date is always UTC. For freshly created posts the date is synthesized
// locally because the platform does not reliably echo it back on creation.
type PublishedPost struct {
	ID    int
	Title string
	Date  time.Time
	Link  string
}

// PublishOutcome is the result of one publish evaluation.
// Post is non-nil only when a post was actually created; a dry run that
// would publish reports Published=true with a nil Post.
type PublishOutcome struct {
	Published bool
	Reason    string
	Post      *PublishedPost
	Summary   *ActivitySummary
}
