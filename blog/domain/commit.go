package domain

import "time"

// CommitRecord is a single commit as seen by the activity aggregation.
// SHA is the 7-character short form and Message is the first line only.
type CommitRecord struct {
	Repo      string
	SHA       string
	Message   string
	Date      time.Time
	Additions int
	Deletions int
}

// TotalLines returns the total number of changed lines in the commit.
func (c CommitRecord) TotalLines() int {
	return c.Additions + c.Deletions
}

// ActivitySummary aggregates commit activity over a time window.
// Commits are ordered by author date, most recent first.
type ActivitySummary struct {
	Commits        []CommitRecord
	TotalCommits   int
	MaxCommitLines int
}

// IsSignificant reports whether the window contains enough activity to
// justify a post: either more than minCommits commits, or at least one
// commit touching more than minLines lines. Either condition alone is
// sufficient.
func (s *ActivitySummary) IsSignificant(minCommits, minLines int) bool {
	return s.TotalCommits > minCommits || s.MaxCommitLines > minLines
}
