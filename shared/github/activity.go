package github

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
	"github.com/lsimons/blogbot/blog/domain"
	"github.com/rs/zerolog/log"
)

// shortSHALen is the conventional abbreviated commit hash length.
const shortSHALen = 7

// GithubActivitySource is an implementation of domain.ActivitySource that
// aggregates commit activity across all of a user's repositories via the
// GitHub API.
type GithubActivitySource struct {
	client      *github.Client
	username    string
	authorEmail string
}

// NewGithubActivitySource creates a new GithubActivitySource for the given
// user. Commits are filtered to those authored by authorEmail.
func NewGithubActivitySource(client *github.Client, username string, authorEmail string) domain.ActivitySource {
	return &GithubActivitySource{
		client:      client,
		username:    username,
		authorEmail: authorEmail,
	}
}

// CommitsSince aggregates all commits authored by the configured identity
// since the given time, across every repository owned by the user.
//
// A failure while reading a single repository is logged and that repository
// contributes nothing; only a failure to enumerate the repositories
// themselves aborts the aggregation.
func (g *GithubActivitySource) CommitsSince(ctx context.Context, since time.Time) (*domain.ActivitySummary, error) {
	log.Info().Time("since", since).Str("user", g.username).Msg("Fetching commit activity")

	repos, err := g.listRepos(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("repos", len(repos)).Str("user", g.username).Msg("Enumerated repositories")

	var records []domain.CommitRecord
	maxLines := 0

	for _, repo := range repos {
		repoRecords, err := g.collectRepoCommits(ctx, repo.GetName(), since)
		if err != nil {
			log.Warn().Err(err).Str("repo", repo.GetName()).Msg("Skipping repository")
			continue
		}
		for _, rec := range repoRecords {
			records = append(records, rec)
			if total := rec.TotalLines(); total > maxLines {
				maxLines = total
			}
		}
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	log.Info().Int("commits", len(records)).Time("since", since).Msg("Collected commit activity")

	return &domain.ActivitySummary{
		Commits:        records,
		TotalCommits:   len(records),
		MaxCommitLines: maxLines,
	}, nil
}

// listRepos fetches all repositories owned by the user, handling pagination.
func (g *GithubActivitySource) listRepos(ctx context.Context) ([]*github.Repository, error) {
	op := fmt.Sprintf("listing repositories for %s", g.username)
	var allRepos []*github.Repository
	opts := &github.RepositoryListByUserOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		repos, resp, err := g.client.Repositories.ListByUser(ctx, g.username, opts)
		if err != nil {
			return nil, handleGithubError(op, err)
		}

		allRepos = append(allRepos, repos...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return allRepos, nil
}

// collectRepoCommits fetches all matching commits in one repository and
// converts them to domain records.
func (g *GithubActivitySource) collectRepoCommits(ctx context.Context, repoName string, since time.Time) ([]domain.CommitRecord, error) {
	op := fmt.Sprintf("listing commits for %s", repoName)
	var records []domain.CommitRecord
	opts := &github.CommitsListOptions{
		Author:      g.authorEmail,
		Since:       since.UTC(),
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		commits, resp, err := g.client.Repositories.ListCommits(ctx, g.username, repoName, opts)
		if err != nil {
			return nil, handleGithubError(op, err)
		}

		for _, commit := range commits {
			records = append(records, g.toRecord(ctx, repoName, commit))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	log.Debug().Str("repo", repoName).Int("commits", len(records)).Msg("Collected repository commits")
	return records, nil
}

// toRecord converts one upstream commit into a CommitRecord. Line stats are
// not included in list responses, so each commit is fetched individually; a
// failed stats fetch degrades to zero counts rather than dropping the commit.
func (g *GithubActivitySource) toRecord(ctx context.Context, repoName string, commit *github.RepositoryCommit) domain.CommitRecord {
	additions, deletions := 0, 0
	full, _, err := g.client.Repositories.GetCommit(ctx, g.username, repoName, commit.GetSHA(), nil)
	if err != nil {
		log.Warn().Err(err).Str("repo", repoName).Str("sha", commit.GetSHA()).Msg("Failed to fetch commit stats")
	} else if stats := full.GetStats(); stats != nil {
		additions = stats.GetAdditions()
		deletions = stats.GetDeletions()
	}

	return domain.CommitRecord{
		Repo:      repoName,
		SHA:       shortSHA(commit.GetSHA()),
		Message:   firstLine(commit.GetCommit().GetMessage()),
		Date:      commit.GetCommit().GetAuthor().GetDate().Time,
		Additions: additions,
		Deletions: deletions,
	}
}

func shortSHA(sha string) string {
	if len(sha) > shortSHALen {
		return sha[:shortSHALen]
	}
	return sha
}

func firstLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return line
}

// handleGithubError inspects an error from the go-github client and returns a more informative, structured error.
func handleGithubError(op string, err error) error {
	if err == nil {
		return nil
	}

	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		return fmt.Errorf("github: %s failed with status %d: %s", op, errResp.Response.StatusCode, errResp.Message)
	}

	return fmt.Errorf("github: %s failed: %w", op, err)
}
