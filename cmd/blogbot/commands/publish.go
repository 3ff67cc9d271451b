package commands

import (
	"fmt"
	"time"

	gogithub "github.com/google/go-github/v68/github"
	"github.com/spf13/cobra"

	"github.com/lsimons/blogbot/blog/application"
	"github.com/lsimons/blogbot/cmd/blogbot/internal/clierr"
	"github.com/lsimons/blogbot/internal/config"
	gh "github.com/lsimons/blogbot/shared/github"
	"github.com/lsimons/blogbot/shared/llm"
	"github.com/lsimons/blogbot/shared/wordpress"
)

func newPublishCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a blog post about recent GitHub activity",
		Long: `Checks recent commit activity against the publication gates and, when
enough has changed, generates and publishes a new blog post.

Exits 0 when nothing needed publishing or a post was created. A dry run
that would have published exits 1, signaling pending publishable content.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Check but don't publish")

	return cmd
}

func runPublish(cmd *cobra.Command, dryRun bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Fresh adapters per invocation; nothing is shared across runs.
	activity := gh.NewGithubActivitySource(
		gogithub.NewClient(nil).WithAuthToken(cfg.Github.Token),
		cfg.Github.Username,
		cfg.Github.AuthorEmail,
	)
	publisher := wordpress.NewClient(wordpress.Config{
		Username:     cfg.WordPress.Username,
		AppPassword:  cfg.WordPress.AppPassword,
		ClientID:     cfg.WordPress.ClientID,
		ClientSecret: cfg.WordPress.ClientSecret,
		SiteID:       cfg.WordPress.SiteID,
	})
	generator := application.NewContentGenerator(
		llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.AuthToken, cfg.LLM.Model),
	)

	service := application.NewPublishService(activity, publisher, generator, application.Gates{
		MinCommits: cfg.Gates.MinCommits,
		MinLines:   cfg.Gates.MinLines,
		Cooldown:   time.Duration(cfg.Gates.CooldownHours) * time.Hour,
		Window:     time.Duration(cfg.Gates.WindowDays) * 24 * time.Hour,
	})

	outcome, err := service.CheckAndPublish(cmd.Context(), dryRun)
	if err != nil {
		return clierr.Wrap(1, "publish check failed", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, outcome.Reason)
	if outcome.Post != nil {
		_, _ = fmt.Fprintf(out, "URL: %s\n", outcome.Post.Link)
	}

	// Published without a post only happens on a dry run; report it as a
	// failure so schedulers can see pending publishable content.
	if outcome.Published && outcome.Post == nil {
		return clierr.New(1, "dry run: publishable content pending")
	}
	return nil
}
