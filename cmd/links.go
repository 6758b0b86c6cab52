package main

import (
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/fractionalhq/enrich-cli/internal/enrich"
	anthropicpkg "github.com/fractionalhq/enrich-cli/pkg/anthropic"
)

var (
	linksLimit    int
	linksMaxLinks int
	linksAll      bool
	linksForce    bool
	linksDryRun   bool
)

// allJobsLimit is the effective batch size under --all.
const allJobsLimit = 10000

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Inject internal SEO links into job descriptions",
}

var linksRegexCmd = &cobra.Command{
	Use:   "regex",
	Short: "Inject links with the keyword-cluster regex matcher",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		runner := enrich.NewLinkRunner(st, enrich.RegexInjector{MaxLinks: maxLinks()}, linkOptions())
		sum, err := runner.Run(ctx)
		if err != nil {
			return err
		}
		printSummary(sum)
		return nil
	},
}

var linksAICmd = &cobra.Command{
	Use:   "ai",
	Short: "Inject links with the Claude-assisted injector",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.ValidateAnthropic(); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		client := anthropicpkg.NewClient(cfg.Anthropic.Key)
		injector := enrich.NewAgentInjector(client, cfg.Anthropic.Model, maxLinks())

		runner := enrich.NewLinkRunner(st, injector, linkOptions())
		sum, err := runner.Run(ctx)
		if err != nil {
			return err
		}
		printSummary(sum)
		return nil
	},
}

func maxLinks() int {
	if linksMaxLinks > 0 {
		return linksMaxLinks
	}
	return cfg.Links.MaxLinks
}

func linkOptions() enrich.LinkOptions {
	limit := linksLimit
	if limit <= 0 {
		limit = cfg.Links.Limit
	}
	if linksAll {
		limit = allJobsLimit
	}
	return enrich.LinkOptions{
		Limit:   limit,
		Force:   linksForce,
		DryRun:  linksDryRun,
		Limiter: delayLimiter(cfg.Links.DelaySecs),
	}
}

// delayLimiter converts a per-record courtesy delay into a rate limiter.
// A zero or negative delay disables throttling.
func delayLimiter(delaySecs float64) *rate.Limiter {
	if delaySecs <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Duration(delaySecs*float64(time.Second))), 1)
}

func init() {
	for _, c := range []*cobra.Command{linksRegexCmd, linksAICmd} {
		c.Flags().IntVar(&linksLimit, "limit", 0, "max jobs to process per run (default from config)")
		c.Flags().IntVar(&linksMaxLinks, "max-links", 0, "max links to add per description (default from config)")
		c.Flags().BoolVar(&linksAll, "all", false, "process the whole backlog in one run")
		c.Flags().BoolVar(&linksForce, "force", false, "reprocess all active jobs, not just unlinked ones")
		c.Flags().BoolVar(&linksDryRun, "dry-run", false, "report changes without writing them")
		linksCmd.AddCommand(c)
	}
	rootCmd.AddCommand(linksCmd)
}
