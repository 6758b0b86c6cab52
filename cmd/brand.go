package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/fractionalhq/enrich-cli/internal/brand"
	"github.com/fractionalhq/enrich-cli/internal/enrich"
	"github.com/fractionalhq/enrich-cli/pkg/branddev"
	"github.com/fractionalhq/enrich-cli/pkg/brandfetch"
)

var (
	brandProvider string
	brandLimit    int
	brandDryRun   bool
	brandDomains  []string
)

var brandCmd = &cobra.Command{
	Use:   "brand",
	Short: "Ingest company brand assets",
}

var brandFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and store brand data for companies missing it",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.ValidateProvider(brandProvider); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		fetcher, provider, notFound, err := initBrandFetcher()
		if err != nil {
			return err
		}

		limit := brandLimit
		if limit <= 0 {
			limit = cfg.Brand.Limit
		}

		runner := enrich.NewBrandRunner(st, fetcher, enrich.BrandOptions{
			Provider: provider,
			Limit:    limit,
			DryRun:   brandDryRun,
			Domains:  brandDomains,
			NotFound: notFound,
			Limiter:  delayLimiter(cfg.Brand.DelaySecs),
		})
		sum, err := runner.Run(ctx)
		if err != nil {
			return err
		}
		printSummary(sum)
		return nil
	},
}

// initBrandFetcher builds the provider client plus its not-found sentinel so
// the runner can distinguish "no brand exists" from transport failures.
func initBrandFetcher() (enrich.BrandFetcher, brand.Provider, error, error) {
	switch brandProvider {
	case "brandfetch":
		client := brandfetch.NewClient(cfg.Brandfetch.Key, brandfetch.WithBaseURL(cfg.Brandfetch.BaseURL))
		return client, brand.ProviderBrandfetch, brandfetch.ErrNotFound, nil
	case "branddev":
		client := branddev.NewClient(cfg.Branddev.Key, branddev.WithBaseURL(cfg.Branddev.BaseURL))
		return client, brand.ProviderBranddev, branddev.ErrNotFound, nil
	default:
		return nil, "", nil, eris.Errorf("unknown brand provider %q", brandProvider)
	}
}

func init() {
	brandFetchCmd.Flags().StringVar(&brandProvider, "provider", "brandfetch", "brand data provider: brandfetch or branddev")
	brandFetchCmd.Flags().IntVar(&brandLimit, "limit", 0, "max companies to process per run (default from config)")
	brandFetchCmd.Flags().BoolVar(&brandDryRun, "dry-run", false, "fetch and normalize without writing")
	brandFetchCmd.Flags().StringSliceVar(&brandDomains, "domains", nil, "explicit domains to fetch instead of querying for candidates")
	brandCmd.AddCommand(brandFetchCmd)
	rootCmd.AddCommand(brandCmd)
}
