package enrich

import (
	"context"
	"errors"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fractionalhq/enrich-cli/internal/brand"
	"github.com/fractionalhq/enrich-cli/internal/model"
	"github.com/fractionalhq/enrich-cli/internal/seo"
	"github.com/fractionalhq/enrich-cli/internal/store"
)

// Summary tallies a completed batch run.
type Summary struct {
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Errored int `json:"errored"`
}

// LinkOptions configures a link-enrichment run.
type LinkOptions struct {
	Limit  int
	DryRun bool
	// Force bypasses the "missing link" candidate filter and reprocesses
	// every active job. Already-linked texts still come back unchanged from
	// the idempotence guard.
	Force   bool
	Limiter *rate.Limiter
}

// LinkRunner walks job descriptions through an Injector and persists
// accepted results.
type LinkRunner struct {
	store    store.Store
	injector Injector
	opts     LinkOptions
}

// NewLinkRunner builds a LinkRunner.
func NewLinkRunner(st store.Store, injector Injector, opts LinkOptions) *LinkRunner {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}
	return &LinkRunner{store: st, injector: injector, opts: opts}
}

// Run processes one batch sequentially. Per-record failures are counted and
// skipped; only candidate fetching can fail the run.
func (r *LinkRunner) Run(ctx context.Context) (Summary, error) {
	log := zap.L().With(zap.String("injector", r.injector.Name()))

	var jobs []model.Job
	var err error
	if r.opts.Force {
		jobs, err = r.store.FetchActiveJobs(ctx, r.opts.Limit)
	} else {
		jobs, err = r.store.FetchJobsMissingLinks(ctx, r.opts.Limit)
	}
	if err != nil {
		return Summary{}, eris.Wrap(err, "enrich: fetch link candidates")
	}
	log.Info("link enrichment starting",
		zap.Int("candidates", len(jobs)),
		zap.Bool("dry_run", r.opts.DryRun),
		zap.Bool("force", r.opts.Force),
	)

	var sum Summary
	for i, job := range jobs {
		if err := wait(ctx, r.opts.Limiter); err != nil {
			return sum, err
		}

		jobLog := log.With(
			zap.Int("n", i+1),
			zap.Int("of", len(jobs)),
			zap.String("job_id", job.ID),
			zap.String("category", job.RoleCategory),
		)

		result, err := r.injector.Inject(ctx, job)
		if err != nil {
			jobLog.Warn("inject failed", zap.Error(err))
			sum.Errored++
			continue
		}

		// Accept only results that actually contain an internal link; a
		// transform that produced none is a no-op, not an error.
		if result.LinksAdded == 0 || !strings.Contains(result.UpdatedText, seo.TargetNamespace) {
			jobLog.Debug("no links added, skipping")
			sum.Skipped++
			continue
		}

		if !r.opts.DryRun {
			if err := r.store.UpdateJobDescription(ctx, job.ID, result.UpdatedText); err != nil {
				jobLog.Warn("persist failed", zap.Error(err))
				sum.Errored++
				continue
			}
		}
		jobLog.Info("links added",
			zap.Int("links", result.LinksAdded),
			zap.Strings("clusters", result.ClustersUsed),
		)
		sum.Updated++
	}

	log.Info("link enrichment complete",
		zap.Int("updated", sum.Updated),
		zap.Int("skipped", sum.Skipped),
		zap.Int("errored", sum.Errored),
	)
	return sum, nil
}

// BrandFetcher fetches a raw provider payload for a domain.
type BrandFetcher interface {
	Brand(ctx context.Context, domain string) ([]byte, error)
}

// BrandOptions configures a brand-enrichment run.
type BrandOptions struct {
	Provider brand.Provider
	Limit    int
	DryRun   bool
	// Domains, when set, is fetched directly instead of querying the store
	// for candidates.
	Domains []string
	// NotFound is the fetcher's sentinel for "provider has no brand"; those
	// records are skipped rather than errored.
	NotFound error
	Limiter  *rate.Limiter
}

// BrandRunner fetches, normalizes and upserts brand records per company
// domain.
type BrandRunner struct {
	store store.Store
	fetch BrandFetcher
	opts  BrandOptions
}

// NewBrandRunner builds a BrandRunner.
func NewBrandRunner(st store.Store, fetch BrandFetcher, opts BrandOptions) *BrandRunner {
	if opts.Limit <= 0 {
		opts.Limit = 10
	}
	return &BrandRunner{store: st, fetch: fetch, opts: opts}
}

// Run processes one batch sequentially. Fetch failures and empty payloads
// are counted and skipped; only candidate fetching can fail the run.
func (r *BrandRunner) Run(ctx context.Context) (Summary, error) {
	log := zap.L().With(zap.String("provider", string(r.opts.Provider)))

	companies, err := r.candidates(ctx)
	if err != nil {
		return Summary{}, err
	}
	log.Info("brand enrichment starting",
		zap.Int("candidates", len(companies)),
		zap.Bool("dry_run", r.opts.DryRun),
	)

	var sum Summary
	for i, company := range companies {
		if err := wait(ctx, r.opts.Limiter); err != nil {
			return sum, err
		}

		companyLog := log.With(
			zap.Int("n", i+1),
			zap.Int("of", len(companies)),
			zap.String("domain", company.Domain),
		)

		raw, err := r.fetch.Brand(ctx, company.Domain)
		if err != nil {
			if r.opts.NotFound != nil && errors.Is(err, r.opts.NotFound) {
				companyLog.Debug("brand not found, skipping")
				sum.Skipped++
			} else {
				companyLog.Warn("fetch failed", zap.Error(err))
				sum.Errored++
			}
			continue
		}

		rec, err := brand.Normalize(r.opts.Provider, raw)
		if err != nil {
			companyLog.Warn("normalize failed", zap.Error(err))
			sum.Errored++
			continue
		}

		// A 200 with no brand data is not worth a row; an all-null record
		// would permanently exclude the domain from re-selection.
		if rec.Empty() {
			companyLog.Debug("empty payload, skipping")
			sum.Skipped++
			continue
		}

		if !r.opts.DryRun {
			if err := r.store.UpsertBrand(ctx, store.BrandUpsert{
				Domain:      company.Domain,
				CompanyName: company.Name,
				Provider:    r.opts.Provider,
				Record:      rec,
			}); err != nil {
				companyLog.Warn("persist failed", zap.Error(err))
				sum.Errored++
				continue
			}
		}
		companyLog.Info("brand saved",
			zap.Int("colors", len(rec.Colors)),
			zap.Int("logos", len(rec.Logos)),
			zap.Float64p("quality", rec.QualityScore),
		)
		sum.Updated++
	}

	log.Info("brand enrichment complete",
		zap.Int("updated", sum.Updated),
		zap.Int("skipped", sum.Skipped),
		zap.Int("errored", sum.Errored),
	)
	return sum, nil
}

func (r *BrandRunner) candidates(ctx context.Context) ([]model.Company, error) {
	if len(r.opts.Domains) > 0 {
		companies := make([]model.Company, 0, len(r.opts.Domains))
		for _, d := range r.opts.Domains {
			companies = append(companies, model.Company{Domain: d, Name: d})
		}
		return companies, nil
	}

	companies, err := r.store.FetchCompaniesWithoutBrand(ctx, r.opts.Provider, r.opts.Limit)
	if err != nil {
		return nil, eris.Wrap(err, "enrich: fetch brand candidates")
	}
	return companies, nil
}

// wait blocks on the courtesy rate limiter, if any.
func wait(ctx context.Context, limiter *rate.Limiter) error {
	if limiter == nil {
		return nil
	}
	if err := limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "enrich: rate limit wait")
	}
	return nil
}
