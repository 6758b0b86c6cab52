// Package enrich orchestrates the one-shot enrichment batch loops: fetch
// candidates, transform, verify, persist, count.
package enrich

import (
	"context"

	"github.com/fractionalhq/enrich-cli/internal/model"
	"github.com/fractionalhq/enrich-cli/internal/seo"
)

// Injector produces a linked description for one job. Implementations must
// not write anywhere; persistence belongs to the runner.
type Injector interface {
	Name() string
	Inject(ctx context.Context, job model.Job) (seo.LinkResult, error)
}

// RegexInjector applies the keyword-cluster matcher. It never fails; a text
// with no matching phrases yields a zero-link result.
type RegexInjector struct {
	MaxLinks int
}

func (RegexInjector) Name() string { return "regex" }

func (r RegexInjector) Inject(_ context.Context, job model.Job) (seo.LinkResult, error) {
	return seo.InsertLinks(job.Description, job.RoleCategory, r.MaxLinks), nil
}
