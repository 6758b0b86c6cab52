package store

import (
	"context"

	"github.com/fractionalhq/enrich-cli/internal/brand"
	"github.com/fractionalhq/enrich-cli/internal/model"
)

// BrandUpsert is one normalized brand record ready to persist, keyed by
// company domain. Re-fetching a domain overwrites the existing row.
type BrandUpsert struct {
	Domain      string
	CompanyName string
	Provider    brand.Provider
	Record      *brand.Record
}

// Store defines the persistence interface for the enrichment flows.
type Store interface {
	// Link flow
	FetchJobsMissingLinks(ctx context.Context, limit int) ([]model.Job, error)
	FetchActiveJobs(ctx context.Context, limit int) ([]model.Job, error)
	UpdateJobDescription(ctx context.Context, jobID, description string) error

	// Brand flow
	FetchCompaniesWithoutBrand(ctx context.Context, provider brand.Provider, limit int) ([]model.Company, error)
	UpsertBrand(ctx context.Context, up BrandUpsert) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
