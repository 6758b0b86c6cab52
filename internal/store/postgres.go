package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/fractionalhq/enrich-cli/internal/brand"
	"github.com/fractionalhq/enrich-cli/internal/db"
	"github.com/fractionalhq/enrich-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	// One-shot batch tool; a small pool is plenty.
	pgxCfg.MaxConns = 4
	pgxCfg.MinConns = 1
	pgxCfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// The jobs table belongs to the web product and is never migrated here; only
// the company_brands table is owned by this tool.
const postgresMigration = `
CREATE TABLE IF NOT EXISTS company_brands (
	id            TEXT PRIMARY KEY,
	domain        TEXT NOT NULL UNIQUE,
	company_name  TEXT,
	provider      TEXT,
	colors        JSONB,
	font_title    TEXT,
	font_body     TEXT,
	logos         JSONB,
	banners       JSONB,
	description   TEXT,
	founded       INTEGER,
	employees     INTEGER,
	city          TEXT,
	country       TEXT,
	company_kind  TEXT,
	industries    TEXT[],
	quality_score DOUBLE PRECISION,
	fetched_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_company_brands_provider ON company_brands(provider);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

const jobColumns = `id, title, company_name, role_category, full_description`

// FetchJobsMissingLinks returns active jobs whose descriptions carry no
// internal link yet, most recently posted first.
func (s *PostgresStore) FetchJobsMissingLinks(ctx context.Context, limit int) ([]model.Job, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE is_active = true
		   AND full_description IS NOT NULL
		   AND full_description != ''
		   AND full_description NOT LIKE '%](/fractional-jobs%'
		 ORDER BY posted_date DESC NULLS LAST
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: fetch jobs missing links")
	}
	defer rows.Close()
	return scanJobs(rows)
}

// FetchActiveJobs returns active jobs with descriptions regardless of link
// state, for forced reprocessing.
func (s *PostgresStore) FetchActiveJobs(ctx context.Context, limit int) ([]model.Job, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM jobs
		 WHERE is_active = true
		   AND full_description IS NOT NULL
		   AND full_description != ''
		 ORDER BY posted_date DESC NULLS LAST
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: fetch active jobs")
	}
	defer rows.Close()
	return scanJobs(rows)
}

func scanJobs(rows pgx.Rows) ([]model.Job, error) {
	var jobs []model.Job
	for rows.Next() {
		var j model.Job
		var companyName, roleCategory *string
		if err := rows.Scan(&j.ID, &j.Title, &companyName, &roleCategory, &j.Description); err != nil {
			return nil, eris.Wrap(err, "postgres: scan job")
		}
		if companyName != nil {
			j.CompanyName = *companyName
		}
		if roleCategory != nil {
			j.RoleCategory = *roleCategory
		}
		jobs = append(jobs, j)
	}
	return jobs, eris.Wrap(rows.Err(), "postgres: iterate jobs")
}

// UpdateJobDescription writes back a linked description.
func (s *PostgresStore) UpdateJobDescription(ctx context.Context, jobID, description string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs SET full_description = $1, updated_date = now() WHERE id = $2`,
		description, jobID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update job %s", jobID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("job not found: %s", jobID)
	}
	return nil
}

// FetchCompaniesWithoutBrand returns distinct company domains from active
// jobs that have no brand row from the given provider yet.
func (s *PostgresStore) FetchCompaniesWithoutBrand(ctx context.Context, provider brand.Provider, limit int) ([]model.Company, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT j.company_domain, j.company_name
		 FROM jobs j
		 LEFT JOIN company_brands cb ON j.company_domain = cb.domain
		 WHERE j.is_active = true
		   AND j.company_domain IS NOT NULL
		   AND j.company_domain != ''
		   AND (cb.id IS NULL OR cb.provider IS NULL OR cb.provider != $1)
		 ORDER BY j.company_name
		 LIMIT $2`,
		string(provider), limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: fetch companies without brand")
	}
	defer rows.Close()

	var companies []model.Company
	for rows.Next() {
		var c model.Company
		var name *string
		if err := rows.Scan(&c.Domain, &name); err != nil {
			return nil, eris.Wrap(err, "postgres: scan company")
		}
		if name != nil {
			c.Name = *name
		}
		companies = append(companies, c)
	}
	return companies, eris.Wrap(rows.Err(), "postgres: iterate companies")
}

var brandUpsertCfg = db.UpsertConfig{
	Table: "company_brands",
	Columns: []string{
		"id", "domain", "company_name", "provider", "colors",
		"font_title", "font_body", "logos", "banners", "description",
		"founded", "employees", "city", "country", "company_kind",
		"industries", "quality_score", "fetched_at",
	},
	ConflictKeys: []string{"domain"},
	// Keep the original row id on overwrite.
	UpdateCols: []string{
		"company_name", "provider", "colors",
		"font_title", "font_body", "logos", "banners", "description",
		"founded", "employees", "city", "country", "company_kind",
		"industries", "quality_score", "fetched_at",
	},
}

// UpsertBrand persists a normalized brand record keyed by domain,
// last-write-wins.
func (s *PostgresStore) UpsertBrand(ctx context.Context, up BrandUpsert) error {
	if up.Record == nil {
		return eris.New("postgres: upsert brand: nil record")
	}

	colorsJSON, err := json.Marshal(up.Record.Colors)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal colors")
	}
	logosJSON, err := json.Marshal(up.Record.Logos)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal logos")
	}
	bannersJSON, err := json.Marshal(up.Record.Banners)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal banners")
	}

	_, err = db.Upsert(ctx, s.pool, brandUpsertCfg, []any{
		uuid.New().String(), up.Domain, up.CompanyName, string(up.Provider), colorsJSON,
		up.Record.FontTitle, up.Record.FontBody, logosJSON, bannersJSON, up.Record.Description,
		up.Record.Founded, up.Record.Employees, up.Record.City, up.Record.Country, up.Record.CompanyKind,
		up.Record.Industries, up.Record.QualityScore, time.Now().UTC(),
	})
	return eris.Wrapf(err, "postgres: upsert brand %s", up.Domain)
}
