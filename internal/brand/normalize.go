// Package brand normalizes provider-specific brand API payloads into the
// shared company_brands record shape.
package brand

import (
	"math"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"
)

// Provider identifies a brand-data source.
type Provider string

const (
	ProviderBrandfetch Provider = "brandfetch"
	ProviderBranddev   Provider = "branddev"
)

// Record is the provider-agnostic brand record. Fields a provider does not
// supply are explicit nulls, never omitted; the row shape is fixed across
// providers.
type Record struct {
	Colors       []ColorEntry      `json:"colors"`
	FontTitle    *string           `json:"font_title"`
	FontBody     *string           `json:"font_body"`
	Logos        map[string]string `json:"logos"`
	Banners      map[string]string `json:"banners"`
	Description  *string           `json:"description"`
	Founded      *int              `json:"founded"`
	Employees    *int              `json:"employees"`
	City         *string           `json:"city"`
	Country      *string           `json:"country"`
	CompanyKind  *string           `json:"company_kind"`
	Industries   []string          `json:"industries"`
	QualityScore *float64          `json:"quality_score"`
}

// Empty reports whether the record carries no brand data at all, as happens
// when a provider returns 200 with a blank or brand-less payload. Quality
// scores are derived, not data, so they are ignored here.
func (r *Record) Empty() bool {
	return len(r.Colors) == 0 &&
		r.FontTitle == nil && r.FontBody == nil &&
		len(r.Logos) == 0 && len(r.Banners) == 0 &&
		r.Description == nil &&
		r.Founded == nil && r.Employees == nil &&
		r.City == nil && r.Country == nil && r.CompanyKind == nil &&
		len(r.Industries) == 0
}

// Normalize maps a raw provider payload into a Record. Every nested lookup
// defaults to absent rather than failing; provider payloads are sparse and
// vary by company.
func Normalize(provider Provider, raw []byte) (*Record, error) {
	doc := gjson.ParseBytes(raw)
	switch provider {
	case ProviderBrandfetch:
		return normalizeBrandfetch(doc), nil
	case ProviderBranddev:
		return normalizeBranddev(doc), nil
	default:
		return nil, eris.Errorf("brand: unknown provider %q", provider)
	}
}

func normalizeBrandfetch(doc gjson.Result) *Record {
	rec := &Record{
		Logos:   map[string]string{},
		Banners: map[string]string{},
	}

	for _, c := range doc.Get("colors").Array() {
		hex := c.Get("hex").String()
		if hex == "" {
			continue
		}
		entry := ClassifyColor(hex, c.Get("type").String())
		if b := c.Get("brightness"); b.Exists() {
			entry.Brightness = int(b.Int())
		}
		rec.Colors = append(rec.Colors, entry)
	}
	rec.Colors = assignPositionalRoles(rec.Colors)

	for _, f := range doc.Get("fonts").Array() {
		name := f.Get("name").String()
		if name == "" {
			continue
		}
		switch f.Get("type").String() {
		case "title":
			rec.FontTitle = strPtr(name)
		case "body":
			rec.FontBody = strPtr(name)
		}
	}

	for _, logo := range doc.Get("logos").Array() {
		kind := logo.Get("type").String()
		if kind == "" {
			kind = "logo"
		}
		theme := logo.Get("theme").String()
		if theme == "" {
			theme = "light"
		}
		if src := bestLogoFormat(logo.Get("formats")); src != "" {
			rec.Logos[kind+"_"+theme] = src
		}
	}

	rec.Description = optString(doc.Get("description"))
	rec.Founded = optInt(doc.Get("company.foundedYear"))
	rec.Employees = optInt(doc.Get("company.numberOfEmployees"))
	rec.CompanyKind = optString(doc.Get("company.kind"))
	rec.City = optString(doc.Get("company.location.city"))
	rec.Country = optString(doc.Get("company.location.country"))

	for _, ind := range doc.Get("company.industries").Array() {
		if name := ind.Get("name").String(); name != "" {
			rec.Industries = append(rec.Industries, name)
		}
	}

	// Brandfetch supplies its own quality score; pass it through unchanged.
	if q := doc.Get("qualityScore"); q.Exists() && q.Type != gjson.Null {
		v := q.Float()
		rec.QualityScore = &v
	}

	return rec
}

func normalizeBranddev(doc gjson.Result) *Record {
	rec := &Record{
		Logos:   map[string]string{},
		Banners: map[string]string{},
	}
	b := doc.Get("brand")

	for _, c := range b.Get("colors").Array() {
		hex := c.Get("hex").String()
		if hex == "" {
			hex = "#888888"
		}
		rec.Colors = append(rec.Colors, ClassifyColor(hex, c.Get("name").String()))
	}
	rec.Colors = assignPositionalRoles(rec.Colors)

	for _, logo := range b.Get("logos").Array() {
		kind := logo.Get("type").String()
		if kind == "" {
			kind = "logo"
		}
		mode := logo.Get("mode").String()
		if mode == "" || mode == "has_opaque_background" {
			// Opaque-background marks are safe on a dark backdrop.
			mode = "dark"
		}
		if url := logo.Get("url").String(); url != "" {
			rec.Logos[kind+"_"+mode] = url
		}
	}

	if backdrops := b.Get("backdrops").Array(); len(backdrops) > 0 {
		if url := backdrops[0].Get("url").String(); url != "" {
			rec.Banners["banner"] = url
		}
	}

	rec.Description = optString(b.Get("description"))
	rec.City = optString(b.Get("address.city"))
	rec.Country = optString(b.Get("address.country"))

	for _, ind := range b.Get("industries.eic").Array() {
		if name := ind.Get("industry").String(); name != "" {
			rec.Industries = append(rec.Industries, name)
		}
	}

	score := completenessScore(rec)
	rec.QualityScore = &score

	return rec
}

// completenessScore is the quality heuristic for providers without a native
// score: populated checklist fields over checklist length, two decimals.
func completenessScore(rec *Record) float64 {
	checklist := []bool{
		len(rec.Colors) > 0,
		len(rec.Logos) > 0,
		len(rec.Banners) > 0,
		rec.Description != nil,
		rec.City != nil,
		len(rec.Industries) > 0,
	}
	populated := 0
	for _, ok := range checklist {
		if ok {
			populated++
		}
	}
	score := float64(populated) / float64(len(checklist))
	return math.Round(score*100) / 100
}

// bestLogoFormat prefers a vector format, else the first raster format
// encountered.
func bestLogoFormat(formats gjson.Result) string {
	var raster string
	for _, f := range formats.Array() {
		src := f.Get("src").String()
		if src == "" {
			continue
		}
		if f.Get("format").String() == "svg" {
			return src
		}
		if raster == "" {
			raster = src
		}
	}
	return raster
}

func optString(r gjson.Result) *string {
	if !r.Exists() || r.String() == "" {
		return nil
	}
	s := r.String()
	return &s
}

func optInt(r gjson.Result) *int {
	// Present-but-null fields must stay null, not become zero.
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	v := int(r.Int())
	return &v
}

func strPtr(s string) *string { return &s }
