package seo

import "strings"

// DefaultMaxLinks caps how many clusters may contribute a link per text.
const DefaultMaxLinks = 3

// LinkResult is the outcome of one InsertLinks invocation.
type LinkResult struct {
	UpdatedText  string   `json:"updated_text"`
	LinksAdded   int      `json:"links_added"`
	ClustersUsed []string `json:"clusters_used"`
}

// InsertLinks adds internal links to text, at most one per keyword cluster,
// until maxLinks clusters have each contributed a link. Clusters are tried in
// priority order: the cluster matching roleHint first, then "general", then
// the remaining role clusters in canonical order. Text that already contains
// a link into the target namespace is returned unchanged; the transform never
// double-links.
func InsertLinks(text, roleHint string, maxLinks int) LinkResult {
	if text == "" || strings.Contains(text, TargetNamespace) {
		return LinkResult{UpdatedText: text}
	}
	if maxLinks <= 0 {
		maxLinks = DefaultMaxLinks
	}

	result := LinkResult{UpdatedText: text}
	for _, name := range clusterOrder(roleHint) {
		if result.LinksAdded >= maxLinks {
			break
		}
		cluster := clusters[name]

		// First matching pattern wins; a cluster contributes at most one
		// link no matter how many of its patterns would match.
		for _, p := range cluster.patterns {
			updated, ok := p.apply(result.UpdatedText)
			if !ok {
				continue
			}
			result.UpdatedText = updated
			result.LinksAdded++
			result.ClustersUsed = append(result.ClustersUsed, name)
			break
		}
	}
	return result
}

// clusterOrder builds the evaluation order for a role hint: the hinted
// cluster (exact name, else keyword fallback), then "general", then the
// remaining role clusters, skipping any already placed.
func clusterOrder(roleHint string) []string {
	order := []string{"general"}

	if roleHint != "" {
		hint := strings.ToUpper(roleHint)
		switch {
		case clusters[hint] != nil:
			order = append([]string{hint}, order...)
		case strings.Contains(hint, "CFO") || strings.Contains(hint, "FINANCE"):
			order = append([]string{"CFO"}, order...)
		case strings.Contains(hint, "CMO") || strings.Contains(hint, "MARKET"):
			order = append([]string{"CMO"}, order...)
		case strings.Contains(hint, "CTO") || strings.Contains(hint, "TECH"):
			order = append([]string{"CTO"}, order...)
		case strings.Contains(hint, "COO") || strings.Contains(hint, "OPERATION"):
			order = append([]string{"COO"}, order...)
		}
	}

	for _, name := range roleOrder {
		if !contains(order, name) {
			order = append(order, name)
		}
	}
	return order
}

// apply replaces the first occurrence of the pattern in text with its linked
// anchor form. All other text is left byte-for-byte unchanged.
func (p pattern) apply(text string) (string, bool) {
	loc := p.re.FindStringSubmatchIndex(text)
	if loc == nil {
		return text, false
	}

	var b []byte
	b = append(b, text[:loc[0]]...)
	b = p.re.ExpandString(b, p.template, text, loc)
	b = append(b, text[loc[1]:]...)
	return string(b), true
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
