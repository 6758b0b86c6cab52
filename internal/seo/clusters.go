// Package seo inserts internal SEO links into job descriptions by matching
// keyword clusters against the text.
package seo

import "regexp"

// TargetNamespace is the link marker shared by every cluster target. Text
// containing it is treated as already linked.
const TargetNamespace = "](/fractional-jobs"

// pattern pairs a compiled matcher with its anchor template. The template is
// expanded with the matched capture groups, so the anchor keeps the casing
// found in the text.
type pattern struct {
	re       *regexp.Regexp
	template string
}

// Cluster is a named group of synonymous keyword patterns sharing one target
// link. Pattern order determines which phrase variant is preferred.
type Cluster struct {
	Name     string
	URL      string
	patterns []pattern
}

// roleOrder is the canonical evaluation order for role clusters after the
// hinted cluster and "general" are placed.
var roleOrder = []string{"CFO", "CMO", "CTO", "COO"}

var clusters = buildClusters()

func buildClusters() map[string]*Cluster {
	return map[string]*Cluster{
		"CFO": newCluster("CFO", "/fractional-jobs?role=CFO", []rule{
			{`\b(fractional CFO)s?\b`, "[${1}]"},
			{`\b(fractional finance director)s?\b`, "[${1}]"},
			{`\b(CFO role)s?\b`, "[${1}]"},
			{`\b(part-time CFO)s?\b`, "[${1}]"},
			{`\b(CFO opportunit)(y|ies)\b`, "[${1}${2}]"},
			{`\b(finance leadership)\b`, "[${1}]"},
			{`\b(senior finance leader)s?\b`, "[${1}]"},
			{`\b(strategic financial)\b`, "[${1}]"},
		}),
		"CMO": newCluster("CMO", "/fractional-jobs?role=CMO", []rule{
			{`\b(fractional CMO)s?\b`, "[${1}]"},
			{`\b(fractional marketing director)s?\b`, "[${1}]"},
			{`\b(CMO role)s?\b`, "[${1}]"},
			{`\b(part-time CMO)s?\b`, "[${1}]"},
			{`\b(CMO opportunit)(y|ies)\b`, "[${1}${2}]"},
			{`\b(marketing leadership)\b`, "[${1}]"},
		}),
		"CTO": newCluster("CTO", "/fractional-jobs?role=CTO", []rule{
			{`\b(fractional CTO)s?\b`, "[${1}]"},
			{`\b(fractional tech director)s?\b`, "[${1}]"},
			{`\b(CTO role)s?\b`, "[${1}]"},
			{`\b(part-time CTO)s?\b`, "[${1}]"},
			{`\b(CTO opportunit)(y|ies)\b`, "[${1}${2}]"},
			{`\b(technology leadership)\b`, "[${1}]"},
			{`\b(technical leadership)\b`, "[${1}]"},
		}),
		"COO": newCluster("COO", "/fractional-jobs?role=COO", []rule{
			{`\b(fractional COO)s?\b`, "[${1}]"},
			{`\b(fractional operations director)s?\b`, "[${1}]"},
			{`\b(COO role)s?\b`, "[${1}]"},
			{`\b(part-time COO)s?\b`, "[${1}]"},
			{`\b(COO opportunit)(y|ies)\b`, "[${1}${2}]"},
			{`\b(operations leadership)\b`, "[${1}]"},
		}),
		"general": newCluster("general", "/fractional-jobs", []rule{
			{`\b(fractional role)s?\b`, "[${1}]"},
			{`\b(fractional job)s?\b`, "[${1}]"},
			{`\b(fractional executive)s?\b`, "[${1}]"},
			{`\b(fractional leader)s?\b`, "[${1}]"},
			{`\b(fractional position)s?\b`, "[${1}]"},
			{`\b(part-time executive)s?\b`, "[${1}]"},
			{`\b(portfolio career)s?\b`, "[${1}]"},
			{`\b(fractional opportunit)(y|ies)\b`, "[${1}${2}]"},
			{`\b(fractional work)\b`, "[${1}]"},
			{`\b(fractional engagement)s?\b`, "[${1}]"},
		}),
	}
}

// rule is the source form of a pattern: anchor templates omit the target URL,
// which is appended per cluster at build time.
type rule struct {
	expr   string
	anchor string
}

func newCluster(name, url string, rules []rule) *Cluster {
	c := &Cluster{Name: name, URL: url}
	for _, r := range rules {
		c.patterns = append(c.patterns, pattern{
			re:       regexp.MustCompile(`(?i)` + r.expr),
			template: r.anchor + "(" + url + ")",
		})
	}
	return c
}

// Clusters returns the cluster table keyed by name.
func Clusters() map[string]*Cluster {
	return clusters
}
