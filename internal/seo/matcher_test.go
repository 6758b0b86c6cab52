package seo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertLinks_RoleHintPriority(t *testing.T) {
	text := "This fractional CFO opportunity offers strategic impact. Great for a portfolio career."

	result := InsertLinks(text, "CFO", 3)

	assert.Equal(t, 2, result.LinksAdded)
	assert.Equal(t, []string{"CFO", "general"}, result.ClustersUsed)
	assert.Equal(t, 1, strings.Count(result.UpdatedText, "](/fractional-jobs?role=CFO)"))
	assert.Contains(t, result.UpdatedText, "[fractional CFO](/fractional-jobs?role=CFO)")
	assert.Contains(t, result.UpdatedText, "[portfolio career](/fractional-jobs)")
}

func TestInsertLinks_Idempotent(t *testing.T) {
	text := "Looking for a [fractional CFO](/fractional-jobs?role=CFO) with SaaS experience."

	result := InsertLinks(text, "CFO", 3)
	assert.Equal(t, text, result.UpdatedText)
	assert.Zero(t, result.LinksAdded)
	assert.Empty(t, result.ClustersUsed)

	// Double application adds nothing either.
	first := InsertLinks("A fractional CFO role with upside.", "CFO", 3)
	require.Positive(t, first.LinksAdded)
	second := InsertLinks(first.UpdatedText, "CFO", 3)
	assert.Equal(t, first.UpdatedText, second.UpdatedText)
	assert.Zero(t, second.LinksAdded)
}

func TestInsertLinks_NoMatch(t *testing.T) {
	result := InsertLinks("We sell artisanal cheese.", "", 3)
	assert.Equal(t, "We sell artisanal cheese.", result.UpdatedText)
	assert.Zero(t, result.LinksAdded)
	assert.Empty(t, result.ClustersUsed)
}

func TestInsertLinks_EmptyText(t *testing.T) {
	result := InsertLinks("", "CFO", 3)
	assert.Empty(t, result.UpdatedText)
	assert.Zero(t, result.LinksAdded)
}

func TestInsertLinks_BudgetRespected(t *testing.T) {
	text := "A fractional CFO, a fractional CMO, a fractional CTO, a fractional COO, and fractional jobs for all."

	result := InsertLinks(text, "", 3)
	assert.Equal(t, 3, result.LinksAdded)
	assert.Len(t, result.ClustersUsed, 3)
	assert.Equal(t, 3, strings.Count(result.UpdatedText, TargetNamespace))
}

func TestInsertLinks_OneLinkPerCluster(t *testing.T) {
	// Two CFO-cluster phrases; only the first pattern variant gets linked.
	text := "A fractional CFO or part-time CFO is welcome."

	result := InsertLinks(text, "CFO", 3)
	assert.Equal(t, []string{"CFO"}, result.ClustersUsed)
	assert.Equal(t, 1, strings.Count(result.UpdatedText, "?role=CFO)"))
	assert.Contains(t, result.UpdatedText, "[fractional CFO](/fractional-jobs?role=CFO)")
	assert.Contains(t, result.UpdatedText, "part-time CFO is welcome")
}

func TestInsertLinks_NoDuplicateClusters(t *testing.T) {
	text := "fractional CFO fractional CMO fractional CTO fractional COO fractional jobs fractional roles"

	result := InsertLinks(text, "CTO", 5)
	seen := map[string]bool{}
	for _, name := range result.ClustersUsed {
		assert.False(t, seen[name], "cluster %s used twice", name)
		seen[name] = true
	}
	assert.Equal(t, result.LinksAdded, len(result.ClustersUsed))
}

func TestInsertLinks_FirstOccurrenceOnly(t *testing.T) {
	text := "fractional CFO today, fractional CFO tomorrow"

	result := InsertLinks(text, "CFO", 1)
	assert.Equal(t, "[fractional CFO](/fractional-jobs?role=CFO) today, fractional CFO tomorrow", result.UpdatedText)
}

func TestInsertLinks_CasePreserved(t *testing.T) {
	result := InsertLinks("Exciting Fractional CFO position.", "CFO", 1)
	assert.Contains(t, result.UpdatedText, "[Fractional CFO](/fractional-jobs?role=CFO)")
}

func TestInsertLinks_PluralVariant(t *testing.T) {
	result := InsertLinks("Many CFO opportunities await.", "CFO", 1)
	assert.Contains(t, result.UpdatedText, "[CFO opportunities](/fractional-jobs?role=CFO)")
}

func TestInsertLinks_DefaultBudget(t *testing.T) {
	text := "fractional CFO fractional CMO fractional CTO fractional COO fractional jobs"

	result := InsertLinks(text, "", 0)
	assert.Equal(t, DefaultMaxLinks, result.LinksAdded)
}

func TestClusterOrder(t *testing.T) {
	tests := []struct {
		name string
		hint string
		want []string
	}{
		{"no hint", "", []string{"general", "CFO", "CMO", "CTO", "COO"}},
		{"exact CFO", "CFO", []string{"CFO", "general", "CMO", "CTO", "COO"}},
		{"finance keyword", "VP Finance", []string{"CFO", "general", "CMO", "CTO", "COO"}},
		{"marketing keyword", "Marketing Lead", []string{"CMO", "general", "CFO", "CTO", "COO"}},
		{"tech keyword", "Head of Technology", []string{"CTO", "general", "CFO", "CMO", "COO"}},
		{"operations keyword", "Head of Operations", []string{"COO", "general", "CFO", "CMO", "CTO"}},
		// "Director" contains "CTO", and the CTO branch is checked before
		// the COO one, so director titles land in the tech cluster.
		{"director title", "Operations Director", []string{"CTO", "general", "CFO", "CMO", "COO"}},
		{"unknown hint", "Board Advisor", []string{"general", "CFO", "CMO", "CTO", "COO"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clusterOrder(tt.hint))
		})
	}
}

func TestClusters_UniqueTargets(t *testing.T) {
	table := Clusters()
	require.Len(t, table, 5)
	for name, c := range table {
		assert.Equal(t, name, c.Name)
		assert.True(t, strings.HasPrefix(c.URL, "/fractional-jobs"))
		assert.NotEmpty(t, c.patterns)
	}
}
