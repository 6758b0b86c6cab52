package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/gjson"

	"github.com/fractionalhq/enrich-cli/internal/model"
	"github.com/fractionalhq/enrich-cli/internal/seo"
	"github.com/fractionalhq/enrich-cli/pkg/anthropic"
)

const linkSystemPrompt = `You are an SEO specialist adding internal links to job descriptions.

Your task: add 2-4 internal links to the job description WITHOUT changing any other content.

CRITICAL RULES:
1. Preserve ALL existing text exactly - only add markdown link syntax around phrases
2. Each keyword cluster can only be linked ONCE (no duplicate clusters)
3. Links must feel natural and editorial, not forced
4. Prioritize the cluster that matches the job's role category
5. If the text already has markdown links, don't add more to the same cluster

Keyword clusters and their URLs:
- CFO -> /fractional-jobs?role=CFO
- CMO -> /fractional-jobs?role=CMO
- CTO -> /fractional-jobs?role=CTO
- COO -> /fractional-jobs?role=COO
- General -> /fractional-jobs

Respond with ONLY a JSON object, no prose:
{"updated_description": "...", "links_added": N, "clusters_used": ["CFO", "general"]}`

// AgentInjector asks a Claude model to insert the links and parses the
// structured reply. Any API or parse failure is a per-record error; the
// caller skips the record and moves on.
type AgentInjector struct {
	client   anthropic.Client
	model    string
	maxLinks int
}

// NewAgentInjector builds an AgentInjector.
func NewAgentInjector(client anthropic.Client, modelName string, maxLinks int) *AgentInjector {
	if maxLinks <= 0 {
		maxLinks = seo.DefaultMaxLinks
	}
	return &AgentInjector{client: client, model: modelName, maxLinks: maxLinks}
}

func (*AgentInjector) Name() string { return "ai" }

func (a *AgentInjector) Inject(ctx context.Context, job model.Job) (seo.LinkResult, error) {
	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     a.model,
		MaxTokens: 4096,
		System:    linkSystemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: buildLinkPrompt(job, a.maxLinks)},
		},
	})
	if err != nil {
		return seo.LinkResult{}, eris.Wrapf(err, "agent: inject links for job %s", job.ID)
	}
	resp.Usage.LogCost(resp.Model, "link_inject")

	result, err := parseAgentResult(resp.Text())
	if err != nil {
		return seo.LinkResult{}, eris.Wrapf(err, "agent: parse result for job %s", job.ID)
	}
	return result, nil
}

func buildLinkPrompt(job model.Job, maxLinks int) string {
	category := job.RoleCategory
	if category == "" {
		category = "Not specified"
	}
	return fmt.Sprintf(`Job Title: %s
Company: %s
Role Category: %s

Current Description:
%s

Add up to %d internal links using markdown format. Prioritize the %s cluster if relevant.`,
		job.Title, job.CompanyName, category, job.Description, maxLinks, category)
}

// parseAgentResult decodes the model's JSON reply, tolerating markdown code
// fences around the object.
func parseAgentResult(text string) (seo.LinkResult, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return seo.LinkResult{}, eris.New("agent: no JSON object in reply")
	}
	doc := gjson.Parse(text[start : end+1])
	if !doc.IsObject() {
		return seo.LinkResult{}, eris.New("agent: malformed JSON reply")
	}

	updated := doc.Get("updated_description").String()
	if updated == "" {
		return seo.LinkResult{}, eris.New("agent: reply missing updated_description")
	}

	result := seo.LinkResult{
		UpdatedText: updated,
		LinksAdded:  int(doc.Get("links_added").Int()),
	}
	for _, c := range doc.Get("clusters_used").Array() {
		if name := c.String(); name != "" {
			result.ClustersUsed = append(result.ClustersUsed, name)
		}
	}
	return result, nil
}
