// Package model holds the shared data types for the enrichment flows.
package model

// Job is a job listing row as read for link enrichment. The jobs table is
// owned by the web product; this tool only mutates Description via the store.
type Job struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	CompanyName  string `json:"company_name"`
	RoleCategory string `json:"role_category"`
	Description  string `json:"full_description"`
}

// Company identifies a company awaiting brand enrichment.
type Company struct {
	Domain string `json:"company_domain"`
	Name   string `json:"company_name"`
}
