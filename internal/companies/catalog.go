package companies

import (
	"strings"

	"research-backend/research/model"
)

const maxSuggestions = 5

// Company is a listed company the picker can suggest.
type Company struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Label is the picker text, "<symbol> - <name>".
func (c Company) Label() string {
	return model.SubjectLabel(c.Symbol, c.Name)
}

// Catalog is a fixed, ordered list of companies.
type Catalog struct {
	companies []Company
}

// DefaultCatalog returns the built-in company list.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Company{
		{Symbol: "AAPL", Name: "Apple Inc."},
		{Symbol: "MSFT", Name: "Microsoft Corporation"},
		{Symbol: "GOOGL", Name: "Alphabet Inc."},
		{Symbol: "AMZN", Name: "Amazon.com Inc."},
		{Symbol: "TSLA", Name: "Tesla Inc."},
		{Symbol: "META", Name: "Meta Platforms Inc."},
		{Symbol: "NVDA", Name: "NVIDIA Corporation"},
		{Symbol: "JPM", Name: "JPMorgan Chase & Co."},
		{Symbol: "JNJ", Name: "Johnson & Johnson"},
		{Symbol: "V", Name: "Visa Inc."},
	})
}

// NewCatalog constructs a catalog over a copy of companies.
func NewCatalog(companies []Company) *Catalog {
	return &Catalog{companies: append([]Company(nil), companies...)}
}

// Suggest returns up to five companies whose symbol or name contains query,
// case-insensitively, in catalog order. A blank query matches nothing.
func (c *Catalog) Suggest(query string) []Company {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []Company{}
	if q == "" {
		return out
	}
	for _, company := range c.companies {
		if strings.Contains(strings.ToLower(company.Symbol), q) || strings.Contains(strings.ToLower(company.Name), q) {
			out = append(out, company)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}
