// Package search holds the external search collaborators. Every client obeys
// the same contract: profile-filtered results, an empty slice on any
// failure, and no error for "no results".
package search

import (
	"context"
	"strings"

	"outreach-engine/internal/domain"
)

// Searcher is the engine's only view of a search provider.
type Searcher interface {
	Search(ctx context.Context, query string) ([]domain.RawResult, error)
}

// Func adapts a function to the Searcher interface; handy for test stubs.
type Func func(ctx context.Context, query string) ([]domain.RawResult, error)

func (f Func) Search(ctx context.Context, query string) ([]domain.RawResult, error) {
	return f(ctx, query)
}

// profileURL reports whether a result URL looks like a professional profile
// page rather than a company/jobs page.
func profileURL(u string) bool {
	return strings.Contains(strings.ToLower(u), "linkedin.com/in")
}
