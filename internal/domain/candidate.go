package domain

import "strings"

// EmailUnknown is the sentinel stored when no email could be resolved. It is
// never used as an identity key.
const EmailUnknown = "N/A"

// RawResult is one external search hit. Ephemeral, never persisted.
type RawResult struct {
	Title   string
	URL     string
	Snippet string
}

// MatchDiag records how the company matcher resolved a candidate, for
// debugging low-quality pools.
type MatchDiag struct {
	ResolvedCompany string
	Domain          string
	BestKeyword     string
	KeywordScore    int
}

// Candidate is the engine's output unit. Created once per orchestration run
// and never mutated after creation.
type Candidate struct {
	FullName  string
	FirstName string
	LastName  string
	Title     string
	Company   string // display form
	City      string
	School    string
	SourceURL string
	Email     string // EmailUnknown when not resolved

	FitScore int // clamped to [0,100]
	Reasons  []string
	Level    Level
	Query    string
	Diag     MatchDiag
}

// IdentityKey is the deduplication fingerprint: email when known, else URL,
// else a name|company|title composite.
func (c Candidate) IdentityKey() string {
	if e := normKey(c.Email); e != "" && !strings.EqualFold(c.Email, EmailUnknown) {
		return "email:" + e
	}
	if u := normURL(c.SourceURL); u != "" {
		return "url:" + u
	}
	return "who:" + normKey(c.FullName) + "|" + normKey(c.Company) + "|" + normKey(c.Title)
}

// EngineResult is the ordered output of one generation call.
type EngineResult struct {
	Candidates    []Candidate
	QueriesIssued int
}

func normURL(raw string) string {
	u := strings.TrimSpace(strings.ToLower(raw))
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	u = strings.TrimPrefix(u, "www.")
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	return strings.TrimRight(u, "/")
}
