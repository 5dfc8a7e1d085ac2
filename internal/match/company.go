package match

import (
	"sort"
	"strings"
)

// MatcherConfig is the immutable data a CompanyMatcher runs on. Injected so
// tests and deployments can substitute their own tables.
type MatcherConfig struct {
	// DivisionSuffixes are trailing division/legal fragments stripped from
	// company names, e.g. "Goldman Sachs Asset Management" -> "Goldman Sachs".
	DivisionSuffixes []string
	// KeepWhole lists normalized names that must never be truncated even
	// though they end in a division suffix ("Man Group", "Capital Group").
	KeepWhole []string
	// GenericTokens are corporate filler words ignored during token matching.
	GenericTokens []string
	// Directory maps lower-case company names to bare email domains.
	Directory map[string]string
	// DomainScoreThreshold is the minimum 0-100 score a fuzzy directory hit
	// needs to be accepted.
	DomainScoreThreshold int
}

// DefaultMatcherConfig returns the built-in tables. Callers may override any
// field before constructing the matcher.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		DivisionSuffixes: []string{
			"capital management", "asset management", "investment management",
			"wealth management", "global advisors", "global investors",
			"global markets", "investment banking ib", "capital markets",
			"capital partners", "investment bank", "securities", "advisors",
			"advisers", "international", "incorporated", "corporation",
			"limited", "management", "company", "holdings", "partners",
			"group", "corp", "llc", "llp", "inc", "ltd", "plc", "lp", "co",
		},
		KeepWhole: []string{
			"man group", "capital group", "carlyle group", "cme group",
			"apollo global management", "brookfield asset management",
			"alliancebernstein",
		},
		GenericTokens: []string{
			"inc", "llc", "ltd", "plc", "lp", "co", "corp", "corporation",
			"company", "group", "holdings", "partners", "capital",
			"management", "asset", "global", "international", "the", "and",
			"of", "&",
		},
		Directory:            DefaultDirectory(),
		DomainScoreThreshold: 60,
	}
}

// CompanyMatcher answers "are these the same firm?" questions and resolves
// email domains. Safe for concurrent use; all state is read-only.
type CompanyMatcher struct {
	suffixes  []string // longest first
	keepWhole map[string]bool
	generic   map[string]bool
	dir       map[string]string
	threshold int
}

func NewCompanyMatcher(cfg MatcherConfig) *CompanyMatcher {
	m := &CompanyMatcher{
		suffixes:  append([]string(nil), cfg.DivisionSuffixes...),
		keepWhole: make(map[string]bool, len(cfg.KeepWhole)),
		generic:   make(map[string]bool, len(cfg.GenericTokens)),
		dir:       make(map[string]string, len(cfg.Directory)),
		threshold: cfg.DomainScoreThreshold,
	}
	// Longest-match-first precedence for suffix stripping.
	sort.SliceStable(m.suffixes, func(i, j int) bool {
		return len(m.suffixes[i]) > len(m.suffixes[j])
	})
	for _, w := range cfg.KeepWhole {
		m.keepWhole[Normalize(w)] = true
	}
	for _, t := range cfg.GenericTokens {
		m.generic[t] = true
	}
	for k, v := range cfg.Directory {
		m.dir[strings.ToLower(strings.TrimSpace(k))] = strings.ToLower(strings.TrimSpace(v))
	}
	if m.threshold <= 0 {
		m.threshold = 60
	}
	return m
}

// NormalizeCompany normalizes and strips trailing division/legal suffixes,
// unless the whole name is whitelisted.
func (m *CompanyMatcher) NormalizeCompany(name string) string {
	n := Normalize(name)
	if n == "" || m.keepWhole[n] {
		return n
	}
	for changed := true; changed; {
		changed = false
		for _, suf := range m.suffixes {
			if rest, ok := strings.CutSuffix(n, " "+suf); ok && rest != "" {
				n = strings.TrimSpace(rest)
				changed = true
				break
			}
		}
		if m.keepWhole[n] {
			break
		}
	}
	return n
}

// Tokens returns the non-generic tokens of a normalized name, length >= 2.
func (m *CompanyMatcher) Tokens(name string) []string {
	var out []string
	for _, t := range NormTokens(name) {
		if len(t) < 2 || m.generic[t] {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Acronym joins first letters of the non-generic tokens. A single short token
// is returned as-is ("KKR" -> "kkr").
func (m *CompanyMatcher) Acronym(name string) string {
	toks := m.Tokens(name)
	if len(toks) == 0 {
		return ""
	}
	if len(toks) == 1 {
		if len(toks[0]) <= 4 {
			return toks[0]
		}
		return ""
	}
	var b strings.Builder
	for _, t := range toks {
		b.WriteByte(t[0])
	}
	return b.String()
}

// Match reports whether two names plausibly refer to the same firm.
func (m *CompanyMatcher) Match(a, b string) bool {
	na, nb := m.NormalizeCompany(a), m.NormalizeCompany(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	if aa, ab := m.Acronym(a), m.Acronym(b); aa != "" && aa == ab {
		return true
	}

	ta, tb := m.Tokens(a), m.Tokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return false
	}
	overlap := tokenOverlap(ta, tb)
	if overlap == 0 {
		return false
	}

	// Guard: "Man Group" must not match "Man Numeric". When one side reduces
	// to a single short token and either side carries extra non-generic
	// tokens, the overlap is too weak to trust.
	if (len(ta) == 1 && len(ta[0]) <= 4) || (len(tb) == 1 && len(tb[0]) <= 4) {
		if len(ta)+len(tb)-2*overlap > 0 {
			return false
		}
	}

	if isSubset(ta, tb) || isSubset(tb, ta) {
		return true
	}
	return overlap >= min(len(ta), len(tb))
}

func tokenOverlap(a, b []string) int {
	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t] = true
	}
	n := 0
	for _, t := range b {
		if set[t] {
			set[t] = false
			n++
		}
	}
	return n
}

func isSubset(sub, super []string) bool {
	set := make(map[string]bool, len(super))
	for _, t := range super {
		set[t] = true
	}
	for _, t := range sub {
		if !set[t] {
			return false
		}
	}
	return true
}
