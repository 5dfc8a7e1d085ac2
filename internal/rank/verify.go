package rank

import (
	"strings"

	"outreach-engine/internal/match"
)

// Mode controls how aggressively the verifier accepts weak evidence that a
// result is the person's current role at the target company.
type Mode string

const (
	ModeStrict   Mode = "strict"
	ModeBalanced Mode = "balanced"
	ModeSearch   Mode = "search"
)

// ParseMode maps user input to a Mode, defaulting to search.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeStrict:
		return ModeStrict
	case ModeBalanced:
		return ModeBalanced
	}
	return ModeSearch
}

var formerMarkers = []string{"former ", "formerly", "previously", "ex-", "past "}

var internMarkers = []string{
	"intern", "summer analyst", "off-cycle", "off cycle",
	"co-op", "trainee", "work placement", "spring week",
}

// Verdict is the verifier's decision: rejections are filtering outcomes, not
// errors.
type Verdict struct {
	OK      bool
	Company string // resolved display name, "" when rejected
	Reasons []string
}

// Verifier decides whether a parsed result plausibly represents a current
// role at the target company.
type Verifier struct {
	Matcher *match.CompanyMatcher
	Mode    Mode
}

// Verify inspects the parsed role/company text against the target. The
// primary (pre-"|") segment alone is checked for former/intern markers;
// a prior-role marker found only in the snippet downgrades to a warning.
func (v *Verifier) Verify(roleText, target, snippet string) Verdict {
	roleText = strings.TrimSpace(roleText)
	primary := roleText
	if i := strings.Index(primary, "|"); i >= 0 {
		primary = strings.TrimSpace(primary[:i])
	}
	lowPrimary := strings.ToLower(primary)

	if m := firstMarker(lowPrimary, formerMarkers); m != "" {
		return Verdict{Reasons: []string{"prior role marker: " + m}}
	}
	if m := firstMarker(lowPrimary, internMarkers); m != "" {
		return Verdict{Reasons: []string{"non-full-time marker: " + m}}
	}

	frag, hasAt := companyFragment(primary)
	exact := frag != "" && v.Matcher.NormalizeCompany(frag) == v.Matcher.NormalizeCompany(target)
	loose := frag != "" && v.Matcher.Match(frag, target)
	snippetHit := snippetMentions(snippet, target, v.Matcher)

	var ok bool
	var reasons []string
	switch v.Mode {
	case ModeStrict:
		switch {
		case !hasAt:
			reasons = append(reasons, "no explicit current-company clause")
		case !loose:
			reasons = append(reasons, "company mismatch: "+frag)
		default:
			ok = true
		}
	case ModeBalanced:
		if roleText == "" {
			reasons = append(reasons, "no role text")
		} else if exact || loose || (hasAt && loose) {
			ok = true
		} else {
			reasons = append(reasons, "company not confirmed")
		}
	default: // ModeSearch
		if roleText == "" {
			reasons = append(reasons, "no role text")
		} else if exact || loose || snippetHit {
			ok = true
		} else {
			reasons = append(reasons, "company not confirmed")
		}
	}

	if !ok {
		return Verdict{Reasons: reasons}
	}

	resolved := strings.TrimSpace(frag)
	if resolved == "" || (!exact && !loose) {
		resolved = strings.TrimSpace(target)
	}
	reasons = append(reasons, "current role at "+resolved)
	if m := firstMarker(strings.ToLower(snippet), formerMarkers); m != "" {
		reasons = append(reasons, "warning: prior-role wording in snippet")
	}
	return Verdict{OK: true, Company: resolved, Reasons: reasons}
}

// companyFragment extracts the likely company part of the role text: the text
// after "at", else the last hyphen segment, else nothing. The fragment stops
// at the first of "| ( , ; /".
func companyFragment(primary string) (frag string, hasAt bool) {
	low := strings.ToLower(primary)
	if i := strings.Index(low, " at "); i >= 0 {
		frag = primary[i+4:]
		hasAt = true
	} else if i := strings.LastIndex(primary, " - "); i >= 0 {
		frag = primary[i+3:]
	}
	if j := strings.IndexAny(frag, "|(,;/"); j >= 0 {
		frag = frag[:j]
	}
	return strings.TrimSpace(frag), hasAt
}

func snippetMentions(snippet, target string, m *match.CompanyMatcher) bool {
	if snippet == "" {
		return false
	}
	t := m.NormalizeCompany(target)
	return t != "" && strings.Contains(match.Normalize(snippet), t)
}

func firstMarker(low string, markers []string) string {
	for _, m := range markers {
		if strings.Contains(low, m) {
			return strings.TrimSpace(m)
		}
	}
	return ""
}
