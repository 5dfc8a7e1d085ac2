// Package rank classifies, verifies, and scores parsed search results.
package rank

import (
	"regexp"

	"outreach-engine/internal/domain"
	"outreach-engine/internal/match"
)

// levelPatterns is the ordered (pattern, level) dispatch table. Senior labels
// are tested first: "Managing Director, Equities" contains "director" too.
var levelPatterns = []struct {
	re    *regexp.Regexp
	level domain.Level
}{
	{regexp.MustCompile(`\bmanaging director\b|\bmd\b`), domain.LevelMD},
	{regexp.MustCompile(`\bexecutive director\b`), domain.LevelED},
	{regexp.MustCompile(`\bvice president\b|\bvp\b`), domain.LevelVP},
	{regexp.MustCompile(`\bprincipal\b`), domain.LevelDirector},
	{regexp.MustCompile(`\bdirector\b`), domain.LevelDirector},
	{regexp.MustCompile(`\bassociate\b`), domain.LevelAssociate},
	{regexp.MustCompile(`\banalyst\b`), domain.LevelAnalyst},
}

// DetectLevel maps title text to a seniority level, first match wins.
func DetectLevel(title string) domain.Level {
	t := match.Normalize(title)
	if t == "" {
		return domain.LevelUnknown
	}
	for _, p := range levelPatterns {
		if p.re.MatchString(t) {
			return p.level
		}
	}
	return domain.LevelUnknown
}
