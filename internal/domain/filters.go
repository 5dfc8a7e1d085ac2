package domain

import "strings"

// JobContext describes the outreach target a campaign was created from. It
// supplies defaults when the explicit filters leave a field empty.
type JobContext struct {
	JobName       string
	TargetCompany string
	City          string
	Description   string
	Keywords      []string // extracted from the job description, lowest priority
}

// Filters is the request half of a generation call. Companies are ordered by
// priority; the order is preserved in the final output's company grouping.
type Filters struct {
	Companies []string
	Cities    []string
	Schools   []string
	Levels    []Level

	// Keyword lists in descending priority: custom beats front-office beats HR.
	Keywords            []string
	FrontOfficeKeywords []string
	HRKeywords          []string

	MaxPerCompany int
}

// GatherLimit bounds how many raw results are collected per company before
// the query fan-out stops early.
func (f Filters) GatherLimit() int {
	return f.MaxPerCompany * 6
}

// SelectedLevels returns the level filter restricted to known levels, in the
// fixed junior-first order regardless of input order.
func (f Filters) SelectedLevels() []Level {
	want := make(map[Level]bool, len(f.Levels))
	for _, l := range f.Levels {
		if l != LevelUnknown {
			want[l] = true
		}
	}
	var out []Level
	for _, l := range Levels {
		if want[l] {
			out = append(out, l)
		}
	}
	return out
}

// normKey is the cheap fold used for map keys and identity composites.
func normKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
