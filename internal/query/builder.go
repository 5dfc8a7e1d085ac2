// Package query builds the search-engine query strings for the
// company x city x keyword x level cross-product.
package query

import (
	"fmt"
	"strings"

	"outreach-engine/internal/domain"
)

// siteRestrict narrows results to professional profile URLs.
const siteRestrict = "site:linkedin.com/in"

// levelClauses maps each level to its OR-group of title phrases. Order
// follows domain.Levels.
var levelClauses = map[domain.Level]string{
	domain.LevelAnalyst:   `("Analyst")`,
	domain.LevelAssociate: `("Associate")`,
	domain.LevelVP:        `("Vice President" OR VP)`,
	domain.LevelDirector:  `("Director")`,
	domain.LevelED:        `("Executive Director" OR ED)`,
	domain.LevelMD:        `("Managing Director" OR MD)`,
}

// exclusionTerms are the negative terms appended per level when it sits above
// the highest selected level.
var exclusionTerms = map[domain.Level][]string{
	domain.LevelVP:       {`-"Vice President"`, `-VP`},
	domain.LevelDirector: {`-"Director"`},
	domain.LevelED:       {`-"Executive Director"`},
	domain.LevelMD:       {`-"Managing Director"`, `-MD`},
}

// Spec is one concrete query plus the combination that produced it.
type Spec struct {
	Company string
	City    string
	Keyword string
	Level   domain.Level
	Query   string
}

// Build synthesizes the full cross-product for one company. Levels default to
// a single empty clause when none are selected; cities likewise. The
// exclusion suffix negates every level strictly senior to the highest
// selected one.
func Build(company string, cities, kws []string, levels []domain.Level) []Spec {
	if company = strings.TrimSpace(company); company == "" {
		return nil
	}
	if len(cities) == 0 {
		cities = []string{""}
	}
	if len(kws) == 0 {
		return nil
	}

	levelSet := levels
	if len(levelSet) == 0 {
		levelSet = []domain.Level{""}
	}
	suffix := exclusionSuffix(levels)

	var out []Spec
	for _, city := range cities {
		for _, kw := range kws {
			for _, lvl := range levelSet {
				var b strings.Builder
				b.WriteString(siteRestrict)
				fmt.Fprintf(&b, " %q", kw)
				if clause := levelClauses[lvl]; clause != "" {
					b.WriteString(" " + clause)
				}
				fmt.Fprintf(&b, " %q", company)
				if city != "" {
					fmt.Fprintf(&b, " %q", city)
				}
				if suffix != "" {
					b.WriteString(" " + suffix)
				}
				out = append(out, Spec{
					Company: company,
					City:    city,
					Keyword: kw,
					Level:   lvl,
					Query:   b.String(),
				})
			}
		}
	}
	return out
}

// exclusionSuffix returns negative terms for every level senior to the
// highest selected one, or "" when no level is selected or MD is included.
func exclusionSuffix(levels []domain.Level) string {
	highest := -1
	for _, l := range levels {
		if p := domain.PriorityIndex(l); p < len(domain.Levels) && p > highest {
			highest = p
		}
	}
	if highest < 0 {
		return ""
	}
	var terms []string
	for _, l := range domain.Levels[highest+1:] {
		terms = append(terms, exclusionTerms[l]...)
	}
	return strings.Join(terms, " ")
}
