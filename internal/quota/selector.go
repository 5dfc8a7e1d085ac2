package quota

import (
	"sort"

	"outreach-engine/internal/domain"
)

// Select applies the level quotas to one company's candidate pool: fill each
// selected level up to its quota, backfill leftover slots from overflowing
// levels, then from unknown/non-selected candidates, deduplicating by
// identity key throughout. The result is re-sorted (level priority, score
// desc, name) and truncated to maxPerCompany.
func Select(pool []domain.Candidate, levels []domain.Level, maxPerCompany int) []domain.Candidate {
	if maxPerCompany <= 0 || len(pool) == 0 {
		return nil
	}

	quotas := Allocate(levels, maxPerCompany)
	ordered := orderLevels(levels)
	selected := make(map[domain.Level]bool, len(ordered))
	for _, l := range ordered {
		selected[l] = true
	}

	byLevel := make(map[domain.Level][]domain.Candidate)
	var rest []domain.Candidate // unknown or non-selected levels
	for _, c := range pool {
		if selected[c.Level] {
			byLevel[c.Level] = append(byLevel[c.Level], c)
		} else {
			rest = append(rest, c)
		}
	}
	for _, group := range byLevel {
		sortGroup(group)
	}
	sortGroup(rest)

	var picked []domain.Candidate
	seen := make(map[string]bool)
	take := func(c domain.Candidate) bool {
		if len(picked) >= maxPerCompany {
			return false
		}
		k := c.IdentityKey()
		if seen[k] {
			return false
		}
		seen[k] = true
		picked = append(picked, c)
		return true
	}

	// Pass 1: per-level quota fill, level order.
	remaining := make(map[domain.Level][]domain.Candidate, len(ordered))
	for _, l := range ordered {
		group := byLevel[l]
		n := 0
		for _, c := range group {
			if n >= quotas[l] {
				break
			}
			if take(c) {
				n++
			}
		}
		if n < len(group) {
			remaining[l] = group[n:]
		}
	}

	// Pass 2: backfill from selected levels' overflow.
	for _, l := range ordered {
		for _, c := range remaining[l] {
			if len(picked) >= maxPerCompany {
				break
			}
			take(c)
		}
	}

	// Pass 3: backfill from unknown / non-selected candidates.
	for _, c := range rest {
		if len(picked) >= maxPerCompany {
			break
		}
		take(c)
	}

	sort.SliceStable(picked, func(i, j int) bool {
		pi, pj := domain.PriorityIndex(picked[i].Level), domain.PriorityIndex(picked[j].Level)
		if pi != pj {
			return pi < pj
		}
		if picked[i].FitScore != picked[j].FitScore {
			return picked[i].FitScore > picked[j].FitScore
		}
		return picked[i].FullName < picked[j].FullName
	})
	if len(picked) > maxPerCompany {
		picked = picked[:maxPerCompany]
	}
	return picked
}

// sortGroup orders a candidate group by (score desc, name asc) for
// deterministic quota fills.
func sortGroup(g []domain.Candidate) {
	sort.SliceStable(g, func(i, j int) bool {
		if g[i].FitScore != g[j].FitScore {
			return g[i].FitScore > g[j].FitScore
		}
		return g[i].FullName < g[j].FullName
	})
}
