// Package quota apportions a per-company result budget across seniority
// levels and applies it to a scored candidate pool.
package quota

import (
	"sort"

	"outreach-engine/internal/domain"
)

// Allocate distributes total slots across the selected levels by weighted
// largest-remainder (Hamilton) apportionment. The result sums exactly to
// total whenever at least one level is selected. Fractional-remainder ties go
// to the more junior level.
func Allocate(levels []domain.Level, total int) map[domain.Level]int {
	out := make(map[domain.Level]int, len(levels))
	if len(levels) == 0 || total <= 0 {
		return out
	}

	// Dedup while preserving the fixed junior-first order.
	ordered := orderLevels(levels)

	weightSum := 0
	for _, l := range ordered {
		weightSum += weightOf(l)
	}

	type share struct {
		level     domain.Level
		floor     int
		remainder int // numerator of the fractional part, scaled by weightSum
		priority  int
	}
	shares := make([]share, 0, len(ordered))
	assigned := 0
	for _, l := range ordered {
		exact := total * weightOf(l) // over weightSum
		fl := exact / weightSum
		shares = append(shares, share{
			level:     l,
			floor:     fl,
			remainder: exact - fl*weightSum,
			priority:  domain.PriorityIndex(l),
		})
		assigned += fl
	}

	// Hand out the leftover slots, largest remainder first, junior-first on
	// exact ties.
	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].remainder != shares[j].remainder {
			return shares[i].remainder > shares[j].remainder
		}
		return shares[i].priority < shares[j].priority
	})
	for i := 0; assigned < total; i = (i + 1) % len(shares) {
		shares[i].floor++
		assigned++
	}

	for _, s := range shares {
		out[s.level] = s.floor
	}
	return out
}

func weightOf(l domain.Level) int {
	if w, ok := domain.LevelWeights[l]; ok {
		return w
	}
	return 1
}

func orderLevels(levels []domain.Level) []domain.Level {
	want := make(map[domain.Level]bool, len(levels))
	for _, l := range levels {
		want[l] = true
	}
	var out []domain.Level
	for _, l := range domain.Levels {
		if want[l] {
			out = append(out, l)
		}
	}
	return out
}
