package rank

import (
	"strings"

	"outreach-engine/internal/domain"
	"outreach-engine/internal/match"
)

const (
	scoreBase = 18
	scoreMin  = 0
	scoreMax  = 100

	maxReasons = 4
)

// genericKeywordTokens never count toward keyword token overlap.
var genericKeywordTokens = map[string]bool{
	"analyst": true, "associate": true, "director": true, "president": true,
	"vice": true, "managing": true, "executive": true, "senior": true,
	"junior": true, "the": true, "and": true, "for": true,
}

var recruitingWords = []string{"recruit", "talent", "campus", "human resources", "people team"}

// Input bundles every signal the scorer folds over.
type Input struct {
	Title   string // candidate's parsed title
	City    string // candidate's extracted city
	School  string // matched school, "" if none
	Email   string // resolved email or domain.EmailUnknown
	Level   domain.Level
	Company string

	CompanyMatched bool // matcher confirmed target company
	CurrentRole    bool // verifier accepted as current role

	TargetCities []string
	TargetLevels []domain.Level
	Keywords     []string // assembled keyword set
	JobKeywords  []string // job-title/JD tokens from the job context
}

// Result is a bounded score plus its explanation.
type Result struct {
	Score        int
	Reasons      []string
	BestKeyword  string
	KeywordScore int
}

// KeywordPhraseScore rates how well one keyword phrase matches a title:
// exact normalized containment scores 100; token overlap with at least one
// non-generic token of length >= 3 scores 50 + min(35, overlap*15); else 0.
func KeywordPhraseScore(keyword, title string) (score, overlap int) {
	kw, ti := match.Normalize(keyword), match.Normalize(title)
	if kw == "" || ti == "" {
		return 0, 0
	}
	if strings.Contains(ti, kw) {
		return 100, len(strings.Fields(kw))
	}

	titleToks := make(map[string]bool)
	for _, t := range strings.Fields(ti) {
		titleToks[t] = true
	}
	for _, t := range strings.Fields(kw) {
		if len(t) < 3 || genericKeywordTokens[t] {
			continue
		}
		if titleToks[t] {
			overlap++
		}
	}
	if overlap == 0 {
		return 0, 0
	}
	return 50 + min(35, overlap*15), overlap
}

// bestKeyword picks the highest-scoring keyword; ties break on larger token
// overlap, then on list order.
func bestKeyword(keywords []string, title string) (kw string, score, overlap int) {
	for _, k := range keywords {
		s, o := KeywordPhraseScore(k, title)
		if s > score || (s == score && o > overlap) {
			kw, score, overlap = k, s, o
		}
	}
	return kw, score, overlap
}

// rule is one (condition, delta, reason) step of the fold.
type rule struct {
	hit    bool
	delta  int
	reason string
}

// Score folds the weighted signals over the base score and clamps to
// [0, 100]. Reasons accumulate in evaluation order, deduplicated, capped.
func Score(in Input) Result {
	bkw, kscore, _ := bestKeyword(in.Keywords, in.Title)

	rules := []rule{
		{in.CompanyMatched, 30, "company confirmed: " + in.Company},
		{in.CurrentRole, 22, "current role"},
	}

	if city := cityAligned(in.City, in.TargetCities); city != "" {
		rules = append(rules, rule{true, 20, "city: " + city})
	}

	switch {
	case in.Level == domain.LevelUnknown:
		rules = append(rules, rule{true, -10, "seniority not detected"})
	case levelIn(in.Level, in.TargetLevels):
		rules = append(rules, rule{true, 5, "seniority: " + string(in.Level)})
	default:
		rules = append(rules, rule{true, -35, "outside target seniority: " + string(in.Level)})
	}

	switch {
	case kscore >= 100:
		rules = append(rules,
			rule{true, kscore * 52 / 100, "keyword: " + bkw},
			rule{true, 12, "exact keyword phrase"})
	case kscore >= 20:
		rules = append(rules, rule{true, kscore * 16 / 100, "keyword overlap: " + bkw})
	default:
		rules = append(rules, rule{true, -24, "no keyword match"})
	}

	if bonus := jdOverlapBonus(in.JobKeywords, in.Title); bonus > 0 {
		rules = append(rules, rule{true, bonus, "matches job description"})
	}
	if in.School != "" {
		rules = append(rules, rule{true, 7, "school: " + in.School})
	}
	if in.Email != "" && !strings.EqualFold(in.Email, domain.EmailUnknown) {
		rules = append(rules, rule{true, 4, "email found"})
	}
	if m := firstMarker(strings.ToLower(in.Title), internMarkers); m != "" {
		rules = append(rules, rule{true, -35, "non-full-time title"})
	}
	if m := firstMarker(strings.ToLower(in.Title), recruitingWords); m != "" {
		rules = append(rules, rule{true, 5, "recruiting-facing title"})
	}

	score := scoreBase
	var reasons []string
	for _, r := range rules {
		if !r.hit {
			continue
		}
		score += r.delta
		if r.reason != "" {
			reasons = append(reasons, r.reason)
		}
	}
	if score < scoreMin {
		score = scoreMin
	}
	if score > scoreMax {
		score = scoreMax
	}

	reasons = uniq(reasons)
	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return Result{Score: score, Reasons: reasons, BestKeyword: bkw, KeywordScore: kscore}
}

// cityAligned compares the first comma-segment of the candidate's city
// against each target by prefix/substring, returning the matched target.
func cityAligned(city string, targets []string) string {
	seg := city
	if i := strings.Index(seg, ","); i >= 0 {
		seg = seg[:i]
	}
	seg = match.Normalize(seg)
	if seg == "" {
		return ""
	}
	for _, t := range targets {
		nt := match.Normalize(t)
		if nt == "" {
			continue
		}
		if strings.HasPrefix(seg, nt) || strings.Contains(nt, seg) || strings.Contains(seg, nt) {
			return t
		}
	}
	return ""
}

// jdOverlapBonus tiers the token overlap between job-context keywords and the
// candidate title: 1 -> 4, 2 -> 9, 3 -> 13, 4+ -> 18.
func jdOverlapBonus(jobKeywords []string, title string) int {
	ti := match.Normalize(title)
	if ti == "" || len(jobKeywords) == 0 {
		return 0
	}
	titleToks := make(map[string]bool)
	for _, t := range strings.Fields(ti) {
		titleToks[t] = true
	}
	seen := make(map[string]bool)
	overlap := 0
	for _, kw := range jobKeywords {
		for _, t := range strings.Fields(match.Normalize(kw)) {
			if len(t) < 3 || genericKeywordTokens[t] || seen[t] {
				continue
			}
			seen[t] = true
			if titleToks[t] {
				overlap++
			}
		}
	}
	switch {
	case overlap >= 4:
		return 18
	case overlap == 3:
		return 13
	case overlap == 2:
		return 9
	case overlap == 1:
		return 4
	}
	return 0
}

func levelIn(l domain.Level, set []domain.Level) bool {
	for _, s := range set {
		if s == l {
			return true
		}
	}
	return false
}

func uniq(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
