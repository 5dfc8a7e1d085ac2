// Package keywords turns raw keyword phrases into matchable variants and
// assembles the per-request keyword set.
package keywords

import (
	"sort"
	"strings"

	"outreach-engine/internal/domain"
	"outreach-engine/internal/match"
)

// MaxKeywords caps the assembled set; beyond this the query fan-out explodes
// without adding recall.
const MaxKeywords = 8

// deskAcronyms are short desk names worth keeping despite the 3-char token
// floor. Stored lower-case, emitted upper-case.
var deskAcronyms = map[string]bool{
	"fx": true, "fig": true, "tmt": true, "ecm": true, "dcm": true,
	"em": true, "abs": true, "cdo": true, "reit": true, "lbo": true,
	"ib": true,
}

// seniorityWords are stripped to derive a level-free variant and used to
// reject variants that are nothing but a level.
var seniorityWords = map[string]bool{
	"analyst": true, "associate": true, "vp": true, "vice": true,
	"president": true, "director": true, "executive": true, "managing": true,
	"md": true, "senior": true, "junior": true, "jr": true, "sr": true,
	"intern": true, "summer": true,
}

// Expand returns the deduplicated ordered variant list for one raw phrase:
// the canonical phrase, comma/semicolon splits, slash splits, the
// seniority-stripped form, long-enough token fragments, and upper-cased desk
// acronyms. Variants that reduce to a bare seniority word are dropped.
func Expand(raw string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" || seen[strings.ToLower(v)] {
			return
		}
		if seniorityOnly(v) {
			return
		}
		// A variant that is itself a desk acronym always surfaces upper-cased,
		// even when it arrived as the canonical phrase.
		if deskAcronyms[strings.ToLower(v)] {
			v = strings.ToUpper(v)
		}
		seen[strings.ToLower(v)] = true
		out = append(out, v)
	}

	canonical := match.Normalize(raw)
	if canonical == "" {
		return nil
	}
	add(canonical)

	for _, part := range splitAny(raw, ",;") {
		add(match.Normalize(part))
	}
	for _, part := range strings.Split(raw, "/") {
		add(match.Normalize(part))
	}

	if stripped := stripSeniority(canonical); stripped != canonical {
		add(stripped)
	}

	for _, tok := range strings.Fields(canonical) {
		switch {
		case deskAcronyms[tok]:
			add(strings.ToUpper(tok))
		case len(tok) >= 3:
			add(tok)
		}
	}

	return out
}

func splitAny(s, seps string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(seps, r)
	})
}

func stripSeniority(norm string) string {
	var kept []string
	for _, tok := range strings.Fields(norm) {
		if seniorityWords[tok] {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

func seniorityOnly(v string) bool {
	toks := strings.Fields(strings.ToLower(v))
	if len(toks) == 0 {
		return true
	}
	for _, tok := range toks {
		if !seniorityWords[tok] {
			return false
		}
	}
	return true
}

// Assemble builds the request's keyword set: custom first, then front-office,
// then HR lists; when all are empty the job context's extracted keywords fill
// in. Longer, more specific phrases sort first and the set is truncated to
// MaxKeywords.
func Assemble(f domain.Filters, ctx domain.JobContext) []string {
	var raw []string
	raw = append(raw, f.Keywords...)
	raw = append(raw, f.FrontOfficeKeywords...)
	raw = append(raw, f.HRKeywords...)
	if len(raw) == 0 {
		raw = append(raw, ctx.Keywords...)
	}

	var out []string
	seen := make(map[string]bool)
	for _, kw := range raw {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		key := strings.ToLower(kw)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, kw)
	}

	// Prefer longer phrases, then more words; ties keep list priority order.
	sort.SliceStable(out, func(i, j int) bool {
		wi, wj := len(strings.Fields(out[i])), len(strings.Fields(out[j]))
		if wi != wj {
			return wi > wj
		}
		return len(out[i]) > len(out[j])
	})

	if len(out) > MaxKeywords {
		out = out[:MaxKeywords]
	}
	return out
}
