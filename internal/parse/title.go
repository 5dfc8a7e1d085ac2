// Package parse extracts structured fields from raw search-result titles and
// snippets. Everything here is best-effort; an unparseable input returns
// empty strings, never an error.
package parse

import (
	"regexp"
	"strings"
)

// brandSuffixes are trailing site brands seen on result titles.
var brandSuffixes = []string{
	"| LinkedIn",
	"- LinkedIn",
	"| Professional Profile",
}

// ParseTitle splits a result title into the person's name and the remaining
// "role at company" text. Later " - " segments are re-joined, not dropped:
// Google often returns "Name - Title - Company".
func ParseTitle(raw string) (name, roleCompany string) {
	t := strings.TrimSpace(raw)
	for _, suf := range brandSuffixes {
		t = strings.TrimSpace(strings.TrimSuffix(t, suf))
	}
	if t == "" {
		return "", ""
	}

	var parts []string
	for _, p := range strings.Split(t, " - ") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "", ""
	}
	name = parts[0]
	if len(parts) > 1 {
		roleCompany = strings.Join(parts[1:], " - ")
	}
	return name, roleCompany
}

var reParen = regexp.MustCompile(`\([^)]*\)`)

// CleanFullName strips parenthetical asides and credentials from a raw name
// segment: "Jane Doe, CFA (she/her)" -> ("Jane Doe", "Jane", "Doe"). Last
// name is empty when fewer than two tokens remain.
func CleanFullName(raw string) (full, first, last string) {
	s := reParen.ReplaceAllString(raw, " ")
	if i := strings.Index(s, ","); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, ".", "")
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", "", ""
	}
	full = strings.Join(fields, " ")
	first = fields[0]
	if len(fields) > 1 {
		last = fields[len(fields)-1]
	}
	return full, first, last
}
