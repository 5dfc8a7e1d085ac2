package parse

import (
	"regexp"
	"strings"
)

// cityPatterns is an ordered (pattern, capture) table; first match wins.
var cityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`([A-Z][a-zA-Z ]+), United States`),
	regexp.MustCompile(`Greater ([A-Z][a-zA-Z ]+) Area`),
	regexp.MustCompile(`([A-Z][a-zA-Z ]+) Area`),
	regexp.MustCompile(`([A-Z][a-zA-Z ]+), [A-Z]{2}\b`),
}

// ExtractCity pulls a city name out of a snippet, trying the patterns in
// order. Returns "" when nothing matches.
func ExtractCity(snippet string) string {
	if snippet == "" {
		return ""
	}
	for _, re := range cityPatterns {
		if m := re.FindStringSubmatch(snippet); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

var reSchoolWord = regexp.MustCompile(`(?i)\b(university|college|school|institute|business)\b`)

// ExtractSchool scans the snippet's "·"-separated segments for an education
// entry. LinkedIn snippets commonly read "City · 500+ connections · Wharton".
func ExtractSchool(snippet string) string {
	if snippet == "" {
		return ""
	}
	s := strings.NewReplacer("\n", " · ", "•", "·").Replace(snippet)
	for _, seg := range strings.Split(s, "·") {
		seg = strings.TrimSpace(seg)
		if seg == "" || len(seg) > 80 {
			continue
		}
		if reSchoolWord.MatchString(seg) {
			return seg
		}
	}
	return ""
}
