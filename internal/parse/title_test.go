package parse

import "testing"

func TestParseTitle(t *testing.T) {
	cases := []struct {
		in, name, role string
	}{
		{
			"Jane Doe - Campus Recruiter - Goldman Sachs | LinkedIn",
			"Jane Doe",
			"Campus Recruiter - Goldman Sachs",
		},
		{
			"John Smith - Investment Analyst at Citadel | LinkedIn",
			"John Smith",
			"Investment Analyst at Citadel",
		},
		{"Only A Name | LinkedIn", "Only A Name", ""},
		{"", "", ""},
		{"   ", "", ""},
	}
	for _, c := range cases {
		name, role := ParseTitle(c.in)
		if name != c.name || role != c.role {
			t.Errorf("ParseTitle(%q) = (%q, %q), want (%q, %q)", c.in, name, role, c.name, c.role)
		}
	}
}

func TestCleanFullName(t *testing.T) {
	cases := []struct {
		in, full, first, last string
	}{
		{"Jane Doe", "Jane Doe", "Jane", "Doe"},
		{"Jane Doe, CFA", "Jane Doe", "Jane", "Doe"},
		{"Jane (she/her) Doe", "Jane Doe", "Jane", "Doe"},
		{"J. P. Smith", "J P Smith", "J", "Smith"},
		{"Madonna", "Madonna", "Madonna", ""},
		{"", "", "", ""},
	}
	for _, c := range cases {
		full, first, last := CleanFullName(c.in)
		if full != c.full || first != c.first || last != c.last {
			t.Errorf("CleanFullName(%q) = (%q,%q,%q), want (%q,%q,%q)",
				c.in, full, first, last, c.full, c.first, c.last)
		}
	}
}

func TestExtractCity(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"New York, United States · 500+ connections", "New York"},
		{"Greater Chicago Area · Analyst", "Chicago"},
		{"San Francisco Bay Area", "San Francisco Bay"},
		{"Boston, MA · Harvard Business School", "Boston"},
		{"no location here", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := ExtractCity(c.in); got != c.want {
			t.Errorf("ExtractCity(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExtractSchool(t *testing.T) {
	got := ExtractSchool("New York, United States · 500+ connections · Columbia University")
	if got != "Columbia University" {
		t.Errorf("got %q", got)
	}
	if got := ExtractSchool("just a sentence"); got != "" {
		t.Errorf("want empty, got %q", got)
	}
}
