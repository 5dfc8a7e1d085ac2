package query

import (
	"strings"
	"testing"

	"outreach-engine/internal/domain"
)

func TestBuildCrossProduct(t *testing.T) {
	specs := Build(
		"Goldman Sachs",
		[]string{"New York", "Chicago"},
		[]string{"Equity Research", "FX"},
		[]domain.Level{domain.LevelAnalyst, domain.LevelVP},
	)
	if len(specs) != 2*2*2 {
		t.Fatalf("want 8 specs, got %d", len(specs))
	}

	q := specs[0].Query
	for _, want := range []string{
		`site:linkedin.com/in`,
		`"Equity Research"`,
		`("Analyst")`,
		`"Goldman Sachs"`,
		`"New York"`,
	} {
		if !strings.Contains(q, want) {
			t.Errorf("query %q missing %q", q, want)
		}
	}
}

func TestExclusionSuffix(t *testing.T) {
	t.Run("junior-only selection excludes senior titles", func(t *testing.T) {
		specs := Build("Citadel", nil, []string{"trading"},
			[]domain.Level{domain.LevelAnalyst, domain.LevelAssociate})
		q := specs[0].Query
		for _, want := range []string{`-"Vice President"`, `-VP`, `-"Director"`, `-"Executive Director"`, `-"Managing Director"`, `-MD`} {
			if !strings.Contains(q, want) {
				t.Errorf("query %q missing exclusion %q", q, want)
			}
		}
	})

	t.Run("MD selected means nothing to exclude", func(t *testing.T) {
		specs := Build("Citadel", nil, []string{"trading"},
			[]domain.Level{domain.LevelMD})
		if strings.Contains(specs[0].Query, `-"`) {
			t.Errorf("unexpected exclusion in %q", specs[0].Query)
		}
	})

	t.Run("no levels means no clause and no suffix", func(t *testing.T) {
		specs := Build("Citadel", nil, []string{"trading"}, nil)
		if len(specs) != 1 {
			t.Fatalf("want 1 spec, got %d", len(specs))
		}
		q := specs[0].Query
		if strings.Contains(q, "OR") || strings.Contains(q, `-"`) {
			t.Errorf("unexpected level material in %q", q)
		}
	})
}

func TestBuildDegenerateInputs(t *testing.T) {
	if got := Build("", nil, []string{"x"}, nil); got != nil {
		t.Errorf("empty company should produce nothing, got %v", got)
	}
	if got := Build("Citadel", nil, nil, nil); got != nil {
		t.Errorf("no keywords should produce nothing, got %v", got)
	}
}
