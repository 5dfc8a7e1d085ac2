package rank

import (
	"testing"

	"outreach-engine/internal/match"
)

func newVerifier(mode Mode) *Verifier {
	return &Verifier{
		Matcher: match.NewCompanyMatcher(match.DefaultMatcherConfig()),
		Mode:    mode,
	}
}

func TestVerifySearchMode(t *testing.T) {
	v := newVerifier(ModeSearch)

	t.Run("explicit at-clause", func(t *testing.T) {
		got := v.Verify("Investment Analyst at Goldman Sachs", "Goldman Sachs", "")
		if !got.OK {
			t.Fatalf("rejected: %v", got.Reasons)
		}
		if got.Company != "Goldman Sachs" {
			t.Errorf("resolved %q", got.Company)
		}
	})

	t.Run("hyphen segment company", func(t *testing.T) {
		got := v.Verify("Campus Recruiter - Goldman Sachs Asset Management", "Goldman Sachs", "")
		if !got.OK {
			t.Fatalf("rejected: %v", got.Reasons)
		}
	})

	t.Run("snippet fallback", func(t *testing.T) {
		got := v.Verify("Equity Research", "Citadel", "Works on multi-strategy teams at Citadel in Chicago")
		if !got.OK {
			t.Fatalf("rejected: %v", got.Reasons)
		}
	})

	t.Run("wrong company rejected", func(t *testing.T) {
		got := v.Verify("Analyst at Morgan Stanley", "Goldman Sachs", "")
		if got.OK {
			t.Fatal("accepted wrong company")
		}
	})

	t.Run("empty role text rejected", func(t *testing.T) {
		if got := v.Verify("", "Goldman Sachs", "mentions Goldman Sachs"); got.OK {
			t.Fatal("accepted empty role text")
		}
	})
}

func TestVerifyRejectsMarkers(t *testing.T) {
	v := newVerifier(ModeSearch)

	for _, title := range []string{
		"Former Analyst at Goldman Sachs",
		"Ex-Goldman Sachs | Now at a startup",
		"Summer Analyst at Goldman Sachs",
		"Investment Banking Intern at Goldman Sachs",
		"Off-Cycle Analyst at Goldman Sachs",
	} {
		if got := v.Verify(title, "Goldman Sachs", ""); got.OK {
			t.Errorf("accepted %q", title)
		}
	}

	t.Run("marker after pipe does not block", func(t *testing.T) {
		got := v.Verify("Analyst at Goldman Sachs | formerly at Citi", "Goldman Sachs", "")
		if !got.OK {
			t.Fatalf("rejected: %v", got.Reasons)
		}
	})

	t.Run("snippet-only marker is a warning", func(t *testing.T) {
		got := v.Verify("Analyst at Goldman Sachs", "Goldman Sachs", "Previously interned elsewhere")
		if !got.OK {
			t.Fatalf("rejected: %v", got.Reasons)
		}
		var warned bool
		for _, r := range got.Reasons {
			if r == "warning: prior-role wording in snippet" {
				warned = true
			}
		}
		if !warned {
			t.Errorf("missing warning reason: %v", got.Reasons)
		}
	})
}

func TestVerifyStrictMode(t *testing.T) {
	v := newVerifier(ModeStrict)

	if got := v.Verify("Recruiter - Goldman Sachs", "Goldman Sachs", ""); got.OK {
		t.Fatal("strict mode must require an at-clause")
	}
	if got := v.Verify("Recruiter at Goldman Sachs", "Goldman Sachs", ""); !got.OK {
		t.Fatalf("rejected: %v", got.Reasons)
	}
}

func TestVerifyBalancedMode(t *testing.T) {
	v := newVerifier(ModeBalanced)

	t.Run("loose match without at-clause", func(t *testing.T) {
		got := v.Verify("Recruiter - Goldman Sachs Asset Management", "Goldman Sachs", "")
		if !got.OK {
			t.Fatalf("rejected: %v", got.Reasons)
		}
	})

	t.Run("snippet alone is not enough", func(t *testing.T) {
		got := v.Verify("Equity Research", "Citadel", "at Citadel in Chicago")
		if got.OK {
			t.Fatal("balanced mode must ignore snippet evidence")
		}
	})
}

func TestParseMode(t *testing.T) {
	if ParseMode("STRICT") != ModeStrict {
		t.Error("strict")
	}
	if ParseMode("balanced") != ModeBalanced {
		t.Error("balanced")
	}
	if ParseMode("") != ModeSearch || ParseMode("bogus") != ModeSearch {
		t.Error("default")
	}
}
