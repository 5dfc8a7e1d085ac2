package engine

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outreach-engine/internal/domain"
	"outreach-engine/internal/email"
	"outreach-engine/internal/match"
	"outreach-engine/internal/rank"
	"outreach-engine/internal/search"
)

var (
	jane = domain.RawResult{
		Title:   "Jane Doe - FX Sales Analyst - Goldman Sachs | LinkedIn",
		URL:     "https://www.linkedin.com/in/janedoe",
		Snippet: "New York, United States · Goldman Sachs",
	}
	janeDup = domain.RawResult{
		Title:   "Jane Doe - FX Sales Analyst - Goldman Sachs | LinkedIn",
		URL:     "https://linkedin.com/in/janedoe/",
		Snippet: "New York, United States",
	}
	bob = domain.RawResult{
		Title:   "Bob Lee - Former FX Sales Analyst at Goldman Sachs | LinkedIn",
		URL:     "https://www.linkedin.com/in/boblee",
		Snippet: "New York, United States",
	}
	john = domain.RawResult{
		Title:   "John Smith - FX Sales Associate at Goldman Sachs | LinkedIn",
		URL:     "https://www.linkedin.com/in/johnsmith",
		Snippet: "Greater New York City Area",
	}
)

// stubSearch answers level-specific queries with fixed profiles and counts
// every call.
func stubSearch(calls *atomic.Int64) search.Searcher {
	return search.Func(func(_ context.Context, q string) ([]domain.RawResult, error) {
		calls.Add(1)
		switch {
		case strings.Contains(q, `("Analyst")`):
			return []domain.RawResult{jane, janeDup, bob}, nil
		case strings.Contains(q, `("Associate")`):
			return []domain.RawResult{john}, nil
		}
		return nil, nil
	})
}

func stubFinder() email.Finder {
	return email.Func(func(_ context.Context, first, last, dom string) (string, error) {
		return strings.ToLower(first + "." + last + "@" + dom), nil
	})
}

func newGenerator(calls *atomic.Int64) *Generator {
	return &Generator{
		Search:  stubSearch(calls),
		Matcher: match.NewCompanyMatcher(match.DefaultMatcherConfig()),
		Mode:    rank.ModeSearch,
		Email:   stubFinder(),
	}
}

func baseFilters() domain.Filters {
	return domain.Filters{
		Companies:     []string{"Goldman Sachs"},
		Cities:        []string{"New York"},
		Keywords:      []string{"FX Sales"},
		Levels:        []domain.Level{domain.LevelAnalyst, domain.LevelAssociate},
		MaxPerCompany: 2,
	}
}

func TestGenerateEndToEnd(t *testing.T) {
	var calls atomic.Int64
	g := newGenerator(&calls)

	res, err := g.Generate(context.Background(), baseFilters(), domain.JobContext{})
	require.NoError(t, err)

	// One company x one city x one keyword x two levels.
	assert.Equal(t, 2, res.QueriesIssued)
	require.Len(t, res.Candidates, 2)

	// Analysts sort before Associates.
	first, second := res.Candidates[0], res.Candidates[1]
	assert.Equal(t, "Jane Doe", first.FullName)
	assert.Equal(t, domain.LevelAnalyst, first.Level)
	assert.Equal(t, "jane.doe@gs.com", first.Email)
	assert.Equal(t, "New York", first.City)
	assert.Equal(t, "gs.com", first.Diag.Domain)
	assert.Equal(t, "Goldman Sachs", first.Company)

	assert.Equal(t, "John Smith", second.FullName)
	assert.Equal(t, domain.LevelAssociate, second.Level)
	assert.Equal(t, "john.smith@gs.com", second.Email)

	// Bob carries a prior-role marker and never surfaces.
	for _, c := range res.Candidates {
		assert.NotEqual(t, "Bob Lee", c.FullName)
	}

	// Identity keys are pairwise distinct.
	keys := map[string]bool{}
	for _, c := range res.Candidates {
		assert.False(t, keys[c.IdentityKey()])
		keys[c.IdentityKey()] = true
	}
}

func TestGenerateDeterministic(t *testing.T) {
	var calls atomic.Int64
	g := newGenerator(&calls)
	ctx := context.Background()

	a, err := g.Generate(ctx, baseFilters(), domain.JobContext{})
	require.NoError(t, err)
	b, err := g.Generate(ctx, baseFilters(), domain.JobContext{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateGlobalDedup(t *testing.T) {
	var calls atomic.Int64
	g := newGenerator(&calls)

	// The asset-management arm normalizes to the same firm, so both targets
	// surface the same people; the merge keeps each person once.
	f := baseFilters()
	f.Companies = []string{"Goldman Sachs", "Goldman Sachs Asset Management"}

	res, err := g.Generate(context.Background(), f, domain.JobContext{})
	require.NoError(t, err)
	assert.Equal(t, 4, res.QueriesIssued)
	require.Len(t, res.Candidates, 2)
	assert.Equal(t, "Jane Doe", res.Candidates[0].FullName)
	assert.Equal(t, "John Smith", res.Candidates[1].FullName)
}

func TestGenerateDegenerateInputs(t *testing.T) {
	var calls atomic.Int64
	g := newGenerator(&calls)
	ctx := context.Background()

	t.Run("no companies and no job context", func(t *testing.T) {
		f := baseFilters()
		f.Companies = nil
		res, err := g.Generate(ctx, f, domain.JobContext{})
		require.NoError(t, err)
		assert.Empty(t, res.Candidates)
		assert.Zero(t, res.QueriesIssued)
	})

	t.Run("job context supplies the company", func(t *testing.T) {
		f := baseFilters()
		f.Companies = nil
		res, err := g.Generate(ctx, f, domain.JobContext{TargetCompany: "Goldman Sachs"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Candidates)
	})

	t.Run("zero max per company", func(t *testing.T) {
		f := baseFilters()
		f.MaxPerCompany = 0
		res, err := g.Generate(ctx, f, domain.JobContext{})
		require.NoError(t, err)
		assert.Empty(t, res.Candidates)
	})

	t.Run("no keywords anywhere", func(t *testing.T) {
		f := baseFilters()
		f.Keywords = nil
		res, err := g.Generate(ctx, f, domain.JobContext{})
		require.NoError(t, err)
		assert.Empty(t, res.Candidates)
	})
}

func TestGenerateSkipsFailedQueries(t *testing.T) {
	var calls atomic.Int64
	g := newGenerator(&calls)
	g.Search = search.Func(func(_ context.Context, q string) ([]domain.RawResult, error) {
		calls.Add(1)
		if strings.Contains(q, `("Associate")`) {
			return nil, errors.New("rate limited")
		}
		return []domain.RawResult{jane}, nil
	})

	res, err := g.Generate(context.Background(), baseFilters(), domain.JobContext{})
	require.NoError(t, err)

	// The failed query thins its own combination only; the succeeding
	// Analyst query's rows survive and both calls count as issued.
	assert.Equal(t, 2, res.QueriesIssued)
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "Jane Doe", res.Candidates[0].FullName)
}

func TestGenerateCityDefaultsFromJobContext(t *testing.T) {
	var issued []string
	var calls atomic.Int64
	g := newGenerator(&calls)
	inner := stubSearch(&calls)
	g.Search = search.Func(func(ctx context.Context, q string) ([]domain.RawResult, error) {
		issued = append(issued, q)
		return inner.Search(ctx, q)
	})

	f := baseFilters()
	f.Cities = nil
	res, err := g.Generate(context.Background(), f, domain.JobContext{City: "New York"})
	require.NoError(t, err)

	require.NotEmpty(t, issued)
	for _, q := range issued {
		assert.Contains(t, q, `"New York"`)
	}
	require.NotEmpty(t, res.Candidates)
	assert.Contains(t, res.Candidates[0].Reasons, "city: New York")
}

func TestGatherCapCountsRawResults(t *testing.T) {
	junk := domain.RawResult{
		Title: "Goldman Sachs Careers",
		URL:   "https://www.linkedin.com/in/someone",
	}
	var calls atomic.Int64
	g := newGenerator(&calls)
	g.Search = search.Func(func(_ context.Context, _ string) ([]domain.RawResult, error) {
		calls.Add(1)
		out := make([]domain.RawResult, 6)
		for i := range out {
			out[i] = junk
		}
		return out, nil
	})

	// Cap is MaxPerCompany x 6 raw results; six unparseable hits exhaust it
	// on the first query even though nothing survives.
	f := baseFilters()
	f.MaxPerCompany = 1
	res, err := g.Generate(context.Background(), f, domain.JobContext{})
	require.NoError(t, err)
	assert.Empty(t, res.Candidates)
	assert.Equal(t, 1, res.QueriesIssued)
}

func TestSnippetPriorRoleWarningSurfaces(t *testing.T) {
	flagged := jane
	flagged.Snippet = "New York, United States · Previously at Citadel"

	var calls atomic.Int64
	g := newGenerator(&calls)
	g.Search = search.Func(func(_ context.Context, q string) ([]domain.RawResult, error) {
		if strings.Contains(q, `("Analyst")`) {
			return []domain.RawResult{flagged}, nil
		}
		return nil, nil
	})

	res, err := g.Generate(context.Background(), baseFilters(), domain.JobContext{})
	require.NoError(t, err)
	require.Len(t, res.Candidates, 1)

	c := res.Candidates[0]
	assert.Equal(t, "current role at Goldman Sachs", c.Reasons[0])
	assert.Contains(t, c.Reasons, "warning: prior-role wording in snippet")
	assert.LessOrEqual(t, len(c.Reasons), 4)
}

func TestGenerateWithoutFinder(t *testing.T) {
	var calls atomic.Int64
	g := newGenerator(&calls)
	g.Email = nil

	res, err := g.Generate(context.Background(), baseFilters(), domain.JobContext{})
	require.NoError(t, err)
	require.NotEmpty(t, res.Candidates)
	for _, c := range res.Candidates {
		assert.Equal(t, domain.EmailUnknown, c.Email)
	}
}

type memCache struct {
	m map[string]string
}

func (c *memCache) GetCompanyDomain(_ context.Context, company string) (string, error) {
	return c.m[strings.ToLower(company)], nil
}

func (c *memCache) PutCompanyDomain(_ context.Context, company, dom string) error {
	c.m[strings.ToLower(company)] = dom
	return nil
}

type stubDiscover struct {
	calls int
	dom   string
}

func (d *stubDiscover) FindCompanyDomain(context.Context, string) (string, error) {
	d.calls++
	return d.dom, nil
}

func TestResolveDomainFallbackChain(t *testing.T) {
	g := &Generator{Matcher: match.NewCompanyMatcher(match.DefaultMatcherConfig())}
	ctx := context.Background()

	t.Run("directory hit", func(t *testing.T) {
		assert.Equal(t, "gs.com", g.resolveDomain(ctx, "Goldman Sachs", "Goldman Sachs"))
	})

	t.Run("cache hit skips discovery", func(t *testing.T) {
		disc := &stubDiscover{dom: "wrong.com"}
		g := &Generator{
			Matcher:  match.NewCompanyMatcher(match.DefaultMatcherConfig()),
			Cache:    &memCache{m: map[string]string{"hooli": "hooli.com"}},
			Discover: disc,
		}
		assert.Equal(t, "hooli.com", g.resolveDomain(ctx, "Hooli", "Hooli"))
		assert.Zero(t, disc.calls)
	})

	t.Run("discovery writes back", func(t *testing.T) {
		cache := &memCache{m: map[string]string{}}
		disc := &stubDiscover{dom: "piedpiper.com"}
		g := &Generator{
			Matcher:  match.NewCompanyMatcher(match.DefaultMatcherConfig()),
			Cache:    cache,
			Discover: disc,
		}
		assert.Equal(t, "piedpiper.com", g.resolveDomain(ctx, "Pied Piper", "Pied Piper"))
		assert.Equal(t, "piedpiper.com", cache.m["pied piper"])
	})

	t.Run("nothing resolves", func(t *testing.T) {
		assert.Empty(t, g.resolveDomain(ctx, "Unknown Shop", "Unknown Shop"))
	})
}
