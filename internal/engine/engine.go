// Package engine orchestrates one generation run: query fan-out, parsing,
// verification, classification, enrichment, scoring, and quota selection.
package engine

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"outreach-engine/internal/domain"
	"outreach-engine/internal/email"
	"outreach-engine/internal/keywords"
	"outreach-engine/internal/match"
	"outreach-engine/internal/parse"
	"outreach-engine/internal/query"
	"outreach-engine/internal/quota"
	"outreach-engine/internal/rank"
	"outreach-engine/internal/search"
)

// DomainCache persists company -> website domain resolutions across runs.
type DomainCache interface {
	GetCompanyDomain(ctx context.Context, company string) (string, error)
	PutCompanyDomain(ctx context.Context, company, domain string) error
}

// DomainDiscoverer finds a company's website domain when the built-in
// directory has no answer. "" means not found; failures are soft.
type DomainDiscoverer interface {
	FindCompanyDomain(ctx context.Context, company string) (string, error)
}

// Generator wires the collaborators for Generate. Search and Matcher are
// required; everything else degrades gracefully when nil.
type Generator struct {
	Search   search.Searcher
	Matcher  *match.CompanyMatcher
	Mode     rank.Mode
	Email    email.Finder     // nil: candidates ship without addresses
	Cache    DomainCache      // nil: no cross-run domain memory
	Discover DomainDiscoverer // nil: directory-only domain resolution
	Log      *zap.Logger

	// Concurrency bounds the company fan-out; defaults to 4.
	Concurrency int
}

// Generate runs one discovery pass over the filters. Collaborator outages
// surface as thinner results, not errors; the only error paths are context
// cancellation and programmer mistakes.
func (g *Generator) Generate(ctx context.Context, f domain.Filters, jc domain.JobContext) (domain.EngineResult, error) {
	companies := trimmed(f.Companies)
	if len(companies) == 0 && strings.TrimSpace(jc.TargetCompany) != "" {
		companies = []string{strings.TrimSpace(jc.TargetCompany)}
	}
	if len(trimmed(f.Cities)) == 0 && strings.TrimSpace(jc.City) != "" {
		f.Cities = []string{strings.TrimSpace(jc.City)}
	}
	kws := keywords.Assemble(f, jc)
	if len(companies) == 0 || len(kws) == 0 || f.MaxPerCompany <= 0 {
		return domain.EngineResult{}, nil
	}
	levels := f.SelectedLevels()

	type companyOut struct {
		picked  []domain.Candidate
		queries int
	}
	outs := make([]companyOut, len(companies))

	eg, gctx := errgroup.WithContext(ctx)
	limit := g.Concurrency
	if limit <= 0 {
		limit = 4
	}
	eg.SetLimit(limit)

	for i, company := range companies {
		eg.Go(func() error {
			pool, queries, err := g.gatherCompany(gctx, company, f, kws, levels)
			if err != nil {
				return err
			}
			outs[i] = companyOut{
				picked:  quota.Select(pool, levels, f.MaxPerCompany),
				queries: queries,
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return domain.EngineResult{}, err
	}

	// Merge in company priority order, re-deduplicating globally: the same
	// person can surface under two target companies.
	var merged []domain.Candidate
	seen := make(map[string]bool)
	total := 0
	for _, out := range outs {
		total += out.queries
		for _, c := range out.picked {
			k := c.IdentityKey()
			if seen[k] {
				continue
			}
			seen[k] = true
			merged = append(merged, c)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		pi, pj := domain.PriorityIndex(merged[i].Level), domain.PriorityIndex(merged[j].Level)
		if pi != pj {
			return pi < pj
		}
		if merged[i].FitScore != merged[j].FitScore {
			return merged[i].FitScore > merged[j].FitScore
		}
		if merged[i].Company != merged[j].Company {
			return merged[i].Company < merged[j].Company
		}
		return merged[i].FullName < merged[j].FullName
	})

	return domain.EngineResult{Candidates: merged, QueriesIssued: total}, nil
}

// gatherCompany walks the query cross-product for one company, collecting
// verified candidates until f.GatherLimit() raw results have been consumed.
func (g *Generator) gatherCompany(ctx context.Context, company string, f domain.Filters, kws []string, levels []domain.Level) ([]domain.Candidate, int, error) {
	specs := query.Build(company, trimmed(f.Cities), kws, levels)
	gatherLimit := f.GatherLimit()
	verifier := &rank.Verifier{Matcher: g.Matcher, Mode: g.Mode}
	jobKeywords := append([]string(nil), f.Keywords...)

	// Queries use the assembled phrases; scoring matches against the expanded
	// variants so "FX Sales Trader" still credits an "FX Sales" campaign.
	var scoreKws []string
	seenKw := make(map[string]bool)
	for _, kw := range kws {
		for _, v := range keywords.Expand(kw) {
			if key := strings.ToLower(v); !seenKw[key] {
				seenKw[key] = true
				scoreKws = append(scoreKws, v)
			}
		}
	}

	var pool []domain.Candidate
	seen := make(map[string]bool)
	queries, raw := 0, 0

	for _, spec := range specs {
		if raw >= gatherLimit {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, queries, err
		}

		results, err := g.Search.Search(ctx, spec.Query)
		queries++
		if err != nil {
			// One bad query only thins this combination's pool; the run
			// aborts solely on cancellation.
			if ctx.Err() != nil {
				return nil, queries, ctx.Err()
			}
			g.log().Warn("query failed, skipping",
				zap.String("company", company), zap.Error(err))
			continue
		}

		for _, r := range results {
			// The cap bounds raw results collected, not survivors, so a
			// high-rejection company cannot blow the call budget.
			if raw >= gatherLimit {
				break
			}
			raw++
			c, ok := g.buildCandidate(ctx, r, spec, company, f, scoreKws, jobKeywords, levels, verifier)
			if !ok {
				continue
			}
			k := c.IdentityKey()
			if seen[k] {
				continue
			}
			seen[k] = true
			pool = append(pool, c)
		}
	}

	g.log().Debug("company gathered",
		zap.String("company", company),
		zap.Int("pool", len(pool)),
		zap.Int("queries", queries))
	return pool, queries, nil
}

// buildCandidate turns one raw search hit into a scored Candidate, or rejects
// it.
func (g *Generator) buildCandidate(ctx context.Context, r domain.RawResult, spec query.Spec, company string, f domain.Filters, kws, jobKeywords []string, levels []domain.Level, verifier *rank.Verifier) (domain.Candidate, bool) {
	nameRaw, roleText := parse.ParseTitle(r.Title)
	if nameRaw == "" || roleText == "" {
		return domain.Candidate{}, false
	}
	full, first, last := parse.CleanFullName(nameRaw)
	if full == "" || first == "" {
		return domain.Candidate{}, false
	}

	verdict := verifier.Verify(roleText, company, r.Snippet)
	if !verdict.OK {
		g.log().Debug("rejected",
			zap.String("name", full),
			zap.Strings("reasons", verdict.Reasons))
		return domain.Candidate{}, false
	}
	priorRoleWarning := false
	for _, reason := range verdict.Reasons {
		if strings.HasPrefix(reason, "warning:") {
			priorRoleWarning = true
		}
	}

	level := rank.DetectLevel(roleText)
	city := parse.ExtractCity(r.Snippet)
	school := parse.ExtractSchool(r.Snippet)

	emailDomain := g.resolveDomain(ctx, company, verdict.Company)
	addr := domain.EmailUnknown
	if emailDomain != "" && g.Email != nil {
		if found, err := g.Email.FindEmail(ctx, first, last, emailDomain); err == nil && found != "" {
			addr = found
		}
	}

	res := rank.Score(rank.Input{
		Title:          roleText,
		City:           city,
		School:         matchedSchool(school, f.Schools),
		Email:          addr,
		Level:          level,
		Company:        verdict.Company,
		CompanyMatched: true,
		CurrentRole:    !priorRoleWarning,
		TargetCities:   f.Cities,
		TargetLevels:   levels,
		Keywords:       kws,
		JobKeywords:    jobKeywords,
	})

	return domain.Candidate{
		FullName:  full,
		FirstName: first,
		LastName:  last,
		Title:     roleText,
		Company:   verdict.Company,
		City:      city,
		School:    school,
		SourceURL: r.URL,
		Email:     addr,
		FitScore:  res.Score,
		Reasons:   mergeReasons(verdict.Reasons, res.Reasons),
		Level:     level,
		Query:     spec.Query,
		Diag: domain.MatchDiag{
			ResolvedCompany: verdict.Company,
			Domain:          emailDomain,
			BestKeyword:     res.BestKeyword,
			KeywordScore:    res.KeywordScore,
		},
	}, true
}

// resolveDomain walks directory -> cache -> discovery, writing back any
// discovered domain. Every step is soft.
func (g *Generator) resolveDomain(ctx context.Context, company, resolved string) string {
	if d, ok := g.Matcher.ResolveDomain(resolved, company); ok {
		return d
	}
	if g.Cache != nil {
		if d, err := g.Cache.GetCompanyDomain(ctx, company); err == nil && d != "" {
			return d
		}
	}
	if g.Discover == nil {
		return ""
	}
	d, err := g.Discover.FindCompanyDomain(ctx, company)
	if err != nil || d == "" {
		return ""
	}
	if g.Cache != nil {
		_ = g.Cache.PutCompanyDomain(ctx, company, d)
	}
	return d
}

// matchedSchool reports the extracted school only when it aligns with a
// target school; the scorer treats "" as no match.
func matchedSchool(school string, targets []string) string {
	ns := match.Normalize(school)
	if ns == "" {
		return ""
	}
	for _, t := range targets {
		nt := match.Normalize(t)
		if nt == "" {
			continue
		}
		if strings.Contains(ns, nt) || strings.Contains(nt, ns) {
			return school
		}
	}
	return ""
}

const maxReasons = 4

// mergeReasons keeps the verifier's acceptance trail (including any snippet
// prior-role warning) ahead of the scorer's reasons, deduplicated and capped.
func mergeReasons(verdict, score []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range append(append([]string(nil), verdict...), score...) {
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
		if len(out) == maxReasons {
			break
		}
	}
	return out
}

func trimmed(xs []string) []string {
	var out []string
	for _, x := range xs {
		if x = strings.TrimSpace(x); x != "" {
			out = append(out, x)
		}
	}
	return out
}

func (g *Generator) log() *zap.Logger {
	if g.Log != nil {
		return g.Log
	}
	return zap.NewNop()
}
