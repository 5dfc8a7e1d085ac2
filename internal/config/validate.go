package config

import (
	"fmt"
	"strings"

	"outreach-engine/internal/domain"
	"outreach-engine/internal/rank"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a cleaned copy plus everything worth telling
// the user before a run starts.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	// Normalize common lists
	out.Defaults.Companies = trimList(out.Defaults.Companies)
	out.Defaults.Cities = trimList(out.Defaults.Cities)
	out.Defaults.Schools = trimList(out.Defaults.Schools)
	out.Defaults.Levels = trimList(out.Defaults.Levels)
	out.Defaults.Keywords = trimList(out.Defaults.Keywords)
	out.Keywords.FrontOffice = trimList(out.Keywords.FrontOffice)
	out.Keywords.HR = trimList(out.Keywords.HR)

	// ---- Validation rules ----

	switch strings.ToLower(strings.TrimSpace(out.Search.Provider)) {
	case "", "serpapi", "ddg":
	default:
		res.addErr("search.provider must be serpapi or ddg, got %q", out.Search.Provider)
	}
	if out.Search.PageSize < 0 || out.Search.PageSize > 100 {
		res.addErr("search.page_size must be 0..100")
	}

	if out.Defaults.MaxPerCompany < 0 {
		res.addErr("defaults.max_per_company must be >= 0")
	} else if out.Defaults.MaxPerCompany > 50 {
		res.addWarn("defaults.max_per_company is very high (%d); expect long runs.", out.Defaults.MaxPerCompany)
	}

	switch strings.ToLower(strings.TrimSpace(out.Defaults.Precision)) {
	case "", string(rank.ModeStrict), string(rank.ModeBalanced), string(rank.ModeSearch):
	default:
		res.addWarn("defaults.precision %q is unknown; falling back to %q.", out.Defaults.Precision, rank.ModeSearch)
	}

	for _, l := range out.Defaults.Levels {
		if domain.ParseLevel(l) == domain.LevelUnknown {
			res.addWarn("defaults.levels contains unrecognized level %q; it is ignored.", l)
		}
	}

	for company, dom := range out.Directory {
		if strings.TrimSpace(company) == "" || strings.TrimSpace(dom) == "" {
			res.addErr("directory entries need both a company name and a domain")
		}
		if strings.Contains(dom, "://") || strings.Contains(dom, "/") {
			res.addWarn("directory[%q] looks like a URL, expected a bare domain: %q", company, dom)
		}
	}

	return out, res
}
