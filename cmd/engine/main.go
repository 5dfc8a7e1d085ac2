package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"outreach-engine/internal/config"
	"outreach-engine/internal/domain"
	"outreach-engine/internal/email"
	"outreach-engine/internal/engine"
	"outreach-engine/internal/logger"
	"outreach-engine/internal/match"
	"outreach-engine/internal/rank"
	"outreach-engine/internal/search"
	"outreach-engine/internal/secrets"
	"outreach-engine/internal/store"
)

func main() {
	var (
		cfgPath   = flag.String("config", filepath.Join("config", "config.yml"), "default config shipped with the binary")
		dataDir   = flag.String("data", "", "data dir for config, cache db, and lock (default $OUTREACH_DATA_DIR or .)")
		companies = flag.String("companies", "", "comma-separated target companies, highest priority first")
		cities    = flag.String("cities", "", "comma-separated target cities")
		kws       = flag.String("keywords", "", "comma-separated keyword phrases")
		levels    = flag.String("levels", "", "comma-separated seniority levels (Analyst..MD)")
		schools   = flag.String("schools", "", "comma-separated target schools")
		maxPer    = flag.Int("max", 0, "max candidates per company (overrides config)")
		mode      = flag.String("mode", "", "verification precision: strict, balanced, or search")
		asJSON    = flag.Bool("json", false, "emit JSON instead of a table")
		debug     = flag.Bool("debug", false, "debug logging")
	)
	flag.Parse()

	log, err := logger.New(*asJSON, *debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if *dataDir == "" {
		*dataDir = os.Getenv("OUTREACH_DATA_DIR")
	}
	if *dataDir == "" {
		*dataDir = "."
	}

	userCfgPath, err := config.EnsureUserConfig(*dataDir, *cfgPath)
	if err != nil {
		log.Fatal("config bootstrap failed", zap.Error(err))
	}
	cfg, err := config.Load(userCfgPath)
	if err != nil {
		log.Fatal("config load failed", zap.String("path", userCfgPath), zap.Error(err))
	}
	if err := config.OverlayDirectory(&cfg, filepath.Join(*dataDir, "directory.yml")); err != nil {
		log.Fatal("directory overlay failed", zap.Error(err))
	}
	cfg, validation := config.NormalizeAndValidate(cfg)
	for _, w := range validation.Warnings {
		log.Warn(w)
	}
	if !validation.OK() {
		for _, e := range validation.Errors {
			log.Error(e)
		}
		os.Exit(1)
	}

	// One writer per data dir: config seeding and the sqlite cache must not
	// race a concurrent run.
	lock := flock.New(filepath.Join(*dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatal("lock failed", zap.Error(err))
	}
	if !locked {
		log.Fatal("another run holds the data dir", zap.String("dir", *dataDir))
	}
	defer func() { _ = lock.Unlock() }()

	db, err := store.Open(filepath.Join(*dataDir, "outreach.db"))
	if err != nil {
		log.Fatal("cache db open failed", zap.Error(err))
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		log.Fatal("cache db migrate failed", zap.Error(err))
	}

	f := cfg.Filters()
	overlayList(&f.Companies, *companies)
	overlayList(&f.Cities, *cities)
	overlayList(&f.Keywords, *kws)
	overlayList(&f.Schools, *schools)
	if *levels != "" {
		f.Levels = nil
		for _, s := range splitList(*levels) {
			if l := domain.ParseLevel(s); l != domain.LevelUnknown {
				f.Levels = append(f.Levels, l)
			} else {
				log.Warn("ignoring unrecognized level", zap.String("level", s))
			}
		}
	}
	if *maxPer > 0 {
		f.MaxPerCompany = *maxPer
	}
	if f.MaxPerCompany <= 0 {
		f.MaxPerCompany = 5
	}

	precision := cfg.Defaults.Precision
	if *mode != "" {
		precision = *mode
	}

	gen := buildGenerator(cfg, db, rank.ParseMode(precision), log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	started := time.Now()
	res, err := gen.Generate(ctx, f, domain.JobContext{})
	if err != nil {
		log.Fatal("generation failed", zap.Error(err))
	}
	log.Info("generation finished",
		zap.Int("candidates", len(res.Candidates)),
		zap.Int("queries", res.QueriesIssued),
		zap.Duration("took", time.Since(started)))

	if *asJSON {
		printJSON(res)
		return
	}
	printTable(res)
}

// buildGenerator wires the collaborators: SerpAPI when a credential exists,
// the keyless DuckDuckGo client otherwise, and domain discovery always
// through DuckDuckGo.
func buildGenerator(cfg config.Config, db *store.DB, mode rank.Mode, log *zap.Logger) *engine.Generator {
	ddg := search.NewDDGClient(log)

	var searcher search.Searcher = ddg
	serpKey := secrets.SearchAPIKey()
	provider := strings.ToLower(cfg.Search.Provider)
	if serpKey != "" && provider != "ddg" {
		serp := search.NewSerpClient(serpKey, log)
		if cfg.Search.PageSize > 0 {
			serp.PageSize = cfg.Search.PageSize
		}
		searcher = serp
	} else if provider == "serpapi" && serpKey == "" {
		log.Warn("serpapi selected but no credential found; falling back to ddg")
	}

	var finder email.Finder
	if key := secrets.EmailAPIKey(); key != "" {
		finder = email.NewHunterClient(key, db, log)
	} else {
		log.Warn("no email-finder credential; candidates will ship without addresses")
	}

	matcherCfg := match.DefaultMatcherConfig()
	for company, dom := range cfg.Directory {
		matcherCfg.Directory[strings.ToLower(strings.TrimSpace(company))] = dom
	}

	return &engine.Generator{
		Search:   searcher,
		Matcher:  match.NewCompanyMatcher(matcherCfg),
		Mode:     mode,
		Email:    finder,
		Cache:    db,
		Discover: ddg,
		Log:      log,
	}
}

func overlayList(dst *[]string, flagVal string) {
	if flagVal != "" {
		*dst = splitList(flagVal)
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printJSON(res domain.EngineResult) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(res)
}

func printTable(res domain.EngineResult) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SCORE\tLEVEL\tNAME\tTITLE\tCOMPANY\tCITY\tEMAIL")
	for _, c := range res.Candidates {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.FitScore, c.Level, c.FullName, c.Title, c.Company, c.City, c.Email)
	}
	_ = w.Flush()
	fmt.Printf("\n%d candidates from %d queries\n", len(res.Candidates), res.QueriesIssued)
}
