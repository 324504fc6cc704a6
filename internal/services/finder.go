// Package services provides the research orchestrator that drives source
// adapters, merges their results into the store and runs enrichment passes.
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/tzleads/contact-backend/config"
	"github.com/tzleads/contact-backend/export"
	"github.com/tzleads/contact-backend/model"
	"github.com/tzleads/contact-backend/sources"
	"github.com/tzleads/contact-backend/store"
	"github.com/tzleads/contact-backend/util"
)

var logger = store.InitLogger() // setup the logger

// researchLimit bounds per-source results when enriching one organization
const researchLimit = 5

// matchThreshold is the minimum name similarity for research enrichment
const matchThreshold = 0.6

// ContactFinder orchestrates searches and research over the shared store
type ContactFinder struct {
	cfg      config.Config
	store    *store.Store
	registry *sources.Registry
	verifier *sources.WebsiteVerifier
}

// NewContactFinder wires the orchestrator. The website verifier is only
// constructed when verification is opted into.
func NewContactFinder(cfg config.Config, st *store.Store, registry *sources.Registry) *ContactFinder {
	f := &ContactFinder{cfg: cfg, store: st, registry: registry}
	if cfg.VerifyWebsites {
		f.verifier = sources.NewWebsiteVerifier(cfg)
	}
	return f
}

// Search queries the selected sources and merges every accepted record into
// the store. A failing source degrades to empty results for that source; the
// outcome slice reports per-source success/skip/failure counts.
func (f *ContactFinder) Search(ctx context.Context, q model.Query, service string) ([]model.SourceOutcome, error) {
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", q.Limit)
	}
	if q.Location == "" {
		q.Location = f.cfg.DefaultLocation
	}

	var outcomes []model.SourceOutcome
	for _, src := range f.registry.Resolve(service) {
		outcomes = append(outcomes, f.runSource(ctx, src, q))
	}

	// The seed database joins a search only when explicitly opted into, and
	// always under its own provenance tag.
	seed := f.registry.Seed()
	if f.cfg.UseFallbackDB && q.Type == model.TypeSchool && !ranSeed(outcomes, seed.Name()) {
		outcomes = append(outcomes, f.runSource(ctx, seed, q))
	}

	if f.verifier != nil {
		f.verifyWebsites(ctx, q.Location)
	}

	return outcomes, nil
}

func ranSeed(outcomes []model.SourceOutcome, seedName string) bool {
	for _, o := range outcomes {
		if o.Source == seedName {
			return true
		}
	}
	return false
}

// runSource executes one adapter search and folds its records into the store
func (f *ContactFinder) runSource(ctx context.Context, src sources.Source, q model.Query) model.SourceOutcome {
	outcome := model.SourceOutcome{Source: src.Name()}

	records, err := src.Search(ctx, q)
	if err != nil {
		logger.Warn("Source search failed", zap.String("source", src.Name()), zap.Error(err))
		outcome.Failed = true
		return outcome
	}

	outcome.Records = len(records)
	for _, rec := range records {
		if _, err := f.store.Upsert(rec); err != nil {
			logger.Debug("Skipping record", zap.String("source", src.Name()), zap.Error(err))
			outcome.Skipped++
			continue
		}
		outcome.Merged++
	}

	return outcome
}

// Research re-queries the selected sources for every organization below
// Tier A, using its name and known location, and merges the best-matching
// result. Populated fields are never regressed; re-running is idempotent.
func (f *ContactFinder) Research(ctx context.Context, service string) ([]model.SourceOutcome, error) {
	bySource := make(map[string]*model.SourceOutcome)
	outcome := func(name string) *model.SourceOutcome {
		if _, ok := bySource[name]; !ok {
			bySource[name] = &model.SourceOutcome{Source: name}
		}
		return bySource[name]
	}

	for _, org := range f.store.Snapshot() {
		if org.Tier == model.TierA {
			continue
		}

		location := org.Address
		if location == "" {
			location = f.cfg.DefaultLocation
		}
		q := model.Query{
			Type:     org.Type,
			Location: location,
			Keywords: []string{org.Name},
			Limit:    researchLimit,
		}

		// producers tracks which adapter yielded each candidate, so merge and
		// skip counts land under the adapter name, not the provenance tag.
		var candidates []model.RawRecord
		var producers []string
		for _, src := range f.registry.Resolve(service) {
			records, err := src.Search(ctx, q)
			if err != nil {
				logger.Warn("Research source failed", zap.String("source", src.Name()),
					zap.String("organization", org.Name), zap.Error(err))
				outcome(src.Name()).Failed = true
				continue
			}
			outcome(src.Name()).Records += len(records)
			candidates = append(candidates, records...)
			for range records {
				producers = append(producers, src.Name())
			}
		}

		if i, ok := bestMatch(org.Name, candidates); ok {
			// Re-key onto the existing identity so the merge enriches this
			// organization instead of inserting the candidate's variant name.
			best := candidates[i]
			best.Name = org.Name
			if _, err := f.store.Upsert(best); err == nil {
				outcome(producers[i]).Merged++
			} else {
				outcome(producers[i]).Skipped++
			}
		}

		if f.cfg.UseFallbackDB && org.Type == model.TypeSchool {
			if rec, ok := f.registry.Seed().Lookup(org.Name); ok {
				rec.Name = org.Name
				if _, err := f.store.Upsert(rec); err == nil {
					outcome(f.registry.Seed().Name()).Merged++
				} else {
					outcome(f.registry.Seed().Name()).Skipped++
				}
			}
		}
	}

	if f.verifier != nil {
		f.verifyWebsites(ctx, f.cfg.DefaultLocation)
	}

	outcomes := make([]model.SourceOutcome, 0, len(bySource))
	for _, o := range bySource {
		outcomes = append(outcomes, *o)
	}
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Source < outcomes[j].Source })
	return outcomes, nil
}

// verifyWebsites looks up official websites for organizations without one
func (f *ContactFinder) verifyWebsites(ctx context.Context, location string) {
	for _, org := range f.store.Snapshot() {
		if org.WebsiteURL != "" {
			continue
		}

		website, ok := f.verifier.FirstResult(ctx, org.Name+" "+location+" website")
		if !ok {
			continue
		}

		rec := model.RawRecord{Name: org.Name, WebsiteURL: website, Source: "Website Verification"}
		if _, err := f.store.Upsert(rec); err != nil {
			logger.Debug("Website verification merge failed", zap.String("organization", org.Name), zap.Error(err))
		}
	}
}

// Load replaces the dataset with organizations from a CSV file
func (f *ContactFinder) Load(path string) (int, error) {
	orgs, err := export.LoadCSV(path)
	if err != nil {
		return 0, err
	}
	return f.store.Load(orgs), nil
}

// Export serializes a filtered snapshot to the given format: csv, json or report
func (f *ContactFinder) Export(path, format string, filters ...export.Filter) error {
	orgs := export.Apply(f.store.Snapshot(), filters...)

	switch format {
	case "", "csv":
		return export.SaveCSV(path, orgs)
	case "json":
		return export.SaveJSON(path, orgs, f.store.Stats())
	case "report":
		return export.SaveReport(path, orgs, f.store.Stats())
	default:
		return fmt.Errorf("%w: unknown format %q", export.ErrExportFailed, format)
	}
}

// Stats returns the current dataset summary
func (f *ContactFinder) Stats() model.Stats { return f.store.Stats() }

// Organizations returns a snapshot of the dataset
func (f *ContactFinder) Organizations() []model.Organization { return f.store.Snapshot() }

// bestMatch returns the index of the candidate whose name is most similar to
// the target: substring containment scores 0.95, anything else the
// edit-distance ratio. Candidates below the threshold never enrich an
// organization.
func bestMatch(target string, candidates []model.RawRecord) (int, bool) {
	targetKey := util.IdentityKey(target)

	best := -1
	bestScore := 0.0
	for i, c := range candidates {
		key := util.IdentityKey(c.Name)
		if key == "" {
			continue
		}

		var score float64
		if strings.Contains(targetKey, key) || strings.Contains(key, targetKey) {
			score = 0.95
		} else {
			score = similarity(targetKey, key)
		}

		if score > bestScore {
			best = i
			bestScore = score
		}
	}

	return best, best >= 0 && bestScore >= matchThreshold
}

// similarity is one minus the normalized Levenshtein distance
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

func levenshtein(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
