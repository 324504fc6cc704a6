// Package sources implements the external directory adapters. Each adapter
// translates one directory's query/response into raw candidate records behind
// a shared Search contract; callers select adapters through the Registry,
// never by branching on source names.
package sources

import (
	"context"
	"errors"
	"strings"

	"github.com/tzleads/contact-backend/config"
	"github.com/tzleads/contact-backend/model"
	"github.com/tzleads/contact-backend/store"
	"github.com/tzleads/contact-backend/util"
)

var logger = store.InitLogger() // setup the logger

// ErrSourceUnavailable marks a whole-source network or parse failure.
// Callers degrade to empty results for that source and continue.
var ErrSourceUnavailable = errors.New("source unavailable")

// Source is the contract every directory adapter implements
type Source interface {
	// Name returns the source identifier used for selection and provenance
	Name() string
	// Search fetches and parses listings matching the query, up to q.Limit
	Search(ctx context.Context, q model.Query) ([]model.RawRecord, error)
}

// Registry holds the configured adapters and resolves service selectors
type Registry struct {
	sources map[string]Source
	enabled []string
	seed    *SeedDatabase
}

// NewRegistry builds all adapters from the configuration. The seed database
// is registered for explicit selection but is never part of the enabled set;
// it only participates when opted into (see Seed).
func NewRegistry(cfg config.Config) *Registry {
	filter := newRecordFilter(cfg)
	seed := NewSeedDatabase()

	all := []Source{
		NewYellowPages(cfg, filter),
		NewGoogleMaps(cfg, filter),
		NewFacebookPages(cfg, filter),
		NewEducationPortal(cfg, filter),
		NewBrela(cfg, filter),
		seed,
	}

	r := &Registry{sources: make(map[string]Source), seed: seed}
	for _, src := range all {
		r.Register(src, false)
	}
	for _, name := range cfg.EnabledSources {
		if name == seed.Name() {
			continue // seed participates by opt-in only, never via the enabled set
		}
		src, ok := r.sources[name]
		if !ok {
			logger.Warn("Unknown source in enabled_sources: " + name)
			continue
		}
		r.Register(src, true)
	}

	return r
}

// Register adds an adapter to the registry. Enabled adapters participate in
// "all" resolution; others are reachable by name only.
func (r *Registry) Register(src Source, enabled bool) {
	r.sources[src.Name()] = src
	if enabled {
		r.enabled = util.AppendUnique(r.enabled, src.Name())
	}
}

// Seed exposes the built-in seed database for explicit opt-in fallback use
func (r *Registry) Seed() *SeedDatabase { return r.seed }

// Resolve maps a service selector to concrete adapters: a single source name,
// a comma-separated list, or "all"/"" for every enabled source. Unknown
// selectors fall back to the enabled set. The seed database is returned only
// when named explicitly.
func (r *Registry) Resolve(selector string) []Source {
	selector = strings.TrimSpace(selector)
	if selector == "" || selector == "all" {
		return r.enabledSources()
	}

	var out []Source
	for _, part := range strings.Split(selector, ",") {
		if src, ok := r.sources[strings.TrimSpace(part)]; ok {
			out = append(out, src)
		}
	}
	if len(out) == 0 {
		return r.enabledSources()
	}
	return out
}

func (r *Registry) enabledSources() []Source {
	out := make([]Source, 0, len(r.enabled))
	for _, name := range r.enabled {
		out = append(out, r.sources[name])
	}
	return out
}

// recordFilter applies the name-quality rules that keep real organization
// names and reject navigation text and boilerplate scraped off a page.
type recordFilter struct {
	minLength int
	maxWords  int
	blacklist []string
}

func newRecordFilter(cfg config.Config) recordFilter {
	return recordFilter{
		minLength: cfg.NameMinLength,
		maxWords:  cfg.NameMaxWords,
		blacklist: cfg.NameBlacklist,
	}
}

var schoolKeywords = []string{"school", "academy", "shule", "primary", "secondary", "college", "institute"}

// acceptName reports whether a scraped name looks like a real organization
func (f recordFilter) acceptName(name string, orgType model.OrgType) bool {
	cleaned := util.CollapseWhitespace(name)
	if len(cleaned) < f.minLength {
		return false
	}
	if len(strings.Fields(cleaned)) > f.maxWords {
		return false
	}

	lower := strings.ToLower(cleaned)
	for _, term := range f.blacklist {
		if strings.Contains(lower, term) {
			return false
		}
	}

	if orgType == model.TypeSchool {
		for _, keyword := range schoolKeywords {
			if strings.Contains(lower, keyword) {
				return true
			}
		}
		return false
	}

	return true
}
