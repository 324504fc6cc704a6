package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tzleads/contact-backend/config"
	"github.com/tzleads/contact-backend/export"
	"github.com/tzleads/contact-backend/model"
	"github.com/tzleads/contact-backend/sources"
	"github.com/tzleads/contact-backend/store"
)

type stubSource struct {
	name string
	recs []model.RawRecord
	err  error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Search(context.Context, model.Query) ([]model.RawRecord, error) {
	return s.recs, s.err
}

type FinderSuite struct {
	suite.Suite
	cfg      config.Config
	store    *store.Store
	registry *sources.Registry
	finder   *ContactFinder
}

func (s *FinderSuite) SetupTest() {
	s.cfg = config.Default()
	s.cfg.EnabledSources = nil
	s.rebuild()
}

// rebuild rewires the finder after cfg changes made inside a test
func (s *FinderSuite) rebuild() {
	s.store = store.New()
	s.registry = sources.NewRegistry(s.cfg)
	s.finder = NewContactFinder(s.cfg, s.store, s.registry)
}

func TestFinderSuite(t *testing.T) {
	suite.Run(t, new(FinderSuite))
}

// TestSearchMergesRecords verifies records flow from an adapter through
// dedup into the store, with skip counts for malformed ones.
func (s *FinderSuite) TestSearchMergesRecords() {
	stub := &stubSource{name: "stub", recs: []model.RawRecord{
		{Name: "Tusiime Schools", Type: model.TypeSchool, Phone: "0754 123 456", Source: "stub"},
		{Name: "tusiime schools", Type: model.TypeSchool, Email: "info@tusiime.ac.tz", Source: "stub"},
		{Name: "", Phone: "0754 999 999", Source: "stub"},
	}}
	s.registry.Register(stub, true)

	outcomes, err := s.finder.Search(context.Background(), model.Query{Type: model.TypeSchool, Limit: 10}, "all")
	s.Require().NoError(err)
	s.Require().Len(outcomes, 1)
	s.Equal("stub", outcomes[0].Source)
	s.Equal(3, outcomes[0].Records)
	s.Equal(2, outcomes[0].Merged)
	s.Equal(1, outcomes[0].Skipped)
	s.False(outcomes[0].Failed)

	s.Equal(1, s.store.Len())
	org, ok := s.store.Get("Tusiime Schools")
	s.Require().True(ok)
	s.Len(org.Phones, 1)
	s.Len(org.Emails, 1)
}

// TestSearchRequiresPositiveLimit verifies the limit guard.
func (s *FinderSuite) TestSearchRequiresPositiveLimit() {
	_, err := s.finder.Search(context.Background(), model.Query{Type: model.TypeSchool}, "all")
	s.Require().Error(err)
}

// TestSearchFailingSourceDegrades verifies one broken source does not fail
// the whole search.
func (s *FinderSuite) TestSearchFailingSourceDegrades() {
	s.registry.Register(&stubSource{name: "broken", err: sources.ErrSourceUnavailable}, true)
	s.registry.Register(&stubSource{name: "working", recs: []model.RawRecord{
		{Name: "Feza Schools", Type: model.TypeSchool, Phone: "0713456789", Source: "working"},
	}}, true)

	outcomes, err := s.finder.Search(context.Background(), model.Query{Type: model.TypeSchool, Limit: 5}, "all")
	s.Require().NoError(err)
	s.Require().Len(outcomes, 2)

	byName := map[string]model.SourceOutcome{}
	for _, o := range outcomes {
		byName[o.Source] = o
	}
	s.True(byName["broken"].Failed)
	s.Equal(1, byName["working"].Merged)
	s.Equal(1, s.store.Len())
}

// TestSearchSeedOptIn verifies the seed database joins school searches only
// when the fallback is enabled.
func (s *FinderSuite) TestSearchSeedOptIn() {
	outcomes, err := s.finder.Search(context.Background(), model.Query{Type: model.TypeSchool, Limit: 10}, "all")
	s.Require().NoError(err)
	s.Empty(outcomes)
	s.Equal(0, s.store.Len())

	s.cfg.UseFallbackDB = true
	s.rebuild()

	outcomes, err = s.finder.Search(context.Background(), model.Query{Type: model.TypeSchool, Limit: 10}, "all")
	s.Require().NoError(err)
	s.Require().Len(outcomes, 1)
	s.Equal("seeddb", outcomes[0].Source)
	s.Equal(8, outcomes[0].Merged)
	s.Equal(8, s.store.Len())

	for _, org := range s.store.Snapshot() {
		s.Equal([]string{sources.SeedSourceName}, org.Sources)
	}
}

// TestSearchSeedNotDuplicated verifies naming the seed explicitly does not
// run it a second time through the fallback path.
func (s *FinderSuite) TestSearchSeedNotDuplicated() {
	s.cfg.UseFallbackDB = true
	s.rebuild()

	outcomes, err := s.finder.Search(context.Background(), model.Query{Type: model.TypeSchool, Limit: 10}, "seeddb")
	s.Require().NoError(err)
	s.Len(outcomes, 1)
}

// TestResearchPromotesToTierA verifies enrichment fills the missing field of
// exactly the matching Tier B organization, leaving the rest of the dataset
// untouched.
func (s *FinderSuite) TestResearchPromotesToTierA() {
	seedRecords := []model.RawRecord{
		{Name: "St. John Bosco", Type: model.TypeSchool,
			Phone: "0754 123 456", Address: "Upanga, Dar es Salaam", Source: "Tanzania Yellow Pages"},
		{Name: "Feza Schools", Type: model.TypeSchool,
			Phone: "0713 456 789", Email: "admin@fezaschools.ac.tz", Address: "Msasani", Source: "Tanzania Yellow Pages"},
		{Name: "Mama Lishe Restaurant", Type: model.TypeRestaurant,
			Phone: "0684 229 911", Source: "Google Maps"},
		{Name: "Uhuru Stationery", Type: model.TypeRetail, Source: "BRELA"},
		{Name: "Kariakoo Pharmacy", Type: model.TypeMedical,
			Email: "info@kariakoopharmacy.co.tz", Source: "Google Maps"},
	}
	for _, rec := range seedRecords {
		_, err := s.store.Upsert(rec)
		s.Require().NoError(err)
	}

	before := s.finder.Stats()
	s.Require().Equal(5, before.Total)
	s.Require().Equal(1, before.TierA)

	// the provenance tag deliberately differs from the adapter name, like
	// the real adapters ("yellowpages" vs "Tanzania Yellow Pages")
	s.registry.Register(&stubSource{name: "stub", recs: []model.RawRecord{
		{Name: "St John Bosco Academy", Type: model.TypeSchool, Email: "info@sjb.ac.tz", Source: "Stub Directory"},
	}}, true)

	outcomes, err := s.finder.Research(context.Background(), "all")
	s.Require().NoError(err)
	s.Require().Len(outcomes, 1)
	s.Equal("stub", outcomes[0].Source)
	s.Equal(1, outcomes[0].Merged)
	s.Equal(0, outcomes[0].Skipped)
	s.False(outcomes[0].Failed)

	org, ok := s.store.Get("St. John Bosco")
	s.Require().True(ok)
	s.Equal(model.TierA, org.Tier)
	s.Equal("St. John Bosco", org.Name)
	s.Equal([]string{"info@sjb.ac.tz"}, org.Emails)
	s.Contains(org.Sources, "Stub Directory")

	after := s.finder.Stats()
	s.Equal(2, after.TierA)
	s.Equal(before.TierB-1, after.TierB)
	s.Equal(before.TierC, after.TierC)

	unchanged, ok := s.store.Get("Feza Schools")
	s.Require().True(ok)
	s.NotContains(unchanged.Sources, "Stub Directory")
}

// TestResearchRejectsDissimilarCandidates verifies the similarity threshold.
func (s *FinderSuite) TestResearchRejectsDissimilarCandidates() {
	_, err := s.store.Upsert(model.RawRecord{
		Name: "Green Acres Academy", Type: model.TypeSchool, Phone: "0718555123", Source: "a",
	})
	s.Require().NoError(err)

	s.registry.Register(&stubSource{name: "stub", recs: []model.RawRecord{
		{Name: "Kilimanjaro Machinery Supplies", Email: "sales@kms.co.tz", Source: "stub"},
	}}, true)

	_, err = s.finder.Research(context.Background(), "all")
	s.Require().NoError(err)

	org, ok := s.store.Get("Green Acres Academy")
	s.Require().True(ok)
	s.Empty(org.Emails)
	s.NotContains(org.Sources, "stub")
}

// TestResearchIdempotent verifies re-running research changes nothing.
func (s *FinderSuite) TestResearchIdempotent() {
	_, err := s.store.Upsert(model.RawRecord{
		Name: "St. John Bosco", Type: model.TypeSchool, Phone: "0754 123 456", Source: "a",
	})
	s.Require().NoError(err)

	s.registry.Register(&stubSource{name: "stub", recs: []model.RawRecord{
		{Name: "St John Bosco", Email: "info@sjb.ac.tz", Address: "Upanga", Source: "stub"},
	}}, true)

	_, err = s.finder.Research(context.Background(), "all")
	s.Require().NoError(err)
	first := s.store.Snapshot()

	_, err = s.finder.Research(context.Background(), "all")
	s.Require().NoError(err)
	s.Equal(first, s.store.Snapshot())
}

// TestResearchSeedFallback verifies a known school is enriched from the seed
// table when the fallback is enabled and live sources return nothing.
func (s *FinderSuite) TestResearchSeedFallback() {
	s.cfg.UseFallbackDB = true
	s.rebuild()

	_, err := s.store.Upsert(model.RawRecord{Name: "Feza", Type: model.TypeSchool, Source: "a"})
	s.Require().NoError(err)

	outcomes, err := s.finder.Research(context.Background(), "all")
	s.Require().NoError(err)
	s.Require().Len(outcomes, 1)
	s.Equal("seeddb", outcomes[0].Source)
	s.Equal(1, outcomes[0].Merged)

	org, ok := s.store.Get("Feza")
	s.Require().True(ok)
	s.Equal("Feza", org.Name)
	s.Equal(model.TierA, org.Tier)
	s.Contains(org.Sources, sources.SeedSourceName)
}

// TestExportAndLoadRoundTrip verifies the CSV export can be loaded back.
func (s *FinderSuite) TestExportAndLoadRoundTrip() {
	_, err := s.store.Upsert(model.RawRecord{
		Name: "Tusiime Schools", Type: model.TypeSchool,
		Phone: "0754 123 456", Email: "info@tusiime.ac.tz", Address: "Mlimani",
		Source: "a",
	})
	s.Require().NoError(err)

	path := filepath.Join(s.T().TempDir(), "contacts.csv")
	s.Require().NoError(s.finder.Export(path, "csv"))

	s.rebuild()

	n, err := s.finder.Load(path)
	s.Require().NoError(err)
	s.Equal(1, n)

	org, ok := s.store.Get("Tusiime Schools")
	s.Require().True(ok)
	s.Equal(model.TierA, org.Tier)
	s.Equal([]string{"+255 75 412 3456"}, org.Phones)
}

// TestExportUnknownFormat verifies the format guard.
func (s *FinderSuite) TestExportUnknownFormat() {
	err := s.finder.Export(filepath.Join(s.T().TempDir(), "x.xml"), "xml")
	s.Require().Error(err)
	s.True(errors.Is(err, export.ErrExportFailed))
}

// TestLoadMissingFile verifies a bad path surfaces as an input file error.
func (s *FinderSuite) TestLoadMissingFile() {
	_, err := s.finder.Load(filepath.Join(s.T().TempDir(), "nope.csv"))
	s.Require().ErrorIs(err, export.ErrInputFile)
}
