package store

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tzleads/contact-backend/model"
)

type StoreSuite struct {
	suite.Suite
	store *Store
}

func (s *StoreSuite) SetupTest() {
	s.store = New()
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) schoolRecord() model.RawRecord {
	return model.RawRecord{
		Name:    "St. John Bosco",
		Type:    model.TypeSchool,
		Phone:   "0754 123 456",
		Email:   "Info@StJohnBosco.ac.tz",
		Address: "Upanga,  Dar es Salaam",
		Source:  "Tanzania Yellow Pages",
	}
}

// TestNormalizationOnUpsert verifies phones, emails and addresses are stored
// in canonical form.
func (s *StoreSuite) TestNormalizationOnUpsert() {
	org, err := s.store.Upsert(s.schoolRecord())
	s.Require().NoError(err)

	s.Equal([]string{"+255 75 412 3456"}, org.Phones)
	s.Equal([]string{"info@stjohnbosco.ac.tz"}, org.Emails)
	s.Equal("Upanga, Dar es Salaam", org.Address)
	s.Equal(model.TierA, org.Tier)
	s.Equal([]string{"Tanzania Yellow Pages"}, org.Sources)
}

// TestDeduplication verifies name variants merge into one organization.
func (s *StoreSuite) TestDeduplication() {
	_, err := s.store.Upsert(model.RawRecord{Name: "St. John Bosco", Phone: "0754123456", Source: "a"})
	s.Require().NoError(err)

	_, err = s.store.Upsert(model.RawRecord{Name: "st john bosco ", Email: "info@sjb.ac.tz", Source: "b"})
	s.Require().NoError(err)

	s.Equal(1, s.store.Len())

	org, ok := s.store.Get("ST JOHN BOSCO")
	s.Require().True(ok)
	s.Len(org.Phones, 1)
	s.Len(org.Emails, 1)
	s.ElementsMatch([]string{"a", "b"}, org.Sources)
}

// TestIdempotentMerge verifies feeding the same raw record twice changes nothing.
func (s *StoreSuite) TestIdempotentMerge() {
	first, err := s.store.Upsert(s.schoolRecord())
	s.Require().NoError(err)

	second, err := s.store.Upsert(s.schoolRecord())
	s.Require().NoError(err)

	s.Equal(first, second)
	s.Equal(1, s.store.Len())
}

// TestFirstSourceWins verifies singular fields are not overwritten; the
// conflicting value lands in Notes instead.
func (s *StoreSuite) TestFirstSourceWins() {
	_, err := s.store.Upsert(s.schoolRecord())
	s.Require().NoError(err)

	org, err := s.store.Upsert(model.RawRecord{
		Name:    "St John Bosco",
		Address: "Kinondoni, Dar es Salaam",
		Source:  "BRELA",
	})
	s.Require().NoError(err)

	s.Equal("Upanga, Dar es Salaam", org.Address)
	s.Contains(org.Notes, `address reported as "Kinondoni, Dar es Salaam" by BRELA`)

	// repeating the conflicting record must not duplicate the note
	again, err := s.store.Upsert(model.RawRecord{
		Name:    "St John Bosco",
		Address: "Kinondoni, Dar es Salaam",
		Source:  "BRELA",
	})
	s.Require().NoError(err)
	s.Equal(org.Notes, again.Notes)
}

// TestTypeConflictNoted verifies type is first-source-wins with a note flag.
func (s *StoreSuite) TestTypeConflictNoted() {
	_, err := s.store.Upsert(model.RawRecord{Name: "Feza", Type: model.TypeSchool, Source: "a"})
	s.Require().NoError(err)

	org, err := s.store.Upsert(model.RawRecord{Name: "Feza", Type: model.TypeBusiness, Source: "b"})
	s.Require().NoError(err)

	s.Equal(model.TypeSchool, org.Type)
	s.Contains(org.Notes, `type reported as "business" by b`)
}

// TestMalformedEmailDropped verifies a bad email drops the field, not the record.
func (s *StoreSuite) TestMalformedEmailDropped() {
	org, err := s.store.Upsert(model.RawRecord{
		Name:   "Sunrise Schools",
		Email:  "foo@@bar",
		Phone:  "0754 777 666",
		Source: "Facebook Business Pages",
	})
	s.Require().NoError(err)

	s.Empty(org.Emails)
	s.Len(org.Phones, 1)
	s.Equal(model.TierB, org.Tier)
}

// TestMalformedRecordRejected verifies an empty name cannot enter the store.
func (s *StoreSuite) TestMalformedRecordRejected() {
	_, err := s.store.Upsert(model.RawRecord{Name: "   ", Phone: "0754123456"})
	s.Require().ErrorIs(err, ErrMalformedRecord)
	s.Equal(0, s.store.Len())
}

// TestTierConsistency verifies the tier tracks field completeness through
// every mutation.
func (s *StoreSuite) TestTierConsistency() {
	org, err := s.store.Upsert(model.RawRecord{Name: "Green Acres", Source: "a"})
	s.Require().NoError(err)
	s.Equal(model.TierC, org.Tier)
	s.Equal(model.StatusNoContact, org.ContactStatus)

	org, err = s.store.Upsert(model.RawRecord{Name: "Green Acres", Phone: "0718555123", Source: "a"})
	s.Require().NoError(err)
	s.Equal(model.TierB, org.Tier)
	s.Equal(model.StatusPhoneOnly, org.ContactStatus)

	org, err = s.store.Upsert(model.RawRecord{Name: "Green Acres", Email: "info@greenacres.ac.tz", Source: "a"})
	s.Require().NoError(err)
	s.Equal(model.TierB, org.Tier)
	s.Equal(model.StatusPartial, org.ContactStatus)

	org, err = s.store.Upsert(model.RawRecord{Name: "Green Acres", Address: "Oysterbay", Source: "a"})
	s.Require().NoError(err)
	s.Equal(model.TierA, org.Tier)
	s.Equal(model.StatusComplete, org.ContactStatus)
}

// TestSnapshotIsolation verifies snapshots are value copies.
func (s *StoreSuite) TestSnapshotIsolation() {
	_, err := s.store.Upsert(s.schoolRecord())
	s.Require().NoError(err)

	snap := s.store.Snapshot()
	s.Require().Len(snap, 1)
	snap[0].Phones[0] = "tampered"
	snap[0].Name = "tampered"

	org, ok := s.store.Get("St. John Bosco")
	s.Require().True(ok)
	s.Equal("+255 75 412 3456", org.Phones[0])
}

// TestStats verifies tier and type tallies.
func (s *StoreSuite) TestStats() {
	_, err := s.store.Upsert(s.schoolRecord())
	s.Require().NoError(err)
	_, err = s.store.Upsert(model.RawRecord{Name: "Feza", Type: model.TypeSchool, Phone: "0713456789", Source: "b"})
	s.Require().NoError(err)
	_, err = s.store.Upsert(model.RawRecord{Name: "Mama Lishe", Type: model.TypeRestaurant, Source: "c"})
	s.Require().NoError(err)

	stats := s.store.Stats()
	s.Equal(3, stats.Total)
	s.Equal(1, stats.TierA)
	s.Equal(1, stats.TierB)
	s.Equal(1, stats.TierC)
	s.Equal(2, stats.ByType["school"])
	s.Equal(1, stats.ByType["restaurant"])
	s.ElementsMatch([]string{"Tanzania Yellow Pages", "b", "c"}, stats.SourcesUsed)
}

// TestLoadNormalizesRows verifies loaded rows get the same normalization as
// scraped records, so a later upsert of the canonical form cannot duplicate.
func (s *StoreSuite) TestLoadNormalizesRows() {
	n := s.store.Load([]model.Organization{
		{
			Name:    "Tusiime Schools",
			Phones:  []string{"0754 123 456"},
			Emails:  []string{"Info@Tusiime.ac.tz", "not-an-email"},
			Address: "Mlimani,   Dar es Salaam",
		},
	})
	s.Require().Equal(1, n)

	org, ok := s.store.Get("Tusiime Schools")
	s.Require().True(ok)
	s.Equal([]string{"+255 75 412 3456"}, org.Phones)
	s.Equal([]string{"info@tusiime.ac.tz"}, org.Emails)
	s.Equal("Mlimani, Dar es Salaam", org.Address)

	org, err := s.store.Upsert(model.RawRecord{
		Name: "Tusiime Schools", Phone: "+255 75 412 3456", Source: "a",
	})
	s.Require().NoError(err)
	s.Equal([]string{"+255 75 412 3456"}, org.Phones)
}

// TestLoadMergesDuplicateRows verifies loading collapses rows sharing an identity.
func (s *StoreSuite) TestLoadMergesDuplicateRows() {
	n := s.store.Load([]model.Organization{
		{Name: "St. John Bosco", Phones: []string{"+255 75 412 3456"}},
		{Name: "st john bosco", Emails: []string{"info@sjb.ac.tz"}},
	})

	s.Equal(1, n)
	org, ok := s.store.Get("St. John Bosco")
	s.Require().True(ok)
	s.Len(org.Phones, 1)
	s.Len(org.Emails, 1)
	s.Equal(model.TierB, org.Tier)
}
