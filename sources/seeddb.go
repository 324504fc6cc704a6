package sources

import (
	"context"
	"strings"

	"github.com/tzleads/contact-backend/model"
	"github.com/tzleads/contact-backend/util"
)

// SeedSourceName is the provenance tag for the built-in seed dataset. Records
// carrying it can always be told apart from live-source records.
const SeedSourceName = "Seed Database"

// SeedDatabase is the built-in static table of known Dar es Salaam private
// schools. It is an explicit opt-in fallback: the registry never includes it
// in the enabled set, so it cannot silently mask a live-source failure.
type SeedDatabase struct {
	records []model.RawRecord
}

// NewSeedDatabase builds the seed adapter over the static table
func NewSeedDatabase() *SeedDatabase {
	return &SeedDatabase{records: seedRecords}
}

// Name returns the source identifier
func (s *SeedDatabase) Name() string { return "seeddb" }

// Search returns seed schools up to the limit. Only school queries match;
// the table holds nothing else.
func (s *SeedDatabase) Search(_ context.Context, q model.Query) ([]model.RawRecord, error) {
	if q.Type != model.TypeSchool {
		return nil, nil
	}

	limit := q.Limit
	if limit > len(s.records) {
		limit = len(s.records)
	}

	out := make([]model.RawRecord, limit)
	copy(out, s.records[:limit])
	return out, nil
}

// Lookup finds the seed entry for one organization name: exact identity
// match first, then substring containment, then at least two shared words.
func (s *SeedDatabase) Lookup(name string) (model.RawRecord, bool) {
	key := util.IdentityKey(name)
	if key == "" {
		return model.RawRecord{}, false
	}

	for _, rec := range s.records {
		if util.IdentityKey(rec.Name) == key {
			return rec, true
		}
	}

	for _, rec := range s.records {
		recKey := util.IdentityKey(rec.Name)
		if strings.Contains(key, recKey) || strings.Contains(recKey, key) {
			return rec, true
		}
	}

	words := strings.Fields(key)
	for _, rec := range s.records {
		shared := 0
		for _, w := range strings.Fields(util.IdentityKey(rec.Name)) {
			if util.Contains(words, w) {
				shared++
			}
		}
		if shared >= 2 {
			return rec, true
		}
	}

	return model.RawRecord{}, false
}

var seedRecords = []model.RawRecord{
	{
		Name:    "Tusiime Schools",
		Type:    model.TypeSchool,
		Phone:   "+255 754 123456",
		Email:   "info@tusiimeschools.ac.tz",
		Address: "Mlimani, Dar es Salaam",
		Source:  SeedSourceName,
	},
	{
		Name:    "Feza Schools",
		Type:    model.TypeSchool,
		Phone:   "+255 713 456789",
		Email:   "admin@fezaschools.ac.tz",
		Address: "Msasani, Dar es Salaam",
		Source:  SeedSourceName,
	},
	{
		Name:    "Green Acres Academy",
		Type:    model.TypeSchool,
		Phone:   "+255 718 555123",
		Email:   "info@greenacres.ac.tz",
		Address: "Oysterbay, Dar es Salaam",
		Source:  SeedSourceName,
	},
	{
		Name:    "Safi Schools",
		Type:    model.TypeSchool,
		Phone:   "+255 755 999888",
		Email:   "contact@safischools.ac.tz",
		Address: "Kinondoni, Dar es Salaam",
		Source:  SeedSourceName,
	},
	{
		Name:    "Sunrise Schools",
		Type:    model.TypeSchool,
		Phone:   "+255 754 777666",
		Email:   "info@sunriseschools.co.tz",
		Address: "Mbezi Beach, Dar es Salaam",
		Source:  SeedSourceName,
	},
	{
		Name:    "St. Mary's International Schools",
		Type:    model.TypeSchool,
		Phone:   "+255 713 222111",
		Email:   "info@stmarys.ac.tz",
		Address: "Mbezi, Dar es Salaam",
		Source:  SeedSourceName,
	},
	{
		Name:    "Shamsiye Schools",
		Type:    model.TypeSchool,
		Phone:   "+255 755 444333",
		Email:   "admin@shamsiye.ac.tz",
		Address: "Upanga, Dar es Salaam",
		Source:  SeedSourceName,
	},
	{
		Name:    "Canossa Schools",
		Type:    model.TypeSchool,
		Phone:   "+255 718 666555",
		Email:   "info@canossa.ac.tz",
		Address: "Sinza, Dar es Salaam",
		Source:  SeedSourceName,
	},
}
