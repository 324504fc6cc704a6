// Package store owns the in-memory organization dataset. All merging and
// deduplication flows through here; other components receive value copies,
// never references into the store.
package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tzleads/contact-backend/model"
	"github.com/tzleads/contact-backend/util"
)

var logger = InitLogger() // setup the logger

// ErrMalformedRecord is returned when a raw record cannot yield an identity
var ErrMalformedRecord = errors.New("malformed record")

// InitLogger sets up the Zap Logger to log to the console in a human readable format
func InitLogger() *zap.Logger {
	prodConfig := zap.NewProductionConfig()
	prodConfig.Encoding = "console"
	prodConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	prodConfig.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	logger, _ := prodConfig.Build()
	return logger
}

// Store is the exclusive holder of the organization dataset for a run
type Store struct {
	mu    sync.Mutex
	orgs  map[string]*model.Organization
	order []string // identity keys in insertion order, for stable export

	phonesFound    int
	emailsFound    int
	addressesFound int
	websitesFound  int
	sourcesUsed    []string
}

// New creates an empty store
func New() *Store {
	return &Store{orgs: make(map[string]*model.Organization)}
}

// Upsert normalizes a raw record and merges it into the dataset. If an
// organization with the same name identity exists the record is folded into
// it: set-valued fields are unioned, singular fields are first-source-wins
// with conflicts preserved in Notes. The operation is idempotent.
func (s *Store) Upsert(raw model.RawRecord) (model.Organization, error) {
	name := util.CollapseWhitespace(raw.Name)
	key := util.IdentityKey(name)
	if key == "" {
		return model.Organization{}, fmt.Errorf("%w: empty name", ErrMalformedRecord)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	org, exists := s.orgs[key]
	if !exists {
		org = &model.Organization{
			Name:          name,
			Type:          raw.Type,
			WebsiteStatus: model.NoWebsite,
		}
		s.orgs[key] = org
		s.order = append(s.order, key)
	}

	s.merge(org, raw)
	org.RecalculateTier()

	return copyOrg(org), nil
}

// merge folds one raw record into an existing organization. Caller holds the lock.
func (s *Store) merge(org *model.Organization, raw model.RawRecord) {
	if phone, ok := util.NormalizePhone(raw.Phone); ok && !util.Contains(org.Phones, phone) {
		org.Phones = append(org.Phones, phone)
		s.phonesFound++
	}

	if email, ok := util.NormalizeEmail(raw.Email); ok && !util.Contains(org.Emails, email) {
		org.Emails = append(org.Emails, email)
		s.emailsFound++
	}

	if address := util.NormalizeAddress(raw.Address); address != "" {
		if org.Address == "" {
			org.Address = address
			s.addressesFound++
		} else if org.Address != address {
			appendNote(org, fmt.Sprintf("address reported as %q by %s", address, raw.Source))
		}
	}

	if util.IsNotEmpty(raw.WebsiteURL) {
		if org.WebsiteURL == "" {
			org.WebsiteURL = raw.WebsiteURL
			org.WebsiteStatus = model.HasWebsite
			s.websitesFound++
		} else if org.WebsiteURL != raw.WebsiteURL {
			appendNote(org, fmt.Sprintf("website reported as %q by %s", raw.WebsiteURL, raw.Source))
		}
	}

	if raw.Type != "" {
		if org.Type == "" {
			org.Type = raw.Type
		} else if org.Type != raw.Type {
			appendNote(org, fmt.Sprintf("type reported as %q by %s", raw.Type, raw.Source))
		}
	}

	for _, network := range sortedKeys(raw.SocialMedia) {
		appendNote(org, fmt.Sprintf("%s: %s", network, raw.SocialMedia[network]))
	}

	if util.IsNotEmpty(raw.Source) {
		org.Sources = util.AppendUnique(org.Sources, raw.Source)
		s.sourcesUsed = util.AppendUnique(s.sourcesUsed, raw.Source)
	}
}

// Load replaces the dataset with previously exported organizations, merging
// any rows that collapse to the same name identity and recomputing tiers.
func (s *Store) Load(orgs []model.Organization) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orgs = make(map[string]*model.Organization)
	s.order = nil
	s.phonesFound, s.emailsFound, s.addressesFound, s.websitesFound = 0, 0, 0, 0
	s.sourcesUsed = nil

	for i := range orgs {
		incoming := orgs[i]
		incoming.Name = util.CollapseWhitespace(incoming.Name)
		key := util.IdentityKey(incoming.Name)
		if key == "" {
			logger.Warn("Skipping organization with empty name on load")
			continue
		}

		existing, ok := s.orgs[key]
		if !ok {
			stored := copyOrg(&incoming)
			// loaded rows pass through the same normalization as scraped
			// records, so hand-edited files cannot plant denormalized values
			stored.Phones = unionPhones(nil, incoming.Phones)
			stored.Emails = unionEmails(nil, incoming.Emails)
			stored.Address = util.NormalizeAddress(incoming.Address)
			if stored.WebsiteStatus == "" {
				stored.WebsiteStatus = model.NoWebsite
			}
			stored.RecalculateTier()
			s.orgs[key] = &stored
			s.order = append(s.order, key)
			s.countFields(&stored)
			continue
		}

		existing.Phones = unionPhones(existing.Phones, incoming.Phones)
		existing.Emails = unionEmails(existing.Emails, incoming.Emails)
		if existing.Address == "" {
			existing.Address = util.NormalizeAddress(incoming.Address)
		}
		if existing.WebsiteURL == "" && incoming.WebsiteURL != "" {
			existing.WebsiteURL = incoming.WebsiteURL
			existing.WebsiteStatus = model.HasWebsite
		}
		for _, src := range incoming.Sources {
			existing.Sources = util.AppendUnique(existing.Sources, src)
		}
		existing.RecalculateTier()
	}

	for _, key := range s.order {
		for _, src := range s.orgs[key].Sources {
			s.sourcesUsed = util.AppendUnique(s.sourcesUsed, src)
		}
	}

	return len(s.order)
}

// countFields updates the found counters for a freshly inserted organization.
// Caller holds the lock.
func (s *Store) countFields(org *model.Organization) {
	s.phonesFound += len(org.Phones)
	s.emailsFound += len(org.Emails)
	if org.Address != "" {
		s.addressesFound++
	}
	if org.WebsiteURL != "" {
		s.websitesFound++
	}
}

// Get returns a copy of the organization matching the name identity
func (s *Store) Get(name string) (model.Organization, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	org, ok := s.orgs[util.IdentityKey(name)]
	if !ok {
		return model.Organization{}, false
	}
	return copyOrg(org), true
}

// Len reports the number of organizations in the store
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Snapshot returns value copies of every organization in insertion order
func (s *Store) Snapshot() []model.Organization {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Organization, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, copyOrg(s.orgs[key]))
	}
	return out
}

// Stats summarizes the dataset by tier and type along with run counters
func (s *Store) Stats() model.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := model.Stats{
		Total:          len(s.order),
		ByType:         make(map[string]int),
		PhonesFound:    s.phonesFound,
		EmailsFound:    s.emailsFound,
		AddressesFound: s.addressesFound,
		WebsitesFound:  s.websitesFound,
		SourcesUsed:    append([]string(nil), s.sourcesUsed...),
	}

	for _, key := range s.order {
		org := s.orgs[key]
		switch org.Tier {
		case model.TierA:
			stats.TierA++
		case model.TierB:
			stats.TierB++
		case model.TierC:
			stats.TierC++
		}
		if org.Type != "" {
			stats.ByType[string(org.Type)]++
		}
	}

	return stats
}

// appendNote adds a note unless the identical note is already present,
// keeping merges idempotent.
func appendNote(org *model.Organization, note string) {
	switch {
	case org.Notes == "":
		org.Notes = note
	case !containsNote(org.Notes, note):
		org.Notes += "; " + note
	}
}

// unionPhones folds phones into dst, keeping only valid numbers in
// canonical form, without duplicates
func unionPhones(dst, phones []string) []string {
	for _, phone := range phones {
		if norm, ok := util.NormalizePhone(phone); ok && !util.Contains(dst, norm) {
			dst = append(dst, norm)
		}
	}
	return dst
}

// unionEmails folds emails into dst, dropping malformed addresses
func unionEmails(dst, emails []string) []string {
	for _, email := range emails {
		if norm, ok := util.NormalizeEmail(email); ok && !util.Contains(dst, norm) {
			dst = append(dst, norm)
		}
	}
	return dst
}

func containsNote(notes, note string) bool {
	return util.Contains(strings.Split(notes, "; "), note)
}

func copyOrg(org *model.Organization) model.Organization {
	out := *org
	out.Phones = append([]string(nil), org.Phones...)
	out.Emails = append([]string(nil), org.Emails...)
	out.Sources = append([]string(nil), org.Sources...)
	return out
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
