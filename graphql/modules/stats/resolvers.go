package stats

import (
	"sort"

	"github.com/tzleads/contact-backend/internal/services"
)

// typeCount is the list form of the by-type map, stable for clients
type typeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// statsView adapts model.Stats to the GraphQL shape
type statsView struct {
	Total          int         `json:"total"`
	TierA          int         `json:"tier_a"`
	TierB          int         `json:"tier_b"`
	TierC          int         `json:"tier_c"`
	ByType         []typeCount `json:"by_type"`
	PhonesFound    int         `json:"phones_found"`
	EmailsFound    int         `json:"emails_found"`
	AddressesFound int         `json:"addresses_found"`
	WebsitesFound  int         `json:"websites_found"`
	SourcesUsed    []string    `json:"sources_used"`
}

// ResolveStats returns the current dataset summary
func ResolveStats(finder *services.ContactFinder) (interface{}, error) {
	s := finder.Stats()

	byType := make([]typeCount, 0, len(s.ByType))
	for orgType, count := range s.ByType {
		byType = append(byType, typeCount{Type: orgType, Count: count})
	}
	sort.Slice(byType, func(i, j int) bool { return byType[i].Type < byType[j].Type })

	return statsView{
		Total:          s.Total,
		TierA:          s.TierA,
		TierB:          s.TierB,
		TierC:          s.TierC,
		ByType:         byType,
		PhonesFound:    s.PhonesFound,
		EmailsFound:    s.EmailsFound,
		AddressesFound: s.AddressesFound,
		WebsitesFound:  s.WebsitesFound,
		SourcesUsed:    s.SourcesUsed,
	}, nil
}
