package model

// RawRecord is unvalidated, unmerged data as returned by a single source.
// Only Name and Source are guaranteed; every other field is whatever subset
// the source exposes.
type RawRecord struct {
	Name        string            `json:"name"`
	Type        OrgType           `json:"type,omitempty"`
	Phone       string            `json:"phone,omitempty"`
	Email       string            `json:"email,omitempty"`
	Address     string            `json:"address,omitempty"`
	WebsiteURL  string            `json:"website_url,omitempty"`
	SocialMedia map[string]string `json:"social_media,omitempty"`
	Source      string            `json:"source"`
}

// Query describes one search request against a source adapter
type Query struct {
	Type     OrgType  `json:"type"`
	Location string   `json:"location"`
	Keywords []string `json:"keywords,omitempty"`
	Limit    int      `json:"limit"`
}

// Stats summarizes the current state of the organization store
type Stats struct {
	Total          int            `json:"total"`
	TierA          int            `json:"tier_a"`
	TierB          int            `json:"tier_b"`
	TierC          int            `json:"tier_c"`
	ByType         map[string]int `json:"by_type"`
	PhonesFound    int            `json:"phones_found"`
	EmailsFound    int            `json:"emails_found"`
	AddressesFound int            `json:"addresses_found"`
	WebsitesFound  int            `json:"websites_found"`
	SourcesUsed    []string       `json:"sources_used"`
}

// SourceOutcome tracks per-source success/skip/failure counts for one run
type SourceOutcome struct {
	Source  string `json:"source"`
	Records int    `json:"records"`
	Merged  int    `json:"merged"`
	Skipped int    `json:"skipped"`
	Failed  bool   `json:"failed"`
}
