// Package model defines the data structures for organization contact management.
package model

// OrgType classifies what kind of organization a record describes
type OrgType string

// Supported organization types
const (
	TypeSchool     OrgType = "school"
	TypeBusiness   OrgType = "business"
	TypeMedical    OrgType = "medical"
	TypeRestaurant OrgType = "restaurant"
	TypeRetail     OrgType = "retail"
	TypeService    OrgType = "service"
	TypeNonprofit  OrgType = "nonprofit"
)

// WebsiteStatus reports whether an organization is known to have a website
type WebsiteStatus string

// Website status values
const (
	HasWebsite  WebsiteStatus = "Has Website"
	NoWebsite   WebsiteStatus = "No Website"
	UnknownSite WebsiteStatus = "Unknown"
)

// Tier is the priority classification derived from contact completeness
type Tier string

// Priority tiers
const (
	TierA Tier = "Tier A"
	TierB Tier = "Tier B"
	TierC Tier = "Tier C"
)

// ContactStatus describes contact information completeness in human terms
type ContactStatus string

// Contact status values
const (
	StatusComplete  ContactStatus = "Complete"
	StatusPhoneOnly ContactStatus = "Phone Only"
	StatusPartial   ContactStatus = "Partial"
	StatusNoContact ContactStatus = "No Contact"
)

// Organization is the deduplicated, normalized entity for one real-world institution
type Organization struct {
	Name          string        `json:"name"`
	Type          OrgType       `json:"type"`
	Phones        []string      `json:"phones"`
	Emails        []string      `json:"emails"`
	Address       string        `json:"address,omitempty"`
	WebsiteStatus WebsiteStatus `json:"website_status"`
	WebsiteURL    string        `json:"website_url,omitempty"`
	Sources       []string      `json:"sources"`
	Tier          Tier          `json:"tier"`
	ContactStatus ContactStatus `json:"contact_status"`
	Notes         string        `json:"notes,omitempty"`
}

// HasPhone reports whether at least one phone number is recorded
func (o *Organization) HasPhone() bool { return len(o.Phones) > 0 }

// HasEmail reports whether at least one email address is recorded
func (o *Organization) HasEmail() bool { return len(o.Emails) > 0 }

// IsComplete reports whether phone, email and address are all present
func (o *Organization) IsComplete() bool {
	return o.HasPhone() && o.HasEmail() && o.Address != ""
}

// RecalculateTier rederives Tier and ContactStatus from the current fields.
// The tier is never set directly and never sticky: callers must invoke this
// after every field mutation.
func (o *Organization) RecalculateTier() {
	switch {
	case o.IsComplete():
		o.Tier = TierA
		o.ContactStatus = StatusComplete
	case o.HasPhone() && !o.HasEmail():
		o.Tier = TierB
		o.ContactStatus = StatusPhoneOnly
	case o.HasPhone():
		o.Tier = TierB
		o.ContactStatus = StatusPartial
	case o.HasEmail():
		o.Tier = TierC
		o.ContactStatus = StatusPartial
	default:
		o.Tier = TierC
		o.ContactStatus = StatusNoContact
	}
}
