package organizations

import (
	"github.com/tzleads/contact-backend/export"
	"github.com/tzleads/contact-backend/internal/services"
	"github.com/tzleads/contact-backend/model"
	"github.com/tzleads/contact-backend/util"
)

// ResolveOrganizations returns the filtered organization snapshot
func ResolveOrganizations(finder *services.ContactFinder, args map[string]interface{}) ([]model.Organization, error) {
	var filters []export.Filter

	if tier, ok := args["tier"].(string); ok && tier != "" {
		filters = append(filters, export.ByTier(model.Tier(tier)))
	}
	if orgType, ok := args["type"].(string); ok && orgType != "" {
		filters = append(filters, export.ByType(model.OrgType(orgType)))
	}
	if noWebsite, ok := args["no_website"].(bool); ok && noWebsite {
		filters = append(filters, export.NoWebsiteOnly())
	}

	return export.Apply(finder.Organizations(), filters...), nil
}

// ResolveOrganization looks up a single organization by name identity
func ResolveOrganization(finder *services.ContactFinder, name string) (interface{}, error) {
	key := util.IdentityKey(name)
	for _, org := range finder.Organizations() {
		if util.IdentityKey(org.Name) == key {
			return org, nil
		}
	}
	return nil, nil
}
