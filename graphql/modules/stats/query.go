package stats

import (
	"github.com/graphql-go/graphql"

	"github.com/tzleads/contact-backend/internal/services"
)

// GetQueryFields returns the statistics queries to be mounted in the root schema
func GetQueryFields(finder *services.ContactFinder) graphql.Fields {
	return graphql.Fields{
		"stats": &graphql.Field{
			Type: StatsType,
			Resolve: func(_ graphql.ResolveParams) (interface{}, error) {
				return ResolveStats(finder)
			},
		},
	}
}
