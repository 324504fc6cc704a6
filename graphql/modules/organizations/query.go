package organizations

import (
	"github.com/graphql-go/graphql"

	"github.com/tzleads/contact-backend/internal/services"
)

// GetQueryFields returns the organization queries to be mounted in the root schema
func GetQueryFields(finder *services.ContactFinder) graphql.Fields {
	return graphql.Fields{
		"organizations": &graphql.Field{
			Type: graphql.NewList(OrganizationType),
			Args: graphql.FieldConfigArgument{
				"tier":       &graphql.ArgumentConfig{Type: graphql.String},
				"type":       &graphql.ArgumentConfig{Type: graphql.String},
				"no_website": &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveOrganizations(finder, p.Args)
			},
		},
		"organization": &graphql.Field{
			Type: OrganizationType,
			Args: graphql.FieldConfigArgument{
				"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				name := p.Args["name"].(string)
				return ResolveOrganization(finder, name)
			},
		},
	}
}
