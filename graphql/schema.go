// Package graphql assembles the read-only GraphQL schema over the
// organization dataset.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/tzleads/contact-backend/graphql/modules/organizations"
	"github.com/tzleads/contact-backend/graphql/modules/stats"
	"github.com/tzleads/contact-backend/internal/services"
)

// CreateSchema builds the root query schema from the module query fields
func CreateSchema(finder *services.ContactFinder) (graphql.Schema, error) {
	fields := graphql.Fields{}
	for name, field := range organizations.GetQueryFields(finder) {
		fields[name] = field
	}
	for name, field := range stats.GetQueryFields(finder) {
		fields[name] = field
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}
