// Package organizations defines the GraphQL types and queries for the
// organization dataset.
package organizations

import (
	"github.com/graphql-go/graphql"
)

// OrganizationType represents one deduplicated organization record
var OrganizationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Organization",
	Fields: graphql.Fields{
		"name":           &graphql.Field{Type: graphql.String},
		"type":           &graphql.Field{Type: graphql.String},
		"phones":         &graphql.Field{Type: graphql.NewList(graphql.String)},
		"emails":         &graphql.Field{Type: graphql.NewList(graphql.String)},
		"address":        &graphql.Field{Type: graphql.String},
		"website_status": &graphql.Field{Type: graphql.String},
		"website_url":    &graphql.Field{Type: graphql.String},
		"sources":        &graphql.Field{Type: graphql.NewList(graphql.String)},
		"tier":           &graphql.Field{Type: graphql.String},
		"contact_status": &graphql.Field{Type: graphql.String},
		"notes":          &graphql.Field{Type: graphql.String},
	},
})
