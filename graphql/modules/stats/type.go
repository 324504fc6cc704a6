// Package stats defines the GraphQL types and queries for dataset statistics.
package stats

import (
	"github.com/graphql-go/graphql"
)

// TypeCountType represents the record count for one organization type
var TypeCountType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TypeCount",
	Fields: graphql.Fields{
		"type":  &graphql.Field{Type: graphql.String},
		"count": &graphql.Field{Type: graphql.Int},
	},
})

// StatsType represents the high-level dataset summary
var StatsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Stats",
	Fields: graphql.Fields{
		"total":           &graphql.Field{Type: graphql.Int},
		"tier_a":          &graphql.Field{Type: graphql.Int},
		"tier_b":          &graphql.Field{Type: graphql.Int},
		"tier_c":          &graphql.Field{Type: graphql.Int},
		"by_type":         &graphql.Field{Type: graphql.NewList(TypeCountType)},
		"phones_found":    &graphql.Field{Type: graphql.Int},
		"emails_found":    &graphql.Field{Type: graphql.Int},
		"addresses_found": &graphql.Field{Type: graphql.Int},
		"websites_found":  &graphql.Field{Type: graphql.Int},
		"sources_used":    &graphql.Field{Type: graphql.NewList(graphql.String)},
	},
})
