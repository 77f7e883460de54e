// Package dashboard defines the GraphQL types for the security dashboard.
package dashboard

import (
	"github.com/graphql-go/graphql"
)

// SecurityOverviewType represents the high-level metrics for the top cards
var SecurityOverviewType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SecurityOverview",
	Fields: graphql.Fields{
		"total_events":         &graphql.Field{Type: graphql.Int},
		"critical_events":      &graphql.Field{Type: graphql.Int},
		"high_events":          &graphql.Field{Type: graphql.Int},
		"resolution_rate":      &graphql.Field{Type: graphql.Float},
		"avg_impact_score":     &graphql.Field{Type: graphql.Float},
		"phishing_campaigns":   &graphql.Field{Type: graphql.Int},
		"phishing_click_rate":  &graphql.Field{Type: graphql.Float},
		"compliance_rate":      &graphql.Field{Type: graphql.Float},
		"compliance_controls":  &graphql.Field{Type: graphql.Int},
		"high_risk_campaigns":  &graphql.Field{Type: graphql.Int},
	},
})

// SeverityDistributionType represents the data for the severity charts
var SeverityDistributionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SeverityDistribution",
	Fields: graphql.Fields{
		"critical": &graphql.Field{Type: graphql.Int},
		"high":     &graphql.Field{Type: graphql.Int},
		"medium":   &graphql.Field{Type: graphql.Int},
		"low":      &graphql.Field{Type: graphql.Int},
	},
})

// EventTrendPointType represents one month of the event trend line
var EventTrendPointType = graphql.NewObject(graphql.ObjectConfig{
	Name: "EventTrendPoint",
	Fields: graphql.Fields{
		"month":    &graphql.Field{Type: graphql.String},
		"critical": &graphql.Field{Type: graphql.Int},
		"high":     &graphql.Field{Type: graphql.Int},
		"medium":   &graphql.Field{Type: graphql.Int},
		"low":      &graphql.Field{Type: graphql.Int},
		"total":    &graphql.Field{Type: graphql.Int},
	},
})

// GroupCountType represents one bucket of a grouped-count metric
var GroupCountType = graphql.NewObject(graphql.ObjectConfig{
	Name: "GroupCount",
	Fields: graphql.Fields{
		"label": &graphql.Field{Type: graphql.String},
		"count": &graphql.Field{Type: graphql.Int},
	},
})

// ComplianceStatusType represents the per-framework compliance posture
var ComplianceStatusType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ComplianceStatus",
	Fields: graphql.Fields{
		"total_controls":         &graphql.Field{Type: graphql.Int},
		"compliant_controls":     &graphql.Field{Type: graphql.Int},
		"non_compliant_controls": &graphql.Field{Type: graphql.Int},
		"compliance_rate":        &graphql.Field{Type: graphql.Float},
		"avg_compliance_score":   &graphql.Field{Type: graphql.Float},
		"frameworks":             &graphql.Field{Type: graphql.NewList(graphql.String)},
		"by_framework":           &graphql.Field{Type: graphql.NewList(GroupCountType)},
	},
})
