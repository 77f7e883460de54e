// Package dashboard defines the GraphQL queries for the dashboard.
package dashboard

import (
	"github.com/graphql-go/graphql"
	"github.com/securecorp/secreport/datastore"
)

// GetQueryFields returns the dashboard queries to be mounted in the root schema
func GetQueryFields(store datastore.Store) graphql.Fields {
	periodArg := graphql.FieldConfigArgument{
		"period": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "last_month"},
	}

	return graphql.Fields{
		// Section 1: Top Cards (Overview)
		"securityOverview": &graphql.Field{
			Type: SecurityOverviewType,
			Args: periodArg,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveOverview(store, p.Args["period"].(string))
			},
		},
		// Section 2: Charts (Severity)
		"severityDistribution": &graphql.Field{
			Type: SeverityDistributionType,
			Args: periodArg,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveSeverityDistribution(store, p.Args["period"].(string))
			},
		},
		// Section 3: Trend Line (Monthly Event Volume)
		"eventTrend": &graphql.Field{
			Type: graphql.NewList(EventTrendPointType),
			Args: periodArg,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveEventTrend(store, p.Args["period"].(string))
			},
		},
		// Section 4: Compliance Posture
		"complianceStatus": &graphql.Field{
			Type: ComplianceStatusType,
			Args: periodArg,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveComplianceStatus(store, p.Args["period"].(string))
			},
		},
		// Section 5: Tables (Top Event Types)
		"topEventTypes": &graphql.Field{
			Type: graphql.NewList(GroupCountType),
			Args: graphql.FieldConfigArgument{
				"period": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "last_month"},
				"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 5},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveTopEventTypes(store, p.Args["period"].(string), p.Args["limit"].(int))
			},
		},
	}
}
