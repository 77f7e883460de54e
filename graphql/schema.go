// Package graphql assembles the root schema from the module query fields.
package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/securecorp/secreport/datastore"
	"github.com/securecorp/secreport/graphql/modules/dashboard"
)

var store datastore.Store

// InitStore sets the datastore used by all resolvers. Must be called before
// CreateSchema.
func InitStore(s datastore.Store) {
	store = s
}

// CreateSchema builds the root query schema with all module fields mounted
func CreateSchema() (graphql.Schema, error) {
	fields := graphql.Fields{}
	for name, field := range dashboard.GetQueryFields(store) {
		fields[name] = field
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}
