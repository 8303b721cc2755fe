package graph

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
)

// NewHandler serves schema over HTTP (GET and POST, JSON and
// application/graphql bodies). The request context reaches every resolver.
func NewHandler(schema *graphql.Schema) http.Handler {
	return handler.New(&handler.Config{
		Schema:   schema,
		Pretty:   false,
		GraphiQL: false,
	})
}
