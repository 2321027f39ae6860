// Package solrnode is a client for Apache Solr's HTTP interface.
//
// Queries are assembled with [NewQuery] and sent through a client from
// [NewClient]. The query and client packages carry the full API.
package solrnode

import (
	"github.com/adamwoolhether/solrnode/client"
	"github.com/adamwoolhether/solrnode/query"
)

// NewClient instantiates a new *Client with the provided options.
// Without options it targets http://127.0.0.1/solr with the default
// http.Transport.
func NewClient(opts ...client.Option) (*client.Client, error) {
	return client.Build(opts...)
}

// NewQuery returns an empty query builder.
func NewQuery(opts ...query.Option) *query.Query {
	return query.New(opts...)
}
