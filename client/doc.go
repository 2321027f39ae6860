// Package client sends requests to the handlers of an Apache Solr core
// over [net/http] and normalizes their JSON responses.
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options. Without
// options it talks to http://127.0.0.1/solr:
//
//	c, err := client.Build(
//		client.WithHost("solr.internal"),
//		client.WithPort(8983),
//		client.WithCore("products"),
//		client.WithTimeout(10*time.Second),
//	)
//
// # Searching
//
// Any value with a String method returning an encoded parameter string
// can be sent; the query package builds them:
//
//	q := query.New().Q(query.Text("shoes")).Rows(10)
//	resp, err := c.Search(ctx, q)
//	products, err := client.Decode[Product](resp.Docs())
//
// Long queries can be sent in a POST body with [WithPost].
//
// # Updating
//
// [Client.Update], [Client.Delete] and [Client.UpdateExtract] commit
// immediately by default. [WithCommit], [WithSoftCommit] and
// [WithCommitWithin] change that:
//
//	_, err = c.Update(ctx, Product{ID: "1"}, client.WithCommitWithin(5*time.Second))
//
// # Errors
//
// Responses other than 200 OK are returned as [*UnexpectedStatusError],
// wrapping [ErrUnexpectedStatusCode], and [ErrAuthFailure] for 401 and
// 403. Invalid locations fail [Build] with [FieldErrors].
package client
