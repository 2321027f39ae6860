package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/adamwoolhether/solrnode/query"
)

type addCommand struct {
	Add addDoc `json:"add"`
}

type addDoc struct {
	Doc       any  `json:"doc"`
	Overwrite bool `json:"overwrite"`
}

type deleteCommand struct {
	Delete deleteQuery `json:"delete"`
}

type deleteQuery struct {
	Query string `json:"query"`
}

const defaultExtractType = "application/octet-stream"

// Update adds doc to the index and commits it, unless configured
// otherwise with the update options.
func (c *Client) Update(ctx context.Context, doc any, opts ...UpdateOption) (*Response, error) {
	settings := updateSettings(opts)

	body := addCommand{Add: addDoc{Doc: doc, Overwrite: settings.overwrite}}

	return c.post(ctx, UpdatePath, RawParams(settings.params.Encode()), body)
}

// UpdateExtract sends a document to the extracting request handler.
// The file is uploaded with [WithContent], or referenced through
// stream.file or stream.url set with [WithParam].
func (c *Client) UpdateExtract(ctx context.Context, opts ...UpdateOption) (*Response, error) {
	settings := updateSettings(opts)
	settings.params.Set("wt", "json")
	params := RawParams(settings.params.Encode())

	if settings.content == nil {
		body := addCommand{Add: addDoc{Overwrite: settings.overwrite}}
		return c.post(ctx, UpdateExtractPath, params, body)
	}

	contentType := settings.contentType
	if contentType == "" {
		contentType = defaultExtractType
	}

	r := request{
		method:      http.MethodPost,
		handler:     UpdateExtractPath,
		params:      params,
		body:        settings.content,
		contentType: contentType,
	}

	var resp Response
	if err := c.call(ctx, r, decodeInto(&resp)); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Delete removes every document matching the Lucene query q.
func (c *Client) Delete(ctx context.Context, q string, opts ...UpdateOption) (*Response, error) {
	settings := updateSettings(opts)

	body := deleteCommand{Delete: deleteQuery{Query: q}}

	return c.post(ctx, UpdatePath, RawParams(settings.params.Encode()), body)
}

// DeleteByFields removes every document matching all field pairs,
// joined as name:value clauses with AND.
func (c *Client) DeleteByFields(ctx context.Context, fields []query.Field, opts ...UpdateOption) (*Response, error) {
	if len(fields) == 0 {
		return nil, errors.New("delete: fields must not be empty")
	}

	clauses := make([]string, len(fields))
	for i, f := range fields {
		clauses[i] = fmt.Sprintf("%s:%s", f.Name, f.Value)
	}

	return c.Delete(ctx, strings.Join(clauses, " AND "), opts...)
}

// Commit issues a hard commit.
func (c *Client) Commit(ctx context.Context) (*Response, error) {
	return c.post(ctx, UpdatePath, RawParams("commit=true"), struct{}{})
}

// SoftCommit issues a soft commit, making changes visible without
// flushing them to stable storage.
func (c *Client) SoftCommit(ctx context.Context) (*Response, error) {
	return c.post(ctx, UpdatePath, RawParams("softCommit=true"), struct{}{})
}
