package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Search runs params against the select handler. With [WithPost] the
// parameters travel as a JSON request body instead of the URL.
func (c *Client) Search(ctx context.Context, params Params, opts ...CallOption) (*Response, error) {
	if !callSettings(opts).post {
		return c.get(ctx, SearchPath, params)
	}

	return c.post(ctx, SearchPath, nil, paramsBody(params))
}

// Terms runs params against the terms handler.
func (c *Client) Terms(ctx context.Context, params Params) (*Response, error) {
	return c.get(ctx, TermsPath, params)
}

// MoreLikeThis runs params against the mlt handler.
func (c *Client) MoreLikeThis(ctx context.Context, params Params) (*Response, error) {
	return c.get(ctx, MoreLikeThisPath, params)
}

// Spell runs params against the spell handler.
func (c *Client) Spell(ctx context.Context, params Params) (*Response, error) {
	return c.get(ctx, SpellPath, params)
}

// Suggest runs params against the suggest handler.
func (c *Client) Suggest(ctx context.Context, params Params) (*Response, error) {
	return c.get(ctx, SuggestPath, params)
}

// Ping checks the core is reachable through the admin/ping handler.
func (c *Client) Ping(ctx context.Context) (*Response, error) {
	return c.get(ctx, PingPath, nil)
}

// Call sends params to any handler of the core with a GET request and
// decodes the JSON body into dest.
func (c *Client) Call(ctx context.Context, handler string, params Params, dest any) error {
	r := request{
		method:  http.MethodGet,
		handler: handler,
		params:  params,
	}

	return c.call(ctx, r, decodeInto(dest))
}

// Stream evaluates a streaming expression and returns the documents of
// its result set. The trailing EOF document is dropped unless
// [WithKeepEOF] is set; a trailing EXCEPTION document fails the call
// with a [*StreamError]. With [WithPost] the parameters travel as a
// form-encoded body.
func (c *Client) Stream(ctx context.Context, params Params, opts ...CallOption) ([]json.RawMessage, error) {
	settings := callSettings(opts)

	r := request{
		method:  http.MethodGet,
		handler: StreamPath,
		params:  params,
	}
	if settings.post {
		var form string
		if params != nil {
			form = sanitizeQuery(params.String())
		}
		r.method = http.MethodPost
		r.params = nil
		r.body = strings.NewReader(form)
		r.contentType = contentTypeForm
	}

	var resp struct {
		ResultSet *struct {
			Docs []json.RawMessage `json:"docs"`
		} `json:"result-set"`
	}
	if err := c.call(ctx, r, decodeInto(&resp)); err != nil {
		return nil, err
	}

	if resp.ResultSet == nil || len(resp.ResultSet.Docs) == 0 {
		return nil, ErrNoResultSet
	}

	docs := resp.ResultSet.Docs
	var last map[string]json.RawMessage
	if err := json.Unmarshal(docs[len(docs)-1], &last); err != nil {
		return docs, nil
	}

	if exc, ok := last["EXCEPTION"]; ok && truthy(exc) {
		return nil, &StreamError{Message: exceptionMessage(exc)}
	}

	if !settings.keepEOF && truthy(last["EOF"]) {
		docs = docs[:len(docs)-1]
	}

	return docs, nil
}

func exceptionMessage(v json.RawMessage) string {
	var msg string
	if err := json.Unmarshal(v, &msg); err == nil {
		return msg
	}

	return string(v)
}

func (c *Client) get(ctx context.Context, handler string, params Params) (*Response, error) {
	r := request{
		method:  http.MethodGet,
		handler: handler,
		params:  params,
	}

	var resp Response
	if err := c.call(ctx, r, decodeInto(&resp)); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) post(ctx context.Context, handler string, params Params, body any) (*Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request payload: %w", err)
	}

	r := request{
		method:      http.MethodPost,
		handler:     handler,
		params:      params,
		body:        bytes.NewReader(b),
		contentType: contentTypeJSON,
	}

	var resp Response
	if err := c.call(ctx, r, decodeInto(&resp)); err != nil {
		return nil, err
	}

	return &resp, nil
}

// paramsBody converts an encoded query string into the JSON request
// API form {"params":{...}}. Repeated keys become arrays. Names and
// values are unescaped where possible and kept literally otherwise, as
// the builder inserts Solr syntax values unescaped.
func paramsBody(params Params) map[string]any {
	out := map[string]any{}
	if params == nil {
		return map[string]any{"params": out}
	}

	values := map[string][]string{}
	for fragment := range strings.SplitSeq(params.String(), "&") {
		if fragment == "" {
			continue
		}

		key, value, _ := strings.Cut(fragment, "=")
		key = unescapeParam(key)
		values[key] = append(values[key], unescapeParam(value))
	}

	for k, v := range values {
		if len(v) == 1 {
			out[k] = v[0]
			continue
		}
		out[k] = v
	}

	return map[string]any{"params": out}
}

func unescapeParam(s string) string {
	u, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}

	return u
}
