package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/adamwoolhether/solrnode/client/throttle"
)

const (
	acceptJSON      = "application/json; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeForm = "application/x-www-form-urlencoded;charset=UTF-8"
)

// Client issues requests against the handlers of a single Solr core.
// It sets a default *http.Client and *http.Transport, which
// can be customized via optional funcs. A Client is safe for
// concurrent use.
type Client struct {
	c      *http.Client
	logger *slog.Logger
	tracer trace.Tracer
	cfg    Config
}

// Build validates the Solr location assembled from the options and
// returns a ready [Client].
func Build(optFns ...Option) (*Client, error) {
	client := &Client{
		c:      &http.Client{},
		logger: slog.Default(),
		tracer: noop.NewTracerProvider().Tracer(""),
	}

	opts := options{config: DefaultConfig()}
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	if err := opts.config.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	client.cfg = opts.config

	if opts.client != nil {
		client.c = opts.client
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}

	if opts.tracer != nil {
		client.tracer = opts.tracer
	}

	if opts.timeout != nil {
		client.c.Timeout = *opts.timeout
	}

	if opts.noFollowRedirects {
		client.c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		transport = opts.client.Transport
	default:
		transport = http.DefaultTransport
	}
	if opts.userAgent != "" {
		transport = userAgent{value: opts.userAgent, base: transport}
	}
	if opts.throttle != nil {
		rt, err := throttle.NewRoundTripper(opts.throttle.RPS, opts.throttle.Burst, func() *slog.Logger { return client.logger }, transport)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		transport = rt
	}
	client.c.Transport = transport

	return client, nil
}

// Config returns the Solr location the client sends requests to.
func (c *Client) Config() Config {
	return c.cfg
}

// URL returns the address of handler on the configured core, carrying
// params as its raw query. Empty path segments are skipped.
func (c *Client) URL(handler string, params Params) *url.URL {
	u := url.URL{
		Scheme: c.cfg.Protocol,
		Host:   hostPort(c.cfg.Host, c.cfg.Port),
	}
	if c.cfg.User != "" && c.cfg.Password != "" {
		u.User = url.UserPassword(c.cfg.User, c.cfg.Password)
	}

	segments := make([]string, 0, 3)
	for _, s := range []string{c.cfg.RootPath, c.cfg.Core, handler} {
		if s = strings.Trim(s, "/"); s != "" {
			segments = append(segments, s)
		}
	}
	u.Path = "/" + strings.Join(segments, "/")

	if params != nil {
		u.RawQuery = sanitizeQuery(params.String())
	}

	return &u
}

func hostPort(host string, port int) string {
	if port == 0 {
		if strings.Contains(host, ":") {
			return "[" + host + "]"
		}
		return host
	}

	return net.JoinHostPort(host, strconv.Itoa(port))
}

// sanitizeQuery escapes the bytes a raw query must never carry: space
// and control bytes, '"', '#', '<', '>', non-ASCII bytes and any '%'
// not starting an escape. Existing percent-encoding is left untouched.
func sanitizeQuery(q string) string {
	var b strings.Builder
	b.Grow(len(q))

	for i := 0; i < len(q); i++ {
		c := q[i]
		switch {
		case c == '%' && i+2 < len(q) && isHex(q[i+1]) && isHex(q[i+2]):
			b.WriteByte(c)
		case c <= ' ', c == '"', c == '#', c == '<', c == '>', c == '%', c >= 0x7f:
			fmt.Fprintf(&b, "%%%02X", c)
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

func isHex(c byte) bool {
	switch {
	case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		return true
	}
	return false
}

// request describes one call to a Solr handler.
type request struct {
	method      string
	handler     string
	params      Params
	body        io.Reader
	contentType string
}

// call sends r to Solr and hands the 200 response to fn.
func (c *Client) call(ctx context.Context, r request, fn execFn) error {
	u := c.URL(r.handler, r.params)

	ctx, span := c.startSpan(ctx, r)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), r.body)
	if err != nil {
		return fmt.Errorf("instantiating request: %w", err)
	}

	req.Header.Set("Accept", acceptJSON)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	reqID := injectHeaders(ctx, span, req.Header)

	c.logger.Debug("solr request", "method", r.method, "url", u.Redacted(), "request_id", reqID)

	if err := c.exec(req, http.StatusOK, fn); err != nil {
		recordFailure(span, err)
		c.logger.Error("solr request failed", "method", r.method, "url", u.Redacted(), "request_id", reqID, "error", err)
		return fmt.Errorf("%s %s: %w", r.method, r.handler, err)
	}

	return nil
}

// exec runs the request and injected function on success after validating the expected status code.
func (c *Client) exec(req *http.Request, expCode int, fn execFn) error {
	resp, err := c.c.Do(req)
	if err != nil {
		return fmt.Errorf("exec http do: %w", err)
	}

	defer func() {
		if _, err = io.Copy(io.Discard, resp.Body); err != nil {
			c.logger.Error("failed to discard unused body", "error", err)
		}
		if err = resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != expCode {
		b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
		if err != nil {
			b = []byte("unable to read body")
		}

		statusErr := &UnexpectedStatusError{
			StatusCode: resp.StatusCode,
			Body:       string(b),
			Err:        ErrUnexpectedStatusCode,
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			statusErr.Err = fmt.Errorf("%w: %w", ErrAuthFailure, ErrUnexpectedStatusCode)
		}

		return statusErr
	}

	if err := fn(resp); err != nil {
		return fmt.Errorf("exec fn: %w", err)
	}

	return nil
}

// decodeInto returns an execFn decoding the JSON body into dest.
func decodeInto(dest any) execFn {
	return func(resp *http.Response) error {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			if errors.Is(err, io.EOF) {
				return errors.New("decoding body: empty response")
			}
			return fmt.Errorf("decoding body: %w", err)
		}

		return nil
	}
}
