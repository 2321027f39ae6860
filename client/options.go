package client

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/solrnode/client/throttle"
)

// Option is a functional option for configuring a [Client] via [Build].
type Option func(*options) error
type options struct {
	config            Config
	client            *http.Client
	rt                http.RoundTripper
	timeout           *time.Duration
	userAgent         string
	throttle          *throttle.Config
	noFollowRedirects bool
	logger            *slog.Logger
	tracer            trace.Tracer
}

// WithConfig replaces the whole Solr location. Empty Protocol, Host
// and RootPath fields take the values of [DefaultConfig].
func WithConfig(cfg Config) Option {
	return func(c *options) error {
		c.config = cfg.withDefaults()
		return nil
	}
}

// WithHost sets the Solr host name or address.
func WithHost(host string) Option {
	return func(c *options) error {
		c.config.Host = host
		return nil
	}
}

// WithPort sets the Solr port. Zero omits the port from the URL.
func WithPort(port int) Option {
	return func(c *options) error {
		c.config.Port = port
		return nil
	}
}

// WithCore sets the core or collection every request is sent to.
func WithCore(core string) Option {
	return func(c *options) error {
		c.config.Core = core
		return nil
	}
}

// WithRootPath sets the path Solr is served under, "solr" by default.
func WithRootPath(rootPath string) Option {
	return func(c *options) error {
		c.config.RootPath = rootPath
		return nil
	}
}

// WithProtocol sets the URL scheme, "http" or "https".
func WithProtocol(protocol string) Option {
	return func(c *options) error {
		c.config.Protocol = protocol
		return nil
	}
}

// WithBasicAuth sends user and password as URL userinfo.
func WithBasicAuth(user, password string) Option {
	return func(c *options) error {
		if user == "" || password == "" {
			return errors.New("user and password must not be empty")
		}
		c.config.User = user
		c.config.Password = password
		return nil
	}
}

// WithClient replaces the default [http.Client] used by the [Client].
func WithClient(hc *http.Client) Option {
	return func(c *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		c.client = hc
		return nil
	}
}

// WithTransport sets a custom [http.RoundTripper] as the base transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		c.rt = rt
		return nil
	}
}

// WithTimeout sets the overall request timeout on the underlying [http.Client].
func WithTimeout(d time.Duration) Option {
	return func(c *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		c.timeout = &d
		return nil
	}
}

// WithUserAgent adds a persistent User-Agent header to all outgoing requests.
func WithUserAgent(header string) Option {
	return func(c *options) error {
		c.userAgent = header
		return nil
	}
}

// WithThrottle limits outbound Solr calls to rps requests per second with the given burst.
func WithThrottle(rps, burst int) Option {
	return func(c *options) error {
		if rps <= 0 || burst <= 0 {
			return fmt.Errorf("rps[%d] and burst[%d] %w", rps, burst, throttle.ErrMustNotBeZero)
		}
		c.throttle = &throttle.Config{RPS: rps, Burst: burst}
		return nil
	}
}

// WithNoFollowRedirects prevents the [Client] from following HTTP redirects.
func WithNoFollowRedirects() Option {
	return func(c *options) error {
		c.noFollowRedirects = true
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(c *options) error {
		c.logger = logger
		return nil
	}
}

// WithTracer sets the tracer starting one client span per Solr call.
// A no-op tracer is used by default.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		c.tracer = tracer
		return nil
	}
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}

// CallOption is a functional option for the search and stream calls.
type CallOption func(*callOpts)

type callOpts struct {
	post    bool
	keepEOF bool
}

// WithPost sends the parameters in a POST body instead of the URL,
// for queries too long for a GET request line.
func WithPost() CallOption {
	return func(opts *callOpts) {
		opts.post = true
	}
}

// WithKeepEOF keeps the trailing EOF document of a stream result set.
func WithKeepEOF() CallOption {
	return func(opts *callOpts) {
		opts.keepEOF = true
	}
}

func callSettings(opts []CallOption) callOpts {
	var settings callOpts
	for _, opt := range opts {
		opt(&settings)
	}
	return settings
}

// UpdateOption is a functional option for the update handler calls.
// Updates are committed immediately unless configured otherwise.
type UpdateOption func(*updateOpts)

type updateOpts struct {
	params      url.Values
	overwrite   bool
	content     io.Reader
	contentType string
}

func updateSettings(opts []UpdateOption) updateOpts {
	settings := updateOpts{
		params:    url.Values{"commit": {"true"}},
		overwrite: true,
	}
	for _, opt := range opts {
		opt(&settings)
	}
	return settings
}

// WithCommit toggles the hard commit following the update.
func WithCommit(commit bool) UpdateOption {
	return func(opts *updateOpts) {
		if commit {
			opts.params.Set("commit", "true")
			return
		}
		opts.params.Del("commit")
	}
}

// WithSoftCommit replaces the hard commit with a soft commit.
func WithSoftCommit() UpdateOption {
	return func(opts *updateOpts) {
		opts.params.Del("commit")
		opts.params.Set("softCommit", "true")
	}
}

// WithCommitWithin replaces the immediate commit with a commit
// deadline, sent with millisecond precision.
func WithCommitWithin(d time.Duration) UpdateOption {
	return func(opts *updateOpts) {
		opts.params.Del("commit")
		opts.params.Set("commitWithin", strconv.FormatInt(d.Milliseconds(), 10))
	}
}

// WithOverwrite controls whether an added document replaces an
// existing one with the same unique key. It defaults to true.
func WithOverwrite(overwrite bool) UpdateOption {
	return func(opts *updateOpts) {
		opts.overwrite = overwrite
	}
}

// WithParam adds a request parameter, e.g. literal.id or stream.url
// for the extracting handler.
func WithParam(key, value string) UpdateOption {
	return func(opts *updateOpts) {
		opts.params.Add(key, value)
	}
}

// WithContent uploads r as the body of an [Client.UpdateExtract] call.
func WithContent(r io.Reader, contentType string) UpdateOption {
	return func(opts *updateOpts) {
		opts.content = r
		opts.contentType = contentType
	}
}
