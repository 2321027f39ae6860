package query

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

const (
	matchAll      = "*:*"
	andJoiner     = "%20AND%20"
	defaultFormat = "wt=json"
)

// Query accumulates the encoded parameters of one Solr request in call
// order. It is not safe for concurrent use; build one Query per request.
type Query struct {
	params []string
	logger *slog.Logger
}

// Option is a functional option for configuring a [Query] via [New].
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger receiving a debug record for every
// configuration call. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New returns an empty Query.
func New(optFns ...Option) *Query {
	var opts options
	for _, opt := range optFns {
		opt(&opts)
	}

	if opts.logger == nil {
		opts.logger = slog.New(slog.DiscardHandler)
	}

	return &Query{logger: opts.logger}
}

// Dismax selects the DisMax query parser. The declaration is placed in
// front of every parameter added so far.
func (q *Query) Dismax() *Query {
	q.params = slices.Insert(q.params, 0, "defType=dismax")
	q.debug("dismax")

	return q
}

// Edismax selects the Extended DisMax query parser. Like [Query.Dismax]
// it is placed in front of every parameter added so far.
func (q *Query) Edismax() *Query {
	q.params = slices.Insert(q.params, 0, "defType=edismax")
	q.debug("edismax")

	return q
}

// Q sets the main query. A nil or empty m selects every document.
func (q *Query) Q(m Main) *Query {
	value := matchAll

	switch v := m.(type) {
	case Text:
		value = escape(string(v))
	case Match:
		if !v.empty() {
			value = v.encode()
		}
	case *Match:
		if v != nil && !v.empty() {
			value = v.encode()
		}
	}

	q.params = append(q.params, "q="+value)
	q.debug("q")

	return q
}

func (m *Match) empty() bool {
	return len(m.Fields) == 0 && m.Str == ""
}

func (m *Match) encode() string {
	clauses := make([]string, 0, len(m.Fields)+1)
	for _, f := range m.Fields {
		clauses = append(clauses, escape(f.Name+":"+f.Value))
	}

	if m.Str != "" {
		clauses = append(clauses, escape(m.Str))
	}

	return strings.Join(clauses, andJoiner)
}

// Qop sets the default operator (AND or OR) of the main query.
func (q *Query) Qop(op string) *Query {
	q.params = append(q.params, "q.op="+op)
	q.debug("qop")

	return q
}

// Fl restricts the fields returned for each document.
func (q *Query) Fl(fields ...string) *Query {
	if len(fields) == 0 {
		return q
	}

	q.params = append(q.params, "fl="+strings.Join(fields, ","))
	q.debug("fl")

	return q
}

// Start sets the offset of the first returned document.
func (q *Query) Start(offset int) *Query {
	q.params = append(q.params, "start="+strconv.Itoa(offset))
	q.debug("start")

	return q
}

// Rows sets the number of documents to return.
func (q *Query) Rows(size int) *Query {
	q.params = append(q.params, "rows="+strconv.Itoa(size))
	q.debug("rows")

	return q
}

// Sort orders the results by the given clauses.
func (q *Query) Sort(fields ...SortField) *Query {
	if len(fields) == 0 {
		return q
	}

	clauses := make([]string, len(fields))
	for i, f := range fields {
		clauses[i] = escape(f.Field) + "%20" + escape(f.Order)
	}

	q.params = append(q.params, "sort="+strings.Join(clauses, ","))
	q.debug("sort")

	return q
}

// Fq adds one fq parameter per filter. Solr intersects them.
func (q *Query) Fq(filters ...Filter) *Query {
	for _, f := range filters {
		clause := f.Value
		if f.Field != "" {
			clause = f.Field + ":" + f.Value
		}

		q.params = append(q.params, "fq="+escape(clause))
	}
	q.debug("fq")

	return q
}

// Df sets the default search field.
func (q *Query) Df(field string) *Query {
	q.params = append(q.params, "df="+field)
	q.debug("df")

	return q
}

// Wt sets the response writer, e.g. json or xml. Without it the
// rendered query requests json.
func (q *Query) Wt(format string) *Query {
	q.params = append(q.params, "wt="+format)
	q.debug("wt")

	return q
}

// AddParams adds arbitrary parameters. Values are percent-encoded,
// names are sent as given.
func (q *Query) AddParams(params ...Param) *Query {
	for _, p := range params {
		q.params = append(q.params, p.Field+"="+escape(p.Value))
	}
	q.debug("addParams")

	return q
}

// Spatial adds a geospatial filter. Unlike the other configuration
// methods it rejects empty input.
func (q *Query) Spatial(opts SpatialOptions) (*Query, error) {
	if opts.empty() {
		return q, &ValidationError{Param: "spatial", Reason: "options must not be empty"}
	}

	enabled := opts.On == nil || *opts.On
	q.params = append(q.params, "spatial="+formatBool(enabled))

	if opts.Pt != "" {
		q.params = append(q.params, "pt="+opts.Pt)
	}
	if opts.Sfield != "" {
		q.params = append(q.params, "sfield="+opts.Sfield)
	}
	if opts.D != nil {
		q.params = append(q.params, "d="+formatFloat(*opts.D))
	}
	q.debug("spatial")

	return q, nil
}

// Fragments returns a copy of the encoded parameters added so far.
func (q *Query) Fragments() []string {
	return slices.Clone(q.params)
}

// String renders the parameters joined by '&'. When no wt parameter is
// present, wt=json is appended. The check is a substring search, so a
// value containing "wt=" suppresses the default as well.
func (q *Query) String() string {
	params := q.params
	if !strings.Contains(strings.Join(params, "&"), "wt=") {
		params = append(slices.Clip(params), defaultFormat)
	}

	return strings.Join(params, "&")
}

func (q *Query) debug(method string) {
	q.logger.Debug("query", "method", method, "params", q.params)
}

func (q *Query) ignore(component string, spec any) {
	q.logger.Debug("query: ignoring unsupported input", "component", component, "type", fmt.Sprintf("%T", spec))
}
