package query

import (
	"strconv"
	"strings"
)

// Terms configures the terms component.
func (q *Query) Terms(spec TermsSpec) *Query {
	return apply(q, "terms", spec, termsParams)
}

// MoreLikeThis configures the MoreLikeThis component.
func (q *Query) MoreLikeThis(spec MoreLikeThisSpec) *Query {
	return apply(q, "mlt", spec, mltParams)
}

// Spellcheck configures the spellcheck component.
func (q *Query) Spellcheck(spec SpellcheckSpec) *Query {
	return apply(q, "spellcheck", spec, spellcheckParams)
}

// Suggest configures the suggest component.
func (q *Query) Suggest(spec SuggestSpec) *Query {
	return apply(q, "suggest", spec, suggestParams)
}

// Facet configures faceting.
func (q *Query) Facet(spec FacetSpec) *Query {
	return apply(q, "facet", spec, facetParams)
}

// Group configures result grouping.
func (q *Query) Group(spec GroupSpec) *Query {
	return apply(q, "group", spec, groupParams)
}

// Highlight configures highlighting.
func (q *Query) Highlight(spec HighlightSpec) *Query {
	return apply(q, "hl", spec, highlightParams)
}

// apply dispatches on the shape of a component input. A nil input is
// a no-op, Raw is pushed verbatim and options are translated by build.
func apply[O any](q *Query, name string, spec any, build func(*O) []string) *Query {
	switch s := spec.(type) {
	case nil:
		return q
	case Raw:
		q.params = append(q.params, string(s))
	case O:
		q.params = append(q.params, build(&s)...)
	case *O:
		if s == nil {
			return q
		}
		q.params = append(q.params, build(s)...)
	default:
		q.ignore(name, spec)
		return q
	}
	q.debug(name)

	return q
}

// component collects the parameters of one search component, each
// named <component>.<key>. Unset values are skipped.
type component struct {
	name   string
	params []string
}

// newComponent starts with the on/off toggle. The component is on
// unless on is explicitly false.
func newComponent(name string, on *bool) *component {
	enabled := on == nil || *on
	return &component{
		name:   name,
		params: []string{name + "=" + formatBool(enabled)},
	}
}

func (c *component) set(key, value string) {
	c.params = append(c.params, c.name+"."+key+"="+value)
}

func (c *component) str(key, v string) {
	if v != "" {
		c.set(key, v)
	}
}

// text sets a free text value, percent-encoded.
func (c *component) text(key, v string) {
	if v != "" {
		c.set(key, escape(v))
	}
}

func (c *component) flag(key string, v *bool) {
	if v != nil {
		c.set(key, formatBool(*v))
	}
}

func (c *component) count(key string, v *int) {
	if v != nil {
		c.set(key, strconv.Itoa(*v))
	}
}

func (c *component) number(key string, v *float64) {
	if v != nil {
		c.set(key, formatFloat(*v))
	}
}

// list sets a comma separated list.
func (c *component) list(key string, v []string) {
	if len(v) > 0 {
		c.set(key, strings.Join(v, ","))
	}
}

// repeat sets one parameter per value.
func (c *component) repeat(key string, v []string) {
	for _, s := range v {
		c.set(key, s)
	}
}

func termsParams(o *TermsOptions) []string {
	c := newComponent("terms", o.On)
	c.list("fl", o.Fl)
	c.str("lower", o.Lower)
	c.flag("lower.incl", o.LowerIncl)
	c.count("mincount", o.Mincount)
	c.count("maxcount", o.Maxcount)
	c.text("prefix", o.Prefix)
	c.str("regex", o.Regex)
	c.str("regexFlag", o.RegexFlag)
	c.count("limit", o.Limit)
	c.str("upper", o.Upper)
	c.flag("upper.incl", o.UpperIncl)
	c.flag("raw", o.Raw)
	c.str("sort", o.Sort)

	return c.params
}

func mltParams(o *MoreLikeThisOptions) []string {
	c := newComponent("mlt", o.On)
	c.list("fl", o.Fl)
	c.count("mintf", o.Mintf)
	c.count("mindf", o.Mindf)
	c.count("maxdf", o.Maxdf)
	c.count("minwl", o.Minwl)
	c.count("maxwl", o.Maxwl)
	c.count("maxqt", o.Maxqt)
	c.count("maxntp", o.Maxntp)
	c.flag("boost", o.Boost)
	c.str("qf", o.Qf)
	c.count("count", o.Count)
	c.flag("match.include", o.MatchInclude)
	c.count("match.offset", o.MatchOffset)
	c.str("interestingTerms", o.InterestingTerms)

	return c.params
}

func spellcheckParams(o *SpellcheckOptions) []string {
	c := newComponent("spellcheck", o.On)
	c.text("q", o.Q)
	c.flag("build", o.Build)
	c.flag("collate", o.Collate)
	c.count("maxCollations", o.MaxCollations)
	c.count("maxCollationTries", o.MaxCollationTries)
	c.count("maxCollationEvaluations", o.MaxCollationEvaluations)
	c.flag("collateExtendedResults", o.CollateExtendedResults)
	c.count("collateMaxCollectDocs", o.CollateMaxCollectDocs)
	c.count("count", o.Count)
	c.str("dictionary", o.Dictionary)
	c.flag("extendedResults", o.ExtendedResults)
	c.flag("onlyMorePopular", o.OnlyMorePopular)
	c.count("maxResultsForSuggest", o.MaxResultsForSuggest)
	c.count("alternativeTermCount", o.AlternativeTermCount)
	c.flag("reload", o.Reload)
	c.number("accuracy", o.Accuracy)

	return c.params
}

func suggestParams(o *SuggestOptions) []string {
	c := newComponent("suggest", o.On)
	c.text("q", o.Q)
	c.flag("build", o.Build)
	c.count("count", o.Count)
	c.str("dictionary", o.Dictionary)

	return c.params
}

func facetParams(o *FacetOptions) []string {
	c := newComponent("facet", o.On)
	c.str("query", o.Query)
	c.repeat("field", o.Field)
	c.text("prefix", o.Prefix)
	c.text("contains", o.Contains)
	if o.ContainsIgnoreCase != nil {
		c.text("contains.ignoreCase", formatBool(*o.ContainsIgnoreCase))
	}
	c.str("sort", o.Sort)
	c.count("limit", o.Limit)
	c.count("offset", o.Offset)
	c.count("mincount", o.Mincount)
	c.flag("missing", o.Missing)
	c.str("method", o.Method)

	return c.params
}

func groupParams(o *GroupOptions) []string {
	c := newComponent("group", o.On)
	c.str("field", o.Field)
	c.str("query", o.Query)
	c.count("limit", o.Limit)
	c.count("offset", o.Offset)
	c.str("sort", o.Sort)
	c.str("format", o.Format)
	c.flag("main", o.Main)
	c.flag("ngroups", o.Ngroups)
	c.flag("truncate", o.Truncate)
	c.flag("facet", o.Facet)
	c.count("cache.percent", o.CachePercent)

	return c.params
}

func highlightParams(o *HighlightOptions) []string {
	c := newComponent("hl", o.On)
	c.str("method", o.Method)
	c.text("q", o.Q)
	c.str("qparser", o.Qparser)
	c.list("fl", o.Fl)
	c.count("snippets", o.Snippets)
	c.count("fragsize", o.Fragsize)
	c.flag("mergeContiguous", o.MergeContiguous)
	c.flag("requireFieldMatch", o.RequireFieldMatch)
	c.count("maxAnalyzedChars", o.MaxAnalyzedChars)
	c.count("maxMultiValuedToExamine", o.MaxMultiValuedToExamine)
	c.count("maxMultiValuedToMatch", o.MaxMultiValuedToMatch)
	c.str("alternateField", o.AlternateField)
	c.count("maxAlternateFieldLength", o.MaxAlternateFieldLength)
	c.str("formatter", o.Formatter)
	c.str("simple.pre", o.SimplePre)
	c.str("simple.post", o.SimplePost)
	c.str("fragmenter", o.Fragmenter)
	c.flag("usePhraseHighlighter", o.UsePhraseHighlighter)
	c.flag("highlightMultiTerm", o.HighlightMultiTerm)
	c.number("regex.slop", o.RegexSlop)
	c.str("regex.pattern", o.RegexPattern)
	c.count("regex.maxAnalyzedChars", o.RegexMaxAnalyzedChars)
	c.flag("preserveMulti", o.PreserveMulti)

	return c.params
}
