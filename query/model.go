package query

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel wrapped by [ValidationError].
var ErrValidation = errors.New("invalid parameters")

// ValidationError is returned when a configuration method that cannot
// degrade silently receives unusable input.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrValidation, e.Param, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Raw is a preformatted parameter string. Component methods push it
// as a single fragment without touching it, which allows parameters
// the options structs do not model.
type Raw string

// Field is a name/value pair of a conjunctive main query or a delete
// by query.
type Field struct {
	Name  string
	Value string
}

// Filter describes one fq parameter. Without a Field, Value is used as
// the whole filter clause.
type Filter struct {
	Field string
	Value string
}

// Param is an arbitrary request parameter added by [Query.AddParams].
type Param struct {
	Field string
	Value string
}

// SortField is one sort clause, e.g. {Field: "price", Order: "desc"}.
type SortField struct {
	Field string
	Order string
}

// Main is the input of [Query.Q]: a [Text], a [Match], or nil for the
// match-all query.
type Main interface{ mainQuery() }

// Text is a complete main query in Lucene syntax.
type Text string

// Match is a conjunction of field:value clauses. Str is a raw clause
// which is appended after the field clauses.
type Match struct {
	Fields []Field
	Str    string
}

func (Text) mainQuery()  {}
func (Match) mainQuery() {}

// TermsSpec is the input of [Query.Terms]: [Raw], TermsOptions or
// *TermsOptions.
type TermsSpec interface{ termsSpec() }

// MoreLikeThisSpec is the input of [Query.MoreLikeThis].
type MoreLikeThisSpec interface{ mltSpec() }

// SpellcheckSpec is the input of [Query.Spellcheck].
type SpellcheckSpec interface{ spellcheckSpec() }

// SuggestSpec is the input of [Query.Suggest].
type SuggestSpec interface{ suggestSpec() }

// FacetSpec is the input of [Query.Facet].
type FacetSpec interface{ facetSpec() }

// GroupSpec is the input of [Query.Group].
type GroupSpec interface{ groupSpec() }

// HighlightSpec is the input of [Query.Highlight].
type HighlightSpec interface{ highlightSpec() }

func (Raw) termsSpec()      {}
func (Raw) mltSpec()        {}
func (Raw) spellcheckSpec() {}
func (Raw) suggestSpec()    {}
func (Raw) facetSpec()      {}
func (Raw) groupSpec()      {}
func (Raw) highlightSpec()  {}

// TermsOptions configures the terms component.
type TermsOptions struct {
	On        *bool
	Fl        []string
	Lower     string
	LowerIncl *bool
	Mincount  *int
	Maxcount  *int
	Prefix    string
	Regex     string
	RegexFlag string
	Limit     *int
	Upper     string
	UpperIncl *bool
	Raw       *bool
	Sort      string
}

// MoreLikeThisOptions configures the MoreLikeThis component.
type MoreLikeThisOptions struct {
	On               *bool
	Fl               []string
	Mintf            *int
	Mindf            *int
	Maxdf            *int
	Minwl            *int
	Maxwl            *int
	Maxqt            *int
	Maxntp           *int
	Boost            *bool
	Qf               string
	Count            *int
	MatchInclude     *bool
	MatchOffset      *int
	InterestingTerms string
}

// SpellcheckOptions configures the spellcheck component.
type SpellcheckOptions struct {
	On                      *bool
	Q                       string
	Build                   *bool
	Collate                 *bool
	MaxCollations           *int
	MaxCollationTries       *int
	MaxCollationEvaluations *int
	CollateExtendedResults  *bool
	CollateMaxCollectDocs   *int
	Count                   *int
	Dictionary              string
	ExtendedResults         *bool
	OnlyMorePopular         *bool
	MaxResultsForSuggest    *int
	AlternativeTermCount    *int
	Reload                  *bool
	Accuracy                *float64
}

// SuggestOptions configures the suggest component.
type SuggestOptions struct {
	On         *bool
	Q          string
	Build      *bool
	Count      *int
	Dictionary string
}

// FacetOptions configures faceting. Each entry of Field becomes its
// own facet.field parameter.
type FacetOptions struct {
	On                 *bool
	Query              string
	Field              []string
	Prefix             string
	Contains           string
	ContainsIgnoreCase *bool
	Sort               string
	Limit              *int
	Offset             *int
	Mincount           *int
	Missing            *bool
	Method             string
}

// GroupOptions configures result grouping.
type GroupOptions struct {
	On           *bool
	Field        string
	Query        string
	Limit        *int
	Offset       *int
	Sort         string
	Format       string
	Main         *bool
	Ngroups      *bool
	Truncate     *bool
	Facet        *bool
	CachePercent *int
}

// HighlightOptions configures highlighting.
type HighlightOptions struct {
	On                      *bool
	Method                  string
	Q                       string
	Qparser                 string
	Fl                      []string
	Snippets                *int
	Fragsize                *int
	MergeContiguous         *bool
	RequireFieldMatch       *bool
	MaxAnalyzedChars        *int
	MaxMultiValuedToExamine *int
	MaxMultiValuedToMatch   *int
	AlternateField          string
	MaxAlternateFieldLength *int
	Formatter               string
	SimplePre               string
	SimplePost              string
	Fragmenter              string
	UsePhraseHighlighter    *bool
	HighlightMultiTerm      *bool
	RegexSlop               *float64
	RegexPattern            string
	RegexMaxAnalyzedChars   *int
	PreserveMulti           *bool
}

// SpatialOptions configures a geospatial filter. Pt, Sfield and D are
// sent as given.
type SpatialOptions struct {
	On     *bool
	Pt     string
	Sfield string
	D      *float64
}

func (TermsOptions) termsSpec()           {}
func (MoreLikeThisOptions) mltSpec()      {}
func (SpellcheckOptions) spellcheckSpec() {}
func (SuggestOptions) suggestSpec()       {}
func (FacetOptions) facetSpec()           {}
func (GroupOptions) groupSpec()           {}
func (HighlightOptions) highlightSpec()   {}

func (o *SpatialOptions) empty() bool {
	return o.On == nil && o.Pt == "" && o.Sfield == "" && o.D == nil
}
