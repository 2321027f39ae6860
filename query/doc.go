// Package query builds the parameter string sent to Solr request handlers.
//
// # Building a Query
//
// A [Query] collects encoded fragments in call order and renders them
// with [Query.String]:
//
//	q := query.New().
//		Edismax().
//		Q(query.Match{Fields: []query.Field{{Name: "category", Value: "shoes"}}}).
//		Fq(query.Filter{Field: "color", Value: "red"}).
//		Facet(query.FacetOptions{Field: []string{"brand", "size"}}).
//		Rows(20)
//
//	q.String() // defType=edismax&q=category%3Ashoes&fq=color%3Ared&facet=true&...&wt=json
//
// # Component Options
//
// Every search component (terms, mlt, spellcheck, suggest, facet, group,
// hl) accepts either a [Raw] string, pushed verbatim, or the matching
// options struct. Unset option fields emit nothing. Boolean and numeric
// fields are pointers so that false and zero can be sent explicitly:
//
//	q.Highlight(query.HighlightOptions{
//		Fl:       []string{"title", "body"},
//		Snippets: query.Int(3),
//	})
//
// Unless [Query.Wt] was called, the rendered string always requests
// JSON output.
package query
