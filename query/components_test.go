package query_test

import (
	"testing"

	"github.com/adamwoolhether/solrnode/query"
	"github.com/google/go-cmp/cmp"
)

// embeddedRaw satisfies every component input interface through the
// embedded Raw, without being a shape the builder understands.
type embeddedRaw struct {
	query.Raw
}

func TestQuery_Components(t *testing.T) {
	testCases := []struct {
		name  string
		build func(q *query.Query) *query.Query
		exp   string
	}{
		{
			name:  "nil input is ignored",
			build: func(q *query.Query) *query.Query { return q.Terms(nil).Facet(nil).Group(nil) },
			exp:   "wt=json",
		},
		{
			name:  "nil options pointer is ignored",
			build: func(q *query.Query) *query.Query { return q.Terms((*query.TermsOptions)(nil)) },
			exp:   "wt=json",
		},
		{
			name:  "unsupported input is ignored",
			build: func(q *query.Query) *query.Query { return q.Suggest(embeddedRaw{Raw: "suggest=true"}) },
			exp:   "wt=json",
		},
		{
			name:  "raw passthrough",
			build: func(q *query.Query) *query.Query { return q.Terms(query.Raw("terms.fl=name&terms.prefix=ab")) },
			exp:   "terms.fl=name&terms.prefix=ab&wt=json",
		},
		{
			name: "terms",
			build: func(q *query.Query) *query.Query {
				return q.Terms(query.TermsOptions{
					Fl:        []string{"name"},
					LowerIncl: query.Bool(false),
					Prefix:    "ab c",
					Limit:     query.Int(10),
					UpperIncl: query.Bool(true),
					Sort:      "index",
				})
			},
			exp: "terms=true&terms.fl=name&terms.lower.incl=false&terms.prefix=ab%20c&terms.limit=10&terms.upper.incl=true&terms.sort=index&wt=json",
		},
		{
			name: "terms disabled still sends options",
			build: func(q *query.Query) *query.Query {
				return q.Terms(&query.TermsOptions{On: query.Bool(false), Fl: []string{"a", "b"}})
			},
			exp: "terms=false&terms.fl=a,b&wt=json",
		},
		{
			name: "mlt",
			build: func(q *query.Query) *query.Query {
				return q.MoreLikeThis(query.MoreLikeThisOptions{
					Fl:               []string{"title", "body"},
					Mintf:            query.Int(1),
					Mindf:            query.Int(0),
					Boost:            query.Bool(true),
					MatchInclude:     query.Bool(true),
					MatchOffset:      query.Int(2),
					InterestingTerms: "details",
				})
			},
			exp: "mlt=true&mlt.fl=title,body&mlt.mintf=1&mlt.mindf=0&mlt.boost=true&mlt.match.include=true&mlt.match.offset=2&mlt.interestingTerms=details&wt=json",
		},
		{
			name:  "mlt without options",
			build: func(q *query.Query) *query.Query { return q.MoreLikeThis(query.MoreLikeThisOptions{}) },
			exp:   "mlt=true&wt=json",
		},
		{
			name: "spellcheck",
			build: func(q *query.Query) *query.Query {
				return q.Spellcheck(query.SpellcheckOptions{
					Q:               "helo wrld",
					Collate:         query.Bool(true),
					Count:           query.Int(5),
					Dictionary:      "default",
					ExtendedResults: query.Bool(false),
					Accuracy:        query.Float(0.7),
				})
			},
			exp: "spellcheck=true&spellcheck.q=helo%20wrld&spellcheck.collate=true&spellcheck.count=5&spellcheck.dictionary=default&spellcheck.extendedResults=false&spellcheck.accuracy=0.7&wt=json",
		},
		{
			name: "suggest",
			build: func(q *query.Query) *query.Query {
				return q.Suggest(query.SuggestOptions{
					Q:          "app",
					Build:      query.Bool(true),
					Count:      query.Int(3),
					Dictionary: "mySuggester",
				})
			},
			exp: "suggest=true&suggest.q=app&suggest.build=true&suggest.count=3&suggest.dictionary=mySuggester&wt=json",
		},
		{
			name: "facet fields repeat",
			build: func(q *query.Query) *query.Query {
				return q.Facet(query.FacetOptions{Field: []string{"category", "brand"}})
			},
			exp: "facet=true&facet.field=category&facet.field=brand&wt=json",
		},
		{
			name: "facet",
			build: func(q *query.Query) *query.Query {
				return q.Facet(query.FacetOptions{
					Query:              "price:[0 TO 10]",
					Field:              []string{"cat"},
					Prefix:             "a b",
					Contains:           "x&y",
					ContainsIgnoreCase: query.Bool(true),
					Sort:               "count",
					Limit:              query.Int(5),
					Offset:             query.Int(0),
					Mincount:           query.Int(1),
					Missing:            query.Bool(false),
					Method:             "fc",
				})
			},
			exp: "facet=true&facet.query=price:[0 TO 10]&facet.field=cat&facet.prefix=a%20b&facet.contains=x%26y" +
				"&facet.contains.ignoreCase=true&facet.sort=count&facet.limit=5&facet.offset=0&facet.mincount=1" +
				"&facet.missing=false&facet.method=fc&wt=json",
		},
		{
			name: "facet disabled",
			build: func(q *query.Query) *query.Query {
				return q.Facet(query.FacetOptions{On: query.Bool(false), Field: []string{"cat"}})
			},
			exp: "facet=false&facet.field=cat&wt=json",
		},
		{
			name: "group",
			build: func(q *query.Query) *query.Query {
				return q.Group(query.GroupOptions{
					Field:        "brand",
					Limit:        query.Int(2),
					Sort:         "price asc",
					Main:         query.Bool(true),
					Ngroups:      query.Bool(true),
					CachePercent: query.Int(20),
				})
			},
			exp: "group=true&group.field=brand&group.limit=2&group.sort=price asc&group.main=true&group.ngroups=true&group.cache.percent=20&wt=json",
		},
		{
			name: "highlight",
			build: func(q *query.Query) *query.Query {
				return q.Highlight(query.HighlightOptions{
					Method:     "unified",
					Q:          "red shoes",
					Fl:         []string{"title", "desc"},
					Snippets:   query.Int(3),
					SimplePre:  "<em>",
					SimplePost: "</em>",
					RegexSlop:  query.Float(0.5),
				})
			},
			exp: "hl=true&hl.method=unified&hl.q=red%20shoes&hl.fl=title,desc&hl.snippets=3&hl.simple.pre=<em>&hl.simple.post=</em>&hl.regex.slop=0.5&wt=json",
		},
		{
			name: "components keep call order",
			build: func(q *query.Query) *query.Query {
				return q.Q(query.Text("shoes")).
					Group(query.GroupOptions{Field: "brand"}).
					Facet(query.FacetOptions{Field: []string{"size"}}).
					Rows(0)
			},
			exp: "q=shoes&group=true&group.field=brand&facet=true&facet.field=size&rows=0&wt=json",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.build(query.New()).String()
			if diff := cmp.Diff(tc.exp, got); diff != "" {
				t.Errorf("query mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
