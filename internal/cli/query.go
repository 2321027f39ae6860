package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/adamwoolhether/solrnode/client"
	"github.com/adamwoolhether/solrnode/query"
)

// queryFlags are the builder inputs shared by query and search.
type queryFlags struct {
	q           string
	fq          []string
	fl          []string
	sort        []string
	start       int
	rows        int
	facetFields []string
	defType     string
	wt          string
}

func (qf *queryFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&qf.q, "q", "q", "", "main query text, match all when empty")
	fs.StringArrayVar(&qf.fq, "fq", nil, "filter query as field:value, repeatable")
	fs.StringSliceVar(&qf.fl, "fl", nil, "fields to return")
	fs.StringArrayVar(&qf.sort, "sort", nil, "sort as field:asc|desc, repeatable")
	fs.IntVar(&qf.start, "start", 0, "offset of the first document")
	fs.IntVar(&qf.rows, "rows", 0, "number of documents to return")
	fs.StringArrayVar(&qf.facetFields, "facet-field", nil, "field to facet on, repeatable")
	fs.StringVar(&qf.defType, "defType", "", "query parser, dismax or edismax")
	fs.StringVar(&qf.wt, "wt", "", "response writer, json by default")
}

func (qf *queryFlags) build(cmd *cobra.Command, q *query.Query) (*query.Query, error) {
	switch qf.defType {
	case "":
	case "dismax":
		q.Dismax()
	case "edismax":
		q.Edismax()
	default:
		return nil, fmt.Errorf("unknown defType %q", qf.defType)
	}

	if qf.q == "" {
		q.Q(nil)
	} else {
		q.Q(query.Text(qf.q))
	}

	filters := make([]query.Filter, len(qf.fq))
	for i, fq := range qf.fq {
		field, value, ok := strings.Cut(fq, ":")
		if !ok {
			filters[i] = query.Filter{Value: fq}
			continue
		}
		filters[i] = query.Filter{Field: field, Value: value}
	}
	q.Fq(filters...)
	q.Fl(qf.fl...)

	sorts := make([]query.SortField, len(qf.sort))
	for i, s := range qf.sort {
		field, order, ok := strings.Cut(s, ":")
		if !ok || (order != "asc" && order != "desc") {
			return nil, fmt.Errorf("invalid sort %q, want field:asc or field:desc", s)
		}
		sorts[i] = query.SortField{Field: field, Order: order}
	}
	q.Sort(sorts...)

	flags := cmd.Flags()
	if flags.Changed("start") {
		q.Start(qf.start)
	}
	if flags.Changed("rows") {
		q.Rows(qf.rows)
	}
	if len(qf.facetFields) > 0 {
		q.Facet(&query.FacetOptions{Field: qf.facetFields})
	}
	if qf.wt != "" {
		q.Wt(qf.wt)
	}

	return q, nil
}

func (a *app) queryCmd() *cobra.Command {
	var qf queryFlags

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print the encoded parameters of a query",
		Long: `Builds the query described by the flags and prints its encoded
parameter string without contacting Solr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := qf.build(cmd, query.New(query.WithLogger(a.logger)))
			if err != nil {
				return err
			}
			cmd.Println(q.String())
			return nil
		},
	}
	qf.register(cmd.Flags())

	return cmd
}

func (a *app) searchCmd() *cobra.Command {
	var (
		qf   queryFlags
		post bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the core",
		Long: `Runs the query described by the flags against the select
handler and prints the JSON response.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := qf.build(cmd, query.New(query.WithLogger(a.logger)))
			if err != nil {
				return err
			}

			c, err := a.client(cmd)
			if err != nil {
				return err
			}

			var opts []client.CallOption
			if post {
				opts = append(opts, client.WithPost())
			}

			resp, err := c.Search(cmd.Context(), q, opts...)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			return printJSON(cmd, resp)
		},
	}
	qf.register(cmd.Flags())
	cmd.Flags().BoolVar(&post, "post", false, "send the parameters in a POST body")

	return cmd
}
