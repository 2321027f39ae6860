package query

import (
	"net/url"
	"strconv"
	"strings"
)

// componentReplacer turns url.QueryEscape output into
// encodeURIComponent output, which is what Solr clients conventionally
// send: spaces as %20 and the marks !'()* left alone.
var componentReplacer = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// escape percent-encodes free text for use as a parameter value.
func escape(s string) string {
	return componentReplacer.Replace(url.QueryEscape(s))
}

func formatBool(v bool) string {
	return strconv.FormatBool(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Bool returns a pointer to v, for optional boolean option fields.
func Bool(v bool) *bool { return &v }

// Int returns a pointer to v, for optional integer option fields.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for optional floating point option fields.
func Float(v float64) *float64 { return &v }
