package client

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Response is the normalized body of a Solr JSON response.
type Response struct {
	Header         ResponseHeader
	Result         *Result
	NextCursorMark string

	// Components holds every other top-level key, such as
	// facet_counts, highlighting, spellcheck, suggest or terms.
	Components map[string]json.RawMessage
}

// ResponseHeader is the responseHeader block Solr adds to every response.
type ResponseHeader struct {
	Status int            `json:"status"`
	QTime  int            `json:"QTime"`
	Params map[string]any `json:"params,omitempty"`
}

// Result is the document list of a search response.
type Result struct {
	NumFound      int64             `json:"numFound"`
	Start         int64             `json:"start"`
	MaxScore      *float64          `json:"maxScore,omitempty"`
	NumFoundExact *bool             `json:"numFoundExact,omitempty"`
	Docs          []json.RawMessage `json:"docs"`
}

const (
	headerKey     = "responseHeader"
	resultKey     = "response"
	cursorMarkKey = "nextCursorMark"
)

func (r *Response) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var resp Response
	if v, ok := raw[headerKey]; ok {
		if err := json.Unmarshal(v, &resp.Header); err != nil {
			return fmt.Errorf("%s: %w", headerKey, err)
		}
		delete(raw, headerKey)
	}
	if v, ok := raw[resultKey]; ok {
		if err := json.Unmarshal(v, &resp.Result); err != nil {
			return fmt.Errorf("%s: %w", resultKey, err)
		}
		delete(raw, resultKey)
	}
	if v, ok := raw[cursorMarkKey]; ok {
		if err := json.Unmarshal(v, &resp.NextCursorMark); err != nil {
			return fmt.Errorf("%s: %w", cursorMarkKey, err)
		}
		delete(raw, cursorMarkKey)
	}
	if len(raw) > 0 {
		resp.Components = raw
	}

	*r = resp
	return nil
}

func (r Response) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Components)+3)
	for k, v := range r.Components {
		out[k] = v
	}
	out[headerKey] = r.Header
	if r.Result != nil {
		out[resultKey] = r.Result
	}
	if r.NextCursorMark != "" {
		out[cursorMarkKey] = r.NextCursorMark
	}

	return json.Marshal(out)
}

// Docs returns the raw result documents, or nil when the response
// carries no result.
func (r *Response) Docs() []json.RawMessage {
	if r.Result == nil {
		return nil
	}

	return r.Result.Docs
}

// Component decodes the top-level key name into dest. It reports
// false when the response does not carry the key.
func (r *Response) Component(name string, dest any) (bool, error) {
	v, ok := r.Components[name]
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(v, dest); err != nil {
		return true, fmt.Errorf("decoding %s: %w", name, err)
	}

	return true, nil
}

// Decode unmarshals every raw document into a T.
func Decode[T any](docs []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(docs))
	for i, doc := range docs {
		var v T
		if err := json.Unmarshal(doc, &v); err != nil {
			return nil, fmt.Errorf("decoding doc %d: %w", i, err)
		}
		out = append(out, v)
	}

	return out, nil
}

// truthy reports whether a JSON value is set to something other than
// null, false, zero or the empty string.
func truthy(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	switch string(v) {
	case "", "null", "false", `""`, "0":
		return false
	}

	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		return f != 0
	}

	return true
}
