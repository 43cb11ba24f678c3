// Package search filters invoice records by a free-text query and splits
// display text into matched and unmatched spans for highlighting.
//
// Matching is literal and case-insensitive. Query metacharacters carry no
// special meaning, so "(" or "." match themselves.
package search

import (
	"regexp"
	"strings"
)

// Span is a contiguous piece of display text.
type Span struct {
	Text    string `json:"text"`
	Matched bool   `json:"matched,omitempty"`
}

// Matcher is a compiled query. The zero value and a Matcher built from an
// empty query match everything and highlight nothing.
type Matcher struct {
	query string
	regex *regexp.Regexp
}

// Normalize trims surrounding whitespace from a raw query.
func Normalize(query string) string {
	return strings.TrimSpace(query)
}

// Compile builds a Matcher for query.
func Compile(query string) *Matcher {
	query = Normalize(query)
	m := &Matcher{query: query}
	if query != "" {
		m.regex = regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	}
	return m
}

// Query returns the normalized query text.
func (m *Matcher) Query() string {
	if m == nil {
		return ""
	}
	return m.query
}

// Empty reports whether the matcher accepts every record.
func (m *Matcher) Empty() bool {
	return m == nil || m.regex == nil
}

// Match reports whether text contains the query.
func (m *Matcher) Match(text string) bool {
	if m.Empty() {
		return true
	}
	return m.regex.MatchString(text)
}

// MatchAny reports whether any of fields contains the query.
func (m *Matcher) MatchAny(fields []string) bool {
	if m.Empty() {
		return true
	}
	for _, f := range fields {
		if m.regex.MatchString(f) {
			return true
		}
	}
	return false
}

// Spans splits text around every non-overlapping occurrence of the query,
// keeping the original casing. Joining the Text of the result yields text.
func (m *Matcher) Spans(text string) []Span {
	if m.Empty() || text == "" {
		return []Span{{Text: text}}
	}

	indices := m.regex.FindAllStringIndex(text, -1)
	if len(indices) == 0 {
		return []Span{{Text: text}}
	}

	spans := make([]Span, 0, 2*len(indices)+1)
	last := 0
	for _, idx := range indices {
		if idx[0] > last {
			spans = append(spans, Span{Text: text[last:idx[0]]})
		}
		spans = append(spans, Span{Text: text[idx[0]:idx[1]], Matched: true})
		last = idx[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}
	return spans
}

// Filter returns the records for which at least one field contains query,
// in their original order. An empty query returns every record. The result
// never aliases records.
func Filter[T any](records []T, query string, fields func(T) []string) []T {
	return FilterWith(records, Compile(query), fields)
}

// FilterWith is Filter with a precompiled Matcher.
func FilterWith[T any](records []T, m *Matcher, fields func(T) []string) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if m.MatchAny(fields(r)) {
			out = append(out, r)
		}
	}
	return out
}

// Highlight splits text into spans matched against query.
func Highlight(text, query string) []Span {
	return Compile(query).Spans(text)
}

// Join concatenates span texts.
func Join(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Render joins spans, passing matched text through style.
func Render(spans []Span, style func(string) string) string {
	if style == nil {
		return Join(spans)
	}
	var b strings.Builder
	for _, s := range spans {
		if s.Matched {
			b.WriteString(style(s.Text))
		} else {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}
