package collection

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FilterByText keeps the records whose field loosely contains query, ignoring
// case and accents. An empty query keeps everything.
func FilterByText(records []Record, field, query string) []Record {
	query = strings.TrimSpace(query)
	if query == "" {
		return records
	}
	out := []Record{}
	for _, rec := range records {
		text, ok := rec[field].(string)
		if !ok {
			continue
		}
		if fuzzy.MatchNormalizedFold(query, text) {
			out = append(out, rec)
		}
	}
	return out
}

// Text returns the trimmed string held by field, or "" when it is not a string.
func Text(rec Record, field string) string {
	s, _ := rec[field].(string)
	return strings.TrimSpace(s)
}
