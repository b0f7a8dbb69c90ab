package gbooks

import "strings"

// Query assembles a volumes search expression from field operators. Zero
// fields are omitted; Terms are appended as bare keywords.
type Query struct {
	Title  string
	Author string
	ISBN   string
	Terms  []string
}

// Encode renders the query string with field operators. Multi-word title and
// author values are quoted so the catalog treats them as phrases.
func (q Query) Encode() string {
	var parts []string
	if isbn := strings.TrimSpace(q.ISBN); isbn != "" {
		parts = append(parts, "isbn:"+isbn)
	}
	if title := strings.TrimSpace(q.Title); title != "" {
		parts = append(parts, "intitle:"+quote(title))
	}
	if author := strings.TrimSpace(q.Author); author != "" {
		parts = append(parts, "inauthor:"+quote(author))
	}
	for _, term := range q.Terms {
		term = strings.TrimSpace(term)
		if term != "" {
			parts = append(parts, term)
		}
	}
	return strings.Join(parts, " ")
}

func quote(value string) string {
	// Embedded quotes would break the operator syntax.
	value = strings.ReplaceAll(value, `"`, "")
	if strings.ContainsAny(value, " \t") {
		return `"` + value + `"`
	}
	return value
}
