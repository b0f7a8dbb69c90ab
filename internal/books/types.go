package books

import "strings"

// SourceBook is an original-language book record supplied by the caller.
type SourceBook struct {
	Title      string   `json:"title"`
	Subtitle   string   `json:"subtitle,omitempty"`
	Authors    []string `json:"authors,omitempty"`
	ISBN13     string   `json:"isbn_13,omitempty"`
	ISBN10     string   `json:"isbn_10,omitempty"`
	Publisher  string   `json:"publisher,omitempty"`
	Year       int      `json:"year,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Language   string   `json:"language"`
}

// PrimaryAuthor returns the first non-empty author name, or "".
func (b SourceBook) PrimaryAuthor() string {
	for _, author := range b.Authors {
		if trimmed := strings.TrimSpace(author); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// ISBN returns the preferred identifier: ISBN-13 when present, else ISBN-10.
func (b SourceBook) ISBN() string {
	if isbn := NormalizeISBN(b.ISBN13); isbn != "" {
		return isbn
	}
	return NormalizeISBN(b.ISBN10)
}

// Candidate is one external-catalog search hit in source-book shape plus the
// catalog volume identifier and the language the catalog reports for it.
type Candidate struct {
	VolumeID   string   `json:"volume_id"`
	Title      string   `json:"title"`
	Subtitle   string   `json:"subtitle,omitempty"`
	Authors    []string `json:"authors,omitempty"`
	ISBN13     string   `json:"isbn_13,omitempty"`
	ISBN10     string   `json:"isbn_10,omitempty"`
	Publisher  string   `json:"publisher,omitempty"`
	Year       int      `json:"year,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Language   string   `json:"language"`
}

// ISBN returns the candidate's preferred identifier, ISBN-13 first.
func (c Candidate) ISBN() string {
	if isbn := NormalizeISBN(c.ISBN13); isbn != "" {
		return isbn
	}
	return NormalizeISBN(c.ISBN10)
}

// NormalizeISBN strips separators and whitespace from an ISBN string so that
// catalog-supplied and caller-supplied identifiers compare equal. Returns ""
// for input that cannot be an ISBN (wrong length after stripping).
func NormalizeISBN(raw string) string {
	var builder strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			builder.WriteRune(r)
		case r == 'x' || r == 'X':
			builder.WriteRune('X')
		}
	}
	cleaned := builder.String()
	if len(cleaned) != 10 && len(cleaned) != 13 {
		return ""
	}
	return cleaned
}
