package scoring

import (
	"traduce/internal/books"
	"traduce/internal/crossref"
)

// Score evaluates all six factors for one candidate and returns the
// breakdown. Total is the exact sum of the factors, never reweighted.
func Score(source books.SourceBook, candidate books.Candidate, tables *crossref.Tables) Breakdown {
	breakdown := Breakdown{
		AuthorMatch:     AuthorMatch(source, candidate),
		TitleSimilarity: TitleSimilarity(source, candidate, tables),
		PublisherKnown:  PublisherKnown(candidate, tables),
		ISBNLinked:      ISBNLinked(source, candidate, tables),
		CategoryMatch:   CategoryMatch(source, candidate),
		DateReasonable:  DateReasonable(source, candidate),
	}
	breakdown.Total = breakdown.sum()
	return breakdown
}

// Scored pairs a candidate with its computed breakdown.
type Scored struct {
	Candidate books.Candidate
	Breakdown Breakdown
}

// SelectBest returns the index of the winning candidate, or -1 for an empty
// slice. The winner is the maximum-total candidate; on a tie the candidate
// with an ISBN cross-reference hit wins, and if the tie still stands the
// earlier candidate (catalog relevance order) keeps the spot.
func SelectBest(scored []Scored) int {
	best := -1
	for i, entry := range scored {
		if best < 0 {
			best = i
			continue
		}
		current := scored[best]
		switch {
		case entry.Breakdown.Total > current.Breakdown.Total:
			best = i
		case entry.Breakdown.Total == current.Breakdown.Total &&
			entry.Breakdown.ISBNLinked > 0 && current.Breakdown.ISBNLinked == 0:
			best = i
		}
	}
	return best
}
