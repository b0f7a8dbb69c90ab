package scoring

import (
	"math"

	"traduce/internal/books"
	"traduce/internal/crossref"
	"traduce/internal/normalize"
	"traduce/internal/textutil"
)

// AuthorMatch scores shared authorship: a full normalized name shared by both
// records scores the maximum, a shared surname scores partial credit, and no
// overlap scores zero.
func AuthorMatch(source books.SourceBook, candidate books.Candidate) int {
	if len(source.Authors) == 0 || len(candidate.Authors) == 0 {
		return 0
	}

	sourceNames := make(map[string]struct{}, len(source.Authors))
	sourceSurnames := make(map[string]struct{}, len(source.Authors))
	for _, author := range source.Authors {
		if name := normalize.Author(author); name != "" {
			sourceNames[name] = struct{}{}
		}
		if surname := normalize.Surname(author); surname != "" {
			sourceSurnames[surname] = struct{}{}
		}
	}

	surnameHit := false
	for _, author := range candidate.Authors {
		if name := normalize.Author(author); name != "" {
			if _, ok := sourceNames[name]; ok {
				return MaxAuthorMatch
			}
		}
		if surname := normalize.Surname(author); surname != "" {
			if _, ok := sourceSurnames[surname]; ok {
				surnameHit = true
			}
		}
	}
	if surnameHit {
		return PartialAuthorMatch
	}
	return 0
}

// TitleRatio computes the raw string-similarity ratio between the normalized
// titles, in [0, 1]. Token cosine similarity is the primary measure;
// edit-distance ratio backs it up for one-word titles where token vectors
// collapse to a binary signal.
func TitleRatio(source books.SourceBook, candidate books.Candidate) float64 {
	a := normalize.Title(source.Title)
	b := normalize.Title(candidate.Title)
	if a == "" || b == "" {
		return 0
	}
	cosine := textutil.CosineSimilarity(textutil.NewFingerprint(a), textutil.NewFingerprint(b))
	edit := textutil.LevenshteinRatio(a, b)
	return math.Max(cosine, edit)
}

// TitleSimilarity scales the title ratio linearly onto [0, 40], flooring
// ratios below TitleRatioFloor to zero. An ISBN-confirmed translation pair
// scores the maximum outright: the titles are the same work in two
// languages, so string comparison across them is meaningless.
func TitleSimilarity(source books.SourceBook, candidate books.Candidate, tables *crossref.Tables) int {
	if isbnLinked(source, candidate, tables) {
		return MaxTitleSimilarity
	}
	ratio := TitleRatio(source, candidate)
	if ratio < TitleRatioFloor {
		return 0
	}
	return int(math.Round(ratio * MaxTitleSimilarity))
}

// PublisherKnown scores candidates published by an allow-listed translation
// publisher.
func PublisherKnown(candidate books.Candidate, tables *crossref.Tables) int {
	if tables.KnownPublisher(candidate.Publisher) {
		return MaxPublisherKnown
	}
	return 0
}

// ISBNLinked scores candidates whose ISBN the cross-reference table records
// as a translation of the source edition.
func ISBNLinked(source books.SourceBook, candidate books.Candidate, tables *crossref.Tables) int {
	if isbnLinked(source, candidate, tables) {
		return MaxISBNLinked
	}
	return 0
}

func isbnLinked(source books.SourceBook, candidate books.Candidate, tables *crossref.Tables) bool {
	source13 := source.ISBN13
	source10 := source.ISBN10
	for _, sourceISBN := range []string{source13, source10} {
		if sourceISBN == "" {
			continue
		}
		for _, candidateISBN := range []string{candidate.ISBN13, candidate.ISBN10} {
			if candidateISBN == "" {
				continue
			}
			if tables.Linked(sourceISBN, candidateISBN) {
				return true
			}
		}
	}
	return false
}

// CategoryMatch scores a shared category/subject tag between the records.
func CategoryMatch(source books.SourceBook, candidate books.Candidate) int {
	if len(source.Categories) == 0 || len(candidate.Categories) == 0 {
		return 0
	}
	sourceTags := make(map[string]struct{}, len(source.Categories))
	for _, tag := range source.Categories {
		if folded := normalize.Fold(tag); folded != "" {
			sourceTags[folded] = struct{}{}
		}
	}
	for _, tag := range candidate.Categories {
		if folded := normalize.Fold(tag); folded != "" {
			if _, ok := sourceTags[folded]; ok {
				return MaxCategoryMatch
			}
		}
	}
	return 0
}

// DateReasonable scores candidates published within the plausible
// translation lag window: the source year through thirty years after it.
// Missing years on either side score zero.
func DateReasonable(source books.SourceBook, candidate books.Candidate) int {
	if source.Year == 0 || candidate.Year == 0 {
		return 0
	}
	if candidate.Year < source.Year {
		return 0
	}
	if candidate.Year > source.Year+TranslationLagYears {
		return 0
	}
	return MaxDateReasonable
}
