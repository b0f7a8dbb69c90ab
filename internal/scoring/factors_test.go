package scoring

import (
	"testing"

	"traduce/internal/books"
)

func TestAuthorMatch(t *testing.T) {
	tests := []struct {
		name      string
		source    []string
		candidate []string
		want      int
	}{
		{"exact match", []string{"Anne Bogart"}, []string{"Anne Bogart"}, MaxAuthorMatch},
		{"inverted form matches", []string{"Bogart, Anne"}, []string{"Anne Bogart"}, MaxAuthorMatch},
		{"diacritics ignored", []string{"Federico García Lorca"}, []string{"Federico Garcia Lorca"}, MaxAuthorMatch},
		{"surname only", []string{"Anne Bogart"}, []string{"A. Bogart"}, PartialAuthorMatch},
		{"no overlap", []string{"Anne Bogart"}, []string{"Peter Brook"}, 0},
		{"any shared author suffices", []string{"Anne Bogart", "Tina Landau"}, []string{"Tina Landau"}, MaxAuthorMatch},
		{"source missing authors", nil, []string{"Anne Bogart"}, 0},
		{"candidate missing authors", []string{"Anne Bogart"}, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := books.SourceBook{Title: "x", Authors: tt.source}
			candidate := books.Candidate{Title: "x", Authors: tt.candidate}
			if got := AuthorMatch(source, candidate); got != tt.want {
				t.Fatalf("AuthorMatch = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTitleSimilarity(t *testing.T) {
	tables := emptyTables(t)

	tests := []struct {
		name      string
		source    string
		candidate string
		wantMin   int
		wantMax   int
	}{
		{"identical", "The Viewpoints Book", "The Viewpoints Book", MaxTitleSimilarity, MaxTitleSimilarity},
		{"article difference ignored", "The Empty Space", "Empty Space", MaxTitleSimilarity, MaxTitleSimilarity},
		{"partial overlap", "The Empty Space", "The Empty Space of Theatre", 12, 39},
		{"unrelated", "The Empty Space", "Stage Lighting Handbook", 0, 0},
		{"missing candidate title", "The Empty Space", "", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := books.SourceBook{Title: tt.source}
			candidate := books.Candidate{Title: tt.candidate}
			got := TitleSimilarity(source, candidate, tables)
			if got < tt.wantMin || got > tt.wantMax {
				t.Fatalf("TitleSimilarity = %d, want in [%d, %d]", got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestTitleSimilarityFloor(t *testing.T) {
	tables := emptyTables(t)
	source := books.SourceBook{Title: "El Reino"}
	candidate := books.Candidate{Title: "Kingdom"}
	if got := TitleSimilarity(source, candidate, tables); got != 0 {
		t.Fatalf("expected floor to zero low-ratio titles, got %d", got)
	}
}

// A cross-reference hit certifies the candidate as a translation of the
// source, so the title factor scores full credit even though the titles are
// in different languages.
func TestTitleSimilarityLinkedTranslation(t *testing.T) {
	tables := linkedTables(t, "9780743273565", "9788437604947")
	source := books.SourceBook{Title: "El Reino", ISBN13: "9780743273565"}
	candidate := books.Candidate{Title: "The Kingdom", ISBN13: "9788437604947"}
	if got := TitleSimilarity(source, candidate, tables); got != MaxTitleSimilarity {
		t.Fatalf("TitleSimilarity for linked pair = %d, want %d", got, MaxTitleSimilarity)
	}
}

func TestPublisherKnown(t *testing.T) {
	tables := publisherTables(t, "Paso de Gato")
	if got := PublisherKnown(books.Candidate{Publisher: "Paso de Gato"}, tables); got != MaxPublisherKnown {
		t.Fatalf("PublisherKnown = %d, want %d", got, MaxPublisherKnown)
	}
	if got := PublisherKnown(books.Candidate{Publisher: "Penguin"}, tables); got != 0 {
		t.Fatalf("PublisherKnown(unknown) = %d, want 0", got)
	}
	if got := PublisherKnown(books.Candidate{}, tables); got != 0 {
		t.Fatalf("PublisherKnown(missing) = %d, want 0", got)
	}
}

func TestISBNLinked(t *testing.T) {
	tables := linkedTables(t, "9780743273565", "9788437604947")

	source := books.SourceBook{ISBN13: "978-0-7432-7356-5"}
	linked := books.Candidate{ISBN13: "9788437604947"}
	unlinked := books.Candidate{ISBN13: "9780000000000"}

	if got := ISBNLinked(source, linked, tables); got != MaxISBNLinked {
		t.Fatalf("ISBNLinked = %d, want %d", got, MaxISBNLinked)
	}
	if got := ISBNLinked(source, unlinked, tables); got != 0 {
		t.Fatalf("ISBNLinked(unlinked) = %d, want 0", got)
	}
	if got := ISBNLinked(books.SourceBook{}, linked, tables); got != 0 {
		t.Fatalf("ISBNLinked(no source isbn) = %d, want 0", got)
	}
}

func TestCategoryMatch(t *testing.T) {
	source := books.SourceBook{Categories: []string{"Performing Arts", "Drama"}}
	if got := CategoryMatch(source, books.Candidate{Categories: []string{"drama"}}); got != MaxCategoryMatch {
		t.Fatalf("CategoryMatch = %d, want %d", got, MaxCategoryMatch)
	}
	if got := CategoryMatch(source, books.Candidate{Categories: []string{"Cooking"}}); got != 0 {
		t.Fatalf("CategoryMatch(disjoint) = %d, want 0", got)
	}
	if got := CategoryMatch(source, books.Candidate{}); got != 0 {
		t.Fatalf("CategoryMatch(missing) = %d, want 0", got)
	}
}

func TestDateReasonable(t *testing.T) {
	tests := []struct {
		name          string
		sourceYear    int
		candidateYear int
		want          int
	}{
		{"same year", 1990, 1990, MaxDateReasonable},
		{"within window", 1990, 2005, MaxDateReasonable},
		{"window edge", 1990, 2020, MaxDateReasonable},
		{"past window", 1990, 2021, 0},
		{"before source", 1990, 1989, 0},
		{"source year missing", 0, 2005, 0},
		{"candidate year missing", 1990, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := books.SourceBook{Year: tt.sourceYear}
			candidate := books.Candidate{Year: tt.candidateYear}
			if got := DateReasonable(source, candidate); got != tt.want {
				t.Fatalf("DateReasonable = %d, want %d", got, tt.want)
			}
		})
	}
}

// Factor outputs must stay within their declared bounds for arbitrary inputs.
func TestFactorBounds(t *testing.T) {
	tables := linkedTables(t, "9780743273565", "9788437604947")
	sources := []books.SourceBook{
		{},
		{Title: "El Reino", Authors: []string{"X"}, ISBN13: "9780743273565", Year: 1990, Categories: []string{"Drama"}},
		{Title: "The Empty Space", Authors: []string{"Peter Brook", "Brook, Peter"}},
	}
	candidates := []books.Candidate{
		{},
		{Title: "The Kingdom", Authors: []string{"X"}, ISBN13: "9788437604947", Publisher: "Paso de Gato", Year: 1995, Categories: []string{"Drama"}},
		{Title: "El espacio vacío", Authors: []string{"Brook"}},
	}
	for _, source := range sources {
		for _, candidate := range candidates {
			breakdown := Score(source, candidate, tables)
			checkBound(t, "authorMatch", breakdown.AuthorMatch, MaxAuthorMatch)
			checkBound(t, "titleSimilarity", breakdown.TitleSimilarity, MaxTitleSimilarity)
			checkBound(t, "publisherKnown", breakdown.PublisherKnown, MaxPublisherKnown)
			checkBound(t, "isbnLinked", breakdown.ISBNLinked, MaxISBNLinked)
			checkBound(t, "categoryMatch", breakdown.CategoryMatch, MaxCategoryMatch)
			checkBound(t, "dateReasonable", breakdown.DateReasonable, MaxDateReasonable)
			wantTotal := breakdown.AuthorMatch + breakdown.TitleSimilarity + breakdown.PublisherKnown +
				breakdown.ISBNLinked + breakdown.CategoryMatch + breakdown.DateReasonable
			if breakdown.Total != wantTotal {
				t.Fatalf("Total = %d, want exact sum %d", breakdown.Total, wantTotal)
			}
		}
	}
}

func checkBound(t *testing.T, name string, value, max int) {
	t.Helper()
	if value < 0 || value > max {
		t.Fatalf("%s = %d outside [0, %d]", name, value, max)
	}
}
