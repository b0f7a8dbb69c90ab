package books

import "testing"

func TestNormalizeISBN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"isbn13 with hyphens", "978-0-7432-7356-5", "9780743273565"},
		{"isbn10 with spaces", "0 7432 7356 7", "0743273567"},
		{"isbn10 check digit x", "155404295x", "155404295X"},
		{"too short", "12345", ""},
		{"empty", "", ""},
		{"garbage", "not an isbn", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeISBN(tt.input); got != tt.want {
				t.Fatalf("NormalizeISBN(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSourceBookISBNPrefers13(t *testing.T) {
	book := SourceBook{ISBN13: "978-0-7432-7356-5", ISBN10: "0743273567"}
	if got := book.ISBN(); got != "9780743273565" {
		t.Fatalf("expected isbn13, got %q", got)
	}
	book = SourceBook{ISBN10: "0743273567"}
	if got := book.ISBN(); got != "0743273567" {
		t.Fatalf("expected isbn10 fallback, got %q", got)
	}
}

func TestPrimaryAuthorSkipsBlanks(t *testing.T) {
	book := SourceBook{Authors: []string{"  ", "Anne Bogart"}}
	if got := book.PrimaryAuthor(); got != "Anne Bogart" {
		t.Fatalf("unexpected primary author %q", got)
	}
	if got := (SourceBook{}).PrimaryAuthor(); got != "" {
		t.Fatalf("expected empty author, got %q", got)
	}
}
