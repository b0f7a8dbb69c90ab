package crossref

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"traduce/internal/books"
	"traduce/internal/normalize"
)

//go:embed default_tables.toml
var defaultTables []byte

// Link records editorially confirmed translations of one source edition.
type Link struct {
	Source  string   `toml:"source"`
	Targets []string `toml:"targets"`
}

type fileSchema struct {
	Publishers []string `toml:"publishers"`
	Links      []Link   `toml:"link"`
}

// Tables is the immutable reference data consulted during scoring.
type Tables struct {
	publisherNames []string            // folded, for matching
	publishers     []string            // original casing, for display
	links          map[string][]string // source ISBN -> target ISBNs
}

// Default returns the tables embedded in the binary.
func Default() *Tables {
	tables, err := parse(defaultTables)
	if err != nil {
		// The embedded file ships with the binary; a parse failure is a build defect.
		panic(fmt.Sprintf("crossref: embedded tables invalid: %v", err))
	}
	return tables
}

// Load reads tables from path. An empty path returns the embedded defaults.
func Load(path string) (*Tables, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read crossref tables: %w", err)
	}
	tables, err := parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse crossref tables %s: %w", path, err)
	}
	return tables, nil
}

func parse(raw []byte) (*Tables, error) {
	var schema fileSchema
	if err := toml.Unmarshal(raw, &schema); err != nil {
		return nil, err
	}
	tables := &Tables{
		links: make(map[string][]string, len(schema.Links)),
	}
	for _, name := range schema.Publishers {
		folded := normalize.Fold(name)
		if folded == "" {
			continue
		}
		tables.publisherNames = append(tables.publisherNames, folded)
		tables.publishers = append(tables.publishers, strings.TrimSpace(name))
	}
	for _, link := range schema.Links {
		source := books.NormalizeISBN(link.Source)
		if source == "" {
			return nil, fmt.Errorf("link entry has invalid source isbn %q", link.Source)
		}
		for _, target := range link.Targets {
			normalized := books.NormalizeISBN(target)
			if normalized == "" {
				return nil, fmt.Errorf("link %s has invalid target isbn %q", link.Source, target)
			}
			tables.links[source] = append(tables.links[source], normalized)
		}
	}
	return tables, nil
}

// KnownPublisher reports whether the candidate publisher matches the
// allow-list. Catalog publisher strings are noisy ("Ediciones Cátedra, S.A."),
// so matching is by folded substring in either direction.
func (t *Tables) KnownPublisher(publisher string) bool {
	if t == nil {
		return false
	}
	folded := normalize.Fold(publisher)
	if folded == "" {
		return false
	}
	for _, known := range t.publisherNames {
		if strings.Contains(folded, known) || strings.Contains(known, folded) {
			return true
		}
	}
	return false
}

// Linked reports whether candidateISBN is a recorded translation of
// sourceISBN. Both arguments may be raw (hyphenated) ISBN strings.
func (t *Tables) Linked(sourceISBN, candidateISBN string) bool {
	if t == nil {
		return false
	}
	source := books.NormalizeISBN(sourceISBN)
	candidate := books.NormalizeISBN(candidateISBN)
	if source == "" || candidate == "" {
		return false
	}
	for _, target := range t.links[source] {
		if target == candidate {
			return true
		}
	}
	return false
}

// Publishers returns the allow-listed publisher names in original casing.
func (t *Tables) Publishers() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.publishers))
	copy(out, t.publishers)
	return out
}

// LinkCount returns the number of source editions with recorded translations.
func (t *Tables) LinkCount() int {
	if t == nil {
		return 0
	}
	return len(t.links)
}
