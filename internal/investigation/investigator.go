package investigation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"traduce/internal/books"
	"traduce/internal/config"
	"traduce/internal/crossref"
	"traduce/internal/investigation/gbooks"
	"traduce/internal/language"
	"traduce/internal/logging"
	"traduce/internal/scoring"
	"traduce/internal/services"
)

// Result is the outcome of one investigation. Winner is nil unless the best
// candidate cleared the low-confidence floor.
type Result struct {
	Found           bool              `json:"found"`
	Method          scoring.Method    `json:"method"`
	ConfidenceScore int               `json:"confidence_score"`
	Breakdown       scoring.Breakdown `json:"confidence_breakdown"`
	Winner          *books.Candidate  `json:"winning_candidate,omitempty"`
	Notes           []string          `json:"notes"`
}

// Investigator orchestrates candidate fetching, scoring, and verdict
// selection. It is safe for concurrent use; every call is independent.
type Investigator struct {
	cfg     *config.Config
	logger  *slog.Logger
	tables  *crossref.Tables
	catalog gbooks.Searcher
}

// Option configures an Investigator.
type Option func(*Investigator)

// WithCatalog injects a catalog searcher, replacing the HTTP client built
// from config. Tests use this to supply fakes.
func WithCatalog(searcher gbooks.Searcher) Option {
	return func(inv *Investigator) {
		if searcher != nil {
			inv.catalog = searcher
		}
	}
}

// New builds an Investigator from config. A nil tables pointer gets the
// built-in defaults so scoring never dereferences nil.
func New(cfg *config.Config, logger *slog.Logger, tables *crossref.Tables, opts ...Option) (*Investigator, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if tables == nil {
		tables = crossref.Default()
	}
	inv := &Investigator{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "investigation"),
		tables: tables,
	}
	for _, opt := range opts {
		opt(inv)
	}
	if inv.catalog == nil {
		timeout := time.Duration(cfg.Catalog.TimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client, err := gbooks.New(cfg.Catalog.BaseURL, cfg.Catalog.APIKey,
			gbooks.WithHTTPClient(&http.Client{Timeout: timeout}))
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "investigation", "catalog client", "invalid catalog settings", err)
		}
		inv.catalog = client
	}
	return inv, nil
}

// Investigate runs the full pipeline for one source record. It returns a
// typed error for catalog outages and propagates context cancellation; all
// per-candidate problems are absorbed into the notes trail.
func (inv *Investigator) Investigate(ctx context.Context, source books.SourceBook, targetLanguage string) (*Result, error) {
	if strings.TrimSpace(source.Title) == "" {
		return nil, services.Wrap(services.ErrValidation, "investigation", "validate", "source title required", nil)
	}
	target := language.ToISO2(targetLanguage)
	if target == "" {
		return nil, services.Wrap(services.ErrValidation, "investigation", "validate",
			fmt.Sprintf("unrecognized target language %q", targetLanguage), nil)
	}

	log := logging.WithContext(ctx, inv.logger)
	log.Info("investigation started",
		logging.String("title", source.Title),
		logging.String("target_language", target))

	notes := make([]string, 0, 8)
	candidates, err := inv.fetchCandidates(ctx, source, target, &notes)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		notes = append(notes, "no candidates found in target language")
		log.Info("investigation finished", logging.String("method", string(scoring.MethodNotFound)))
		return &Result{Method: scoring.MethodNotFound, Notes: notes}, nil
	}

	scored := inv.scoreCandidates(source, candidates)
	best := scoring.SelectBest(scored)
	winner := scored[best]
	method := scoring.MethodFromTotal(winner.Breakdown.Total)

	for i, entry := range scored {
		if i == best {
			continue
		}
		if entry.Breakdown.Total < scoring.LowConfidenceThreshold {
			continue
		}
		notes = append(notes, rejectionNote(source, entry))
	}

	result := &Result{
		Method:          method,
		ConfidenceScore: winner.Breakdown.Total,
		Breakdown:       winner.Breakdown,
		Notes:           notes,
	}
	switch method {
	case scoring.MethodNotFound:
		result.Notes = append(result.Notes,
			fmt.Sprintf("best candidate %q scored %d, below reporting floor %d",
				winner.Candidate.Title, winner.Breakdown.Total, scoring.LowConfidenceThreshold))
	default:
		result.Found = true
		candidate := winner.Candidate
		result.Winner = &candidate
	}

	log.Info("investigation finished",
		logging.String("method", string(method)),
		logging.Int("score", winner.Breakdown.Total),
		logging.Int("candidates", len(candidates)))
	return result, nil
}

// fetchCandidates runs the tiered catalog queries sequentially: an ISBN
// lookup when the source has one, then title plus author, then a single
// relaxed title-only query if nothing matched yet. Results are deduplicated
// by volume ID, filtered to the target language, and capped at the
// configured candidate limit.
func (inv *Investigator) fetchCandidates(ctx context.Context, source books.SourceBook, target string, notes *[]string) ([]books.Candidate, error) {
	queries := make([]gbooks.Query, 0, 3)
	if isbn := source.ISBN(); isbn != "" {
		queries = append(queries, gbooks.Query{ISBN: isbn})
	}
	primary := gbooks.Query{Title: source.Title, Author: source.PrimaryAuthor()}
	if primary.Author == "" {
		primary = gbooks.Query{Title: source.Title}
	}
	queries = append(queries, primary)

	limit := inv.candidateLimit()
	opts := gbooks.SearchOptions{Language: target, MaxResults: limit}

	seen := make(map[string]struct{})
	var candidates []books.Candidate

	runQuery := func(query gbooks.Query) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		resp, err := inv.catalog.SearchVolumes(ctx, query, opts)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, gbooks.ErrUnavailable) {
				return services.Wrap(services.ErrCatalogUnavailable, "investigation", "catalog search", "", err)
			}
			return services.Wrap(services.ErrTransient, "investigation", "catalog search", "", err)
		}
		accepted := 0
		for _, volume := range resp.Items {
			candidate, ok := volume.Candidate()
			if !ok {
				*notes = append(*notes, fmt.Sprintf("skipped malformed candidate %q", volume.ID))
				continue
			}
			if candidate.Language != "" && !language.Matches(candidate.Language, target) {
				continue
			}
			key := candidate.VolumeID
			if key == "" {
				key = candidate.Title + "|" + candidate.Publisher
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if len(candidates) < limit {
				candidates = append(candidates, candidate)
				accepted++
			}
		}
		*notes = append(*notes, fmt.Sprintf("query %q returned %d items, %d candidates accepted",
			query.Encode(), len(resp.Items), accepted))
		return nil
	}

	for _, query := range queries {
		if err := runQuery(query); err != nil {
			return nil, err
		}
	}

	if len(candidates) == 0 && inv.cfg.Investigation.RelaxedTitleSearch && primary.Author != "" {
		relaxed := gbooks.Query{Title: source.Title}
		*notes = append(*notes, "no candidates from primary query, retrying with title only")
		if err := runQuery(relaxed); err != nil {
			return nil, err
		}
	}

	return candidates, nil
}

// scoreCandidates evaluates every candidate in parallel. The factors are
// pure functions over independent inputs, so the only coordination needed
// is the index-addressed results slice. Fetch order is preserved.
func (inv *Investigator) scoreCandidates(source books.SourceBook, candidates []books.Candidate) []scoring.Scored {
	scored := make([]scoring.Scored, len(candidates))
	var wg sync.WaitGroup
	for i, candidate := range candidates {
		wg.Add(1)
		go func(i int, candidate books.Candidate) {
			defer wg.Done()
			scored[i] = scoring.Scored{
				Candidate: candidate,
				Breakdown: scoring.Score(source, candidate, inv.tables),
			}
		}(i, candidate)
	}
	wg.Wait()
	return scored
}

func (inv *Investigator) candidateLimit() int {
	limit := inv.cfg.Investigation.MaxCandidates
	if limit <= 0 || limit > gbooks.MaxResultsLimit {
		return gbooks.MaxResultsLimit
	}
	return limit
}

func rejectionNote(source books.SourceBook, entry scoring.Scored) string {
	reasons := make([]string, 0, 2)
	if entry.Breakdown.AuthorMatch == 0 {
		reasons = append(reasons, "author mismatch")
	} else if entry.Breakdown.AuthorMatch < scoring.MaxAuthorMatch {
		reasons = append(reasons, "partial author match")
	}
	reasons = append(reasons, fmt.Sprintf("title similarity %.2f", scoring.TitleRatio(source, entry.Candidate)))
	return fmt.Sprintf("rejected %q: %s (score %d)",
		entry.Candidate.Title, strings.Join(reasons, ", "), entry.Breakdown.Total)
}
