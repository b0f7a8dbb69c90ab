package queue

import (
	"strings"
	"time"

	"traduce/internal/books"
	"traduce/internal/normalize"
)

// Status represents the lifecycle of a queue item.
type Status string

const (
	StatusPending  Status = "pending"
	StatusChecking Status = "checking"
	StatusFound    Status = "found"
	StatusNoMatch  Status = "no_match"
	StatusReview   Status = "review"
	StatusFailed   Status = "failed"
)

// DaemonStopReason is the error message set when items are failed due to daemon shutdown.
const DaemonStopReason = "Daemon stopped"

var allStatuses = []Status{
	StatusPending,
	StatusChecking,
	StatusFound,
	StatusNoMatch,
	StatusReview,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// DatabaseHealth captures diagnostic information about the queue database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	SchemaVersion    string
	TableExists      bool
	ColumnsPresent   []string
	MissingColumns   []string
	IntegrityCheck   bool
	TotalItems       int
	Error            string
}

// HealthSummary describes aggregated queue counts per key lifecycle states.
type HealthSummary struct {
	Total    int
	Pending  int
	Checking int
	Found    int
	NoMatch  int
	Review   int
	Failed   int
}

// Item represents a queue item persisted in SQLite.
type Item struct {
	ID              int64
	Title           string
	Author          string
	TargetLanguage  string
	Fingerprint     string
	SourceJSON      string
	Status          Status
	Method          string
	ConfidenceScore int
	BreakdownJSON   string
	WinnerJSON      string
	NotesJSON       string
	ErrorMessage    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ProgressStage   string
	ProgressMessage string
	LastHeartbeat   *time.Time
	NeedsReview     bool
	ReviewReason    string
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsProcessing returns true when the status reflects an in-flight investigation.
func (i Item) IsProcessing() bool {
	return i.Status == StatusChecking
}

// IsTerminal reports whether a status represents a finished investigation.
func IsTerminal(status Status) bool {
	switch status {
	case StatusFound, StatusNoMatch, StatusReview, StatusFailed:
		return true
	default:
		return false
	}
}

// SetFailed marks the item as failed with the given error message.
func (i *Item) SetFailed(message string) {
	i.Status = StatusFailed
	i.ErrorMessage = message
	i.ProgressStage = "Failed"
	i.ProgressMessage = message
	i.LastHeartbeat = nil
}

// SetProgress updates the progress fields together.
func (i *Item) SetProgress(stage, message string) {
	i.ProgressStage = stage
	i.ProgressMessage = message
}

// BookFingerprint derives the dedupe key for a source book. Books with an
// ISBN key on it; the rest fall back to normalized title and primary author.
func BookFingerprint(source books.SourceBook) string {
	if isbn := source.ISBN(); isbn != "" {
		return "isbn:" + isbn
	}
	return normalize.Title(source.Title) + "|" + normalize.Author(source.PrimaryAuthor())
}
