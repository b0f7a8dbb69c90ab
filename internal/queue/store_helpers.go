package queue

import (
	"database/sql"
	"errors"
	"time"
)

const itemColumns = "id, title, author, target_language, fingerprint, source_json, status, method, confidence_score, breakdown_json, winner_json, notes_json, error_message, created_at, updated_at, progress_stage, progress_message, last_heartbeat, needs_review, review_reason"

func scanItem(scanner interface{ Scan(dest ...any) error }) (*Item, error) {
	var (
		id               int64
		title            string
		author           sql.NullString
		targetLanguage   string
		fingerprint      sql.NullString
		sourceJSON       string
		statusStr        string
		method           sql.NullString
		confidenceScore  sql.NullInt64
		breakdownJSON    sql.NullString
		winnerJSON       sql.NullString
		notesJSON        sql.NullString
		errorMessage     sql.NullString
		createdRaw       sql.NullString
		updatedRaw       sql.NullString
		progressStage    sql.NullString
		progressMessage  sql.NullString
		lastHeartbeatRaw sql.NullString
		needsReview      sql.NullInt64
		reviewReason     sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&title,
		&author,
		&targetLanguage,
		&fingerprint,
		&sourceJSON,
		&statusStr,
		&method,
		&confidenceScore,
		&breakdownJSON,
		&winnerJSON,
		&notesJSON,
		&errorMessage,
		&createdRaw,
		&updatedRaw,
		&progressStage,
		&progressMessage,
		&lastHeartbeatRaw,
		&needsReview,
		&reviewReason,
	); err != nil {
		return nil, err
	}

	item := &Item{
		ID:              id,
		Title:           title,
		Author:          author.String,
		TargetLanguage:  targetLanguage,
		Fingerprint:     fingerprint.String,
		SourceJSON:      sourceJSON,
		Status:          Status(statusStr),
		Method:          method.String,
		ConfidenceScore: int(confidenceScore.Int64),
		BreakdownJSON:   breakdownJSON.String,
		WinnerJSON:      winnerJSON.String,
		NotesJSON:       notesJSON.String,
		ErrorMessage:    errorMessage.String,
		ProgressStage:   progressStage.String,
		ProgressMessage: progressMessage.String,
	}
	if needsReview.Valid {
		item.NeedsReview = needsReview.Int64 != 0
	}
	item.ReviewReason = reviewReason.String

	if created, err := parseTimeString(createdRaw.String); err == nil {
		item.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		item.UpdatedAt = updated
	}
	if lastHeartbeatRaw.Valid {
		if heartbeat, err := parseTimeString(lastHeartbeatRaw.String); err == nil {
			item.LastHeartbeat = &heartbeat
		}
	}
	return item, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	v := value.UTC().Format(time.RFC3339Nano)
	return v
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
