package scoring

import "fmt"

// Factor score ceilings. The author and title factors dominate deliberately:
// publisher, ISBN, category, and date are corroborating signals, not
// sufficient evidence on their own.
const (
	MaxAuthorMatch     = 40
	MaxTitleSimilarity = 40
	MaxPublisherKnown  = 10
	MaxISBNLinked      = 10
	MaxCategoryMatch   = 5
	MaxDateReasonable  = 5

	// PartialAuthorMatch is awarded for a surname-only overlap.
	PartialAuthorMatch = 20

	// TitleRatioFloor is the similarity ratio below which the title factor
	// scores zero rather than a small linear value.
	TitleRatioFloor = 0.3

	// TranslationLagYears bounds how long after the source edition a
	// plausible translation may appear.
	TranslationLagYears = 30
)

// Verdict thresholds. Downstream consumers branch on the three tiers, so
// these cutoffs are part of the contract.
const (
	ConfidentThreshold     = 80
	LowConfidenceThreshold = 40
)

// Method is the closed set of verdict tiers.
type Method string

const (
	MethodNotFound      Method = "not_found"
	MethodLowConfidence Method = "low_confidence_match"
	MethodConfident     Method = "confident_match"
)

// MethodFromTotal maps a total confidence score to its verdict tier.
func MethodFromTotal(total int) Method {
	switch {
	case total >= ConfidentThreshold:
		return MethodConfident
	case total >= LowConfidenceThreshold:
		return MethodLowConfidence
	default:
		return MethodNotFound
	}
}

// ParseMethod validates a stored method string.
func ParseMethod(raw string) (Method, error) {
	switch Method(raw) {
	case MethodNotFound, MethodLowConfidence, MethodConfident:
		return Method(raw), nil
	}
	return "", fmt.Errorf("unknown verdict method %q", raw)
}

// Breakdown is the per-factor decomposition of a candidate's confidence
// score. Recomputed per candidate, never mutated after creation.
type Breakdown struct {
	AuthorMatch     int `json:"authorMatch"`
	TitleSimilarity int `json:"titleSimilarity"`
	PublisherKnown  int `json:"publisherKnown"`
	ISBNLinked      int `json:"isbnLinked"`
	CategoryMatch   int `json:"categoryMatch"`
	DateReasonable  int `json:"dateReasonable"`
	Total           int `json:"total"`
}

func (b Breakdown) sum() int {
	return b.AuthorMatch + b.TitleSimilarity + b.PublisherKnown +
		b.ISBNLinked + b.CategoryMatch + b.DateReasonable
}
