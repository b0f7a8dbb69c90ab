// Package scoring implements the translation-match confidence model: six
// independent weighted factors, their aggregation into a breakdown, and
// winner selection across scored candidates.
//
// Every factor is a pure function over the source record, one candidate, and
// the explicit crossref tables. Factors never fail; a record missing the
// fields a factor needs scores 0 for that factor.
package scoring
