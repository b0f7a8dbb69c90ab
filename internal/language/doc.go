// Package language provides unified language code normalization and mapping.
//
// All language-related conversions (ISO 639-1, ISO 639-2, display names,
// code matching) are consolidated here so catalog queries, candidate
// filtering, and CLI output agree on what "the same language" means.
package language
