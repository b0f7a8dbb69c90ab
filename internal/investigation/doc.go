// Package investigation implements the translation-match engine. An
// Investigator takes a source-language book record, fetches translation
// candidates from the external catalog, scores them, and returns a verdict
// with a per-factor breakdown and a notes trail. The engine is stateless
// and never writes to storage; persistence is the caller's job.
package investigation
