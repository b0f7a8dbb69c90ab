// Package crossref holds the curated reference tables the scoring factors
// consult: the allow-list of known translation publishers and the ISBN
// cross-reference table linking source and target editions.
//
// Tables are plain data loaded from a TOML file (with embedded defaults) and
// passed into the engine explicitly, never read from ambient state, so tests
// can substitute their own.
package crossref
