// Package normalize canonicalizes bibliographic fields for comparison.
//
// All functions are pure and idempotent: normalizing an already-normalized
// value returns it unchanged. Normalized forms are for comparison only;
// records keep their original casing and diacritics everywhere else.
package normalize
