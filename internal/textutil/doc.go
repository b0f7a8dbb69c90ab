// Package textutil provides text comparison primitives for bibliographic
// matching.
//
// The primary use cases are:
//   - Creating token-based fingerprints from titles for comparison
//   - Computing cosine similarity between fingerprints
//   - Computing edit-distance ratios for short strings where token
//     vectors are too coarse
//
// Fingerprints use term frequency vectors normalized for efficient
// comparison. Tokenization lowercases text, splits on non-alphanumeric
// characters, and filters single-character tokens.
package textutil
