// Package books defines the bibliographic value types shared between the
// queue store, the investigation engine, and the CLI.
//
// SourceBook describes the original-language record under investigation;
// Candidate describes one external-catalog hit considered as a possible
// translation. Both are plain immutable data: the engine never mutates the
// records it is handed, and the store persists them as-is.
package books
