// Package preflight verifies the daemon's runtime requirements before the
// workflow starts: writable state directories, enough free disk for the
// queue database, a reachable catalog, and loadable cross-reference tables.
// Checks report results instead of failing fast so the CLI can show all
// problems at once.
package preflight
