// Package workflow drives queued investigations. The manager polls the
// queue, claims one pending book at a time, runs the investigation engine,
// and persists the verdict. Claiming is the two-phase commit around the
// engine call: a record is marked checking before the engine runs and moved
// to a terminal status (or back to pending on catalog outages) afterwards.
package workflow
