// Package daemon ties the long-running pieces together: single-instance
// locking, startup rollback of interrupted investigations, and the workflow
// manager lifecycle.
package daemon
