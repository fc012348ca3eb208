// Package resilience provides retry with exponential backoff and jitter.
// The database layer uses it to ride out a slow-starting database at boot.
package resilience
