// Package ports defines the interfaces between the core use cases and the
// adapters that talk to SMTP, TMDB, the database and the cache.
// Test doubles for these interfaces live in internal/mocks.
package ports
