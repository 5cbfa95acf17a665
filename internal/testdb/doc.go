// Package testdb provides utilities specifically for database testing.
//
// Tests call Open to get a migrated PostgreSQL connection. When no database
// URL is configured the test is skipped locally and fails in CI, so a
// misconfigured pipeline never passes silently.
package testdb
