// Package store defines the persistence contract of MinSpirit: a per-device
// key-value store holding JSON values under fixed keys. The interfaces keep
// services independent of the backend (Postgres for the server, SQLite for
// the local CLI, memory for tests).
package store
