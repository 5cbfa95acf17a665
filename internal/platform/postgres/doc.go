// Package postgres implements the key-value device store on PostgreSQL.
//
// Every device owns the rows of kv_entries carrying its device_id; values are
// stored as jsonb. The schema lives in the embedded goose migrations under
// migrations/ and is applied with Migrate. Database errors are translated to
// the store package sentinels by MapError.
package postgres
