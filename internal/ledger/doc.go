// Package ledger keeps a history of triage runs in a local SQLite database.
//
// Each run is stored as one row in runs with its outcome tallies, and every
// processed annotation file becomes a row in run_files in processing order.
// A run and its files are written in a single transaction. The layout version
// lives in PRAGMA user_version; a database stamped with another version fails
// to open with ErrSchemaMismatch and is never migrated in place.
package ledger
