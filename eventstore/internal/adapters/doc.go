// Package adapters provide database adapter implementations for the SQL journal engines.
//
// This package implements the adapter pattern to support multiple database libraries:
// pgx.Pool, sql.DB, and sqlx.DB. All adapters provide equivalent functionality through
// a common DBAdapter interface, allowing the engines to work with any supported
// connection type. The sql.DB adapter also serves the SQLite engine.
package adapters
