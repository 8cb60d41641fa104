// Package postgres implements the internal/store repositories on PostgreSQL
// through database/sql and the pgx driver. It also owns the goose schema
// migrations embedded from the migrations directory.
//
// Stores accept a store.DBTX, so the same code runs against a *sql.DB or
// inside a transaction opened by Repository.RunInTx.
package postgres
