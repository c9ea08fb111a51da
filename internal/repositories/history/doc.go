// Package history provides the persistence layer for archived analyses.
//
// # Overview
//
// The package defines a Repository interface for storing, listing, and
// deleting analysis records (see internal/models), plus a SQLite-backed
// implementation (SQLiteRepository) working over a dbx.DBTX, so the same
// code runs standalone or inside a transaction.
//
// # Data Model
//
// Each row stores the record's identity and timestamp, file metadata, an
// optional preview data URL, the verdict serialized as JSON, and the
// accounted size in bytes used for storage budgeting. Listings return rows
// newest first. Rows whose verdict JSON cannot be decoded are skipped on
// read rather than failing the whole listing.
//
// # Storage accounting
//
// RecordSize computes the figure written to the size_bytes column;
// StoredBytes sums it. Budget decisions made from these two values are
// therefore consistent by construction.
//
// Key Types
//
//   - type Repository        — interface used by the history service
//   - type SQLiteRepository  — SQLite implementation over dbx.DBTX
package history
