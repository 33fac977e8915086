// Package soldb persists enumeration results to a SQLite database: one row
// per solution with its fingerprint and quality metrics, one row per atom
// position, plus the aggregated pruning counters of the run.
//
// The writer opens the database in WAL mode with performance pragmas and
// bulk-inserts everything inside a single transaction, so a failed write
// never leaves a partial database behind the transaction boundary.
package soldb
