// Package repositories implements SQLite persistence for the songtable domain.
//
// Key Implementations:
//   - [SongRepository] : song storage with batch upsert on the (name, band, year) key, ordered listing and clear-all
//
// Sequence numbers provide stable, human-readable ordering (e.g., song #42) independent of UUIDs and creation timestamps.
// They break ties when a list is sorted by a column with repeated values, so two songs by the same band always come back in upload order.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
