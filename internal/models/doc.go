// Package models defines the domain entities for the songtable service.
//
// The package contains:
//   - [Song] : a persisted (name, band, year) row with a generated ID and insertion sequence
//   - [SongInput] : a normalized, validated triple produced by CSV ingestion
//   - [OrderKey] : the column a song list is sorted by
//   - [UploadResult] and [ClearResult] : JSON bodies returned by the upload and clear endpoints
//
// Persistent entities implement the [Model] interface providing ID, timestamps and validation.
// The (name, band, year) triple is the natural key: storing the same triple twice refreshes the
// existing row instead of creating a duplicate.
package models
