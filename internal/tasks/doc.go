// Package tasks runs the song library operations shared by the HTTP API, the web page and the CLI.
//
// # Core Operations
//
// [LibraryEngine] wraps a [SongStore] (normally repositories.SongRepository):
//
//  1. [LibraryEngine.List] : every song ordered by name, band or year (band when the key is unknown)
//  2. [LibraryEngine.Import] : parse an uploaded CSV with package ingest and upsert it in one transaction
//  3. [LibraryEngine.Clear] : delete every song
//  4. [LibraryEngine.Count] : number of stored songs
//
// # Progress Reporting
//
// Import accepts an optional channel of [ProgressUpdate]. Sends use select with default so a slow
// or absent reader never blocks the import.
//
// # Errors
//
// Validation failures (see package ingest) are returned unchanged so callers can report them.
// Store failures are logged with their cause and returned as [shared.ErrPersistence].
package tasks
