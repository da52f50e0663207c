// Package services implements the HTTP client used by the CLI and the TUI to talk to a running songtable server.
//
// # Raw Requests
//
// [APIService] performs raw requests against a base URL and returns an [APIResponse] with the
// status, headers, body and, when the body parses as JSON, the decoded value.
//
// # Song Client
//
// [Client] implements [SongService] on top of [APIService]:
//   - [Client.ListSongs] : GET /api/songs?order=
//   - [Client.UploadCSV] : POST /api/songs/upload as multipart/form-data, field "file", part type text/csv
//   - [Client.ClearSongs] : DELETE /api/songs/clear
//   - [Client.Health] : GET /health
//
// # Error Handling
//
// Non-2xx responses become an [*APIError] carrying the status code and the server's error message.
// APIError wraps [shared.ErrAPIRequest], so callers can match with errors.Is and unpack with errors.As.
package services
