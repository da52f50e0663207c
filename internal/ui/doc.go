// Package ui implements the song table: a pure [TableState] and an interactive terminal interface using
// bubbletea's Elm architecture.
//
// [TableState] holds the full record set fetched from the server and applies, in memory:
//   - a global case-insensitive search over song, band and year
//   - single-column sorting that toggles ascending/descending, comparing values as strings
//   - pagination with 10, 25 or 50 rows per page
//
// Search and page-size changes return to page 1; page moves are clamped to the available pages.
// The web package renders the same state as HTML.
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// It talks to a running server through services.SongService and re-fetches the whole list after every upload or clear.
//
// Keys: / search, 1/2/3 sort by band/song/year, s page size, ←/→ (h/l) page, u upload, x clear (y/n), r refresh, q quit.
// Help is displayed via charmbracelet/bubbles/help.
package ui
