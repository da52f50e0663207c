// Package web implements a server-rendered page mirroring the TUI song table.
//
// # Routes
//
//	GET  /        the table, built from query parameters
//	POST /upload  multipart CSV in field "file", then redirect to /
//	POST /clear   delete every song, then redirect to /
//
// # State
//
// The page keeps no server-side session. All table state lives in the URL:
//
//	q     search text, matched against song, band and year
//	sort  band, name or year (absent: server order)
//	dir   asc or desc
//	page  1-based page, clamped to the filtered rows
//	size  10, 25 or 50
//
// [Params.Apply] turns the parameters into a ui.TableState, so filtering, sorting and pagination
// behave exactly like the TUI. Upload and clear redirect with a flash message in msg or err.
//
// # Templates
//
// html/template files are embedded from templates/. index.html renders the table, sortable headers,
// pager and the upload/clear forms.
package web
