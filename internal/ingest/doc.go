// Package ingest turns an uploaded CSV file into validated song triples.
//
// [Parse] runs the whole pipeline and is all-or-nothing: the first invalid row aborts the batch.
//
//  1. [CheckContentType] : only text/csv, text/plain and application/vnd.ms-excel are accepted
//  2. [DetectDelimiter] : the first line decides between ';', tab and ','
//  3. Header resolution : column names are matched case-insensitively against a set of aliases
//     ("Song Name", "Band", "Year", ...)
//  4. Row normalization : name and band are trimmed and lowercased, year is trimmed and parsed as a base-10 integer
//
// Errors are typed so callers can report them precisely: [*HeaderError], [*RowError] and [*ParseError]
// wrap the sentinels [ErrMissingColumn], [ErrInvalidRow] and [ErrMalformedCSV].
package ingest
