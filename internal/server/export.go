package server

import (
	"fmt"
	"net/http"

	"github.com/desertthunder/songtable/internal/formatter"
)

var exportContentTypes = map[formatter.Format]string{
	formatter.FormatCSV:      "text/csv; charset=utf-8",
	formatter.FormatJSON:     "application/json",
	formatter.FormatMarkdown: "text/markdown; charset=utf-8",
	formatter.FormatText:     "text/plain; charset=utf-8",
}

// ExportHandler serves the song list as a download, e.g. GET /api/songs/export?format=csv&order=year.
func ExportHandler(library Library) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		format, err := formatter.ParseFormat(q.Get("format"))
		if err != nil {
			WriteError(w, err)
			return
		}

		songs, err := library.List(r.Context(), q.Get("order"))
		if err != nil {
			WriteError(w, err)
			return
		}

		data, err := formatter.Export(songs, format)
		if err != nil {
			WriteError(w, err)
			return
		}

		w.Header().Set("Content-Type", exportContentTypes[format])
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="songs.%s"`, format.Ext()))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	})
}
