package web

import (
	"bytes"
	"net/http"
	"time"

	"tigerlee/internal/application/projections"
)

// handleSchedulePDF serves the uploaded class schedule, or the bundled
// default when none has been uploaded.
func handleSchedulePDF(w http.ResponseWriter, r *http.Request) {
	doc, err := projections.QueryGetSchedulePDF(r.Context(), projections.GetSchedulePDFDeps{
		Store:   stores.Schedule,
		Default: defaultSchedule,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	if len(doc.Data) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="class-schedule.pdf"`)
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, "class-schedule.pdf", time.Time{}, bytes.NewReader(doc.Data))
}
