package http

import (
	"errors"
	"net/http"

	"noura/internal/export"
	"noura/internal/log"
)

// handleExport streams the current filtered view as a CSV download. An
// empty filter result still downloads a headers-only file; only a ledger
// with no records at all refuses to export.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := s.current()
	if sess == nil {
		UnauthorizedError("Please sign in first").Write(w)
		return
	}

	now := s.now()
	filter := ParseFilterParams(r.URL.Query())
	filtered := sess.Ledger.Filtered(filter, now)

	payload, err := export.Payload(sess.Ledger.Records(), filtered)
	if err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			UnprocessableEntityError("No expenses to export yet").Write(w)
			return
		}
		s.logger.ErrorContext(ctx, "Export failed",
			log.FieldOperation, log.OpExport,
			log.FieldUser, sess.Username,
			log.FieldError, err)
		InternalServerError("Could not build the export").Write(w)
		return
	}

	filename := export.Filename(sess.Username, now)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(payload))

	s.logger.InfoContext(ctx, "Export generated",
		log.FieldOperation, log.OpExport,
		log.FieldUser, sess.Username,
		"rows", len(filtered),
		"filename", filename)
}
