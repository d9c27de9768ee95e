package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"noura/internal/core"
	"noura/internal/log"
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := s.current()
	if sess == nil {
		UnauthorizedError("Please sign in first").Write(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		BadRequestError("Invalid form submission").Write(w)
		return
	}

	form, err := ParseExpenseForm(r.PostForm)
	if err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	rec, err := core.NewRecord(form.Name, form.Category, form.Amount, form.Date, form.Notes)
	if err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	if err := sess.Ledger.Add(ctx, rec); err != nil {
		// The record is already in memory; only the write-through failed.
		s.logger.ErrorContext(ctx, "Expense saved in memory only",
			log.FieldOperation, log.OpCreate,
			log.FieldRecordID, rec.ID,
			log.FieldError, err)
		NewHTMXResponse().
			TriggerExpenseCreated(rec.ID).
			TriggerLedgerRefresh().
			TriggerFormReset().
			TriggerErrorNotification("Expense added, but saving to disk failed").
			Write(w)
		return
	}

	NewHTMXResponse().
		TriggerExpenseCreated(rec.ID).
		TriggerLedgerRefresh().
		TriggerFormReset().
		TriggerSuccessNotification("Expense added").
		Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := s.current()
	if sess == nil {
		UnauthorizedError("Please sign in first").Write(w)
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		BadRequestError("Missing expense id").Write(w)
		return
	}

	// Removal is idempotent; deleting an unknown id is not an error.
	if err := sess.Ledger.Remove(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "Expense removed in memory only",
			log.FieldOperation, log.OpDelete,
			log.FieldRecordID, id,
			log.FieldError, err)
		NewHTMXResponse().
			TriggerExpenseDeleted(id).
			TriggerLedgerRefresh().
			TriggerErrorNotification("Expense removed, but saving to disk failed").
			Write(w)
		return
	}

	NewHTMXResponse().
		TriggerExpenseDeleted(id).
		TriggerLedgerRefresh().
		TriggerSuccessNotification("Expense removed").
		Write(w)
}

// handleExpenseList renders the filtered expense list partial. The filter
// comes from the query string on every pull, so the list, stats and budget
// panels never drift apart.
func (s *Server) handleExpenseList(w http.ResponseWriter, r *http.Request) {
	sess := s.current()
	if sess == nil {
		UnauthorizedError("Please sign in first").Write(w)
		return
	}

	filter := ParseFilterParams(r.URL.Query())
	data := newDashboardData(sess, filter, s.now())
	s.render(w, r, "expense_list.html", data)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sess := s.current()
	if sess == nil {
		UnauthorizedError("Please sign in first").Write(w)
		return
	}

	s.render(w, r, "stats.html", newStatsView(sess.Ledger.Statistics(s.now())))
}
