package http

import (
	"net/http"

	"noura/internal/log"
)

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
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

	budget, err := ParseBudgetForm(r.PostForm)
	if err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	if err := sess.Ledger.SetBudget(ctx, budget); err != nil {
		s.logger.ErrorContext(ctx, "Budget saved in memory only",
			log.FieldOperation, log.OpSave,
			log.FieldError, err)
		NewHTMXResponse().
			TriggerBudgetUpdated().
			TriggerLedgerRefresh().
			TriggerErrorNotification("Budget set, but saving to disk failed").
			Write(w)
		return
	}

	NewHTMXResponse().
		TriggerBudgetUpdated().
		TriggerLedgerRefresh().
		TriggerSuccessNotification("Monthly budget updated").
		Write(w)
}

// handleBudgetStatus renders the budget panel partial. The report is
// recomputed from scratch on every pull.
func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	sess := s.current()
	if sess == nil {
		UnauthorizedError("Please sign in first").Write(w)
		return
	}

	s.render(w, r, "budget_status.html", newBudgetView(sess.Ledger.BudgetReport(s.now())))
}
