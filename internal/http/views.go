// This file builds the view models handed to the HTML templates. All
// money and dates are pre-formatted here so templates stay logic-free.

package http

import (
	"bytes"
	"net/http"
	"time"

	"noura/internal/core"
	"noura/internal/log"
	"noura/internal/session"
)

type expenseView struct {
	ID       string
	Name     string
	Category string
	Amount   string
	Date     string
	Notes    string
}

type statsView struct {
	Total     string
	ThisMonth string
	Last7Days string
	Today     string
}

type budgetView struct {
	Set        bool
	Status     string
	Budget     string
	Spent      string
	Remaining  string
	Over       bool
	OverBy     string
	Percentage string
	Progress   float64
}

type dashboardData struct {
	Username   string
	Categories []string
	Category   string
	Period     string
	Expenses   []expenseView
	Count      int
	Stats      statsView
	Budget     budgetView
}

func newExpenseViews(records []core.ExpenseRecord) []expenseView {
	views := make([]expenseView, 0, len(records))
	for _, rec := range records {
		views = append(views, expenseView{
			ID:       rec.ID,
			Name:     rec.Name,
			Category: rec.Category,
			Amount:   formatMoney(rec.Amount),
			Date:     formatDisplayDate(rec.Date),
			Notes:    rec.Notes,
		})
	}
	return views
}

func newStatsView(stats core.Statistics) statsView {
	return statsView{
		Total:     formatMoney(stats.Total),
		ThisMonth: formatMoney(stats.ThisMonth),
		Last7Days: formatMoney(stats.Last7Days),
		Today:     formatMoney(stats.Today),
	}
}

func newBudgetView(report core.BudgetReport) budgetView {
	v := budgetView{
		Set:        report.Status != core.BudgetUnset,
		Status:     string(report.Status),
		Budget:     formatMoney(report.Budget),
		Spent:      formatMoney(report.Spent),
		Remaining:  formatMoney(report.Remaining),
		Progress:   report.Progress(),
		Percentage: report.Percentage.StringFixed(1),
	}
	if report.Status == core.BudgetExceeded {
		v.Over = true
		v.OverBy = formatMoney(report.OverBy())
	}
	return v
}

// newDashboardData assembles the full dashboard view for a session and
// the currently selected filter.
func newDashboardData(sess *session.Session, filter core.Filter, now time.Time) dashboardData {
	filtered := sess.Ledger.Filtered(filter, now)
	return dashboardData{
		Username:   sess.Username,
		Categories: core.Categories,
		Category:   filter.Category,
		Period:     string(filter.Period),
		Expenses:   newExpenseViews(filtered),
		Count:      len(filtered),
		Stats:      newStatsView(sess.Ledger.Statistics(now)),
		Budget:     newBudgetView(sess.Ledger.BudgetReport(now)),
	}
}

// render executes a template into a buffer first so a template error
// never produces a half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.ErrorContext(r.Context(), "Template execution failed",
			"template", name,
			log.FieldError, err)
		InternalServerError("Something went wrong rendering the page").Write(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
