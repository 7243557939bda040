package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"moneta/internal/core"
	"moneta/internal/storage"
)

type transactionResponse struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`
	Description  string `json:"description"`
	AmountCents  int64  `json:"amount_cents"`
	Amount       string `json:"amount"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	CategoryID   int64  `json:"category_id,omitempty"`
	AccountID    int64  `json:"account_id,omitempty"`
	CreditCardID int64  `json:"credit_card_id,omitempty"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:           t.ID,
		Date:         t.Date.Format(refDateFormat),
		Description:  t.Description,
		AmountCents:  t.Amount.Cents,
		Amount:       formatEuros(t.Amount.Cents),
		Type:         string(t.Type),
		Status:       string(t.Status),
		CategoryID:   t.CategoryID,
		AccountID:    t.AccountID,
		CreditCardID: t.CreditCardID,
	}
}

type goalResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	TargetCents  int64  `json:"target_cents"`
	CurrentCents int64  `json:"current_cents"`
	TargetDate   string `json:"target_date"`
	Status       string `json:"status"`
}

func toGoalResponse(g core.Goal) goalResponse {
	return goalResponse{
		ID:           g.ID,
		Name:         g.Name,
		TargetCents:  g.Target.Cents,
		CurrentCents: g.Current.Cents,
		TargetDate:   g.TargetDate.Format(refDateFormat),
		Status:       string(g.Status),
	}
}

type monthSummaryResponse struct {
	Label        string `json:"label"`
	IncomeCents  int64  `json:"income_cents"`
	ExpenseCents int64  `json:"expense_cents"`
	BalanceCents int64  `json:"balance_cents"`
}

func toMonthSummaryResponse(m core.MonthSummary) monthSummaryResponse {
	return monthSummaryResponse{
		Label:        m.Label,
		IncomeCents:  m.Income.Cents,
		ExpenseCents: m.Expense.Cents,
		BalanceCents: m.Balance.Cents,
	}
}

type breakdownEntryResponse struct {
	CategoryID int64   `json:"category_id"`
	Name       string  `json:"name"`
	Icon       string  `json:"icon,omitempty"`
	Color      string  `json:"color,omitempty"`
	TotalCents int64   `json:"total_cents"`
	Count      int     `json:"count"`
	Pct        float64 `json:"pct"`
}

type reportResponse struct {
	Trend             []monthSummaryResponse   `json:"trend"`
	Breakdown         []breakdownEntryResponse `json:"breakdown"`
	TopExpenses       []transactionResponse    `json:"top_expenses"`
	BestIncomeMonth   monthSummaryResponse     `json:"best_income_month"`
	WorstExpenseMonth monthSummaryResponse     `json:"worst_expense_month"`
	TotalIncomeCents  int64                    `json:"total_income_cents"`
	TotalExpenseCents int64                    `json:"total_expense_cents"`
	NetBalanceCents   int64                    `json:"net_balance_cents"`
	TransactionCount  int                      `json:"transaction_count"`
}

func toReportResponse(r core.Report) reportResponse {
	resp := reportResponse{
		Trend:             make([]monthSummaryResponse, 0, len(r.Trend)),
		Breakdown:         make([]breakdownEntryResponse, 0, len(r.Breakdown)),
		TopExpenses:       make([]transactionResponse, 0, len(r.TopExpenses)),
		BestIncomeMonth:   toMonthSummaryResponse(r.BestIncomeMonth),
		WorstExpenseMonth: toMonthSummaryResponse(r.WorstExpenseMonth),
		TotalIncomeCents:  r.TotalIncome.Cents,
		TotalExpenseCents: r.TotalExpense.Cents,
		NetBalanceCents:   r.NetBalance.Cents,
		TransactionCount:  r.TransactionCount,
	}
	for _, m := range r.Trend {
		resp.Trend = append(resp.Trend, toMonthSummaryResponse(m))
	}
	for _, e := range r.Breakdown {
		resp.Breakdown = append(resp.Breakdown, breakdownEntryResponse{
			CategoryID: e.CategoryID,
			Name:       e.Name,
			Icon:       e.Icon,
			Color:      e.Color,
			TotalCents: e.Total.Cents,
			Count:      e.Count,
			Pct:        e.Pct,
		})
	}
	for _, t := range r.TopExpenses {
		resp.TopExpenses = append(resp.TopExpenses, toTransactionResponse(t))
	}
	return resp
}

type cycleResponse struct {
	CycleStart          string `json:"cycle_start"`
	CycleEnd            string `json:"cycle_end"`
	CurrentInvoiceCents int64  `json:"current_invoice_cents"`
	CurrentInvoice      string `json:"current_invoice"`
	UsagePercent        int    `json:"usage_percent"`
}

// writeServiceError maps domain errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, core.ErrGoalCompleted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrInvalidStatus),
		errors.Is(err, core.ErrInvalidDay),
		errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrEmptyName):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed", "error", err, "url", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	at := refDate(r)
	key := reportCacheKey(at)

	if report, found := s.reportCache.Get(key); found {
		slog.DebugContext(r.Context(), "Report cache hit", "key", key)
		writeJSON(w, http.StatusOK, toReportResponse(report))
		return
	}

	report, err := s.reports.BuildReport(r.Context(), at)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.reportCache.Set(key, report)
	writeJSON(w, http.StatusOK, toReportResponse(report))
}

func (s *Server) handleCardCycle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	info, err := s.reports.CardCycle(r.Context(), id, refDate(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, cycleResponse{
		CycleStart:          info.CycleStart.Format(refDateFormat),
		CycleEnd:            info.CycleEnd.Format(refDateFormat),
		CurrentInvoiceCents: info.CurrentInvoice.Cents,
		CurrentInvoice:      formatEuros(info.CurrentInvoice.Cents),
		UsagePercent:        info.UsagePercent,
	})
}

type createTransactionRequest struct {
	Date         string `json:"date"`
	Description  string `json:"description"`
	Amount       string `json:"amount"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	CategoryID   int64  `json:"category_id"`
	AccountID    int64  `json:"account_id"`
	CreditCardID int64  `json:"credit_card_id"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := time.Parse(refDateFormat, req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	status := core.TransactionStatus(req.Status)
	if req.Status == "" {
		status = core.Paid
	}

	t := core.Transaction{
		Date:         date,
		Description:  sanitizeInput(req.Description),
		Amount:       core.Money{Cents: cents},
		Type:         core.TransactionType(req.Type),
		Status:       status,
		CategoryID:   req.CategoryID,
		AccountID:    req.AccountID,
		CreditCardID: req.CreditCardID,
	}

	saved, err := s.transactions.CreateTransaction(r.Context(), t)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.invalidateReports()
	writeJSON(w, http.StatusCreated, toTransactionResponse(saved))
}

func (s *Server) handleToggleTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.transactions.ToggleStatus(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.invalidateReports()
	writeJSON(w, http.StatusOK, toTransactionResponse(updated))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.transactions.DeleteTransaction(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.invalidateReports()
	w.WriteHeader(http.StatusNoContent)
}

type createGoalRequest struct {
	Name       string `json:"name"`
	Target     string `json:"target"`
	TargetDate string `json:"target_date"`
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Target)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid target amount")
		return
	}

	targetDate, err := time.Parse(refDateFormat, req.TargetDate)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid target date, expected YYYY-MM-DD")
		return
	}

	g := core.Goal{
		Name:       sanitizeInput(req.Name),
		Target:     core.Money{Cents: cents},
		TargetDate: targetDate,
	}

	saved, err := s.goals.CreateGoal(r.Context(), g)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGoalResponse(saved))
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.goals.ListGoals(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		resp = append(resp, toGoalResponse(g))
	}
	writeJSON(w, http.StatusOK, resp)
}

type depositRequest struct {
	Amount string `json:"amount"`
}

type depositResponse struct {
	Goal      goalResponse `json:"goal"`
	Completed bool         `json:"completed"`
}

func (s *Server) handleGoalDeposit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	goal, completed, err := s.goals.Deposit(r.Context(), id, core.Money{Cents: cents})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, depositResponse{
		Goal:      toGoalResponse(goal),
		Completed: completed,
	})
}

func (s *Server) handleGoalPause(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := s.goals.Pause(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(goal))
}

func (s *Server) handleGoalResume(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, err := s.goals.Resume(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(goal))
}

type progressResponse struct {
	Goal            goalResponse `json:"goal"`
	Pct             float64      `json:"pct"`
	RemainingCents  int64        `json:"remaining_cents"`
	MonthsLeft      int          `json:"months_left"`
	SuggestionCents int64        `json:"suggestion_cents"`
	Suggestion      string       `json:"suggestion"`
}

func (s *Server) handleGoalProgress(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	goal, progress, err := s.goals.Progress(r.Context(), id, refDate(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, progressResponse{
		Goal:            toGoalResponse(goal),
		Pct:             progress.Pct,
		RemainingCents:  progress.Remaining.Cents,
		MonthsLeft:      progress.MonthsLeft,
		SuggestionCents: progress.Suggestion.Cents,
		Suggestion:      formatEuros(progress.Suggestion.Cents),
	})
}
