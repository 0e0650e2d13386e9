package handler

import (
	"strings"
	"time"

	"localtrack/internal/loan"
	"localtrack/internal/models"
	"localtrack/internal/store"
	"localtrack/internal/util"

	"github.com/gin-gonic/gin"
)

type LoanHandler struct {
	Store *store.Store
	Now   func() time.Time
}

func NewLoanHandler(st *store.Store) *LoanHandler {
	return &LoanHandler{Store: st, Now: time.Now}
}

type loanReq struct {
	Name      string `json:"name" binding:"required,max=128"`
	Type      string `json:"type" binding:"required"`
	Principal string `json:"principal" binding:"required"`
	Rate      string `json:"rate"`
	StartDate string `json:"startDate" binding:"required"`
}

type paymentReq struct {
	Date   string `json:"date" binding:"required"`
	Amount string `json:"amount" binding:"required"`
	Kind   string `json:"kind"`
}

type loanResp struct {
	models.Loan
	Stats loan.Stats `json:"stats"`
}

// paymentsByLoan loads every payment once and groups it by loan id.
func (h *LoanHandler) paymentsByLoan(c *gin.Context) (map[uint][]models.LoanPayment, error) {
	all, err := h.Store.ListLoanPaymentsByDateRange(c.Request.Context(), minDate, maxDate)
	if err != nil {
		return nil, err
	}
	out := make(map[uint][]models.LoanPayment)
	for _, p := range all {
		out[p.LoanID] = append(out[p.LoanID], p)
	}
	return out, nil
}

// ListLoans returns loans with their stats as of ?date= (default today).
// ?status=Active|Closed filters.
func (h *LoanHandler) ListLoans(c *gin.Context) {
	eval, ok := dateQuery(c, "date", h.Now)
	if !ok {
		return
	}
	loans, err := h.Store.ListLoans(c.Request.Context(), models.LoanStatus(c.Query("status")))
	if err != nil {
		respondError(c, err)
		return
	}
	payments, err := h.paymentsByLoan(c)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]loanResp, 0, len(loans))
	for _, l := range loans {
		items = append(items, loanResp{Loan: l, Stats: loan.Calculate(l, payments[l.ID], eval)})
	}
	util.Success(c, util.Response{"items": items, "total": len(items)})
}

func (h *LoanHandler) CreateLoan(c *gin.Context) {
	var req loanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}
	principal, err := util.ParseAmount(req.Principal)
	if err != nil {
		badRequest(c, "principal: "+err.Error())
		return
	}
	var rate float64
	if req.Rate != "" {
		if rate, err = util.ParseAmount(req.Rate); err != nil {
			badRequest(c, "rate: "+err.Error())
			return
		}
	}

	l := &models.Loan{
		Name:      strings.TrimSpace(req.Name),
		Type:      models.LoanType(req.Type),
		Principal: principal,
		Rate:      rate,
		StartDate: req.StartDate,
	}
	if err := h.Store.CreateLoan(c.Request.Context(), l); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"loan": l})
}

// GetLoan returns the loan, its payments and its stats as of ?date=.
func (h *LoanHandler) GetLoan(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	eval, ok := dateQuery(c, "date", h.Now)
	if !ok {
		return
	}
	l, err := h.Store.GetLoan(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	payments, err := h.Store.ListLoanPayments(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	stats := loan.Calculate(*l, payments, eval)
	util.Success(c, util.Response{
		"loan":               l,
		"payments":           payments,
		"stats":              stats,
		"displayOutstanding": stats.DisplayOutstanding(),
	})
}

func (h *LoanHandler) CloseLoan(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	l, err := h.Store.SetLoanStatus(c.Request.Context(), id, models.LoanStatusClosed)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"loan": l})
}

// DeleteLoan removes the loan together with its payments.
func (h *LoanHandler) DeleteLoan(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Store.DeleteLoan(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"id": id})
}

func (h *LoanHandler) AddPayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req paymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}
	amount, err := util.ParseAmount(req.Amount)
	if err == nil {
		err = util.ValidateAmount(amount)
	}
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	p := &models.LoanPayment{LoanID: id, Date: req.Date, Amount: amount, Kind: models.PaymentKind(req.Kind)}
	if err := h.Store.AddLoanPayment(c.Request.Context(), p); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"payment": p})
}

// Summary totals what is still owed in both directions across active loans.
func (h *LoanHandler) Summary(c *gin.Context) {
	eval, ok := dateQuery(c, "date", h.Now)
	if !ok {
		return
	}
	loans, err := h.Store.ListLoans(c.Request.Context(), models.LoanStatusActive)
	if err != nil {
		respondError(c, err)
		return
	}
	payments, err := h.paymentsByLoan(c)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"summary": loan.Portfolio(loans, payments, eval)})
}
