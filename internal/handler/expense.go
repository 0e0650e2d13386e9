package handler

import (
	"strings"

	"localtrack/internal/fuelsync"
	"localtrack/internal/models"
	"localtrack/internal/store"
	"localtrack/internal/util"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler serves the expense collection. Every write goes through the
// synchronizer so linked fuel logs follow their expense.
type ExpenseHandler struct {
	Store *store.Store
	Sync  *fuelsync.Synchronizer
}

func NewExpenseHandler(st *store.Store, sync *fuelsync.Synchronizer) *ExpenseHandler {
	return &ExpenseHandler{Store: st, Sync: sync}
}

// amounts are strings so the form value is parsed exactly once, as a decimal
type expenseReq struct {
	Date        string `json:"date" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=Income Expense"`
	Category    string `json:"category" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description" binding:"max=255"`
	Litres      string `json:"litres"`
}

func (r *expenseReq) toModel() (*models.Expense, error) {
	amount, err := util.ParseAmount(r.Amount)
	if err != nil {
		return nil, err
	}
	if err := util.ValidateAmount(amount); err != nil {
		return nil, err
	}
	litres, err := optionalAmount(r.Litres)
	if err != nil {
		return nil, err
	}
	return &models.Expense{
		Date:        r.Date,
		Type:        models.ExpenseType(r.Type),
		Category:    models.Category(strings.TrimSpace(r.Category)),
		Amount:      amount,
		Description: strings.TrimSpace(r.Description),
		Litres:      litres,
	}, nil
}

func (h *ExpenseHandler) bind(c *gin.Context) (*models.Expense, bool) {
	var req expenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return nil, false
	}
	e, err := req.toModel()
	if err != nil {
		badRequest(c, err.Error())
		return nil, false
	}
	return e, true
}

func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	e, ok := h.bind(c)
	if !ok {
		return
	}
	if err := h.Sync.CreateExpense(c.Request.Context(), e); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"expense": e})
}

func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	e, err := h.Store.GetExpense(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	fuelLog, err := h.Store.FuelLogByExpense(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"expense": e, "fuelLog": fuelLog})
}

func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	in, ok := h.bind(c)
	if !ok {
		return
	}
	e, err := h.Sync.UpdateExpense(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"expense": e})
}

// DeleteExpense also removes the linked fuel log. Deleting a missing id succeeds.
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Sync.DeleteExpense(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"id": id})
}

func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}
	items, err := h.Store.ListExpenses(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"items": items, "total": len(items)})
}
