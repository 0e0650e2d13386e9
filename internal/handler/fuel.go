package handler

import (
	"localtrack/internal/fuelsync"
	"localtrack/internal/models"
	"localtrack/internal/store"
	"localtrack/internal/util"

	"github.com/gin-gonic/gin"
)

type FuelHandler struct {
	Store    *store.Store
	Sync     *fuelsync.Synchronizer
	Settings models.AppSettings
}

func NewFuelHandler(st *store.Store, sync *fuelsync.Synchronizer, settings models.AppSettings) *FuelHandler {
	return &FuelHandler{Store: st, Sync: sync, Settings: settings}
}

type fuelLogReq struct {
	Date   string `json:"date" binding:"required"`
	Litres string `json:"litres" binding:"required"`
	Cost   string `json:"cost"`
}

func (h *FuelHandler) ListFuelLogs(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}
	items, err := h.Store.ListFuelLogs(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"items": items, "total": len(items)})
}

// CreateFuelLog records a refuel that has no expense behind it.
func (h *FuelHandler) CreateFuelLog(c *gin.Context) {
	var req fuelLogReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}
	litres, err := util.ParseAmount(req.Litres)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	var cost float64
	if req.Cost != "" {
		if cost, err = util.ParseAmount(req.Cost); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	l := &models.FuelLog{Date: req.Date, Litres: litres, Cost: cost}
	if err := h.Store.CreateFuelLog(c.Request.Context(), l); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"fuelLog": l})
}

// DeleteFuelLog refuses logs owned by an expense; those go with the expense.
func (h *FuelHandler) DeleteFuelLog(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Sync.DeleteFuelLog(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"id": id})
}

// Derive fills in the other half of an amount/litres pair at the configured
// petrol rate. Exactly one of ?amount= or ?litres= is expected.
func (h *FuelHandler) Derive(c *gin.Context) {
	amountStr, litresStr := c.Query("amount"), c.Query("litres")
	if (amountStr == "") == (litresStr == "") {
		badRequest(c, "pass exactly one of amount or litres")
		return
	}

	form := fuelsync.Form{Category: models.CategoryTransport}
	field, raw := fuelsync.FieldAmount, amountStr
	if litresStr != "" {
		field, raw = fuelsync.FieldLitres, litresStr
	}
	value, err := util.ParseAmount(raw)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	form = form.Edit(field, value, h.Settings.PetrolRate)
	util.Success(c, util.Response{
		"amount":     form.Amount,
		"litres":     form.Litres,
		"petrolRate": h.Settings.PetrolRate,
	})
}
