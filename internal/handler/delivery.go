package handler

import (
	"localtrack/internal/delivery"
	"localtrack/internal/models"
	"localtrack/internal/period"
	"localtrack/internal/store"
	"localtrack/internal/util"

	"github.com/gin-gonic/gin"
)

type DeliveryHandler struct {
	Store    *store.Store
	Settings models.AppSettings
}

func NewDeliveryHandler(st *store.Store, settings models.AppSettings) *DeliveryHandler {
	return &DeliveryHandler{Store: st, Settings: settings}
}

// the date comes from the path, so a PUT always writes exactly that day
type deliveryReq struct {
	KmDriven           float64 `json:"kmDriven"`
	CashEarnings       float64 `json:"cashEarnings"`
	OnlineEarnings     float64 `json:"onlineEarnings"`
	FoodExpense        float64 `json:"foodExpense"`
	MaintenanceExpense float64 `json:"maintenanceExpense"`
	OtherExpense       float64 `json:"otherExpense"`
}

func (h *DeliveryHandler) ListDeliveries(c *gin.Context) {
	start, end, ok := dateRange(c)
	if !ok {
		return
	}
	items, err := h.Store.ListDeliveries(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"items": items, "total": len(items)})
}

// UpsertDelivery replaces the whole record for the day, or creates it.
func (h *DeliveryHandler) UpsertDelivery(c *gin.Context) {
	var req deliveryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request: "+err.Error())
		return
	}
	d := &models.Delivery{
		Date:               c.Param("date"),
		KmDriven:           req.KmDriven,
		CashEarnings:       req.CashEarnings,
		OnlineEarnings:     req.OnlineEarnings,
		FoodExpense:        req.FoodExpense,
		MaintenanceExpense: req.MaintenanceExpense,
		OtherExpense:       req.OtherExpense,
	}
	if err := h.Store.UpsertDelivery(c.Request.Context(), d); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"delivery": d})
}

// GetDelivery returns the day's record (null when absent), its metrics and
// the seven-day trend ending on that day.
func (h *DeliveryHandler) GetDelivery(c *gin.Context) {
	ctx := c.Request.Context()
	day, err := models.ParseDate(c.Param("date"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	date := models.FormatDate(day)

	record, err := h.Store.DeliveryByDate(ctx, date)
	if err != nil {
		respondError(c, err)
		return
	}
	logs, err := h.Store.ListFuelLogs(ctx, date, date)
	if err != nil {
		respondError(c, err)
		return
	}
	w := period.TrailingWindow(day)
	recent, err := h.Store.ListDeliveries(ctx, w.StartDate(), w.EndDate())
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, util.Response{
		"delivery": record,
		"metrics":  delivery.Compute(record, h.Settings, delivery.FuelLitres(logs)),
		"trend":    period.Trailing(recent, day),
	})
}

func (h *DeliveryHandler) DeleteDelivery(c *gin.Context) {
	date := c.Param("date")
	if err := h.Store.DeleteDelivery(c.Request.Context(), date); err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"date": date})
}
