package handler

import (
	"strconv"
	"time"

	"localtrack/internal/models"
	"localtrack/internal/period"
	"localtrack/internal/store"
	"localtrack/internal/util"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	Store *store.Store
	Now   func() time.Time
}

func NewStatsHandler(st *store.Store) *StatsHandler {
	return &StatsHandler{Store: st, Now: time.Now}
}

// GetStats summarizes the window of ?mode= around ?anchor=, moved ?step=
// whole units first. The response echoes the resolved anchor so a client can
// keep paging from it.
func (h *StatsHandler) GetStats(c *gin.Context) {
	mode, err := period.ParseViewMode(c.Query("mode"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	anchor, ok := dateQuery(c, "anchor", h.Now)
	if !ok {
		return
	}
	step := 0
	if s := c.Query("step"); s != "" {
		if step, err = strconv.Atoi(s); err != nil {
			badRequest(c, "invalid step")
			return
		}
	}

	anchor = period.Navigate(mode, anchor, step)
	w := period.Resolve(mode, anchor)
	expenses, err := h.Store.ListExpenses(c.Request.Context(), w.StartDate(), w.EndDate())
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, util.Response{
		"mode":    mode,
		"anchor":  models.FormatDate(anchor),
		"summary": period.Summarize(expenses, w),
	})
}
